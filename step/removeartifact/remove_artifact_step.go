package removeartifact

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/forgeqa/plugmatrix/common"
	"github.com/forgeqa/plugmatrix/runtime"
	"github.com/forgeqa/plugmatrix/step"
)

const defaultLibGlob = "*.so"

// RemoveArtifactStep deletes every installed plugin binary, forcing the
// subsequent load-failure check to exercise the missing-plugin path. The
// plugin directory is resolved at runtime through the toolchain query, never
// hardcoded. The step fails only if the query itself fails (e.g. the plugin
// package is not importable); an already-empty directory is fine.
type RemoveArtifactStep struct {
	step.BaseStep
	// LibGlob matches the binary plugin files inside the plugin directory.
	LibGlob string
}

// NewRemoveArtifactStep creates the step. An empty libGlob defaults to "*.so".
func NewRemoveArtifactStep(libGlob string) *RemoveArtifactStep {
	if libGlob == "" {
		libGlob = defaultLibGlob
	}
	return &RemoveArtifactStep{
		BaseStep: step.NewBaseStep("remove-artifact", "Remove installed plugin binaries"),
		LibGlob:  libGlob,
	}
}

func (s *RemoveArtifactStep) Init(rt runtime.Runtime, log *logrus.Entry) error {
	if err := s.BaseStep.Init(rt, log); err != nil {
		return err
	}
	if strings.ContainsRune(s.LibGlob, filepath.Separator) {
		return fmt.Errorf("lib glob %q must not contain path separators", s.LibGlob)
	}
	return nil
}

func (s *RemoveArtifactStep) Execute(rt runtime.Runtime, log *logrus.Entry) (string, bool, error) {
	ctx := context.Background()

	pluginDir, err := rt.GetToolchain().QueryPluginDir(ctx, rt.ExecOptions())
	if err != nil {
		return "", false, errors.Wrap(err, "cannot resolve plugin directory")
	}
	log.Infof("Plugin directory resolved to %s", pluginDir)
	rt.Cache().Set(common.CacheKeyPluginDir, pluginDir)

	pattern := filepath.Join(pluginDir, s.LibGlob)
	matches, err := rt.GetExecutor().Glob(ctx, pattern)
	if err != nil {
		return "", false, err
	}
	for _, path := range matches {
		if err := rt.GetExecutor().Remove(ctx, path); err != nil {
			return "", false, errors.Wrapf(err, "failed to remove plugin binary %s", path)
		}
		log.Infof("Removed plugin binary %s", path)
	}
	if len(matches) == 0 {
		log.Debugf("No plugin binaries matched %s", pattern)
	}

	return fmt.Sprintf("removed %d plugin binaries from %s", len(matches), pluginDir), true, nil
}

var _ step.Step = (*RemoveArtifactStep)(nil)
