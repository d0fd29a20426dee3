package installartifact

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/forgeqa/plugmatrix/common"
	"github.com/forgeqa/plugmatrix/file"
	"github.com/forgeqa/plugmatrix/runtime"
	"github.com/forgeqa/plugmatrix/step"
)

const defaultLibGlob = "*.so"

// InstallArtifactStep resolves the locally built distribution archive through
// a glob pattern and installs it. Zero matches or an ambiguous pattern (more
// than one match) fail the run before the installer is invoked. When an
// earlier step resolved the plugin directory, the step verifies the
// installation put plugin binaries back there.
type InstallArtifactStep struct {
	step.BaseStep
	// ArchiveGlob locates the distribution archive. Relative patterns are
	// resolved against the runtime working directory.
	ArchiveGlob string
	// LibGlob matches the binary plugin files expected after installation.
	LibGlob string
}

// NewInstallArtifactStep creates the step for the given archive glob. An empty
// libGlob defaults to "*.so".
func NewInstallArtifactStep(archiveGlob, libGlob string) *InstallArtifactStep {
	if libGlob == "" {
		libGlob = defaultLibGlob
	}
	return &InstallArtifactStep{
		BaseStep:    step.NewBaseStep("install-artifact", "Install the packaged plugin artifact"),
		ArchiveGlob: archiveGlob,
		LibGlob:     libGlob,
	}
}

func (s *InstallArtifactStep) Init(rt runtime.Runtime, log *logrus.Entry) error {
	if err := s.BaseStep.Init(rt, log); err != nil {
		return err
	}
	if s.ArchiveGlob == "" {
		return fmt.Errorf("archive glob cannot be empty for step %s", s.Name())
	}
	return nil
}

func (s *InstallArtifactStep) Execute(rt runtime.Runtime, log *logrus.Entry) (string, bool, error) {
	ctx := context.Background()

	pattern := s.ArchiveGlob
	if !filepath.IsAbs(pattern) {
		pattern = filepath.Join(rt.WorkDir(), pattern)
	}

	matches, err := rt.GetExecutor().Glob(ctx, pattern)
	if err != nil {
		return "", false, err
	}
	archive, err := file.ExactlyOne(pattern, matches)
	if err != nil {
		return "", false, errors.Wrap(err, "cannot resolve artifact archive")
	}
	log.Infof("Installing artifact %s", archive)

	output, err := rt.GetToolchain().InstallPackage(ctx, archive, rt.ExecOptions())
	if err != nil {
		return output, false, err
	}
	rt.Cache().Set(common.CacheKeyArtifactPath, archive)

	// The remove step cached the plugin directory it emptied; the installed
	// archive must have put binaries back there.
	if pluginDir, ok := rt.Cache().Get(common.CacheKeyPluginDir); ok {
		restored, err := rt.GetExecutor().Glob(ctx, filepath.Join(pluginDir, s.LibGlob))
		if err != nil {
			return output, false, err
		}
		if len(restored) == 0 {
			return output, false, errors.Errorf(
				"installation of %s did not restore any plugin binaries in %s", archive, pluginDir)
		}
		log.Infof("Installation restored %d plugin binaries in %s", len(restored), pluginDir)
	}

	return output, true, nil
}

var _ step.Step = (*InstallArtifactStep)(nil)
