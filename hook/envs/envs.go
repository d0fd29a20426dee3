// Package envs provides the closed set of environment hooks a matrix
// configuration can name as its prolog or epilog: no-op, conda
// enable/disable and virtualenv enable/disable.
package envs

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/forgeqa/plugmatrix/common"
	"github.com/forgeqa/plugmatrix/hook"
	"github.com/forgeqa/plugmatrix/runtime"
	"github.com/forgeqa/plugmatrix/util"
)

// Hook names accepted in matrix configurations.
const (
	HookNoop              = "noop"
	HookEnableConda       = "enable-conda"
	HookDisableConda      = "disable-conda"
	HookEnableVirtualenv  = "enable-virtualenv"
	HookDisableVirtualenv = "disable-virtualenv"
)

// Known reports whether name resolves to a hook. An empty name counts: it is
// the no-op.
func Known(name string) bool {
	switch name {
	case "", HookNoop, HookEnableConda, HookDisableConda, HookEnableVirtualenv, HookDisableVirtualenv:
		return true
	}
	return false
}

// New resolves a hook name to its implementation. An empty name is the no-op.
func New(name string, rt runtime.Runtime, log *logrus.Entry) (hook.Interface, error) {
	hookLog := log.WithField(common.LogFieldHookName, name)
	switch name {
	case "", HookNoop:
		return &noopHook{}, nil
	case HookEnableConda:
		return &enableEnvHook{
			name:      name,
			rt:        rt,
			log:       hookLog,
			dir:       condaEnvDir(rt),
			createTpl: common.CreateCondaEnvCmdTpl,
			envVars:   condaEnvVars,
		}, nil
	case HookDisableConda:
		return &disableEnvHook{
			name:    name,
			rt:      rt,
			log:     hookLog,
			dir:     condaEnvDir(rt),
			envVars: condaEnvVars,
		}, nil
	case HookEnableVirtualenv:
		return &enableEnvHook{
			name:      name,
			rt:        rt,
			log:       hookLog,
			dir:       virtualenvDir(rt),
			createTpl: common.CreateVirtualenvCmdTpl,
			envVars:   virtualenvVars,
		}, nil
	case HookDisableVirtualenv:
		return &disableEnvHook{
			name:    name,
			rt:      rt,
			log:     hookLog,
			dir:     virtualenvDir(rt),
			envVars: virtualenvVars,
		}, nil
	default:
		return nil, fmt.Errorf("unknown hook %q", name)
	}
}

func condaEnvDir(rt runtime.Runtime) string {
	return filepath.Join(common.GetTmpDir(), rt.RunID(), "conda-env")
}

func virtualenvDir(rt runtime.Runtime) string {
	return filepath.Join(common.GetTmpDir(), rt.RunID(), "virtualenv")
}

func condaEnvVars(dir string) map[string]string {
	return map[string]string{
		"CONDA_PREFIX":      dir,
		"CONDA_DEFAULT_ENV": filepath.Base(dir),
	}
}

func virtualenvVars(dir string) map[string]string {
	return map[string]string{
		"VIRTUAL_ENV": dir,
	}
}

type noopHook struct{}

func (h *noopHook) Name() string          { return HookNoop }
func (h *noopHook) Try() error            { return nil }
func (h *noopHook) Catch(err error) error { return err }
func (h *noopHook) Finally()              {}

// enableEnvHook provisions an isolated interpreter environment and applies its
// activation overlay (PATH prefix plus marker variables) to the runtime.
type enableEnvHook struct {
	name      string
	rt        runtime.Runtime
	log       *logrus.Entry
	dir       string
	createTpl string
	envVars   func(dir string) map[string]string
}

func (h *enableEnvHook) Name() string { return h.name }

func (h *enableEnvHook) Try() error {
	command, err := util.RenderString(h.createTpl, util.Data{"Dir": h.dir})
	if err != nil {
		return err
	}
	h.log.Infof("Provisioning isolated environment in %s", h.dir)
	output, code, err := h.rt.GetToolchain().RunCommand(context.Background(), command, h.rt.ExecOptions())
	if err != nil {
		return err
	}
	if code != 0 {
		return errors.Errorf("environment setup %q failed with exit code %d: %s",
			command, code, strings.TrimSpace(output))
	}

	h.rt.PrependPath(filepath.Join(h.dir, "bin"))
	for key, value := range h.envVars(h.dir) {
		h.rt.SetEnv(key, value)
	}
	h.log.Debugf("Environment activated: %s", h.dir)
	return nil
}

func (h *enableEnvHook) Catch(err error) error {
	return errors.Wrapf(err, "hook %s failed", h.name)
}

func (h *enableEnvHook) Finally() {}

// disableEnvHook removes the activation overlay and tears the environment down.
type disableEnvHook struct {
	name    string
	rt      runtime.Runtime
	log     *logrus.Entry
	dir     string
	envVars func(dir string) map[string]string
}

func (h *disableEnvHook) Name() string { return h.name }

func (h *disableEnvHook) Try() error {
	h.rt.RemovePathPrefix(filepath.Join(h.dir, "bin"))
	for key := range h.envVars(h.dir) {
		h.rt.UnsetEnv(key)
	}

	command, err := util.RenderString(common.RemoveEnvCmdTpl, util.Data{"Dir": h.dir})
	if err != nil {
		return err
	}
	h.log.Infof("Tearing down isolated environment %s", h.dir)
	output, code, err := h.rt.GetToolchain().RunCommand(context.Background(), command, h.rt.ExecOptions())
	if err != nil {
		return err
	}
	if code != 0 {
		return errors.Errorf("environment teardown %q failed with exit code %d: %s",
			command, code, strings.TrimSpace(output))
	}
	return nil
}

func (h *disableEnvHook) Catch(err error) error {
	return errors.Wrapf(err, "hook %s failed", h.name)
}

func (h *disableEnvHook) Finally() {}
