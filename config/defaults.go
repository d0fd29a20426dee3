package config

import (
	"fmt"

	"github.com/forgeqa/plugmatrix/common"
	"github.com/forgeqa/plugmatrix/hook/envs"
)

const (
	DefaultPython  = "python"
	DefaultPip     = "pip"
	DefaultEngine  = "nosetests"
	DefaultLibGlob = "*.so"
	DefaultSSHPort = common.DefaultSSHPort
)

// DefaultConfigurations is the matrix iterated when the spec names none: the
// plain environment, then conda, then virtualenv, each bracketed by its
// enable/disable hooks.
func DefaultConfigurations() []ConfigurationSpec {
	return []ConfigurationSpec{
		{Name: "default"},
		{Name: "conda", Prolog: envs.HookEnableConda, Epilog: envs.HookDisableConda},
		{Name: "virtualenv", Prolog: envs.HookEnableVirtualenv, Epilog: envs.HookDisableVirtualenv},
	}
}

// SetDefaultMatrixSpec applies default values to a validated spec, in place.
func SetDefaultMatrixSpec(spec *MatrixSpec) error {
	if spec == nil {
		return fmt.Errorf("matrix spec cannot be nil")
	}
	if spec.Tools.Python == "" {
		spec.Tools.Python = DefaultPython
	}
	if spec.Tools.Pip == "" {
		spec.Tools.Pip = DefaultPip
	}
	if spec.Tools.Engine == "" {
		spec.Tools.Engine = DefaultEngine
	}
	if spec.Plugin.LibGlob == "" {
		spec.Plugin.LibGlob = DefaultLibGlob
	}
	if len(spec.Configurations) == 0 {
		spec.Configurations = DefaultConfigurations()
	}
	for i, cfg := range spec.Configurations {
		if cfg.Name == "" {
			return fmt.Errorf("spec.configurations[%d].name is required", i)
		}
	}
	if spec.Remote != nil && spec.Remote.Port == 0 {
		spec.Remote.Port = DefaultSSHPort
	}
	return nil
}
