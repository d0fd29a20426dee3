package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Accepted kind values for a matrix document.
const (
	KindPluginMatrix = "PluginMatrix"
)

// Loader handles loading and structural validation of a MatrixConfig file.
type Loader struct {
	filePath string
}

// NewLoader creates a configuration loader for the given file path.
func NewLoader(filePath string) *Loader {
	return &Loader{filePath: filePath}
}

// Load reads the configuration file, unmarshals it and performs structural
// validation. Defaulting is handled separately by SetDefaultMatrixSpec.
func (l *Loader) Load() (*MatrixConfig, error) {
	if l.filePath == "" {
		return nil, fmt.Errorf("configuration file path is empty")
	}
	content, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", l.filePath, err)
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("configuration file '%s' is empty", l.filePath)
	}

	var cfg MatrixConfig
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config YAML from '%s': %w", l.filePath, err)
	}

	if cfg.APIVersion == "" {
		return nil, fmt.Errorf("config validation failed: apiVersion is required in '%s'", l.filePath)
	}
	if cfg.Kind != KindPluginMatrix {
		return nil, fmt.Errorf("config validation failed: kind must be %q in '%s', got %q", KindPluginMatrix, l.filePath, cfg.Kind)
	}
	if cfg.Metadata.Name == "" {
		return nil, fmt.Errorf("config validation failed: metadata.name is required in '%s'", l.filePath)
	}
	if cfg.Spec.Plugin.Package == "" {
		return nil, fmt.Errorf("config validation failed: spec.plugin.package is required in '%s'", l.filePath)
	}
	if cfg.Spec.ArtifactGlob == "" {
		return nil, fmt.Errorf("config validation failed: spec.artifactGlob is required in '%s'", l.filePath)
	}
	if cfg.Spec.ExpectFailure.Module == "" {
		return nil, fmt.Errorf("config validation failed: spec.expectFailure.module is required in '%s'", l.filePath)
	}
	if len(cfg.Spec.Suites) == 0 {
		return nil, fmt.Errorf("config validation failed: spec.suites must not be empty in '%s'", l.filePath)
	}
	for i, suite := range cfg.Spec.Suites {
		if suite.Module == "" {
			return nil, fmt.Errorf("config validation failed: spec.suites[%d].module is required in '%s'", i, l.filePath)
		}
	}
	if cfg.Spec.Remote != nil {
		if cfg.Spec.Remote.Address == "" {
			return nil, fmt.Errorf("config validation failed: spec.remote.address is required in '%s'", l.filePath)
		}
		if cfg.Spec.Remote.User == "" {
			return nil, fmt.Errorf("config validation failed: spec.remote.user is required in '%s'", l.filePath)
		}
	}

	return &cfg, nil
}
