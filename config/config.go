package config

import (
	"time"
)

// MatrixConfig is the top-level configuration structure.
type MatrixConfig struct {
	APIVersion string       `yaml:"apiVersion"`
	Kind       string       `yaml:"kind"`
	Metadata   MetadataSpec `yaml:"metadata"`
	Spec       MatrixSpec   `yaml:"spec"`
}

// MetadataSpec carries identifying metadata for the matrix.
type MetadataSpec struct {
	Name string `yaml:"name"`
}

// MatrixSpec defines the matrix: where to run, what artifact to install, which
// configurations to iterate and which suites form the test body.
type MatrixSpec struct {
	// WorkDir is the directory every external command runs in, typically the
	// directory holding the plugin's test modules.
	WorkDir string `yaml:"workDir"`
	// ArtifactGlob locates the locally built distribution archive, resolved
	// against WorkDir when relative.
	ArtifactGlob string `yaml:"artifactGlob"`

	Plugin PluginSpec `yaml:"plugin"`
	Tools  ToolsSpec  `yaml:"tools,omitempty"`

	// Configurations to iterate. When empty, the default matrix applies:
	// plain environment, conda, virtualenv.
	Configurations []ConfigurationSpec `yaml:"configurations,omitempty"`

	// ExpectFailure is the positive-control test case run with the plugin
	// binaries removed.
	ExpectFailure SuiteSpec `yaml:"expectFailure"`
	// Suites run after the artifact is reinstalled.
	Suites []SuiteSpec `yaml:"suites"`

	// Remote, when set, runs the whole matrix on a remote test host over SSH.
	Remote *RemoteSpec `yaml:"remote,omitempty"`

	// LogDir enables rotating file logs when non-empty.
	LogDir string `yaml:"logDir,omitempty"`
	// ReportPath is where the YAML run report is written. Empty disables it.
	ReportPath string `yaml:"reportPath,omitempty"`
}

// PluginSpec identifies the plugin package under test.
type PluginSpec struct {
	// Package is the importable name of the plugin package, whose sysconfig
	// helper reports the plugin directory.
	Package string `yaml:"package"`
	// LibGlob matches the binary plugin files inside the plugin directory.
	LibGlob string `yaml:"libGlob,omitempty"`
}

// ToolsSpec names the external tools driven by the matrix.
type ToolsSpec struct {
	Python string `yaml:"python,omitempty"`
	Pip    string `yaml:"pip,omitempty"`
	Engine string `yaml:"engine,omitempty"`
}

// ConfigurationSpec is one environment variant of the matrix.
type ConfigurationSpec struct {
	Name   string            `yaml:"name"`
	Prolog string            `yaml:"prolog,omitempty"`
	Epilog string            `yaml:"epilog,omitempty"`
	Env    map[string]string `yaml:"env,omitempty"`
}

// SuiteSpec names a test module with an optional class filter.
type SuiteSpec struct {
	Module string `yaml:"module"`
	Class  string `yaml:"class,omitempty"`
}

// RemoteSpec describes the SSH target for remote runs.
type RemoteSpec struct {
	Address        string        `yaml:"address"`
	Port           int           `yaml:"port,omitempty"`
	User           string        `yaml:"user"`
	Password       string        `yaml:"password,omitempty"`
	PrivateKeyPath string        `yaml:"privateKeyPath,omitempty"`
	Timeout        time.Duration `yaml:"timeout,omitempty"`
	// BasePath is the PATH on the remote host that environment hooks prepend
	// to. Required for remote runs using conda or virtualenv configurations.
	BasePath string `yaml:"basePath,omitempty"`
}
