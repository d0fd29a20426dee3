package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfigYAML = `
apiVersion: plugmatrix.forgeqa.io/v1
kind: PluginMatrix
metadata:
  name: tf-plugin-qa
spec:
  workDir: /opt/plugin/qa
  artifactGlob: dist/plugin-*.tar.gz
  plugin:
    package: tensorflow_plugin
    libGlob: "*.so"
  tools:
    python: python3
    pip: pip3
  configurations:
    - name: default
    - name: conda
      prolog: enable-conda
      epilog: disable-conda
      env:
        PLUGIN_VARIANT: conda
  expectFailure:
    module: test_plugin_load
    class: TestLoadFails
  suites:
    - module: test_plugin
    - module: test_plugin_ops
      class: TestOps
  reportPath: report.yaml
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plugmatrix.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoader_ValidConfig(t *testing.T) {
	cfg, err := NewLoader(writeConfig(t, validConfigYAML)).Load()
	require.NoError(t, err)

	assert.Equal(t, KindPluginMatrix, cfg.Kind)
	assert.Equal(t, "tf-plugin-qa", cfg.Metadata.Name)
	assert.Equal(t, "/opt/plugin/qa", cfg.Spec.WorkDir)
	assert.Equal(t, "dist/plugin-*.tar.gz", cfg.Spec.ArtifactGlob)
	assert.Equal(t, "tensorflow_plugin", cfg.Spec.Plugin.Package)
	assert.Equal(t, "python3", cfg.Spec.Tools.Python)

	require.Len(t, cfg.Spec.Configurations, 2)
	assert.Equal(t, "enable-conda", cfg.Spec.Configurations[1].Prolog)
	assert.Equal(t, map[string]string{"PLUGIN_VARIANT": "conda"}, cfg.Spec.Configurations[1].Env)

	assert.Equal(t, "test_plugin_load", cfg.Spec.ExpectFailure.Module)
	assert.Equal(t, "TestLoadFails", cfg.Spec.ExpectFailure.Class)
	require.Len(t, cfg.Spec.Suites, 2)
	assert.Equal(t, "TestOps", cfg.Spec.Suites[1].Class)
	assert.Nil(t, cfg.Spec.Remote)
}

func TestLoader_MissingFile(t *testing.T) {
	_, err := NewLoader(filepath.Join(t.TempDir(), "nope.yaml")).Load()
	assert.Error(t, err)

	_, err = NewLoader("").Load()
	assert.Error(t, err)
}

func TestLoader_EmptyFile(t *testing.T) {
	_, err := NewLoader(writeConfig(t, "")).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is empty")
}

func TestLoader_InvalidYAML(t *testing.T) {
	_, err := NewLoader(writeConfig(t, "kind: [unclosed")).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
}

func TestLoader_StructuralValidation(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(yaml string) string
		wantErr string
	}{
		{"wrong kind", replacer("kind: PluginMatrix", "kind: Cluster"), "kind must be"},
		{"missing apiVersion", replacer("apiVersion: plugmatrix.forgeqa.io/v1", "apiVersion: \"\""), "apiVersion is required"},
		{"missing name", replacer("name: tf-plugin-qa", "name: \"\""), "metadata.name is required"},
		{"missing package", replacer("package: tensorflow_plugin", "package: \"\""), "spec.plugin.package is required"},
		{"missing artifactGlob", replacer("artifactGlob: dist/plugin-*.tar.gz", "artifactGlob: \"\""), "spec.artifactGlob is required"},
		{"missing expectFailure module", replacer("module: test_plugin_load", "module: \"\""), "spec.expectFailure.module is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLoader(writeConfig(t, tc.mutate(validConfigYAML))).Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func replacer(from, to string) func(string) string {
	return func(s string) string {
		return strings.Replace(s, from, to, 1)
	}
}

func TestLoader_SuitesRequired(t *testing.T) {
	yaml := `
apiVersion: v1
kind: PluginMatrix
metadata:
  name: m
spec:
  artifactGlob: "*.tar.gz"
  plugin:
    package: p
  expectFailure:
    module: test_load
`
	_, err := NewLoader(writeConfig(t, yaml)).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "spec.suites must not be empty")
}

func TestLoader_RemoteValidation(t *testing.T) {
	yaml := validConfigYAML + `
  remote:
    address: qa-host.example.com
    port: 2222
    user: qa
    privateKeyPath: /home/qa/.ssh/id_ed25519
    basePath: /usr/local/bin:/usr/bin:/bin
`
	cfg, err := NewLoader(writeConfig(t, yaml)).Load()
	require.NoError(t, err)
	require.NotNil(t, cfg.Spec.Remote)
	assert.Equal(t, "qa-host.example.com", cfg.Spec.Remote.Address)
	assert.Equal(t, 2222, cfg.Spec.Remote.Port)

	missingUser := validConfigYAML + `
  remote:
    address: qa-host.example.com
`
	_, err = NewLoader(writeConfig(t, missingUser)).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "spec.remote.user is required")
}
