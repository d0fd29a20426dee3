package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetDefaultMatrixSpec(t *testing.T) {
	spec := &MatrixSpec{
		ArtifactGlob: "dist/plugin-*.tar.gz",
		Plugin:       PluginSpec{Package: "tensorflow_plugin"},
	}
	require.NoError(t, SetDefaultMatrixSpec(spec))

	assert.Equal(t, DefaultPython, spec.Tools.Python)
	assert.Equal(t, DefaultPip, spec.Tools.Pip)
	assert.Equal(t, DefaultEngine, spec.Tools.Engine)
	assert.Equal(t, DefaultLibGlob, spec.Plugin.LibGlob)

	require.Len(t, spec.Configurations, 3)
	assert.Equal(t, "default", spec.Configurations[0].Name)
	assert.Equal(t, "conda", spec.Configurations[1].Name)
	assert.Equal(t, "enable-conda", spec.Configurations[1].Prolog)
	assert.Equal(t, "disable-conda", spec.Configurations[1].Epilog)
	assert.Equal(t, "virtualenv", spec.Configurations[2].Name)
	assert.Equal(t, "enable-virtualenv", spec.Configurations[2].Prolog)
	assert.Equal(t, "disable-virtualenv", spec.Configurations[2].Epilog)
}

func TestSetDefaultMatrixSpec_KeepsExplicitValues(t *testing.T) {
	spec := &MatrixSpec{
		Plugin: PluginSpec{Package: "p", LibGlob: "*.dylib"},
		Tools:  ToolsSpec{Python: "python3.11", Pip: "pip3.11", Engine: "pytest"},
		Configurations: []ConfigurationSpec{
			{Name: "only-default"},
		},
	}
	require.NoError(t, SetDefaultMatrixSpec(spec))

	assert.Equal(t, "python3.11", spec.Tools.Python)
	assert.Equal(t, "pytest", spec.Tools.Engine)
	assert.Equal(t, "*.dylib", spec.Plugin.LibGlob)
	require.Len(t, spec.Configurations, 1)
	assert.Equal(t, "only-default", spec.Configurations[0].Name)
}

func TestSetDefaultMatrixSpec_RemotePort(t *testing.T) {
	spec := &MatrixSpec{
		Plugin: PluginSpec{Package: "p"},
		Remote: &RemoteSpec{Address: "qa-host", User: "qa"},
	}
	require.NoError(t, SetDefaultMatrixSpec(spec))
	assert.Equal(t, DefaultSSHPort, spec.Remote.Port)

	spec.Remote.Port = 2222
	require.NoError(t, SetDefaultMatrixSpec(spec))
	assert.Equal(t, 2222, spec.Remote.Port)
}

func TestSetDefaultMatrixSpec_Errors(t *testing.T) {
	assert.Error(t, SetDefaultMatrixSpec(nil))

	spec := &MatrixSpec{
		Plugin:         PluginSpec{Package: "p"},
		Configurations: []ConfigurationSpec{{Name: ""}},
	}
	err := SetDefaultMatrixSpec(spec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}
