package plugintest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSpec() Spec {
	return Spec{
		LibGlob:       "*.so",
		ExpectFailure: Suite{Module: "test_plugin_load", Class: "TestLoadFails"},
		ArchiveGlob:   "plugin-*.tar.gz",
		Suites: []Suite{
			{Module: "test_plugin"},
			{Module: "test_plugin_ops", Class: "TestOps"},
		},
	}
}

func TestNewPluginTestTask_StepSequence(t *testing.T) {
	task, err := NewPluginTestTask(validSpec())
	require.NoError(t, err)

	assert.Equal(t, "plugin-test", task.Name())
	assert.Equal(t, []string{
		"remove-artifact",
		"expect-load-failure",
		"install-artifact",
		"run-suite-test_plugin",
		"run-suite-test_plugin_ops:TestOps",
	}, task.StepNames())
}

func TestNewPluginTestTask_Validation(t *testing.T) {
	spec := validSpec()
	spec.ExpectFailure = Suite{}
	_, err := NewPluginTestTask(spec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expect-failure")

	spec = validSpec()
	spec.ArchiveGlob = ""
	_, err = NewPluginTestTask(spec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "archive glob")

	spec = validSpec()
	spec.Suites = nil
	_, err = NewPluginTestTask(spec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one test suite")
}

func TestNewPluginTestTask_EmptyLibGlobDefaults(t *testing.T) {
	spec := validSpec()
	spec.LibGlob = ""
	task, err := NewPluginTestTask(spec)
	require.NoError(t, err)
	assert.Equal(t, "remove-artifact", task.StepNames()[0])
}
