package plugintest

import (
	"fmt"

	"github.com/forgeqa/plugmatrix/step/expectload"
	"github.com/forgeqa/plugmatrix/step/installartifact"
	"github.com/forgeqa/plugmatrix/step/removeartifact"
	"github.com/forgeqa/plugmatrix/step/runsuite"
	"github.com/forgeqa/plugmatrix/task"
)

// Suite names a test module to run, optionally narrowed to one class.
type Suite struct {
	Module string
	Class  string
}

// Spec describes the fixed test body executed under every matrix
// configuration: remove the installed plugin binaries, verify the plugin
// refuses to load, reinstall the packaged artifact, then run the test suites.
type Spec struct {
	// LibGlob matches plugin binaries inside the resolved plugin directory.
	LibGlob string
	// ExpectFailure is the positive-control test case run while the plugin
	// binaries are absent.
	ExpectFailure Suite
	// ArchiveGlob locates the locally built distribution archive.
	ArchiveGlob string
	// Suites run after the artifact is reinstalled.
	Suites []Suite
}

// PluginTestTask is the matrix test body as a Task.
type PluginTestTask struct {
	task.BaseTask
}

// NewPluginTestTask assembles the step sequence from the spec.
func NewPluginTestTask(spec Spec) (*PluginTestTask, error) {
	if spec.ExpectFailure.Module == "" {
		return nil, fmt.Errorf("plugin test task requires an expect-failure test case")
	}
	if spec.ArchiveGlob == "" {
		return nil, fmt.Errorf("plugin test task requires an artifact archive glob")
	}
	if len(spec.Suites) == 0 {
		return nil, fmt.Errorf("plugin test task requires at least one test suite")
	}

	t := &PluginTestTask{
		BaseTask: task.NewBaseTask("plugin-test", "End-to-end plugin install and load test body"),
	}
	t.AddStep(removeartifact.NewRemoveArtifactStep(spec.LibGlob))
	t.AddStep(expectload.NewExpectLoadFailureStep(spec.ExpectFailure.Module, spec.ExpectFailure.Class))
	t.AddStep(installartifact.NewInstallArtifactStep(spec.ArchiveGlob, spec.LibGlob))
	for _, suite := range spec.Suites {
		t.AddStep(runsuite.NewRunSuiteStep(suite.Module, suite.Class))
	}
	return t, nil
}

var _ task.Task = (*PluginTestTask)(nil)

// StepNames lists the assembled sequence; used for validation and reporting.
func (t *PluginTestTask) StepNames() []string {
	steps := t.Steps()
	names := make([]string, len(steps))
	for i, s := range steps {
		names[i] = s.Name()
	}
	return names
}
