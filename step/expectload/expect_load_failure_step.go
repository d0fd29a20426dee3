package expectload

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/forgeqa/plugmatrix/runtime"
	"github.com/forgeqa/plugmatrix/step"
)

// ExpectLoadFailureStep runs the positive-control test case: with the plugin
// binaries removed, the named test case asserts that loading the plugin fails
// cleanly. The test case itself is expected to PASS; a non-zero verdict here
// means the plugin loaded when it should not have, and fails the run.
type ExpectLoadFailureStep struct {
	step.BaseStep
	Module string
	Class  string
}

// NewExpectLoadFailureStep creates the step for the given test module and
// optional class filter.
func NewExpectLoadFailureStep(module, class string) *ExpectLoadFailureStep {
	return &ExpectLoadFailureStep{
		BaseStep: step.NewBaseStep("expect-load-failure", "Verify the plugin refuses to load when absent"),
		Module:   module,
		Class:    class,
	}
}

func (s *ExpectLoadFailureStep) Init(rt runtime.Runtime, log *logrus.Entry) error {
	if err := s.BaseStep.Init(rt, log); err != nil {
		return err
	}
	if s.Module == "" {
		return fmt.Errorf("test module cannot be empty for step %s", s.Name())
	}
	return nil
}

func (s *ExpectLoadFailureStep) Execute(rt runtime.Runtime, log *logrus.Entry) (string, bool, error) {
	log.Infof("Running load-failure check: %s%s", s.Module, classSuffix(s.Class))

	output, code, err := rt.GetToolchain().RunTestModule(context.Background(), s.Module, s.Class, rt.ExecOptions())
	if err != nil {
		return output, false, err
	}
	if code != 0 {
		return output, false, errors.Errorf(
			"load-failure check %s%s did not pass (exit code %d); the plugin may still be loadable",
			s.Module, classSuffix(s.Class), code)
	}
	return output, true, nil
}

func classSuffix(class string) string {
	if class == "" {
		return ""
	}
	return ":" + class
}

var _ step.Step = (*ExpectLoadFailureStep)(nil)
