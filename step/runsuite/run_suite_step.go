package runsuite

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/forgeqa/plugmatrix/runtime"
	"github.com/forgeqa/plugmatrix/step"
)

// RunSuiteStep invokes the test engine against a named test module, optionally
// narrowed to a single test class. Any failing test case inside the suite is a
// harness failure.
type RunSuiteStep struct {
	step.BaseStep
	Module string
	Class  string
}

// NewRunSuiteStep creates the step for the given test module and optional
// class filter.
func NewRunSuiteStep(module, class string) *RunSuiteStep {
	name := "run-suite-" + module
	if class != "" {
		name += ":" + class
	}
	return &RunSuiteStep{
		BaseStep: step.NewBaseStep(name, fmt.Sprintf("Run test suite %s", module)),
		Module:   module,
		Class:    class,
	}
}

func (s *RunSuiteStep) Init(rt runtime.Runtime, log *logrus.Entry) error {
	if err := s.BaseStep.Init(rt, log); err != nil {
		return err
	}
	if s.Module == "" {
		return fmt.Errorf("test module cannot be empty for step %s", s.Name())
	}
	return nil
}

func (s *RunSuiteStep) Execute(rt runtime.Runtime, log *logrus.Entry) (string, bool, error) {
	target := s.Module
	if s.Class != "" {
		target += ":" + s.Class
	}
	log.Infof("Running test suite %s", target)

	output, code, err := rt.GetToolchain().RunTestModule(context.Background(), s.Module, s.Class, rt.ExecOptions())
	if err != nil {
		return output, false, err
	}
	if code != 0 {
		return output, false, errors.Errorf("test suite %s failed with exit code %d", target, code)
	}
	return output, true, nil
}

var _ step.Step = (*RunSuiteStep)(nil)
