package step

import (
	"fmt"

	"github.com/forgeqa/plugmatrix/runtime"
	"github.com/sirupsen/logrus"
)

// BaseStep provides common fields and default method implementations for steps.
type BaseStep struct {
	StepName        string
	StepDescription string
}

// NewBaseStep initializes the common BaseStep fields.
func NewBaseStep(name, description string) BaseStep {
	return BaseStep{
		StepName:        name,
		StepDescription: description,
	}
}

// Name returns the name of the step.
func (bs *BaseStep) Name() string {
	return bs.StepName
}

// Description returns the description of the step.
func (bs *BaseStep) Description() string {
	return bs.StepDescription
}

// Init validates the shared preconditions. Concrete steps call this first,
// then do their own checks.
func (bs *BaseStep) Init(rt runtime.Runtime, log *logrus.Entry) error {
	if rt == nil {
		return fmt.Errorf("runtime cannot be nil for step %q", bs.StepName)
	}
	if log == nil {
		return fmt.Errorf("logger cannot be nil for step %q", bs.StepName)
	}
	return nil
}

// Execute must be overridden by concrete steps.
func (bs *BaseStep) Execute(rt runtime.Runtime, log *logrus.Entry) (string, bool, error) {
	return "", false, fmt.Errorf("Execute not implemented for step %q", bs.StepName)
}

// Post is a no-op by default. Concrete steps override it for cleanup.
func (bs *BaseStep) Post(rt runtime.Runtime, log *logrus.Entry, executeErr error) error {
	if executeErr != nil {
		log.Debugf("Step %s finished with error: %v", bs.StepName, executeErr)
	}
	return nil
}
