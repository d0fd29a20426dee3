package step

import (
	"github.com/forgeqa/plugmatrix/runtime"
	"github.com/sirupsen/logrus"
)

// Step represents one unit of work within a Task. Steps run strictly in
// sequence; a failing step stops the remaining steps of its task.
type Step interface {
	// Name returns the short name of the step.
	Name() string

	// Description returns a human-readable description of what the step does.
	Description() string

	// Init performs validation and preparation before execution.
	Init(rt runtime.Runtime, log *logrus.Entry) error

	// Execute performs the primary action of the step. It returns collected
	// output (e.g. command output), a success flag, and an error for critical
	// failures. The logger entry carries step context.
	Execute(rt runtime.Runtime, log *logrus.Entry) (output string, success bool, err error)

	// Post performs cleanup after Execute. It receives Execute's error, if any.
	Post(rt runtime.Runtime, log *logrus.Entry, executeErr error) error
}
