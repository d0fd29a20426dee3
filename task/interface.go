package task

import (
	"github.com/forgeqa/plugmatrix/runtime"
	"github.com/sirupsen/logrus"
)

// Task is an ordered sequence of steps executed as a unit. The matrix runs the
// identical task body under every configuration.
type Task interface {
	// Name returns the unique name of the task.
	Name() string

	// Description provides a human-readable summary of what the task does.
	Description() string

	// Init initializes and validates the task and all its steps.
	Init(rt runtime.Runtime, log *logrus.Entry) error

	// Execute runs the task's steps strictly in sequence, failing fast unless
	// the runtime is configured to ignore errors.
	Execute(rt runtime.Runtime, log *logrus.Entry) error

	// Post performs cleanup after Execute. It receives Execute's error, if any.
	Post(rt runtime.Runtime, log *logrus.Entry, executeErr error) error
}
