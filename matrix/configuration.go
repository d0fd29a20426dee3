package matrix

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/forgeqa/plugmatrix/hook"
	"github.com/forgeqa/plugmatrix/runtime"
)

// Configuration is one named environment variant of the matrix: a prolog and
// epilog hook bracketing the test body, plus an explicit environment overlay.
// Every configuration runs the identical body.
type Configuration struct {
	// Name identifies the configuration in logs and reports.
	Name string
	// Prolog is the hook name applied before the body. Empty means no-op.
	Prolog string
	// Epilog is the hook name applied after the body, provided the prolog
	// succeeded. Empty means no-op.
	Epilog string
	// Env is an explicit environment overlay active for the whole bracket.
	Env map[string]string
}

// Validate checks the configuration's structural requirements.
func (c Configuration) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("configuration name cannot be empty")
	}
	return nil
}

// HookResolver maps a hook name to its implementation bound to the runtime.
// Injecting the resolver keeps the matrix runner testable with fake hooks.
type HookResolver func(name string, rt runtime.Runtime, log *logrus.Entry) (hook.Interface, error)
