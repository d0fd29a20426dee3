package hook

import "fmt"

// Interface is a try/catch/finally bracket around an operation. The matrix
// uses hooks as configuration prologs and epilogs.
type Interface interface {
	// Name identifies the hook in logs and reports.
	Name() string

	// Try performs the hook's operation.
	Try() error

	// Catch handles the error returned by Try. The returned error is the
	// hook's final verdict; returning nil swallows the failure.
	Catch(err error) error

	// Finally runs after Try (and Catch, if invoked), regardless of outcome.
	Finally()
}

// Call executes a hook with the full bracket and panic recovery.
func Call(h Interface) (err error) {
	if h == nil {
		return fmt.Errorf("hook cannot be nil")
	}

	defer h.Finally()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic occurred during hook %s: %v", h.Name(), r)
		}
	}()

	if tryErr := h.Try(); tryErr != nil {
		return h.Catch(tryErr)
	}
	return nil
}
