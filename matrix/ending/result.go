package ending

import (
	"fmt"
	"strings"
	"time"
)

// Status is the execution outcome of one matrix configuration.
type Status int

const (
	StatusPending Status = iota
	StatusSuccess
	StatusFailed
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "SUCCESS"
	case StatusFailed:
		return "FAILED"
	case StatusSkipped:
		return "SKIPPED"
	case StatusPending:
		return "PENDING"
	default:
		return fmt.Sprintf("UNKNOWN_STATUS_%d", int(s))
	}
}

// ConfigurationResult holds the outcome of the test body under one
// configuration.
type ConfigurationResult struct {
	Configuration string
	Status        Status
	Message       string
	Duration      time.Duration
	Errors        []error
}

// NewConfigurationResult creates a pending result for the named configuration.
func NewConfigurationResult(name string) *ConfigurationResult {
	return &ConfigurationResult{
		Configuration: name,
		Status:        StatusPending,
		Errors:        make([]error, 0),
	}
}

// IsFailed reports whether the configuration is considered failed: either
// explicitly marked, or still pending with accumulated errors.
func (r *ConfigurationResult) IsFailed() bool {
	if r.Status == StatusFailed {
		return true
	}
	return r.Status == StatusPending && len(r.Errors) > 0
}

// AddError appends an error, marking the result failed unless it was skipped.
func (r *ConfigurationResult) AddError(err error) {
	if err == nil {
		return
	}
	r.Errors = append(r.Errors, err)
	if r.Status == StatusPending || r.Status == StatusSuccess {
		r.Status = StatusFailed
	}
}

// SetError records a primary error with a message and marks the result failed.
func (r *ConfigurationResult) SetError(err error, message string) {
	r.Message = message
	if err != nil {
		r.Errors = append(r.Errors, err)
	}
	r.Status = StatusFailed
}

// CombinedError aggregates all recorded errors into one, or nil.
func (r *ConfigurationResult) CombinedError() error {
	switch len(r.Errors) {
	case 0:
		return nil
	case 1:
		return r.Errors[0]
	}
	parts := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		parts = append(parts, e.Error())
	}
	return fmt.Errorf("multiple errors occurred: %s", strings.Join(parts, "; "))
}

// RunResult aggregates all configuration results of one matrix run.
type RunResult struct {
	RunID   string
	Matrix  string
	Results []*ConfigurationResult
}

// NewRunResult creates an empty run result.
func NewRunResult(runID, matrix string) *RunResult {
	return &RunResult{
		RunID:   runID,
		Matrix:  matrix,
		Results: make([]*ConfigurationResult, 0),
	}
}

// Append adds a configuration result.
func (r *RunResult) Append(res *ConfigurationResult) {
	r.Results = append(r.Results, res)
}

// IsFailed reports whether any configuration failed.
func (r *RunResult) IsFailed() bool {
	for _, res := range r.Results {
		if res.IsFailed() {
			return true
		}
	}
	return false
}

// FirstError returns the first recorded error across configurations, or nil.
func (r *RunResult) FirstError() error {
	for _, res := range r.Results {
		if err := res.CombinedError(); err != nil {
			return err
		}
	}
	return nil
}
