package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/forgeqa/plugmatrix/common"
	"github.com/forgeqa/plugmatrix/runtime"
	"github.com/forgeqa/plugmatrix/step"
	"github.com/forgeqa/plugmatrix/timefmt"
)

// BaseTask provides a basic implementation of the Task interface. Concrete
// tasks embed it and add their step assembly.
type BaseTask struct {
	name        string
	description string
	steps       []step.Step
}

// NewBaseTask creates a new BaseTask. Steps are added via AddStep or SetSteps.
func NewBaseTask(name, description string) BaseTask {
	return BaseTask{
		name:        name,
		description: description,
		steps:       make([]step.Step, 0),
	}
}

// Name returns the name of the task.
func (bt *BaseTask) Name() string {
	return bt.name
}

// Description returns the description of the task.
func (bt *BaseTask) Description() string {
	return bt.description
}

// Steps returns a copy of the task's step list.
func (bt *BaseTask) Steps() []step.Step {
	s := make([]step.Step, len(bt.steps))
	copy(s, bt.steps)
	return s
}

// AddStep appends a step to the task's execution list.
func (bt *BaseTask) AddStep(s step.Step) {
	bt.steps = append(bt.steps, s)
}

// SetSteps replaces the task's step list.
func (bt *BaseTask) SetSteps(steps []step.Step) {
	bt.steps = make([]step.Step, len(steps))
	copy(bt.steps, steps)
}

// Init initializes all steps in order.
func (bt *BaseTask) Init(rt runtime.Runtime, log *logrus.Entry) error {
	log.Debugf("Initializing task %s with %d steps", bt.name, len(bt.steps))
	if len(bt.steps) == 0 {
		return fmt.Errorf("task %s has no steps", bt.name)
	}
	for i, s := range bt.steps {
		stepLog := log.WithField(common.LogFieldStepName, s.Name())
		if err := s.Init(rt, stepLog); err != nil {
			return fmt.Errorf("failed to initialize step %s (index %d) in task %s: %w", s.Name(), i, bt.name, err)
		}
	}
	return nil
}

// Execute runs all steps sequentially. The first failing step aborts the rest
// unless the runtime ignores errors; Post is called for every executed step
// either way.
func (bt *BaseTask) Execute(rt runtime.Runtime, log *logrus.Entry) error {
	log.Infof("Executing task %s (%s)", bt.name, bt.description)

	var stepErrors []string
	for i, current := range bt.steps {
		stepLog := log.WithFields(logrus.Fields{
			common.LogFieldStepName: current.Name(),
			"step_index":            fmt.Sprintf("%d/%d", i+1, len(bt.steps)),
		})
		stepLog.Infof("Executing step: %s (%s)", current.Name(), current.Description())

		started := time.Now()
		output, success, stepErr := current.Execute(rt, stepLog)
		elapsed := time.Since(started)

		if output != "" {
			stepLog.Debugf("Step output:\n%s", output)
		}

		if postErr := current.Post(rt, stepLog, stepErr); postErr != nil {
			stepLog.Errorf("Post-execute failed for step %s: %v", current.Name(), postErr)
			stepErrors = append(stepErrors, fmt.Sprintf("post-execute of step %s: %v", current.Name(), postErr))
		}

		switch {
		case stepErr != nil:
			stepLog.Errorf("Step %s failed after %s: %v", current.Name(), timefmt.ShortDur(elapsed), stepErr)
			stepErrors = append(stepErrors, fmt.Sprintf("step %s: %v", current.Name(), stepErr))
			if !rt.IgnoreError() {
				return fmt.Errorf("task %s failed at step %s: %w", bt.name, current.Name(), stepErr)
			}
			stepLog.Warnf("Ignoring step failure per configuration, continuing")
		case !success:
			stepLog.Errorf("Step %s reported failure without error after %s", current.Name(), timefmt.ShortDur(elapsed))
			stepErrors = append(stepErrors, fmt.Sprintf("step %s reported not successful", current.Name()))
			if !rt.IgnoreError() {
				return fmt.Errorf("task %s failed at step %s: step reported not successful", bt.name, current.Name())
			}
		default:
			stepLog.Infof("Step %s succeeded in %s", current.Name(), timefmt.ShortDur(elapsed))
		}
	}

	if len(stepErrors) > 0 {
		return fmt.Errorf("task %s failed: %s", bt.name, strings.Join(stepErrors, "; "))
	}
	return nil
}

// Post is a no-op by default. Concrete tasks override it for task-level cleanup.
func (bt *BaseTask) Post(rt runtime.Runtime, log *logrus.Entry, executeErr error) error {
	return nil
}
