package matrix

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/forgeqa/plugmatrix/common"
	"github.com/forgeqa/plugmatrix/hook"
	"github.com/forgeqa/plugmatrix/matrix/ending"
	"github.com/forgeqa/plugmatrix/runtime"
	"github.com/forgeqa/plugmatrix/task"
	"github.com/forgeqa/plugmatrix/timefmt"
)

// Runner iterates the configurations of a matrix and runs the identical test
// body under each: prolog hook, body, epilog hook, in strict bracket order.
// The first failure anywhere aborts the remaining steps of that configuration
// and all remaining configurations.
type Runner struct {
	name           string
	description    string
	configurations []Configuration
	body           task.Task
	resolveHook    HookResolver
}

// NewRunner creates a matrix runner.
func NewRunner(name, description string, configurations []Configuration, body task.Task, resolve HookResolver) (*Runner, error) {
	if name == "" {
		return nil, fmt.Errorf("matrix name cannot be empty")
	}
	if len(configurations) == 0 {
		return nil, fmt.Errorf("matrix %s has no configurations", name)
	}
	if body == nil {
		return nil, fmt.Errorf("matrix %s has no test body", name)
	}
	if resolve == nil {
		return nil, fmt.Errorf("matrix %s has no hook resolver", name)
	}
	for _, cfg := range configurations {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return &Runner{
		name:           name,
		description:    description,
		configurations: configurations,
		body:           body,
		resolveHook:    resolve,
	}, nil
}

// Name returns the matrix name.
func (r *Runner) Name() string { return r.name }

// Description returns the matrix description.
func (r *Runner) Description() string { return r.description }

// Configurations returns a copy of the configuration list.
func (r *Runner) Configurations() []Configuration {
	cfgs := make([]Configuration, len(r.configurations))
	copy(cfgs, r.configurations)
	return cfgs
}

// Run executes the matrix. The returned RunResult always covers every
// configuration (later ones marked skipped after a failure); the error is the
// first failure, to be propagated as the process exit status.
func (r *Runner) Run(rt runtime.Runtime, log *logrus.Entry) (*ending.RunResult, error) {
	matrixLog := log.WithField(common.LogFieldMatrixName, r.name)
	matrixLog.Infof("Starting matrix run %s with %d configurations", rt.RunID(), len(r.configurations))

	runResult := ending.NewRunResult(rt.RunID(), r.name)
	var firstErr error

	for _, cfg := range r.configurations {
		result := ending.NewConfigurationResult(cfg.Name)

		if firstErr != nil {
			result.Status = ending.StatusSkipped
			result.Message = "skipped after earlier failure"
			runResult.Append(result)
			continue
		}

		cfgLog := matrixLog.WithField(common.LogFieldConfiguration, cfg.Name)
		started := time.Now()
		err := r.runConfiguration(cfg, rt, cfgLog, result)
		result.Duration = time.Since(started)

		if err != nil {
			result.SetError(err, err.Error())
			cfgLog.Errorf("Configuration %s failed after %s: %v", cfg.Name, timefmt.ShortDur(result.Duration), err)
			firstErr = errors.Wrapf(err, "configuration %s failed", cfg.Name)
		} else {
			result.Status = ending.StatusSuccess
			cfgLog.Infof("Configuration %s succeeded in %s", cfg.Name, timefmt.ShortDur(result.Duration))
		}
		runResult.Append(result)
	}

	if firstErr != nil {
		return runResult, firstErr
	}
	matrixLog.Infof("Matrix run %s completed successfully", rt.RunID())
	return runResult, nil
}

// runConfiguration applies the prolog, runs the body, and applies the epilog.
// The epilog runs whenever the prolog succeeded, even if the body failed; a
// prolog failure skips both body and epilog.
func (r *Runner) runConfiguration(cfg Configuration, rt runtime.Runtime, log *logrus.Entry, result *ending.ConfigurationResult) error {
	for key, value := range cfg.Env {
		rt.SetEnv(key, value)
	}
	defer func() {
		for key := range cfg.Env {
			rt.UnsetEnv(key)
		}
	}()

	prolog, err := r.resolveHook(cfg.Prolog, rt, log)
	if err != nil {
		return err
	}
	epilog, err := r.resolveHook(cfg.Epilog, rt, log)
	if err != nil {
		return err
	}

	log.Infof("Applying prolog hook %s", prolog.Name())
	if err := hook.Call(prolog); err != nil {
		return errors.Wrap(err, "prolog hook failed")
	}

	bodyErr := r.runBody(rt, log)

	log.Infof("Applying epilog hook %s", epilog.Name())
	if epilogErr := hook.Call(epilog); epilogErr != nil {
		if bodyErr != nil {
			result.AddError(errors.Wrap(epilogErr, "epilog hook failed"))
			return bodyErr
		}
		return errors.Wrap(epilogErr, "epilog hook failed")
	}
	return bodyErr
}

func (r *Runner) runBody(rt runtime.Runtime, log *logrus.Entry) error {
	taskLog := log.WithField(common.LogFieldTaskName, r.body.Name())

	if err := r.body.Init(rt, taskLog); err != nil {
		return errors.Wrapf(err, "failed to initialize task %s", r.body.Name())
	}

	execErr := r.body.Execute(rt, taskLog)

	if postErr := r.body.Post(rt, taskLog, execErr); postErr != nil {
		taskLog.Errorf("Post-execute failed for task %s: %v", r.body.Name(), postErr)
		if execErr == nil {
			return postErr
		}
	}
	return execErr
}
