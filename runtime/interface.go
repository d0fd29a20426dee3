package runtime

import (
	"github.com/forgeqa/plugmatrix/cache"
	"github.com/forgeqa/plugmatrix/executor"
	"github.com/forgeqa/plugmatrix/toolchain"
)

// Runtime carries the execution context for one matrix run: the target
// executor, the toolchain collaborators, the explicit working directory and
// environment overlay, and a cache for cross-step state.
type Runtime interface {
	// GetExecutor returns the executor for the target system.
	GetExecutor() executor.Executor

	// GetToolchain returns the external tool collaborators.
	GetToolchain() toolchain.Toolchain

	WorkDir() string
	ObjectName() string
	RunID() string
	Verbose() bool
	IgnoreError() bool

	// ExecOptions snapshots the current working directory and environment
	// overlay for passing to executor and toolchain calls.
	ExecOptions() executor.ExecOptions

	// SetEnv adds or replaces a variable in the environment overlay.
	SetEnv(key, value string)

	// UnsetEnv removes a variable from the environment overlay.
	UnsetEnv(key string)

	// PrependPath puts dir at the front of the PATH seen by executed commands.
	PrependPath(dir string)

	// RemovePathPrefix undoes a previous PrependPath of dir.
	RemovePathPrefix(dir string)

	// Cache returns the per-run key/value store shared between steps.
	Cache() *cache.Cache[string, string]
}
