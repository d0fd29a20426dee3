package executor

import (
	"context"
	"os"
)

// ExecOptions carries the explicit process state for one invocation: the
// working directory and the environment overlay. Nothing is inherited
// implicitly beyond the parent environment.
type ExecOptions struct {
	// Dir is the working directory for the command. Empty means inherit.
	Dir string
	// Env is an overlay of KEY=VALUE pairs appended to the parent environment.
	Env []string
}

// Executor runs commands and manipulates files on a target system, which may
// be the local machine or a remote test host. All failure modes surface as
// explicit results; a non-zero exit code is not an error by itself.
type Executor interface {
	// Execute runs a shell command and returns its output and exit code.
	// The returned error covers invocation failures (command not startable),
	// not non-zero exits.
	Execute(ctx context.Context, command string, opts ExecOptions) (stdout string, stderr string, exitCode int, err error)

	// FileExists reports whether path exists and is a regular file.
	FileExists(ctx context.Context, path string) (bool, error)

	// DirExists reports whether path exists and is a directory.
	DirExists(ctx context.Context, path string) (bool, error)

	// Glob returns the paths matching pattern on the target, sorted.
	Glob(ctx context.Context, pattern string) ([]string, error)

	// Remove deletes a single file on the target.
	Remove(ctx context.Context, path string) error

	// MkdirAll creates a directory and its parents on the target.
	MkdirAll(ctx context.Context, path string, perm os.FileMode) error

	// UploadFile copies a local file to the target. For a local executor both
	// sides are the local filesystem.
	UploadFile(ctx context.Context, localPath, targetPath string, perm os.FileMode) error

	// Close releases any held connections.
	Close() error
}
