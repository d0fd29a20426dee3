package toolchain

import (
	"context"

	"github.com/forgeqa/plugmatrix/executor"
)

// Toolchain abstracts the external collaborators the matrix drives: the
// interpreter's sysconfig query, the package installer, and the test engine.
// Every method takes explicit ExecOptions so working directory and environment
// overlay are never ambient state. Implementations must be safe to substitute
// with fakes in tests.
type Toolchain interface {
	// QueryPluginDir resolves the directory holding installed plugin binaries
	// by invoking the plugin package's sysconfig helper. It fails when the
	// helper package itself cannot be imported.
	QueryPluginDir(ctx context.Context, opts executor.ExecOptions) (string, error)

	// InstallPackage installs a locally built distribution archive.
	// Returns the installer's combined output.
	InstallPackage(ctx context.Context, archivePath string, opts executor.ExecOptions) (string, error)

	// UninstallPackage removes an installed package by name.
	UninstallPackage(ctx context.Context, pkgName string, opts executor.ExecOptions) (string, error)

	// RunTestModule runs a test module, optionally narrowed to a single test
	// class. The exit code carries the suite verdict; err covers invocation
	// failures only.
	RunTestModule(ctx context.Context, module, class string, opts executor.ExecOptions) (output string, exitCode int, err error)

	// RunCommand executes an arbitrary command on the target, used by
	// environment hooks for setup and teardown.
	RunCommand(ctx context.Context, command string, opts executor.ExecOptions) (output string, exitCode int, err error)
}
