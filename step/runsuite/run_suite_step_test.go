package runsuite

import (
	"context"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgeqa/plugmatrix/executor"
	"github.com/forgeqa/plugmatrix/logger"
	"github.com/forgeqa/plugmatrix/runtime"
	"github.com/forgeqa/plugmatrix/toolchain"
)

type nullExecutor struct{}

func (nullExecutor) Execute(ctx context.Context, command string, opts executor.ExecOptions) (string, string, int, error) {
	return "", "", 0, nil
}
func (nullExecutor) FileExists(ctx context.Context, path string) (bool, error) { return false, nil }
func (nullExecutor) DirExists(ctx context.Context, path string) (bool, error)  { return false, nil }
func (nullExecutor) Glob(ctx context.Context, pattern string) ([]string, error) {
	return nil, nil
}
func (nullExecutor) Remove(ctx context.Context, path string) error { return nil }
func (nullExecutor) MkdirAll(ctx context.Context, path string, perm os.FileMode) error {
	return nil
}
func (nullExecutor) UploadFile(ctx context.Context, localPath, targetPath string, perm os.FileMode) error {
	return nil
}
func (nullExecutor) Close() error { return nil }

type fakeToolchain struct {
	module   string
	class    string
	output   string
	exitCode int
}

func (f *fakeToolchain) QueryPluginDir(ctx context.Context, opts executor.ExecOptions) (string, error) {
	return "", nil
}
func (f *fakeToolchain) InstallPackage(ctx context.Context, archivePath string, opts executor.ExecOptions) (string, error) {
	return "", nil
}
func (f *fakeToolchain) UninstallPackage(ctx context.Context, pkgName string, opts executor.ExecOptions) (string, error) {
	return "", nil
}
func (f *fakeToolchain) RunTestModule(ctx context.Context, module, class string, opts executor.ExecOptions) (string, int, error) {
	f.module, f.class = module, class
	return f.output, f.exitCode, nil
}
func (f *fakeToolchain) RunCommand(ctx context.Context, command string, opts executor.ExecOptions) (string, int, error) {
	return "", 0, nil
}

var _ toolchain.Toolchain = (*fakeToolchain)(nil)

func newTestRuntime(t *testing.T, tools toolchain.Toolchain) runtime.Runtime {
	t.Helper()
	rt, err := runtime.NewRuntime(runtime.Config{Executor: nullExecutor{}, Toolchain: tools})
	require.NoError(t, err)
	return rt
}

func TestRunSuiteStep_Name(t *testing.T) {
	assert.Equal(t, "run-suite-test_plugin", NewRunSuiteStep("test_plugin", "").Name())
	assert.Equal(t, "run-suite-test_plugin:TestOps", NewRunSuiteStep("test_plugin", "TestOps").Name())
}

func TestRunSuiteStep_Passes(t *testing.T) {
	tools := &fakeToolchain{output: "Ran 12 tests\nOK"}
	rt := newTestRuntime(t, tools)
	log := logger.NewTestLogger(io.Discard)

	s := NewRunSuiteStep("test_plugin", "TestOps")
	require.NoError(t, s.Init(rt, log))

	output, ok, err := s.Execute(rt, log)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, output, "OK")
	assert.Equal(t, "test_plugin", tools.module)
	assert.Equal(t, "TestOps", tools.class)
}

func TestRunSuiteStep_FailingSuite(t *testing.T) {
	tools := &fakeToolchain{output: "FAILED (failures=2)", exitCode: 1}
	rt := newTestRuntime(t, tools)
	log := logger.NewTestLogger(io.Discard)

	s := NewRunSuiteStep("test_plugin", "")
	require.NoError(t, s.Init(rt, log))

	output, ok, err := s.Execute(rt, log)
	assert.False(t, ok)
	assert.Contains(t, output, "FAILED")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "test suite test_plugin failed with exit code 1")
}

func TestRunSuiteStep_RequiresModule(t *testing.T) {
	rt := newTestRuntime(t, &fakeToolchain{})
	s := NewRunSuiteStep("", "")
	assert.Error(t, s.Init(rt, logger.NewTestLogger(io.Discard)))
}
