package toolchain

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgeqa/plugmatrix/executor"
)

// fakeExecutor records executed commands and replays canned results.
type fakeExecutor struct {
	commands []string
	opts     []executor.ExecOptions
	stdout   string
	stderr   string
	exitCode int
	err      error
}

func (f *fakeExecutor) Execute(ctx context.Context, command string, opts executor.ExecOptions) (string, string, int, error) {
	f.commands = append(f.commands, command)
	f.opts = append(f.opts, opts)
	return f.stdout, f.stderr, f.exitCode, f.err
}

func (f *fakeExecutor) FileExists(ctx context.Context, path string) (bool, error) { return false, nil }
func (f *fakeExecutor) DirExists(ctx context.Context, path string) (bool, error)  { return false, nil }
func (f *fakeExecutor) Glob(ctx context.Context, pattern string) ([]string, error) {
	return nil, nil
}
func (f *fakeExecutor) Remove(ctx context.Context, path string) error { return nil }
func (f *fakeExecutor) MkdirAll(ctx context.Context, path string, perm os.FileMode) error {
	return nil
}
func (f *fakeExecutor) UploadFile(ctx context.Context, localPath, targetPath string, perm os.FileMode) error {
	return nil
}
func (f *fakeExecutor) Close() error { return nil }

var _ executor.Executor = (*fakeExecutor)(nil)

func newToolchain(t *testing.T, exec executor.Executor) Toolchain {
	t.Helper()
	tc, err := NewCmdToolchain(exec, Config{
		Python:  "python3",
		Pip:     "pip3",
		Engine:  "nosetests",
		Package: "tensorflow_plugin",
	})
	require.NoError(t, err)
	return tc
}

func TestNewCmdToolchain_Validation(t *testing.T) {
	_, err := NewCmdToolchain(nil, Config{Package: "p"})
	assert.Error(t, err)

	_, err = NewCmdToolchain(&fakeExecutor{}, Config{})
	assert.Error(t, err, "missing package name must be rejected")
}

func TestQueryPluginDir(t *testing.T) {
	exec := &fakeExecutor{stdout: "/opt/plugins/tf\n"}
	tc := newToolchain(t, exec)

	dir, err := tc.QueryPluginDir(context.Background(), executor.ExecOptions{Dir: "/work"})
	require.NoError(t, err)
	assert.Equal(t, "/opt/plugins/tf", dir)

	require.Len(t, exec.commands, 1)
	assert.Contains(t, exec.commands[0], "python3 -c")
	assert.Contains(t, exec.commands[0], "tensorflow_plugin.sysconfig")
	assert.Equal(t, "/work", exec.opts[0].Dir)
}

func TestQueryPluginDir_Failure(t *testing.T) {
	exec := &fakeExecutor{exitCode: 1, stderr: "ModuleNotFoundError: tensorflow_plugin"}
	tc := newToolchain(t, exec)

	_, err := tc.QueryPluginDir(context.Background(), executor.ExecOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ModuleNotFoundError")
}

func TestQueryPluginDir_EmptyOutput(t *testing.T) {
	tc := newToolchain(t, &fakeExecutor{stdout: "  \n"})
	_, err := tc.QueryPluginDir(context.Background(), executor.ExecOptions{})
	assert.Error(t, err)
}

func TestInstallPackage(t *testing.T) {
	exec := &fakeExecutor{stdout: "Successfully installed"}
	tc := newToolchain(t, exec)

	out, err := tc.InstallPackage(context.Background(), "/dist/plugin-1.0.tar.gz", executor.ExecOptions{})
	require.NoError(t, err)
	assert.Contains(t, out, "Successfully installed")
	assert.Contains(t, exec.commands[0], "pip3 install --no-deps --force-reinstall /dist/plugin-1.0.tar.gz")
}

func TestInstallPackage_Failure(t *testing.T) {
	exec := &fakeExecutor{exitCode: 2, stderr: "bad archive"}
	tc := newToolchain(t, exec)

	_, err := tc.InstallPackage(context.Background(), "/dist/plugin-1.0.tar.gz", executor.ExecOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exit code 2")
}

func TestUninstallPackage(t *testing.T) {
	exec := &fakeExecutor{}
	tc := newToolchain(t, exec)

	_, err := tc.UninstallPackage(context.Background(), "tensorflow_plugin", executor.ExecOptions{})
	require.NoError(t, err)
	assert.Contains(t, exec.commands[0], "pip3 uninstall -y tensorflow_plugin")
}

func TestRunTestModule(t *testing.T) {
	exec := &fakeExecutor{exitCode: 0, stdout: "OK"}
	tc := newToolchain(t, exec)

	out, code, err := tc.RunTestModule(context.Background(), "test_plugin", "TestLoadOk", executor.ExecOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "OK")
	assert.Contains(t, exec.commands[0], "nosetests --verbose -s test_plugin:TestLoadOk")
}

func TestRunTestModule_NonZeroIsNotError(t *testing.T) {
	exec := &fakeExecutor{exitCode: 1, stdout: "FAILED"}
	tc := newToolchain(t, exec)

	_, code, err := tc.RunTestModule(context.Background(), "test_plugin", "", executor.ExecOptions{})
	require.NoError(t, err, "suite verdict travels in the exit code")
	assert.Equal(t, 1, code)
	assert.Contains(t, exec.commands[0], "nosetests --verbose -s test_plugin")
	assert.NotContains(t, exec.commands[0], "test_plugin:")
}

func TestConfigDefaults(t *testing.T) {
	tc, err := NewCmdToolchain(&fakeExecutor{stdout: "/d"}, Config{Package: "p"})
	require.NoError(t, err)

	impl, ok := tc.(*cmdToolchain)
	require.True(t, ok)
	assert.Equal(t, "python", impl.cfg.Python)
	assert.Equal(t, "pip", impl.cfg.Pip)
	assert.Equal(t, "nosetests", impl.cfg.Engine)
}
