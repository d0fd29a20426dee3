package toolchain

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/forgeqa/plugmatrix/common"
	"github.com/forgeqa/plugmatrix/executor"
	"github.com/forgeqa/plugmatrix/util"
)

// Config names the concrete tools a cmdToolchain drives.
type Config struct {
	// Python is the interpreter used for sysconfig queries, e.g. "python3".
	Python string
	// Pip is the package installer binary, e.g. "pip3".
	Pip string
	// Engine is the test execution engine, e.g. "nosetests".
	Engine string
	// Package is the importable name of the plugin package under test.
	Package string
}

func (c *Config) applyDefaults() {
	c.Python = util.FirstNonEmpty(c.Python, "python")
	c.Pip = util.FirstNonEmpty(c.Pip, "pip")
	c.Engine = util.FirstNonEmpty(c.Engine, "nosetests")
}

// cmdToolchain implements Toolchain by rendering command templates and running
// them through an Executor.
type cmdToolchain struct {
	exec executor.Executor
	cfg  Config
}

// NewCmdToolchain creates a Toolchain bound to the given executor and tools.
func NewCmdToolchain(exec executor.Executor, cfg Config) (Toolchain, error) {
	if exec == nil {
		return nil, errors.New("toolchain requires an executor")
	}
	if cfg.Package == "" {
		return nil, errors.New("toolchain requires the plugin package name")
	}
	cfg.applyDefaults()
	return &cmdToolchain{exec: exec, cfg: cfg}, nil
}

func (t *cmdToolchain) QueryPluginDir(ctx context.Context, opts executor.ExecOptions) (string, error) {
	command, err := util.RenderString(common.QueryPluginDirCmdTpl, util.Data{
		"Python":  t.cfg.Python,
		"Package": t.cfg.Package,
	})
	if err != nil {
		return "", err
	}
	stdout, stderr, code, err := t.exec.Execute(ctx, command, opts)
	if err != nil {
		return "", errors.Wrap(err, "plugin dir query could not be invoked")
	}
	if code != 0 {
		return "", errors.Errorf("plugin dir query failed with exit code %d: %s", code, strings.TrimSpace(stderr))
	}
	dir := strings.TrimSpace(stdout)
	if dir == "" {
		return "", errors.New("plugin dir query returned an empty path")
	}
	return dir, nil
}

func (t *cmdToolchain) InstallPackage(ctx context.Context, archivePath string, opts executor.ExecOptions) (string, error) {
	command, err := util.RenderString(common.InstallPackageCmdTpl, util.Data{
		"Pip":     t.cfg.Pip,
		"Archive": archivePath,
	})
	if err != nil {
		return "", err
	}
	stdout, stderr, code, err := t.exec.Execute(ctx, command, opts)
	output := stdout + stderr
	if err != nil {
		return output, errors.Wrapf(err, "installer could not be invoked for %s", archivePath)
	}
	if code != 0 {
		return output, errors.Errorf("installation of %s failed with exit code %d: %s", archivePath, code, strings.TrimSpace(stderr))
	}
	return output, nil
}

func (t *cmdToolchain) UninstallPackage(ctx context.Context, pkgName string, opts executor.ExecOptions) (string, error) {
	command, err := util.RenderString(common.UninstallPackageCmdTpl, util.Data{
		"Pip":     t.cfg.Pip,
		"Package": pkgName,
	})
	if err != nil {
		return "", err
	}
	stdout, stderr, code, err := t.exec.Execute(ctx, command, opts)
	output := stdout + stderr
	if err != nil {
		return output, errors.Wrapf(err, "uninstaller could not be invoked for %s", pkgName)
	}
	if code != 0 {
		return output, errors.Errorf("uninstallation of %s failed with exit code %d: %s", pkgName, code, strings.TrimSpace(stderr))
	}
	return output, nil
}

func (t *cmdToolchain) RunTestModule(ctx context.Context, module, class string, opts executor.ExecOptions) (string, int, error) {
	command, err := util.RenderString(common.RunTestModuleCmdTpl, util.Data{
		"Engine": t.cfg.Engine,
		"Module": module,
		"Class":  class,
	})
	if err != nil {
		return "", 0, err
	}
	stdout, stderr, code, err := t.exec.Execute(ctx, command, opts)
	output := stdout + stderr
	if err != nil {
		return output, code, errors.Wrapf(err, "test engine could not be invoked for module %s", module)
	}
	return output, code, nil
}

func (t *cmdToolchain) RunCommand(ctx context.Context, command string, opts executor.ExecOptions) (string, int, error) {
	stdout, stderr, code, err := t.exec.Execute(ctx, command, opts)
	output := stdout + stderr
	if err != nil {
		return output, code, errors.Wrapf(err, "command %q could not be invoked", command)
	}
	return output, code, nil
}
