package common

import (
	"io/fs"
	"path/filepath"
)

const (
	AppName    = "plugmatrix"
	TmpDirBase = "/tmp/"
)

func GetTmpDir() string {
	return filepath.Join(TmpDirBase, AppName) + "/"
}

// Logger field names, ordered from outermost to innermost execution scope.
const (
	LogFieldApp           = "App"
	LogFieldMatrixName    = "Matrix"
	LogFieldConfiguration = "Configuration"
	LogFieldTaskName      = "Task"
	LogFieldStepName      = "Step"
	LogFieldHookName      = "Hook"
	LogFieldRunID         = "RunID"
)

const (
	// FileMode0755 represents rwxr-xr-x
	FileMode0755 fs.FileMode = 0755
	// FileMode0644 represents rw-r--r--
	FileMode0644 fs.FileMode = 0644
)

// Command templates for the external toolchain. Rendered via util.RenderString.
const (
	// QueryPluginDirCmdTpl asks the plugin's sysconfig helper where installed
	// plugin binaries live.
	QueryPluginDirCmdTpl = `{{.Python}} -c "import {{.Package}}.sysconfig as sc; print(sc.get_plugin_dir())"`
	// InstallPackageCmdTpl installs a locally built distribution archive.
	InstallPackageCmdTpl = `{{.Pip}} install --no-deps --force-reinstall {{.Archive}}`
	// UninstallPackageCmdTpl removes an installed package without prompting.
	UninstallPackageCmdTpl = `{{.Pip}} uninstall -y {{.Package}}`
	// RunTestModuleCmdTpl runs a test module, optionally narrowed to one class.
	RunTestModuleCmdTpl = `{{.Engine}} --verbose -s {{.Module}}{{if .Class}}:{{.Class}}{{end}}`
	// CreateVirtualenvCmdTpl provisions an isolated interpreter environment.
	CreateVirtualenvCmdTpl = `virtualenv --system-site-packages {{.Dir}}`
	// CreateCondaEnvCmdTpl provisions a conda environment cloned from base.
	CreateCondaEnvCmdTpl = `conda create --yes --prefix {{.Dir}} --clone base`
	// RemoveEnvCmdTpl tears an isolated environment down.
	RemoveEnvCmdTpl = `rm -rf {{.Dir}}`
)

const (
	DefaultSSHPort = 22
)

// Cache keys for cross-step state within one run.
const (
	CacheKeyPluginDir    = "plugin.dir"
	CacheKeyArtifactPath = "artifact.path"
)
