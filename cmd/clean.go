package cmd

import (
	"github.com/spf13/cobra"

	"github.com/forgeqa/plugmatrix/common"
	"github.com/forgeqa/plugmatrix/logger"
	"github.com/forgeqa/plugmatrix/runtime"
	"github.com/forgeqa/plugmatrix/step/removeartifact"
	"github.com/forgeqa/plugmatrix/step/uninstallartifact"
	"github.com/forgeqa/plugmatrix/task"
	"github.com/forgeqa/plugmatrix/toolchain"
	"github.com/forgeqa/plugmatrix/util"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove installed plugin binaries and uninstall the plugin package",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := logger.Init(util.FirstNonEmpty(logDir, cfg.Spec.LogDir), verbose); err != nil {
			return err
		}
		log := logger.Log.WithField(common.LogFieldApp, common.AppName)

		exec, basePath, err := buildExecutor(cfg.Spec.Remote)
		if err != nil {
			return err
		}
		defer exec.Close()

		tools, err := toolchain.NewCmdToolchain(exec, toolchain.Config{
			Python:  cfg.Spec.Tools.Python,
			Pip:     cfg.Spec.Tools.Pip,
			Engine:  cfg.Spec.Tools.Engine,
			Package: cfg.Spec.Plugin.Package,
		})
		if err != nil {
			return err
		}

		rt, err := runtime.NewRuntime(runtime.Config{
			Executor:    exec,
			Toolchain:   tools,
			WorkDir:     cfg.Spec.WorkDir,
			ObjectName:  cfg.Metadata.Name,
			Verbose:     verbose,
			IgnoreError: ignoreErrors,
			BasePath:    basePath,
		})
		if err != nil {
			return err
		}
		log = log.WithField(common.LogFieldRunID, rt.RunID())

		// Binaries go first: after the package is uninstalled, the plugin
		// directory can no longer be queried.
		cleanTask := task.NewBaseTask("clean", "Remove plugin binaries and uninstall the package")
		cleanTask.AddStep(removeartifact.NewRemoveArtifactStep(cfg.Spec.Plugin.LibGlob))
		cleanTask.AddStep(uninstallartifact.NewUninstallArtifactStep(cfg.Spec.Plugin.Package))

		taskLog := log.WithField(common.LogFieldTaskName, cleanTask.Name())
		if err := cleanTask.Init(rt, taskLog); err != nil {
			return err
		}
		execErr := cleanTask.Execute(rt, taskLog)
		if postErr := cleanTask.Post(rt, taskLog, execErr); postErr != nil && execErr == nil {
			execErr = postErr
		}
		return execErr
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
