package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/forgeqa/plugmatrix/common"
	"github.com/forgeqa/plugmatrix/config"
	"github.com/forgeqa/plugmatrix/executor"
	"github.com/forgeqa/plugmatrix/hook/envs"
	"github.com/forgeqa/plugmatrix/logger"
	"github.com/forgeqa/plugmatrix/matrix"
	"github.com/forgeqa/plugmatrix/report"
	"github.com/forgeqa/plugmatrix/runtime"
	"github.com/forgeqa/plugmatrix/task/plugintest"
	"github.com/forgeqa/plugmatrix/toolchain"
	"github.com/forgeqa/plugmatrix/util"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full test matrix",
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

		body, err := buildBody(&cfg.Spec)
		if err != nil {
			return err
		}

		runner, err := matrix.NewRunner(
			cfg.Metadata.Name,
			"plugin environment matrix",
			toConfigurations(cfg.Spec.Configurations),
			body,
			envs.New,
		)
		if err != nil {
			return err
		}

		result, runErr := runner.Run(rt, log)

		summary := report.FromRunResult(result)
		if artifact, ok := rt.Cache().Get(common.CacheKeyArtifactPath); ok {
			summary.Artifact = artifact
		}
		fmt.Print(summary.Summary())
		if cfg.Spec.ReportPath != "" {
			if err := summary.WriteFile(cfg.Spec.ReportPath); err != nil {
				log.Errorf("Failed to write run report: %v", err)
				if runErr == nil {
					runErr = err
				}
			} else {
				log.Infof("Run report written to %s", cfg.Spec.ReportPath)
			}
		}
		return runErr
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func loadConfig() (*config.MatrixConfig, error) {
	cfg, err := config.NewLoader(cfgFile).Load()
	if err != nil {
		return nil, err
	}
	if err := config.SetDefaultMatrixSpec(&cfg.Spec); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildExecutor returns the executor for the target system and the PATH base
// that environment hooks prepend to.
func buildExecutor(remote *config.RemoteSpec) (executor.Executor, string, error) {
	if remote == nil {
		return executor.NewLocalExecutor(), "", nil
	}
	exec, err := executor.NewSSHExecutor(executor.SSHConfig{
		Address:        remote.Address,
		Port:           remote.Port,
		User:           remote.User,
		Password:       remote.Password,
		PrivateKeyPath: remote.PrivateKeyPath,
		Timeout:        remote.Timeout,
	})
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to connect to remote test host")
	}
	return exec, remote.BasePath, nil
}

func buildBody(spec *config.MatrixSpec) (*plugintest.PluginTestTask, error) {
	suites := make([]plugintest.Suite, 0, len(spec.Suites))
	for _, s := range spec.Suites {
		suites = append(suites, plugintest.Suite{Module: s.Module, Class: s.Class})
	}
	return plugintest.NewPluginTestTask(plugintest.Spec{
		LibGlob: spec.Plugin.LibGlob,
		ExpectFailure: plugintest.Suite{
			Module: spec.ExpectFailure.Module,
			Class:  spec.ExpectFailure.Class,
		},
		ArchiveGlob: spec.ArtifactGlob,
		Suites:      suites,
	})
}

func toConfigurations(specs []config.ConfigurationSpec) []matrix.Configuration {
	cfgs := make([]matrix.Configuration, 0, len(specs))
	for _, s := range specs {
		cfgs = append(cfgs, matrix.Configuration{
			Name:   s.Name,
			Prolog: s.Prolog,
			Epilog: s.Epilog,
			Env:    s.Env,
		})
	}
	return cfgs
}
