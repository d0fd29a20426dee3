package cmd

import (
	"github.com/spf13/cobra"

	"github.com/forgeqa/plugmatrix/common"
)

var (
	cfgFile      string
	verbose      bool
	ignoreErrors bool
	logDir       string
)

var rootCmd = &cobra.Command{
	Use:   common.AppName,
	Short: "Environment-matrix test runner for a native plugin",
	Long: `plugmatrix runs an end-to-end test matrix for a native plugin package:
for each environment configuration (plain, conda, virtualenv) it removes the
installed plugin binaries, verifies the plugin refuses to load, reinstalls the
packaged artifact and runs the test suites. The first failure aborts the run.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", common.AppName+".yaml", "path to the matrix configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&ignoreErrors, "ignore-errors", false, "continue past failing steps (default is fail-fast)")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "directory for rotating file logs (overrides spec.logDir)")
}

// Execute runs the root command. The caller turns a non-nil error into a
// non-zero process exit status.
func Execute() error {
	return rootCmd.Execute()
}
