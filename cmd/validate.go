package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forgeqa/plugmatrix/config"
	"github.com/forgeqa/plugmatrix/hook/envs"
)

func targetName(cfg *config.MatrixConfig) string {
	if cfg.Spec.Remote != nil {
		return cfg.Spec.Remote.Address
	}
	return "local"
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the matrix configuration without running anything",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// Hook names are only resolved at run time; check them here so a typo
		// fails validation instead of the first configuration.
		for _, c := range cfg.Spec.Configurations {
			for _, name := range []string{c.Prolog, c.Epilog} {
				if !envs.Known(name) {
					return fmt.Errorf("configuration %q references unknown hook %q", c.Name, name)
				}
			}
		}

		fmt.Printf("%s: ok (%d configurations, %d suites, target %s)\n",
			cfgFile, len(cfg.Spec.Configurations), len(cfg.Spec.Suites), targetName(cfg))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
