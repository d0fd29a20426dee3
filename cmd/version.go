package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forgeqa/plugmatrix/common"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s %s\n", common.AppName, Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
