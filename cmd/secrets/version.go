package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/the-guild-org/secrets/internal/infrastructure/system"
	"github.com/the-guild-org/secrets/internal/version"
)

// versionCmd implements the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number and the pinned git-secret version",
	Run: func(cmd *cobra.Command, _ []string) {
		info := version.Get()
		fmt.Fprintln(cmd.OutOrStdout(), info.Full())
		fmt.Fprintf(cmd.OutOrStdout(), "git-secret %s\n", system.DefaultToolVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
