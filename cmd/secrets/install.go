package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// installCmd builds the pinned git-secret without revealing anything.
var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the pinned git-secret build and print its path",
	Args:  cobra.NoArgs,
	RunE: withContainer(func(cc *CommandContext, cmd *cobra.Command, _ []string) error {
		resp, err := cc.Container.InstallUseCase().Execute(cc.Context)
		if err != nil {
			return err
		}

		cc.Logger.Info("git-secret ready", "binary", resp.Binary, "installed", resp.Installed)
		_, err = fmt.Fprintln(cmd.OutOrStdout(), resp.Binary)
		return err
	}),
}

func init() {
	rootCmd.AddCommand(installCmd)
}
