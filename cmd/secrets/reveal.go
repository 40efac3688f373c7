package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/the-guild-org/secrets/internal/application/dto"
	"github.com/the-guild-org/secrets/internal/infrastructure/sensitivedata"
)

// revealCmd runs the full pipeline, same as the root command.
var revealCmd = &cobra.Command{
	Use:   "reveal",
	Short: "Install git-secret, import the key and publish revealed secrets",
	Args:  cobra.NoArgs,
	RunE:  withContainer(runReveal),
}

func init() {
	rootCmd.AddCommand(revealCmd)
}

func runReveal(cc *CommandContext, _ *cobra.Command, _ []string) error {
	ctx := cc.Context
	if ctx == nil {
		ctx = context.Background()
	}

	req := dto.RevealRequest{}
	if k := cc.Container.Config().GPGKey; k != "" {
		req.GPGKey = sensitivedata.NewSecureString(k)
		cc.Container.Config().GPGKey = ""
	}

	resp, err := cc.Container.RevealSecretsUseCase().Execute(ctx, req)
	if err != nil {
		return err
	}

	cc.Logger.Info("secrets published",
		"outputs", len(resp.Outputs),
		"installed", resp.Installed,
		"key_imported", resp.KeyImported,
		"duration", resp.Duration,
	)
	return nil
}
