package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/the-guild-org/secrets/internal/infrastructure/actions"
	"github.com/the-guild-org/secrets/internal/infrastructure/container"
	"github.com/the-guild-org/secrets/internal/infrastructure/sensitivedata"
	"github.com/the-guild-org/secrets/internal/infrastructure/system"
)

// CommandContext provides common command dependencies.
type CommandContext struct {
	Container *container.Container
	Logger    *slog.Logger
	Context   context.Context
}

// CommandHandler is a function that executes with initialized dependencies.
type CommandHandler func(*CommandContext, *cobra.Command, []string) error

// withContainer wraps a command handler with configuration loading and
// dependency injection. Failures are redacted and reported to the runner.
func withContainer(handler CommandHandler) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := system.NewConfigLoader(cmd.Flags()).Load(cfgFile)
		if err != nil {
			return report(nil, err)
		}

		c, err := container.New(container.Options{
			Config:     cfg,
			OutputFile: os.Getenv(actions.OutputFileEnv),
			LogLevel:   logLevel(),
		})
		if err != nil {
			return report(nil, err)
		}
		slog.SetDefault(c.Logger())

		ctx := &CommandContext{
			Container: c,
			Logger:    c.Logger(),
			Context:   cmd.Context(),
		}

		if err := handler(ctx, cmd, args); err != nil {
			return report(c, err)
		}
		return nil
	}
}

// report redacts err and annotates the run with it.
func report(c *container.Container, err error) error {
	publisher := actions.NewPublisher(os.Stdout, "", nil)
	if c != nil {
		err = sensitivedata.SafeError(err, c.SensitiveValues())
		publisher = c.Publisher()
	}
	_ = publisher.Error(err.Error())
	return err
}

// logLevel is debug when --verbose is set or the runner has step debugging on.
func logLevel() slog.Level {
	if verbose || os.Getenv("RUNNER_DEBUG") == "1" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
