package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	apperrors "github.com/the-guild-org/secrets/internal/application/errors"
	"github.com/the-guild-org/secrets/internal/application/ports"
	"github.com/the-guild-org/secrets/internal/domain/execution"
)

// runChecked runs cmd and turns a fatal outcome into a *apperrors.CommandError.
// tolerated may be nil, in which case any stderr output is fatal.
func runChecked(
	ctx context.Context,
	runner ports.CommandRunner,
	logger *slog.Logger,
	cmd execution.Command,
	tolerated execution.StderrPredicate,
) (*execution.CommandResult, error) {
	logger.Debug("running command", "command", cmd.String(), "dir", cmd.Dir)

	res, err := runner.Run(ctx, cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to run %q: %w", cmd.String(), err)
	}

	outcome := execution.Classify(res, tolerated)
	if outcome.IsFatal() {
		stderr, _ := execution.TruncateOutput(res.Stderr, execution.MaxErrorOutput)
		return res, apperrors.NewCommandError(cmd.String(), res.ExitCode, stderr)
	}

	if out := strings.TrimSpace(res.Stdout); out != "" {
		logger.Debug("command output", "command", cmd.Name, "stdout", out)
	}
	if outcome == execution.OutcomeInformational {
		logger.Debug("command notice", "command", cmd.Name, "stderr", strings.TrimSpace(res.Stderr))
	}

	return res, nil
}
