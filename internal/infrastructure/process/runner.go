// Package process runs host subprocesses for the reveal pipeline.
package process

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/the-guild-org/secrets/internal/domain/execution"
)

// MaxOutputSize caps how much stdout/stderr is kept per stream.
const MaxOutputSize = 10 * 1024 * 1024

// Runner implements ports.CommandRunner with os/exec.
type Runner struct {
	logger *slog.Logger
	// env is appended to the inherited host environment.
	env []string
}

// NewRunner creates a new subprocess runner.
func NewRunner(logger *slog.Logger, env ...string) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		logger: logger,
		env:    env,
	}
}

// Run executes cmd and waits for it to finish.
// A non-zero exit is returned as a result; failing to start is an error.
func (r *Runner) Run(ctx context.Context, cmd execution.Command) (*execution.CommandResult, error) {
	//nolint:gosec // G204: commands are built by the pipeline, not taken from user input
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir

	// git-secret needs PATH, HOME and GNUPGHOME from the host.
	c.Env = append(os.Environ(), r.env...)

	if cmd.Stdin != nil {
		c.Stdin = cmd.Stdin
	}

	stdout := NewBoundedBuffer(MaxOutputSize)
	stderr := NewBoundedBuffer(MaxOutputSize)
	c.Stdout = stdout
	c.Stderr = stderr

	start := time.Now()
	err := c.Run()
	duration := time.Since(start)

	if stdout.Truncated || stderr.Truncated {
		r.logger.WarnContext(ctx, "command output truncated",
			"command", cmd.String(),
			"stdout_truncated", stdout.Truncated,
			"stderr_truncated", stderr.Truncated)
	}

	result := &execution.CommandResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: duration,
	}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) || ctx.Err() != nil {
			return nil, fmt.Errorf("%s: %w", cmd.String(), errors.Join(err, ctx.Err()))
		}
		result.ExitCode = exitErr.ExitCode()
	}

	r.logger.DebugContext(ctx, "executed command",
		"command", cmd.String(),
		"exit_code", result.ExitCode,
		"duration", duration)

	return result, nil
}
