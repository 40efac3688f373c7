// Package apperrors defines application-level error types.
package apperrors

import (
	"fmt"
	"strings"

	"github.com/the-guild-org/secrets/internal/domain/values"
)

// MissingBinaryError indicates a build finished without producing the tool binary.
type MissingBinaryError struct {
	Path string
}

func (e *MissingBinaryError) Error() string {
	return fmt.Sprintf("git-secret binary does not exist at %s", e.Path)
}

// NewMissingBinaryError creates a new missing binary error.
func NewMissingBinaryError(path string) *MissingBinaryError {
	return &MissingBinaryError{Path: path}
}

// DownloadError indicates the source archive could not be fetched.
type DownloadError struct {
	Cause      error
	URL        string
	Status     string
	StatusCode int
}

func (e *DownloadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("unable to download %s: %v", e.URL, e.Cause)
	}
	return fmt.Sprintf("unable to download %s: %s", e.URL, e.Status)
}

func (e *DownloadError) Unwrap() error {
	return e.Cause
}

// NewDownloadStatusError creates a download error for a non-success HTTP status.
func NewDownloadStatusError(url string, statusCode int, status string) *DownloadError {
	return &DownloadError{
		URL:        url,
		StatusCode: statusCode,
		Status:     status,
	}
}

// NewDownloadError creates a download error for a transport failure.
func NewDownloadError(url string, cause error) *DownloadError {
	return &DownloadError{
		URL:   url,
		Cause: cause,
	}
}

// CommandError indicates a subprocess exited non-zero or wrote unexpected stderr output.
type CommandError struct {
	Command  string
	Stderr   string
	ExitCode int
}

func (e *CommandError) Error() string {
	stderr := strings.TrimSpace(e.Stderr)
	if e.ExitCode != 0 {
		if stderr == "" {
			return fmt.Sprintf("command %q exited with code %d", e.Command, e.ExitCode)
		}
		return fmt.Sprintf("command %q exited with code %d: %s", e.Command, e.ExitCode, stderr)
	}
	return fmt.Sprintf("command %q wrote to stderr: %s", e.Command, stderr)
}

// NewCommandError creates a new command error.
func NewCommandError(command string, exitCode int, stderr string) *CommandError {
	return &CommandError{
		Command:  command,
		ExitCode: exitCode,
		Stderr:   stderr,
	}
}

// ConfigurationError indicates system config or setup issue.
type ConfigurationError struct {
	Cause   error
	Aspect  string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("configuration error (%s): %s: %v", e.Aspect, e.Message, e.Cause)
	}
	return fmt.Sprintf("configuration error (%s): %s", e.Aspect, e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// NewConfigurationError creates a new configuration error.
func NewConfigurationError(aspect, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		Aspect:  aspect,
		Message: message,
		Cause:   cause,
	}
}

// StageError records which pipeline step failed and the last stage reached before it.
type StageError struct {
	Cause error
	Step  string
	Stage values.Stage
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s failed (after %s): %v", e.Step, e.Stage, e.Cause)
}

func (e *StageError) Unwrap() error {
	return e.Cause
}

// NewStageError creates a new stage error.
func NewStageError(step string, stage values.Stage, cause error) *StageError {
	return &StageError{
		Step:  step,
		Stage: stage,
		Cause: cause,
	}
}
