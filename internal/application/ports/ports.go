// Package ports defines interfaces for infrastructure dependencies.
// These are the "ports" in hexagonal architecture - abstractions that
// the application layer depends on but doesn't implement.
package ports

import (
	"context"

	"github.com/the-guild-org/secrets/internal/domain/execution"
)

// CommandRunner executes subprocesses.
// A non-zero exit is reported in the result; only failures to start are errors.
type CommandRunner interface {
	Run(ctx context.Context, cmd execution.Command) (*execution.CommandResult, error)
}

// ArchiveFetcher downloads a remote archive to a local path.
type ArchiveFetcher interface {
	// Fetch writes the body of url to dst and returns the number of bytes written.
	// A non-success HTTP status must fail before dst is created.
	Fetch(ctx context.Context, url, dst string) (int64, error)
}

// ArchiveExtractor unpacks an archive into a directory.
type ArchiveExtractor interface {
	// Extract unpacks archivePath into destDir, dropping the first
	// stripComponents path elements of every entry.
	Extract(archivePath, destDir string, stripComponents int) error
}

// InstallLocker serialises installs across processes on one host.
type InstallLocker interface {
	// Lock blocks until the lock at path is held or ctx is done.
	Lock(ctx context.Context, path string) (unlock func() error, err error)
}
