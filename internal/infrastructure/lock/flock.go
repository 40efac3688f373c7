// Package lock provides cross-process advisory file locks.
package lock

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// DefaultRetryDelay is how long to wait between lock attempts.
const DefaultRetryDelay = 500 * time.Millisecond

// FileLocker implements ports.InstallLocker with flock(2).
type FileLocker struct {
	logger     *slog.Logger
	retryDelay time.Duration
}

// NewFileLocker creates a locker. A zero retryDelay uses DefaultRetryDelay.
func NewFileLocker(logger *slog.Logger, retryDelay time.Duration) *FileLocker {
	if logger == nil {
		logger = slog.Default()
	}
	if retryDelay <= 0 {
		retryDelay = DefaultRetryDelay
	}
	return &FileLocker{logger: logger, retryDelay: retryDelay}
}

// Lock blocks until the lock at path is held or ctx is done. Missing parent
// directories are created.
func (l *FileLocker) Lock(ctx context.Context, path string) (func() error, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to find absolute path to lock %q: %w", path, err)
	}

	// The install root may not exist yet on a fresh runner.
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory for %q: %w", abs, err)
	}

	fl := flock.New(abs)
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("could not acquire lock on %q: %w", abs, err)
	}
	if !locked {
		l.logger.Info("waiting for install lock", "path", abs)
		locked, err = fl.TryLockContext(ctx, l.retryDelay)
		if err != nil {
			return nil, fmt.Errorf("could not acquire lock on %q: %w", abs, err)
		}
		if !locked {
			return nil, fmt.Errorf("could not acquire lock on %q", abs)
		}
	}

	l.logger.Debug("install lock acquired", "path", abs)
	return fl.Unlock, nil
}
