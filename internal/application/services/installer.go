package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	apperrors "github.com/the-guild-org/secrets/internal/application/errors"
	"github.com/the-guild-org/secrets/internal/application/ports"
	"github.com/the-guild-org/secrets/internal/domain/entities"
	"github.com/the-guild-org/secrets/internal/domain/execution"
)

// DefaultBuildTarget is the make target that produces the git-secret binary.
const DefaultBuildTarget = "build"

// InstallerOptions configure where sources come from and how they are built.
type InstallerOptions struct {
	// ArchiveURL is a template with a single %s for the version.
	ArchiveURL  string
	BuildTarget string
	MakePath    string
}

// Installer ensures a pinned git-secret build exists on the host.
type Installer struct {
	runner    ports.CommandRunner
	fetcher   ports.ArchiveFetcher
	extractor ports.ArchiveExtractor
	locker    ports.InstallLocker
	logger    *slog.Logger
	opts      InstallerOptions
}

// NewInstaller creates a new installer. locker may be nil.
func NewInstaller(
	runner ports.CommandRunner,
	fetcher ports.ArchiveFetcher,
	extractor ports.ArchiveExtractor,
	locker ports.InstallLocker,
	opts InstallerOptions,
	logger *slog.Logger,
) *Installer {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.BuildTarget == "" {
		opts.BuildTarget = DefaultBuildTarget
	}
	if opts.MakePath == "" {
		opts.MakePath = "make"
	}

	return &Installer{
		runner:    runner,
		fetcher:   fetcher,
		extractor: extractor,
		locker:    locker,
		opts:      opts,
		logger:    logger,
	}
}

// IsInstalled reports whether the binary of inst already exists.
func (i *Installer) IsInstalled(inst entities.Installation) (bool, error) {
	_, err := os.Stat(inst.Binary)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check git-secret binary: %w", err)
}

// Ensure installs inst unless its binary is already present.
// It returns true when this call performed the install.
func (i *Installer) Ensure(ctx context.Context, inst entities.Installation) (bool, error) {
	present, err := i.IsInstalled(inst)
	if err != nil {
		return false, err
	}
	if present {
		i.logger.Debug("git-secret already installed", "version", inst.Version, "path", inst.Binary)
		return false, nil
	}

	if i.locker != nil {
		unlock, err := i.locker.Lock(ctx, inst.LockPath())
		if err != nil {
			return false, fmt.Errorf("failed to lock %s: %w", inst.LockPath(), err)
		}
		defer func() {
			if err := unlock(); err != nil {
				i.logger.Warn("failed to release install lock", "path", inst.LockPath(), "error", err)
			}
		}()

		// Another process may have finished the install while we waited.
		present, err := i.IsInstalled(inst)
		if err != nil {
			return false, err
		}
		if present {
			i.logger.Debug("git-secret installed by another process", "version", inst.Version)
			return false, nil
		}
	}

	if err := i.install(ctx, inst); err != nil {
		return false, err
	}
	return true, nil
}

func (i *Installer) install(ctx context.Context, inst entities.Installation) error {
	i.logger.Info("installing git-secret", "version", inst.Version)

	i.logger.Info("removing stale install", "dir", inst.Dir)
	if err := removeAll(inst.Dir); err != nil {
		return fmt.Errorf("failed to remove %s: %w", inst.Dir, err)
	}

	i.logger.Info("creating install dir", "dir", inst.Dir)
	if err := os.MkdirAll(inst.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", inst.Dir, err)
	}

	url := inst.ArchiveURL(i.opts.ArchiveURL)
	i.logger.Info("downloading", "url", url, "dir", inst.Dir)
	if _, err := i.fetcher.Fetch(ctx, url, inst.ArchivePath()); err != nil {
		return err
	}

	if err := i.extractor.Extract(inst.ArchivePath(), inst.Dir, 1); err != nil {
		return fmt.Errorf("failed to extract %s: %w", inst.ArchivePath(), err)
	}

	build := execution.Command{
		Name: i.opts.MakePath,
		Args: []string{"-C", inst.Dir, i.opts.BuildTarget},
	}
	if _, err := runChecked(ctx, i.runner, i.logger, build, nil); err != nil {
		return err
	}

	present, err := i.IsInstalled(inst)
	if err != nil {
		return err
	}
	if !present {
		return apperrors.NewMissingBinaryError(inst.Binary)
	}

	i.logger.Info("git-secret installed", "version", inst.Version, "path", inst.Binary)
	return nil
}

// removeAll deletes path recursively. A missing path is not an error.
func removeAll(path string) error {
	if err := os.RemoveAll(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
