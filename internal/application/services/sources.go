package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"

	"github.com/the-guild-org/secrets/internal/application/ports"
	"github.com/the-guild-org/secrets/internal/domain/entities"
	"github.com/the-guild-org/secrets/internal/domain/execution"
	"github.com/the-guild-org/secrets/internal/domain/values"
)

// LocalSource is a secrets directory shipped alongside the action.
type LocalSource struct {
	logger  *slog.Logger
	dir     string
	workDir string
	suffix  string
	prefix  string
}

// LocalSourceOptions configure a LocalSource.
type LocalSourceOptions struct {
	// Dir holds the encrypted files.
	Dir string
	// WorkDir is where reveal runs; it must be inside the git work tree.
	WorkDir string
	Suffix  string
	Prefix  string
}

// NewLocalSource creates a local directory source.
func NewLocalSource(opts LocalSourceOptions, logger *slog.Logger) *LocalSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &LocalSource{
		dir:     opts.Dir,
		workDir: opts.WorkDir,
		suffix:  opts.Suffix,
		prefix:  opts.Prefix,
		logger:  logger,
	}
}

// Name implements ports.SecretsSource.
func (s *LocalSource) Name() string { return string(values.SourceLocal) }

// WorkDir implements ports.SecretsSource.
func (s *LocalSource) WorkDir() string { return s.workDir }

// SecretsDir implements ports.SecretsSource.
func (s *LocalSource) SecretsDir() string { return s.dir }

// OutputPrefix implements ports.SecretsSource.
func (s *LocalSource) OutputPrefix() string { return s.prefix }

// Prepare removes every non-encrypted file left in the secrets directory, so
// only files produced by the upcoming reveal are published.
func (s *LocalSource) Prepare(_ context.Context) error {
	s.logger.Debug("removing already revealed secrets", "dir", s.dir)

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("failed to read secrets dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || entities.IsEncrypted(entry.Name(), s.suffix) {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
	}

	return nil
}

// RepositorySource is an external secrets repository cloned for each run.
type RepositorySource struct {
	runner      ports.CommandRunner
	logger      *slog.Logger
	repository  string
	cloneDir    string
	secretsPath string
	prefix      string
	gitPath     string
}

// RepositorySourceOptions configure a RepositorySource.
type RepositorySourceOptions struct {
	Repository string
	CloneDir   string
	// SecretsPath is the secrets directory relative to the clone root.
	SecretsPath string
	Prefix      string
	GitPath     string
}

// NewRepositorySource creates a cloned repository source.
func NewRepositorySource(runner ports.CommandRunner, opts RepositorySourceOptions, logger *slog.Logger) *RepositorySource {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.GitPath == "" {
		opts.GitPath = "git"
	}
	return &RepositorySource{
		runner:      runner,
		repository:  opts.Repository,
		cloneDir:    opts.CloneDir,
		secretsPath: opts.SecretsPath,
		prefix:      opts.Prefix,
		gitPath:     opts.GitPath,
		logger:      logger,
	}
}

// Name implements ports.SecretsSource.
func (s *RepositorySource) Name() string { return string(values.SourceRepository) }

// WorkDir implements ports.SecretsSource.
func (s *RepositorySource) WorkDir() string { return s.cloneDir }

// SecretsDir implements ports.SecretsSource.
func (s *RepositorySource) SecretsDir() string { return filepath.Join(s.cloneDir, s.secretsPath) }

// OutputPrefix implements ports.SecretsSource.
func (s *RepositorySource) OutputPrefix() string { return s.prefix }

// Prepare removes any previous clone and shallow-clones the repository afresh.
func (s *RepositorySource) Prepare(ctx context.Context) error {
	s.logger.Debug("removing previous clone", "dir", s.cloneDir)
	if err := removeAll(s.cloneDir); err != nil {
		return fmt.Errorf("failed to remove %s: %w", s.cloneDir, err)
	}

	display := redactURL(s.repository)
	s.logger.Info("cloning secrets repository", "repository", display)

	clone := execution.Command{
		Name:    s.gitPath,
		Args:    []string{"clone", "--depth", "1", "--quiet", s.repository, s.cloneDir},
		Display: fmt.Sprintf("%s clone --depth 1 --quiet %s %s", s.gitPath, display, s.cloneDir),
	}
	_, err := runChecked(ctx, s.runner, s.logger, clone, nil)
	return err
}

// redactURL hides credentials embedded in a repository URL.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	return u.Redacted()
}
