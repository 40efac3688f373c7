package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/the-guild-org/secrets/internal/application/ports"
	"github.com/the-guild-org/secrets/internal/domain/entities"
	"github.com/the-guild-org/secrets/internal/domain/execution"
)

// DefaultSuffix marks encrypted files in a secrets directory.
const DefaultSuffix = ".secret"

// Revealer decrypts a secrets source and republishes the plaintext.
type Revealer struct {
	runner    ports.CommandRunner
	publisher ports.OutputPublisher
	logger    *slog.Logger
	suffix    string
}

// NewRevealer creates a new revealer. suffix defaults to DefaultSuffix.
func NewRevealer(runner ports.CommandRunner, publisher ports.OutputPublisher, suffix string, logger *slog.Logger) *Revealer {
	if logger == nil {
		logger = slog.Default()
	}
	if suffix == "" {
		suffix = DefaultSuffix
	}
	return &Revealer{
		runner:    runner,
		publisher: publisher,
		suffix:    suffix,
		logger:    logger,
	}
}

// Reveal runs "git-secret reveal" in the work dir of src.
func (r *Revealer) Reveal(ctx context.Context, binary string, src ports.SecretsSource) error {
	r.logger.Info("processing secrets", "source", src.Name())

	cmd := execution.Command{
		Name: binary,
		Args: []string{"reveal"},
		Dir:  src.WorkDir(),
	}
	_, err := runChecked(ctx, r.runner, r.logger, cmd, nil)
	return err
}

// Collect reads every revealed file in the secrets dir of src, in lexical order.
// Encrypted files and subdirectories are skipped.
func (r *Revealer) Collect(src ports.SecretsSource) ([]entities.SecretFile, error) {
	dir := src.SecretsDir()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read secrets dir: %w", err)
	}

	files := make([]entities.SecretFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || entities.IsEncrypted(entry.Name(), r.suffix) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		//nolint:gosec // G304: path comes from listing the configured secrets dir
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read revealed secret: %w", err)
		}

		files = append(files, entities.SecretFile{
			Name:  entry.Name(),
			Path:  path,
			Value: string(data),
		})
	}

	return files, nil
}

// Publish masks each value and then exposes it as an output named prefix+file name.
// It returns the output names in publish order.
func (r *Revealer) Publish(files []entities.SecretFile, prefix string) ([]string, error) {
	names := make([]string, 0, len(files))
	for _, f := range files {
		// Mask before anything else can print the value.
		if err := r.publisher.Mask(f.Value); err != nil {
			return names, fmt.Errorf("failed to mask %s: %w", f.Name, err)
		}

		name := f.OutputName(prefix)
		if err := r.publisher.SetOutput(name, f.Value); err != nil {
			return names, fmt.Errorf("failed to set output %s: %w", name, err)
		}

		r.logger.Debug("published secret", "output", name)
		names = append(names, name)
	}
	return names, nil
}
