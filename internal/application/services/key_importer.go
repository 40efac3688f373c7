package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/the-guild-org/secrets/internal/application/ports"
	"github.com/the-guild-org/secrets/internal/domain/execution"
)

// keyImportNotice is what a successful "gpg --import" of a private key reports on stderr.
const keyImportNotice = "secret key imported"

// IsKeyImportNotice reports whether gpg's stderr output is the informational
// notice of a successful secret key import.
func IsKeyImportNotice(stderr string) bool {
	return strings.Contains(stderr, keyImportNotice)
}

// KeyImporter imports a GPG private key into the host keyring.
type KeyImporter struct {
	runner  ports.CommandRunner
	logger  *slog.Logger
	gpgPath string
}

// NewKeyImporter creates a new key importer. gpgPath defaults to "gpg".
func NewKeyImporter(runner ports.CommandRunner, gpgPath string, logger *slog.Logger) *KeyImporter {
	if logger == nil {
		logger = slog.Default()
	}
	if gpgPath == "" {
		gpgPath = "gpg"
	}
	return &KeyImporter{
		runner:  runner,
		gpgPath: gpgPath,
		logger:  logger,
	}
}

// Import pipes key into gpg. An empty key is skipped and reports false.
// The key is streamed through stdin and never written to disk or logged.
func (k *KeyImporter) Import(ctx context.Context, key ports.SecretValue) (bool, error) {
	if key == nil || key.String() == "" {
		k.logger.Debug("no gpg key supplied, skipping import")
		return false, nil
	}

	cmd := execution.Command{
		Name:    k.gpgPath,
		Args:    []string{"--batch", "--import"},
		Stdin:   strings.NewReader(key.String()),
		Display: k.gpgPath + " --import",
	}
	if _, err := runChecked(ctx, k.runner, k.logger, cmd, IsKeyImportNotice); err != nil {
		return false, err
	}

	k.logger.Info("gpg key imported")
	return true, nil
}
