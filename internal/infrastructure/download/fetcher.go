// Package download fetches release archives over HTTPS.
package download

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/dustin/go-humanize"
	apperrors "github.com/the-guild-org/secrets/internal/application/errors"
)

// Fetcher implements ports.ArchiveFetcher over HTTP.
type Fetcher struct {
	client    *http.Client
	logger    *slog.Logger
	userAgent string
}

// NewFetcher creates a new fetcher. A nil client uses http.DefaultClient.
func NewFetcher(client *http.Client, userAgent string, logger *slog.Logger) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		client:    client,
		userAgent: userAgent,
		logger:    logger,
	}
}

// Fetch downloads url into dst. A non-2xx response fails before dst is created.
func (f *Fetcher) Fetch(ctx context.Context, url, dst string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, apperrors.NewDownloadError(url, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, apperrors.NewDownloadError(url, err)
	}
	defer func() {
		_ = resp.Body.Close() // Best-effort cleanup
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, apperrors.NewDownloadStatusError(url, resp.StatusCode, resp.Status)
	}

	//nolint:gosec // G304: dst is derived from the pinned install dir
	file, err := os.Create(dst)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", dst, err)
	}

	n, err := io.Copy(file, resp.Body)
	if err != nil {
		_ = file.Close()
		return n, apperrors.NewDownloadError(url, err)
	}
	if err := file.Close(); err != nil {
		return n, fmt.Errorf("failed to write %s: %w", dst, err)
	}

	f.logger.Info("downloaded archive", "url", url, "size", humanize.Bytes(uint64(n)))
	return n, nil
}
