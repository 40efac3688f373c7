// Package archive unpacks gzipped tarballs.
package archive

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// ErrUnsafePath is returned for entries that would land outside the destination.
var ErrUnsafePath = errors.New("archive entry escapes destination")

// TarGzExtractor implements ports.ArchiveExtractor for .tar.gz files.
type TarGzExtractor struct{}

// NewTarGzExtractor creates a new extractor.
func NewTarGzExtractor() *TarGzExtractor {
	return &TarGzExtractor{}
}

// Extract unpacks archivePath into destDir, dropping the first stripComponents
// path elements of each entry. Entries left with no path are skipped.
func (e *TarGzExtractor) Extract(archivePath, destDir string, stripComponents int) error {
	//nolint:gosec // G304: archive path is derived from the pinned install dir
	f, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close() // Best-effort cleanup
	}()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("failed to open gzip stream: %w", err)
	}
	defer func() {
		_ = zr.Close()
	}()

	tr := tar.NewReader(zr)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read tar entry: %w", err)
		}

		name, ok := stripPath(hdr.Name, stripComponents)
		if !ok {
			continue
		}
		target, err := safeJoin(destDir, name)
		if err != nil {
			return err
		}

		if err := writeEntry(tr, hdr, destDir, target); err != nil {
			return fmt.Errorf("failed to extract %s: %w", hdr.Name, err)
		}
	}
}

func writeEntry(r io.Reader, hdr *tar.Header, destDir, target string) error {
	mode := os.FileMode(hdr.Mode).Perm()

	switch hdr.Typeflag {
	case tar.TypeDir:
		return os.MkdirAll(target, 0o755)

	case tar.TypeReg:
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		//nolint:gosec // G304: target is checked by safeJoin
		out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
		if err != nil {
			return err
		}
		//nolint:gosec // G110: archive comes from a pinned release
		if _, err := io.Copy(out, r); err != nil {
			_ = out.Close()
			return err
		}
		return out.Close()

	case tar.TypeSymlink:
		// Relative links must resolve inside destDir; absolute links are refused.
		if filepath.IsAbs(hdr.Linkname) {
			return ErrUnsafePath
		}
		resolved := filepath.Join(filepath.Dir(target), hdr.Linkname)
		if !within(destDir, resolved) {
			return ErrUnsafePath
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		return os.Symlink(hdr.Linkname, target)

	default:
		// pax global headers, hard links, devices: nothing git-secret needs.
		return nil
	}
}

// stripPath removes the first n elements of a slash-separated entry name.
func stripPath(name string, n int) (string, bool) {
	parts := strings.Split(strings.Trim(filepath.ToSlash(name), "/"), "/")
	if len(parts) <= n {
		return "", false
	}
	rest := strings.Join(parts[n:], "/")
	if rest == "" || rest == "." {
		return "", false
	}
	return rest, true
}

func safeJoin(destDir, name string) (string, error) {
	target := filepath.Join(destDir, filepath.FromSlash(name))
	if !within(destDir, target) {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, name)
	}
	return target, nil
}

func within(dir, path string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
