package entities

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// BinaryName is the file produced by building git-secret.
const BinaryName = "git-secret"

// Installation is a pinned git-secret install on the host.
// It is never upgraded in place; a stale install is deleted and rebuilt.
type Installation struct {
	Version string
	Dir     string
	Binary  string
}

// NewInstallation derives the install location for a pinned version under root.
// The directory name is deterministic so every run on a host finds the same install.
func NewInstallation(root, version string) (Installation, error) {
	if _, err := semver.NewVersion(version); err != nil {
		return Installation{}, fmt.Errorf("invalid git-secret version %q: %w", version, err)
	}
	if root == "" {
		return Installation{}, fmt.Errorf("install root must not be empty")
	}

	dir := filepath.Join(root, "git-secret_"+version)
	return Installation{
		Version: version,
		Dir:     dir,
		Binary:  filepath.Join(dir, BinaryName),
	}, nil
}

// ArchiveURL expands the source archive URL template for this version.
func (i Installation) ArchiveURL(template string) string {
	return fmt.Sprintf(template, i.Version)
}

// ArchivePath is where the downloaded source archive is stored.
func (i Installation) ArchivePath() string {
	return filepath.Join(i.Dir, "archive.tar.gz")
}

// LockPath is the advisory lock guarding installs of this version.
// It lives next to Dir because Dir itself gets removed.
func (i Installation) LockPath() string {
	return strings.TrimSuffix(i.Dir, string(filepath.Separator)) + ".lock"
}
