package entities

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInstallation(t *testing.T) {
	root := t.TempDir()

	inst, err := NewInstallation(root, "v0.5.0")
	require.NoError(t, err)

	assert.Equal(t, "v0.5.0", inst.Version)
	assert.Equal(t, filepath.Join(root, "git-secret_v0.5.0"), inst.Dir)
	assert.Equal(t, filepath.Join(root, "git-secret_v0.5.0", "git-secret"), inst.Binary)
	assert.Equal(t, filepath.Join(root, "git-secret_v0.5.0", "archive.tar.gz"), inst.ArchivePath())
	assert.Equal(t, filepath.Join(root, "git-secret_v0.5.0.lock"), inst.LockPath())
	assert.Equal(t,
		"https://github.com/sobolevn/git-secret/archive/refs/tags/v0.5.0.tar.gz",
		inst.ArchiveURL("https://github.com/sobolevn/git-secret/archive/refs/tags/%s.tar.gz"))
}

func TestNewInstallation_Invalid(t *testing.T) {
	_, err := NewInstallation(t.TempDir(), "latest")
	assert.ErrorContains(t, err, "invalid git-secret version")

	_, err = NewInstallation("", "v0.5.0")
	assert.ErrorContains(t, err, "install root")
}

func TestSecretFile(t *testing.T) {
	f := SecretFile{Name: "db-password"}
	assert.Equal(t, "secrets.db-password", f.OutputName("secrets."))
	assert.Equal(t, "db-password", f.OutputName(""))

	assert.True(t, IsEncrypted("db-password.secret", ".secret"))
	assert.False(t, IsEncrypted("db-password", ".secret"))
	assert.False(t, IsEncrypted("secret", ".secret"))
}
