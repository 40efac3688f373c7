package apperrors

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/the-guild-org/secrets/internal/domain/values"
)

func TestDownloadError(t *testing.T) {
	err := NewDownloadStatusError("https://example.com/a.tar.gz", 404, "404 Not Found")
	assert.Equal(t, "unable to download https://example.com/a.tar.gz: 404 Not Found", err.Error())
	assert.Nil(t, errors.Unwrap(err))

	cause := errors.New("connection reset")
	err = NewDownloadError("https://example.com/a.tar.gz", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestCommandError(t *testing.T) {
	assert.Equal(t, `command "make" exited with code 2`, NewCommandError("make", 2, "").Error())
	assert.Equal(t, `command "make" exited with code 2: no rule`, NewCommandError("make", 2, "no rule\n").Error())
	assert.Equal(t, `command "gpg --import" wrote to stderr: bad data`, NewCommandError("gpg --import", 0, "bad data").Error())
}

func TestStageError(t *testing.T) {
	cause := NewMissingBinaryError("/tmp/git-secret_v0.5.0/git-secret")
	err := NewStageError("install", values.StageInstalling, cause)

	assert.Equal(t, "install failed (after installing): git-secret binary does not exist at /tmp/git-secret_v0.5.0/git-secret", err.Error())
	assert.Equal(t, values.StageInstalling, err.Stage)

	var missing *MissingBinaryError
	assert.True(t, errors.As(err, &missing))
	assert.Equal(t, "/tmp/git-secret_v0.5.0/git-secret", missing.Path)
}

func TestConfigurationError(t *testing.T) {
	err := NewConfigurationError("source", "repository is required", nil)
	assert.Equal(t, "configuration error (source): repository is required", err.Error())

	err = NewConfigurationError("file", "failed to read", fs.ErrNotExist)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
