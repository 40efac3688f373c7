package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeExecutable(t *testing.T, path, script string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755)) //nolint:gosec // test helper
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "git-secret-action version")
	assert.Contains(t, out.String(), "git-secret v0.5.0")
}

func TestRevealCommand_LocalSecrets(t *testing.T) {
	root := t.TempDir()
	secretsDir := filepath.Join(root, "repo", "secrets")
	require.NoError(t, os.MkdirAll(secretsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(secretsDir, "api.secret"), []byte("encrypted"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(secretsDir, "stale.txt"), []byte("old"), 0o600))

	installRoot := filepath.Join(root, "tools")
	writeExecutable(t, filepath.Join(installRoot, "git-secret_v0.5.0", "git-secret"),
		"#!/bin/sh\nprintf 's3cret-value' > \"$FAKE_SECRETS_DIR/api\"\n")

	outputFile := filepath.Join(root, "github_output")
	require.NoError(t, os.WriteFile(outputFile, nil, 0o644))
	t.Setenv("FAKE_SECRETS_DIR", secretsDir)
	t.Setenv("GITHUB_OUTPUT", outputFile)
	t.Setenv("INPUT_GPG-KEY", "")

	rootCmd.SetArgs([]string{
		"reveal",
		"--tool-install-root", installRoot,
		"--source-dir", secretsDir,
		"--source-work-dir", filepath.Join(root, "repo"),
		"--redaction-gitleaks=false",
	})
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "secrets.api<<ghadelimiter_")
	assert.Contains(t, string(data), "\ns3cret-value\n")
	assert.NotContains(t, string(data), "stale.txt")

	assert.NoFileExists(t, filepath.Join(secretsDir, "stale.txt"))
	assert.FileExists(t, filepath.Join(secretsDir, "api.secret"))
}
