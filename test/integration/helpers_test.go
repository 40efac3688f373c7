package integration

import (
	"archive/tar"
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"

	"github.com/the-guild-org/secrets/internal/infrastructure/container"
	"github.com/the-guild-org/secrets/internal/infrastructure/system"
)

// harness runs the real container against fake tools on a temp host.
type harness struct {
	cfg        *system.Config
	stdout     bytes.Buffer
	logs       bytes.Buffer
	outputFile string
	root       string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	root := t.TempDir()

	cfg := system.DefaultConfig()
	cfg.Tool.InstallRoot = filepath.Join(root, "tools")
	cfg.Source.CloneDir = filepath.Join(root, "clone")
	cfg.Redaction.Gitleaks = false

	// The runner creates the output file before the step starts.
	outputFile := filepath.Join(root, "github_output")
	require.NoError(t, os.WriteFile(outputFile, nil, 0o644))

	return &harness{
		cfg:        cfg,
		root:       root,
		outputFile: outputFile,
	}
}

func (h *harness) container(t *testing.T, opts container.Options) *container.Container {
	t.Helper()
	opts.Config = h.cfg
	opts.Stdout = &h.stdout
	opts.LogOutput = &h.logs
	opts.OutputFile = h.outputFile
	c, err := container.New(opts)
	require.NoError(t, err)
	return c
}

func (h *harness) outputs(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(h.outputFile)
	require.NoError(t, err)
	return string(data)
}

func writeExecutable(t *testing.T, path, script string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755)) //nolint:gosec // test helper
}

// installFakeTool puts a prebuilt git-secret where the installer looks for it.
func installFakeTool(t *testing.T, cfg *system.Config, script string) {
	t.Helper()
	writeExecutable(t, filepath.Join(cfg.Tool.InstallRoot, "git-secret_"+cfg.Tool.Version, "git-secret"), script)
}

// fakeGPG puts a gpg on PATH that records its stdin and prints the usual
// import notice to stderr.
func fakeGPG(t *testing.T) string {
	t.Helper()
	bin := filepath.Join(t.TempDir(), "bin")
	received := filepath.Join(bin, "received")
	writeExecutable(t, filepath.Join(bin, "gpg"),
		"#!/bin/sh\ncat > '"+received+"'\necho 'gpg: key 0123456789ABCDEF: secret key imported' >&2\n")
	t.Setenv("PATH", bin+string(os.PathListSeparator)+os.Getenv("PATH"))
	return received
}

func requireTool(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not available: %v", name, err)
	}
}

// sourceArchive builds a gzipped tarball with everything under a top-level dir,
// the way source archives of tagged releases are laid out.
func sourceArchive(t *testing.T, top string, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(zw)

	require.NoError(t, tw.WriteHeader(&tar.Header{Name: top + "/", Typeflag: tar.TypeDir, Mode: 0o755}))
	for name, body := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     top + "/" + name,
			Typeflag: tar.TypeReg,
			Mode:     0o644,
			Size:     int64(len(body)),
		}))
		_, err := tw.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func git(t *testing.T, dir string, args ...string) {
	t.Helper()
	base := []string{"-c", "user.name=ci", "-c", "user.email=ci@example.com", "-c", "init.defaultBranch=main"}
	cmd := exec.Command("git", append(base, args...)...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, out)
}
