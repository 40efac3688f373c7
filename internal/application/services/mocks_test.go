package services

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/stretchr/testify/mock"
	"github.com/the-guild-org/secrets/internal/domain/execution"
)

// MockRunner is a mock implementation of ports.CommandRunner
type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) Run(ctx context.Context, cmd execution.Command) (*execution.CommandResult, error) {
	args := m.Called(ctx, cmd)
	res, _ := args.Get(0).(*execution.CommandResult)
	return res, args.Error(1)
}

// MockFetcher is a mock implementation of ports.ArchiveFetcher
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, url, dst string) (int64, error) {
	args := m.Called(ctx, url, dst)
	return int64(args.Int(0)), args.Error(1)
}

// MockExtractor is a mock implementation of ports.ArchiveExtractor
type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Extract(archivePath, destDir string, stripComponents int) error {
	args := m.Called(archivePath, destDir, stripComponents)
	return args.Error(0)
}

func commandNamed(name string) interface{} {
	return mock.MatchedBy(func(cmd execution.Command) bool {
		return cmd.Name == name
	})
}

func ok() *execution.CommandResult {
	return &execution.CommandResult{}
}

// recordingPublisher captures masks and outputs, and the order they happened in.
type recordingPublisher struct {
	outputs map[string]string
	events  []string
	masked  []string
	mu      sync.Mutex
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{outputs: make(map[string]string)}
}

func (p *recordingPublisher) Mask(value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.masked = append(p.masked, value)
	p.events = append(p.events, "mask:"+value)
	return nil
}

func (p *recordingPublisher) SetOutput(name, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.outputs[name] = value
	p.events = append(p.events, "output:"+name)
	return nil
}

// testKey is a ports.SecretValue that remembers being zeroed.
type testKey struct {
	value  string
	zeroed bool
}

func (k *testKey) String() string { return k.value }

func (k *testKey) Zero() {
	k.value = ""
	k.zeroed = true
}

func readAllString(r io.Reader) string {
	if r == nil {
		return ""
	}
	data, _ := io.ReadAll(r)
	return string(data)
}

func writeFiles(dir string, files map[string]string) error {
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			return err
		}
	}
	return nil
}

func listNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}
