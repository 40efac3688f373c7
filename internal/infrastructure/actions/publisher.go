// Package actions publishes masks, outputs and annotations to a GitHub
// Actions runner.
package actions

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sethvargo/go-githubactions"

	"github.com/the-guild-org/secrets/internal/application/ports"
)

// OutputFileEnv names the file outputs are appended to.
const OutputFileEnv = "GITHUB_OUTPUT"

// outputFileCommand resolves to OutputFileEnv as a file command.
const outputFileCommand = "output"

// ErrDelimiterCollision is returned when an output would contain its own heredoc delimiter.
var ErrDelimiterCollision = errors.New("output contains heredoc delimiter")

// Publisher implements ports.OutputPublisher with workflow commands.
// Commands go to stdout unredacted; the runner strips them from the job log.
type Publisher struct {
	action       *githubactions.Action
	provider     ports.SensitiveValueProvider
	newDelimiter func() string
	outputFile   string
	mu           sync.Mutex
}

// NewPublisher creates a publisher writing commands to stdout. When outputFile
// is empty, outputs fall back to the legacy set-output command. Masked values
// are also tracked by provider, if set.
func NewPublisher(stdout io.Writer, outputFile string, provider ports.SensitiveValueProvider) *Publisher {
	getenv := func(key string) string {
		if key == OutputFileEnv {
			return outputFile
		}
		return os.Getenv(key)
	}

	return &Publisher{
		action: githubactions.New(
			githubactions.WithWriter(stdout),
			githubactions.WithGetenv(getenv),
		),
		outputFile: outputFile,
		provider:   provider,
		newDelimiter: func() string {
			return "ghadelimiter_" + uuid.NewString()
		},
	}
}

// Mask registers value as a secret with the runner. Multi-line values are
// masked whole and line by line. Empty values are ignored.
func (p *Publisher) Mask(value string) error {
	if value == "" {
		return nil
	}
	if p.provider != nil {
		p.provider.Track(value)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.action.AddMask(value)
	if !strings.ContainsAny(value, "\r\n") {
		return nil
	}

	// The runner matches masks per log line.
	for _, line := range strings.FieldsFunc(value, func(r rune) bool { return r == '\n' || r == '\r' }) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		p.action.AddMask(line)
	}
	return nil
}

// SetOutput publishes value under name.
func (p *Publisher) SetOutput(name, value string) error {
	if name == "" {
		return errors.New("output name is required")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.outputFile == "" {
		p.action.IssueCommand(&githubactions.Command{
			Name:       "set-output",
			Message:    value,
			Properties: githubactions.CommandProperties{"name": name},
		})
		return nil
	}

	delimiter := p.newDelimiter()
	if strings.Contains(name, delimiter) || strings.Contains(value, delimiter) {
		return fmt.Errorf("%w: %s", ErrDelimiterCollision, name)
	}

	err := p.action.IssueFileCommand(&githubactions.Command{
		Name:    outputFileCommand,
		Message: fmt.Sprintf("%s<<%s\n%s\n%s", name, delimiter, value, delimiter),
	})
	if err != nil {
		return fmt.Errorf("failed to write output %s: %w", name, err)
	}
	return nil
}

// Error annotates the run with a failure message.
func (p *Publisher) Error(message string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.action.Errorf("%s", message)
	return nil
}

// Warning annotates the run with a warning message.
func (p *Publisher) Warning(message string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.action.Warningf("%s", message)
	return nil
}
