package execution

import (
	"io"
	"strings"
	"time"
)

// Command describes one subprocess invocation.
type Command struct {
	// Stdin is piped to the process when set. It is never logged.
	Stdin io.Reader
	Name  string
	// Display replaces the logged command line, for invocations that carry secrets.
	Display string
	Dir     string
	Args    []string
}

// String returns the command line as it should appear in logs.
func (c Command) String() string {
	if c.Display != "" {
		return c.Display
	}
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// CommandResult captures what a finished subprocess produced.
type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Outcome classifies a finished subprocess.
type Outcome string

const (
	// OutcomeSuccess means exit 0 and nothing on stderr
	OutcomeSuccess Outcome = "success"
	// OutcomeInformational means exit 0 with tolerated stderr output
	OutcomeInformational Outcome = "informational"
	// OutcomeFatal aborts the run
	OutcomeFatal Outcome = "fatal"
)

// StderrPredicate decides whether stderr output of a successful process is
// merely informational.
type StderrPredicate func(stderr string) bool

// Classify decides the outcome of a result. The exit code decides first; stderr
// output of a zero-exit process is fatal unless tolerated reports it as informational.
func Classify(res *CommandResult, tolerated StderrPredicate) Outcome {
	if res == nil || res.ExitCode != 0 {
		return OutcomeFatal
	}
	if strings.TrimSpace(res.Stderr) == "" {
		return OutcomeSuccess
	}
	if tolerated != nil && tolerated(res.Stderr) {
		return OutcomeInformational
	}
	return OutcomeFatal
}

// IsFatal returns true if the outcome must abort the run.
func (o Outcome) IsFatal() bool {
	return o == OutcomeFatal
}
