// Package values contains domain value objects that encapsulate
// primitive types with validation.
package values

import "fmt"

// Stage is a point in the reveal pipeline.
type Stage string

const (
	// StageNotInstalled is the starting point of every run
	StageNotInstalled Stage = "not_installed"
	// StageInstalling means the tool is being downloaded and built
	StageInstalling Stage = "installing"
	// StageInstalled means the pinned binary is present
	StageInstalled Stage = "installed"
	// StageKeyImported means the gpg key was imported
	StageKeyImported Stage = "key_imported"
	// StageKeyImportSkipped means no gpg key was supplied
	StageKeyImportSkipped Stage = "key_import_skipped"
	// StageSourceReady means the secrets directory is purged or cloned
	StageSourceReady Stage = "source_ready"
	// StageRevealed means the reveal subprocess succeeded
	StageRevealed Stage = "revealed"
	// StageOutputsPublished means every plaintext value was masked and published
	StageOutputsPublished Stage = "outputs_published"
	// StageFailed halts the run
	StageFailed Stage = "failed"
)

// stageTransitions lists the forward moves allowed from each stage.
// StageFailed is reachable from every non-terminal stage and is handled separately.
var stageTransitions = map[Stage][]Stage{
	// An already installed tool skips Installing.
	StageNotInstalled:     {StageInstalling, StageInstalled},
	StageInstalling:       {StageInstalled},
	StageInstalled:        {StageKeyImported, StageKeyImportSkipped},
	StageKeyImported:      {StageSourceReady},
	StageKeyImportSkipped: {StageSourceReady},
	StageSourceReady:      {StageRevealed},
	StageRevealed:         {StageOutputsPublished},
}

// IsTerminal returns true for stages that end the run.
func (s Stage) IsTerminal() bool {
	return s == StageOutputsPublished || s == StageFailed
}

// CanTransitionTo reports whether the pipeline may move from s to next.
func (s Stage) CanTransitionTo(next Stage) bool {
	if s.IsTerminal() {
		return false
	}
	if next == StageFailed {
		return true
	}
	for _, allowed := range stageTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Validate returns an error if the stage value is invalid
func (s Stage) Validate() error {
	switch s {
	case StageNotInstalled, StageInstalling, StageInstalled,
		StageKeyImported, StageKeyImportSkipped, StageSourceReady,
		StageRevealed, StageOutputsPublished, StageFailed:
		return nil
	default:
		return fmt.Errorf("invalid stage: %s", s)
	}
}

func (s Stage) String() string {
	return string(s)
}
