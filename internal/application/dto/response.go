package dto

import (
	"time"

	"github.com/the-guild-org/secrets/internal/domain/values"
)

// RevealResponse summarises a finished pipeline run.
type RevealResponse struct {
	RunID  values.RunID
	Binary string
	// Outputs lists the published output names in publish order.
	Outputs []string
	Stage   values.Stage
	// Installed is true when this run downloaded and built the tool.
	Installed   bool
	KeyImported bool
	Duration    time.Duration
}

// InstallResponse summarises a standalone install.
type InstallResponse struct {
	Binary    string
	Installed bool
}
