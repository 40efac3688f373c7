// Package dto contains request and response types for application use cases.
package dto

import "github.com/the-guild-org/secrets/internal/application/ports"

// RevealRequest carries the per-run inputs of the reveal pipeline.
type RevealRequest struct {
	// GPGKey is imported before reveal and zeroed when the run ends.
	// Nil or empty skips the import.
	GPGKey ports.SecretValue
}
