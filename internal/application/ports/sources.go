package ports

import "context"

// SecretsSource locates a directory of encrypted secrets and prepares it for reveal.
type SecretsSource interface {
	// Name identifies the source in logs.
	Name() string

	// Prepare readies the source: purging stale plaintext or cloning afresh.
	Prepare(ctx context.Context) error

	// WorkDir is the directory the reveal command runs in.
	WorkDir() string

	// SecretsDir holds the encrypted files and, after reveal, their plaintext.
	SecretsDir() string

	// OutputPrefix is prepended to each file name to form the output name.
	OutputPrefix() string
}
