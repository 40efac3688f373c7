package values

import "fmt"

// SourceKind selects where encrypted secrets come from.
type SourceKind string

const (
	// SourceLocal reveals secrets in a directory shipped next to the action
	SourceLocal SourceKind = "local"
	// SourceRepository reveals secrets in a freshly cloned external repository
	SourceRepository SourceKind = "repository"
)

// ParseSourceKind converts a configuration string to a SourceKind.
func ParseSourceKind(s string) (SourceKind, error) {
	kind := SourceKind(s)
	if err := kind.Validate(); err != nil {
		return "", err
	}
	return kind, nil
}

// Validate returns an error if the kind is unknown.
func (k SourceKind) Validate() error {
	switch k {
	case SourceLocal, SourceRepository:
		return nil
	default:
		return fmt.Errorf("invalid source kind: %q (valid: local, repository)", string(k))
	}
}

// DefaultOutputPrefix is the output name prefix used when none is configured.
// Local secrets are published as "secrets.<file>", cloned ones as "<file>".
func (k SourceKind) DefaultOutputPrefix() string {
	if k == SourceLocal {
		return "secrets."
	}
	return ""
}
