package entities

import "strings"

// SecretFile is a revealed plaintext file read back from a secrets directory.
type SecretFile struct {
	Name  string
	Path  string
	Value string
}

// OutputName is the CI output key the value is published under.
func (f SecretFile) OutputName(prefix string) string {
	return prefix + f.Name
}

// IsEncrypted reports whether name carries the reserved encrypted-file suffix.
func IsEncrypted(name, suffix string) bool {
	return strings.HasSuffix(name, suffix)
}
