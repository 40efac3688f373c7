package sensitivedata

import "runtime"

// SecureString holds a sensitive value that is zeroed when no longer needed.
// The GPG private key is held in one of these until it has been imported.
type SecureString struct {
	value []byte
}

// NewSecureString creates a secure string from the input.
func NewSecureString(s string) *SecureString {
	ss := &SecureString{
		value: []byte(s),
	}
	// Set finalizer to zero memory when garbage collected
	runtime.SetFinalizer(ss, func(ss *SecureString) {
		ss.Zero()
	})
	return ss
}

// String returns the secret value. Avoid logging this!
// A nil SecureString is empty.
func (ss *SecureString) String() string {
	if ss == nil {
		return ""
	}
	return string(ss.value)
}

// IsEmpty reports whether there is no secret material.
func (ss *SecureString) IsEmpty() bool {
	return ss == nil || len(ss.value) == 0
}

// Zero overwrites the memory with zeros.
// Call this explicitly when done with the secret.
func (ss *SecureString) Zero() {
	if ss == nil {
		return
	}
	for i := range ss.value {
		ss.value[i] = 0
	}
}
