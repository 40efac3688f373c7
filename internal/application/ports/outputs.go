package ports

// OutputPublisher exposes values to the CI host.
type OutputPublisher interface {
	// Mask tells the host to redact value from all subsequent log output.
	Mask(value string) error

	// SetOutput publishes value under name.
	SetOutput(name, value string) error
}
