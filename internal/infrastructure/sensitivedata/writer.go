package sensitivedata

import (
	"io"
	"sync"
)

// Scrubber removes sensitive content from text.
type Scrubber interface {
	ScrubString(input string) string
}

// Writer wraps an io.Writer and redacts all data before writing.
// Thread-safe: can be used concurrently by multiple goroutines.
type Writer struct {
	underlying io.Writer
	scrubber   Scrubber
	mu         sync.Mutex // Protects writes to underlying writer
}

// NewWriter creates a redacting writer. A nil scrubber passes data through.
func NewWriter(w io.Writer, s Scrubber) *Writer {
	return &Writer{
		underlying: w,
		scrubber:   s,
	}
}

// Write implements io.Writer, redacting data before passing to underlying writer.
func (w *Writer) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.scrubber == nil {
		return w.underlying.Write(p)
	}

	redacted := w.scrubber.ScrubString(string(p))
	_, err = io.WriteString(w.underlying, redacted)

	// Return original length to caller (io.Writer contract expects len(p))
	// This prevents short write errors even if redacted length differs
	if err != nil {
		return 0, err
	}
	return len(p), nil
}
