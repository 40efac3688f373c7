package sensitivedata

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/the-guild-org/secrets/internal/application/ports"
)

// Redacted replaces every sensitive value in text.
const Redacted = "[REDACTED]"

// minLineLength is the shortest line of a multi-line secret redacted on its own.
const minLineLength = 4

// Fragments expands values into the strings that must be redacted: each value
// and, for multi-line values, each of its non-trivial lines. Every fragment is
// also included in its Go-quoted form, which is how slog's text handler writes
// values holding quotes, backslashes or control characters. Longest first so
// that a value is replaced before any of its lines.
func Fragments(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	add := func(s string) {
		if s == "" {
			return
		}
		for _, f := range []string{s, quotedInner(s)} {
			if _, ok := seen[f]; ok {
				continue
			}
			seen[f] = struct{}{}
			out = append(out, f)
		}
	}

	for _, v := range values {
		add(v)
		if !strings.ContainsAny(v, "\r\n") {
			continue
		}
		for _, line := range strings.FieldsFunc(v, func(r rune) bool { return r == '\n' || r == '\r' }) {
			if len(strings.TrimSpace(line)) >= minLineLength {
				add(line)
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
	return out
}

func quotedInner(s string) string {
	q := strconv.Quote(s)
	return q[1 : len(q)-1]
}

// ScrubValues replaces every fragment of values in msg.
func ScrubValues(msg string, values []string) string {
	for _, secret := range Fragments(values) {
		if strings.Contains(msg, secret) {
			msg = strings.ReplaceAll(msg, secret, Redacted)
		}
	}
	return msg
}

// SafeError wraps an error, redacting any sensitive values in the message.
func SafeError(err error, provider ports.SensitiveValueProvider) error {
	if err == nil {
		return nil
	}
	if provider == nil {
		return err
	}

	msg := ScrubValues(err.Error(), provider.AllValues())
	if msg == err.Error() {
		return err // No redaction needed, return original error to preserve type
	}

	return errors.New(msg)
}
