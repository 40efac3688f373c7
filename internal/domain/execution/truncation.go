package execution

import (
	"fmt"
	"unicode/utf8"
)

// MaxErrorOutput bounds the subprocess output carried in an error message.
const MaxErrorOutput = 4096

// TruncateOutput keeps the last limit bytes of s, where build and gpg
// failures report their cause. It reports whether anything was dropped.
// A limit of zero or less disables truncation.
func TruncateOutput(s string, limit int) (string, bool) {
	if limit <= 0 || len(s) <= limit {
		return s, false
	}

	start := len(s) - limit
	for start < len(s) && !utf8.RuneStart(s[start]) {
		start++
	}

	return fmt.Sprintf("... [TRUNCATED %d bytes] ...\n%s", start, s[start:]), true
}
