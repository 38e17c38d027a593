package sanitize

import (
	"strings"
)

// Ellipsis is appended by Truncate when text is cut.
const Ellipsis = "…"

// Keys that get length-bounded on their way to storage.
const (
	KeyRawTextSnippet = "rawTextSnippet"
	KeyOCRText        = "ocrText"
)

// Text strips NUL and non-printable control characters (C0 except
// \n \r \t, DEL, and C1) and trims surrounding whitespace.
// Idempotent: Text(Text(s)) == Text(s).
func Text(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if stripped(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

func stripped(r rune) bool {
	switch r {
	case '\n', '\r', '\t':
		return false
	}
	switch {
	case r <= 0x08:
		return true
	case r >= 0x0B && r <= 0x0C:
		return true
	case r >= 0x0E && r <= 0x1F:
		return true
	case r >= 0x7F && r <= 0x9F:
		return true
	}
	return false
}

// Object applies Text to every string leaf of a nested map/slice/scalar
// structure, returning a copy with the same shape. Non-string leaves
// pass through unchanged.
func Object(v any) any {
	switch t := v.(type) {
	case string:
		return Text(t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = Object(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = Object(val)
		}
		return out
	default:
		return v
	}
}

// Truncate bounds s to max runes, marking the cut with an ellipsis.
func Truncate(s string, max int) string {
	if max < 0 {
		max = 0
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + Ellipsis
}

// PrepareForStorage cleans data and bounds the two well-known long-text
// keys so the result is safe to persist as a size-bounded JSON column.
func PrepareForStorage(data map[string]any, maxSnippetLen int) map[string]any {
	cleaned, _ := Object(data).(map[string]any)
	if cleaned == nil {
		return map[string]any{}
	}
	for _, key := range []string{KeyRawTextSnippet, KeyOCRText} {
		if s, ok := cleaned[key].(string); ok {
			cleaned[key] = Truncate(s, maxSnippetLen)
		}
	}
	return cleaned
}
