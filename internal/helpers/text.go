package helpers

import "strings"

// NormalizeNewlines converts CRLF and lone CR line endings to LF so that
// line numbers stay stable regardless of how a file was checked out.
func NormalizeNewlines(b []byte) []byte {
	if len(b) == 0 {
		return b
	}
	s := string(b)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return []byte(s)
}

// TruncateRunes shortens s to at most n runes, appending an ellipsis when
// anything was cut. n <= 0 returns the empty string.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}

// FirstLine returns s up to (not including) the first newline.
func FirstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
