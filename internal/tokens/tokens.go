// Package tokens provides simple token estimation and UTF-8-safe truncation
// for prompt budgeting. Estimation uses a byte-based chars/4 heuristic;
// model-specific estimators can be added later.
package tokens

import "unicode/utf8"

// charsPerToken is the divisor for the byte-based estimator (roughly 4 bytes
// per token for typical English/code).
const charsPerToken = 4

// Estimate returns an estimated token count for the given text. It uses a
// simple heuristic: (len(text)+3)/4 bytes per token, so 0 bytes map to 0,
// 1-4 bytes to 1, 5-8 to 2, and so on.
func Estimate(text string) int {
	n := len(text)
	if n == 0 {
		return 0
	}
	return (n + charsPerToken - 1) / charsPerToken
}

// TruncateUTF8 cuts s to at most limit bytes without splitting a multi-byte
// rune: when the cut lands inside a rune, the whole rune is dropped. The
// result is always valid UTF-8 when s is.
func TruncateUTF8(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
