package tokens

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestEstimate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"one_char", "x", 1},
		{"four_chars", "abcd", 1},
		{"five_chars", "abcde", 2},
		{"100_chars", strings.Repeat("x", 100), 25},
		{"unicode_multi_byte", "café", 2}, // é is 2 bytes; 5 bytes total
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Estimate(tt.text); got != tt.want {
				t.Errorf("Estimate(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestTruncateUTF8(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		s     string
		limit int
		want  string
	}{
		{"ascii", "hello world", 5, "hello"},
		{"no_truncation", "short", 100, "short"},
		{"exact", "exact", 5, "exact"},
		{"zero_limit", "hello", 0, ""},
		{"empty", "", 10, ""},
		{"mid_two_byte_rune", "café", 4, "caf"},
		{"before_two_byte_rune", "café", 3, "caf"},
		{"mid_three_byte_rune", "a世b", 3, "a"},
		{"after_three_byte_rune", "a世b", 4, "a世"},
		{"mid_four_byte_rune", "x\U0001f600y", 4, "x"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := TruncateUTF8(tt.s, tt.limit)
			if got != tt.want {
				t.Errorf("TruncateUTF8(%q, %d) = %q, want %q", tt.s, tt.limit, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("result is not valid UTF-8: %q", got)
			}
		})
	}
}
