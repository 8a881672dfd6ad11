package conventional

import "testing"

func TestIsConventional(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		message string
		want    bool
	}{
		{"plain_type", "feat: add new feature", true},
		{"with_scope", "fix(core): resolve issue", true},
		{"docs", "docs: update readme", true},
		{"revert", "revert: undo bad merge", true},
		{"no_separator", "random message", false},
		{"colon_without_space", "feat:add x", false},
		{"space_without_colon", "feat add x", false},
		{"unknown_type", "bogus: x", false},
		{"unknown_type_with_scope", "bogus(core): x", false},
		{"empty", "", false},
		{"separator_only", ": description", false},
		{"uppercase_type", "Feat: add x", false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsConventional(tt.message); got != tt.want {
				t.Errorf("IsConventional(%q) = %v, want %v", tt.message, got, tt.want)
			}
		})
	}
}

func TestTypeOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"plain_type", "feat: add x", "feat"},
		{"with_scope", "fix(core): y", "fix"},
		{"scope_before_colon", "refactor(api): split handlers", "refactor"},
		{"no_colon", "no colon here", "no colon here"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TypeOf(tt.message); got != tt.want {
				t.Errorf("TypeOf(%q) = %q, want %q", tt.message, got, tt.want)
			}
		})
	}
}
