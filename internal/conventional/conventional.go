// Package conventional validates commit messages against the Conventional
// Commits structure: type[(scope)]: description.
//
// Only the structural shape is checked mechanically: a known type token, an
// optional parenthesized scope, and the ": " separator. Description casing,
// mood, and length are advisory guidance given to the model via the prompt,
// not enforced here; callers needing stronger guarantees add their own checks.
package conventional

import "strings"

// Types is the fixed vocabulary of Conventional Commits types.
var Types = []string{
	"feat", "fix", "docs", "style", "refactor",
	"perf", "test", "build", "ci", "chore", "revert",
}

var typeSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Types))
	for _, t := range Types {
		m[t] = struct{}{}
	}
	return m
}()

// IsConventional reports whether message has the shape
// "type[(scope)]: description" with a known type.
func IsConventional(message string) bool {
	head, _, found := strings.Cut(message, ": ")
	if !found {
		return false
	}
	commitType := head
	if i := strings.IndexByte(head, '('); i >= 0 {
		commitType = head[:i]
	}
	_, ok := typeSet[commitType]
	return ok
}

// TypeOf extracts the leading type token from a commit message: the text
// before the first ':', with any "(scope)" suffix removed. A message with no
// colon yields the whole message. The result is not checked against Types.
func TypeOf(message string) string {
	head, _, _ := strings.Cut(message, ":")
	if i := strings.IndexByte(head, '('); i >= 0 {
		head = head[:i]
	}
	return head
}
