// Package classify derives a change category and a suggested Conventional
// Commits type from raw unified diff text.
//
// The scan is a per-line state machine over the diff output, not a structural
// diff parser: it only needs file paths, new/modified markers, and add/remove
// line counts. Classification is a pure function of those signals, so the
// same diff always yields the same category.
package classify

import (
	"fmt"
	"strings"
)

// Category is one of six mutually exclusive change categories.
type Category string

const (
	InitialSetup  Category = "initial-setup"
	Documentation Category = "documentation"
	TestAddition  Category = "test-addition"
	LargeFeature  Category = "large-feature"
	MajorRefactor Category = "major-refactor"
	Standard      Category = "standard"
)

// manifestNames are dependency-manifest filenames whose appearance among many
// new files marks an initial project setup.
var manifestNames = []string{
	"Cargo.toml",
	"go.mod",
	"package.json",
	"requirements.txt",
	"pom.xml",
	"Gemfile",
	"build.gradle",
}

// docExtensions are extensions treated as documentation-only changes.
var docExtensions = map[string]struct{}{"md": {}, "txt": {}}

// Classification summarizes one diff. Category and SuggestedType are derived
// from the remaining fields; recomputing from the same diff is deterministic.
type Classification struct {
	Category      Category
	SuggestedType string   // Conventional Commits type implied by Category.
	FileTypes     []string // distinct file extensions, first-seen order
	NewFiles      []string
	ModifiedFiles []string
	Additions     int
	Deletions     int
}

// Classify scans diff text and returns its classification. It is total: any
// input, including an empty string, produces a valid result (an empty diff
// has zero counters and classifies as Standard).
func Classify(diff string) Classification {
	var c Classification
	seenTypes := make(map[string]struct{})

	currentFile := ""
	for _, line := range strings.Split(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "diff --git"):
			currentFile = fileFromHeader(line)
			ext := extensionOf(currentFile)
			if _, ok := seenTypes[ext]; !ok && ext != "" {
				seenTypes[ext] = struct{}{}
				c.FileTypes = append(c.FileTypes, ext)
			}
		case strings.HasPrefix(line, "new file"):
			c.NewFiles = append(c.NewFiles, currentFile)
		case strings.HasPrefix(line, "modified"):
			c.ModifiedFiles = append(c.ModifiedFiles, currentFile)
		case strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++"):
			c.Additions++
		case strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---"):
			c.Deletions++
		}
	}

	c.Category = categorize(c)
	c.SuggestedType = suggestedType(c.Category)
	return c
}

// fileFromHeader extracts the path from a "diff --git a/X b/Y" line: the
// token after the last space, with the leading b/ path marker stripped.
func fileFromHeader(line string) string {
	fields := strings.Split(line, " ")
	path := fields[len(fields)-1]
	return strings.TrimLeft(path, "b")
}

// extensionOf returns the substring after the last '.'. A path with no dot
// yields the whole path, which keeps manifest names like "Gemfile" visible
// to the setup rule.
func extensionOf(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i+1:]
	}
	return path
}

// categorize applies the classification rules in fixed priority order; the
// first match wins.
func categorize(c Classification) Category {
	switch {
	case anyContains(c.NewFiles, manifestNames...) && len(c.NewFiles) > 5:
		return InitialSetup
	case len(c.FileTypes) == 1 && isDocExtension(c.FileTypes[0]):
		return Documentation
	case anyContains(c.NewFiles, "test", "spec"):
		return TestAddition
	case c.Additions > 100 || len(c.NewFiles) > 5:
		return LargeFeature
	case c.Deletions > c.Additions*2:
		return MajorRefactor
	default:
		return Standard
	}
}

func suggestedType(cat Category) string {
	switch cat {
	case Documentation:
		return "docs"
	case TestAddition:
		return "test"
	case MajorRefactor:
		return "refactor"
	default:
		// InitialSetup, LargeFeature, and Standard all suggest feat.
		return "feat"
	}
}

func isDocExtension(ext string) bool {
	_, ok := docExtensions[ext]
	return ok
}

func anyContains(paths []string, substrs ...string) bool {
	for _, p := range paths {
		for _, s := range substrs {
			if strings.Contains(p, s) {
				return true
			}
		}
	}
	return false
}

// Summary renders the one-line natural-language description used in the user
// prompt: category, suggested type, file counts, line counts, and extensions.
func (c Classification) Summary() string {
	return fmt.Sprintf(
		"%s (suggested type: %s) with %d new files and %d modified files. "+
			"Changes include %d additions and %d deletions across file types: %s",
		c.Category, c.SuggestedType, len(c.NewFiles), len(c.ModifiedFiles),
		c.Additions, c.Deletions, strings.Join(c.FileTypes, ", "),
	)
}
