// Package prompt builds the chat-completion request for commit message
// generation: a fixed system instruction carrying the Conventional Commits
// rules and worked examples, plus a user instruction combining the diff
// classification summary with the diff itself.
package prompt

import (
	"fmt"

	"github.com/BonnardValentin/commit-sage/internal/classify"
	"github.com/BonnardValentin/commit-sage/internal/completion"
	"github.com/BonnardValentin/commit-sage/internal/tokens"
)

// maxDiffBytes caps the diff embedded in the user prompt so oversized diffs
// cannot blow the model context. Classification always sees the full diff.
const maxDiffBytes = 32 * 1024

const truncationMarker = "\n\n[diff truncated]"

// DefaultSystemPrompt is the system instruction: grammar rules, the type
// vocabulary, and worked good/bad examples per change category.
const DefaultSystemPrompt = `You are a highly skilled developer who writes perfect conventional commit messages. Your task is to analyze git diffs and generate commit messages that strictly follow the Conventional Commits specification.

COMMIT FORMAT RULES:
1. Messages MUST follow this exact structure: type(scope): description
2. Valid types are: feat, fix, docs, style, refactor, perf, test, build, ci, chore, revert
3. Scope should be the main component being changed (e.g. auth, api, core)
4. Description must:
   - Start with a lowercase letter
   - Use imperative mood (e.g. 'add' not 'adds')
   - No period at the end
   - Stay under 72 characters total

EXAMPLES BY CHANGE TYPE:
1. Initial project setup:
   GOOD: feat(core): implement commit generator with provider abstraction
   GOOD: feat(arch): establish modular design with CLI and configuration
   BAD:  feat(project): initialize repository with basic files
   BAD:  chore: initial commit
2. Features and refactors:
   GOOD: feat(api): add retry logic with exponential backoff
   GOOD: refactor(config): split loading from validation
   BAD:  feat: add new features
3. Documentation and tests:
   GOOD: docs(readme): document configuration precedence
   GOOD: test(classify): cover priority ordering of categories
   BAD:  docs: update docs

For large changes (more than 5 files or 100 lines) make the description
capture the major components being modified. Use scope 'core' for fundamental
features, 'arch' for architectural decisions, 'project' only for basic setup.`

// DefaultUserTemplate is the user instruction template. The first %s receives
// the classification summary, the second the diff text.
const DefaultUserTemplate = `Generate a conventional commit message for the following git diff.
The message MUST strictly follow the conventional commit format rules specified above.
This is a %s, so ensure the message reflects the scope of changes.
Validate your message against the examples and rules before returning it.
Only return the commit message, nothing else.

Diff:
%s`

// Builder composes completion requests. The zero value is not valid; use
// NewBuilder, which applies the default prompts, and override the fields for
// user-configured prompt text.
type Builder struct {
	System       string
	UserTemplate string
}

// NewBuilder returns a Builder with the default system prompt and user
// template.
func NewBuilder() Builder {
	return Builder{System: DefaultSystemPrompt, UserTemplate: DefaultUserTemplate}
}

// Build composes one completion request for the given classification and diff
// at the given model and generation options. The diff is truncated at a byte
// budget (on a rune boundary) with a marker appended; everything else is
// copied verbatim. The returned request is never mutated by the builder.
func (b Builder) Build(c classify.Classification, diff, model string, opts completion.Options) completion.Request {
	if len(diff) > maxDiffBytes {
		diff = tokens.TruncateUTF8(diff, maxDiffBytes) + truncationMarker
	}
	return completion.Request{
		Model: model,
		Messages: []completion.Message{
			{Role: "system", Content: b.System},
			{Role: "user", Content: fmt.Sprintf(b.UserTemplate, c.Summary(), diff)},
		},
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
		Stop:        opts.StopSequences,
	}
}
