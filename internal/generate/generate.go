// Package generate orchestrates commit message generation: classify the diff
// once, build a prompt, call the completion provider with bounded retries and
// exponential backoff, validate the result against the Conventional Commits
// grammar, and refine once at lower temperature when the type does not match
// the classification.
package generate

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/BonnardValentin/commit-sage/internal/classify"
	"github.com/BonnardValentin/commit-sage/internal/completion"
	"github.com/BonnardValentin/commit-sage/internal/conventional"
	"github.com/BonnardValentin/commit-sage/internal/prompt"
	"github.com/BonnardValentin/commit-sage/internal/tokens"
)

const (
	// DefaultMaxRetries is the number of outer generation attempts.
	DefaultMaxRetries = 3
	// DefaultInitialDelay is the backoff base: attempt n waits
	// initialDelay * 2^(n-1) before running (n starting at 1).
	DefaultInitialDelay = time.Second

	// refineTemperatureFactor scales the configured temperature for the
	// single type-mismatch refinement sub-attempt.
	refineTemperatureFactor = 0.8
)

// ErrMaxRetries is returned when all attempts are spent without producing a
// grammar-valid message and no retryable API error was seen along the way.
var ErrMaxRetries = errors.New("maximum retries exceeded")

// Config holds the orchestrator's named tunables. Zero values mean defaults,
// so tests can inject short delays, a fake sleep, and custom prompts.
type Config struct {
	MaxRetries   int
	InitialDelay time.Duration
	// Options are the generation parameters; nil means the provider's
	// defaults.
	Options *completion.Options
	// Prompt overrides the prompt builder; nil means prompt.NewBuilder().
	Prompt *prompt.Builder
	// Sleep replaces the backoff sleep; nil means a context-aware timer.
	Sleep func(ctx context.Context, d time.Duration) error
	// Logger defaults to zap.NewNop().
	Logger *zap.Logger
}

// Generator drives prompt building, completion calls, and validation for one
// provider. Generate calls are independent; a Generator is safe for
// concurrent use as long as the provider is.
type Generator struct {
	provider     completion.Provider
	builder      prompt.Builder
	opts         completion.Options
	maxRetries   int
	initialDelay time.Duration
	sleep        func(ctx context.Context, d time.Duration) error
	logger       *zap.Logger
}

// New builds a Generator for the given provider, applying defaults for any
// zero Config field.
func New(provider completion.Provider, cfg Config) *Generator {
	g := &Generator{
		provider:     provider,
		maxRetries:   cfg.MaxRetries,
		initialDelay: cfg.InitialDelay,
		sleep:        cfg.Sleep,
		logger:       cfg.Logger,
	}
	if g.maxRetries <= 0 {
		g.maxRetries = DefaultMaxRetries
	}
	if g.initialDelay <= 0 {
		g.initialDelay = DefaultInitialDelay
	}
	if cfg.Options != nil {
		g.opts = *cfg.Options
	} else {
		g.opts = provider.DefaultOptions()
	}
	if cfg.Prompt != nil {
		g.builder = *cfg.Prompt
	} else {
		g.builder = prompt.NewBuilder()
	}
	if g.sleep == nil {
		g.sleep = sleepCtx
	}
	if g.logger == nil {
		g.logger = zap.NewNop()
	}
	return g
}

// Message generates a commit message for diff using p with default
// configuration. It is the convenience entry point for callers that do not
// need to tune retries or prompts.
func Message(ctx context.Context, p completion.Provider, diff string) (string, error) {
	return New(p, Config{}).Generate(ctx, diff)
}

// Generate produces one validated Conventional Commits message for the diff,
// or a terminal error. Grammar-invalid and type-mismatched responses are
// recovered locally by retrying or refining; only transport failures,
// non-retryable API statuses, empty responses, and retry exhaustion surface
// to the caller. The calls are strictly sequential; no two completion
// requests are ever in flight at once for one Generate call.
func (g *Generator) Generate(ctx context.Context, diff string) (string, error) {
	// Classification never changes across attempts.
	class := classify.Classify(diff)
	req := g.builder.Build(class, diff, g.provider.ModelID(), g.opts)

	g.logger.Debug("built prompt",
		zap.String("category", string(class.Category)),
		zap.String("suggested_type", class.SuggestedType),
		zap.Int("estimated_tokens", tokens.Estimate(req.Messages[0].Content+req.Messages[1].Content)),
	)

	var lastErr error
	for attempt := 0; attempt < g.maxRetries; attempt++ {
		if attempt > 0 {
			delay := g.initialDelay << (attempt - 1)
			g.logger.Debug("backing off", zap.Int("attempt", attempt), zap.Duration("delay", delay))
			if err := g.sleep(ctx, delay); err != nil {
				return "", err
			}
		}

		msg, err := g.provider.Complete(ctx, req)
		if err != nil {
			var apiErr *completion.APIError
			if errors.As(err, &apiErr) && apiErr.Retryable() {
				g.logger.Debug("retryable API failure", zap.Int("attempt", attempt), zap.Int("status", apiErr.Status))
				lastErr = err
				continue
			}
			return "", err
		}

		if !conventional.IsConventional(msg) {
			g.logger.Debug("discarding non-conventional response", zap.Int("attempt", attempt))
			continue
		}
		if conventional.TypeOf(msg) == class.SuggestedType {
			return msg, nil
		}

		// Valid message, wrong type: one immediate sub-attempt at lower
		// temperature, except on the final outer attempt.
		if attempt < g.maxRetries-1 {
			refined, refErr := g.refine(ctx, req)
			if refErr == nil && conventional.IsConventional(refined) {
				return refined, nil
			}
		}
		// The mismatched message is still structurally valid; return it
		// rather than erroring once refinement has had its chance.
		g.logger.Debug("returning type-mismatched message",
			zap.String("got", conventional.TypeOf(msg)),
			zap.String("suggested", class.SuggestedType),
		)
		return msg, nil
	}

	if lastErr != nil {
		return "", lastErr
	}
	return "", ErrMaxRetries
}

// refine reissues the request with the temperature scaled down.
func (g *Generator) refine(ctx context.Context, req completion.Request) (string, error) {
	refined := req
	refined.Temperature = req.Temperature * refineTemperatureFactor
	return g.provider.Complete(ctx, refined)
}

// sleepCtx waits for d or until ctx is done, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
