// Package completion defines the value types and the provider contract shared
// by the prompt builder, the orchestrator, and concrete completion backends.
//
// A Provider is any chat-completion backend that can identify itself, expose
// default generation parameters, and perform one request/response exchange.
// Retry policy is not a provider concern; it lives in the orchestrator, which
// needs the HTTP status to decide retry eligibility.
package completion

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Message is one role-tagged message in a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Options are the generation parameters for one exchange.
type Options struct {
	Temperature   float64
	MaxTokens     int
	StopSequences []string
}

// Request is one chat-completion exchange, owned by a single in-flight call.
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
	Stop        []string  `json:"stop"`
}

// Provider is a completion backend. Implementations must be safe for
// concurrent use; Complete performs exactly one exchange with no internal
// retry and returns the trimmed text of the first completion choice.
type Provider interface {
	// ModelID returns the model identifier requests are sent to.
	ModelID() string
	// DefaultOptions returns the backend's default generation parameters.
	DefaultOptions() Options
	// Complete performs one request/response exchange.
	Complete(ctx context.Context, req Request) (string, error)
}

// ErrNoChoices indicates the endpoint answered successfully but the decoded
// body carried no completion choice.
var ErrNoChoices = errors.New("no completion choices in response")

// APIError is a non-success status from the completion endpoint.
type APIError struct {
	Status int
}

func (e *APIError) Error() string {
	switch e.Status {
	case http.StatusServiceUnavailable:
		return "completion service is temporarily unavailable"
	case http.StatusUnauthorized:
		return "invalid API key"
	case http.StatusTooManyRequests:
		return "rate limit exceeded"
	default:
		return fmt.Sprintf("completion API returned HTTP %d", e.Status)
	}
}

// Retryable reports whether the status is worth another attempt. The
// allowlist is deliberately narrow: only service-unavailable and rate-limited
// responses; every other status, including 500, is terminal.
func (e *APIError) Retryable() bool {
	return e.Status == http.StatusServiceUnavailable || e.Status == http.StatusTooManyRequests
}
