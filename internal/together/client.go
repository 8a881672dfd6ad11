// Package together provides a completion.Provider backed by the Together.ai
// chat completions API.
package together

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/BonnardValentin/commit-sage/internal/completion"
)

// DefaultBaseURL is the Together.ai API root.
const DefaultBaseURL = "https://api.together.xyz"

const _defaultTimeout = 60 * time.Second

// Client calls the Together.ai chat completions endpoint. Zero value is not
// valid; use NewClient. One Client is safe for concurrent use; the underlying
// http.Client owns connection-pool safety.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient builds a Together.ai client. baseURL is the API root (tests point
// it at a local server); empty means DefaultBaseURL. If httpClient is nil, a
// default client with a 60s timeout is used.
func NewClient(baseURL, apiKey, model string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: _defaultTimeout}
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: httpClient,
	}
}

// ModelID returns the model identifier requests are sent to.
func (c *Client) ModelID() string { return c.model }

// DefaultOptions returns conservative generation parameters for one-line
// commit messages: low temperature, small token budget, stop at newline.
func (c *Client) DefaultOptions() completion.Options {
	return completion.Options{
		Temperature:   0.3,
		MaxTokens:     100,
		StopSequences: []string{"\n"},
	}
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete performs one chat-completion exchange. A non-2xx status yields a
// *completion.APIError; a 2xx body with no choices yields ErrNoChoices;
// otherwise the trimmed content of the first choice is returned. No retry
// happens here; the orchestrator owns that policy.
func (c *Client) Complete(ctx context.Context, req completion.Request) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("together: marshal request: %w", err)
	}

	url := c.baseURL + "/v1/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("together: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("together: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("together: %w", &completion.APIError{Status: resp.StatusCode})
	}

	var body chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("together: parse response: %w", err)
	}
	if len(body.Choices) == 0 {
		return "", fmt.Errorf("together: %w", completion.ErrNoChoices)
	}
	return strings.TrimSpace(body.Choices[0].Message.Content), nil
}
