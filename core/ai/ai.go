// ABOUTME: Text generation providers used for article summaries and translation fallback
// ABOUTME: Anthropic Messages and OpenAI Chat Completions behind interfaces.TextGenerator

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	coreerrors "newsletter-api/core/errors"
	"newsletter-api/core/interfaces"
)

// Provider names
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

// ErrNotConfigured is returned by New when no API key is set
var ErrNotConfigured = errors.New("text generation not configured")

// Config selects and configures a provider
type Config struct {
	Provider string
	APIKey   string
	Model    string

	// BaseURL overrides the provider origin, mainly for tests
	BaseURL string
}

// New creates a TextGenerator for cfg.Provider (anthropic when empty)
func New(deps interfaces.Dependencies, cfg Config) (interfaces.TextGenerator, error) {
	if cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}
	if deps.HTTPClient == nil {
		return nil, errors.New("HTTP client not configured")
	}

	switch strings.ToLower(cfg.Provider) {
	case "", ProviderAnthropic, "claude":
		return newAnthropic(deps, cfg), nil
	case ProviderOpenAI:
		return newOpenAI(deps, cfg), nil
	default:
		return nil, fmt.Errorf("unknown AI provider: %q (valid: anthropic, openai)", cfg.Provider)
	}
}

const maxErrorBody = 1024

// postJSON sends payload and decodes a 200 response into out
func postJSON(ctx context.Context, deps interfaces.Dependencies, api, url string, headers http.Header, payload, out interface{}) error {
	metrics := deps.MetricsOrNoop()

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	headers.Set("Content-Type", "application/json")

	resp, err := deps.HTTPClient.Post(ctx, url, bytes.NewReader(body), headers)
	if err != nil {
		metrics.UpstreamCall(api, interfaces.OutcomeError)
		return &coreerrors.ExternalAPIError{API: api, Message: "request failed", Err: err}
	}
	defer resp.Body().Close()

	if resp.StatusCode() != http.StatusOK {
		metrics.UpstreamCall(api, interfaces.OutcomeError)
		b, _ := io.ReadAll(io.LimitReader(resp.Body(), maxErrorBody))
		return &coreerrors.ExternalAPIError{StatusCode: resp.StatusCode(), API: api, Message: strings.TrimSpace(string(b))}
	}

	if err := json.NewDecoder(resp.Body()).Decode(out); err != nil {
		metrics.UpstreamCall(api, interfaces.OutcomeError)
		return &coreerrors.ExternalAPIError{StatusCode: resp.StatusCode(), API: api, Message: "invalid response body", Err: err}
	}

	metrics.UpstreamCall(api, interfaces.OutcomeSuccess)
	return nil
}
