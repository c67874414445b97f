package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"newsletter-api/core/interfaces"
)

const (
	anthropicBaseURL      = "https://api.anthropic.com"
	anthropicVersion      = "2023-06-01"
	defaultAnthropicModel = "claude-sonnet-4-20250514"
)

type anthropicProvider struct {
	deps    interfaces.Dependencies
	apiKey  string
	model   string
	baseURL string
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func newAnthropic(deps interfaces.Dependencies, cfg Config) *anthropicProvider {
	p := &anthropicProvider{
		deps:    deps,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: cfg.BaseURL,
	}
	if p.model == "" {
		p.model = defaultAnthropicModel
	}
	if p.baseURL == "" {
		p.baseURL = anthropicBaseURL
	}
	return p
}

func (p *anthropicProvider) Name() string {
	return ProviderAnthropic
}

func (p *anthropicProvider) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	headers := http.Header{}
	headers.Set("x-api-key", p.apiKey)
	headers.Set("anthropic-version", anthropicVersion)

	var resp anthropicResponse
	err := postJSON(ctx, p.deps, ProviderAnthropic, strings.TrimSuffix(p.baseURL, "/")+"/v1/messages", headers, anthropicRequest{
		Model:     p.model,
		MaxTokens: maxTokens,
		Messages:  []anthropicMessage{{Role: "user", Content: prompt}},
	}, &resp)
	if err != nil {
		return "", err
	}

	for _, block := range resp.Content {
		if block.Type == "" || block.Type == "text" {
			return strings.TrimSpace(block.Text), nil
		}
	}
	return "", fmt.Errorf("empty anthropic response")
}
