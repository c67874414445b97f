package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"newsletter-api/core/interfaces"
)

const (
	openAIBaseURL      = "https://api.openai.com"
	defaultOpenAIModel = "gpt-4o-mini"
)

type openAIProvider struct {
	deps    interfaces.Dependencies
	apiKey  string
	model   string
	baseURL string
}

type openAIRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens,omitempty"`
	Messages  []openAIMessage `json:"messages"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func newOpenAI(deps interfaces.Dependencies, cfg Config) *openAIProvider {
	p := &openAIProvider{
		deps:    deps,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: cfg.BaseURL,
	}
	if p.model == "" {
		p.model = defaultOpenAIModel
	}
	if p.baseURL == "" {
		p.baseURL = openAIBaseURL
	}
	return p
}

func (p *openAIProvider) Name() string {
	return ProviderOpenAI
}

func (p *openAIProvider) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	headers := http.Header{}
	headers.Set("Authorization", "Bearer "+p.apiKey)

	var resp openAIResponse
	err := postJSON(ctx, p.deps, ProviderOpenAI, strings.TrimSuffix(p.baseURL, "/")+"/v1/chat/completions", headers, openAIRequest{
		Model:     p.model,
		MaxTokens: maxTokens,
		Messages:  []openAIMessage{{Role: "user", Content: prompt}},
	}, &resp)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty openai response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
