package translate

import (
	"context"
	"io"
	"net/http"
	"strings"

	"newsletter-api/core/domain"
	"newsletter-api/core/interfaces"
)

// mockBackend answers from translateFunc and records the texts it saw
type mockBackend struct {
	name          string
	translateFunc func(text string, target domain.Language) (string, error)
	texts         []string
}

func (m *mockBackend) Name() string {
	return m.name
}

func (m *mockBackend) Translate(ctx context.Context, text string, target domain.Language) (string, error) {
	m.texts = append(m.texts, text)
	if m.translateFunc != nil {
		return m.translateFunc(text, target)
	}
	return "[" + string(target) + "] " + text, nil
}

// mockSourceBackend also accepts a pinned source language
type mockSourceBackend struct {
	mockBackend
	sources []domain.Language
}

func (m *mockSourceBackend) TranslateFrom(ctx context.Context, text string, source, target domain.Language) (string, error) {
	m.sources = append(m.sources, source)
	return m.Translate(ctx, text, target)
}

type mockGenerator struct {
	generateFunc func(prompt string, maxTokens int) (string, error)
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	return m.generateFunc(prompt, maxTokens)
}

func (m *mockGenerator) Name() string {
	return "mock"
}

type capturedPost struct {
	url     string
	body    string
	headers http.Header
}

type mockHTTPClient struct {
	status int
	body   string
	err    error
	posts  []capturedPost
}

func (m *mockHTTPClient) Get(ctx context.Context, url string, headers http.Header) (interfaces.Response, error) {
	return nil, nil
}

func (m *mockHTTPClient) Post(ctx context.Context, url string, body io.Reader, headers http.Header) (interfaces.Response, error) {
	b, _ := io.ReadAll(body)
	m.posts = append(m.posts, capturedPost{url: url, body: string(b), headers: headers})
	if m.err != nil {
		return nil, m.err
	}
	return &mockResponse{statusCode: m.status, body: m.body}, nil
}

type mockResponse struct {
	statusCode int
	body       string
}

func (m *mockResponse) StatusCode() int      { return m.statusCode }
func (m *mockResponse) Body() io.ReadCloser  { return io.NopCloser(strings.NewReader(m.body)) }
func (m *mockResponse) Header(string) string { return "" }

type countingPacer struct {
	waits int
}

func (p *countingPacer) Wait(ctx context.Context) error {
	p.waits++
	return ctx.Err()
}
