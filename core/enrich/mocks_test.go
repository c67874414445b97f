package enrich

import (
	"context"
	"time"

	"newsletter-api/core/domain"
)

// spyGenerator records prompts and answers from generateFunc
type spyGenerator struct {
	generateFunc func(ctx context.Context, prompt string, maxTokens int) (string, error)
	prompts      []string
	maxTokens    []int
}

func (s *spyGenerator) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	s.prompts = append(s.prompts, prompt)
	s.maxTokens = append(s.maxTokens, maxTokens)
	if s.generateFunc != nil {
		return s.generateFunc(ctx, prompt, maxTokens)
	}
	return "", nil
}

func (s *spyGenerator) Name() string {
	return "spy"
}

type mockExcerpter struct {
	excerptFunc func(ctx context.Context, url string) (*domain.PageExcerpt, error)
	calls       int
}

func (m *mockExcerpter) Excerpt(ctx context.Context, url string) (*domain.PageExcerpt, error) {
	m.calls++
	if m.excerptFunc != nil {
		return m.excerptFunc(ctx, url)
	}
	return &domain.PageExcerpt{URL: url}, nil
}

type countingPacer struct {
	waits int
	err   error
}

func (p *countingPacer) Wait(ctx context.Context) error {
	p.waits++
	return p.err
}

// mockMetrics records summary outcomes
type mockMetrics struct {
	summaries []string
}

func (m *mockMetrics) UpstreamCall(api, outcome string)                 {}
func (m *mockMetrics) Summary(outcome string)                           { m.summaries = append(m.summaries, outcome) }
func (m *mockMetrics) Translation(backend, outcome string)              {}
func (m *mockMetrics) Generation(outcome string, elapsed time.Duration) {}
