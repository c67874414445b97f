package handlers

import (
	"context"
	"sync"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"

	"newsletter-api/core/domain"
)

// newTestAPI returns a test API emitting the same error bodies as the server
func newTestAPI(t *testing.T) humatest.TestAPI {
	t.Helper()
	UseFlatErrors()
	_, api := humatest.New(t)
	return api
}

type mockGenerator struct {
	GenerateFunc func(ctx context.Context, req domain.NewsletterRequest) (*domain.Newsletter, error)

	mu    sync.Mutex
	calls []domain.NewsletterRequest
}

func (m *mockGenerator) Generate(ctx context.Context, req domain.NewsletterRequest) (*domain.Newsletter, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	m.mu.Unlock()
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}
	return &domain.Newsletter{Theme: req.Theme, Format: req.Format}, nil
}

type mockTranslator struct {
	TranslateFunc func(ctx context.Context, texts []string, target domain.Language) ([]domain.TranslationResult, error)
	calls         int
}

func (m *mockTranslator) Translate(ctx context.Context, texts []string, target domain.Language) ([]domain.TranslationResult, error) {
	m.calls++
	if m.TranslateFunc != nil {
		return m.TranslateFunc(ctx, texts, target)
	}
	return nil, nil
}

type mockTranslatorStatus struct {
	configured bool
	backend    string
}

func (m mockTranslatorStatus) Configured() bool { return m.configured }
func (m mockTranslatorStatus) Backend() string  { return m.backend }

type mockLogger struct {
	mu     sync.Mutex
	errors []string
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) {}
func (m *mockLogger) Info(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Error(msg string, fields map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, msg)
}
