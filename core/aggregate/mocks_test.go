package aggregate

import (
	"context"

	"newsletter-api/core/domain"
)

type recordedCall struct {
	news      bool
	query     string
	count     int
	freshness domain.Freshness
}

// mockSearchClient answers from func fields and records every call
type mockSearchClient struct {
	webFunc  func(query string) ([]domain.SearchResult, error)
	newsFunc func(query string) ([]domain.SearchResult, error)
	calls    []recordedCall
}

func (m *mockSearchClient) SearchWeb(ctx context.Context, query string, count int, freshness domain.Freshness) ([]domain.SearchResult, error) {
	m.calls = append(m.calls, recordedCall{query: query, count: count, freshness: freshness})
	if m.webFunc != nil {
		return m.webFunc(query)
	}
	return nil, nil
}

func (m *mockSearchClient) SearchNews(ctx context.Context, query string, count int, freshness domain.Freshness) ([]domain.SearchResult, error) {
	m.calls = append(m.calls, recordedCall{news: true, query: query, count: count, freshness: freshness})
	if m.newsFunc != nil {
		return m.newsFunc(query)
	}
	return nil, nil
}

func result(url, title string) domain.SearchResult {
	return domain.SearchResult{URL: url, Title: title}
}
