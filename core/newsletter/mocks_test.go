package newsletter

import (
	"context"
	"time"

	"newsletter-api/core/domain"
)

// scriptedSearch answers web calls in order from webSets and every news call with news
type scriptedSearch struct {
	webSets   [][]domain.SearchResult
	news      []domain.SearchResult
	webErr    error
	newsErr   error
	webCalls  int
	newsCalls int
}

func (s *scriptedSearch) SearchWeb(ctx context.Context, query string, count int, freshness domain.Freshness) ([]domain.SearchResult, error) {
	s.webCalls++
	if s.webErr != nil {
		return nil, s.webErr
	}
	if s.webCalls <= len(s.webSets) {
		return s.webSets[s.webCalls-1], nil
	}
	return nil, nil
}

func (s *scriptedSearch) SearchNews(ctx context.Context, query string, count int, freshness domain.Freshness) ([]domain.SearchResult, error) {
	s.newsCalls++
	if s.newsErr != nil {
		return nil, s.newsErr
	}
	return s.news, nil
}

// identityEnricher copies the search result fields without any lookups
type identityEnricher struct {
	calls int
}

func (e *identityEnricher) Enrich(ctx context.Context, result domain.SearchResult, topic string) domain.EnrichedArticle {
	e.calls++
	return domain.EnrichedArticle{
		Title:       result.Title,
		URL:         result.URL,
		Description: result.Description,
		Thumbnail:   result.Thumbnail,
		Age:         result.PublishedAge,
		Source:      result.SourceDomain,
	}
}

type mockMetrics struct {
	generations []string
}

func (m *mockMetrics) UpstreamCall(api, outcome string)                 {}
func (m *mockMetrics) Summary(outcome string)                           {}
func (m *mockMetrics) Translation(backend, outcome string)              {}
func (m *mockMetrics) Generation(outcome string, elapsed time.Duration) { m.generations = append(m.generations, outcome) }

func searchResult(url, title string) domain.SearchResult {
	return domain.SearchResult{URL: url, Title: title, Description: "Une description suffisamment longue pour cet article de test.", SourceDomain: "exemple.fr"}
}
