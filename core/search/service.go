// ABOUTME: Search service queries the Brave web search API for web and news results
// ABOUTME: Calls are paced, bounded by a timeout and optionally served from a response cache

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"newsletter-api/core/domain"
	"newsletter-api/core/errors"
	"newsletter-api/core/interfaces"
)

const (
	// DefaultBaseURL is the Brave search API origin
	DefaultBaseURL = "https://api.search.brave.com"

	searchPath   = "/res/v1/web/search"
	apiName      = "brave"
	newsFilter   = "news,web"
	maxErrorBody = 512
)

// Config holds search provider settings
type Config struct {
	APIKey   string
	BaseURL  string
	Language string
	Timeout  time.Duration

	// CacheTTL is how long raw responses are kept; zero disables caching
	CacheTTL time.Duration
}

// SearchService talks to the Brave web search endpoint
type SearchService struct {
	deps  interfaces.Dependencies
	cfg   Config
	pacer interfaces.Pacer
}

// NewSearchService creates a new search service instance
func NewSearchService(deps interfaces.Dependencies, cfg Config, pacer interfaces.Pacer) *SearchService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Language == "" {
		cfg.Language = "fr"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if pacer == nil {
		pacer = interfaces.NoopPacer
	}

	return &SearchService{
		deps:  deps,
		cfg:   cfg,
		pacer: pacer,
	}
}

// Configured reports whether an API key is present
func (s *SearchService) Configured() bool {
	return s.cfg.APIKey != ""
}

// SearchWeb returns web.results for query
func (s *SearchService) SearchWeb(ctx context.Context, query string, count int, freshness domain.Freshness) ([]domain.SearchResult, error) {
	resp, err := s.search(ctx, query, count, freshness, "")
	if err != nil {
		return nil, err
	}
	return toDomainResults(resp.webResults()), nil
}

// SearchNews returns news.results (or web.results when there are none),
// most recent first. Undated results keep their relative order at the end.
func (s *SearchService) SearchNews(ctx context.Context, query string, count int, freshness domain.Freshness) ([]domain.SearchResult, error) {
	resp, err := s.search(ctx, query, count, freshness, newsFilter)
	if err != nil {
		return nil, err
	}

	results := toDomainResults(resp.newsResults())
	sortByRecency(results)
	return results, nil
}

// sortByRecency orders by descending PageAge; zero dates sort last
func sortByRecency(results []domain.SearchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].PageAge.After(results[j].PageAge)
	})
}

func (s *SearchService) search(ctx context.Context, query string, count int, freshness domain.Freshness, filter string) (*braveResponse, error) {
	if !s.Configured() {
		return nil, &errors.ConfigurationError{Setting: "BRAVE_API_KEY", Message: "Clé API Brave non configurée."}
	}
	if s.deps.HTTPClient == nil {
		return nil, fmt.Errorf("HTTP client not configured")
	}

	logger := s.deps.LoggerOrNoop()
	metrics := s.deps.MetricsOrNoop()

	cacheKey := fmt.Sprintf("brave:%s:%d:%s:%s", query, count, freshness, filter)
	if s.deps.Cache != nil && s.cfg.CacheTTL > 0 {
		if data, err := s.deps.Cache.Get(ctx, cacheKey); err == nil && data != nil {
			var cached braveResponse
			if err := json.Unmarshal(data, &cached); err == nil {
				metrics.UpstreamCall(apiName, interfaces.OutcomeCacheHit)
				logger.Debug("Search served from cache", map[string]interface{}{
					"query": query,
				})
				return &cached, nil
			}
		}
	}

	if err := s.pacer.Wait(ctx); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	headers := http.Header{}
	headers.Set("Accept", "application/json")
	headers.Set("Accept-Encoding", "gzip")
	headers.Set("X-Subscription-Token", s.cfg.APIKey)

	resp, err := s.deps.HTTPClient.Get(ctx, s.buildURL(query, count, freshness, filter), headers)
	if err != nil {
		metrics.UpstreamCall(apiName, interfaces.OutcomeError)
		return nil, &errors.ExternalAPIError{API: apiName, Message: "request failed", Err: err}
	}
	defer resp.Body().Close()

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		metrics.UpstreamCall(apiName, interfaces.OutcomeError)
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body(), maxErrorBody))
		return nil, &errors.ExternalAPIError{
			StatusCode: resp.StatusCode(),
			Message:    strings.TrimSpace(string(snippet)),
			API:        apiName,
		}
	}

	body, err := io.ReadAll(resp.Body())
	if err != nil {
		metrics.UpstreamCall(apiName, interfaces.OutcomeError)
		return nil, &errors.ExternalAPIError{StatusCode: resp.StatusCode(), API: apiName, Message: "failed to read response", Err: err}
	}

	var parsed braveResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		metrics.UpstreamCall(apiName, interfaces.OutcomeError)
		return nil, &errors.ExternalAPIError{StatusCode: resp.StatusCode(), API: apiName, Message: "failed to parse search results", Err: err}
	}

	metrics.UpstreamCall(apiName, interfaces.OutcomeSuccess)

	if s.deps.Cache != nil && s.cfg.CacheTTL > 0 {
		if err := s.deps.Cache.Set(ctx, cacheKey, body, s.cfg.CacheTTL); err != nil {
			logger.Warn("Failed to cache search response", map[string]interface{}{
				"query": query,
				"error": err.Error(),
			})
		}
	}

	return &parsed, nil
}

func (s *SearchService) buildURL(query string, count int, freshness domain.Freshness, filter string) string {
	params := url.Values{}
	params.Set("q", query)
	params.Set("count", strconv.Itoa(count))
	params.Set("search_lang", s.cfg.Language)
	if freshness != "" {
		params.Set("freshness", string(freshness))
	}
	if filter != "" {
		params.Set("result_filter", filter)
	}

	return strings.TrimSuffix(s.cfg.BaseURL, "/") + searchPath + "?" + params.Encode()
}
