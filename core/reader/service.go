// ABOUTME: Service layer implementation for page excerpt extraction
// ABOUTME: Fetches article pages through the shared HTTP client and parses them with go-readability

package reader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"newsletter-api/core/domain"
	"newsletter-api/core/interfaces"

	readability "github.com/go-shiori/go-readability"
)

const (
	maxPageBytes     = 2 << 20
	maxExcerptRunes  = 300
	defaultCacheTTL  = time.Hour
	defaultPageLimit = 10 * time.Second
)

// Service implements interfaces.PageExcerpter
type Service struct {
	deps     interfaces.Dependencies
	timeout  time.Duration
	cacheTTL time.Duration
}

// NewService creates an excerpt service; zero durations take defaults
func NewService(deps interfaces.Dependencies, timeout, cacheTTL time.Duration) *Service {
	if timeout <= 0 {
		timeout = defaultPageLimit
	}
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}
	return &Service{
		deps:     deps,
		timeout:  timeout,
		cacheTTL: cacheTTL,
	}
}

// Excerpt returns the readable summary of the page at pageURL
func (s *Service) Excerpt(ctx context.Context, pageURL string) (*domain.PageExcerpt, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Host == "" {
		return nil, fmt.Errorf("invalid page URL %q", pageURL)
	}

	cacheKey := fmt.Sprintf("excerpt:%s", pageURL)
	if s.deps.Cache != nil {
		if data, err := s.deps.Cache.Get(ctx, cacheKey); err == nil && data != nil {
			var cached domain.PageExcerpt
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	if s.deps.HTTPClient == nil {
		return nil, fmt.Errorf("HTTP client not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.deps.HTTPClient.Get(ctx, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body().Close()

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("page returned status %d", resp.StatusCode())
	}

	article, err := readability.FromReader(io.LimitReader(resp.Body(), maxPageBytes), parsed)
	if err != nil {
		s.deps.LoggerOrNoop().Debug("Failed to parse page", map[string]interface{}{
			"url":   pageURL,
			"error": err.Error(),
		})
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	excerpt := &domain.PageExcerpt{
		URL:      pageURL,
		Title:    strings.TrimSpace(article.Title),
		Excerpt:  strings.TrimSpace(article.Excerpt),
		Image:    article.Image,
		SiteName: article.SiteName,
	}
	if excerpt.Excerpt == "" {
		excerpt.Excerpt = truncateRunes(strings.Join(strings.Fields(article.TextContent), " "), maxExcerptRunes)
	}
	if excerpt.Excerpt == "" {
		return nil, fmt.Errorf("no readable text at %s", pageURL)
	}

	if s.deps.Cache != nil {
		if data, err := json.Marshal(excerpt); err == nil {
			_ = s.deps.Cache.Set(ctx, cacheKey, data, s.cacheTTL)
		}
	}

	return excerpt, nil
}

// truncateRunes cuts text at a word boundary before limit runes
func truncateRunes(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	cut := string(runes[:limit])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut
}
