// ABOUTME: Aggregator fanning planned queries out to the search provider one at a time
// ABOUTME: Merges web, site-targeted and news results, then dedups, filters and truncates

package aggregate

import (
	"context"
	"fmt"

	"newsletter-api/core/domain"
	"newsletter-api/core/errors"
	"newsletter-api/core/interfaces"
	"newsletter-api/pkg/utils/urls"
)

// Config bounds the fan-out and the merged result set
type Config struct {
	MaxQueries       int
	QueryResultCount int
	MaxSiteDomains   int
	SiteResultCount  int
	NewsResultCount  int
	Limit            int
}

// DefaultConfig returns the production bounds
func DefaultConfig() Config {
	return Config{
		MaxQueries:       4,
		QueryResultCount: 8,
		MaxSiteDomains:   5,
		SiteResultCount:  5,
		NewsResultCount:  10,
		Limit:            25,
	}
}

// Request describes one aggregation
type Request struct {
	Plan             domain.QueryPlan
	Freshness        domain.Freshness
	PreferredSources []string
	ExcludedSites    []string
}

// Result is the merged candidate pool
type Result struct {
	// Results are deduplicated, filtered and truncated, in first-seen order
	Results []domain.SearchResult

	// News holds the canonical keys of every URL returned by the news query
	News map[string]bool

	// Calls and Failures count search calls issued and failed
	Calls    int
	Failures int
}

// IsNews reports whether url was returned by the news query
func (r *Result) IsNews(url string) bool {
	return r.News[urls.CanonicalKey(url)]
}

// Aggregator runs the search fan-out for a query plan
type Aggregator struct {
	client interfaces.SearchClient
	cfg    Config
	logger interfaces.Logger
}

// NewAggregator creates an aggregator; zero config fields take their defaults
func NewAggregator(client interfaces.SearchClient, cfg Config, logger interfaces.Logger) *Aggregator {
	def := DefaultConfig()
	if cfg.MaxQueries <= 0 {
		cfg.MaxQueries = def.MaxQueries
	}
	if cfg.QueryResultCount <= 0 {
		cfg.QueryResultCount = def.QueryResultCount
	}
	if cfg.MaxSiteDomains <= 0 {
		cfg.MaxSiteDomains = def.MaxSiteDomains
	}
	if cfg.SiteResultCount <= 0 {
		cfg.SiteResultCount = def.SiteResultCount
	}
	if cfg.NewsResultCount <= 0 {
		cfg.NewsResultCount = def.NewsResultCount
	}
	if cfg.Limit <= 0 {
		cfg.Limit = def.Limit
	}
	if logger == nil {
		logger = interfaces.NoopLogger
	}

	return &Aggregator{client: client, cfg: cfg, logger: logger}
}

type searchCall struct {
	kind  string
	query string
	count int
	news  bool
}

// Aggregate issues the planned web queries, then one site-targeted query per
// preferred domain, then the news query, strictly in that order and one call
// at a time.
//
// A failed call is logged and skipped. Aggregate only fails when the context
// is done, when the provider is not configured, or when every call came back
// empty and at least one of them failed.
func (a *Aggregator) Aggregate(ctx context.Context, req Request) (*Result, error) {
	calls := a.calls(req)
	result := &Result{News: map[string]bool{}}

	var pool []domain.SearchResult
	var firstErr error

	for _, call := range calls {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var (
			found []domain.SearchResult
			err   error
		)
		if call.news {
			found, err = a.client.SearchNews(ctx, call.query, call.count, req.Freshness)
		} else {
			found, err = a.client.SearchWeb(ctx, call.query, call.count, req.Freshness)
		}
		result.Calls++

		if err != nil {
			if errors.IsConfiguration(err) {
				return nil, err
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}

			result.Failures++
			if firstErr == nil {
				firstErr = err
			}
			a.logger.Warn("Search call failed", map[string]interface{}{
				"kind":  call.kind,
				"query": call.query,
				"error": err.Error(),
			})
			continue
		}

		a.logger.Debug("Search call completed", map[string]interface{}{
			"kind":    call.kind,
			"query":   call.query,
			"results": len(found),
		})

		if call.news {
			for _, r := range found {
				result.News[urls.CanonicalKey(r.URL)] = true
			}
		}
		pool = append(pool, found...)
	}

	if len(pool) == 0 && firstErr != nil {
		return nil, &errors.ExternalAPIError{
			API:     "brave",
			Message: "search provider unavailable",
			Err:     fmt.Errorf("%d of %d search calls failed: %w", result.Failures, result.Calls, firstErr),
		}
	}

	merged := Dedup(pool)
	merged = ExcludeSites(merged, req.ExcludedSites)
	result.Results = Truncate(merged, a.cfg.Limit)

	a.logger.Info("Search results aggregated", map[string]interface{}{
		"calls":    result.Calls,
		"failures": result.Failures,
		"pooled":   len(pool),
		"unique":   len(merged),
		"kept":     len(result.Results),
	})

	return result, nil
}

func (a *Aggregator) calls(req Request) []searchCall {
	var calls []searchCall

	queries := req.Plan.Queries
	if len(queries) > a.cfg.MaxQueries {
		queries = queries[:a.cfg.MaxQueries]
	}
	for _, q := range queries {
		calls = append(calls, searchCall{kind: "web", query: q, count: a.cfg.QueryResultCount})
	}

	for _, domainName := range SiteDomains(req.PreferredSources, a.cfg.MaxSiteDomains) {
		calls = append(calls, searchCall{
			kind:  "site",
			query: fmt.Sprintf("site:%s %s", domainName, req.Plan.MainTopic),
			count: a.cfg.SiteResultCount,
		})
	}

	calls = append(calls, searchCall{
		kind:  "news",
		query: req.Plan.MainTopic + " actualités",
		count: a.cfg.NewsResultCount,
		news:  true,
	})

	return calls
}

// SiteDomains normalizes preferred source entries into at most limit distinct domains
func SiteDomains(entries []string, limit int) []string {
	seen := make(map[string]bool, len(entries))
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		if len(out) >= limit {
			break
		}
		d := urls.NormalizeDomain(entry)
		if d == "" || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}
