package aggregate

import (
	"strings"

	"newsletter-api/core/domain"
	"newsletter-api/pkg/utils/urls"
)

// Dedup keeps the first result seen for each canonical URL, preserving order
func Dedup(results []domain.SearchResult) []domain.SearchResult {
	seen := make(map[string]bool, len(results))
	out := make([]domain.SearchResult, 0, len(results))
	for _, r := range results {
		key := urls.CanonicalKey(r.URL)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}

// ExcludeSites drops results whose domain contains, or is contained by, an
// excluded entry. Results with an unparsable URL are kept.
func ExcludeSites(results []domain.SearchResult, excluded []string) []domain.SearchResult {
	var blocked []string
	for _, entry := range excluded {
		if d := urls.NormalizeDomain(entry); d != "" {
			blocked = append(blocked, d)
		}
	}
	if len(blocked) == 0 {
		return results
	}

	out := make([]domain.SearchResult, 0, len(results))
	for _, r := range results {
		if !isBlocked(r.URL, blocked) {
			out = append(out, r)
		}
	}
	return out
}

func isBlocked(rawURL string, blocked []string) bool {
	d, ok := urls.Domain(rawURL)
	if !ok {
		return false
	}
	for _, b := range blocked {
		if strings.Contains(d, b) || strings.Contains(b, d) {
			return true
		}
	}
	return false
}

// Truncate returns at most limit results
func Truncate(results []domain.SearchResult, limit int) []domain.SearchResult {
	if limit >= 0 && len(results) > limit {
		return results[:limit]
	}
	return results
}
