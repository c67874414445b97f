package planner

import (
	"regexp"
	"strings"

	"newsletter-api/core/domain"
)

var (
	yearWord  = regexp.MustCompile(`\bans?\b|\byears?\b`)
	monthYear = regexp.MustCompile(`(?i)(janvier|février|fevrier|mars|avril|mai|juin|juillet|août|aout|septembre|octobre|novembre|décembre|decembre|january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{4}`)
)

// PeriodToFreshness maps a free-text period to a search freshness bucket.
//
//	nil              -> pw
//	"24h", "jour"    -> pd
//	"semaine"        -> pw
//	"mois"           -> pm
//	"année", "an"    -> py
//	"<month> <year>" -> py
//	anything else    -> pm (including "")
func PeriodToFreshness(period *string) domain.Freshness {
	if period == nil {
		return domain.FreshnessWeek
	}

	lower := strings.ToLower(strings.TrimSpace(*period))
	switch {
	case lower == "":
		return domain.FreshnessMonth
	case strings.Contains(lower, "24h"), strings.Contains(lower, "jour"), strings.Contains(lower, "day"):
		return domain.FreshnessDay
	case strings.Contains(lower, "semaine"), strings.Contains(lower, "week"):
		return domain.FreshnessWeek
	case strings.Contains(lower, "mois"), strings.Contains(lower, "month"):
		return domain.FreshnessMonth
	case strings.Contains(lower, "année"), yearWord.MatchString(lower):
		return domain.FreshnessYear
	case monthYear.MatchString(lower):
		return domain.FreshnessYear
	}

	return domain.FreshnessMonth
}
