package enrich

import (
	"strings"
	"unicode/utf8"
)

// QualityGate reports whether a description is weak enough to be rewritten
type QualityGate func(description string) bool

const (
	minDescriptionRunes = 50
	minDescriptionWords = 10
)

// NeedsSummary is the default gate. A description needs a summary when it is
// empty, shorter than 50 characters, truncated with an ellipsis, or has fewer
// than 10 words.
func NeedsSummary(description string) bool {
	description = strings.TrimSpace(description)
	switch {
	case description == "":
		return true
	case utf8.RuneCountInString(description) < minDescriptionRunes:
		return true
	case strings.Contains(description, "..."), strings.Contains(description, "…"):
		return true
	case len(strings.Fields(description)) < minDescriptionWords:
		return true
	}
	return false
}
