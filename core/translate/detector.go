package translate

import (
	"strings"
	"unicode/utf8"

	"newsletter-api/core/domain"
)

// LanguageDetector guesses the language of a text
type LanguageDetector interface {
	Detect(text string) domain.Language
}

// minDetectableRunes is the shortest text the keyword detector will judge
const minDetectableRunes = 10

// KeywordDetector scores texts by counting common function words per language.
// French or Spanish must strictly beat both other scores; everything else is English.
type KeywordDetector struct {
	french  []string
	english []string
	spanish []string
}

// NewKeywordDetector returns the default detector
func NewKeywordDetector() *KeywordDetector {
	return &KeywordDetector{
		french:  []string{"le ", "la ", "les ", "de ", "un ", "une ", "des ", "et ", "est ", "sont ", "dans ", "pour ", "avec ", "qui ", "que ", "cette ", "français"},
		english: []string{"the ", "and ", "is ", "are ", "in ", "to ", "of ", "for ", "with ", "that ", "this ", "from ", "will ", "has ", "have ", "been"},
		spanish: []string{"el ", "la ", "los ", "las ", "de ", "en ", "un ", "una ", "y ", "es ", "son ", "para ", "con ", "que ", "del ", "español"},
	}
}

// Detect implements LanguageDetector
func (d *KeywordDetector) Detect(text string) domain.Language {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minDetectableRunes {
		return domain.LanguageUnknown
	}

	lower := strings.ToLower(text)
	fr := score(lower, d.french)
	en := score(lower, d.english)
	es := score(lower, d.spanish)

	switch {
	case fr > en && fr > es:
		return domain.LanguageFrench
	case es > en && es > fr:
		return domain.LanguageSpanish
	default:
		return domain.LanguageEnglish
	}
}

func score(text string, keywords []string) int {
	n := 0
	for _, k := range keywords {
		if strings.Contains(text, k) {
			n++
		}
	}
	return n
}
