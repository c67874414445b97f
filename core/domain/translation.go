// ABOUTME: Translation domain models for the text translation endpoint
// ABOUTME: Defines supported languages and per-text translation results

package domain

import "strings"

// Language is a two letter language code
type Language string

const (
	LanguageFrench  Language = "fr"
	LanguageEnglish Language = "en"
	LanguageSpanish Language = "es"
	LanguageUnknown Language = "unknown"
)

// SupportedTargets lists the languages texts can be translated into
var SupportedTargets = []Language{LanguageFrench, LanguageEnglish, LanguageSpanish}

// ParseTargetLanguage normalizes a target language code
func ParseTargetLanguage(code string) (Language, bool) {
	lang := Language(strings.ToLower(strings.TrimSpace(code)))
	for _, target := range SupportedTargets {
		if lang == target {
			return lang, true
		}
	}
	return "", false
}

// TranslationResult is the outcome for one input text
type TranslationResult struct {
	Original      string
	Translated    string
	DetectedLang  Language
	WasTranslated bool
}
