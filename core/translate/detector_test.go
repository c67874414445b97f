package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"newsletter-api/core/domain"
)

func TestKeywordDetector_Detect(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected domain.Language
	}{
		{"too short", "Bonjour", domain.LanguageUnknown},
		{"blank padded", "   salut    ", domain.LanguageUnknown},
		{"french", "Les entreprises françaises investissent dans la robotique pour cette année", domain.LanguageFrench},
		{"english", "The company has announced that it will release the new model this week", domain.LanguageEnglish},
		{"spanish", "El gobierno anuncia una nueva ley para los trabajadores del sector", domain.LanguageSpanish},
		{"no keywords defaults to english", "GPU cluster benchmark numbers", domain.LanguageEnglish},
	}

	detector := NewKeywordDetector()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, detector.Detect(tt.text))
		})
	}
}
