package translate

import (
	"context"
	"fmt"
	"strings"

	"newsletter-api/core/domain"
	"newsletter-api/core/interfaces"
)

const translationPrompt = `Traduis UNIQUEMENT ce texte en %s. Ne fais aucun commentaire, retourne uniquement la traduction :

%s`

const translationMaxTokens = 1000

var languageNames = map[domain.Language]string{
	domain.LanguageFrench:  "français",
	domain.LanguageEnglish: "anglais",
	domain.LanguageSpanish: "espagnol",
}

// GeneratorBackend translates by prompting a text generator
type GeneratorBackend struct {
	generator interfaces.TextGenerator
}

// NewGeneratorBackend wraps a text generator as a translation backend
func NewGeneratorBackend(generator interfaces.TextGenerator) *GeneratorBackend {
	return &GeneratorBackend{generator: generator}
}

// Name implements interfaces.TranslationBackend
func (g *GeneratorBackend) Name() string {
	return "ai"
}

// Translate implements interfaces.TranslationBackend
func (g *GeneratorBackend) Translate(ctx context.Context, text string, target domain.Language) (string, error) {
	name, ok := languageNames[target]
	if !ok {
		return "", fmt.Errorf("unsupported target language %q", target)
	}

	out, err := g.generator.Generate(ctx, fmt.Sprintf(translationPrompt, name, text), translationMaxTokens)
	if err != nil {
		return "", err
	}

	out = strings.TrimSpace(out)
	if out == "" {
		return "", fmt.Errorf("empty translation from %s", g.generator.Name())
	}
	return out, nil
}
