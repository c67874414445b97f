package enrich

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsletter-api/core/config"
	"newsletter-api/core/domain"
	"newsletter-api/core/interfaces"
)

const goodDescription = "Le constructeur a présenté sa nouvelle gamme de robots industriels lors du salon de Lyon cette semaine."

func TestEnrich_GoodDescriptionSkipsSummarizer(t *testing.T) {
	spy := &spyGenerator{}
	pacer := &countingPacer{}
	e := NewEnricher(interfaces.Dependencies{}, spy, pacer)

	article := e.Enrich(context.Background(), domain.SearchResult{
		Title:       "Robots à Lyon",
		URL:         "https://www.lemonde.fr/robots",
		Description: goodDescription,
	}, "robotique")

	assert.Empty(t, spy.prompts, "summarizer must not be called")
	assert.Equal(t, 0, pacer.waits)
	assert.Equal(t, goodDescription, article.Description)
	assert.False(t, article.AISummary)
}

func TestEnrich_LiteralLessThanKeepsDescription(t *testing.T) {
	spy := &spyGenerator{}
	e := NewEnricher(interfaces.Dependencies{}, spy, nil)
	description := "Le nouveau <strong>routeur</strong> affiche une latence <5ms pour x<y connexions simultanées en entreprise."

	article := e.Enrich(context.Background(), domain.SearchResult{
		Title:       "Pourquoi a<b change tout en 2024",
		URL:         "https://example.org/reseau",
		Description: description,
	}, "réseaux")

	assert.Equal(t, "Pourquoi a<b change tout en 2024", article.Title)
	assert.Equal(t, "Le nouveau routeur affiche une latence <5ms pour x<y connexions simultanées en entreprise.", article.Description)
	assert.Empty(t, spy.prompts, "summarizer must not be called")
}

func TestEnrich_WeakDescriptionIsSummarized(t *testing.T) {
	spy := &spyGenerator{
		generateFunc: func(ctx context.Context, prompt string, maxTokens int) (string, error) {
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			return "  Résumé factuel de l'annonce.  ", nil
		},
	}
	pacer := &countingPacer{}
	metrics := &mockMetrics{}
	e := NewEnricher(interfaces.Dependencies{Metrics: metrics}, spy, pacer)

	article := e.Enrich(context.Background(), domain.SearchResult{
		Title:       "Robots",
		URL:         "https://example.org/robots",
		Description: "Court...",
	}, "tendances robotique")

	require.Len(t, spy.prompts, 1)
	assert.Contains(t, spy.prompts[0], `Voici un article sur "tendances robotique"`)
	assert.Contains(t, spy.prompts[0], "Titre: Robots")
	assert.Contains(t, spy.prompts[0], "URL: https://example.org/robots")
	assert.Contains(t, spy.prompts[0], "Description existante: Court...")
	assert.Equal(t, []int{200}, spy.maxTokens)
	assert.Equal(t, 1, pacer.waits)
	assert.Equal(t, "Résumé factuel de l'annonce.", article.Description)
	assert.True(t, article.AISummary)
	assert.Equal(t, []string{interfaces.OutcomeSuccess}, metrics.summaries)
}

func TestEnrich_SummarizerFailureFallsBack(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		err    error
	}{
		{"error", "", errors.New("timeout")},
		{"empty output", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spy := &spyGenerator{
				generateFunc: func(ctx context.Context, prompt string, maxTokens int) (string, error) {
					return tt.answer, tt.err
				},
			}
			e := NewEnricher(interfaces.Dependencies{}, spy, nil)

			article := e.Enrich(context.Background(), domain.SearchResult{
				URL:         "https://example.org/a",
				Description: "<b>Court</b>",
			}, "IA")

			assert.Equal(t, "Court", article.Description)
			assert.False(t, article.AISummary)
		})
	}
}

func TestEnrich_NoSummarizerUsesPlaceholder(t *testing.T) {
	e := NewEnricher(interfaces.Dependencies{}, nil, nil)

	article := e.Enrich(context.Background(), domain.SearchResult{URL: "https://example.org/a"}, "IA")

	assert.Equal(t, UntitledArticle, article.Title)
	assert.Equal(t, GenericDescription, article.Description)
	assert.Equal(t, UnknownDate, article.Age)
	assert.Equal(t, "example.org", article.Source)
	assert.False(t, e.SummariesEnabled())
}

func TestEnrich_SummariesDisabledByOption(t *testing.T) {
	spy := &spyGenerator{}
	e := NewEnricher(interfaces.Dependencies{}, spy, nil, config.WithoutSummaries())

	e.Enrich(context.Background(), domain.SearchResult{URL: "https://example.org/a"}, "IA")

	assert.Empty(t, spy.prompts)
	assert.False(t, e.SummariesEnabled())
}

func TestEnrich_SnippetsFallback(t *testing.T) {
	e := NewEnricher(interfaces.Dependencies{}, nil, nil)

	article := e.Enrich(context.Background(), domain.SearchResult{
		URL:           "https://example.org/a",
		ExtraSnippets: []string{"Premier <strong>extrait</strong>", "", "second extrait"},
	}, "IA")

	assert.Equal(t, "Premier extrait second extrait", article.Description)
}

func TestEnrich_PageExcerptFallback(t *testing.T) {
	excerpter := &mockExcerpter{
		excerptFunc: func(ctx context.Context, url string) (*domain.PageExcerpt, error) {
			return &domain.PageExcerpt{URL: url, Excerpt: "Texte extrait de la page.", Image: "https://example.org/lead.jpg"}, nil
		},
	}

	e := NewEnricher(interfaces.Dependencies{}, nil, nil, config.WithPageExcerpts(true))
	e.SetExcerpter(excerpter)
	article := e.Enrich(context.Background(), domain.SearchResult{URL: "https://example.org/a"}, "IA")

	assert.Equal(t, 1, excerpter.calls)
	assert.Equal(t, "Texte extrait de la page.", article.Description)
	assert.Equal(t, "https://example.org/lead.jpg", article.Thumbnail)

	disabled := NewEnricher(interfaces.Dependencies{}, nil, nil)
	disabled.SetExcerpter(excerpter)
	disabled.Enrich(context.Background(), domain.SearchResult{URL: "https://example.org/b"}, "IA")
	assert.Equal(t, 1, excerpter.calls, "excerpts are off by default")
}

func TestEnrich_PageExcerptErrorIsIgnored(t *testing.T) {
	excerpter := &mockExcerpter{
		excerptFunc: func(ctx context.Context, url string) (*domain.PageExcerpt, error) {
			return nil, errors.New("403")
		},
	}

	e := NewEnricher(interfaces.Dependencies{}, nil, nil, config.WithPageExcerpts(true))
	e.SetExcerpter(excerpter)
	article := e.Enrich(context.Background(), domain.SearchResult{URL: "https://example.org/a"}, "IA")

	assert.Equal(t, GenericDescription, article.Description)
}

func TestEnrich_CustomQualityGate(t *testing.T) {
	spy := &spyGenerator{
		generateFunc: func(ctx context.Context, prompt string, maxTokens int) (string, error) {
			return "Toujours résumé.", nil
		},
	}
	e := NewEnricher(interfaces.Dependencies{}, spy, nil)
	e.SetQualityGate(func(string) bool { return true })

	article := e.Enrich(context.Background(), domain.SearchResult{URL: "https://example.org/a", Description: goodDescription}, "IA")

	assert.Equal(t, "Toujours résumé.", article.Description)
}

func TestEnrich_PacerCancellationSkipsSummary(t *testing.T) {
	spy := &spyGenerator{}
	e := NewEnricher(interfaces.Dependencies{}, spy, &countingPacer{err: context.Canceled})

	article := e.Enrich(context.Background(), domain.SearchResult{URL: "https://example.org/a", Description: "Court"}, "IA")

	assert.Empty(t, spy.prompts)
	assert.Equal(t, "Court", article.Description)
}

func TestEnrich_AgeAndSource(t *testing.T) {
	e := NewEnricher(interfaces.Dependencies{}, nil, nil)

	withAge := e.Enrich(context.Background(), domain.SearchResult{URL: "https://www.lesechos.fr/x", PublishedAge: "il y a 2 jours"}, "IA")
	assert.Equal(t, "il y a 2 jours", withAge.Age)
	assert.Equal(t, "lesechos.fr", withAge.Source)

	withDate := e.Enrich(context.Background(), domain.SearchResult{
		URL:     "not a url",
		PageAge: time.Date(2025, 8, 14, 0, 0, 0, 0, time.UTC),
	}, "IA")
	assert.Equal(t, "14 août 2025", withDate.Age)
	assert.Empty(t, withDate.Source)
}
