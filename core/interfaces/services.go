// ABOUTME: Service interfaces for the core business logic
// ABOUTME: Defines contracts for services used throughout the application

package interfaces

import (
	"context"

	"newsletter-api/core/domain"
)

// SearchClient queries the web search provider.
// An empty freshness means no age restriction.
type SearchClient interface {
	SearchWeb(ctx context.Context, query string, count int, freshness domain.Freshness) ([]domain.SearchResult, error)
	SearchNews(ctx context.Context, query string, count int, freshness domain.Freshness) ([]domain.SearchResult, error)
}

// TextGenerator produces text from a single user prompt
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)

	// Name identifies the provider in logs and metrics
	Name() string
}

// TranslationBackend translates one text into the target language
type TranslationBackend interface {
	Translate(ctx context.Context, text string, target domain.Language) (string, error)
	Name() string
}

// PageExcerpter extracts readable text from an article page
type PageExcerpter interface {
	Excerpt(ctx context.Context, url string) (*domain.PageExcerpt, error)
}

// ArticleEnricher turns a search result into a display ready article.
// It never fails; upstream errors degrade to the best available fields.
type ArticleEnricher interface {
	Enrich(ctx context.Context, result domain.SearchResult, topic string) domain.EnrichedArticle
}
