// ABOUTME: Enricher normalizes search results into display ready newsletter articles
// ABOUTME: Weak descriptions are optionally rewritten by a summarizer with silent fallback

package enrich

import (
	"context"
	"strings"

	"newsletter-api/core/config"
	"newsletter-api/core/domain"
	"newsletter-api/core/interfaces"
	htmlutil "newsletter-api/pkg/utils/html"
	timeutil "newsletter-api/pkg/utils/time"
	"newsletter-api/pkg/utils/urls"
)

// Placeholder texts used when a field cannot be derived
const (
	UntitledArticle    = "Article sans titre"
	GenericDescription = "Information pertinente sur ce sujet."
	UnknownDate        = "Date non spécifiée"
)

// Enricher implements interfaces.ArticleEnricher
type Enricher struct {
	deps       interfaces.Dependencies
	summarizer interfaces.TextGenerator
	excerpter  interfaces.PageExcerpter
	pacer      interfaces.Pacer
	gate       QualityGate
	cfg        config.EnrichmentConfig
}

// NewEnricher creates an enricher. A nil summarizer disables AI summaries.
func NewEnricher(deps interfaces.Dependencies, summarizer interfaces.TextGenerator, pacer interfaces.Pacer, opts ...config.EnrichmentOption) *Enricher {
	if pacer == nil {
		pacer = interfaces.NoopPacer
	}
	return &Enricher{
		deps:       deps,
		summarizer: summarizer,
		pacer:      pacer,
		gate:       NeedsSummary,
		cfg:        config.NewEnrichmentConfig(opts...),
	}
}

// SetExcerpter installs the page excerpt fallback
func (e *Enricher) SetExcerpter(excerpter interfaces.PageExcerpter) {
	e.excerpter = excerpter
}

// SetQualityGate replaces the default summary gate
func (e *Enricher) SetQualityGate(gate QualityGate) {
	if gate != nil {
		e.gate = gate
	}
}

// SummariesEnabled reports whether a summarizer will be consulted
func (e *Enricher) SummariesEnabled() bool {
	return e.summarizer != nil && e.cfg.Summaries
}

// Enrich never fails; every upstream problem degrades to the best available text
func (e *Enricher) Enrich(ctx context.Context, result domain.SearchResult, topic string) domain.EnrichedArticle {
	article := domain.EnrichedArticle{
		Title:     htmlutil.StripHTML(result.Title),
		URL:       result.URL,
		Thumbnail: result.Thumbnail,
		Age:       ageLabel(result),
	}
	if article.Title == "" {
		article.Title = UntitledArticle
	}
	if source, ok := urls.Domain(result.URL); ok {
		article.Source = source
	}

	description := htmlutil.StripHTML(result.Description)
	if description == "" {
		description = strings.Join(htmlutil.StripAll(result.ExtraSnippets), " ")
	}
	if description == "" {
		description = e.excerpt(ctx, &article)
	}

	if e.SummariesEnabled() && e.gate(description) {
		if summary, ok := e.summarize(ctx, article, description, topic); ok {
			description = summary
			article.AISummary = true
		}
	}

	if description == "" {
		description = GenericDescription
	}
	article.Description = description

	return article
}

func (e *Enricher) excerpt(ctx context.Context, article *domain.EnrichedArticle) string {
	if !e.cfg.PageExcerpts || e.excerpter == nil {
		return ""
	}

	page, err := e.excerpter.Excerpt(ctx, article.URL)
	if err != nil {
		e.deps.LoggerOrNoop().Debug("Page excerpt unavailable", map[string]interface{}{
			"url":   article.URL,
			"error": err.Error(),
		})
		return ""
	}

	if article.Thumbnail == "" {
		article.Thumbnail = page.Image
	}
	return htmlutil.StripHTML(page.Excerpt)
}

func (e *Enricher) summarize(ctx context.Context, article domain.EnrichedArticle, description, topic string) (string, bool) {
	logger := e.deps.LoggerOrNoop()
	metrics := e.deps.MetricsOrNoop()

	if err := e.pacer.Wait(ctx); err != nil {
		metrics.Summary(interfaces.OutcomeSkipped)
		return "", false
	}

	ctx, cancel := context.WithTimeout(ctx, e.cfg.SummaryTimeout)
	defer cancel()

	prompt := SummaryPrompt(topic, article.Title, article.URL, description)
	summary, err := e.summarizer.Generate(ctx, prompt, e.cfg.SummaryMaxTokens)
	if err != nil {
		metrics.Summary(interfaces.OutcomeFallback)
		logger.Warn("Summary generation failed", map[string]interface{}{
			"url":      article.URL,
			"provider": e.summarizer.Name(),
			"error":    err.Error(),
		})
		return "", false
	}

	summary = strings.TrimSpace(summary)
	if summary == "" {
		metrics.Summary(interfaces.OutcomeFallback)
		return "", false
	}

	metrics.Summary(interfaces.OutcomeSuccess)
	logger.Debug("Summary generated", map[string]interface{}{
		"url":    article.URL,
		"length": len(summary),
	})
	return summary, true
}

// ageLabel prefers the provider's age text, then the formatted page date
func ageLabel(result domain.SearchResult) string {
	if age := strings.TrimSpace(result.PublishedAge); age != "" {
		return age
	}
	if !result.PageAge.IsZero() {
		return timeutil.FrenchDate(result.PageAge)
	}
	return UnknownDate
}
