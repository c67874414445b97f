// ABOUTME: Newsletter service running the generation pipeline end to end
// ABOUTME: Plan, aggregate, enrich, split and render, all within one request

package newsletter

import (
	"context"
	"strings"
	"time"

	"newsletter-api/core/aggregate"
	"newsletter-api/core/domain"
	"newsletter-api/core/errors"
	"newsletter-api/core/interfaces"
	"newsletter-api/core/planner"
)

// DefaultEnrichLimit is how many aggregated results are enriched
const DefaultEnrichLimit = 15

// DefaultPeriodLabel is reported when no period was requested
const DefaultPeriodLabel = "récent"

// QueryPlanner derives the search plan for a topic
type QueryPlanner interface {
	Plan(topic string, period *string) domain.QueryPlan
}

// ResultAggregator runs the search fan-out
type ResultAggregator interface {
	Aggregate(ctx context.Context, req aggregate.Request) (*aggregate.Result, error)
}

// DocumentRenderer formats the final document
type DocumentRenderer interface {
	Render(format domain.Format, in domain.RenderInput) (string, error)
	MainCap() int
	SupplementaryCap() int
}

// Options wires the pipeline stages
type Options struct {
	Planner    QueryPlanner
	Aggregator ResultAggregator
	Enricher   interfaces.ArticleEnricher
	Renderer   DocumentRenderer

	// SearchConfigured is false when the search API key is missing
	SearchConfigured bool

	// SummariesEnabled is reported back as aiSummariesUsed
	SummariesEnabled bool

	EnrichLimit int
	Now         func() time.Time
}

// Service generates newsletters
type Service struct {
	deps interfaces.Dependencies
	opts Options
}

// NewService creates a newsletter service
func NewService(deps interfaces.Dependencies, opts Options) *Service {
	if opts.EnrichLimit <= 0 {
		opts.EnrichLimit = DefaultEnrichLimit
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{deps: deps, opts: opts}
}

// Generate produces one newsletter. Only configuration, validation and
// search-wide failures are returned; enrichment problems degrade silently.
func (s *Service) Generate(ctx context.Context, req domain.NewsletterRequest) (*domain.Newsletter, error) {
	started := s.opts.Now()
	metrics := s.deps.MetricsOrNoop()

	nl, err := s.generate(ctx, req)

	outcome := interfaces.OutcomeSuccess
	if err != nil {
		outcome = interfaces.OutcomeError
	}
	metrics.Generation(outcome, s.opts.Now().Sub(started))

	return nl, err
}

func (s *Service) generate(ctx context.Context, req domain.NewsletterRequest) (*domain.Newsletter, error) {
	logger := s.deps.LoggerOrNoop()

	theme := strings.TrimSpace(req.Theme)
	if theme == "" {
		return nil, &errors.ValidationError{Field: "theme", Message: "Thématique requise"}
	}

	format := req.Format
	if format == "" {
		format = domain.FormatHTML
	}
	if format != domain.FormatHTML && format != domain.FormatMarkdown {
		return nil, &errors.ValidationError{Field: "format", Message: "Format invalide (html, markdown)"}
	}

	if !s.opts.SearchConfigured {
		return nil, &errors.ConfigurationError{Setting: "BRAVE_API_KEY", Message: "Clé API Brave non configurée."}
	}

	plan := s.opts.Planner.Plan(theme, req.Period)
	logger.Info("Generating newsletter", map[string]interface{}{
		"theme":      theme,
		"period":     periodLabel(req.Period),
		"intent":     string(plan.IntentType),
		"main_topic": plan.MainTopic,
	})

	agg, err := s.opts.Aggregator.Aggregate(ctx, aggregate.Request{
		Plan:             plan,
		Freshness:        planner.PeriodToFreshness(req.Period),
		PreferredSources: req.PreferredSources,
		ExcludedSites:    req.ExcludedSites,
	})
	if err != nil {
		return nil, errors.WrapError(err, "aggregate search results")
	}

	candidates := agg.Results
	if len(candidates) > s.opts.EnrichLimit {
		candidates = candidates[:s.opts.EnrichLimit]
	}

	enriched := make([]domain.EnrichedArticle, 0, len(candidates))
	summaries := 0
	for _, result := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		article := s.opts.Enricher.Enrich(ctx, result, theme)
		article.FromNews = agg.IsNews(result.URL)
		if article.AISummary {
			summaries++
		}
		enriched = append(enriched, article)
	}

	main, supplementary := Split(enriched, s.opts.Renderer.MainCap(), s.opts.Renderer.SupplementaryCap())

	var period string
	if req.Period != nil {
		period = strings.TrimSpace(*req.Period)
	}

	document, err := s.opts.Renderer.Render(format, domain.RenderInput{
		Theme:         theme,
		Period:        period,
		IntentType:    plan.IntentType,
		Main:          main,
		Supplementary: supplementary,
		TotalCount:    len(enriched),
		GeneratedAt:   s.opts.Now(),
	})
	if err != nil {
		return nil, err
	}

	newsCount := 0
	for _, a := range main {
		if a.FromNews {
			newsCount++
		}
	}

	logger.Info("Newsletter generated", map[string]interface{}{
		"theme":         theme,
		"results":       len(enriched),
		"news":          newsCount,
		"supplementary": len(supplementary),
		"ai_summaries":  summaries,
		"search_calls":  agg.Calls,
		"search_errors": agg.Failures,
	})

	return &domain.Newsletter{
		Document:        document,
		Format:          format,
		Theme:           theme,
		Period:          periodLabel(req.Period),
		IntentType:      plan.IntentType,
		ResultsCount:    len(enriched),
		NewsCount:       newsCount,
		AdditionalCount: len(supplementary),
		AISummariesUsed: s.opts.SummariesEnabled,
	}, nil
}

// Split picks the main articles (news first, then the rest in order) up to
// mainCap, and the supplementary links from what is left up to supplementaryCap.
// No article appears in both lists.
func Split(articles []domain.EnrichedArticle, mainCap, supplementaryCap int) (main, supplementary []domain.EnrichedArticle) {
	used := make([]bool, len(articles))

	for i, a := range articles {
		if len(main) >= mainCap {
			break
		}
		if a.FromNews {
			main = append(main, a)
			used[i] = true
		}
	}
	for i, a := range articles {
		if len(main) >= mainCap {
			break
		}
		if !used[i] {
			main = append(main, a)
			used[i] = true
		}
	}

	for i, a := range articles {
		if len(supplementary) >= supplementaryCap {
			break
		}
		if !used[i] {
			supplementary = append(supplementary, a)
		}
	}

	return main, supplementary
}

func periodLabel(period *string) string {
	if period == nil || strings.TrimSpace(*period) == "" {
		return DefaultPeriodLabel
	}
	return strings.TrimSpace(*period)
}
