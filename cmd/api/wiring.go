// ABOUTME: Builds the service graph from configuration
// ABOUTME: Shared by the HTTP server and the one-shot CLI commands

package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"newsletter-api/core/aggregate"
	"newsletter-api/core/ai"
	"newsletter-api/core/config"
	"newsletter-api/core/enrich"
	"newsletter-api/core/interfaces"
	"newsletter-api/core/newsletter"
	"newsletter-api/core/planner"
	"newsletter-api/core/reader"
	"newsletter-api/core/render"
	"newsletter-api/core/search"
	"newsletter-api/core/translate"
	"newsletter-api/infrastructure/cache/memory"
	"newsletter-api/infrastructure/cache/redis"
	"newsletter-api/infrastructure/cache/sqlite"
	stdhttp "newsletter-api/infrastructure/http/standard"
	"newsletter-api/infrastructure/logger/structured"
	"newsletter-api/infrastructure/metrics/prometheus"
	"newsletter-api/infrastructure/ratelimit"
	appconfig "newsletter-api/pkg/config"
	"newsletter-api/pkg/featureflags"
)

const httpClientTimeout = 30 * time.Second

// app is the wired service graph
type app struct {
	cfg    *appconfig.Config
	logger *structured.Logger
	flags  featureflags.Manager

	// recorder is nil when metrics are disabled
	recorder *prometheus.Recorder

	newsletter *newsletter.Service
	translator *translate.Service

	searchConfigured     bool
	summarizerConfigured bool

	closers []io.Closer
}

func buildApp(ctx context.Context, cfg *appconfig.Config) (*app, error) {
	logger := structured.New(structured.Options{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
	})

	a := &app{
		cfg:     cfg,
		logger:  logger,
		flags:   featureflags.NewEnvManager("FEATURE_", featureflags.Defaults(cfg.Features)),
		closers: []io.Closer{logger},
	}

	deps := interfaces.Dependencies{
		Logger: logger,
		HTTPClient: stdhttp.NewStandardHTTPClientWithTransport(
			httpClientTimeout,
			stdhttp.NewLoggingRoundTripper(http.DefaultTransport, logger),
		),
	}

	cache, err := a.buildCache()
	if err != nil {
		a.Close()
		return nil, err
	}
	if cache != nil {
		deps.Cache = cache
	}

	if a.flags.IsEnabled(ctx, featureflags.MetricsEnabled) {
		a.recorder = prometheus.NewRecorder()
		deps.Metrics = a.recorder
	}

	searchTTL := time.Duration(0)
	if deps.Cache != nil {
		searchTTL = cfg.Cache.SearchTTL
	}
	searchSvc := search.NewSearchService(deps, search.Config{
		APIKey:   cfg.Search.APIKey,
		BaseURL:  cfg.Search.BaseURL,
		Language: cfg.Search.Language,
		Timeout:  cfg.Search.Timeout,
		CacheTTL: searchTTL,
	}, ratelimit.NewPacer(cfg.Pacing.Search))
	a.searchConfigured = searchSvc.Configured()

	generator, err := ai.New(deps, ai.Config{
		Provider: cfg.Summarizer.Provider,
		APIKey:   cfg.SummarizerKey(),
		Model:    cfg.Summarizer.Model,
		BaseURL:  cfg.Summarizer.BaseURL,
	})
	switch {
	case errors.Is(err, ai.ErrNotConfigured):
		logger.Info("No summarizer key, AI summaries and AI translation disabled", nil)
	case err != nil:
		a.Close()
		return nil, err
	}
	a.summarizerConfigured = generator != nil

	summaries := generator != nil && a.flags.IsEnabled(ctx, featureflags.AISummaries)
	excerpts := a.flags.IsEnabled(ctx, featureflags.PageExcerpts)

	var summarizer interfaces.TextGenerator
	if summaries {
		summarizer = generator
	}
	enricher := enrich.NewEnricher(deps, summarizer, ratelimit.NewPacer(cfg.Pacing.Summary),
		config.WithSummaries(summaries),
		config.WithPageExcerpts(excerpts),
		config.WithSummaryTimeout(cfg.Summarizer.Timeout),
		config.WithSummaryMaxTokens(cfg.Summarizer.MaxTokens),
	)
	if excerpts {
		enricher.SetExcerpter(reader.NewService(deps, 0, cfg.Cache.ExcerptTTL))
	}

	renderer, err := render.NewRenderer(cfg.Render.MainCap, cfg.Render.SupplementaryCap)
	if err != nil {
		a.Close()
		return nil, err
	}

	aggregator := aggregate.NewAggregator(searchSvc, aggregate.Config{
		MaxQueries:       cfg.Pipeline.MaxQueries,
		QueryResultCount: cfg.Pipeline.QueryResultCount,
		MaxSiteDomains:   cfg.Pipeline.MaxSiteDomains,
		SiteResultCount:  cfg.Pipeline.SiteResultCount,
		NewsResultCount:  cfg.Pipeline.NewsResultCount,
		Limit:            cfg.Pipeline.ResultLimit,
	}, logger)

	a.newsletter = newsletter.NewService(deps, newsletter.Options{
		Planner:          planner.NewPlanner(),
		Aggregator:       aggregator,
		Enricher:         enricher,
		Renderer:         renderer,
		SearchConfigured: a.searchConfigured,
		SummariesEnabled: enricher.SummariesEnabled(),
		EnrichLimit:      cfg.Pipeline.EnrichLimit,
	})

	var backends []interfaces.TranslationBackend
	if cfg.Translator.DeepLAPIKey != "" {
		backends = append(backends, translate.NewDeepL(deps, cfg.Translator.DeepLAPIKey, cfg.Translator.DeepLURL))
	}
	if generator != nil {
		backends = append(backends, translate.NewGeneratorBackend(generator))
	}
	a.translator = translate.NewService(deps, ratelimit.NewPacer(cfg.Pacing.Translate), cfg.Translator.Timeout, backends...)

	logger.Info("Services wired", map[string]interface{}{
		"cache":               cfg.Cache.Type,
		"search_configured":   a.searchConfigured,
		"summaries":           summaries,
		"page_excerpts":       excerpts,
		"translation_backend": a.translator.Backend(),
		"metrics":             a.recorder != nil,
	})

	return a, nil
}

// buildCache returns nil when caching is disabled
func (a *app) buildCache() (interfaces.Cache, error) {
	switch a.cfg.Cache.Type {
	case "memory":
		return memory.NewMemoryCache(5 * time.Minute), nil
	case "redis":
		c, err := redis.NewRedisCache(a.cfg.Cache.Redis)
		if err != nil {
			a.logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			return memory.NewMemoryCache(5 * time.Minute), nil
		}
		a.closers = append(a.closers, c)
		return c, nil
	case "sqlite":
		c, err := sqlite.NewSQLiteCache(a.cfg.Cache.SQLite.Path, a.logger)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, c)
		return c, nil
	default:
		return nil, nil
	}
}

// Close releases caches and flushes the log file, in reverse order of creation
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i].Close()
	}
	a.closers = nil
}
