// Package core contains the business logic of the Newsletter API.
// It is framework-agnostic: nothing under core imports the HTTP layer.
//
// The core package is organized into several sub-packages:
//
// - domain: Plain models (SearchResult, QueryPlan, EnrichedArticle, Newsletter, TranslationResult)
// - planner: Intent classification, period parsing and query planning
// - search: Brave web and news search client
// - aggregate: Sequential fan-out, dedup, filtering and truncation of results
// - enrich: Display fields, AI summaries and page excerpt fallback
// - render: HTML and Markdown documents
// - newsletter: The generation pipeline tying the stages together
// - ai, translate, reader: Text generation, translation and page excerpts
// - errors: Custom error types mapped to HTTP statuses by the API layer
// - interfaces: Contracts for external dependencies (cache, HTTP, logger, metrics, pacing)
//
// # Usage Example
//
//	deps := interfaces.Dependencies{
//	    Cache:      myCache,
//	    HTTPClient: myHTTPClient,
//	    Logger:     myLogger,
//	}
//
//	searchSvc := search.NewSearchService(deps, search.Config{APIKey: key}, nil)
//	renderer, _ := render.NewRenderer(render.DefaultMainCap, render.DefaultSupplementaryCap)
//
//	svc := newsletter.NewService(deps, newsletter.Options{
//	    Planner:          planner.NewPlanner(),
//	    Aggregator:       aggregate.NewAggregator(searchSvc, aggregate.DefaultConfig(), myLogger),
//	    Enricher:         enrich.NewEnricher(deps, nil, nil),
//	    Renderer:         renderer,
//	    SearchConfigured: searchSvc.Configured(),
//	})
//
//	nl, err := svc.Generate(ctx, domain.NewsletterRequest{Theme: "robotique"})
package core
