// ABOUTME: Enrichment configuration for service-level control of optional features
// ABOUTME: Provides configuration options independent of HTTP request structures

package config

import "time"

// EnrichmentConfig controls which enrichment features are enabled
type EnrichmentConfig struct {
	// Summaries controls whether weak descriptions are rewritten by the summarizer
	Summaries bool

	// PageExcerpts controls whether article pages are fetched when a result has no text at all
	PageExcerpts bool

	// SummaryTimeout bounds a single summarizer call
	SummaryTimeout time.Duration

	// SummaryMaxTokens caps the generated summary
	SummaryMaxTokens int
}

// DefaultEnrichmentConfig returns the default configuration.
// Summaries are on, page excerpts are off.
func DefaultEnrichmentConfig() EnrichmentConfig {
	return EnrichmentConfig{
		Summaries:        true,
		PageExcerpts:     false,
		SummaryTimeout:   10 * time.Second,
		SummaryMaxTokens: 200,
	}
}

// EnrichmentOption is a functional option for configuring enrichment
type EnrichmentOption func(*EnrichmentConfig)

// WithSummaries enables or disables AI summaries
func WithSummaries(enabled bool) EnrichmentOption {
	return func(c *EnrichmentConfig) {
		c.Summaries = enabled
	}
}

// WithPageExcerpts enables or disables page excerpt fallback
func WithPageExcerpts(enabled bool) EnrichmentOption {
	return func(c *EnrichmentConfig) {
		c.PageExcerpts = enabled
	}
}

// WithSummaryTimeout sets the per call summarizer timeout
func WithSummaryTimeout(timeout time.Duration) EnrichmentOption {
	return func(c *EnrichmentConfig) {
		if timeout > 0 {
			c.SummaryTimeout = timeout
		}
	}
}

// WithSummaryMaxTokens sets the summarizer token cap
func WithSummaryMaxTokens(tokens int) EnrichmentOption {
	return func(c *EnrichmentConfig) {
		if tokens > 0 {
			c.SummaryMaxTokens = tokens
		}
	}
}

// WithoutSummaries disables AI summaries
func WithoutSummaries() EnrichmentOption {
	return WithSummaries(false)
}

// NewEnrichmentConfig creates a new enrichment configuration with the given options
func NewEnrichmentConfig(opts ...EnrichmentOption) EnrichmentConfig {
	config := DefaultEnrichmentConfig()

	for _, opt := range opts {
		opt(&config)
	}

	return config
}
