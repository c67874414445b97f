// ABOUTME: Feature flag management for optional pipeline stages and server features
// ABOUTME: Environment variables override the configured defaults at runtime

package featureflags

import (
	"context"
	"os"
	"strings"

	"newsletter-api/pkg/config"
)

// FeatureFlag represents a single feature flag
type FeatureFlag string

// Defined feature flags
const (
	// AISummaries enables summarizer calls for weak descriptions
	AISummaries FeatureFlag = "ai_summaries"

	// PageExcerpts enables fetching article pages when no snippet exists
	PageExcerpts FeatureFlag = "page_excerpts"

	// MetricsEnabled enables the metrics endpoint
	MetricsEnabled FeatureFlag = "metrics_enabled"

	// RateLimitEnabled enables per-IP rate limiting
	RateLimitEnabled FeatureFlag = "rate_limit_enabled"
)

// All lists every defined flag
var All = []FeatureFlag{AISummaries, PageExcerpts, MetricsEnabled, RateLimitEnabled}

// Manager defines the interface for feature flag management
type Manager interface {
	// IsEnabled checks if a feature flag is enabled
	IsEnabled(ctx context.Context, flag FeatureFlag) bool

	// GetAllFlags returns the state of all flags
	GetAllFlags() map[FeatureFlag]bool
}

// Defaults converts the configured feature section to flag defaults
func Defaults(cfg config.FeaturesConfig) map[FeatureFlag]bool {
	return map[FeatureFlag]bool{
		AISummaries:      cfg.AISummaries,
		PageExcerpts:     cfg.PageExcerpts,
		MetricsEnabled:   cfg.Metrics,
		RateLimitEnabled: cfg.RateLimit,
	}
}

// EnvManager implements Manager using environment variables over defaults
type EnvManager struct {
	defaults map[FeatureFlag]bool
	prefix   string
}

// NewEnvManager creates a new environment-based feature flag manager.
// FEATURE_AI_SUMMARIES=false disables summaries whatever the default.
func NewEnvManager(prefix string, defaults map[FeatureFlag]bool) *EnvManager {
	if prefix == "" {
		prefix = "FEATURE_"
	}
	d := make(map[FeatureFlag]bool, len(defaults))
	for k, v := range defaults {
		d[k] = v
	}
	return &EnvManager{
		defaults: d,
		prefix:   prefix,
	}
}

// IsEnabled checks if a feature flag is enabled
func (m *EnvManager) IsEnabled(ctx context.Context, flag FeatureFlag) bool {
	envKey := m.prefix + strings.ToUpper(string(flag))
	switch strings.ToLower(strings.TrimSpace(os.Getenv(envKey))) {
	case "true", "1", "enabled":
		return true
	case "false", "0", "disabled":
		return false
	}

	return m.defaults[flag]
}

// GetAllFlags returns the state of all defined flags
func (m *EnvManager) GetAllFlags() map[FeatureFlag]bool {
	ctx := context.Background()
	flags := make(map[FeatureFlag]bool, len(All))
	for _, f := range All {
		flags[f] = m.IsEnabled(ctx, f)
	}
	return flags
}
