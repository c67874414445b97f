// ABOUTME: Metrics interface for upstream call and generation instrumentation
// ABOUTME: A no-op implementation is used when metrics are disabled

package interfaces

import "time"

// Outcome labels shared by metric recorders
const (
	OutcomeSuccess  = "success"
	OutcomeError    = "error"
	OutcomeFallback = "fallback"
	OutcomeSkipped  = "skipped"
	OutcomeCacheHit = "cache_hit"
)

// Metrics records service level measurements
type Metrics interface {
	// UpstreamCall counts one call to an external API ("brave", "anthropic", "deepl")
	UpstreamCall(api, outcome string)

	// Summary counts one enrichment summary attempt
	Summary(outcome string)

	// Translation counts one translated text per backend
	Translation(backend, outcome string)

	// Generation observes the duration of a newsletter generation
	Generation(outcome string, elapsed time.Duration)
}

type noopMetrics struct{}

func (noopMetrics) UpstreamCall(string, string)      {}
func (noopMetrics) Summary(string)                   {}
func (noopMetrics) Translation(string, string)       {}
func (noopMetrics) Generation(string, time.Duration) {}

// NoopMetrics discards every measurement
var NoopMetrics Metrics = noopMetrics{}
