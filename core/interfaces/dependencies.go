// ABOUTME: Dependencies container provides dependency injection for core services
// ABOUTME: Defines the contract for dependencies required by the core business logic

package interfaces

// Dependencies holds all external dependencies required by the core business logic
type Dependencies struct {
	// Cache provides caching functionality; nil disables caching
	Cache Cache

	// HTTPClient provides HTTP request functionality
	HTTPClient HTTPClient

	// Logger provides structured logging
	Logger Logger

	// Metrics records measurements; nil means NoopMetrics
	Metrics Metrics
}

// MetricsOrNoop returns d.Metrics or NoopMetrics when unset
func (d Dependencies) MetricsOrNoop() Metrics {
	if d.Metrics == nil {
		return NoopMetrics
	}
	return d.Metrics
}

// LoggerOrNoop returns d.Logger or NoopLogger when unset
func (d Dependencies) LoggerOrNoop() Logger {
	if d.Logger == nil {
		return NoopLogger
	}
	return d.Logger
}
