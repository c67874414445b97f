// ABOUTME: Prometheus recorder for upstream calls, summaries, translations and generations
// ABOUTME: Owns its registry so tests and multiple servers never collide

package prometheus

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "newsletter"

// Recorder implements interfaces.Metrics
type Recorder struct {
	registry *prometheus.Registry

	upstreamCalls *prometheus.CounterVec
	summaries     *prometheus.CounterVec
	translations  *prometheus.CounterVec
	generations   *prometheus.HistogramVec
}

// NewRecorder creates a recorder with Go runtime and process collectors
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),

		upstreamCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_calls_total",
			Help:      "Calls to external APIs by api and outcome",
		}, []string{"api", "outcome"}),

		summaries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "summaries_total",
			Help:      "Article summary attempts by outcome",
		}, []string{"outcome"}),

		translations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "translations_total",
			Help:      "Translated texts by backend and outcome",
		}, []string{"backend", "outcome"}),

		generations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Newsletter generation latency",
			Buckets:   []float64{1, 2.5, 5, 10, 20, 30, 45, 60, 90},
		}, []string{"outcome"}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.upstreamCalls,
		r.summaries,
		r.translations,
		r.generations,
	)

	return r
}

// UpstreamCall counts one external API call
func (r *Recorder) UpstreamCall(api, outcome string) {
	r.upstreamCalls.WithLabelValues(api, outcome).Inc()
}

// Summary counts one summary attempt
func (r *Recorder) Summary(outcome string) {
	r.summaries.WithLabelValues(outcome).Inc()
}

// Translation counts one translated text
func (r *Recorder) Translation(backend, outcome string) {
	r.translations.WithLabelValues(backend, outcome).Inc()
}

// Generation observes one generation
func (r *Recorder) Generation(outcome string, elapsed time.Duration) {
	r.generations.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// Handler serves the exposition format for this recorder's registry
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
