package prometheus

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsletter-api/core/interfaces"
)

func TestRecorder_Counters(t *testing.T) {
	r := NewRecorder()

	r.UpstreamCall("brave", interfaces.OutcomeSuccess)
	r.UpstreamCall("brave", interfaces.OutcomeSuccess)
	r.UpstreamCall("brave", interfaces.OutcomeError)
	r.Summary(interfaces.OutcomeFallback)
	r.Translation("deepl", interfaces.OutcomeSkipped)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.upstreamCalls.WithLabelValues("brave", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.upstreamCalls.WithLabelValues("brave", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.summaries.WithLabelValues("fallback")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.translations.WithLabelValues("deepl", "skipped")))
}

func TestRecorder_Handler(t *testing.T) {
	r := NewRecorder()
	r.Generation(interfaces.OutcomeSuccess, 3*time.Second)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `newsletter_generation_duration_seconds_count{outcome="success"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestRecorder_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewRecorder()
		NewRecorder()
	})
}
