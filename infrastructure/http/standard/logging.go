// ABOUTME: Round tripper logging outbound HTTP calls with the inbound request ID
// ABOUTME: Lets upstream latency and failures be traced back to the API request

package standard

import (
	"net/http"
	"time"

	"newsletter-api/core/interfaces"
	"newsletter-api/pkg/utils/requestid"
)

// LoggingRoundTripper implements http.RoundTripper with logging
type LoggingRoundTripper struct {
	Transport http.RoundTripper
	Logger    interfaces.Logger
}

// NewLoggingRoundTripper wraps transport, or http.DefaultTransport when nil
func NewLoggingRoundTripper(transport http.RoundTripper, logger interfaces.Logger) *LoggingRoundTripper {
	if transport == nil {
		transport = http.DefaultTransport
	}
	if logger == nil {
		logger = interfaces.NoopLogger
	}
	return &LoggingRoundTripper{Transport: transport, Logger: logger}
}

// RoundTrip logs outgoing HTTP requests. Query strings are left out since
// they carry search topics, not credentials, but can be long.
func (t *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	id := requestid.FromContext(req.Context())
	if id != "" {
		req = req.Clone(req.Context())
		req.Header.Set(requestid.Header, id)
	}

	resp, err := t.Transport.RoundTrip(req)
	duration := time.Since(start)

	fields := map[string]interface{}{
		"request_id":  id,
		"method":      req.Method,
		"host":        req.URL.Host,
		"path":        req.URL.Path,
		"duration_ms": duration.Milliseconds(),
	}

	if err != nil {
		fields["error"] = err.Error()
		t.Logger.Warn("Outgoing HTTP request failed", fields)
		return nil, err
	}

	fields["status"] = resp.StatusCode
	t.Logger.Debug("Outgoing HTTP request", fields)

	return resp, nil
}
