// ABOUTME: Health check handler reporting which upstream APIs are configured
// ABOUTME: Never calls the upstream APIs themselves

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"newsletter-api/pkg/featureflags"
)

// TranslatorStatus reports the translation backends
type TranslatorStatus interface {
	Configured() bool
	Backend() string
}

// FeatureReporter lists the state of every feature flag
type FeatureReporter interface {
	GetAllFlags() map[featureflags.FeatureFlag]bool
}

// HealthConfig holds the static facts the health check reports
type HealthConfig struct {
	SearchConfigured     bool
	SummarizerConfigured bool
	Translator           TranslatorStatus
	Features             FeatureReporter
	Environment          string
	Now                  func() time.Time
}

// HealthHandler handles health checks
type HealthHandler struct {
	cfg HealthConfig
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(cfg HealthConfig) *HealthHandler {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	return &HealthHandler{cfg: cfg}
}

// RegisterRoutes registers health routes
func (h *HealthHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/api/health",
		Summary:     "Health check",
		Tags:        []string{"Health"},
	}, h.Health)
}

// HealthOutput defines the health check response
type HealthOutput struct {
	Body struct {
		Status               string          `json:"status" example:"ok"`
		APIConfigured        bool            `json:"apiConfigured" doc:"Search API key present"`
		SummarizerConfigured bool            `json:"summarizerConfigured"`
		TranslatorConfigured bool            `json:"translatorConfigured"`
		TranslationBackend   string          `json:"translationBackend" enum:"deepl,ai,none"`
		Timestamp            string          `json:"timestamp" format:"date-time"`
		Environment          string          `json:"environment"`
		Features             map[string]bool `json:"features" doc:"Feature flag states"`
	}
}

// Health handles the GET /api/health endpoint
func (h *HealthHandler) Health(ctx context.Context, input *struct{}) (*HealthOutput, error) {
	output := &HealthOutput{}
	output.Body.Status = "ok"
	output.Body.APIConfigured = h.cfg.SearchConfigured
	output.Body.SummarizerConfigured = h.cfg.SummarizerConfigured
	output.Body.TranslationBackend = "none"
	if h.cfg.Translator != nil {
		output.Body.TranslatorConfigured = h.cfg.Translator.Configured()
		output.Body.TranslationBackend = h.cfg.Translator.Backend()
	}
	output.Body.Timestamp = h.cfg.Now().UTC().Format(time.RFC3339)
	output.Body.Environment = h.cfg.Environment
	output.Body.Features = map[string]bool{}
	if h.cfg.Features != nil {
		for flag, enabled := range h.cfg.Features.GetAllFlags() {
			output.Body.Features[string(flag)] = enabled
		}
	}
	return output, nil
}
