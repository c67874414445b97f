// ABOUTME: Newsletter generation handler
// ABOUTME: Validates the request, runs the pipeline and returns the document with its counts

package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"newsletter-api/core/domain"
	"newsletter-api/core/interfaces"
)

// MaxThemes bounds the themes array; only the first theme is processed
const MaxThemes = 5

// NewsletterGenerator runs one generation
type NewsletterGenerator interface {
	Generate(ctx context.Context, req domain.NewsletterRequest) (*domain.Newsletter, error)
}

// GenerateHandler handles newsletter generation
type GenerateHandler struct {
	generator NewsletterGenerator
	logger    interfaces.Logger
}

// NewGenerateHandler creates a new generation handler
func NewGenerateHandler(generator NewsletterGenerator, logger interfaces.Logger) *GenerateHandler {
	if logger == nil {
		logger = interfaces.NoopLogger
	}
	return &GenerateHandler{generator: generator, logger: logger}
}

// RegisterRoutes registers generation routes
func (h *GenerateHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "generateNewsletter",
		Method:      http.MethodPost,
		Path:        "/api/generate",
		Summary:     "Generate a newsletter",
		Description: "Searches the web for a topic and renders the results as an HTML or Markdown newsletter",
		Tags:        []string{"Newsletter"},
	}, h.Generate)
}

// GenerateRequest is the body of a generation request
type GenerateRequest struct {
	_ struct{} `json:"-" additionalProperties:"true"`

	Theme            string   `json:"theme,omitempty" doc:"Topic of the newsletter" example:"intelligence artificielle"`
	Themes           []string `json:"themes,omitempty" doc:"Alternative to theme; only the first entry is used"`
	Period           *string  `json:"period,omitempty" nullable:"true" doc:"Free text period (\"24h\", \"cette semaine\", \"mars 2024\")"`
	PreferredSources []string `json:"preferredSources,omitempty" doc:"Domains to query with site: searches"`
	ExcludedSites    []string `json:"excludedSites,omitempty" doc:"Domains removed from the results"`
	Format           string   `json:"format,omitempty" doc:"html (default) or markdown"`
}

// GenerateInput defines the input for newsletter generation
type GenerateInput struct {
	// An absent body reaches the theme check like an empty object
	Body GenerateRequest `required:"false"`
}

// GenerateResponse is the body of a successful generation
type GenerateResponse struct {
	Success         bool   `json:"success"`
	Newsletter      string `json:"newsletter" doc:"Rendered document"`
	Theme           string `json:"theme"`
	Period          string `json:"period"`
	IntentType      string `json:"intentType" enum:"trends,news,innovation,general"`
	ResultsCount    int    `json:"resultsCount"`
	NewsCount       int    `json:"newsCount"`
	AdditionalCount int    `json:"additionalCount"`
	AISummariesUsed bool   `json:"aiSummariesUsed"`
	Format          string `json:"format" enum:"html,markdown"`
}

// GenerateOutput defines the output for newsletter generation
type GenerateOutput struct {
	Body GenerateResponse
}

// Generate handles the POST /api/generate endpoint
func (h *GenerateHandler) Generate(ctx context.Context, input *GenerateInput) (*GenerateOutput, error) {
	body := input.Body

	theme := strings.TrimSpace(body.Theme)
	if theme == "" && len(body.Themes) > 0 {
		theme = strings.TrimSpace(body.Themes[0])
	}
	if theme == "" {
		return nil, huma.Error400BadRequest(MsgThemeRequired)
	}
	if len(body.Themes) > MaxThemes {
		return nil, huma.Error400BadRequest(MsgTooManyThemes)
	}

	format := domain.Format(strings.ToLower(strings.TrimSpace(body.Format)))
	switch format {
	case "":
		format = domain.FormatHTML
	case domain.FormatHTML, domain.FormatMarkdown:
	default:
		return nil, huma.Error400BadRequest(MsgInvalidFormat)
	}

	if len(body.Themes) > 1 {
		h.logger.Info("Only the first theme is processed", map[string]interface{}{
			"themes": len(body.Themes),
			"theme":  theme,
		})
	}

	nl, err := h.generator.Generate(ctx, domain.NewsletterRequest{
		Theme:            theme,
		Period:           body.Period,
		PreferredSources: body.PreferredSources,
		ExcludedSites:    body.ExcludedSites,
		Format:           format,
	})
	if err != nil {
		return nil, toHumaError(err, h.logger)
	}

	output := &GenerateOutput{}
	output.Body = GenerateResponse{
		Success:         true,
		Newsletter:      nl.Document,
		Theme:           nl.Theme,
		Period:          nl.Period,
		IntentType:      string(nl.IntentType),
		ResultsCount:    nl.ResultsCount,
		NewsCount:       nl.NewsCount,
		AdditionalCount: nl.AdditionalCount,
		AISummariesUsed: nl.AISummariesUsed,
		Format:          string(nl.Format),
	}
	return output, nil
}
