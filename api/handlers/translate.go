// ABOUTME: Translation handler for batches of short texts
// ABOUTME: Detects each text's language and translates those not already in the target

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"newsletter-api/core/domain"
	"newsletter-api/core/interfaces"
)

// TextTranslator translates a batch of texts
type TextTranslator interface {
	Translate(ctx context.Context, texts []string, target domain.Language) ([]domain.TranslationResult, error)
}

// TranslateHandler handles text translation
type TranslateHandler struct {
	translator TextTranslator
	logger     interfaces.Logger
}

// NewTranslateHandler creates a new translation handler
func NewTranslateHandler(translator TextTranslator, logger interfaces.Logger) *TranslateHandler {
	if logger == nil {
		logger = interfaces.NoopLogger
	}
	return &TranslateHandler{translator: translator, logger: logger}
}

// RegisterRoutes registers translation routes
func (h *TranslateHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "translateTexts",
		Method:      http.MethodPost,
		Path:        "/api/translate",
		Summary:     "Translate texts",
		Description: "Translates each text into fr, en or es; texts already in the target language are returned unchanged",
		Tags:        []string{"Translation"},
	}, h.Translate)
}

// TranslateInput defines the input for translation
type TranslateInput struct {
	Body TranslateRequest `required:"false"`
}

// TranslateRequest is the body of a translation request
type TranslateRequest struct {
	_ struct{} `json:"-" additionalProperties:"true"`

	Texts      []string `json:"texts,omitempty" doc:"Texts to translate"`
	TargetLang string   `json:"targetLang,omitempty" doc:"Target language: fr, en or es"`
}

// TranslationItem is the result for one text
type TranslationItem struct {
	Original      string `json:"original"`
	Translated    string `json:"translated"`
	DetectedLang  string `json:"detectedLang"`
	WasTranslated bool   `json:"wasTranslated"`
}

// TranslateOutput defines the output for translation
type TranslateOutput struct {
	Body struct {
		Success         bool              `json:"success"`
		TargetLang      string            `json:"targetLang"`
		Results         []TranslationItem `json:"results"`
		TranslatedCount int               `json:"translatedCount"`
		SkippedCount    int               `json:"skippedCount"`
	}
}

// Translate handles the POST /api/translate endpoint
func (h *TranslateHandler) Translate(ctx context.Context, input *TranslateInput) (*TranslateOutput, error) {
	if len(input.Body.Texts) == 0 {
		return nil, huma.Error400BadRequest(MsgTextsRequired)
	}

	target, ok := domain.ParseTargetLanguage(input.Body.TargetLang)
	if !ok {
		return nil, huma.Error400BadRequest(MsgInvalidLanguage)
	}

	results, err := h.translator.Translate(ctx, input.Body.Texts, target)
	if err != nil {
		return nil, toHumaError(err, h.logger)
	}

	output := &TranslateOutput{}
	output.Body.Success = true
	output.Body.TargetLang = string(target)
	output.Body.Results = make([]TranslationItem, 0, len(results))
	for _, r := range results {
		output.Body.Results = append(output.Body.Results, TranslationItem{
			Original:      r.Original,
			Translated:    r.Translated,
			DetectedLang:  string(r.DetectedLang),
			WasTranslated: r.WasTranslated,
		})
		if r.WasTranslated {
			output.Body.TranslatedCount++
		} else {
			output.Body.SkippedCount++
		}
	}

	return output, nil
}
