// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to HTTP responses with a flat {"error": "..."} body

package handlers

import (
	stderrors "errors"
	"net/http"
	"sync"

	"github.com/danielgtaylor/huma/v2"

	"newsletter-api/core/errors"
	"newsletter-api/core/interfaces"
)

// Messages returned for malformed request fields
const (
	MsgThemeRequired   = "Thématique requise"
	MsgTooManyThemes   = "Maximum 5 thématiques"
	MsgInvalidFormat   = "Format invalide (html, markdown)"
	MsgTextsRequired   = "Textes requis (array)"
	MsgInvalidLanguage = "Langue cible invalide (fr, en, es)"
	MsgInternal        = "internal server error"
	MsgSearchDown      = "search provider unavailable"
)

// fieldMessages replaces schema validation output for known fields
var fieldMessages = map[string]string{
	"body.theme":      MsgThemeRequired,
	"body.themes":     MsgThemeRequired,
	"body.format":     MsgInvalidFormat,
	"body.texts":      MsgTextsRequired,
	"body.targetLang": MsgInvalidLanguage,
}

// ErrorBody is the body of every error response
type ErrorBody struct {
	status  int
	Message string `json:"error" doc:"Error message"`
}

// Error implements error
func (e *ErrorBody) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError
func (e *ErrorBody) GetStatus() int {
	return e.status
}

var installOnce sync.Once

// UseFlatErrors makes huma emit ErrorBody for every error it writes,
// including its own request validation failures (folded into 400).
func UseFlatErrors() {
	installOnce.Do(func() {
		huma.NewError = newError
	})
}

func newError(status int, msg string, errs ...error) huma.StatusError {
	if status == http.StatusUnprocessableEntity {
		status = http.StatusBadRequest
	}

	message := msg
	for _, err := range errs {
		var detail *huma.ErrorDetail
		if !stderrors.As(err, &detail) {
			continue
		}
		if m, ok := fieldMessages[detail.Location]; ok {
			message = m
			break
		}
		if detail.Message != "" {
			message = detail.Location + ": " + detail.Message
		}
	}

	if message == "" {
		message = http.StatusText(status)
	}

	return &ErrorBody{status: status, Message: message}
}

// toHumaError converts domain errors to appropriate Huma HTTP errors.
// Only messages meant for callers are passed through.
func toHumaError(err error, logger interfaces.Logger) error {
	if err == nil {
		return nil
	}

	var validationErr *errors.ValidationError
	if stderrors.As(err, &validationErr) {
		return huma.Error400BadRequest(validationErr.Message)
	}

	var configErr *errors.ConfigurationError
	if stderrors.As(err, &configErr) {
		logger.Error("Service not configured", map[string]interface{}{
			"setting": configErr.Setting,
		})
		return huma.Error500InternalServerError(configErr.Message)
	}

	if errors.IsExternalAPI(err) {
		logger.Error("Upstream failure", map[string]interface{}{
			"error": err.Error(),
		})
		return huma.NewError(http.StatusBadGateway, MsgSearchDown)
	}

	logger.Error("Unhandled error", map[string]interface{}{
		"error": err.Error(),
	})
	return huma.Error500InternalServerError(MsgInternal)
}
