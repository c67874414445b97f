package handlers

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsletter-api/core/errors"
)

func TestToHumaError(t *testing.T) {
	UseFlatErrors()

	tests := []struct {
		name           string
		input          error
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:           "ValidationError returns 400 with its message",
			input:          &errors.ValidationError{Field: "theme", Message: "Thématique requise"},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Thématique requise",
		},
		{
			name:           "ConfigurationError returns 500 with its message",
			input:          fmt.Errorf("generate: %w", &errors.ConfigurationError{Setting: "BRAVE_API_KEY", Message: "Clé API Brave non configurée."}),
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "Clé API Brave non configurée.",
		},
		{
			name:           "ExternalAPIError returns 502",
			input:          &errors.ExternalAPIError{API: "brave", StatusCode: 500, Message: "boom"},
			expectedStatus: http.StatusBadGateway,
			expectedMsg:    MsgSearchDown,
		},
		{
			name:           "unknown error is hidden",
			input:          stderrors.New("secret stack detail"),
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    MsgInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := &mockLogger{}
			err := toHumaError(tt.input, logger)

			var statusErr huma.StatusError
			require.True(t, stderrors.As(err, &statusErr))
			assert.Equal(t, tt.expectedStatus, statusErr.GetStatus())
			assert.Equal(t, tt.expectedMsg, statusErr.Error())
		})
	}
}

func TestToHumaError_Nil(t *testing.T) {
	assert.Nil(t, toHumaError(nil, &mockLogger{}))
}

func TestToHumaError_LogsServerSideFailures(t *testing.T) {
	UseFlatErrors()
	logger := &mockLogger{}

	toHumaError(&errors.ValidationError{Message: "x"}, logger)
	assert.Empty(t, logger.errors)

	toHumaError(stderrors.New("boom"), logger)
	assert.Len(t, logger.errors, 1)
}

func TestNewError_FoldsUnprocessableIntoBadRequest(t *testing.T) {
	UseFlatErrors()

	err := huma.NewError(http.StatusUnprocessableEntity, "validation failed", &huma.ErrorDetail{
		Location: "body.targetLang",
		Message:  "expected string",
	})

	assert.Equal(t, http.StatusBadRequest, err.GetStatus())
	assert.Equal(t, MsgInvalidLanguage, err.Error())
}

func TestNewError_UnknownLocationKeepsDetail(t *testing.T) {
	UseFlatErrors()

	err := huma.NewError(http.StatusUnprocessableEntity, "validation failed", &huma.ErrorDetail{
		Location: "body.excludedSites[0]",
		Message:  "expected string",
	})

	assert.Equal(t, "body.excludedSites[0]: expected string", err.Error())
}

func TestNewError_EmptyMessageUsesStatusText(t *testing.T) {
	UseFlatErrors()

	err := huma.NewError(http.StatusNotFound, "")
	assert.Equal(t, "Not Found", err.Error())
}
