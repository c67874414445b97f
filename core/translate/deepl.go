package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"newsletter-api/core/domain"
	coreerrors "newsletter-api/core/errors"
	"newsletter-api/core/interfaces"
)

// DefaultDeepLURL is the free tier endpoint
const DefaultDeepLURL = "https://api-free.deepl.com/v2/translate"

// DeepL translates through the DeepL REST API
type DeepL struct {
	deps     interfaces.Dependencies
	apiKey   string
	endpoint string
}

type deepLResponse struct {
	Translations []struct {
		DetectedSourceLanguage string `json:"detected_source_language"`
		Text                   string `json:"text"`
	} `json:"translations"`
}

var _ SourceTranslator = (*DeepL)(nil)

// NewDeepL creates a DeepL backend; an empty endpoint uses the free tier
func NewDeepL(deps interfaces.Dependencies, apiKey, endpoint string) *DeepL {
	if endpoint == "" {
		endpoint = DefaultDeepLURL
	}
	return &DeepL{deps: deps, apiKey: apiKey, endpoint: endpoint}
}

// Name implements interfaces.TranslationBackend
func (d *DeepL) Name() string {
	return "deepl"
}

// Translate implements interfaces.TranslationBackend
func (d *DeepL) Translate(ctx context.Context, text string, target domain.Language) (string, error) {
	return d.translate(ctx, text, target, "")
}

// TranslateFrom pins the source language instead of letting DeepL detect it
func (d *DeepL) TranslateFrom(ctx context.Context, text string, source, target domain.Language) (string, error) {
	return d.translate(ctx, text, target, source)
}

func (d *DeepL) translate(ctx context.Context, text string, target, source domain.Language) (string, error) {
	metrics := d.deps.MetricsOrNoop()

	form := url.Values{}
	form.Set("text", text)
	form.Set("target_lang", strings.ToUpper(string(target)))
	if source != "" && source != domain.LanguageUnknown {
		form.Set("source_lang", strings.ToUpper(string(source)))
	}

	headers := http.Header{}
	headers.Set("Authorization", "DeepL-Auth-Key "+d.apiKey)
	headers.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := d.deps.HTTPClient.Post(ctx, d.endpoint, strings.NewReader(form.Encode()), headers)
	if err != nil {
		metrics.UpstreamCall(d.Name(), interfaces.OutcomeError)
		return "", &coreerrors.ExternalAPIError{API: d.Name(), Message: "request failed", Err: err}
	}
	defer resp.Body().Close()

	if resp.StatusCode() != http.StatusOK {
		metrics.UpstreamCall(d.Name(), interfaces.OutcomeError)
		b, _ := io.ReadAll(io.LimitReader(resp.Body(), 512))
		return "", &coreerrors.ExternalAPIError{StatusCode: resp.StatusCode(), API: d.Name(), Message: strings.TrimSpace(string(b))}
	}

	var parsed deepLResponse
	if err := json.NewDecoder(resp.Body()).Decode(&parsed); err != nil {
		metrics.UpstreamCall(d.Name(), interfaces.OutcomeError)
		return "", &coreerrors.ExternalAPIError{StatusCode: resp.StatusCode(), API: d.Name(), Message: "invalid response body", Err: err}
	}
	if len(parsed.Translations) == 0 {
		metrics.UpstreamCall(d.Name(), interfaces.OutcomeError)
		return "", fmt.Errorf("empty deepl response")
	}

	metrics.UpstreamCall(d.Name(), interfaces.OutcomeSuccess)
	return parsed.Translations[0].Text, nil
}
