package translate

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsletter-api/core/domain"
	coreerrors "newsletter-api/core/errors"
	"newsletter-api/core/interfaces"
)

func TestDeepL_Translate(t *testing.T) {
	client := &mockHTTPClient{status: 200, body: `{"translations":[{"detected_source_language":"FR","text":"Hello world"}]}`}
	deepl := NewDeepL(interfaces.Dependencies{HTTPClient: client}, "dl-key", "")

	text, err := deepl.Translate(context.Background(), "Bonjour le monde", domain.LanguageEnglish)
	require.NoError(t, err)
	assert.Equal(t, "Hello world", text)

	require.Len(t, client.posts, 1)
	post := client.posts[0]
	assert.Equal(t, DefaultDeepLURL, post.url)
	assert.Equal(t, "DeepL-Auth-Key dl-key", post.headers.Get("Authorization"))
	assert.Equal(t, "application/x-www-form-urlencoded", post.headers.Get("Content-Type"))

	form, err := url.ParseQuery(post.body)
	require.NoError(t, err)
	assert.Equal(t, "Bonjour le monde", form.Get("text"))
	assert.Equal(t, "EN", form.Get("target_lang"))
	assert.False(t, form.Has("source_lang"))
}

func TestDeepL_TranslateFrom(t *testing.T) {
	client := &mockHTTPClient{status: 200, body: `{"translations":[{"text":"Hola"}]}`}
	deepl := NewDeepL(interfaces.Dependencies{HTTPClient: client}, "k", "https://api.deepl.com/v2/translate")

	_, err := deepl.TranslateFrom(context.Background(), "Bonjour", domain.LanguageFrench, domain.LanguageSpanish)
	require.NoError(t, err)

	form, _ := url.ParseQuery(client.posts[0].body)
	assert.Equal(t, "FR", form.Get("source_lang"))
	assert.Equal(t, "ES", form.Get("target_lang"))
	assert.Equal(t, "https://api.deepl.com/v2/translate", client.posts[0].url)
}

func TestDeepL_Errors(t *testing.T) {
	tests := []struct {
		name   string
		client *mockHTTPClient
	}{
		{"quota", &mockHTTPClient{status: 456, body: `{"message":"Quota exceeded"}`}},
		{"empty", &mockHTTPClient{status: 200, body: `{"translations":[]}`}},
		{"transport", &mockHTTPClient{err: context.DeadlineExceeded}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDeepL(interfaces.Dependencies{HTTPClient: tt.client}, "k", "").
				Translate(context.Background(), "Bonjour", domain.LanguageEnglish)
			assert.Error(t, err)
		})
	}

	_, err := NewDeepL(interfaces.Dependencies{HTTPClient: &mockHTTPClient{status: 403}}, "k", "").
		Translate(context.Background(), "Bonjour", domain.LanguageEnglish)
	assert.True(t, coreerrors.IsExternalAPI(err))
}

func TestGeneratorBackend_Translate(t *testing.T) {
	var captured string
	gen := &mockGenerator{generateFunc: func(prompt string, maxTokens int) (string, error) {
		captured = prompt
		assert.Equal(t, 1000, maxTokens)
		return "  Hola mundo \n", nil
	}}

	text, err := NewGeneratorBackend(gen).Translate(context.Background(), "Bonjour le monde", domain.LanguageSpanish)

	require.NoError(t, err)
	assert.Equal(t, "Hola mundo", text)
	assert.Contains(t, captured, "Traduis UNIQUEMENT ce texte en espagnol.")
	assert.Contains(t, captured, "Bonjour le monde")
}

func TestGeneratorBackend_Errors(t *testing.T) {
	empty := &mockGenerator{generateFunc: func(string, int) (string, error) { return " ", nil }}

	_, err := NewGeneratorBackend(empty).Translate(context.Background(), "x", domain.LanguageFrench)
	assert.Error(t, err)

	_, err = NewGeneratorBackend(empty).Translate(context.Background(), "x", domain.LanguageUnknown)
	assert.Error(t, err)
}
