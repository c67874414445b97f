// ABOUTME: Translation service detecting each text's language and translating it when needed
// ABOUTME: Backends are tried in order (DeepL first, then the text generator) with paced calls

package translate

import (
	"context"
	"time"

	"newsletter-api/core/domain"
	"newsletter-api/core/errors"
	"newsletter-api/core/interfaces"
)

const defaultTimeout = 15 * time.Second

// SourceTranslator is implemented by backends that accept a known source
// language instead of detecting it themselves
type SourceTranslator interface {
	TranslateFrom(ctx context.Context, text string, source, target domain.Language) (string, error)
}

// Service translates batches of texts
type Service struct {
	deps     interfaces.Dependencies
	backends []interfaces.TranslationBackend
	detector LanguageDetector
	pacer    interfaces.Pacer
	timeout  time.Duration
}

// NewService creates a translation service. Nil backends are ignored;
// the remaining ones are tried in the given order.
func NewService(deps interfaces.Dependencies, pacer interfaces.Pacer, timeout time.Duration, backends ...interfaces.TranslationBackend) *Service {
	if pacer == nil {
		pacer = interfaces.NoopPacer
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	s := &Service{
		deps:     deps,
		detector: NewKeywordDetector(),
		pacer:    pacer,
		timeout:  timeout,
	}
	for _, b := range backends {
		if b != nil {
			s.backends = append(s.backends, b)
		}
	}
	return s
}

// SetDetector replaces the keyword detector
func (s *Service) SetDetector(detector LanguageDetector) {
	if detector != nil {
		s.detector = detector
	}
}

// Configured reports whether at least one backend is available
func (s *Service) Configured() bool {
	return len(s.backends) > 0
}

// Backend names the primary backend, or "none"
func (s *Service) Backend() string {
	if len(s.backends) == 0 {
		return "none"
	}
	return s.backends[0].Name()
}

// Translate returns one result per input text, in order. Texts already in the
// target language are returned unchanged; a text every backend failed on is
// returned unchanged with WasTranslated false.
func (s *Service) Translate(ctx context.Context, texts []string, target domain.Language) ([]domain.TranslationResult, error) {
	if !s.Configured() {
		return nil, &errors.ConfigurationError{
			Setting: "DEEPL_API_KEY",
			Message: "Aucune API de traduction configurée (DeepL ou IA)",
		}
	}

	logger := s.deps.LoggerOrNoop()
	results := make([]domain.TranslationResult, 0, len(texts))

	for i, text := range texts {
		detected := s.detector.Detect(text)
		result := domain.TranslationResult{
			Original:     text,
			Translated:   text,
			DetectedLang: detected,
		}

		if detected == target {
			s.deps.MetricsOrNoop().Translation("none", interfaces.OutcomeSkipped)
			results = append(results, result)
			continue
		}

		if err := s.pacer.Wait(ctx); err != nil {
			return nil, err
		}

		if translated, ok := s.translateOne(ctx, text, detected, target); ok {
			result.Translated = translated
			result.WasTranslated = true
		}

		logger.Debug("Text processed", map[string]interface{}{
			"index":      i,
			"detected":   string(detected),
			"target":     string(target),
			"translated": result.WasTranslated,
		})
		results = append(results, result)
	}

	return results, nil
}

func (s *Service) translateOne(ctx context.Context, text string, source, target domain.Language) (string, bool) {
	metrics := s.deps.MetricsOrNoop()
	_, knownSource := domain.ParseTargetLanguage(string(source))

	for _, backend := range s.backends {
		callCtx, cancel := context.WithTimeout(ctx, s.timeout)
		var (
			translated string
			err        error
		)
		if st, ok := backend.(SourceTranslator); ok && knownSource {
			translated, err = st.TranslateFrom(callCtx, text, source, target)
		} else {
			translated, err = backend.Translate(callCtx, text, target)
		}
		cancel()

		if err == nil {
			metrics.Translation(backend.Name(), interfaces.OutcomeSuccess)
			return translated, true
		}

		metrics.Translation(backend.Name(), interfaces.OutcomeError)
		s.deps.LoggerOrNoop().Warn("Translation backend failed", map[string]interface{}{
			"backend": backend.Name(),
			"error":   err.Error(),
		})
		if ctx.Err() != nil {
			break
		}
	}

	return "", false
}
