// ABOUTME: Wire model of the Brave web search response
// ABOUTME: Every field is optional upstream; defaulting rules live on the types

package search

import (
	"strings"

	"newsletter-api/core/domain"
	"newsletter-api/pkg/utils/urls"
	timeutil "newsletter-api/pkg/utils/time"
)

type braveResponse struct {
	Web  *braveResultSet `json:"web,omitempty"`
	News *braveResultSet `json:"news,omitempty"`
}

type braveResultSet struct {
	Results []braveResult `json:"results,omitempty"`
}

type braveResult struct {
	Title         *string         `json:"title,omitempty"`
	URL           *string         `json:"url,omitempty"`
	Description   *string         `json:"description,omitempty"`
	Age           *string         `json:"age,omitempty"`
	PageAge       *string         `json:"page_age,omitempty"`
	Thumbnail     *braveThumbnail `json:"thumbnail,omitempty"`
	ExtraSnippets []string        `json:"extra_snippets,omitempty"`
}

type braveThumbnail struct {
	Src      *string `json:"src,omitempty"`
	Original *string `json:"original,omitempty"`
}

func (s *braveResultSet) results() []braveResult {
	if s == nil {
		return nil
	}
	return s.Results
}

// webResults returns web.results or nothing
func (r *braveResponse) webResults() []braveResult {
	return r.Web.results()
}

// newsResults returns news.results, falling back to web.results when the
// news block is missing or empty
func (r *braveResponse) newsResults() []braveResult {
	if news := r.News.results(); len(news) > 0 {
		return news
	}
	return r.webResults()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// thumbnail prefers the proxied src over the original image
func (t *braveThumbnail) url() string {
	if t == nil {
		return ""
	}
	if src := deref(t.Src); src != "" {
		return src
	}
	return deref(t.Original)
}

// toDomain converts a wire result; ok is false when the result has no URL
func (r braveResult) toDomain() (domain.SearchResult, bool) {
	link := deref(r.URL)
	if link == "" {
		return domain.SearchResult{}, false
	}

	source, _ := urls.Domain(link)

	return domain.SearchResult{
		Title:         deref(r.Title),
		URL:           link,
		Description:   deref(r.Description),
		Thumbnail:     r.Thumbnail.url(),
		PublishedAge:  deref(r.Age),
		PageAge:       timeutil.ParseFlexibleTime(deref(r.PageAge)),
		ExtraSnippets: r.ExtraSnippets,
		SourceDomain:  source,
	}, true
}

func toDomainResults(in []braveResult) []domain.SearchResult {
	out := make([]domain.SearchResult, 0, len(in))
	for _, r := range in {
		if result, ok := r.toDomain(); ok {
			out = append(out, result)
		}
	}
	return out
}
