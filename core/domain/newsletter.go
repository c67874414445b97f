// ABOUTME: Newsletter domain models for enriched articles and the rendered document
// ABOUTME: Carries request parameters in and generation results out of the pipeline

package domain

import "time"

// Format is the output format of a rendered newsletter
type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
)

// EnrichedArticle is a search result with finalized display fields
type EnrichedArticle struct {
	Title       string
	URL         string
	Description string
	Thumbnail   string
	Age         string
	Source      string

	// AISummary reports whether Description was produced by the summarizer
	AISummary bool

	// FromNews reports whether the URL was returned by the news query
	FromNews bool
}

// NewsletterRequest is the input of a single generation
type NewsletterRequest struct {
	Theme            string
	Period           *string
	PreferredSources []string
	ExcludedSites    []string
	Format           Format
}

// Newsletter is the result of a generation
type Newsletter struct {
	Document        string
	Format          Format
	Theme           string
	Period          string
	IntentType      IntentType
	ResultsCount    int
	NewsCount       int
	AdditionalCount int
	AISummariesUsed bool
}

// RenderInput is everything the renderer needs; it performs no I/O
type RenderInput struct {
	Theme         string
	Period        string
	IntentType    IntentType
	Main          []EnrichedArticle
	Supplementary []EnrichedArticle
	TotalCount    int
	GeneratedAt   time.Time
}

// PageExcerpt is readable text extracted from an article page
type PageExcerpt struct {
	URL      string
	Title    string
	Excerpt  string
	Image    string
	SiteName string
}
