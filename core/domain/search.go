// ABOUTME: Search domain models for web and news results returned by the search provider
// ABOUTME: Defines result, freshness and query plan types shared by the newsletter pipeline

package domain

import "time"

// SearchResult represents a single web or news hit from the search provider
type SearchResult struct {
	// Title is the page headline
	Title string

	// URL is the absolute page URL; it is the dedup key within a request
	URL string

	// Description is the provider snippet, possibly containing highlight markup
	Description string

	// Thumbnail is an optional preview image URL
	Thumbnail string

	// PublishedAge is the provider's human readable age ("2 days ago")
	PublishedAge string

	// PageAge is the parsed publication date, zero when unknown
	PageAge time.Time

	// ExtraSnippets are additional excerpts the provider may return
	ExtraSnippets []string

	// SourceDomain is the host of URL without a leading "www."
	SourceDomain string
}

// Freshness restricts search results to an age bucket
type Freshness string

const (
	FreshnessDay   Freshness = "pd"
	FreshnessWeek  Freshness = "pw"
	FreshnessMonth Freshness = "pm"
	FreshnessYear  Freshness = "py"
)

// IntentType is a coarse classification of the requested topic
type IntentType string

const (
	IntentTrends     IntentType = "trends"
	IntentNews       IntentType = "news"
	IntentInnovation IntentType = "innovation"
	IntentGeneral    IntentType = "general"
)

// QueryPlan holds the search queries derived from a topic
type QueryPlan struct {
	// Queries is the ordered list of search strings
	Queries []string

	// IntentType drives query phrasing and rendering tone
	IntentType IntentType

	// MainTopic is the topic with intent keywords stripped
	MainTopic string
}
