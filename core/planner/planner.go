// ABOUTME: Query planner deriving search queries and an intent type from a free-text topic
// ABOUTME: Classification is pluggable; the default matches French and English keyword families

package planner

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"newsletter-api/core/domain"
)

// IntentClassifier decides the intent of a topic
type IntentClassifier interface {
	Classify(topic string) domain.IntentType
}

// IntentClassifierFunc adapts a function to IntentClassifier
type IntentClassifierFunc func(topic string) domain.IntentType

// Classify calls f(topic)
func (f IntentClassifierFunc) Classify(topic string) domain.IntentType {
	return f(topic)
}

type intentFamily struct {
	intent   domain.IntentType
	keywords []string
}

// KeywordClassifier matches lower-cased substrings; the first family with a hit wins
type KeywordClassifier struct {
	families []intentFamily
}

// NewKeywordClassifier returns the default classifier.
// Priority is trends, then news, then innovation.
func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{
		families: []intentFamily{
			{intent: domain.IntentTrends, keywords: []string{"tendance", "trend"}},
			{intent: domain.IntentNews, keywords: []string{"actualité", "nouveauté", "news"}},
			{intent: domain.IntentInnovation, keywords: []string{"innovation", "nouveau"}},
		},
	}
}

// Classify implements IntentClassifier
func (c *KeywordClassifier) Classify(topic string) domain.IntentType {
	lower := strings.ToLower(topic)
	for _, family := range c.families {
		for _, keyword := range family.keywords {
			if strings.Contains(lower, keyword) {
				return family.intent
			}
		}
	}
	return domain.IntentGeneral
}

// intentWords are removed from the topic to get the main subject
var intentWords = []*regexp.Regexp{
	regexp.MustCompile(`(?i)tendances?`),
	regexp.MustCompile(`(?i)\btrends?\b`),
	regexp.MustCompile(`(?i)actualités?`),
	regexp.MustCompile(`(?i)nouveautés?`),
	regexp.MustCompile(`(?i)\bnews\b`),
	regexp.MustCompile(`(?i)innovations?`),
	regexp.MustCompile(`(?i)évolutions?`),
}

// Planner builds a QueryPlan for a topic
type Planner struct {
	classifier IntentClassifier
	now        func() time.Time
}

// Option configures a Planner
type Option func(*Planner)

// WithClassifier replaces the keyword classifier
func WithClassifier(c IntentClassifier) Option {
	return func(p *Planner) {
		if c != nil {
			p.classifier = c
		}
	}
}

// WithClock sets the clock used for the year in queries
func WithClock(now func() time.Time) Option {
	return func(p *Planner) {
		if now != nil {
			p.now = now
		}
	}
}

// NewPlanner creates a planner with the keyword classifier and the system clock
func NewPlanner(opts ...Option) *Planner {
	p := &Planner{
		classifier: NewKeywordClassifier(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Plan never fails. The period does not change the queries; it only
// selects the freshness bucket (see PeriodToFreshness).
func (p *Planner) Plan(topic string, period *string) domain.QueryPlan {
	topic = strings.TrimSpace(topic)
	intent := p.classifier.Classify(topic)
	mainTopic := MainTopic(topic)
	year := strconv.Itoa(p.now().Year())

	var queries []string
	switch intent {
	case domain.IntentTrends:
		queries = []string{
			mainTopic + " tendances " + year,
			mainTopic + " nouveautés populaires",
			mainTopic + " en vogue maintenant",
			mainTopic + " ce qui marche actuellement",
			mainTopic + " viral récent",
		}
	case domain.IntentNews:
		queries = []string{
			mainTopic + " actualités récentes",
			mainTopic + " dernières nouvelles",
			mainTopic + " annonces importantes",
			mainTopic + " lancements " + year,
		}
	case domain.IntentInnovation:
		queries = []string{
			mainTopic + " innovations " + year,
			mainTopic + " nouvelles technologies",
			mainTopic + " avancées récentes",
			mainTopic + " produits nouveaux",
		}
	default:
		queries = []string{
			topic + " actualités récentes",
			topic + " informations importantes",
			topic + " dernières nouvelles",
			topic + " " + year,
		}
	}

	return domain.QueryPlan{
		Queries:    queries,
		IntentType: intent,
		MainTopic:  mainTopic,
	}
}

// MainTopic strips intent keywords from topic. When nothing is left the
// trimmed topic itself is returned.
func MainTopic(topic string) string {
	stripped := topic
	for _, re := range intentWords {
		stripped = re.ReplaceAllString(stripped, " ")
	}
	stripped = strings.Join(strings.Fields(stripped), " ")
	if stripped == "" {
		return strings.TrimSpace(topic)
	}
	return stripped
}
