package aggregate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsletter-api/core/domain"
	coreerrors "newsletter-api/core/errors"
)

func testPlan() domain.QueryPlan {
	return domain.QueryPlan{
		Queries: []string{
			"IA tendances 2025",
			"IA nouveautés populaires",
			"IA en vogue maintenant",
			"IA ce qui marche actuellement",
			"IA viral récent",
		},
		IntentType: domain.IntentTrends,
		MainTopic:  "IA",
	}
}

func TestAggregate_CallOrderAndParameters(t *testing.T) {
	client := &mockSearchClient{}
	agg := NewAggregator(client, Config{}, nil)

	_, err := agg.Aggregate(context.Background(), Request{
		Plan:             testPlan(),
		Freshness:        domain.FreshnessMonth,
		PreferredSources: []string{"www.lemonde.fr", "lesechos.fr"},
	})
	require.NoError(t, err)

	require.Len(t, client.calls, 7)
	assert.Equal(t, recordedCall{query: "IA tendances 2025", count: 8, freshness: "pm"}, client.calls[0])
	assert.Equal(t, "IA ce qui marche actuellement", client.calls[3].query, "only the first four planned queries run")
	assert.Equal(t, recordedCall{query: "site:lemonde.fr IA", count: 5, freshness: "pm"}, client.calls[4])
	assert.Equal(t, recordedCall{query: "site:lesechos.fr IA", count: 5, freshness: "pm"}, client.calls[5])
	assert.Equal(t, recordedCall{news: true, query: "IA actualités", count: 10, freshness: "pm"}, client.calls[6])
}

func TestAggregate_NewsConcatenatedLast(t *testing.T) {
	client := &mockSearchClient{
		webFunc: func(query string) ([]domain.SearchResult, error) {
			if query == "IA tendances 2025" {
				return []domain.SearchResult{result("https://shared.example/a", "from web")}, nil
			}
			return nil, nil
		},
		newsFunc: func(query string) ([]domain.SearchResult, error) {
			return []domain.SearchResult{
				result("https://shared.example/a/", "from news"),
				result("https://news.example/b", "news only"),
			}, nil
		},
	}

	res, err := NewAggregator(client, Config{}, nil).Aggregate(context.Background(), Request{Plan: testPlan()})
	require.NoError(t, err)

	require.Len(t, res.Results, 2)
	assert.Equal(t, "from web", res.Results[0].Title, "the web copy is seen first and wins")
	assert.True(t, res.IsNews("https://shared.example/a"), "a URL returned by the news query still counts as news")
	assert.True(t, res.IsNews("https://news.example/b"))
}

func TestAggregate_FailuresAreSwallowed(t *testing.T) {
	client := &mockSearchClient{
		webFunc: func(query string) ([]domain.SearchResult, error) {
			if strings.Contains(query, "tendances") {
				return nil, &coreerrors.ExternalAPIError{API: "brave", StatusCode: 429}
			}
			return []domain.SearchResult{result("https://ok.example/"+query, query)}, nil
		},
	}

	res, err := NewAggregator(client, Config{}, nil).Aggregate(context.Background(), Request{Plan: testPlan()})
	require.NoError(t, err)

	assert.Equal(t, 5, res.Calls)
	assert.Equal(t, 1, res.Failures)
	assert.Len(t, res.Results, 3)
}

func TestAggregate_AllFailedAndEmpty(t *testing.T) {
	failure := &coreerrors.ExternalAPIError{API: "brave", StatusCode: 503}
	client := &mockSearchClient{
		webFunc:  func(string) ([]domain.SearchResult, error) { return nil, failure },
		newsFunc: func(string) ([]domain.SearchResult, error) { return nil, nil },
	}

	res, err := NewAggregator(client, Config{}, nil).Aggregate(context.Background(), Request{Plan: testPlan()})

	assert.Nil(t, res)
	assert.True(t, coreerrors.IsExternalAPI(err))
	assert.ErrorIs(t, err, failure)
}

func TestAggregate_EmptyWithoutFailuresIsNotAnError(t *testing.T) {
	res, err := NewAggregator(&mockSearchClient{}, Config{}, nil).Aggregate(context.Background(), Request{Plan: testPlan()})

	require.NoError(t, err)
	assert.Empty(t, res.Results)
	assert.Equal(t, 0, res.Failures)
}

func TestAggregate_ConfigurationErrorPropagates(t *testing.T) {
	client := &mockSearchClient{
		webFunc: func(string) ([]domain.SearchResult, error) {
			return nil, &coreerrors.ConfigurationError{Setting: "BRAVE_API_KEY"}
		},
	}

	_, err := NewAggregator(client, Config{}, nil).Aggregate(context.Background(), Request{Plan: testPlan()})

	assert.True(t, coreerrors.IsConfiguration(err))
	assert.Len(t, client.calls, 1)
}

func TestAggregate_StopsWhenContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := &mockSearchClient{
		webFunc: func(string) ([]domain.SearchResult, error) {
			cancel()
			return nil, context.Canceled
		},
	}

	_, err := NewAggregator(client, Config{}, nil).Aggregate(ctx, Request{Plan: testPlan()})

	assert.True(t, errors.Is(err, context.Canceled))
	assert.Len(t, client.calls, 1)
}

func TestAggregate_ExcludesAndTruncates(t *testing.T) {
	client := &mockSearchClient{
		webFunc: func(query string) ([]domain.SearchResult, error) {
			return []domain.SearchResult{
				result("https://spam.example/"+query, ""),
				result("https://keep.example/"+query, ""),
			}, nil
		},
	}

	res, err := NewAggregator(client, Config{Limit: 3}, nil).Aggregate(context.Background(), Request{
		Plan:          testPlan(),
		ExcludedSites: []string{"spam.example"},
	})
	require.NoError(t, err)

	require.Len(t, res.Results, 3)
	for _, r := range res.Results {
		assert.Contains(t, r.URL, "keep.example")
	}
}
