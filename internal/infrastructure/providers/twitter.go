package providers

import (
	"context"
	"net/url"

	"TrendPoster/internal/domain"
	"TrendPoster/internal/ports"
)

// TwitterTrends serves illustrative hashtag trends. Without an API key there
// is nothing to call, so a fixed demo set stands in; the same set is used
// when a key is present until the v2 trends endpoint is wired up.
type TwitterTrends struct {
	apiKey string
}

var _ ports.TrendProvider = (*TwitterTrends)(nil)

// NewTwitterTrends keeps the key for the future real integration.
func NewTwitterTrends(apiKey string) *TwitterTrends {
	return &TwitterTrends{apiKey: apiKey}
}

// Source identifies the provider inside the registry.
func (t *TwitterTrends) Source() domain.Source {
	return domain.SourceTwitter
}

// Fetch returns the demo trend set with synthesized descending scores.
func (t *TwitterTrends) Fetch(ctx context.Context, region string) ([]domain.TrendingTopic, error) {
	demo := []struct {
		title, description string
	}{
		{"#TechNews", "Latest technology updates and innovations"},
		{"#AI", "Artificial Intelligence discussions"},
		{"#Marketing", "Digital marketing strategies"},
		{"#Crypto", "Cryptocurrency market trends"},
		{"#Business", "Business and entrepreneurship topics"},
	}

	topics := make([]domain.TrendingTopic, 0, len(demo))
	for i, item := range demo {
		topics = append(topics, domain.TrendingTopic{
			Title:           item.title,
			Description:     item.description,
			Source:          domain.SourceTwitter,
			Category:        "trending",
			PopularityScore: 95 - i*5,
			URL:             "https://twitter.com/search?q=" + url.QueryEscape(item.title),
			Keywords:        []string{item.title},
			Language:        "en",
			Region:          "US",
		})
	}

	return topics, nil
}
