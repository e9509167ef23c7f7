package providers

import (
	"context"
	"net/url"

	"TrendPoster/internal/domain"
	"TrendPoster/internal/ports"
)

// YouTubeTrending serves illustrative trending videos in demo mode, the same
// way the Twitter provider does; the Data API v3 integration is pending.
type YouTubeTrending struct {
	apiKey string
}

var _ ports.TrendProvider = (*YouTubeTrending)(nil)

// NewYouTubeTrending keeps the key for the future real integration.
func NewYouTubeTrending(apiKey string) *YouTubeTrending {
	return &YouTubeTrending{apiKey: apiKey}
}

// Source identifies the provider inside the registry.
func (y *YouTubeTrending) Source() domain.Source {
	return domain.SourceYouTube
}

// Fetch returns the demo trend set with synthesized descending scores.
func (y *YouTubeTrending) Fetch(ctx context.Context, region string) ([]domain.TrendingTopic, error) {
	demo := []struct {
		title, description string
	}{
		{"AI Revolution in 2024", "How AI is changing the world"},
		{"Social Media Growth Hacks", "Proven strategies for growth"},
		{"Content Creation Tips", "Best practices for creators"},
		{"Digital Marketing in 2024", "Latest marketing trends"},
		{"Tech Product Reviews", "Latest gadget reviews"},
	}

	topics := make([]domain.TrendingTopic, 0, len(demo))
	for i, item := range demo {
		topics = append(topics, domain.TrendingTopic{
			Title:           item.title,
			Description:     item.description,
			Source:          domain.SourceYouTube,
			Category:        "video",
			PopularityScore: 90 - i*5,
			URL:             "https://youtube.com/results?search_query=" + url.QueryEscape(item.title),
			Keywords:        []string{item.title},
			Language:        "en",
			Region:          "US",
		})
	}

	return topics, nil
}
