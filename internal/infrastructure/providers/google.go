package providers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"TrendPoster/internal/domain"
	"TrendPoster/internal/ports"
)

const (
	googleTrendsURL = "https://trends.google.com/trending/rss"
	googleItemCap   = 10
)

// The feed is not guaranteed to be well-formed XML, so items are carved out
// textually; a malformed item is skipped without erroring the whole feed.
var (
	itemExpr  = regexp.MustCompile(`(?s)<item>.*?</item>`)
	titleExpr = regexp.MustCompile(`(?s)<title><!\[CDATA\[(.*?)\]\]></title>`)
	linkExpr  = regexp.MustCompile(`(?s)<link>(.*?)</link>`)
	descExpr  = regexp.MustCompile(`(?s)<description><!\[CDATA\[(.*?)\]\]></description>`)
)

// GoogleTrends parses the region-scoped RSS feed of trending search terms.
type GoogleTrends struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

var _ ports.TrendProvider = (*GoogleTrends)(nil)

// NewGoogleTrends wires an HTTP client; baseURL defaults to the public feed.
func NewGoogleTrends(client *http.Client, baseURL, userAgent string) *GoogleTrends {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if baseURL == "" {
		baseURL = googleTrendsURL
	}
	return &GoogleTrends{client: client, baseURL: baseURL, userAgent: userAgent}
}

// Source identifies the provider inside the registry.
func (g *GoogleTrends) Source() domain.Source {
	return domain.SourceGoogle
}

// Fetch downloads the feed for the region and extracts up to ten items.
// Popularity is synthesized from feed position (100, 95, 90, ...).
func (g *GoogleTrends) Fetch(ctx context.Context, region string) ([]domain.TrendingTopic, error) {
	feedURL := fmt.Sprintf("%s?geo=%s", g.baseURL, url.QueryEscape(region))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if g.userAgent != "" {
		req.Header.Set("User-Agent", g.userAgent)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google trends returned %s", resp.Status)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read feed: %w", err)
	}

	return parseGoogleFeed(string(raw), region), nil
}

func parseGoogleFeed(feed, region string) []domain.TrendingTopic {
	items := itemExpr.FindAllString(feed, -1)
	if len(items) > googleItemCap {
		items = items[:googleItemCap]
	}

	topics := make([]domain.TrendingTopic, 0, len(items))
	for _, item := range items {
		titleMatch := titleExpr.FindStringSubmatch(item)
		if titleMatch == nil || titleMatch[1] == "" {
			continue
		}

		var link string
		if m := linkExpr.FindStringSubmatch(item); m != nil {
			link = m[1]
		}
		var desc string
		if m := descExpr.FindStringSubmatch(item); m != nil {
			desc = description(m[1])
		}

		topics = append(topics, domain.TrendingTopic{
			Title:           titleMatch[1],
			Description:     desc,
			Source:          domain.SourceGoogle,
			Category:        "trending",
			PopularityScore: 100 - len(topics)*5,
			URL:             link,
			Keywords:        []string{titleMatch[1]},
			Language:        "en",
			Region:          region,
		})
	}

	return topics
}
