package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"TrendPoster/internal/domain"
	"TrendPoster/internal/ports"
)

const redditBaseURL = "https://www.reddit.com"

// RedditHot queries the public hot-posts listing for a community.
// Reddit blocks anonymous clients, so a descriptive User-Agent is mandatory.
type RedditHot struct {
	client    *http.Client
	limiter   *rate.Limiter
	baseURL   string
	userAgent string
	subreddit string
	limit     int
}

var _ ports.TrendProvider = (*RedditHot)(nil)

type redditListing struct {
	Data struct {
		Children []struct {
			Data struct {
				Title     string `json:"title"`
				SelfText  string `json:"selftext"`
				Subreddit string `json:"subreddit"`
				Ups       int    `json:"ups"`
				Permalink string `json:"permalink"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// NewRedditHot wires the public listing client; subreddit defaults to "all",
// limit to 10.
func NewRedditHot(client *http.Client, baseURL, userAgent, subreddit string, limit int) *RedditHot {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if baseURL == "" {
		baseURL = redditBaseURL
	}
	if subreddit == "" {
		subreddit = "all"
	}
	if limit <= 0 {
		limit = 10
	}
	return &RedditHot{
		client: client,
		// Public JSON limit: 1 req / 2 seconds
		limiter:   rate.NewLimiter(rate.Every(2*time.Second), 1),
		baseURL:   baseURL,
		userAgent: userAgent,
		subreddit: subreddit,
		limit:     limit,
	}
}

// Source identifies the provider inside the registry.
func (r *RedditHot) Source() domain.Source {
	return domain.SourceReddit
}

// Fetch downloads the hot listing and normalizes each post.
// Popularity is the upvote count scaled down by 100, floored.
func (r *RedditHot) Fetch(ctx context.Context, region string) ([]domain.TrendingTopic, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	listingURL := fmt.Sprintf("%s/r/%s/hot.json?limit=%d", r.baseURL, r.subreddit, r.limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listingURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request listing: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reddit returned %s", resp.Status)
	}

	var listing redditListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("decode listing: %w", err)
	}

	topics := make([]domain.TrendingTopic, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		post := child.Data
		if post.Title == "" {
			continue
		}
		topics = append(topics, domain.TrendingTopic{
			Title:           post.Title,
			Description:     description(post.SelfText),
			Source:          domain.SourceReddit,
			Category:        post.Subreddit,
			PopularityScore: post.Ups / 100,
			URL:             "https://reddit.com" + post.Permalink,
			Keywords:        []string{post.Title},
			Language:        "en",
			Region:          "US",
		})
	}

	return topics, nil
}
