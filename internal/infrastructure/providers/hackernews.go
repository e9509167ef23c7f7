package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"TrendPoster/internal/domain"
	"TrendPoster/internal/ports"
)

const (
	hackerNewsBaseURL  = "https://hacker-news.firebaseio.com/v0"
	hackerNewsStoryCap = 10
)

// HackerNews queries the top-stories index and then each story's detail.
// A single story failing to load is skipped without aborting the batch.
type HackerNews struct {
	client  *http.Client
	baseURL string
	limit   int
}

var _ ports.TrendProvider = (*HackerNews)(nil)

type hackerNewsStory struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	Score int    `json:"score"`
	URL   string `json:"url"`
}

// NewHackerNews wires an HTTP client; limit defaults to 10 stories.
func NewHackerNews(client *http.Client, baseURL string, limit int) *HackerNews {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if baseURL == "" {
		baseURL = hackerNewsBaseURL
	}
	if limit <= 0 {
		limit = hackerNewsStoryCap
	}
	return &HackerNews{client: client, baseURL: baseURL, limit: limit}
}

// Source identifies the provider inside the registry.
func (h *HackerNews) Source() domain.Source {
	return domain.SourceHackerNews
}

// Fetch loads the top-story ids, then each story detail up to the cap.
// Popularity is the story's native score, zero when absent.
func (h *HackerNews) Fetch(ctx context.Context, region string) ([]domain.TrendingTopic, error) {
	var ids []int64
	if err := h.getJSON(ctx, h.baseURL+"/topstories.json", &ids); err != nil {
		return nil, fmt.Errorf("top stories: %w", err)
	}
	if len(ids) > h.limit {
		ids = ids[:h.limit]
	}

	topics := make([]domain.TrendingTopic, 0, len(ids))
	for _, id := range ids {
		var story hackerNewsStory
		if err := h.getJSON(ctx, fmt.Sprintf("%s/item/%d.json", h.baseURL, id), &story); err != nil {
			continue
		}
		if story.Title == "" {
			continue
		}

		storyURL := story.URL
		if storyURL == "" {
			storyURL = fmt.Sprintf("https://news.ycombinator.com/item?id=%d", id)
		}

		topics = append(topics, domain.TrendingTopic{
			Title:           story.Title,
			Description:     description(story.Text),
			Source:          domain.SourceHackerNews,
			Category:        "tech",
			PopularityScore: story.Score,
			URL:             storyURL,
			Keywords:        []string{story.Title},
			Language:        "en",
			Region:          "US",
		})
	}

	return topics, nil
}

func (h *HackerNews) getJSON(ctx context.Context, rawURL string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
