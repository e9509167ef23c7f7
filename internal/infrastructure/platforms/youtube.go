package platforms

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"TrendPoster/internal/domain"
)

const youtubeAPIURL = "https://www.googleapis.com/youtube/v3"

// YouTube publishes community posts via the Data API. Community posts need
// channel-level permissions, so the call may be rejected for ordinary keys.
type YouTube struct {
	baseURL string
	client  *http.Client
}

// NewYouTube wires the Data API adapter.
func NewYouTube(client *http.Client, baseURL string) *YouTube {
	if client == nil {
		client = newHTTPClient()
	}
	if baseURL == "" {
		baseURL = youtubeAPIURL
	}
	return &YouTube{baseURL: baseURL, client: client}
}

// Publish creates a community post; the key check runs before any network call.
func (y *YouTube) Publish(ctx context.Context, content, imageURL string, cred domain.KeyCredential) domain.PostResult {
	if !cred.Configured() {
		return domain.PublishFailed("YouTube API key not configured")
	}

	payload := map[string]any{
		"snippet": map[string]string{"text": content},
	}
	var reply idResponse
	endpoint := fmt.Sprintf("%s/communityPosts?key=%s", y.baseURL, url.QueryEscape(cred.APIKey))
	if err := postJSON(ctx, y.client, endpoint, "", payload, &reply); err != nil {
		return domain.PublishFailed(err.Error())
	}

	return domain.PublishOK(reply.ID)
}

// Analytics maps video statistics into the fixed counters.
func (y *YouTube) Analytics(ctx context.Context, platformPostID string, cred domain.KeyCredential) (domain.PostAnalytics, error) {
	if !cred.Configured() {
		return demoAnalytics(platformPostID), nil
	}

	var reply struct {
		Items []struct {
			Statistics struct {
				LikeCount    int `json:"likeCount,string"`
				CommentCount int `json:"commentCount,string"`
				ViewCount    int `json:"viewCount,string"`
			} `json:"statistics"`
		} `json:"items"`
	}

	endpoint := fmt.Sprintf("%s/videos?part=statistics&id=%s&key=%s",
		y.baseURL, url.QueryEscape(platformPostID), url.QueryEscape(cred.APIKey))
	if err := getJSON(ctx, y.client, endpoint, "", &reply); err != nil {
		return domain.PostAnalytics{}, fmt.Errorf("youtube statistics: %w", err)
	}
	if len(reply.Items) == 0 {
		return domain.PostAnalytics{}, fmt.Errorf("youtube statistics: no item for %s", platformPostID)
	}

	stats := reply.Items[0].Statistics
	return domain.PostAnalytics{
		Likes:    stats.LikeCount,
		Comments: stats.CommentCount,
		Views:    stats.ViewCount,
	}, nil
}

// Validate checks credential structure only; no network call.
func (y *YouTube) Validate(cred domain.KeyCredential) domain.CredentialCheck {
	if !cred.Configured() {
		return domain.CredentialCheck{Valid: false, Error: "API key required"}
	}
	return domain.CredentialCheck{Valid: true, Username: "demo_user"}
}
