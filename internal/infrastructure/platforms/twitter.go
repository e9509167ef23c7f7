package platforms

import (
	"context"
	"fmt"
	"net/http"

	"TrendPoster/internal/domain"
)

const twitterAPIURL = "https://api.twitter.com"

// Twitter publishes tweets through the v2 create-tweet endpoint using the
// user-context access token. All four credential fields must be present
// before anything is sent.
type Twitter struct {
	baseURL string
	client  *http.Client
}

// NewTwitter wires the v2 API adapter.
func NewTwitter(client *http.Client, baseURL string) *Twitter {
	if client == nil {
		client = newHTTPClient()
	}
	if baseURL == "" {
		baseURL = twitterAPIURL
	}
	return &Twitter{baseURL: baseURL, client: client}
}

// Publish creates a tweet; the credential check runs before any network call.
func (t *Twitter) Publish(ctx context.Context, content, imageURL string, cred domain.TwitterCredential) domain.PostResult {
	if !cred.Configured() {
		return domain.PublishFailed("Twitter credentials not configured")
	}

	var reply struct {
		Data idResponse `json:"data"`
	}
	payload := map[string]string{"text": content}
	if err := postJSON(ctx, t.client, t.baseURL+"/2/tweets", cred.AccessToken, payload, &reply); err != nil {
		return domain.PublishFailed(err.Error())
	}

	return domain.PublishOK(reply.Data.ID)
}

// Analytics maps the tweet's public metrics into the fixed counters.
func (t *Twitter) Analytics(ctx context.Context, platformPostID string, cred domain.TwitterCredential) (domain.PostAnalytics, error) {
	if !cred.Configured() {
		return demoAnalytics(platformPostID), nil
	}

	var reply struct {
		Data struct {
			PublicMetrics struct {
				LikeCount    int `json:"like_count"`
				ReplyCount   int `json:"reply_count"`
				RetweetCount int `json:"retweet_count"`
				ViewCount    int `json:"impression_count"`
			} `json:"public_metrics"`
		} `json:"data"`
	}

	url := fmt.Sprintf("%s/2/tweets/%s?tweet.fields=public_metrics", t.baseURL, platformPostID)
	if err := getJSON(ctx, t.client, url, cred.AccessToken, &reply); err != nil {
		return domain.PostAnalytics{}, fmt.Errorf("twitter metrics: %w", err)
	}

	metrics := reply.Data.PublicMetrics
	return domain.PostAnalytics{
		Likes:    metrics.LikeCount,
		Comments: metrics.ReplyCount,
		Shares:   metrics.RetweetCount,
		Views:    metrics.ViewCount,
	}, nil
}

// Validate checks that all four credential fields are present; no network call.
func (t *Twitter) Validate(cred domain.TwitterCredential) domain.CredentialCheck {
	if !cred.Configured() {
		return domain.CredentialCheck{Valid: false, Error: "All Twitter credentials required"}
	}
	return domain.CredentialCheck{Valid: true, Username: "demo_user"}
}
