package platforms

import (
	"context"
	"fmt"
	"net/http"

	"TrendPoster/internal/domain"
)

const threadsAPIURL = "https://graph.threads.net/v1.0"

// Threads publishes through the Threads API's container flow, which mirrors
// the Instagram one: create a container, then publish it.
type Threads struct {
	baseURL string
	client  *http.Client
}

// NewThreads wires the Threads API adapter.
func NewThreads(client *http.Client, baseURL string) *Threads {
	if client == nil {
		client = newHTTPClient()
	}
	if baseURL == "" {
		baseURL = threadsAPIURL
	}
	return &Threads{baseURL: baseURL, client: client}
}

// Publish posts a text (or image) thread; the token check runs first.
func (t *Threads) Publish(ctx context.Context, content, imageURL string, cred domain.TokenCredential) domain.PostResult {
	if !cred.Configured() {
		return domain.PublishFailed("Threads access token not configured")
	}

	create := map[string]string{
		"media_type": "TEXT",
		"text":       content,
	}
	if imageURL != "" {
		create["media_type"] = "IMAGE"
		create["image_url"] = imageURL
	}

	var container idResponse
	if err := postJSON(ctx, t.client, t.baseURL+"/me/threads", cred.AccessToken, create, &container); err != nil {
		return domain.PublishFailed(err.Error())
	}

	var published idResponse
	publish := map[string]string{"creation_id": container.ID}
	if err := postJSON(ctx, t.client, t.baseURL+"/me/threads_publish", cred.AccessToken, publish, &published); err != nil {
		return domain.PublishFailed(err.Error())
	}

	return domain.PublishOK(published.ID)
}

// Analytics maps thread insight metrics into the fixed counters.
func (t *Threads) Analytics(ctx context.Context, platformPostID string, cred domain.TokenCredential) (domain.PostAnalytics, error) {
	if !cred.Configured() {
		return demoAnalytics(platformPostID), nil
	}

	var reply struct {
		Data []struct {
			Name   string `json:"name"`
			Values []struct {
				Value int `json:"value"`
			} `json:"values"`
		} `json:"data"`
	}

	url := fmt.Sprintf("%s/%s/insights?metric=likes,replies,reposts,views", t.baseURL, platformPostID)
	if err := getJSON(ctx, t.client, url, cred.AccessToken, &reply); err != nil {
		return domain.PostAnalytics{}, fmt.Errorf("threads insights: %w", err)
	}

	var analytics domain.PostAnalytics
	for _, metric := range reply.Data {
		if len(metric.Values) == 0 {
			continue
		}
		value := metric.Values[0].Value
		switch metric.Name {
		case "likes":
			analytics.Likes = value
		case "replies":
			analytics.Comments = value
		case "reposts":
			analytics.Shares = value
		case "views":
			analytics.Views = value
		}
	}

	return analytics, nil
}

// Validate checks credential structure only; no network call.
func (t *Threads) Validate(cred domain.TokenCredential) domain.CredentialCheck {
	if !cred.Configured() {
		return domain.CredentialCheck{Valid: false, Error: "Access token required"}
	}
	return domain.CredentialCheck{Valid: true, Username: "demo_user"}
}
