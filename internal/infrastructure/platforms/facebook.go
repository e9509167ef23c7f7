package platforms

import (
	"context"
	"fmt"
	"net/http"

	"TrendPoster/internal/domain"
)

const facebookGraphURL = "https://graph.facebook.com/v18.0"

// Facebook publishes page feed posts through the Graph API.
type Facebook struct {
	baseURL string
	client  *http.Client
}

// NewFacebook wires the Graph API adapter; baseURL defaults to the live endpoint.
func NewFacebook(client *http.Client, baseURL string) *Facebook {
	if client == nil {
		client = newHTTPClient()
	}
	if baseURL == "" {
		baseURL = facebookGraphURL
	}
	return &Facebook{baseURL: baseURL, client: client}
}

// Publish posts to the feed. The token check runs before any network call.
func (f *Facebook) Publish(ctx context.Context, content, imageURL string, cred domain.TokenCredential) domain.PostResult {
	if !cred.Configured() {
		return domain.PublishFailed("Facebook access token not configured")
	}

	payload := map[string]string{
		"message":      content,
		"access_token": cred.AccessToken,
	}
	if imageURL != "" {
		payload["picture"] = imageURL
	}

	var reply idResponse
	if err := postJSON(ctx, f.client, f.baseURL+"/me/feed", "", payload, &reply); err != nil {
		return domain.PublishFailed(err.Error())
	}

	return domain.PublishOK(reply.ID)
}

// Analytics maps the post's Graph insight fields into the fixed counters.
func (f *Facebook) Analytics(ctx context.Context, platformPostID string, cred domain.TokenCredential) (domain.PostAnalytics, error) {
	if !cred.Configured() {
		return demoAnalytics(platformPostID), nil
	}

	var reply struct {
		Likes struct {
			Summary struct {
				TotalCount int `json:"total_count"`
			} `json:"summary"`
		} `json:"likes"`
		Comments struct {
			Summary struct {
				TotalCount int `json:"total_count"`
			} `json:"summary"`
		} `json:"comments"`
		Shares struct {
			Count int `json:"count"`
		} `json:"shares"`
	}

	url := fmt.Sprintf("%s/%s?fields=likes.summary(true),comments.summary(true),shares&access_token=%s",
		f.baseURL, platformPostID, cred.AccessToken)
	if err := getJSON(ctx, f.client, url, "", &reply); err != nil {
		return domain.PostAnalytics{}, fmt.Errorf("facebook insights: %w", err)
	}

	return domain.PostAnalytics{
		Likes:    reply.Likes.Summary.TotalCount,
		Comments: reply.Comments.Summary.TotalCount,
		Shares:   reply.Shares.Count,
	}, nil
}

// Validate checks credential structure only; no network call.
func (f *Facebook) Validate(cred domain.TokenCredential) domain.CredentialCheck {
	if !cred.Configured() {
		return domain.CredentialCheck{Valid: false, Error: "Access token required"}
	}
	return domain.CredentialCheck{Valid: true, Username: "demo_user"}
}
