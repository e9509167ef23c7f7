package platforms

import (
	"context"
	"fmt"
	"net/http"

	"TrendPoster/internal/domain"
)

const pinterestAPIURL = "https://api.pinterest.com/v5"

// Pinterest publishes pins through the v5 API. Pins always carry an image.
type Pinterest struct {
	baseURL string
	client  *http.Client
}

// NewPinterest wires the v5 API adapter.
func NewPinterest(client *http.Client, baseURL string) *Pinterest {
	if client == nil {
		client = newHTTPClient()
	}
	if baseURL == "" {
		baseURL = pinterestAPIURL
	}
	return &Pinterest{baseURL: baseURL, client: client}
}

// Publish creates a pin; the credential and image checks run before any
// network call, in that order.
func (p *Pinterest) Publish(ctx context.Context, content, imageURL string, cred domain.TokenCredential) domain.PostResult {
	if !cred.Configured() {
		return domain.PublishFailed("Pinterest access token not configured")
	}
	if imageURL == "" {
		return domain.PublishFailed("Pinterest requires an image")
	}

	payload := map[string]any{
		"description": content,
		"media_source": map[string]string{
			"source_type": "image_url",
			"url":         imageURL,
		},
	}
	var reply idResponse
	if err := postJSON(ctx, p.client, p.baseURL+"/pins", cred.AccessToken, payload, &reply); err != nil {
		return domain.PublishFailed(err.Error())
	}

	return domain.PublishOK(reply.ID)
}

// Analytics maps pin analytics into the fixed counters.
func (p *Pinterest) Analytics(ctx context.Context, platformPostID string, cred domain.TokenCredential) (domain.PostAnalytics, error) {
	if !cred.Configured() {
		return demoAnalytics(platformPostID), nil
	}

	var reply struct {
		All struct {
			SummaryMetrics struct {
				Saves      int `json:"SAVE"`
				PinClicks  int `json:"PIN_CLICK"`
				Impression int `json:"IMPRESSION"`
			} `json:"summary_metrics"`
		} `json:"all"`
	}

	url := fmt.Sprintf("%s/pins/%s/analytics", p.baseURL, platformPostID)
	if err := getJSON(ctx, p.client, url, cred.AccessToken, &reply); err != nil {
		return domain.PostAnalytics{}, fmt.Errorf("pinterest analytics: %w", err)
	}

	metrics := reply.All.SummaryMetrics
	return domain.PostAnalytics{
		Likes:  metrics.Saves,
		Shares: metrics.PinClicks,
		Views:  metrics.Impression,
	}, nil
}

// Validate checks credential structure only; no network call.
func (p *Pinterest) Validate(cred domain.TokenCredential) domain.CredentialCheck {
	if !cred.Configured() {
		return domain.CredentialCheck{Valid: false, Error: "Access token required"}
	}
	return domain.CredentialCheck{Valid: true, Username: "demo_user"}
}
