package platforms

import (
	"context"
	"fmt"
	"net/http"

	"TrendPoster/internal/domain"
)

// Instagram publishes through the Graph API's two-step container flow:
// create a media container, then publish it.
type Instagram struct {
	baseURL string
	client  *http.Client
}

// NewInstagram wires the Graph API adapter.
func NewInstagram(client *http.Client, baseURL string) *Instagram {
	if client == nil {
		client = newHTTPClient()
	}
	if baseURL == "" {
		baseURL = facebookGraphURL
	}
	return &Instagram{baseURL: baseURL, client: client}
}

// Publish requires an image; the credential and image checks run before any
// network call, in that order.
func (i *Instagram) Publish(ctx context.Context, content, imageURL string, cred domain.TokenCredential) domain.PostResult {
	if !cred.Configured() {
		return domain.PublishFailed("Instagram access token not configured")
	}
	if imageURL == "" {
		return domain.PublishFailed("Instagram requires an image")
	}

	var container idResponse
	create := map[string]string{
		"image_url":    imageURL,
		"caption":      content,
		"access_token": cred.AccessToken,
	}
	if err := postJSON(ctx, i.client, i.baseURL+"/me/media", "", create, &container); err != nil {
		return domain.PublishFailed(err.Error())
	}

	var published idResponse
	publish := map[string]string{
		"creation_id":  container.ID,
		"access_token": cred.AccessToken,
	}
	if err := postJSON(ctx, i.client, i.baseURL+"/me/media_publish", "", publish, &published); err != nil {
		return domain.PublishFailed(err.Error())
	}

	return domain.PublishOK(published.ID)
}

// Analytics maps media insight metrics into the fixed counters.
func (i *Instagram) Analytics(ctx context.Context, platformPostID string, cred domain.TokenCredential) (domain.PostAnalytics, error) {
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

	url := fmt.Sprintf("%s/%s/insights?metric=likes,comments,shares,impressions&access_token=%s",
		i.baseURL, platformPostID, cred.AccessToken)
	if err := getJSON(ctx, i.client, url, "", &reply); err != nil {
		return domain.PostAnalytics{}, fmt.Errorf("instagram insights: %w", err)
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
		case "comments":
			analytics.Comments = value
		case "shares":
			analytics.Shares = value
		case "impressions":
			analytics.Views = value
		}
	}

	return analytics, nil
}

// Validate checks credential structure only; no network call.
func (i *Instagram) Validate(cred domain.TokenCredential) domain.CredentialCheck {
	if !cred.Configured() {
		return domain.CredentialCheck{Valid: false, Error: "Access token required"}
	}
	return domain.CredentialCheck{Valid: true, Username: "demo_user"}
}
