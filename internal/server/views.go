package server

import (
	"time"

	"TrendPoster/internal/domain"
)

// trendView is the JSON shape the dashboard consumes.
type trendView struct {
	ID              int64    `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description,omitempty"`
	Source          string   `json:"source"`
	Category        string   `json:"category,omitempty"`
	PopularityScore int      `json:"popularityScore"`
	URL             string   `json:"url,omitempty"`
	Keywords        []string `json:"keywords"`
	Language        string   `json:"language"`
	Region          string   `json:"region"`
	Status          string   `json:"status"`
	CreatedAt       string   `json:"createdAt"`
}

func trendViews(trends []domain.Trend) []trendView {
	views := make([]trendView, 0, len(trends))
	for _, trend := range trends {
		views = append(views, trendView{
			ID:              trend.ID,
			Title:           trend.Topic.Title,
			Description:     trend.Topic.Description,
			Source:          string(trend.Topic.Source),
			Category:        trend.Topic.Category,
			PopularityScore: trend.Topic.PopularityScore,
			URL:             trend.Topic.URL,
			Keywords:        trend.Topic.Keywords,
			Language:        trend.Topic.Language,
			Region:          trend.Topic.Region,
			Status:          string(trend.Status),
			CreatedAt:       trend.CreatedAt.Format(time.RFC3339),
		})
	}
	return views
}

type postViewModel struct {
	ID             int64    `json:"id"`
	TrendID        int64    `json:"trendId"`
	Platform       string   `json:"platform"`
	Content        string   `json:"content"`
	Caption        string   `json:"caption,omitempty"`
	ImageURL       string   `json:"imageUrl,omitempty"`
	ImagePrompt    string   `json:"imagePrompt,omitempty"`
	Tone           string   `json:"tone"`
	Hashtags       []string `json:"hashtags"`
	Status         string   `json:"status"`
	ScheduledFor   string   `json:"scheduledFor,omitempty"`
	PublishedAt    string   `json:"publishedAt,omitempty"`
	PlatformPostID string   `json:"platformPostId,omitempty"`
	ErrorMessage   string   `json:"errorMessage,omitempty"`
	Likes          int      `json:"likes"`
	Comments       int      `json:"comments"`
	Shares         int      `json:"shares"`
	Views          int      `json:"views"`
	CreatedAt      string   `json:"createdAt"`
}

func postView(post domain.Post) postViewModel {
	view := postViewModel{
		ID:             post.ID,
		TrendID:        post.TrendID,
		Platform:       string(post.Platform),
		Content:        post.Content,
		Caption:        post.Caption,
		ImageURL:       post.ImageURL,
		ImagePrompt:    post.ImagePrompt,
		Tone:           string(post.Tone),
		Hashtags:       post.Hashtags,
		Status:         string(post.Status),
		PlatformPostID: post.PlatformPostID,
		ErrorMessage:   post.ErrorMessage,
		Likes:          post.Likes,
		Comments:       post.Comments,
		Shares:         post.Shares,
		Views:          post.Views,
		CreatedAt:      post.CreatedAt.Format(time.RFC3339),
	}
	if post.ScheduledFor != nil {
		view.ScheduledFor = post.ScheduledFor.Format(time.RFC3339)
	}
	if post.PublishedAt != nil {
		view.PublishedAt = post.PublishedAt.Format(time.RFC3339)
	}
	return view
}

func postViews(posts []domain.Post) []postViewModel {
	views := make([]postViewModel, 0, len(posts))
	for _, post := range posts {
		views = append(views, postView(post))
	}
	return views
}
