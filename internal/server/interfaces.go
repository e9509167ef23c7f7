package server

import (
	"context"
	"time"

	"TrendPoster/internal/domain"
	"TrendPoster/internal/usecase"
)

// TrendService covers the trend operations the API exposes.
type TrendService interface {
	Refresh(ctx context.Context, sources []string, region string) ([]domain.Trend, error)
	List(ctx context.Context, source, status string) ([]domain.Trend, error)
	UpdateStatus(ctx context.Context, id int64, status domain.TrendStatus) error
	Delete(ctx context.Context, id int64) error
}

// PostService covers the post operations the API exposes.
type PostService interface {
	Generate(ctx context.Context, trendID int64, platform string, tone domain.Tone, language string) ([]domain.Post, error)
	Publish(ctx context.Context, postID int64) (domain.PostResult, domain.Post, error)
	List(ctx context.Context, platform, status string, limit int) ([]domain.Post, error)
	Schedule(ctx context.Context, postID int64, at time.Time) error
	RefreshAnalytics(ctx context.Context, postID int64) (domain.PostAnalytics, error)
	ValidateCredentials(platform string) domain.CredentialCheck
	Stats(ctx context.Context) (usecase.Stats, error)
}
