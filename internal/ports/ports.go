package ports

import (
	"context"
	"time"

	"TrendPoster/internal/domain"
)

// TrendProvider fetches and normalizes trending topics from one upstream source.
type TrendProvider interface {
	Source() domain.Source
	Fetch(ctx context.Context, region string) ([]domain.TrendingTopic, error)
}

// TrendRepository persists aggregated trends for review and history.
type TrendRepository interface {
	Save(ctx context.Context, topic domain.TrendingTopic) (domain.Trend, error)
	List(ctx context.Context, source, status string, limit int) ([]domain.Trend, error)
	Get(ctx context.Context, id int64) (domain.Trend, error)
	UpdateStatus(ctx context.Context, id int64, status domain.TrendStatus) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

// PostRepository persists generated drafts and their publish outcomes.
type PostRepository interface {
	Create(ctx context.Context, post domain.Post) (domain.Post, error)
	List(ctx context.Context, platform, status string, limit int) ([]domain.Post, error)
	Get(ctx context.Context, id int64) (domain.Post, error)
	RecordResult(ctx context.Context, id int64, result domain.PostResult, publishedAt time.Time) error
	MarkScheduled(ctx context.Context, id int64, at time.Time) error
	Due(ctx context.Context, now time.Time) ([]domain.Post, error)
	UpdateAnalytics(ctx context.Context, id int64, analytics domain.PostAnalytics) error
	Count(ctx context.Context, status string) (int, error)
	TotalEngagement(ctx context.Context) (int, error)
}

// ContentGenerator turns an approved trend into platform-shaped draft content.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, trend string, platform domain.Platform, tone domain.Tone, language string) (domain.GeneratedContent, error)
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// Scheduler controls when deferred work executes.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
