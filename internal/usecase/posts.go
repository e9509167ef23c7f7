package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"TrendPoster/internal/domain"
	"TrendPoster/internal/ports"
	"TrendPoster/internal/publish"
)

// PostService orchestrates draft generation, publishing, and scheduling.
type PostService struct {
	trendRepo   ports.TrendRepository
	postRepo    ports.PostRepository
	generator   ports.ContentGenerator
	dispatcher  *publish.Dispatcher
	credentials domain.Credentials
	logger      *slog.Logger
}

// PostServiceDeps wires all driven adapters into the service.
type PostServiceDeps struct {
	TrendRepo   ports.TrendRepository
	PostRepo    ports.PostRepository
	Generator   ports.ContentGenerator
	Dispatcher  *publish.Dispatcher
	Credentials domain.Credentials
	Logger      *slog.Logger
}

// NewPostService constructs the orchestration component.
func NewPostService(deps PostServiceDeps) *PostService {
	return &PostService{
		trendRepo:   deps.TrendRepo,
		postRepo:    deps.PostRepo,
		generator:   deps.Generator,
		dispatcher:  deps.Dispatcher,
		credentials: deps.Credentials,
		logger:      deps.Logger,
	}
}

// defaultGeneratePlatforms receive drafts when no platform is named.
var defaultGeneratePlatforms = []domain.Platform{
	domain.PlatformFacebook,
	domain.PlatformInstagram,
	domain.PlatformTwitter,
}

// Generate turns a stored trend into one draft per requested platform.
// An empty platform name means the default platform set.
func (s *PostService) Generate(ctx context.Context, trendID int64, platformName string, tone domain.Tone, language string) ([]domain.Post, error) {
	if s.trendRepo == nil || s.postRepo == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if tone == "" {
		tone = domain.ToneProfessional
	}
	if language == "" {
		language = "en"
	}

	trend, err := s.trendRepo.Get(ctx, trendID)
	if err != nil {
		return nil, fmt.Errorf("load trend %d: %w", trendID, err)
	}

	platforms := defaultGeneratePlatforms
	if platformName != "" {
		platform, err := domain.ParsePlatform(platformName)
		if err != nil {
			return nil, err
		}
		platforms = []domain.Platform{platform}
	}

	var posts []domain.Post
	for _, platform := range platforms {
		content, err := s.generator.GenerateContent(ctx, trend.Topic.Title, platform, tone, language)
		if err != nil {
			return nil, fmt.Errorf("generate content for %s: %w", platform, err)
		}

		var imageURL string
		if content.ImagePrompt != "" {
			imageURL, err = s.generator.GenerateImage(ctx, content.ImagePrompt)
			if err != nil {
				// Drafts remain usable without the image.
				s.warn("image generation failed", "platform", string(platform), "error", err)
			}
		}

		post, err := s.postRepo.Create(ctx, domain.Post{
			TrendID:     trend.ID,
			Platform:    platform,
			Content:     content.Content,
			Caption:     content.Caption,
			ImageURL:    imageURL,
			ImagePrompt: content.ImagePrompt,
			Tone:        tone,
			Hashtags:    content.Hashtags,
			Status:      domain.PostDraft,
		})
		if err != nil {
			return nil, fmt.Errorf("save draft for %s: %w", platform, err)
		}

		posts = append(posts, post)
	}

	return posts, nil
}

// Publish loads a stored post, dispatches it, and records the outcome.
// The PostResult always describes the attempt; the error covers storage only.
func (s *PostService) Publish(ctx context.Context, postID int64) (domain.PostResult, domain.Post, error) {
	if s.postRepo == nil {
		return domain.PostResult{}, domain.Post{}, fmt.Errorf("storage is not configured")
	}

	post, err := s.postRepo.Get(ctx, postID)
	if err != nil {
		return domain.PostResult{}, domain.Post{}, fmt.Errorf("load post %d: %w", postID, err)
	}

	result := s.dispatcher.Publish(ctx, domain.SocialMediaPost{
		Platform: string(post.Platform),
		Content:  post.Content,
		ImageURL: post.ImageURL,
	}, s.credentials)

	if err := s.postRepo.RecordResult(ctx, post.ID, result, time.Now()); err != nil {
		return result, post, fmt.Errorf("record result for post %d: %w", post.ID, err)
	}

	updated, err := s.postRepo.Get(ctx, post.ID)
	if err != nil {
		return result, post, nil
	}

	return result, updated, nil
}

// List returns stored posts filtered by platform and status.
func (s *PostService) List(ctx context.Context, platform, status string, limit int) ([]domain.Post, error) {
	if s.postRepo == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	return s.postRepo.List(ctx, platform, status, limit)
}

// Schedule marks a post for deferred publishing at the given time.
func (s *PostService) Schedule(ctx context.Context, postID int64, at time.Time) error {
	if s.postRepo == nil {
		return fmt.Errorf("storage is not configured")
	}
	if !at.After(time.Now()) {
		return fmt.Errorf("scheduled time must be in the future")
	}
	return s.postRepo.MarkScheduled(ctx, postID, at)
}

// PublishDue dispatches every scheduled post whose time has come. One post's
// failure is recorded and never blocks the rest of the batch.
func (s *PostService) PublishDue(ctx context.Context, now time.Time) {
	if s.postRepo == nil {
		return
	}

	due, err := s.postRepo.Due(ctx, now)
	if err != nil {
		s.warn("load due posts failed", "error", err)
		return
	}

	for _, post := range due {
		result := s.dispatcher.Publish(ctx, domain.SocialMediaPost{
			Platform: string(post.Platform),
			Content:  post.Content,
			ImageURL: post.ImageURL,
		}, s.credentials)

		if err := s.postRepo.RecordResult(ctx, post.ID, result, now); err != nil {
			s.warn("record scheduled result failed", "post", post.ID, "error", err)
		}
	}
}

// RefreshAnalytics pulls engagement counters for one published post.
func (s *PostService) RefreshAnalytics(ctx context.Context, postID int64) (domain.PostAnalytics, error) {
	if s.postRepo == nil {
		return domain.PostAnalytics{}, fmt.Errorf("storage is not configured")
	}

	post, err := s.postRepo.Get(ctx, postID)
	if err != nil {
		return domain.PostAnalytics{}, fmt.Errorf("load post %d: %w", postID, err)
	}
	if post.PlatformPostID == "" {
		return domain.PostAnalytics{}, fmt.Errorf("post %d has not been published", postID)
	}

	analytics, err := s.dispatcher.Analytics(ctx, string(post.Platform), post.PlatformPostID, s.credentials)
	if err != nil {
		return domain.PostAnalytics{}, err
	}

	if err := s.postRepo.UpdateAnalytics(ctx, post.ID, analytics); err != nil {
		return analytics, fmt.Errorf("store analytics for post %d: %w", post.ID, err)
	}

	return analytics, nil
}

// ValidateCredentials runs the structural per-platform credential check.
func (s *PostService) ValidateCredentials(platformName string) domain.CredentialCheck {
	return s.dispatcher.ValidateCredentials(platformName, s.credentials)
}

// Stats summarizes stored records for the dashboard.
type Stats struct {
	TotalTrends     int `json:"totalTrends"`
	TotalPosts      int `json:"totalPosts"`
	ScheduledPosts  int `json:"scheduledPosts"`
	TotalEngagement int `json:"totalEngagement"`
}

// Stats aggregates counters over trends and posts.
func (s *PostService) Stats(ctx context.Context) (Stats, error) {
	if s.trendRepo == nil || s.postRepo == nil {
		return Stats{}, fmt.Errorf("storage is not configured")
	}

	var stats Stats
	var err error
	if stats.TotalTrends, err = s.trendRepo.Count(ctx); err != nil {
		return Stats{}, fmt.Errorf("count trends: %w", err)
	}
	if stats.TotalPosts, err = s.postRepo.Count(ctx, ""); err != nil {
		return Stats{}, fmt.Errorf("count posts: %w", err)
	}
	if stats.ScheduledPosts, err = s.postRepo.Count(ctx, string(domain.PostScheduled)); err != nil {
		return Stats{}, fmt.Errorf("count scheduled: %w", err)
	}
	if stats.TotalEngagement, err = s.postRepo.TotalEngagement(ctx); err != nil {
		return Stats{}, fmt.Errorf("sum engagement: %w", err)
	}

	return stats, nil
}

func (s *PostService) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
