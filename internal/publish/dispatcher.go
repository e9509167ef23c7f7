// Package publish routes normalized posts to platform-specific adapters.
package publish

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"TrendPoster/internal/domain"
	"TrendPoster/internal/infrastructure/platforms"
)

// Dispatcher routes a post to the adapter matching its platform, enforcing
// the closed platform set. Nothing here raises: every outcome is a value.
type Dispatcher struct {
	facebook  *platforms.Facebook
	instagram *platforms.Instagram
	twitter   *platforms.Twitter
	threads   *platforms.Threads
	youtube   *platforms.YouTube
	pinterest *platforms.Pinterest
	logger    *slog.Logger
}

// Options overrides adapter endpoints; zero values select the live APIs.
type Options struct {
	Client       *http.Client
	FacebookURL  string
	InstagramURL string
	TwitterURL   string
	ThreadsURL   string
	YouTubeURL   string
	PinterestURL string
}

// NewDispatcher builds the fixed adapter set.
func NewDispatcher(opts Options, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		facebook:  platforms.NewFacebook(opts.Client, opts.FacebookURL),
		instagram: platforms.NewInstagram(opts.Client, opts.InstagramURL),
		twitter:   platforms.NewTwitter(opts.Client, opts.TwitterURL),
		threads:   platforms.NewThreads(opts.Client, opts.ThreadsURL),
		youtube:   platforms.NewYouTube(opts.Client, opts.YouTubeURL),
		pinterest: platforms.NewPinterest(opts.Client, opts.PinterestURL),
		logger:    logger,
	}
}

// Publish dispatches on the post's platform name, matched case-insensitively;
// "x" routes to the twitter adapter. An unrecognized platform yields a failed
// result and no network call.
func (d *Dispatcher) Publish(ctx context.Context, post domain.SocialMediaPost, creds domain.Credentials) domain.PostResult {
	platform, err := domain.ParsePlatform(post.Platform)
	if err != nil {
		return domain.PublishFailed(fmt.Sprintf("Platform %s not supported", post.Platform))
	}

	var result domain.PostResult
	switch platform {
	case domain.PlatformFacebook:
		result = d.facebook.Publish(ctx, post.Content, post.ImageURL, creds.Facebook)
	case domain.PlatformInstagram:
		result = d.instagram.Publish(ctx, post.Content, post.ImageURL, creds.Instagram)
	case domain.PlatformTwitter:
		result = d.twitter.Publish(ctx, post.Content, post.ImageURL, creds.Twitter)
	case domain.PlatformThreads:
		result = d.threads.Publish(ctx, post.Content, post.ImageURL, creds.Threads)
	case domain.PlatformYouTube:
		result = d.youtube.Publish(ctx, post.Content, post.ImageURL, creds.YouTube)
	case domain.PlatformPinterest:
		result = d.pinterest.Publish(ctx, post.Content, post.ImageURL, creds.Pinterest)
	}

	if !result.Success {
		d.warn("publish failed", "platform", string(platform), "error", result.Error)
	}
	return result
}

// Analytics fetches engagement counters for a previously published post.
func (d *Dispatcher) Analytics(ctx context.Context, platformName, platformPostID string, creds domain.Credentials) (domain.PostAnalytics, error) {
	platform, err := domain.ParsePlatform(platformName)
	if err != nil {
		return domain.PostAnalytics{}, err
	}

	switch platform {
	case domain.PlatformFacebook:
		return d.facebook.Analytics(ctx, platformPostID, creds.Facebook)
	case domain.PlatformInstagram:
		return d.instagram.Analytics(ctx, platformPostID, creds.Instagram)
	case domain.PlatformTwitter:
		return d.twitter.Analytics(ctx, platformPostID, creds.Twitter)
	case domain.PlatformThreads:
		return d.threads.Analytics(ctx, platformPostID, creds.Threads)
	case domain.PlatformYouTube:
		return d.youtube.Analytics(ctx, platformPostID, creds.YouTube)
	case domain.PlatformPinterest:
		return d.pinterest.Analytics(ctx, platformPostID, creds.Pinterest)
	}

	return domain.PostAnalytics{}, fmt.Errorf("platform %s not supported", platformName)
}

// ValidateCredentials performs the structural per-platform check; it never
// calls the platform.
func (d *Dispatcher) ValidateCredentials(platformName string, creds domain.Credentials) domain.CredentialCheck {
	platform, err := domain.ParsePlatform(platformName)
	if err != nil {
		return domain.CredentialCheck{Valid: false, Error: "Platform not supported"}
	}

	switch platform {
	case domain.PlatformFacebook:
		return d.facebook.Validate(creds.Facebook)
	case domain.PlatformInstagram:
		return d.instagram.Validate(creds.Instagram)
	case domain.PlatformTwitter:
		return d.twitter.Validate(creds.Twitter)
	case domain.PlatformThreads:
		return d.threads.Validate(creds.Threads)
	case domain.PlatformYouTube:
		return d.youtube.Validate(creds.YouTube)
	case domain.PlatformPinterest:
		return d.pinterest.Validate(creds.Pinterest)
	}

	return domain.CredentialCheck{Valid: false, Error: "Platform not supported"}
}

func (d *Dispatcher) warn(msg string, args ...any) {
	if d.logger != nil {
		d.logger.Warn(msg, args...)
	}
}
