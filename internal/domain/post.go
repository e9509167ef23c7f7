package domain

import (
	"fmt"
	"strings"
	"time"
)

// Platform identifies a social-media publishing target.
type Platform string

const (
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformTwitter   Platform = "twitter"
	PlatformThreads   Platform = "threads"
	PlatformYouTube   Platform = "youtube"
	PlatformPinterest Platform = "pinterest"
)

// ParsePlatform resolves a case-insensitive platform name; "x" is an alias for twitter.
func ParsePlatform(name string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "facebook":
		return PlatformFacebook, nil
	case "instagram":
		return PlatformInstagram, nil
	case "twitter", "x":
		return PlatformTwitter, nil
	case "threads":
		return PlatformThreads, nil
	case "youtube":
		return PlatformYouTube, nil
	case "pinterest":
		return PlatformPinterest, nil
	}
	return "", fmt.Errorf("platform %s not supported", name)
}

// SocialMediaPost is the dispatcher's input: approved content bound for one platform.
type SocialMediaPost struct {
	Platform     string
	Content      string
	ImageURL     string
	ScheduledFor *time.Time
}

// PostResult reports the outcome of a single publish attempt.
// Success carries a platform-assigned id and no error; failure carries
// an error message and no id.
type PostResult struct {
	Success        bool   `json:"success"`
	PlatformPostID string `json:"platformPostId,omitempty"`
	Error          string `json:"error,omitempty"`
}

// PublishOK builds a successful result with the platform-assigned id.
func PublishOK(platformPostID string) PostResult {
	return PostResult{Success: true, PlatformPostID: platformPostID}
}

// PublishFailed builds a failed result carrying a human-readable reason.
func PublishFailed(reason string) PostResult {
	return PostResult{Success: false, Error: reason}
}

// PostAnalytics holds engagement counters for a published post.
type PostAnalytics struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
	Shares   int `json:"shares"`
	Views    int `json:"views"`
}

// CredentialCheck reports whether a platform's credentials look usable.
type CredentialCheck struct {
	Valid    bool   `json:"valid"`
	Username string `json:"username,omitempty"`
	Error    string `json:"error,omitempty"`
}

// GeneratedContent is the structured output of the content generator.
type GeneratedContent struct {
	Content     string   `json:"content"`
	Caption     string   `json:"caption,omitempty"`
	Hashtags    []string `json:"hashtags"`
	ImagePrompt string   `json:"imagePrompt,omitempty"`
}

// Tone selects the writing style for generated content.
type Tone string

const (
	ToneFunny        Tone = "funny"
	ToneProfessional Tone = "professional"
	ToneInformative  Tone = "informative"
)

// PostStatus tracks the draft-to-published lifecycle of a stored post.
type PostStatus string

const (
	PostDraft     PostStatus = "draft"
	PostScheduled PostStatus = "scheduled"
	PostPublished PostStatus = "published"
	PostFailed    PostStatus = "failed"
)

// Post is the persisted form of a generated draft and its publish outcome.
type Post struct {
	ID             int64
	TrendID        int64
	Platform       Platform
	Content        string
	Caption        string
	ImageURL       string
	ImagePrompt    string
	Tone           Tone
	Hashtags       []string
	Status         PostStatus
	ScheduledFor   *time.Time
	PublishedAt    *time.Time
	PlatformPostID string
	ErrorMessage   string
	Likes          int
	Comments       int
	Shares         int
	Views          int
	CreatedAt      time.Time
}
