package domain

import (
	"fmt"
	"strings"
	"time"
)

// Source identifies a trending-topic provider.
type Source string

const (
	SourceGoogle     Source = "google"
	SourceReddit     Source = "reddit"
	SourceHackerNews Source = "hackernews"
	SourceTwitter    Source = "twitter"
	SourceYouTube    Source = "youtube"
)

// AllSources lists every known provider in fan-out order.
func AllSources() []Source {
	return []Source{SourceGoogle, SourceReddit, SourceHackerNews, SourceTwitter, SourceYouTube}
}

// ParseSource resolves a case-insensitive source name.
func ParseSource(name string) (Source, error) {
	switch Source(strings.ToLower(strings.TrimSpace(name))) {
	case SourceGoogle:
		return SourceGoogle, nil
	case SourceReddit:
		return SourceReddit, nil
	case SourceHackerNews:
		return SourceHackerNews, nil
	case SourceTwitter:
		return SourceTwitter, nil
	case SourceYouTube:
		return SourceYouTube, nil
	}
	return "", fmt.Errorf("unknown trend source %q", name)
}

// DescriptionLimit caps provider descriptions, in runes.
const DescriptionLimit = 200

// TrendingTopic is a normalized item produced by a provider.
// Title is never empty; items that fail to parse are dropped upstream.
type TrendingTopic struct {
	Title           string
	Description     string
	Source          Source
	Category        string
	PopularityScore int
	URL             string
	Keywords        []string
	Language        string
	Region          string
}

// TrendStatus tracks the approval lifecycle of a stored trend.
type TrendStatus string

const (
	TrendPending  TrendStatus = "pending"
	TrendApproved TrendStatus = "approved"
	TrendRejected TrendStatus = "rejected"
	TrendUsed     TrendStatus = "used"
)

// Trend is the persisted form of a TrendingTopic.
type Trend struct {
	ID        int64
	Topic     TrendingTopic
	Status    TrendStatus
	CreatedAt time.Time
}
