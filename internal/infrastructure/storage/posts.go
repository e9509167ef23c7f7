package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"TrendPoster/internal/domain"
	"TrendPoster/internal/ports"
)

// PostRepository persists generated drafts and their publish outcomes.
type PostRepository struct {
	db *sql.DB
}

var _ ports.PostRepository = (*PostRepository)(nil)

// NewPostRepository wires a sql.DB implementation.
func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{db: db}
}

const postColumns = "id, trend_id, platform, content, caption, image_url, image_prompt, tone, hashtags, " +
	"status, scheduled_for, published_at, platform_post_id, error_message, likes, comments, shares, views, created_at"

// Create inserts a draft post.
func (r *PostRepository) Create(ctx context.Context, post domain.Post) (domain.Post, error) {
	if post.Status == "" {
		post.Status = domain.PostDraft
	}

	query, args, err := psql.Insert("posts").
		Columns("trend_id", "platform", "content", "caption", "image_url", "image_prompt",
			"tone", "hashtags", "status", "scheduled_for").
		Values(post.TrendID, string(post.Platform), post.Content, post.Caption, post.ImageURL,
			post.ImagePrompt, string(post.Tone), pq.StringArray(post.Hashtags),
			string(post.Status), post.ScheduledFor).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return domain.Post{}, fmt.Errorf("build insert: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&post.ID, &post.CreatedAt); err != nil {
		return domain.Post{}, fmt.Errorf("insert post: %w", err)
	}

	return post, nil
}

// List returns stored posts, newest first. Empty or "all" filters match everything.
func (r *PostRepository) List(ctx context.Context, platform, status string, limit int) ([]domain.Post, error) {
	builder := psql.Select(postColumns).
		From("posts").
		OrderBy("created_at DESC")

	if platform != "" && platform != "all" {
		builder = builder.Where(sq.Eq{"platform": platform})
	}
	if status != "" && status != "all" {
		builder = builder.Where(sq.Eq{"status": status})
	}
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return posts, nil
}

// Get loads one post by id.
func (r *PostRepository) Get(ctx context.Context, id int64) (domain.Post, error) {
	query, args, err := psql.Select(postColumns).
		From("posts").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return domain.Post{}, fmt.Errorf("build select: %w", err)
	}

	return scanPost(r.db.QueryRowContext(ctx, query, args...))
}

// RecordResult stores a publish outcome: published with timestamp and the
// platform-assigned id on success, failed with the error message otherwise.
func (r *PostRepository) RecordResult(ctx context.Context, id int64, result domain.PostResult, publishedAt time.Time) error {
	builder := psql.Update("posts").Where(sq.Eq{"id": id})
	if result.Success {
		builder = builder.
			Set("status", string(domain.PostPublished)).
			Set("published_at", publishedAt).
			Set("platform_post_id", result.PlatformPostID).
			Set("error_message", "")
	} else {
		builder = builder.
			Set("status", string(domain.PostFailed)).
			Set("error_message", result.Error)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("record result for post %d: %w", id, err)
	}

	return nil
}

// MarkScheduled sets the post's due time and scheduled status.
func (r *PostRepository) MarkScheduled(ctx context.Context, id int64, at time.Time) error {
	query, args, err := psql.Update("posts").
		Set("status", string(domain.PostScheduled)).
		Set("scheduled_for", at).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("schedule post %d: %w", id, err)
	}

	return nil
}

// Due returns scheduled posts whose due time has passed.
func (r *PostRepository) Due(ctx context.Context, now time.Time) ([]domain.Post, error) {
	query, args, err := psql.Select(postColumns).
		From("posts").
		Where(sq.Eq{"status": string(domain.PostScheduled)}).
		Where(sq.LtOrEq{"scheduled_for": now}).
		OrderBy("scheduled_for ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query due posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return posts, nil
}

// UpdateAnalytics stores refreshed engagement counters.
func (r *PostRepository) UpdateAnalytics(ctx context.Context, id int64, analytics domain.PostAnalytics) error {
	query, args, err := psql.Update("posts").
		Set("likes", analytics.Likes).
		Set("comments", analytics.Comments).
		Set("shares", analytics.Shares).
		Set("views", analytics.Views).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update analytics for post %d: %w", id, err)
	}

	return nil
}

// Count returns the number of posts, optionally restricted to one status.
func (r *PostRepository) Count(ctx context.Context, status string) (int, error) {
	builder := psql.Select("COUNT(*)").From("posts")
	if status != "" && status != "all" {
		builder = builder.Where(sq.Eq{"status": status})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}

	return count, nil
}

// TotalEngagement sums likes, comments, and shares over all posts.
func (r *PostRepository) TotalEngagement(ctx context.Context) (int, error) {
	query, args, err := psql.Select("COALESCE(SUM(likes + comments + shares), 0)").
		From("posts").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build sum: %w", err)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum engagement: %w", err)
	}

	return total, nil
}

func scanPost(row rowScanner) (domain.Post, error) {
	var (
		post         domain.Post
		platform     string
		tone         string
		status       string
		hashtags     pq.StringArray
		scheduledFor sql.NullTime
		publishedAt  sql.NullTime
	)

	err := row.Scan(&post.ID, &post.TrendID, &platform, &post.Content, &post.Caption,
		&post.ImageURL, &post.ImagePrompt, &tone, &hashtags, &status, &scheduledFor,
		&publishedAt, &post.PlatformPostID, &post.ErrorMessage,
		&post.Likes, &post.Comments, &post.Shares, &post.Views, &post.CreatedAt)
	if err != nil {
		return domain.Post{}, fmt.Errorf("scan post: %w", err)
	}

	post.Platform = domain.Platform(platform)
	post.Tone = domain.Tone(tone)
	post.Status = domain.PostStatus(status)
	post.Hashtags = hashtags
	if scheduledFor.Valid {
		post.ScheduledFor = &scheduledFor.Time
	}
	if publishedAt.Valid {
		post.PublishedAt = &publishedAt.Time
	}

	return post, nil
}
