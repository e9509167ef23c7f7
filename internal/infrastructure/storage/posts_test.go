package storage

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"TrendPoster/internal/domain"
)

func newPostMock(t *testing.T) (sqlmock.Sqlmock, *PostRepository) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return mock, NewPostRepository(db)
}

func postRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "trend_id", "platform", "content", "caption",
		"image_url", "image_prompt", "tone", "hashtags", "status", "scheduled_for",
		"published_at", "platform_post_id", "error_message", "likes", "comments",
		"shares", "views", "created_at"})
}

func TestPostRepositoryCreateDefaultsToDraft(t *testing.T) {
	t.Parallel()

	mock, repo := newPostMock(t)

	created := time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(
		"INSERT INTO posts (trend_id,platform,content,caption,image_url,image_prompt,tone,hashtags,status,scheduled_for) "+
			"VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10) RETURNING id, created_at")).
		WithArgs(int64(5), "facebook", "Hello", "", "", "", "professional",
			sqlmock.AnyArg(), "draft", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(11), created))

	post, err := repo.Create(context.Background(), domain.Post{
		TrendID:  5,
		Platform: domain.PlatformFacebook,
		Content:  "Hello",
		Tone:     domain.ToneProfessional,
		Hashtags: []string{"#go"},
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if post.ID != 11 || post.Status != domain.PostDraft {
		t.Fatalf("unexpected post: %+v", post)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostRepositoryRecordResultSuccess(t *testing.T) {
	t.Parallel()

	mock, repo := newPostMock(t)

	publishedAt := time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE posts SET status = $1, published_at = $2, platform_post_id = $3, error_message = $4 WHERE id = $5")).
		WithArgs("published", publishedAt, "fb_99", "", int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.RecordResult(context.Background(), 11, domain.PublishOK("fb_99"), publishedAt); err != nil {
		t.Fatalf("RecordResult error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostRepositoryRecordResultFailure(t *testing.T) {
	t.Parallel()

	mock, repo := newPostMock(t)

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE posts SET status = $1, error_message = $2 WHERE id = $3")).
		WithArgs("failed", "Instagram requires an image", int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.RecordResult(context.Background(), 11,
		domain.PublishFailed("Instagram requires an image"), time.Now())
	if err != nil {
		t.Fatalf("RecordResult error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostRepositoryMarkScheduled(t *testing.T) {
	t.Parallel()

	mock, repo := newPostMock(t)

	due := time.Date(2026, 8, 3, 8, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE posts SET status = $1, scheduled_for = $2 WHERE id = $3")).
		WithArgs("scheduled", due, int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.MarkScheduled(context.Background(), 4, due); err != nil {
		t.Fatalf("MarkScheduled error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostRepositoryDue(t *testing.T) {
	t.Parallel()

	mock, repo := newPostMock(t)

	now := time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC)
	due := now.Add(-time.Hour)
	rows := postRows().AddRow(int64(4), int64(5), "twitter", "Scheduled text", "", "", "",
		"professional", "{}", "scheduled", due, nil, "", "", 0, 0, 0, 0, now.Add(-2*time.Hour))

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT "+postColumns+" FROM posts WHERE status = $1 AND scheduled_for <= $2 ORDER BY scheduled_for ASC")).
		WithArgs("scheduled", now).
		WillReturnRows(rows)

	posts, err := repo.Due(context.Background(), now)
	if err != nil {
		t.Fatalf("Due error: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("expected 1 due post, got %d", len(posts))
	}
	if posts[0].ScheduledFor == nil || !posts[0].ScheduledFor.Equal(due) {
		t.Fatalf("scheduled_for lost in scan: %+v", posts[0])
	}
	if posts[0].PublishedAt != nil {
		t.Fatalf("published_at should be nil: %+v", posts[0])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostRepositoryUpdateAnalytics(t *testing.T) {
	t.Parallel()

	mock, repo := newPostMock(t)

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE posts SET likes = $1, comments = $2, shares = $3, views = $4 WHERE id = $5")).
		WithArgs(10, 2, 1, 300, int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateAnalytics(context.Background(), 4,
		domain.PostAnalytics{Likes: 10, Comments: 2, Shares: 1, Views: 300})
	if err != nil {
		t.Fatalf("UpdateAnalytics error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostRepositoryCountByStatus(t *testing.T) {
	t.Parallel()

	mock, repo := newPostMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM posts WHERE status = $1")).
		WithArgs("scheduled").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.Count(context.Background(), "scheduled")
	if err != nil {
		t.Fatalf("Count error: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3, got %d", count)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostRepositoryTotalEngagement(t *testing.T) {
	t.Parallel()

	mock, repo := newPostMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COALESCE(SUM(likes + comments + shares), 0) FROM posts")).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(57))

	total, err := repo.TotalEngagement(context.Background())
	if err != nil {
		t.Fatalf("TotalEngagement error: %v", err)
	}
	if total != 57 {
		t.Fatalf("expected 57, got %d", total)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
