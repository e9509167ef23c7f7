package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"TrendPoster/internal/domain"
	"TrendPoster/internal/ports"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// TrendRepository persists aggregated trends into Postgres.
type TrendRepository struct {
	db *sql.DB
}

var _ ports.TrendRepository = (*TrendRepository)(nil)

// NewTrendRepository wires a sql.DB implementation.
func NewTrendRepository(db *sql.DB) *TrendRepository {
	return &TrendRepository{db: db}
}

const trendColumns = "id, title, description, source, category, language, region, popularity_score, url, keywords, status, created_at"

// Save inserts a freshly aggregated topic with pending status.
func (r *TrendRepository) Save(ctx context.Context, topic domain.TrendingTopic) (domain.Trend, error) {
	query, args, err := psql.Insert("trends").
		Columns("title", "description", "source", "category", "language", "region", "popularity_score", "url", "keywords", "status").
		Values(topic.Title, topic.Description, string(topic.Source), topic.Category,
			topic.Language, topic.Region, topic.PopularityScore, topic.URL,
			pq.StringArray(topic.Keywords), string(domain.TrendPending)).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return domain.Trend{}, fmt.Errorf("build insert: %w", err)
	}

	trend := domain.Trend{Topic: topic, Status: domain.TrendPending}
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&trend.ID, &trend.CreatedAt); err != nil {
		return domain.Trend{}, fmt.Errorf("insert trend: %w", err)
	}

	return trend, nil
}

// List returns stored trends, most popular first, newest breaking ties.
// Empty or "all" filter values match everything.
func (r *TrendRepository) List(ctx context.Context, source, status string, limit int) ([]domain.Trend, error) {
	builder := psql.Select(trendColumns).
		From("trends").
		OrderBy("popularity_score DESC", "created_at DESC")

	if source != "" && source != "all" {
		builder = builder.Where(sq.Eq{"source": source})
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
		return nil, fmt.Errorf("query trends: %w", err)
	}
	defer rows.Close()

	var trends []domain.Trend
	for rows.Next() {
		trend, err := scanTrend(rows)
		if err != nil {
			return nil, err
		}
		trends = append(trends, trend)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return trends, nil
}

// Get loads one trend by id.
func (r *TrendRepository) Get(ctx context.Context, id int64) (domain.Trend, error) {
	query, args, err := psql.Select(trendColumns).
		From("trends").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return domain.Trend{}, fmt.Errorf("build select: %w", err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	trend, err := scanTrend(row)
	if err != nil {
		return domain.Trend{}, err
	}

	return trend, nil
}

// UpdateStatus moves a trend through the approval lifecycle.
func (r *TrendRepository) UpdateStatus(ctx context.Context, id int64, status domain.TrendStatus) error {
	query, args, err := psql.Update("trends").
		Set("status", string(status)).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update trend %d: %w", id, err)
	}

	return nil
}

// Delete removes a trend.
func (r *TrendRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := psql.Delete("trends").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete trend %d: %w", id, err)
	}

	return nil
}

// Count returns the total number of stored trends.
func (r *TrendRepository) Count(ctx context.Context) (int, error) {
	query, args, err := psql.Select("COUNT(*)").From("trends").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count trends: %w", err)
	}

	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrend(row rowScanner) (domain.Trend, error) {
	var (
		trend    domain.Trend
		source   string
		status   string
		keywords pq.StringArray
	)

	err := row.Scan(&trend.ID, &trend.Topic.Title, &trend.Topic.Description, &source,
		&trend.Topic.Category, &trend.Topic.Language, &trend.Topic.Region,
		&trend.Topic.PopularityScore, &trend.Topic.URL, &keywords, &status, &trend.CreatedAt)
	if err != nil {
		return domain.Trend{}, fmt.Errorf("scan trend: %w", err)
	}

	trend.Topic.Source = domain.Source(source)
	trend.Topic.Keywords = keywords
	trend.Status = domain.TrendStatus(status)
	return trend, nil
}
