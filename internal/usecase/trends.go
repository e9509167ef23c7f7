package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"TrendPoster/internal/domain"
	"TrendPoster/internal/ports"
	"TrendPoster/internal/trends"
)

// TrendService orchestrates trend aggregation and the review lifecycle.
type TrendService struct {
	aggregator *trends.Aggregator
	repository ports.TrendRepository
	logger     *slog.Logger
}

// NewTrendService constructs the orchestration component.
func NewTrendService(aggregator *trends.Aggregator, repository ports.TrendRepository, logger *slog.Logger) *TrendService {
	return &TrendService{aggregator: aggregator, repository: repository, logger: logger}
}

// Refresh fetches trends from the requested sources and persists them with
// pending status. A topic that fails to save is skipped, mirroring the
// aggregator's tolerance of individual failures.
func (s *TrendService) Refresh(ctx context.Context, sourceNames []string, region string) ([]domain.Trend, error) {
	var sources []domain.Source
	for _, name := range sourceNames {
		source, err := domain.ParseSource(name)
		if err != nil {
			return nil, err
		}
		sources = append(sources, source)
	}

	topics := s.aggregator.FetchAll(ctx, sources, region)
	if s.repository == nil {
		saved := make([]domain.Trend, 0, len(topics))
		for _, topic := range topics {
			saved = append(saved, domain.Trend{Topic: topic, Status: domain.TrendPending})
		}
		return saved, nil
	}

	saved := make([]domain.Trend, 0, len(topics))
	for _, topic := range topics {
		trend, err := s.repository.Save(ctx, topic)
		if err != nil {
			s.warn("save trend failed, skipping", "title", topic.Title, "error", err)
			continue
		}
		saved = append(saved, trend)
	}

	return saved, nil
}

// List returns stored trends filtered by source and status.
func (s *TrendService) List(ctx context.Context, source, status string) ([]domain.Trend, error) {
	if s.repository == nil {
		return nil, fmt.Errorf("trend storage is not configured")
	}
	return s.repository.List(ctx, source, status, 50)
}

// UpdateStatus moves a trend through the approval lifecycle.
func (s *TrendService) UpdateStatus(ctx context.Context, id int64, status domain.TrendStatus) error {
	if s.repository == nil {
		return fmt.Errorf("trend storage is not configured")
	}
	return s.repository.UpdateStatus(ctx, id, status)
}

// Delete removes a trend.
func (s *TrendService) Delete(ctx context.Context, id int64) error {
	if s.repository == nil {
		return fmt.Errorf("trend storage is not configured")
	}
	return s.repository.Delete(ctx, id)
}

func (s *TrendService) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
