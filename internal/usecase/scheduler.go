package usecase

import (
	"context"
	"time"

	"TrendPoster/internal/ports"
)

// ScheduledPublisher wires the ticker driver with the due-post dispatch job.
type ScheduledPublisher struct {
	driver ports.Scheduler
	posts  *PostService
}

// NewScheduledPublisher returns a helper to start/stop the recurring job.
func NewScheduledPublisher(driver ports.Scheduler, posts *PostService) *ScheduledPublisher {
	return &ScheduledPublisher{driver: driver, posts: posts}
}

// Start registers the due-post job with the provided scheduler.
func (s *ScheduledPublisher) Start(ctx context.Context) error {
	if s.driver == nil || s.posts == nil {
		return nil
	}

	job := func(trigger time.Time) {
		s.posts.PublishDue(ctx, trigger)
	}

	return s.driver.Start(ctx, job)
}

// Stop gracefully tears down the underlying scheduler.
func (s *ScheduledPublisher) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}

	return s.driver.Stop(ctx)
}
