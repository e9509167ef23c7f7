package trends

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"TrendPoster/internal/domain"
)

const defaultProviderTimeout = 15 * time.Second

// Aggregator fans out over registered providers and merges their topics.
// A provider failure never fails the batch: the failed source simply
// contributes zero items.
type Aggregator struct {
	registry *Registry
	timeout  time.Duration
	logger   *slog.Logger
}

// NewAggregator wires the provider registry; timeout bounds each provider call.
func NewAggregator(registry *Registry, timeout time.Duration, logger *slog.Logger) *Aggregator {
	if timeout <= 0 {
		timeout = defaultProviderTimeout
	}
	return &Aggregator{registry: registry, timeout: timeout, logger: logger}
}

// FetchAll queries the requested sources concurrently and returns the merged
// topics sorted by popularity score descending. An empty sources slice means
// all known sources.
func (a *Aggregator) FetchAll(ctx context.Context, sources []domain.Source, region string) []domain.TrendingTopic {
	if len(sources) == 0 {
		sources = domain.AllSources()
	}

	type outcome struct {
		order  int
		source domain.Source
		topics []domain.TrendingTopic
		err    error
	}

	results := make([]outcome, len(sources))
	var wg sync.WaitGroup
	for i, source := range sources {
		provider, err := a.registry.Resolve(source)
		if err != nil {
			results[i] = outcome{order: i, source: source, err: err}
			continue
		}

		wg.Add(1)
		go func(i int, source domain.Source) {
			defer wg.Done()
			fetchCtx, cancel := context.WithTimeout(ctx, a.timeout)
			defer cancel()

			topics, err := provider.Fetch(fetchCtx, region)
			results[i] = outcome{order: i, source: source, topics: topics, err: err}
		}(i, source)
	}
	wg.Wait()

	var merged []domain.TrendingTopic
	for _, res := range results {
		if res.err != nil {
			a.warn("provider failed, skipping", "source", string(res.source), "error", res.err)
			continue
		}
		for _, topic := range res.topics {
			if topic.Title == "" {
				continue
			}
			merged = append(merged, topic)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].PopularityScore > merged[j].PopularityScore
	})

	a.debug("aggregation done", "sources", len(sources), "topics", len(merged))
	return merged
}

func (a *Aggregator) warn(msg string, args ...any) {
	if a.logger != nil {
		a.logger.Warn(msg, args...)
	}
}

func (a *Aggregator) debug(msg string, args ...any) {
	if a.logger != nil {
		a.logger.Debug(msg, args...)
	}
}
