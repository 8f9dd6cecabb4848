package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"AstroFeed/internal/domain/models"
	"AstroFeed/internal/domain/repository"
	"AstroFeed/pkg/logger"
	"AstroFeed/pkg/util"
)

// WeeklyPipeline fans one week of daily feed computations across a
// bounded worker pool. Provider rate limits still apply per worker, so
// the pool trades wall time against API pressure.
type WeeklyPipeline struct {
	gen     *TransitGenerator
	workers int
	metrics repository.Metrics
	log     *logger.Logger
}

// NewWeeklyPipeline creates the pool. workers <= 0 falls back to 3.
func NewWeeklyPipeline(gen *TransitGenerator, workers int, metrics repository.Metrics, log *logger.Logger) *WeeklyPipeline {
	if workers <= 0 {
		workers = 3
	}
	if metrics == nil {
		metrics = repository.NopMetrics{}
	}
	return &WeeklyPipeline{
		gen:     gen,
		workers: workers,
		metrics: metrics,
		log:     log,
	}
}

// Run generates seven daily-aligned feeds for the week containing ts,
// Monday first. Days whose generation fails are skipped; Run errors
// only when every day failed.
func (p *WeeklyPipeline) Run(ctx context.Context, ts time.Time, opts GeneratorOptions) ([]*models.Feed, error) {
	weekStart := util.StartOfWeek(ts)

	type result struct {
		day  int
		feed *models.Feed
		err  error
	}

	jobs := make(chan int)
	results := make(chan result, 7)

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for day := range jobs {
				feed, err := p.gen.Generate(ctx, "weekly", weekStart.AddDate(0, 0, day), opts)
				results <- result{day: day, feed: feed, err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for day := 0; day < 7; day++ {
			select {
			case jobs <- day:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var feeds []*models.Feed
	var firstErr error
	for r := range results {
		if r.err != nil {
			p.metrics.RecordError("weekly_day")
			p.log.Warn("weekly day failed",
				logger.Time("day", weekStart.AddDate(0, 0, r.day)),
				logger.Error(r.err),
			)
			if firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		feeds = append(feeds, r.feed)
	}

	if len(feeds) == 0 {
		if firstErr != nil {
			return nil, fmt.Errorf("weekly generation: %w", firstErr)
		}
		return nil, fmt.Errorf("weekly generation produced no feeds")
	}

	sort.Slice(feeds, func(i, j int) bool {
		return feeds[i].Timestamp.Before(feeds[j].Timestamp)
	})
	return feeds, nil
}
