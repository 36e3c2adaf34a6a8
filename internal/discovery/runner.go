package discovery

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	dbm "nearby/internal/models/db_models"
	"nearby/internal/repositories"
)

type EventFetcher interface {
	FetchEvents(ctx context.Context, source string) ([]dbm.DiscoveredEvent, error)
}

type Runner struct {
	fetcher     EventFetcher
	eventRepo   repositories.EventRepository
	logger      *zap.Logger
	concurrency int
}

func NewRunner(fetcher EventFetcher, eventRepo repositories.EventRepository, logger *zap.Logger, concurrency int) *Runner {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Runner{fetcher: fetcher, eventRepo: eventRepo, logger: logger, concurrency: concurrency}
}

// Run fetches every source and queues unseen events as pending. A source that
// fails is logged and skipped; only a failed insert aborts the run.
func (r *Runner) Run(ctx context.Context, sources []string) (int64, error) {
	var (
		mu    sync.Mutex
		found []dbm.DiscoveredEvent
		seen  = map[string]bool{}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for _, source := range sources {
		source := source // per-iteration copy (go directive is 1.21)
		g.Go(func() error {
			events, err := r.fetcher.FetchEvents(gctx, source)
			if err != nil {
				r.logger.Warn("discovery source failed", zap.String("source", source), zap.Error(err))
				return nil
			}
			r.logger.Info("discovery source fetched", zap.String("source", source), zap.Int("events", len(events)))

			mu.Lock()
			defer mu.Unlock()
			for _, ev := range events {
				if seen[ev.SourceURL] {
					continue
				}
				seen[ev.SourceURL] = true
				found = append(found, ev)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	inserted, err := r.eventRepo.InsertDiscoveredIfNew(ctx, found)
	if err != nil {
		return 0, err
	}
	r.logger.Info("discovery finished", zap.Int("candidates", len(found)), zap.Int64("inserted", inserted))
	return inserted, nil
}
