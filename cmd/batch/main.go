package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"nearby/internal/config"
	"nearby/internal/discovery"
	"nearby/internal/infra"
	"nearby/internal/repositories"
	"nearby/internal/services"
)

type batchEnv struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
}

func setup() (*batchEnv, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger, err := infra.NewLogger(cfg.LogLevel, cfg.Env)
	if err != nil {
		return nil, err
	}
	db, err := infra.InitPostgresql(cfg.PostgresURL, logger)
	if err != nil {
		return nil, err
	}
	if err := infra.Migrate(db); err != nil {
		return nil, err
	}
	return &batchEnv{cfg: cfg, logger: logger, db: db}, nil
}

func (e *batchEnv) close() {
	infra.ClosePostgresql(e.db, e.logger)
	_ = e.logger.Sync()
}

func main() {
	root := &cobra.Command{
		Use:          "batch",
		Short:        "Offline jobs for the nearby backend",
		SilenceUsage: true,
	}
	root.AddCommand(discoverCmd(), companionsCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func discoverCmd() *cobra.Command {
	var concurrency int
	cmd := &cobra.Command{
		Use:   "discover [source-url...]",
		Short: "Scrape event listings into the discovered events queue",
		Long:  "Fetches each listing page and queues unseen events as pending. Without arguments DISCOVERY_SOURCES is used.",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup()
			if err != nil {
				return err
			}
			defer env.close()

			sources := args
			if len(sources) == 0 {
				sources = env.cfg.DiscoverySources
			}
			if len(sources) == 0 {
				return fmt.Errorf("no sources: pass URLs or set DISCOVERY_SOURCES")
			}

			runner := discovery.NewRunner(discovery.NewScraper(env.logger),
				repositories.NewEventRepository(env.db), env.logger, concurrency)
			inserted, err := runner.Run(cmd.Context(), sources)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "queued %d new events from %d sources\n", inserted, len(sources))
			return nil
		},
	}
	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", 4, "sources fetched in parallel")
	return cmd
}

func companionsCmd() *cobra.Command {
	var workers int
	cmd := &cobra.Command{
		Use:   "companions",
		Short: "Precompute and store companions for every visited place",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup()
			if err != nil {
				return err
			}
			defer env.close()

			placeRepo := repositories.NewPlaceRepository(env.db)
			svc := services.NewCompanionService(placeRepo, repositories.NewCompanionRepository(env.db),
				env.cfg.CompanionCacheTTL, env.logger)

			ok, failed, err := precomputeCompanions(cmd.Context(), placeRepo, svc, workers, env.logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "stored companions for %d places, %d failed\n", ok, failed)
			return nil
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "w", 8, "places processed in parallel")
	return cmd
}

// precomputeCompanions stores companions for every visited place. Per-place
// failures are counted, not fatal.
func precomputeCompanions(ctx context.Context, placeRepo repositories.PlaceRepository,
	svc services.CompanionServiceInterface, workers int, logger *zap.Logger) (int64, int64, error) {
	places, err := placeRepo.ListVisited(ctx)
	if err != nil {
		return 0, 0, err
	}
	if workers < 1 {
		workers = 1
	}

	var ok, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, p := range places {
		p := p // per-iteration copy (go directive is 1.21)
		g.Go(func() error {
			if err := svc.ComputeAndStoreCompanions(gctx, p.ID.String()); err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				failed.Add(1)
				logger.Warn("companion precompute failed", zap.String("place_id", p.ID.String()), zap.Error(err))
				return nil
			}
			ok.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ok.Load(), failed.Load(), err
	}
	return ok.Load(), failed.Load(), nil
}
