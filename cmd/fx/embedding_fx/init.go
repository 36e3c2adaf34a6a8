package embedding_fx

import (
	"context"
	"io"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"nearby/internal/config"
	"nearby/internal/repositories"
	"nearby/internal/services"
	"nearby/pkg/utils"
)

var Module = fx.Provide(
	ProvideEmbeddingClient,
	provideEmbeddingRepo,
	provideIndexer,
	provideSearchService)

// ProvideEmbeddingClient returns a nil client when no provider is configured.
func ProvideEmbeddingClient(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (utils.EmbeddingClientInterface, error) {
	client, err := utils.NewEmbeddingClient(context.Background(), cfg.Embedding.Provider, cfg.Embedding.APIKey, cfg.Embedding.Model)
	if err != nil {
		return nil, err
	}
	if client == nil {
		logger.Info("No embedding provider configured, semantic search is disabled")
		return nil, nil
	}

	logger.Info("Embedding client initialized",
		zap.String("provider", cfg.Embedding.Provider), zap.String("model", cfg.Embedding.Model))
	if closer, ok := client.(io.Closer); ok {
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error { return closer.Close() },
		})
	}
	return client, nil
}

func provideEmbeddingRepo(db *gorm.DB) repositories.EmbeddingRepository {
	return repositories.NewEmbeddingRepository(db)
}

func provideIndexer(client utils.EmbeddingClientInterface, embeddingRepo repositories.EmbeddingRepository) *services.EmbeddingIndexer {
	return services.NewEmbeddingIndexer(client, embeddingRepo)
}

func provideSearchService(client utils.EmbeddingClientInterface, embeddingRepo repositories.EmbeddingRepository,
	placeRepo repositories.PlaceRepository, logger *zap.Logger) services.SearchServiceInterface {
	return services.NewSearchService(client, embeddingRepo, placeRepo, logger)
}
