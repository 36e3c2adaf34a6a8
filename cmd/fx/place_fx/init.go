package place_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"nearby/internal/config"
	"nearby/internal/repositories"
	"nearby/internal/services"
)

var Module = fx.Provide(
	providePlaceRepo, providePlaceService,
	provideCompanionRepo, provideCompanionService,
	provideWeatherService)

func providePlaceRepo(db *gorm.DB) repositories.PlaceRepository {
	return repositories.NewPlaceRepository(db)
}

func providePlaceService(placeRepo repositories.PlaceRepository, indexer *services.EmbeddingIndexer, logger *zap.Logger) services.PlaceServiceInterface {
	return services.NewPlaceService(placeRepo, indexer, logger)
}

func provideCompanionRepo(db *gorm.DB) repositories.CompanionRepository {
	return repositories.NewCompanionRepository(db)
}

func provideCompanionService(cfg *config.Config, placeRepo repositories.PlaceRepository,
	companionRepo repositories.CompanionRepository, logger *zap.Logger) services.CompanionServiceInterface {
	return services.NewCompanionService(placeRepo, companionRepo, cfg.CompanionCacheTTL, logger)
}

func provideWeatherService(placeRepo repositories.PlaceRepository, journeyRepo repositories.JourneyRepository) services.WeatherServiceInterface {
	return services.NewWeatherService(placeRepo, journeyRepo)
}
