package journey_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"nearby/internal/repositories"
	"nearby/internal/services"
)

var Module = fx.Provide(provideJourneyRepo, provideJourneyService)

func provideJourneyRepo(db *gorm.DB) repositories.JourneyRepository {
	return repositories.NewJourneyRepository(db)
}

func provideJourneyService(journeyRepo repositories.JourneyRepository, placeRepo repositories.PlaceRepository,
	distance services.DistanceCalculatorInterface, logger *zap.Logger) services.JourneyServiceInterface {
	return services.NewJourneyService(journeyRepo, placeRepo, distance, logger)
}
