package event_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"nearby/internal/repositories"
	"nearby/internal/services"
)

var Module = fx.Provide(
	provideEventRepo, provideEventService, provideModerationService,
)

func provideEventRepo(db *gorm.DB) repositories.EventRepository {
	return repositories.NewEventRepository(db)
}

func provideEventService(eventRepo repositories.EventRepository) services.EventServiceInterface {
	return services.NewEventService(eventRepo)
}

func provideModerationService(eventRepo repositories.EventRepository, communityRepo repositories.CommunityRepository,
	mailer services.IMailService, logger *zap.Logger) services.ModerationServiceInterface {
	return services.NewModerationService(eventRepo, communityRepo, mailer, logger)
}
