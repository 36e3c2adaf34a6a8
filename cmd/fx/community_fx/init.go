package community_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"nearby/internal/repositories"
	"nearby/internal/services"
)

var Module = fx.Provide(
	provideCommunityRepo, provideCommunityService,
)

func provideCommunityRepo(db *gorm.DB) repositories.CommunityRepository {
	return repositories.NewCommunityRepository(db)
}

func provideCommunityService(communityRepo repositories.CommunityRepository, accountRepo repositories.AccountRepository) services.CommunityServiceInterface {
	return services.NewCommunityService(communityRepo, accountRepo)
}
