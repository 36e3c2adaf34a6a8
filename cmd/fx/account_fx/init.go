package account_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"nearby/internal/repositories"
	"nearby/internal/services"
	"nearby/pkg/utils"
)

var Module = fx.Provide(
	provideAccountService, provideAccountRepo)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideAccountService(accountRepo repositories.AccountRepository, tokens *utils.TokenIssuer, logger *zap.Logger) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, tokens, logger)
}
