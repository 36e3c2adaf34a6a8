package db_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"nearby/internal/config"
	"nearby/internal/infra"
)

var Module = fx.Provide(
	provideDB)

func provideDB(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	db, err := infra.InitPostgresql(cfg.PostgresURL, logger)
	if err != nil {
		return nil, err
	}
	if err := infra.Migrate(db); err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			infra.ClosePostgresql(db, logger)
			return nil
		},
	})
	return db, nil
}
