package config_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"nearby/internal/config"
	"nearby/internal/infra"
	"nearby/pkg/utils"
)

var Module = fx.Provide(config.Load, provideLogger, provideTokenIssuer)

func provideLogger(cfg *config.Config) (*zap.Logger, error) {
	logger, err := infra.NewLogger(cfg.LogLevel, cfg.Env)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}

func provideTokenIssuer(cfg *config.Config) *utils.TokenIssuer {
	return utils.NewTokenIssuer(cfg.JWTSecret)
}
