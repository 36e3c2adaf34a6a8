package distance_matrix_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"nearby/internal/config"
	"nearby/internal/services"
)

var Module = fx.Provide(provideDistanceCalculator)

func provideDistanceCalculator(cfg *config.Config, cache services.DistanceCache, logger *zap.Logger) services.DistanceCalculatorInterface {
	var directions services.DirectionsClient
	if cfg.MapboxToken != "" {
		directions = services.NewMapboxDirectionsClient(cfg.MapboxToken)
	} else {
		logger.Info("MAPBOX_ACCESS_TOKEN not set, walking distances are estimated")
	}
	return services.NewDistanceCalculator(directions, cache, logger)
}
