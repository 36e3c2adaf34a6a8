package memcache_fx

import (
	"context"

	"github.com/go-redis/redis/v8"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"nearby/internal/config"
	"nearby/internal/infra"
	"nearby/internal/services"
)

var Module = fx.Provide(provideRedis, provideDistanceCache)

// provideRedis yields a nil client when REDIS_URL is unset.
func provideRedis(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (*redis.Client, error) {
	client, err := infra.InitRedis(context.Background(), cfg.RedisURL, logger)
	if err != nil || client == nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return client, nil
}

func provideDistanceCache(cfg *config.Config, client *redis.Client, logger *zap.Logger) services.DistanceCache {
	if client != nil {
		return services.NewRedisDistanceCache(client, cfg.DistanceCacheTTL, logger)
	}
	return services.NewInMemoryDistanceCache(cfg.DistanceCacheSize, cfg.DistanceCacheTTL)
}
