package infra

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// InitRedis returns nil when no URL is configured. The URL may be a plain
// host:port or a redis:// URL.
func InitRedis(ctx context.Context, redisURL string, logger *zap.Logger) (*redis.Client, error) {
	if redisURL == "" {
		logger.Info("REDIS_URL not set, distance cache stays in process")
		return nil, nil
	}

	var opts *redis.Options
	if strings.HasPrefix(redisURL, "redis://") || strings.HasPrefix(redisURL, "rediss://") {
		parsed, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: redisURL}
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	logger.Info("Redis initialized", zap.String("addr", opts.Addr))
	return client, nil
}
