package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/nba-edge-service/internal/cache"
	"github.com/preston-bernstein/nba-edge-service/internal/config"
	"github.com/preston-bernstein/nba-edge-service/internal/logging"
)

const redisPingTimeout = 2 * time.Second

// buildCache selects the provider cache backend. An unreachable Redis falls
// back to the in-process cache so the service still starts. The returned
// closer is nil when nothing needs releasing.
func buildCache(cfg config.CacheConfig, logger *slog.Logger) (cache.Cache, func() error) {
	switch cfg.Backend {
	case config.CacheBackendRedis:
		client := cache.NewRedisClient(cache.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		rc := cache.NewRedisCache(client)
		ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
		defer cancel()
		if err := rc.Ping(ctx); err != nil {
			logging.Warn(logger, "redis unavailable, using memory cache",
				slog.String("addr", cfg.RedisAddr),
				slog.Any("error", err),
			)
			_ = client.Close()
			return cache.NewMemoryCache(), nil
		}
		logging.Info(logger, "provider cache ready", logging.FieldBackend, config.CacheBackendRedis, slog.String("addr", cfg.RedisAddr))
		return rc, client.Close
	case config.CacheBackendMemory, "":
		logging.Info(logger, "provider cache ready", logging.FieldBackend, config.CacheBackendMemory)
		return cache.NewMemoryCache(), nil
	default:
		logging.Warn(logger, "unknown cache backend, using memory cache", logging.FieldBackend, cfg.Backend)
		return cache.NewMemoryCache(), nil
	}
}
