package server

import (
	"log/slog"

	"github.com/preston-bernstein/nba-edge-service/internal/cache"
	"github.com/preston-bernstein/nba-edge-service/internal/config"
	"github.com/preston-bernstein/nba-edge-service/internal/logging"
	"github.com/preston-bernstein/nba-edge-service/internal/metrics"
	"github.com/preston-bernstein/nba-edge-service/internal/providers"
	"github.com/preston-bernstein/nba-edge-service/internal/providers/balldontlie"
	"github.com/preston-bernstein/nba-edge-service/internal/providers/fixture"
)

// providerFactory assembles the provider with shared wrappers.
// Order from the outside in: cache, retry, rate limit, upstream.
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
	cache   cache.Cache
}

func newProviderFactory(logger *slog.Logger, recorder *metrics.Recorder, c cache.Cache) providerFactory {
	return providerFactory{logger: logger, metrics: recorder, cache: c}
}

func (f providerFactory) build(cfg config.Config) providers.DataProvider {
	base := selectProvider(cfg, f.logger)
	return f.wrap(cfg, base)
}

func (f providerFactory) wrap(cfg config.Config, base providers.DataProvider) providers.DataProvider {
	name := normalizeProviderName(cfg.Provider, base)
	next := base
	if _, local := base.(*fixture.Provider); !local {
		next = providers.NewRateLimitedProvider(next, cfg.Balldontlie.RequestsPerMinute, f.logger)
	}
	next = providers.NewRetryingProvider(next, f.logger, f.metrics, name, 0, 0)
	return providers.NewCachingProvider(next, f.cache, cfg.Cache.TTL, f.logger, f.metrics)
}

func selectProvider(cfg config.Config, logger *slog.Logger) providers.DataProvider {
	switch cfg.Provider {
	case fixture.Source, "":
		return fixture.New()
	case "balldontlie":
		return balldontlie.NewClient(balldontlie.Config{
			BaseURL:  cfg.Balldontlie.BaseURL,
			APIKey:   cfg.Balldontlie.APIKey,
			Timezone: cfg.Timezone,
			MaxPages: cfg.Balldontlie.MaxPages,
			Season:   cfg.Balldontlie.Season,
		})
	default:
		logging.Warn(logger, "unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		return fixture.New()
	}
}
