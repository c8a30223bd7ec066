package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/nba-edge-service/internal/cache"
	domaingames "github.com/preston-bernstein/nba-edge-service/internal/domain/games"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/matchups"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/players"
	"github.com/preston-bernstein/nba-edge-service/internal/metrics"
)

const (
	cachingName     = "cache"
	defaultCacheTTL = 15 * time.Minute
)

// cachingProvider serves repeated lookups from an explicit cache. Only successful
// responses are stored; cache faults fall through to the wrapped provider.
type cachingProvider struct {
	next    DataProvider
	cache   cache.Cache
	ttl     time.Duration
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// NewCachingProvider wraps next with c. A nil cache returns next unchanged.
func NewCachingProvider(next DataProvider, c cache.Cache, ttl time.Duration, logger *slog.Logger, recorder *metrics.Recorder) DataProvider {
	if c == nil {
		return next
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &cachingProvider{next: next, cache: c, ttl: ttl, logger: logger, metrics: recorder}
}

func (p *cachingProvider) FetchGames(ctx context.Context, date string, tz string) ([]domaingames.Game, error) {
	if p.next == nil {
		return nil, ErrProviderUnavailable
	}
	if date == "" {
		// "today" moves; only explicit dates are stable keys.
		return p.next.FetchGames(ctx, date, tz)
	}
	return cached(ctx, p, "games", cache.Key("games", date, tz), func() ([]domaingames.Game, error) {
		return p.next.FetchGames(ctx, date, tz)
	})
}

func (p *cachingProvider) FetchTeamData(ctx context.Context, teamID string) (matchups.TeamData, error) {
	if p.next == nil {
		return matchups.TeamData{}, ErrProviderUnavailable
	}
	return cached(ctx, p, "team", cache.Key("team", teamID), func() (matchups.TeamData, error) {
		return p.next.FetchTeamData(ctx, teamID)
	})
}

func (p *cachingProvider) FetchInjuries(ctx context.Context, date string) ([]players.InjuryRecord, error) {
	if p.next == nil {
		return nil, ErrProviderUnavailable
	}
	return cached(ctx, p, "injuries", cache.Key("injuries", date), func() ([]players.InjuryRecord, error) {
		return p.next.FetchInjuries(ctx, date)
	})
}

func (p *cachingProvider) FetchMarket(ctx context.Context, gameID string) (*matchups.MarketSnapshot, error) {
	if p.next == nil {
		return nil, ErrProviderUnavailable
	}
	return cached(ctx, p, "market", cache.Key("market", gameID), func() (*matchups.MarketSnapshot, error) {
		return p.next.FetchMarket(ctx, gameID)
	})
}

func cached[T any](ctx context.Context, p *cachingProvider, kind, key string, fetch func() (T, error)) (T, error) {
	var val T
	hit, err := cache.GetJSON(ctx, p.cache, key, &val)
	if err != nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, cachingName, "cache read failed", "key", key, "error", err)
	}
	p.metrics.RecordCacheLookup(kind, hit)
	if hit {
		return val, nil
	}

	val, err = fetch()
	if err != nil {
		return val, err
	}
	if err := cache.SetJSON(ctx, p.cache, key, val, p.ttl); err != nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, cachingName, "cache write failed", "key", key, "error", err)
	}
	return val, nil
}
