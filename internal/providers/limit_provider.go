package providers

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	domaingames "github.com/preston-bernstein/nba-edge-service/internal/domain/games"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/matchups"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/players"
)

const rateLimitedName = "rate-limited"

// rateLimitedProvider wraps a DataProvider and spaces upstream calls to a per-minute budget.
type rateLimitedProvider struct {
	next    DataProvider
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewRateLimitedProvider returns a DataProvider that allows at most perMinute calls per minute.
// Calls block until a token is available to avoid exceeding upstream quotas.
func NewRateLimitedProvider(next DataProvider, perMinute int, logger *slog.Logger) DataProvider {
	if perMinute <= 0 {
		perMinute = 1
	}
	return &rateLimitedProvider{
		next:    next,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
		logger:  logger,
	}
}

func (p *rateLimitedProvider) wait(ctx context.Context, op string) error {
	if p.next == nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, rateLimitedName, "provider unavailable")
		return ErrProviderUnavailable
	}
	if err := p.limiter.Wait(ctx); err != nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, rateLimitedName, "rate-limited fetch canceled", "operation", op)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	logWithProvider(ctx, p.logger, slog.LevelDebug, rateLimitedName, "rate-limited provider fetch", "operation", op)
	return nil
}

func (p *rateLimitedProvider) FetchGames(ctx context.Context, date string, tz string) ([]domaingames.Game, error) {
	if err := p.wait(ctx, "games"); err != nil {
		return nil, err
	}
	return p.next.FetchGames(ctx, date, tz)
}

func (p *rateLimitedProvider) FetchTeamData(ctx context.Context, teamID string) (matchups.TeamData, error) {
	if err := p.wait(ctx, "team"); err != nil {
		return matchups.TeamData{}, err
	}
	return p.next.FetchTeamData(ctx, teamID)
}

func (p *rateLimitedProvider) FetchInjuries(ctx context.Context, date string) ([]players.InjuryRecord, error) {
	if err := p.wait(ctx, "injuries"); err != nil {
		return nil, err
	}
	return p.next.FetchInjuries(ctx, date)
}

func (p *rateLimitedProvider) FetchMarket(ctx context.Context, gameID string) (*matchups.MarketSnapshot, error) {
	if err := p.wait(ctx, "market"); err != nil {
		return nil, err
	}
	return p.next.FetchMarket(ctx, gameID)
}
