package providers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	domaingames "github.com/preston-bernstein/nba-edge-service/internal/domain/games"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/matchups"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/players"
	"github.com/preston-bernstein/nba-edge-service/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
	maxRetryAfter        = time.Minute
)

// retryingProvider wraps a DataProvider with exponential backoff, honoring
// Retry-After from rate limited responses.
type retryingProvider struct {
	inner        DataProvider
	logger       *slog.Logger
	metrics      *metrics.Recorder
	providerName string
	maxAttempts  int
	newBackOff   func() backoff.BackOff
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/backoff are <= 0, defaults are used.
func NewRetryingProvider(inner DataProvider, logger *slog.Logger, recorder *metrics.Recorder, providerName string, maxAttempts int, initial time.Duration) DataProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initial <= 0 {
		initial = defaultBackoff
	}
	if providerName == "" {
		providerName = "provider"
	}
	return &retryingProvider{
		inner:        inner,
		logger:       logger,
		metrics:      recorder,
		providerName: providerName,
		maxAttempts:  maxAttempts,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = initial
			b.MaxElapsedTime = 0
			return b
		},
	}
}

func (r *retryingProvider) FetchGames(ctx context.Context, date string, tz string) ([]domaingames.Game, error) {
	if r.inner == nil {
		return nil, ErrProviderUnavailable
	}
	return retry(ctx, r, "games", func() ([]domaingames.Game, error) {
		return r.inner.FetchGames(ctx, date, tz)
	})
}

func (r *retryingProvider) FetchTeamData(ctx context.Context, teamID string) (matchups.TeamData, error) {
	if r.inner == nil {
		return matchups.TeamData{}, ErrProviderUnavailable
	}
	return retry(ctx, r, "team", func() (matchups.TeamData, error) {
		return r.inner.FetchTeamData(ctx, teamID)
	})
}

func (r *retryingProvider) FetchInjuries(ctx context.Context, date string) ([]players.InjuryRecord, error) {
	if r.inner == nil {
		return nil, ErrProviderUnavailable
	}
	return retry(ctx, r, "injuries", func() ([]players.InjuryRecord, error) {
		return r.inner.FetchInjuries(ctx, date)
	})
}

func (r *retryingProvider) FetchMarket(ctx context.Context, gameID string) (*matchups.MarketSnapshot, error) {
	if r.inner == nil {
		return nil, ErrProviderUnavailable
	}
	return retry(ctx, r, "market", func() (*matchups.MarketSnapshot, error) {
		return r.inner.FetchMarket(ctx, gameID)
	})
}

func retry[T any](ctx context.Context, r *retryingProvider, op string, fn func() (T, error)) (T, error) {
	policy := &retryAfterBackOff{next: r.newBackOff()}
	var limited backoff.BackOff = &backoff.StopBackOff{}
	if r.maxAttempts > 1 {
		limited = backoff.WithMaxRetries(policy, uint64(r.maxAttempts-1))
	}
	b := backoff.WithContext(limited, ctx)

	attempt := 0
	operation := func() (T, error) {
		attempt++
		start := time.Now()
		val, err := fn()
		r.metrics.RecordProviderAttempt(r.providerName, time.Since(start), err)
		if err == nil {
			return val, nil
		}
		if rlErr, ok := AsRateLimitError(err); ok {
			r.metrics.RecordRateLimit(r.providerName, rlErr.RetryAfter)
			policy.retryAfter = rlErr.RetryAfter
		}
		if permanent(err) {
			return val, backoff.Permanent(err)
		}
		return val, err
	}
	notify := func(err error, delay time.Duration) {
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.providerName, "provider fetch retry",
			"operation", op, "attempt", attempt, "max_attempts", r.maxAttempts, "delay_ms", delay.Milliseconds(), "error", err)
	}

	val, err := backoff.RetryNotifyWithData(operation, b, notify)
	if err != nil && !errors.Is(err, ErrMarketUnavailable) {
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.providerName, "provider fetch failed",
			"operation", op, "attempts", attempt, "error", err)
	}
	return val, err
}

func permanent(err error) bool {
	if stErr, ok := AsStatusError(err); ok && !stErr.Temporary() {
		return true
	}
	return errors.Is(err, ErrMarketUnavailable) ||
		errors.Is(err, ErrProviderUnavailable) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// retryAfterBackOff substitutes an upstream Retry-After for the next computed delay.
type retryAfterBackOff struct {
	next       backoff.BackOff
	retryAfter time.Duration
}

func (b *retryAfterBackOff) NextBackOff() time.Duration {
	d := b.next.NextBackOff()
	if d == backoff.Stop {
		return d
	}
	if b.retryAfter > 0 {
		d = b.retryAfter
		if d > maxRetryAfter {
			d = maxRetryAfter
		}
		b.retryAfter = 0
	}
	return d
}

func (b *retryAfterBackOff) Reset() {
	b.retryAfter = 0
	b.next.Reset()
}
