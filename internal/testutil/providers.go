package testutil

import (
	"context"

	domaingames "github.com/preston-bernstein/nba-edge-service/internal/domain/games"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/matchups"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/players"
	"github.com/preston-bernstein/nba-edge-service/internal/providers"
)

// ErrProvider fails every call with Err.
type ErrProvider struct {
	Err error
}

func (p ErrProvider) FetchGames(ctx context.Context, date string, tz string) ([]domaingames.Game, error) {
	return nil, p.Err
}

func (p ErrProvider) FetchTeamData(ctx context.Context, teamID string) (matchups.TeamData, error) {
	return matchups.TeamData{}, p.Err
}

func (p ErrProvider) FetchInjuries(ctx context.Context, date string) ([]players.InjuryRecord, error) {
	return nil, p.Err
}

func (p ErrProvider) FetchMarket(ctx context.Context, gameID string) (*matchups.MarketSnapshot, error) {
	return nil, p.Err
}

// UnavailableProvider fails every call with providers.ErrProviderUnavailable.
func UnavailableProvider() ErrProvider {
	return ErrProvider{Err: providers.ErrProviderUnavailable}
}
