package providers

import (
	"context"

	domaingames "github.com/preston-bernstein/nba-edge-service/internal/domain/games"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/matchups"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/players"
)

// GameProvider defines how upstream game data is fetched and normalized.
// The date parameter, when provided, should be a YYYY-MM-DD string indicating which day's games to fetch.
// Providers should interpret an empty date as "today" in their configured timezone.
type GameProvider interface {
	FetchGames(ctx context.Context, date string, tz string) ([]domaingames.Game, error)
}

// TeamDataProvider fetches roster, season baselines and play-type profiles for a team.
type TeamDataProvider interface {
	FetchTeamData(ctx context.Context, teamID string) (matchups.TeamData, error)
}

// InjuryProvider fetches the league injury report for a date.
type InjuryProvider interface {
	FetchInjuries(ctx context.Context, date string) ([]players.InjuryRecord, error)
}

// MarketProvider fetches bookmaker prices for a game. It returns
// ErrMarketUnavailable when the upstream has no prices.
type MarketProvider interface {
	FetchMarket(ctx context.Context, gameID string) (*matchups.MarketSnapshot, error)
}

// DataProvider combines all provider capabilities.
type DataProvider interface {
	GameProvider
	TeamDataProvider
	InjuryProvider
	MarketProvider
}
