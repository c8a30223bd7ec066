package testutil

import (
	domaingames "github.com/preston-bernstein/nba-edge-service/internal/domain/games"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/matchups"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/players"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-edge-service/internal/engine"
)

// SampleGame returns a minimal scheduled game with the provided id.
func SampleGame(id string) domaingames.Game {
	return domaingames.Game{
		ID:       id,
		Provider: "test",
		HomeTeam: SampleTeam("home"),
		AwayTeam: SampleTeam("away"),
		Status:   domaingames.StatusScheduled,
		Meta:     domaingames.GameMeta{Season: "2023-2024", UpstreamGameID: 1},
	}
}

// SampleTeam returns a team whose abbreviation is the upper-cased id prefix.
func SampleTeam(id string) teams.Team {
	abbr := id
	if len(abbr) > 3 {
		abbr = abbr[:3]
	}
	return teams.Team{ID: id, Name: id, FullName: "Team " + id, Abbreviation: abbr}
}

// SampleAnalysis returns an analyzed matchup carrying bet as its best bet.
func SampleAnalysis(gameID string, bet matchups.BestBet) matchups.MatchupAnalysis {
	return matchups.MatchupAnalysis{
		GameID: gameID,
		Source: "test",
		Home:   matchups.TeamAnalysis{Team: SampleTeam("home")},
		Away:   matchups.TeamAnalysis{Team: SampleTeam("away")},
		WinEstimate: matchups.TeamWinEstimate{
			HomeWinProbability: 55,
			AwayWinProbability: 45,
		},
		BestBet: bet,
	}
}

// SampleBoard builds a board for date with one no-bet matchup per id.
func SampleBoard(date string, ids ...string) domaingames.Board {
	out := make([]matchups.MatchupAnalysis, 0, len(ids))
	for _, id := range ids {
		out = append(out, SampleAnalysis(id, matchups.BestBet{Kind: matchups.BetNone}))
	}
	return domaingames.NewBoard(date, out)
}

// SampleMatchupInput returns a small engine input with three players per side and no market.
func SampleMatchupInput() engine.MatchupInput {
	side := func(teamID string, scale float64) engine.TeamInput {
		stats := []players.SeasonRecord{
			{ID: teamID + "-1", Name: teamID + " Star", Position: "F", Averages: players.Averages{Points: 27 * scale, Assists: 6, Rebounds: 8, Threes: 2.5}, Usage: 0.30},
			{ID: teamID + "-2", Name: teamID + " Guard", Position: "G", Averages: players.Averages{Points: 18 * scale, Assists: 7, Rebounds: 4, Threes: 2.8}, Usage: 0.24},
			{ID: teamID + "-3", Name: teamID + " Big", Position: "C", Averages: players.Averages{Points: 12 * scale, Assists: 2, Rebounds: 10, Threes: 0.2}, Usage: 0.18},
		}
		roster := make([]players.RosterRecord, 0, len(stats))
		for _, s := range stats {
			roster = append(roster, players.RosterRecord{ID: s.ID, Name: s.Name, Position: s.Position})
		}
		return engine.TeamInput{
			Team:        SampleTeam(teamID),
			Roster:      roster,
			SeasonStats: stats,
		}
	}
	return engine.MatchupInput{
		GameID: "sample-game",
		Source: "test",
		Home:   side("home", 1.0),
		Away:   side("away", 0.9),
	}
}
