// Package fixture serves a deterministic slate with full team data, used for
// local runs, the MCP tools and end-to-end tests. Everything it returns is
// flagged with Source "fixture".
package fixture

import (
	"context"
	"fmt"
	"time"

	domaingames "github.com/preston-bernstein/nba-edge-service/internal/domain/games"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/matchups"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/players"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-edge-service/internal/providers"
	"github.com/preston-bernstein/nba-edge-service/internal/timeutil"
)

// Source names the fixture provider on games and analyses.
const Source = "fixture"

var (
	celtics  = teams.Team{ID: "bos", Name: "Celtics", FullName: "Boston Celtics", Abbreviation: "BOS", City: "Boston", Conference: "East", Division: "Atlantic"}
	lakers   = teams.Team{ID: "lal", Name: "Lakers", FullName: "Los Angeles Lakers", Abbreviation: "LAL", City: "Los Angeles", Conference: "West", Division: "Pacific"}
	warriors = teams.Team{ID: "gsw", Name: "Warriors", FullName: "Golden State Warriors", Abbreviation: "GSW", City: "San Francisco", Conference: "West", Division: "Pacific"}
	heat     = teams.Team{ID: "mia", Name: "Heat", FullName: "Miami Heat", Abbreviation: "MIA", City: "Miami", Conference: "East", Division: "Southeast"}
)

// Provider returns static games, team data, injuries and prices.
type Provider struct {
	now func() time.Time
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{
		now: time.Now,
	}
}

// FetchGames returns the slate for a date. Even days of the year carry the full
// two-game slate; odd days carry a single Heat at Lakers game, so the full slate
// always finds LAL and MIA on the second night of a back-to-back.
func (p *Provider) FetchGames(ctx context.Context, date string, tz string) ([]domaingames.Game, error) {
	_ = ctx

	start := p.now().In(timeutil.Location(tz, time.UTC)).Truncate(time.Hour)
	if date != "" {
		if parsed, err := timeutil.ParseDate(date); err == nil {
			start = parsed.UTC()
		}
	}

	if start.YearDay()%2 == 1 {
		return []domaingames.Game{
			scheduled("fixture-3", lakers, heat, start.Add(3*time.Hour), 1003),
		}, nil
	}
	return []domaingames.Game{
		scheduled("fixture-1", celtics, lakers, start.Add(2*time.Hour), 1001),
		scheduled("fixture-2", warriors, heat, start.Add(4*time.Hour), 1002),
	}, nil
}

func scheduled(id string, home, away teams.Team, tip time.Time, upstream int) domaingames.Game {
	return domaingames.Game{
		ID:        id,
		Provider:  Source,
		HomeTeam:  home,
		AwayTeam:  away,
		StartTime: tip.Format(time.RFC3339),
		Status:    domaingames.StatusScheduled,
		Score:     domaingames.Score{Home: 0, Away: 0},
		Meta:      domaingames.GameMeta{Season: "2023-2024", UpstreamGameID: upstream},
	}
}

// FetchTeamData returns the roster, season stats and profiles for a fixture team.
func (p *Provider) FetchTeamData(ctx context.Context, teamID string) (matchups.TeamData, error) {
	_ = ctx
	build, ok := teamData[teamID]
	if !ok {
		return matchups.TeamData{TeamID: teamID}, nil
	}
	return build(), nil
}

// FetchInjuries returns the same report for every date.
func (p *Provider) FetchInjuries(ctx context.Context, date string) ([]players.InjuryRecord, error) {
	_ = ctx
	_ = date
	return []players.InjuryRecord{
		{PlayerID: "bos-2", PlayerName: "Jaylen Brown", Status: players.StatusOut, Description: "Hamstring"},
		{PlayerID: "lal-3", PlayerName: "Austin Reaves", Status: players.StatusQuestionable, Description: "Ankle"},
		{PlayerName: "Andrew Wiggins", Status: players.StatusDayToDay, Description: "Illness"},
		{PlayerID: "mia-1", PlayerName: "Jimmy Butler", Status: players.StatusProbable, Description: "Knee"},
	}, nil
}

// FetchMarket returns prices for the full slate. Single-game days have no market.
func (p *Provider) FetchMarket(ctx context.Context, gameID string) (*matchups.MarketSnapshot, error) {
	_ = ctx
	build, ok := markets[gameID]
	if !ok {
		return nil, fmt.Errorf("fixture %s: %w", gameID, providers.ErrMarketUnavailable)
	}
	return build(), nil
}

func line(playerID string, stat players.Stat, value float64, price int) matchups.PropLine {
	return matchups.PropLine{PlayerID: playerID, Stat: stat, Line: value, Price: price}
}

func moneyline(v int) *int { return &v }

var markets = map[string]func() *matchups.MarketSnapshot{
	"fixture-1": func() *matchups.MarketSnapshot {
		return &matchups.MarketSnapshot{
			GameID: "fixture-1",
			Props: []matchups.PropLine{
				line("bos-1", players.StatPoints, 24.5, -115),
				line("bos-1", players.StatRebounds, 8.5, -110),
				line("bos-3", players.StatAssists, 5.5, 0),
				line("lal-1", players.StatPoints, 26.5, -110),
				line("lal-2", players.StatRebounds, 11.5, -120),
			},
			HomeMoneyline: moneyline(-180),
			AwayMoneyline: moneyline(155),
		}
	},
	"fixture-2": func() *matchups.MarketSnapshot {
		return &matchups.MarketSnapshot{
			GameID: "fixture-2",
			Props: []matchups.PropLine{
				line("gsw-1", players.StatPoints, 27.5, -110),
				line("gsw-1", players.StatThrees, 4.5, 115),
				line("mia-2", players.StatRebounds, 10.5, -110),
			},
			HomeMoneyline: moneyline(-130),
			AwayMoneyline: moneyline(110),
		}
	},
}

type seasonRow struct {
	id, name, pos           string
	pts, ast, reb, fg3, usg float64
}

func season(rows ...seasonRow) []players.SeasonRecord {
	out := make([]players.SeasonRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, players.SeasonRecord{
			ID:       r.id,
			Name:     r.name,
			Position: r.pos,
			Averages: players.Averages{Points: r.pts, Assists: r.ast, Rebounds: r.reb, Threes: r.fg3},
			Usage:    r.usg,
		})
	}
	return out
}

func roster(rows []players.SeasonRecord, extra ...players.RosterRecord) []players.RosterRecord {
	out := make([]players.RosterRecord, 0, len(rows)+len(extra))
	for _, r := range rows {
		out = append(out, players.RosterRecord{ID: r.ID, Name: r.Name, Position: r.Position})
	}
	return append(out, extra...)
}

func synergy(playerID string, entries ...matchups.SynergyEntry) matchups.SynergyProfile {
	return matchups.SynergyProfile{PlayerID: playerID, Entries: entries}
}

func play(pt matchups.PlayType, freq, ppp float64) matchups.SynergyEntry {
	return matchups.SynergyEntry{PlayType: pt, Frequency: freq, Efficiency: ppp}
}

var teamData = map[string]func() matchups.TeamData{
	"bos": func() matchups.TeamData {
		stats := season(
			seasonRow{"bos-1", "Jayson Tatum", "F", 27.1, 4.8, 8.3, 3.0, 0.30},
			seasonRow{"bos-2", "Jaylen Brown", "G-F", 23.0, 3.6, 5.5, 2.1, 0.27},
			seasonRow{"bos-3", "Jrue Holiday", "G", 12.5, 4.9, 5.4, 1.8, 0.16},
			seasonRow{"bos-4", "Kristaps Porziņģis", "C", 20.1, 2.0, 7.2, 1.9, 0.24},
			seasonRow{"bos-5", "Derrick White", "G", 15.2, 5.2, 4.2, 2.7, 0.18},
		)
		return matchups.TeamData{
			TeamID:      "bos",
			Roster:      roster(stats),
			SeasonStats: stats,
			Synergy: []matchups.SynergyProfile{
				synergy("bos-1", play(matchups.PlayIsolation, 0.22, 1.02), play(matchups.PlaySpotUp, 0.18, 1.10), play(matchups.PlayTransition, 0.14, 1.20)),
				synergy("bos-4", play(matchups.PlayPostUp, 0.25, 1.05), play(matchups.PlaySpotUp, 0.20, 1.12)),
			},
			Defense: matchups.NewDefenseProfile("bos", map[matchups.PlayType]int{
				matchups.PlayIsolation:   2,
				matchups.PlayPickAndRoll: 4,
				matchups.PlaySpotUp:      6,
				matchups.PlayPostUp:      9,
				matchups.PlayTransition:  12,
			}),
		}
	},
	"lal": func() matchups.TeamData {
		stats := season(
			seasonRow{"lal-1", "LeBron James", "F", 25.7, 8.3, 7.3, 2.1, 0.29},
			seasonRow{"lal-2", "Anthony Davis", "F-C", 24.7, 3.5, 12.6, 0.4, 0.28},
			seasonRow{"lal-3", "Austin Reaves", "G", 15.9, 5.5, 4.3, 2.0, 0.19},
			seasonRow{"lal-4", "D'Angelo Russell", "G", 18.0, 6.3, 3.1, 3.0, 0.23},
		)
		return matchups.TeamData{
			TeamID:      "lal",
			Roster:      roster(stats, players.RosterRecord{ID: "lal-9", Name: "Two-Way Callup", Position: "G"}),
			SeasonStats: stats,
			Synergy: []matchups.SynergyProfile{
				synergy("lal-1", play(matchups.PlayPickAndRoll, 0.24, 0.98), play(matchups.PlayTransition, 0.20, 1.18), play(matchups.PlayIsolation, 0.12, 0.95)),
				synergy("lal-2", play(matchups.PlayPostUp, 0.21, 1.01), play(matchups.PlayRollMan, 0.18, 1.25), play(matchups.PlayPutback, 0.10, 1.30)),
			},
			Defense: matchups.NewDefenseProfile("lal", map[matchups.PlayType]int{
				matchups.PlayIsolation:   18,
				matchups.PlayPickAndRoll: 26,
				matchups.PlaySpotUp:      27,
				matchups.PlayPostUp:      7,
				matchups.PlayTransition:  21,
			}),
		}
	},
	"gsw": func() matchups.TeamData {
		stats := season(
			seasonRow{"gsw-1", "Stephen Curry", "G", 26.4, 5.1, 4.5, 4.8, 0.31},
			seasonRow{"gsw-2", "Klay Thompson", "G", 17.9, 2.3, 3.3, 3.5, 0.24},
			seasonRow{"gsw-3", "Andrew Wiggins", "F", 13.2, 1.7, 4.5, 1.4, 0.18},
			seasonRow{"gsw-4", "Draymond Green", "F", 8.6, 6.0, 7.2, 1.0, 0.14},
		)
		return matchups.TeamData{
			TeamID:      "gsw",
			Roster:      roster(stats),
			SeasonStats: stats,
			Synergy: []matchups.SynergyProfile{
				synergy("gsw-1", play(matchups.PlayOffScreen, 0.20, 1.15), play(matchups.PlayPickAndRoll, 0.26, 1.05), play(matchups.PlaySpotUp, 0.16, 1.30)),
			},
			Defense: matchups.NewDefenseProfile("gsw", map[matchups.PlayType]int{
				matchups.PlayIsolation:   14,
				matchups.PlayPickAndRoll: 11,
				matchups.PlaySpotUp:      16,
				matchups.PlayPostUp:      28,
				matchups.PlayTransition:  10,
			}),
		}
	},
	"mia": func() matchups.TeamData {
		stats := season(
			seasonRow{"mia-1", "Jimmy Butler", "F", 20.8, 5.0, 5.3, 1.0, 0.25},
			seasonRow{"mia-2", "Bam Adebayo", "C", 19.3, 3.9, 10.4, 0.1, 0.24},
			seasonRow{"mia-3", "Tyler Herro", "G", 20.8, 4.5, 5.3, 3.1, 0.27},
			seasonRow{"9905", "Nikola Jovic", "F", 7.7, 2.0, 4.2, 1.3, 0.13},
		)
		rosterRecords := roster(stats[:3], players.RosterRecord{ID: "mia-5", Name: "Nikola Jović", Position: "F"})
		return matchups.TeamData{
			TeamID:      "mia",
			Roster:      rosterRecords,
			SeasonStats: stats,
			Synergy: []matchups.SynergyProfile{
				synergy("mia-3", play(matchups.PlayPickAndRoll, 0.30, 0.96), play(matchups.PlaySpotUp, 0.15, 1.14)),
			},
			Defense: matchups.NewDefenseProfile("mia", map[matchups.PlayType]int{
				matchups.PlayIsolation:   8,
				matchups.PlayPickAndRoll: 5,
				matchups.PlaySpotUp:      3,
				matchups.PlayPostUp:      13,
				matchups.PlayTransition:  25,
				matchups.PlayOffScreen:   4,
			}),
		}
	},
}
