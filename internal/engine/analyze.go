// Package engine runs the full prediction pipeline for one matchup.
//
// Analyze is pure: it reads only its input, never a clock or random source,
// and returns new records. Identical inputs produce identical output.
package engine

import (
	"fmt"

	"github.com/preston-bernstein/nba-edge-service/internal/domain/matchups"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/players"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-edge-service/internal/engine/matchup"
	"github.com/preston-bernstein/nba-edge-service/internal/engine/projection"
	"github.com/preston-bernstein/nba-edge-service/internal/engine/roster"
	"github.com/preston-bernstein/nba-edge-service/internal/engine/selector"
	"github.com/preston-bernstein/nba-edge-service/internal/engine/usage"
)

// TeamInput is one side of a matchup as fetched by the caller.
type TeamInput struct {
	Team        teams.Team                `json:"team"`
	Roster      []players.RosterRecord    `json:"roster"`
	SeasonStats []players.SeasonRecord    `json:"seasonStats"`
	Synergy     []matchups.SynergyProfile `json:"synergy,omitempty"`
	Defense     matchups.DefenseProfile   `json:"defense"`
	BackToBack  bool                      `json:"backToBack"`
}

// MatchupInput is everything Analyze needs. Market is nil when no prices exist.
type MatchupInput struct {
	GameID   string                   `json:"gameId,omitempty"`
	Source   string                   `json:"source,omitempty"`
	Home     TeamInput                `json:"home"`
	Away     TeamInput                `json:"away"`
	Injuries []players.InjuryRecord   `json:"injuries,omitempty"`
	Market   *matchups.MarketSnapshot `json:"market,omitempty"`
	Policy   usage.Policy             `json:"policy"`
}

// Analyze normalizes both rosters, projects every player against the opposing
// defense and selects the best bet. A RosterUnavailableError aborts the matchup.
func Analyze(in MatchupInput) (matchups.MatchupAnalysis, error) {
	homeRoster, err := roster.Normalize(in.Home.Team.ID, in.Home.Roster, in.Home.SeasonStats, in.Injuries)
	if err != nil {
		return matchups.MatchupAnalysis{}, fmt.Errorf("home team: %w", err)
	}
	awayRoster, err := roster.Normalize(in.Away.Team.ID, in.Away.Roster, in.Away.SeasonStats, in.Injuries)
	if err != nil {
		return matchups.MatchupAnalysis{}, fmt.Errorf("away team: %w", err)
	}

	home := analyzeTeam(in.Home, homeRoster, in.Away.Defense, in.Market, in.Policy)
	away := analyzeTeam(in.Away, awayRoster, in.Home.Defense, in.Market, in.Policy)

	est, degenerate := selector.WinEstimate(home.Players, away.Players)
	result := matchups.MatchupAnalysis{
		GameID:      in.GameID,
		Source:      in.Source,
		Home:        home,
		Away:        away,
		WinEstimate: est,
	}
	if degenerate {
		result.Diagnostics = append(result.Diagnostics, matchups.Diagnostic{
			Kind:    matchups.DiagDegenerateInputs,
			Message: "both teams have zero scoring strength; win share defaulted to 0.5",
		})
	}

	var lines selector.Moneylines
	if in.Market != nil {
		lines = selector.Moneylines{Home: in.Market.HomeMoneyline, Away: in.Market.AwayMoneyline}
	}
	result.BestBet = selector.SelectBestBet(home.Players, away.Players, in.Home.Team.Alias(), in.Away.Team.Alias(), est, lines)
	return result, nil
}

func analyzeTeam(in TeamInput, r roster.Roster, opponent matchups.DefenseProfile, market *matchups.MarketSnapshot, policy usage.Policy) matchups.TeamAnalysis {
	out := matchups.TeamAnalysis{
		Team:        in.Team,
		BackToBack:  in.BackToBack,
		Players:     make([]matchups.PlayerProjections, 0, len(r.Entries)),
		Diagnostics: append([]matchups.Diagnostic(nil), r.Diagnostics...),
	}
	if market == nil {
		out.Diagnostics = append(out.Diagnostics, matchups.Diagnostic{
			Kind:    matchups.DiagMissingMarketLine,
			Message: "no market available; edges not computed",
		})
	}

	redistribution := usage.Redistribute(r.Entries, policy)
	synergy := indexSynergy(in.Synergy)

	for _, entry := range r.Entries {
		mod := matchup.Modifier(synergy[entry.ID], opponent)
		coreOut := projection.CoreTeammateOut(r.Entries, entry.ID)
		multiplier := redistribution.Multipliers.For(entry.ID)
		unavailable := policy.Unavailable(entry.Status)

		pp := matchups.PlayerProjections{
			Player:      entry.Baseline,
			Status:      entry.Status,
			Multiplier:  multiplier,
			Modifier:    mod.Value,
			Projections: make([]matchups.Projection, 0, len(players.TrackedStats)),
		}
		for _, stat := range players.TrackedStats {
			pin := projection.Input{
				Player:           entry,
				Stat:             stat,
				VolumeMultiplier: multiplier,
				Unavailable:      unavailable,
				CoreTeammateOut:  coreOut,
				Matchup:          mod,
				BackToBack:       in.BackToBack,
			}
			if line, ok := market.PropFor(entry.ID, stat); ok {
				pin.Line = &line
			} else if market != nil && !unavailable {
				out.Diagnostics = append(out.Diagnostics, matchups.Diagnostic{
					Kind:     matchups.DiagMissingMarketLine,
					PlayerID: entry.ID,
					Stat:     stat,
					Message:  fmt.Sprintf("no %s line for %s", stat, entry.Name),
				})
			}
			pp.Projections = append(pp.Projections, projection.Project(pin))
		}
		out.Players = append(out.Players, pp)
	}
	return out
}

func indexSynergy(profiles []matchups.SynergyProfile) map[string]matchups.SynergyProfile {
	out := make(map[string]matchups.SynergyProfile, len(profiles))
	for _, p := range profiles {
		if _, dup := out[p.PlayerID]; !dup {
			out[p.PlayerID] = p
		}
	}
	return out
}
