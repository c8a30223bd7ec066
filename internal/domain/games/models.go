package games

import (
	"github.com/preston-bernstein/nba-edge-service/internal/domain/matchups"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/teams"
)

// GameStatus mirrors the shared contract for game lifecycle states.
type GameStatus string

const (
	StatusScheduled  GameStatus = "SCHEDULED"
	StatusInProgress GameStatus = "IN_PROGRESS"
	StatusFinal      GameStatus = "FINAL"
	StatusPostponed  GameStatus = "POSTPONED"
	StatusCanceled   GameStatus = "CANCELED"
)

// Score captures home and away points.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// GameMeta stores provider metadata for a game.
type GameMeta struct {
	Season         string `json:"season"`
	UpstreamGameID int    `json:"upstreamGameId"`
	Period         int    `json:"period,omitempty"`
	Postseason     bool   `json:"postseason,omitempty"`
	Time           string `json:"time,omitempty"`
}

// Game is the canonical game shape exposed by the service.
type Game struct {
	ID        string     `json:"id"`
	Provider  string     `json:"provider"`
	HomeTeam  teams.Team `json:"homeTeam"`
	AwayTeam  teams.Team `json:"awayTeam"`
	StartTime string     `json:"startTime"`
	Status    GameStatus `json:"status"`
	Score     Score      `json:"score"`
	Meta      GameMeta   `json:"meta"`
}

// Playable reports whether the game is still going to be played. Postponed
// and canceled games carry no usable market.
func (g Game) Playable() bool {
	return g.Status != StatusPostponed && g.Status != StatusCanceled
}

// Board is the analyzed slate for one date, in schedule order.
type Board struct {
	Date     string                     `json:"date"`
	Matchups []matchups.MatchupAnalysis `json:"matchups"`
}

// NewBoard builds a Board, normalizing a nil slice to empty.
func NewBoard(date string, analyses []matchups.MatchupAnalysis) Board {
	if analyses == nil {
		analyses = []matchups.MatchupAnalysis{}
	}
	return Board{Date: date, Matchups: analyses}
}

// Picks returns the matchups whose best bet is not BetNone.
func (b Board) Picks() []matchups.MatchupAnalysis {
	out := make([]matchups.MatchupAnalysis, 0, len(b.Matchups))
	for _, m := range b.Matchups {
		if !m.BestBet.IsNone() {
			out = append(out, m)
		}
	}
	return out
}

// Find returns the analysis for a game id.
func (b Board) Find(gameID string) (matchups.MatchupAnalysis, bool) {
	for _, m := range b.Matchups {
		if m.GameID == gameID {
			return m, true
		}
	}
	return matchups.MatchupAnalysis{}, false
}
