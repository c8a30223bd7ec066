package matchups

import (
	"github.com/preston-bernstein/nba-edge-service/internal/domain/players"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/teams"
)

// Projection is the engine output for one player and one statistic.
// Line is nil when no market line exists; Edge is then 0 and IsValue false.
type Projection struct {
	PlayerID   string       `json:"playerId"`
	PlayerName string       `json:"playerName"`
	TeamID     string       `json:"teamId"`
	Stat       players.Stat `json:"stat"`
	Value      float64      `json:"value"`
	Line       *float64     `json:"line,omitempty"`
	Price      *int         `json:"price,omitempty"`
	HasLine    bool         `json:"hasLine"`
	Edge       float64      `json:"edge"`
	IsValue    bool         `json:"isValue"`
	Confidence int          `json:"confidence"`
	Reasons    []string     `json:"reasons"`

	// ExactEdge is Edge before rounding. Bet selection compares it; it is not serialized.
	ExactEdge float64 `json:"-"`
}

// PlayerProjections groups one player's projections with the inputs that shaped them.
type PlayerProjections struct {
	Player      players.Baseline `json:"player"`
	Status      players.Status   `json:"status"`
	Multiplier  float64          `json:"multiplier"`
	Modifier    float64          `json:"modifier"`
	Projections []Projection     `json:"projections"`
}

// Stat returns the projection for stat, if tracked.
func (p PlayerProjections) Stat(stat players.Stat) (Projection, bool) {
	for _, proj := range p.Projections {
		if proj.Stat == stat {
			return proj, true
		}
	}
	return Projection{}, false
}

// DiagnosticKind classifies non-fatal data degradation.
type DiagnosticKind string

const (
	DiagUnmatchedPlayer   DiagnosticKind = "UNMATCHED_PLAYER"
	DiagMissingMarketLine DiagnosticKind = "MISSING_MARKET_LINE"
	DiagDegenerateInputs  DiagnosticKind = "DEGENERATE_INPUTS"
)

// Diagnostic records one observable degradation in an analysis.
type Diagnostic struct {
	Kind     DiagnosticKind `json:"kind"`
	PlayerID string         `json:"playerId,omitempty"`
	Stat     players.Stat   `json:"stat,omitempty"`
	Message  string         `json:"message"`
}

// TeamAnalysis is one side of an analyzed matchup. Players keep roster order.
type TeamAnalysis struct {
	Team        teams.Team          `json:"team"`
	BackToBack  bool                `json:"backToBack"`
	Players     []PlayerProjections `json:"players"`
	Diagnostics []Diagnostic        `json:"diagnostics,omitempty"`
}

// TeamWinEstimate is the model's moneyline view. Probabilities are percentages summing to 100.
type TeamWinEstimate struct {
	HomeWinProbability    float64 `json:"homeWinProbability"`
	AwayWinProbability    float64 `json:"awayWinProbability"`
	HomeAdvantage         float64 `json:"homeAdvantage"`
	StarPowerDifferential float64 `json:"starPowerDifferential"`
}

// BetKind tags the best-bet variant.
type BetKind string

const (
	BetNone           BetKind = "NONE"
	BetPropOver       BetKind = "PROP_OVER"
	BetPropUnder      BetKind = "PROP_UNDER"
	BetMoneylineValue BetKind = "MONEYLINE_VALUE"
)

// BestBet is the single recommendation for a matchup. Kind BetNone carries no other fields.
type BestBet struct {
	Kind       BetKind      `json:"kind"`
	Edge       float64      `json:"edge,omitempty"`
	Confidence int          `json:"confidence,omitempty"`
	Price      int          `json:"price,omitempty"`
	Team       string       `json:"team,omitempty"`
	PlayerID   string       `json:"playerId,omitempty"`
	PlayerName string       `json:"playerName,omitempty"`
	Stat       players.Stat `json:"stat,omitempty"`
	Line       float64      `json:"line,omitempty"`
	Projection float64      `json:"projection,omitempty"`
}

// IsNone reports whether no candidate qualified.
func (b BestBet) IsNone() bool {
	return b.Kind == "" || b.Kind == BetNone
}

// MatchupAnalysis is the full result for one game.
type MatchupAnalysis struct {
	GameID      string          `json:"gameId,omitempty"`
	Source      string          `json:"source,omitempty"`
	Home        TeamAnalysis    `json:"home"`
	Away        TeamAnalysis    `json:"away"`
	WinEstimate TeamWinEstimate `json:"winEstimate"`
	BestBet     BestBet         `json:"bestBet"`
	Diagnostics []Diagnostic    `json:"diagnostics,omitempty"`
}

// AllDiagnostics returns matchup-level diagnostics followed by home then away.
func (m MatchupAnalysis) AllDiagnostics() []Diagnostic {
	out := make([]Diagnostic, 0, len(m.Diagnostics)+len(m.Home.Diagnostics)+len(m.Away.Diagnostics))
	out = append(out, m.Diagnostics...)
	out = append(out, m.Home.Diagnostics...)
	return append(out, m.Away.Diagnostics...)
}
