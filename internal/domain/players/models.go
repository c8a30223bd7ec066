package players

import "strings"

// Status is a player's availability for a specific game date.
type Status string

const (
	StatusActive       Status = "ACTIVE"
	StatusProbable     Status = "PROBABLE"
	StatusQuestionable Status = "QUESTIONABLE"
	StatusDayToDay     Status = "DAY_TO_DAY"
	StatusOut          Status = "OUT"
)

// ParseStatus maps upstream injury designations onto Status. Unknown values are Active.
func ParseStatus(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "out", "inactive", "suspended", "out for season":
		return StatusOut
	case "day-to-day", "day to day", "daytoday", "day_to_day", "dtd":
		return StatusDayToDay
	case "questionable", "doubtful", "gtd", "game time decision":
		return StatusQuestionable
	case "probable":
		return StatusProbable
	default:
		return StatusActive
	}
}

// IsOut reports whether the player is ruled out.
func (s Status) IsOut() bool {
	return s == StatusOut
}

// Stat identifies a tracked per-game statistic.
type Stat string

const (
	StatPoints   Stat = "points"
	StatAssists  Stat = "assists"
	StatRebounds Stat = "rebounds"
	StatThrees   Stat = "threes"
)

// TrackedStats lists projected statistics in evaluation order.
var TrackedStats = []Stat{StatPoints, StatAssists, StatRebounds, StatThrees}

// Averages holds per-game season averages.
type Averages struct {
	Points   float64 `json:"points"`
	Assists  float64 `json:"assists"`
	Rebounds float64 `json:"rebounds"`
	Threes   float64 `json:"threes"`
}

// Get returns the average for stat, or 0 for an unknown stat.
func (a Averages) Get(stat Stat) float64 {
	switch stat {
	case StatPoints:
		return a.Points
	case StatAssists:
		return a.Assists
	case StatRebounds:
		return a.Rebounds
	case StatThrees:
		return a.Threes
	default:
		return 0
	}
}

// Baseline is a player's season-level identity and production.
type Baseline struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	TeamID   string   `json:"teamId"`
	Position string   `json:"position"`
	Averages Averages `json:"averages"`
	Usage    float64  `json:"usage"`
}

// RosterRecord is one entry of a live/current roster.
type RosterRecord struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
}

// SeasonRecord is one player's season statistics as supplied upstream.
type SeasonRecord struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Position string   `json:"position"`
	Averages Averages `json:"averages"`
	Usage    float64  `json:"usage"`
}

// InjuryRecord is one row of an injury report. Description is display-only.
type InjuryRecord struct {
	PlayerID    string `json:"playerId"`
	PlayerName  string `json:"playerName,omitempty"`
	Status      Status `json:"status"`
	Description string `json:"description,omitempty"`
}

// RosterEntry pairs a baseline with the player's availability.
type RosterEntry struct {
	Baseline
	Status  Status `json:"status"`
	Matched bool   `json:"matched"`
}
