package matchups

import "github.com/preston-bernstein/nba-edge-service/internal/domain/players"

// TeamData is everything fetched for one team ahead of an analysis.
// Any slice may be empty; Synergy and Defense are optional enrichments.
type TeamData struct {
	TeamID      string                 `json:"teamId"`
	Roster      []players.RosterRecord `json:"roster"`
	SeasonStats []players.SeasonRecord `json:"seasonStats"`
	Synergy     []SynergyProfile       `json:"synergy,omitempty"`
	Defense     DefenseProfile         `json:"defense"`
}
