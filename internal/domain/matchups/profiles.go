package matchups

import "math"

// PlayType names an offensive play category tracked by synergy data.
type PlayType string

const (
	PlayIsolation   PlayType = "isolation"
	PlayPickAndRoll PlayType = "pnr_ball_handler"
	PlayRollMan     PlayType = "pnr_roll_man"
	PlayPostUp      PlayType = "post_up"
	PlaySpotUp      PlayType = "spot_up"
	PlayHandoff     PlayType = "handoff"
	PlayCut         PlayType = "cut"
	PlayOffScreen   PlayType = "off_screen"
	PlayTransition  PlayType = "transition"
	PlayPutback     PlayType = "putback"
)

// SynergyEntry is one play type in a player's offensive profile.
// Frequency is the share of possessions (0-1); Efficiency is points per possession.
type SynergyEntry struct {
	PlayType   PlayType `json:"playType"`
	Frequency  float64  `json:"frequency"`
	Efficiency float64  `json:"efficiency"`
}

// SynergyProfile describes a player's offensive tendencies. Frequencies need not sum to 1.
type SynergyProfile struct {
	PlayerID string         `json:"playerId"`
	Entries  []SynergyEntry `json:"entries"`
}

// DefenseProfile ranks a team's defense per play type, 1 (stingiest) to 30.
type DefenseProfile struct {
	TeamID  string           `json:"teamId"`
	Ranks   map[PlayType]int `json:"ranks"`
	Overall int              `json:"overall"`
}

// NewDefenseProfile builds a profile and derives the overall rank as the rounded mean.
func NewDefenseProfile(teamID string, ranks map[PlayType]int) DefenseProfile {
	copied := make(map[PlayType]int, len(ranks))
	sum := 0
	for pt, r := range ranks {
		copied[pt] = r
		sum += r
	}
	overall := 0
	if len(copied) > 0 {
		overall = int(math.Round(float64(sum) / float64(len(copied))))
	}
	return DefenseProfile{TeamID: teamID, Ranks: copied, Overall: overall}
}

// Rank returns the rank for a play type and whether one is known.
func (d DefenseProfile) Rank(pt PlayType) (int, bool) {
	if d.Ranks == nil {
		return 0, false
	}
	r, ok := d.Ranks[pt]
	return r, ok
}

// IsEmpty reports whether the profile carries no rankings.
func (d DefenseProfile) IsEmpty() bool {
	return len(d.Ranks) == 0
}
