// Package usage redistributes the possessions of unavailable core players
// across the active roster.
package usage

import (
	"sort"

	"github.com/preston-bernstein/nba-edge-service/internal/domain/players"
)

// Policy controls which statuses count as unavailable for redistribution.
type Policy struct {
	// DayToDayUnavailable treats DayToDay players as missing, in addition to Out.
	DayToDayUnavailable bool `json:"dayToDayUnavailable"`
}

// Unavailable reports whether a status removes the player from the usage pool.
func (p Policy) Unavailable(s players.Status) bool {
	if s.IsOut() {
		return true
	}
	return p.DayToDayUnavailable && s == players.StatusDayToDay
}

// Multipliers maps player id to volume multiplier.
type Multipliers map[string]float64

// For returns the multiplier for a player, 1.0 when none was computed.
func (m Multipliers) For(playerID string) float64 {
	if v, ok := m[playerID]; ok {
		return v
	}
	return 1.0
}

// Result carries the multipliers plus the totals that produced them.
type Result struct {
	Multipliers  Multipliers
	Core         []string
	MissingUsage float64
	ActiveUsage  float64
}

// CoreSize is ceil(n * 0.2) with a minimum of 1 for a non-empty roster.
func CoreSize(n int) int {
	if n <= 0 {
		return 0
	}
	size := (n + 4) / 5
	if size < 1 {
		return 1
	}
	return size
}

// TopByUsage returns the first n entries ordered by usage share, descending.
// Ties keep roster order.
func TopByUsage(entries []players.RosterEntry, n int) []players.RosterEntry {
	sorted := make([]players.RosterEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Usage > sorted[j].Usage
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	if n < 0 {
		n = 0
	}
	return sorted[:n]
}

// Redistribute computes each player's volume multiplier. Missing usage from the
// core is reallocated to active players in proportion to their own share:
//
//	multiplier = (usage + missing*(usage/active)) / usage
//
// Unavailable players get 0. The roster is not modified.
func Redistribute(entries []players.RosterEntry, policy Policy) Result {
	res := Result{Multipliers: make(Multipliers, len(entries))}
	if len(entries) == 0 {
		return res
	}

	for _, e := range TopByUsage(entries, CoreSize(len(entries))) {
		res.Core = append(res.Core, e.ID)
		if policy.Unavailable(e.Status) {
			res.MissingUsage += e.Usage
		}
	}

	for _, e := range entries {
		if !policy.Unavailable(e.Status) {
			res.ActiveUsage += e.Usage
		}
	}

	redistribute := res.MissingUsage > 0 && res.ActiveUsage > 0
	for _, e := range entries {
		switch {
		case policy.Unavailable(e.Status):
			res.Multipliers[e.ID] = 0
		case redistribute && e.Usage > 0:
			share := e.Usage / res.ActiveUsage
			res.Multipliers[e.ID] = (e.Usage + res.MissingUsage*share) / e.Usage
		default:
			res.Multipliers[e.ID] = 1.0
		}
	}
	return res
}
