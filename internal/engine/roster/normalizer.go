package roster

import (
	"fmt"
	"sort"

	"github.com/preston-bernstein/nba-edge-service/internal/domain/matchups"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/players"
)

// DefaultUsage is the usage share assigned to players without a season-stats match.
const DefaultUsage = 0.12

// SyntheticIDPrefix marks identities derived from a player's name key when the
// source supplied no id.
const SyntheticIDPrefix = "name:"

// DefaultAverages is the conservative production assigned to players without a
// season-stats match.
func DefaultAverages() players.Averages {
	return players.Averages{Points: 6.0, Assists: 1.2, Rebounds: 2.5, Threes: 0.6}
}

// Roster is a normalized team roster sorted by season points per game, descending.
// Entries includes Out players so they can act as usage sources downstream.
type Roster struct {
	TeamID      string                `json:"teamId"`
	Entries     []players.RosterEntry `json:"entries"`
	Diagnostics []matchups.Diagnostic `json:"diagnostics,omitempty"`
}

// Active returns the players not ruled out, in roster order.
func (r Roster) Active() []players.RosterEntry {
	out := make([]players.RosterEntry, 0, len(r.Entries))
	for _, e := range r.Entries {
		if !e.Status.IsOut() {
			out = append(out, e)
		}
	}
	return out
}

// Inactive returns the players ruled out, in roster order.
func (r Roster) Inactive() []players.RosterEntry {
	var out []players.RosterEntry
	for _, e := range r.Entries {
		if e.Status.IsOut() {
			out = append(out, e)
		}
	}
	return out
}

type seasonIndex struct {
	records []players.SeasonRecord
	byID    map[string]int
	byName  map[string][]int
	used    map[int]bool
}

func newSeasonIndex(records []players.SeasonRecord) *seasonIndex {
	idx := &seasonIndex{
		records: records,
		byID:    make(map[string]int, len(records)),
		byName:  make(map[string][]int, len(records)),
		used:    make(map[int]bool, len(records)),
	}
	for i, rec := range records {
		if rec.ID != "" {
			if _, dup := idx.byID[rec.ID]; !dup {
				idx.byID[rec.ID] = i
			}
		}
		if key := NameKey(rec.Name); key != "" {
			idx.byName[key] = append(idx.byName[key], i)
		}
	}
	return idx
}

// match resolves a live roster record by id, then by canonical name.
// A shared name key or an already-claimed record is reported as unmatched.
func (idx *seasonIndex) match(rec players.RosterRecord) (players.SeasonRecord, string, bool) {
	if rec.ID != "" {
		if i, ok := idx.byID[rec.ID]; ok && !idx.used[i] {
			idx.used[i] = true
			return idx.records[i], "", true
		}
	}
	key := NameKey(rec.Name)
	candidates := idx.byName[key]
	switch {
	case key == "" || len(candidates) == 0:
		return players.SeasonRecord{}, "no season stats match", false
	case len(candidates) > 1:
		return players.SeasonRecord{}, fmt.Sprintf("ambiguous name match (%d candidates)", len(candidates)), false
	case idx.used[candidates[0]]:
		return players.SeasonRecord{}, "season stats already claimed by another player", false
	}
	idx.used[candidates[0]] = true
	return idx.records[candidates[0]], "", true
}

// Normalize merges the live roster with season baselines and the injury report.
// When the live roster is empty the season records form the roster; when both are
// empty a RosterUnavailableError is returned.
func Normalize(teamID string, raw []players.RosterRecord, season []players.SeasonRecord, injuries []players.InjuryRecord) (Roster, error) {
	if len(raw) == 0 && len(season) == 0 {
		return Roster{}, &RosterUnavailableError{TeamID: teamID}
	}

	result := Roster{TeamID: teamID}
	statuses := newStatusLookup(injuries)

	if len(raw) == 0 {
		ids := newIdentities(seasonIDs(season))
		seen := make(map[string]bool, len(season))
		for _, rec := range season {
			if rec.ID != "" {
				if seen[rec.ID] {
					continue
				}
				seen[rec.ID] = true
			}
			base := baselineFromSeason(teamID, ids.assign(rec.ID, "", rec.Name), rec.Name, rec.Position, rec)
			result.Entries = append(result.Entries, players.RosterEntry{
				Baseline: base,
				Status:   statuses.lookup(base.ID, base.Name),
				Matched:  true,
			})
		}
		sortByPoints(result.Entries)
		return result, nil
	}

	idx := newSeasonIndex(season)
	ids := newIdentities(rawIDs(raw))
	seen := make(map[string]bool, len(raw))
	for _, rec := range raw {
		if rec.ID != "" {
			if seen[rec.ID] {
				continue
			}
			seen[rec.ID] = true
		}
		entry := players.RosterEntry{Matched: true}
		if stats, reason, ok := idx.match(rec); ok {
			entry.Baseline = baselineFromSeason(teamID, ids.assign(rec.ID, stats.ID, rec.Name), rec.Name, rec.Position, stats)
		} else {
			entry.Matched = false
			entry.Baseline = players.Baseline{
				ID:       ids.assign(rec.ID, "", rec.Name),
				Name:     rec.Name,
				TeamID:   teamID,
				Position: rec.Position,
				Averages: DefaultAverages(),
				Usage:    DefaultUsage,
			}
			result.Diagnostics = append(result.Diagnostics, matchups.Diagnostic{
				Kind:     matchups.DiagUnmatchedPlayer,
				PlayerID: entry.ID,
				Message:  fmt.Sprintf("%s: %s; default averages used", rec.Name, reason),
			})
		}
		entry.Status = statuses.lookup(entry.ID, entry.Name)
		result.Entries = append(result.Entries, entry)
	}

	sortByPoints(result.Entries)
	return result, nil
}

// identities hands out one distinct id per roster entry. Downstream stages key
// multipliers, synergy and prop lines by id, so two entries must never share one.
type identities struct {
	taken map[string]bool
}

func newIdentities(reserved []string) identities {
	ids := identities{taken: make(map[string]bool, len(reserved))}
	for _, id := range reserved {
		if id != "" {
			ids.taken[id] = true
		}
	}
	return ids
}

// assign keeps a source id, adopts the matched season id when it is still free,
// and otherwise derives one from the name key, suffixed on collision.
func (ids identities) assign(sourceID, seasonID, name string) string {
	if sourceID != "" {
		return sourceID
	}
	if seasonID != "" && !ids.taken[seasonID] {
		ids.taken[seasonID] = true
		return seasonID
	}
	base := SyntheticIDPrefix + NameKey(name)
	id := base
	for n := 2; ids.taken[id]; n++ {
		id = fmt.Sprintf("%s#%d", base, n)
	}
	ids.taken[id] = true
	return id
}

func rawIDs(raw []players.RosterRecord) []string {
	out := make([]string, 0, len(raw))
	for _, rec := range raw {
		out = append(out, rec.ID)
	}
	return out
}

func seasonIDs(season []players.SeasonRecord) []string {
	out := make([]string, 0, len(season))
	for _, rec := range season {
		out = append(out, rec.ID)
	}
	return out
}

func baselineFromSeason(teamID, id, name, position string, rec players.SeasonRecord) players.Baseline {
	if name == "" {
		name = rec.Name
	}
	if position == "" {
		position = rec.Position
	}
	return players.Baseline{
		ID:       id,
		Name:     name,
		TeamID:   teamID,
		Position: position,
		Averages: rec.Averages,
		Usage:    clampUsage(rec.Usage),
	}
}

func clampUsage(u float64) float64 {
	switch {
	case u < 0:
		return 0
	case u > 1:
		return 1
	default:
		return u
	}
}

func sortByPoints(entries []players.RosterEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Averages.Points > entries[j].Averages.Points
	})
}

type statusLookup struct {
	byID   map[string]players.Status
	byName map[string]players.Status
}

func newStatusLookup(injuries []players.InjuryRecord) statusLookup {
	l := statusLookup{
		byID:   make(map[string]players.Status, len(injuries)),
		byName: make(map[string]players.Status, len(injuries)),
	}
	for _, inj := range injuries {
		status := inj.Status
		if status == "" {
			status = players.StatusActive
		}
		if inj.PlayerID != "" {
			l.byID[inj.PlayerID] = status
		}
		if key := NameKey(inj.PlayerName); key != "" {
			if _, dup := l.byName[key]; dup {
				// Two reports share a name: neither is trusted by name.
				l.byName[key] = ""
				continue
			}
			l.byName[key] = status
		}
	}
	return l
}

func (l statusLookup) lookup(id, name string) players.Status {
	if id != "" {
		if s, ok := l.byID[id]; ok {
			return s
		}
	}
	if s, ok := l.byName[NameKey(name)]; ok && s != "" {
		return s
	}
	return players.StatusActive
}
