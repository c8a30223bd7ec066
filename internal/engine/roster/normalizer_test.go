package roster

import (
	"errors"
	"strings"
	"testing"

	"github.com/preston-bernstein/nba-edge-service/internal/domain/matchups"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/players"
)

func seasonRecord(id, name string, ppg, usage float64) players.SeasonRecord {
	return players.SeasonRecord{
		ID:       id,
		Name:     name,
		Averages: players.Averages{Points: ppg, Assists: 3, Rebounds: 4, Threes: 1},
		Usage:    usage,
	}
}

func TestNormalizeMatchesByIDAndSortsByPoints(t *testing.T) {
	raw := []players.RosterRecord{
		{ID: "p2", Name: "Role Player", Position: "F"},
		{ID: "p1", Name: "Star Guard", Position: "G"},
	}
	season := []players.SeasonRecord{
		seasonRecord("p1", "Star Guard", 30, 0.32),
		seasonRecord("p2", "Role Player", 9, 0.14),
	}

	r, err := Normalize("bos", raw, season, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(r.Entries))
	}
	if r.Entries[0].ID != "p1" || r.Entries[1].ID != "p2" {
		t.Fatalf("expected points-descending order, got %s,%s", r.Entries[0].ID, r.Entries[1].ID)
	}
	if r.Entries[0].TeamID != "bos" || r.Entries[0].Position != "G" {
		t.Fatalf("unexpected baseline %+v", r.Entries[0].Baseline)
	}
	if !r.Entries[0].Matched || r.Entries[0].Status != players.StatusActive {
		t.Fatalf("expected matched active entry, got %+v", r.Entries[0])
	}
	if len(r.Diagnostics) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", r.Diagnostics)
	}
}

func TestNormalizeFallsBackToNameMatch(t *testing.T) {
	raw := []players.RosterRecord{{ID: "urn:sr:player:9", Name: "Luka Doncic"}}
	season := []players.SeasonRecord{seasonRecord("77", "Luka Dončić", 33.9, 0.36)}

	r, err := Normalize("dal", raw, season, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := r.Entries[0]
	if !got.Matched || got.Averages.Points != 33.9 {
		t.Fatalf("expected name match to carry season stats, got %+v", got)
	}
	if got.ID != "urn:sr:player:9" {
		t.Fatalf("expected live roster id to be kept, got %s", got.ID)
	}
}

func TestNormalizeUnmatchedGetsDefaultsAndDiagnostic(t *testing.T) {
	raw := []players.RosterRecord{
		{ID: "p1", Name: "Known Player"},
		{ID: "x9", Name: "Two Way Call Up"},
	}
	season := []players.SeasonRecord{seasonRecord("p1", "Known Player", 12, 0.2)}

	r, err := Normalize("nyk", raw, season, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var unmatched players.RosterEntry
	for _, e := range r.Entries {
		if e.ID == "x9" {
			unmatched = e
		}
	}
	if unmatched.Matched {
		t.Fatal("expected call-up to be unmatched")
	}
	if unmatched.Averages != DefaultAverages() || unmatched.Usage != DefaultUsage {
		t.Fatalf("expected default production, got %+v", unmatched.Baseline)
	}
	if len(r.Diagnostics) != 1 || r.Diagnostics[0].Kind != matchups.DiagUnmatchedPlayer || r.Diagnostics[0].PlayerID != "x9" {
		t.Fatalf("expected one unmatched diagnostic for x9, got %+v", r.Diagnostics)
	}
}

func TestNormalizeAmbiguousNameIsUnmatched(t *testing.T) {
	raw := []players.RosterRecord{{ID: "live-1", Name: "Marcus Morris"}}
	season := []players.SeasonRecord{
		seasonRecord("a", "Marcus Morris Sr.", 8, 0.15),
		seasonRecord("b", "Marcus Morris", 6, 0.12),
	}

	r, err := Normalize("cle", raw, season, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Entries[0].Matched {
		t.Fatalf("expected ambiguous name to stay unmatched, got %+v", r.Entries[0])
	}
	if len(r.Diagnostics) != 1 {
		t.Fatalf("expected ambiguity diagnostic, got %+v", r.Diagnostics)
	}
}

func TestNormalizeDoesNotMergeTwoPlayersIntoOneRecord(t *testing.T) {
	raw := []players.RosterRecord{
		{ID: "s1", Name: "Jalen Williams"},
		{ID: "live-2", Name: "Jalen Williams"},
	}
	season := []players.SeasonRecord{seasonRecord("s1", "Jalen Williams", 19, 0.24)}

	r, err := Normalize("okc", raw, season, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	matched := 0
	for _, e := range r.Entries {
		if e.Matched {
			matched++
		}
	}
	if matched != 1 {
		t.Fatalf("expected exactly one matched entry, got %d", matched)
	}
}

func TestNormalizeAnnotatesInjuriesAndSplitsOut(t *testing.T) {
	raw := []players.RosterRecord{
		{ID: "p1", Name: "Star"},
		{ID: "p2", Name: "Wing"},
		{ID: "p3", Name: "Big Man"},
	}
	season := []players.SeasonRecord{
		seasonRecord("p1", "Star", 28, 0.3),
		seasonRecord("p2", "Wing", 15, 0.2),
		seasonRecord("p3", "Big Man", 11, 0.16),
	}
	injuries := []players.InjuryRecord{
		{PlayerID: "p1", Status: players.StatusOut, Description: "knee"},
		{PlayerName: "Big Man", Status: players.StatusDayToDay},
	}

	r, err := Normalize("mia", raw, season, injuries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	active := r.Active()
	if len(active) != 2 || active[0].ID != "p2" || active[1].ID != "p3" {
		t.Fatalf("expected p2,p3 active, got %+v", active)
	}
	if active[1].Status != players.StatusDayToDay {
		t.Fatalf("expected name-matched injury status, got %s", active[1].Status)
	}
	inactive := r.Inactive()
	if len(inactive) != 1 || inactive[0].ID != "p1" {
		t.Fatalf("expected p1 inactive, got %+v", inactive)
	}
	if len(r.Entries) != 3 || r.Entries[0].ID != "p1" {
		t.Fatal("expected full entries to keep the out player in points order")
	}
}

func TestNormalizeUsesSeasonRecordsWhenLiveRosterMissing(t *testing.T) {
	season := []players.SeasonRecord{
		seasonRecord("p2", "Bench", 5, 0.1),
		seasonRecord("p1", "Starter", 18, 0.25),
	}
	r, err := Normalize("phx", nil, season, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.Entries) != 2 || r.Entries[0].ID != "p1" || !r.Entries[0].Matched {
		t.Fatalf("expected season-derived roster, got %+v", r.Entries)
	}
}

func TestNormalizeRosterUnavailable(t *testing.T) {
	_, err := Normalize("sas", nil, nil, nil)
	if err == nil {
		t.Fatal("expected error when no roster data exists")
	}
	if !errors.Is(err, ErrRosterUnavailable) {
		t.Fatalf("expected ErrRosterUnavailable, got %v", err)
	}
	rErr, ok := AsRosterUnavailable(err)
	if !ok || rErr.TeamID != "sas" {
		t.Fatalf("expected typed error for sas, got %+v", rErr)
	}
}

func TestNormalizeClampsUsage(t *testing.T) {
	season := []players.SeasonRecord{seasonRecord("p1", "Bad Feed", 10, 1.7)}
	r, err := Normalize("det", []players.RosterRecord{{ID: "p1", Name: "Bad Feed"}}, season, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Entries[0].Usage != 1 {
		t.Fatalf("expected usage clamped to 1, got %v", r.Entries[0].Usage)
	}
}

func TestNormalizeGivesIDLessPlayersDistinctIDs(t *testing.T) {
	cases := []struct {
		name   string
		raw    []players.RosterRecord
		season []players.SeasonRecord
	}{
		{
			name:   "season records only",
			season: []players.SeasonRecord{seasonRecord("", "Alpha One", 30, 0.2), seasonRecord("", "Bravo Two", 20, 0.3)},
		},
		{
			name:   "live roster unmatched",
			raw:    []players.RosterRecord{{Name: "Alpha One"}, {Name: "Bravo Two"}},
			season: []players.SeasonRecord{seasonRecord("zz", "Someone Else", 5, 0.1)},
		},
		{
			name:   "same name twice",
			raw:    []players.RosterRecord{{Name: "Alpha One"}, {Name: "Alpha One"}},
			season: []players.SeasonRecord{seasonRecord("", "Alpha One", 30, 0.2)},
		},
	}

	for _, tc := range cases {
		r, err := Normalize("bos", tc.raw, tc.season, nil)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		seen := map[string]bool{}
		for _, e := range r.Entries {
			if !strings.HasPrefix(e.ID, SyntheticIDPrefix) {
				t.Fatalf("%s: expected a name-derived id, got %q", tc.name, e.ID)
			}
			if seen[e.ID] {
				t.Fatalf("%s: duplicate id %q in %+v", tc.name, e.ID, r.Entries)
			}
			seen[e.ID] = true
		}
		if len(seen) != 2 {
			t.Fatalf("%s: expected two entries, got %+v", tc.name, r.Entries)
		}
	}
}

func TestNormalizeAdoptsSeasonIDForIDLessLivePlayer(t *testing.T) {
	raw := []players.RosterRecord{{Name: "Alpha One"}}
	season := []players.SeasonRecord{seasonRecord("s7", "Alpha One", 30, 0.2)}

	r, err := Normalize("bos", raw, season, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Entries[0].ID != "s7" || !r.Entries[0].Matched {
		t.Fatalf("expected season id s7 to be adopted, got %+v", r.Entries[0])
	}
}
