package fixture

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/preston-bernstein/nba-edge-service/internal/domain/players"
	"github.com/preston-bernstein/nba-edge-service/internal/providers"
)

func TestFetchGamesReturnsDeterministicGames(t *testing.T) {
	fixed := time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)
	p := New()
	p.now = func() time.Time { return fixed }

	games, err := p.FetchGames(context.Background(), "", "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(games))
	}

	first := games[0]
	if first.ID != "fixture-1" || first.Provider != Source {
		t.Fatalf("unexpected first game: %+v", first)
	}
	if first.StartTime != fixed.Truncate(time.Hour).Add(2*time.Hour).Format(time.RFC3339) {
		t.Fatalf("unexpected start time %s", first.StartTime)
	}
	if first.Meta.UpstreamGameID != 1001 {
		t.Fatalf("unexpected upstream id %d", first.Meta.UpstreamGameID)
	}
	if first.HomeTeam.ID != "bos" || first.AwayTeam.ID != "lal" {
		t.Fatalf("unexpected teams %s vs %s", first.HomeTeam.ID, first.AwayTeam.ID)
	}
}

func TestFetchGamesAlternatesByDay(t *testing.T) {
	p := New()

	tests := []struct {
		date  string
		count int
		first string
	}{
		{date: "2024-02-09", count: 2, first: "fixture-1"},
		{date: "2024-02-10", count: 1, first: "fixture-3"},
		{date: "2024-01-01", count: 1, first: "fixture-3"},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			games, err := p.FetchGames(context.Background(), tt.date, "")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(games) != tt.count || games[0].ID != tt.first {
				t.Fatalf("unexpected slate %+v", games)
			}
			if games[0].StartTime[:10] != tt.date {
				t.Fatalf("expected date override, got %s", games[0].StartTime)
			}
		})
	}
}

func TestFetchTeamDataCoversSlate(t *testing.T) {
	p := New()
	for _, id := range []string{"bos", "lal", "gsw", "mia"} {
		td, err := p.FetchTeamData(context.Background(), id)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", id, err)
		}
		if td.TeamID != id || len(td.Roster) == 0 || len(td.SeasonStats) == 0 {
			t.Fatalf("%s: incomplete team data %+v", id, td)
		}
		if td.Defense.IsEmpty() || td.Defense.Overall == 0 {
			t.Fatalf("%s: expected a defensive profile", id)
		}
	}

	unknown, err := p.FetchTeamData(context.Background(), "nyk")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(unknown.Roster) != 0 || len(unknown.SeasonStats) != 0 {
		t.Fatalf("expected empty data for unknown team")
	}
}

func TestFetchTeamDataReturnsFreshCopies(t *testing.T) {
	p := New()
	a, _ := p.FetchTeamData(context.Background(), "bos")
	a.Roster[0].Name = "mutated"
	b, _ := p.FetchTeamData(context.Background(), "bos")
	if b.Roster[0].Name == "mutated" {
		t.Fatalf("expected fixture data to be rebuilt per call")
	}
}

func TestFetchInjuries(t *testing.T) {
	injuries, err := New().FetchInjuries(context.Background(), "2024-01-02")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	var out int
	for _, inj := range injuries {
		if inj.Status == players.StatusOut {
			out++
		}
	}
	if out != 1 {
		t.Fatalf("expected one player ruled out, got %d", out)
	}
}

func TestFetchMarket(t *testing.T) {
	p := New()
	m, err := p.FetchMarket(context.Background(), "fixture-1")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if m.HomeMoneyline == nil || *m.HomeMoneyline != -180 {
		t.Fatalf("unexpected home moneyline %+v", m.HomeMoneyline)
	}
	if prop, ok := m.PropFor("lal-1", players.StatPoints); !ok || prop.Line != 26.5 {
		t.Fatalf("expected LeBron points line, got %+v", prop)
	}

	if _, err := p.FetchMarket(context.Background(), "fixture-3"); !errors.Is(err, providers.ErrMarketUnavailable) {
		t.Fatalf("expected ErrMarketUnavailable, got %v", err)
	}
}

func TestProviderSatisfiesDataProvider(t *testing.T) {
	var _ providers.DataProvider = New()
}
