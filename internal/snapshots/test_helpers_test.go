package snapshots

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	domaingames "github.com/preston-bernstein/nba-edge-service/internal/domain/games"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/matchups"
)

func simpleBoard(date string) domaingames.Board {
	return domaingames.NewBoard(date, []matchups.MatchupAnalysis{
		{GameID: date, Source: "test"},
	})
}

func writeBoard(t *testing.T, w *Writer, date string, board domaingames.Board) {
	t.Helper()
	if w == nil {
		t.Fatalf("writer is nil for date %s", date)
	}
	if err := w.WriteBoard(date, board); err != nil {
		t.Fatalf("failed to write board %s: %v", date, err)
	}
}

func writeSimpleBoard(t *testing.T, w *Writer, date string) {
	t.Helper()
	writeBoard(t, w, date, simpleBoard(date))
}

func requireBoardExists(t *testing.T, w *Writer, date string) {
	t.Helper()
	if _, err := os.Stat(BoardSnapshotPath(w.BasePath(), date)); err != nil {
		t.Fatalf("expected board for %s to be written: %v", date, err)
	}
}

func assertDatesEqual(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("dates length mismatch: got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("dates mismatch at %d: got %v, want %v", i, got, want)
		}
	}
}

type fakeAnalyzer struct {
	mu    sync.Mutex
	dates []string
	fail  map[string]bool
}

func (a *fakeAnalyzer) AnalyzeSlate(ctx context.Context, date string) (domaingames.Board, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.dates = append(a.dates, date)
	if a.fail[date] {
		return domaingames.Board{}, errors.New("boom")
	}
	return simpleBoard(date), nil
}
