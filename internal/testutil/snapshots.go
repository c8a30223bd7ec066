package testutil

import (
	"testing"

	"github.com/preston-bernstein/nba-edge-service/internal/snapshots"
)

// NewTempWriter returns a snapshot writer rooted in a temp dir.
func NewTempWriter(t *testing.T, retention int) *snapshots.Writer {
	t.Helper()
	return snapshots.NewWriter(t.TempDir(), retention)
}

// WriteSnapshot writes a board for date holding one matchup per id.
func WriteSnapshot(t *testing.T, w *snapshots.Writer, date string, ids ...string) {
	t.Helper()
	if err := w.WriteBoard(date, SampleBoard(date, ids...)); err != nil {
		t.Fatalf("failed to write snapshot %s: %v", date, err)
	}
}

// SnapshotPath returns the expected file path for a board date.
func SnapshotPath(w *snapshots.Writer, date string) string {
	return snapshots.BoardSnapshotPath(w.BasePath(), date)
}
