package snapshots

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	domaingames "github.com/preston-bernstein/nba-edge-service/internal/domain/games"
	"github.com/preston-bernstein/nba-edge-service/internal/timeutil"
)

type snapshotKind string

const (
	kindBoards snapshotKind = "boards"

	defaultRetentionDays = 14
)

// Writer persists board snapshots and the manifest, pruning by retention.
type Writer struct {
	basePath      string
	retentionDays int
	now           func() time.Time
	mu            sync.Mutex
}

// NewWriter constructs a writer rooted at basePath with a rolling window retention.
func NewWriter(basePath string, retentionDays int) *Writer {
	if retentionDays <= 0 {
		retentionDays = defaultRetentionDays
	}
	return &Writer{
		basePath:      basePath,
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

// BasePath exposes the writer root path.
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

// WriteBoard writes the board for date (YYYY-MM-DD) atomically and prunes old boards.
// An unchanged board only refreshes the manifest.
func (w *Writer) WriteBoard(date string, board domaingames.Board) error {
	if w == nil {
		return fmt.Errorf("snapshot writer not configured")
	}
	if _, err := timeutil.ParseDate(date); err != nil {
		return fmt.Errorf("snapshot date %q: %w", date, err)
	}
	if board.Date == "" {
		board.Date = date
	}
	board = domaingames.NewBoard(board.Date, board.Matchups)

	w.mu.Lock()
	defer w.mu.Unlock()

	target := BoardSnapshotPath(w.basePath, date)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(board, "", "  ")
	if err != nil {
		return err
	}

	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, data) {
		return w.updateManifest(date, summarize(board))
	}
	if err := writeAtomic(target, data); err != nil {
		return err
	}
	return w.updateManifest(date, summarize(board))
}

// HasBoard reports whether a board snapshot exists for date.
func (w *Writer) HasBoard(date string) bool {
	if w == nil || w.basePath == "" || date == "" {
		return false
	}
	_, err := os.Stat(BoardSnapshotPath(w.basePath, date))
	return err == nil
}

func (w *Writer) updateManifest(date string, summary BoardSummary) error {
	now := w.now()
	m, _ := readManifest(filepath.Join(w.basePath, manifestFile), w.retentionDays, now)

	dates, err := w.listDates()
	if err != nil {
		return err
	}
	if !containsDate(dates, date) {
		dates = append(dates, date)
	}

	m.Boards.Dates = w.pruneOldSnapshots(dates, now)
	m.Boards.Summaries[date] = summary
	kept := make(map[string]BoardSummary, len(m.Boards.Dates))
	for _, d := range m.Boards.Dates {
		if s, ok := m.Boards.Summaries[d]; ok {
			kept[d] = s
		}
	}
	m.Boards.Summaries = kept
	m.Boards.LastRefreshed = now.UTC()
	m.Retention.BoardsDays = w.retentionDays
	return writeManifest(w.basePath, m, now)
}

func containsDate(dates []string, date string) bool {
	for _, d := range dates {
		if d == date {
			return true
		}
	}
	return false
}

func (w *Writer) listDates() ([]string, error) {
	dir := filepath.Join(w.basePath, string(kindBoards))
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	var dates []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if filepath.Ext(name) != ".json" {
			continue
		}
		dates = append(dates, name[:len(name)-len(".json")])
	}
	sort.Strings(dates)
	return dates, nil
}

func (w *Writer) pruneOldSnapshots(dates []string, now time.Time) []string {
	now = now.UTC()
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -w.retentionDays)
	keep := make([]string, 0, len(dates))
	for _, d := range dates {
		parsed, err := timeutil.ParseDate(d)
		if err != nil {
			keep = append(keep, d)
			continue
		}
		if parsed.Before(cutoff) {
			_ = os.Remove(BoardSnapshotPath(w.basePath, d))
			continue
		}
		keep = append(keep, d)
	}
	sort.Strings(keep)
	return keep
}
