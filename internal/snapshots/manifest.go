package snapshots

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	domaingames "github.com/preston-bernstein/nba-edge-service/internal/domain/games"
)

const (
	manifestFile    = "manifest.json"
	manifestVersion = 2
)

// Manifest describes what the snapshot folder holds.
type Manifest struct {
	Version     int        `json:"version"`
	GeneratedAt time.Time  `json:"generatedAt"`
	Retention   Retention  `json:"retention"`
	Boards      BoardsMeta `json:"boards"`
}

type Retention struct {
	BoardsDays int `json:"boardsDays"`
}

type BoardsMeta struct {
	Dates         []string                `json:"dates"`
	Summaries     map[string]BoardSummary `json:"summaries,omitempty"`
	LastRefreshed time.Time               `json:"lastRefreshed"`
}

// BoardSummary counts what a stored board contains, so clients can skip empty slates.
type BoardSummary struct {
	Matchups int `json:"matchups"`
	Picks    int `json:"picks"`
}

func summarize(board domaingames.Board) BoardSummary {
	return BoardSummary{Matchups: len(board.Matchups), Picks: len(board.Picks())}
}

func defaultManifest(retentionDays int, now time.Time) Manifest {
	return Manifest{
		Version:     manifestVersion,
		GeneratedAt: now.UTC(),
		Retention:   Retention{BoardsDays: retentionDays},
		Boards: BoardsMeta{
			Dates:     []string{},
			Summaries: map[string]BoardSummary{},
		},
	}
}

// readManifest returns the default manifest alongside any read or decode error.
func readManifest(path string, retentionDays int, now time.Time) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return defaultManifest(retentionDays, now), err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return defaultManifest(retentionDays, now), fmt.Errorf("decode %s: %w", path, err)
	}
	if m.Boards.Summaries == nil {
		m.Boards.Summaries = map[string]BoardSummary{}
	}
	return m, nil
}

func writeManifest(basePath string, m Manifest, now time.Time) error {
	m.Version = manifestVersion
	m.GeneratedAt = now.UTC()
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(filepath.Join(basePath, manifestFile), data)
}

// writeAtomic writes through a temp file in the target directory, then renames.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}
