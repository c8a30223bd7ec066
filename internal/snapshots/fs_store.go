package snapshots

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	domaingames "github.com/preston-bernstein/nba-edge-service/internal/domain/games"
)

// Store defines how snapshots are loaded.
type Store interface {
	LoadBoard(date string) (domaingames.Board, error)
}

// FSStore loads snapshots from the filesystem.
type FSStore struct {
	basePath string
}

// NewFSStore constructs an FS-backed snapshot store rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

// LoadBoard reads the board for the given date (YYYY-MM-DD) from disk.
// Files are expected at {basePath}/boards/{date}.json.
func (s *FSStore) LoadBoard(date string) (domaingames.Board, error) {
	if s == nil {
		return domaingames.Board{}, errors.New("snapshot store not configured")
	}
	if date == "" {
		return domaingames.Board{}, errors.New("snapshot date required")
	}
	var payload domaingames.Board
	if err := decodeFile(BoardSnapshotPath(s.basePath, date), &payload); err != nil {
		return domaingames.Board{}, err
	}
	if payload.Date == "" {
		payload.Date = date
	}
	return domaingames.NewBoard(payload.Date, payload.Matchups), nil
}

// Dates lists the snapshot dates recorded in the manifest, oldest first.
func (s *FSStore) Dates() ([]string, error) {
	if s == nil {
		return nil, errors.New("snapshot store not configured")
	}
	var m Manifest
	if err := decodeFile(filepath.Join(s.basePath, manifestFile), &m); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}
	if m.Boards.Dates == nil {
		return []string{}, nil
	}
	return m.Boards.Dates, nil
}

func decodeFile(path string, payload any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(payload)
}
