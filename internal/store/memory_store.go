package store

import (
	"sync"

	domaingames "github.com/preston-bernstein/nba-edge-service/internal/domain/games"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/matchups"
)

// MemoryStore keeps a thread-safe copy of the latest board: analyses by game id
// plus their schedule order.
type MemoryStore struct {
	mu       sync.RWMutex
	date     string
	order    []string
	analyses map[string]matchups.MatchupAnalysis
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		analyses: make(map[string]matchups.MatchupAnalysis),
	}
}

// Board returns the current board in schedule order.
func (s *MemoryStore) Board() domaingames.Board {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]matchups.MatchupAnalysis, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.analyses[id])
	}
	return domaingames.NewBoard(s.date, result)
}

// GetMatchup retrieves an analysis by game id.
func (s *MemoryStore) GetMatchup(gameID string) (matchups.MatchupAnalysis, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.analyses[gameID]
	return a, ok
}

// SetBoard replaces the existing board with a new one.
func (s *MemoryStore) SetBoard(board domaingames.Board) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.date = board.Date
	s.order = make([]string, 0, len(board.Matchups))
	s.analyses = make(map[string]matchups.MatchupAnalysis, len(board.Matchups))
	for _, a := range board.Matchups {
		if _, dup := s.analyses[a.GameID]; !dup {
			s.order = append(s.order, a.GameID)
		}
		s.analyses[a.GameID] = a
	}
}

// PutMatchup upserts one analysis, appending new games to the board.
func (s *MemoryStore) PutMatchup(a matchups.MatchupAnalysis) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.analyses[a.GameID]; !ok {
		s.order = append(s.order, a.GameID)
	}
	s.analyses[a.GameID] = a
}
