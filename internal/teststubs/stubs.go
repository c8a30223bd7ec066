package teststubs

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	domaingames "github.com/preston-bernstein/nba-edge-service/internal/domain/games"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/matchups"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/players"
)

// StubProvider is a test double for providers.DataProvider.
// GamesByDate takes precedence over Games when the date is present.
type StubProvider struct {
	Games       []domaingames.Game
	GamesByDate map[string][]domaingames.Game
	Teams       map[string]matchups.TeamData
	Injuries    []players.InjuryRecord
	Markets     map[string]*matchups.MarketSnapshot
	Err         error
	MarketErr   error
	Calls       atomic.Int32
	TeamCalls   atomic.Int32
	InjuryCalls atomic.Int32
	MarketCalls atomic.Int32
	Notify      chan struct{}

	mu    sync.Mutex
	dates []string
}

// FetchGames returns configured games and error while tracking calls.
func (s *StubProvider) FetchGames(ctx context.Context, date string, tz string) ([]domaingames.Game, error) {
	_ = ctx
	_ = tz
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)
	s.mu.Lock()
	s.dates = append(s.dates, date)
	s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if g, ok := s.GamesByDate[date]; ok {
		return g, nil
	}
	if s.GamesByDate != nil && s.Games == nil {
		return []domaingames.Game{}, nil
	}
	return s.Games, nil
}

// RequestedDates returns the dates passed to FetchGames, in call order.
func (s *StubProvider) RequestedDates() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.dates...)
}

// FetchTeamData returns the configured team or an empty record.
func (s *StubProvider) FetchTeamData(ctx context.Context, teamID string) (matchups.TeamData, error) {
	_ = ctx
	s.TeamCalls.Add(1)
	if s.Err != nil {
		return matchups.TeamData{}, s.Err
	}
	if td, ok := s.Teams[teamID]; ok {
		return td, nil
	}
	return matchups.TeamData{TeamID: teamID}, nil
}

// FetchInjuries returns the configured injury report.
func (s *StubProvider) FetchInjuries(ctx context.Context, date string) ([]players.InjuryRecord, error) {
	_ = ctx
	_ = date
	s.InjuryCalls.Add(1)
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Injuries, nil
}

// FetchMarket returns the configured market, or MarketErr when none exists for the game.
func (s *StubProvider) FetchMarket(ctx context.Context, gameID string) (*matchups.MarketSnapshot, error) {
	_ = ctx
	s.MarketCalls.Add(1)
	if s.Err != nil {
		return nil, s.Err
	}
	if m, ok := s.Markets[gameID]; ok {
		return m, nil
	}
	if s.MarketErr != nil {
		return nil, s.MarketErr
	}
	return nil, errors.New("no market configured")
}

// StubSnapshotStore is a test double for snapshots.Store.
type StubSnapshotStore struct {
	Boards  map[string]domaingames.Board // keyed by date
	LoadErr error
}

// LoadBoard returns the board for the given date if present.
func (s *StubSnapshotStore) LoadBoard(date string) (domaingames.Board, error) {
	if s.LoadErr != nil {
		return domaingames.Board{}, s.LoadErr
	}
	board, ok := s.Boards[date]
	if !ok {
		return domaingames.Board{}, errors.New("snapshot not found")
	}
	return board, nil
}

// StubSnapshotWriter is a test double for poller.SnapshotWriter.
type StubSnapshotWriter struct {
	mu      sync.Mutex
	Written map[string]domaingames.Board // keyed by date
	Err     error
}

// WriteBoard records the board for verification in tests.
func (w *StubSnapshotWriter) WriteBoard(date string, board domaingames.Board) error {
	if w.Err != nil {
		return w.Err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.Written == nil {
		w.Written = make(map[string]domaingames.Board)
	}
	w.Written[date] = board
	return nil
}

// Board returns a written board.
func (w *StubSnapshotWriter) Board(date string) (domaingames.Board, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	b, ok := w.Written[date]
	return b, ok
}

// StubAnalyzer is a test double for the slate analyzer used by the poller,
// the snapshot syncer and the admin handler.
type StubAnalyzer struct {
	Boards map[string]domaingames.Board // keyed by date
	Err    error
	Calls  atomic.Int32
	Notify chan struct{}

	mu        sync.Mutex
	dates     []string
	published []domaingames.Board
}

// AnalyzeSlate returns the configured board for date, or an empty board.
func (a *StubAnalyzer) AnalyzeSlate(ctx context.Context, date string) (domaingames.Board, error) {
	_ = ctx
	if a.Notify != nil {
		select {
		case <-a.Notify:
		default:
			close(a.Notify)
		}
	}
	a.Calls.Add(1)
	a.mu.Lock()
	a.dates = append(a.dates, date)
	a.mu.Unlock()
	if a.Err != nil {
		return domaingames.Board{}, a.Err
	}
	if b, ok := a.Boards[date]; ok {
		return b, nil
	}
	return domaingames.NewBoard(date, nil), nil
}

// Publish records the published board.
func (a *StubAnalyzer) Publish(board domaingames.Board) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.published = append(a.published, board)
}

// Dates returns the analyzed dates in call order.
func (a *StubAnalyzer) Dates() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.dates...)
}

// Published returns the published boards in call order.
func (a *StubAnalyzer) Published() []domaingames.Board {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]domaingames.Board(nil), a.published...)
}
