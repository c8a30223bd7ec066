package testutil

import (
	"github.com/preston-bernstein/nba-edge-service/internal/app/analysis"
	domaingames "github.com/preston-bernstein/nba-edge-service/internal/domain/games"
	"github.com/preston-bernstein/nba-edge-service/internal/metrics"
	"github.com/preston-bernstein/nba-edge-service/internal/providers"
	"github.com/preston-bernstein/nba-edge-service/internal/providers/fixture"
	"github.com/preston-bernstein/nba-edge-service/internal/store"
)

// NewServiceWithBoard builds an analysis service without a provider whose current board is board.
func NewServiceWithBoard(board domaingames.Board) *analysis.Service {
	ms := store.NewMemoryStore()
	if board.Date != "" || len(board.Matchups) > 0 {
		ms.SetBoard(board)
	}
	return analysis.NewService(nil, ms, nil, nil, analysis.Options{})
}

// NewServiceWithProvider builds an analysis service over provider with an empty store.
func NewServiceWithProvider(provider providers.DataProvider, recorder *metrics.Recorder) *analysis.Service {
	return analysis.NewService(provider, store.NewMemoryStore(), nil, recorder, analysis.Options{})
}

// NewFixtureService builds an analysis service backed by the deterministic fixture provider.
func NewFixtureService() *analysis.Service {
	return NewServiceWithProvider(fixture.New(), nil)
}
