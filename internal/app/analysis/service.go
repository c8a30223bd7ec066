// Package analysis gathers provider data for a slate and runs the engine on
// every matchup.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	domaingames "github.com/preston-bernstein/nba-edge-service/internal/domain/games"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/matchups"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/players"
	"github.com/preston-bernstein/nba-edge-service/internal/engine"
	"github.com/preston-bernstein/nba-edge-service/internal/engine/roster"
	"github.com/preston-bernstein/nba-edge-service/internal/engine/usage"
	"github.com/preston-bernstein/nba-edge-service/internal/logging"
	"github.com/preston-bernstein/nba-edge-service/internal/metrics"
	"github.com/preston-bernstein/nba-edge-service/internal/providers"
	"github.com/preston-bernstein/nba-edge-service/internal/timeutil"
)

// Store defines the contract for publishing and reading the current board.
type Store interface {
	Board() domaingames.Board
	GetMatchup(gameID string) (matchups.MatchupAnalysis, bool)
	SetBoard(board domaingames.Board)
	PutMatchup(a matchups.MatchupAnalysis)
}

// Options tunes how slates are fetched and projected.
type Options struct {
	Policy   usage.Policy
	Timezone string
}

// Service coordinates provider fetches, the engine and the Store.
type Service struct {
	provider providers.DataProvider
	store    Store
	logger   *slog.Logger
	metrics  *metrics.Recorder
	opts     Options
}

// NewService constructs a Service.
func NewService(provider providers.DataProvider, store Store, logger *slog.Logger, recorder *metrics.Recorder, opts Options) *Service {
	return &Service{
		provider: provider,
		store:    store,
		logger:   logger,
		metrics:  recorder,
		opts:     opts,
	}
}

// slateContext is fetched once per slate and shared by every game.
type slateContext struct {
	date      string
	injuries  []players.InjuryRecord
	playedDay map[string]bool
}

// AnalyzeSlate analyzes every playable game on date. Games whose roster is
// unavailable or whose team data cannot be fetched are logged and skipped.
func (s *Service) AnalyzeSlate(ctx context.Context, date string) (domaingames.Board, error) {
	if s.provider == nil {
		return domaingames.Board{}, providers.ErrProviderUnavailable
	}
	slate, err := s.provider.FetchGames(ctx, date, s.opts.Timezone)
	if err != nil {
		return domaingames.Board{}, fmt.Errorf("fetch games for %s: %w", date, err)
	}

	sc := s.prepare(ctx, date)
	out := make([]matchups.MatchupAnalysis, 0, len(slate))
	for _, g := range slate {
		if err := ctx.Err(); err != nil {
			return domaingames.Board{}, err
		}
		if !g.Playable() {
			continue
		}
		a, err := s.analyzeWith(ctx, sc, g)
		if err != nil {
			logging.Warn(logging.FromContext(ctx, s.logger), "matchup skipped",
				logging.FieldGameID, g.ID,
				logging.FieldDate, date,
				"error", err,
			)
			continue
		}
		out = append(out, a)
	}
	return domaingames.NewBoard(date, out), nil
}

// AnalyzeGame analyzes a single scheduled game for date and stores the result.
func (s *Service) AnalyzeGame(ctx context.Context, date string, game domaingames.Game) (matchups.MatchupAnalysis, error) {
	if s.provider == nil {
		return matchups.MatchupAnalysis{}, providers.ErrProviderUnavailable
	}
	a, err := s.analyzeWith(ctx, s.prepare(ctx, date), game)
	if err != nil {
		return matchups.MatchupAnalysis{}, err
	}
	if s.store != nil {
		s.store.PutMatchup(a)
	}
	return a, nil
}

// Analyze runs the engine on caller-supplied input and records metrics. Nothing is stored.
func (s *Service) Analyze(in engine.MatchupInput) (matchups.MatchupAnalysis, error) {
	a, err := engine.Analyze(in)
	if err != nil {
		s.recordRosterFailure(err)
		return matchups.MatchupAnalysis{}, err
	}
	s.record(a)
	return a, nil
}

// Publish makes board the current board.
func (s *Service) Publish(board domaingames.Board) {
	if s.store != nil {
		s.store.SetBoard(board)
	}
}

// Current returns the current board.
func (s *Service) Current() domaingames.Board {
	if s.store == nil {
		return domaingames.NewBoard("", nil)
	}
	return s.store.Board()
}

// Matchup returns a stored analysis by game id.
func (s *Service) Matchup(gameID string) (matchups.MatchupAnalysis, bool) {
	if s.store == nil {
		return matchups.MatchupAnalysis{}, false
	}
	return s.store.GetMatchup(gameID)
}

// prepare fetches the slate-wide inputs. Failures degrade the analysis rather than abort it.
func (s *Service) prepare(ctx context.Context, date string) slateContext {
	logger := logging.FromContext(ctx, s.logger)
	sc := slateContext{date: date, playedDay: map[string]bool{}}

	injuries, err := s.provider.FetchInjuries(ctx, date)
	if err != nil {
		logging.Warn(logger, "injury report unavailable", logging.FieldDate, date, "error", err)
	}
	sc.injuries = injuries

	prev, err := timeutil.PreviousDate(date)
	if err != nil {
		return sc
	}
	yesterday, err := s.provider.FetchGames(ctx, prev, s.opts.Timezone)
	if err != nil {
		logging.Warn(logger, "previous slate unavailable; back-to-backs not flagged", logging.FieldDate, prev, "error", err)
		return sc
	}
	for _, g := range yesterday {
		if !g.Playable() {
			continue
		}
		sc.playedDay[g.HomeTeam.ID] = true
		sc.playedDay[g.AwayTeam.ID] = true
	}
	return sc
}

func (s *Service) analyzeWith(ctx context.Context, sc slateContext, g domaingames.Game) (matchups.MatchupAnalysis, error) {
	home, err := s.provider.FetchTeamData(ctx, g.HomeTeam.ID)
	if err != nil {
		return matchups.MatchupAnalysis{}, fmt.Errorf("fetch %s: %w", g.HomeTeam.ID, err)
	}
	away, err := s.provider.FetchTeamData(ctx, g.AwayTeam.ID)
	if err != nil {
		return matchups.MatchupAnalysis{}, fmt.Errorf("fetch %s: %w", g.AwayTeam.ID, err)
	}

	market, err := s.provider.FetchMarket(ctx, g.ID)
	if err != nil {
		if !errors.Is(err, providers.ErrMarketUnavailable) {
			logging.Warn(logging.FromContext(ctx, s.logger), "market fetch failed; analyzing without prices",
				logging.FieldGameID, g.ID, "error", err)
		}
		market = nil
	}

	in := engine.MatchupInput{
		GameID:   g.ID,
		Source:   g.Provider,
		Home:     teamInput(g.HomeTeam.ID, home, sc.playedDay),
		Away:     teamInput(g.AwayTeam.ID, away, sc.playedDay),
		Injuries: sc.injuries,
		Market:   market,
		Policy:   s.opts.Policy,
	}
	in.Home.Team = g.HomeTeam
	in.Away.Team = g.AwayTeam

	a, err := engine.Analyze(in)
	if err != nil {
		s.recordRosterFailure(err)
		return matchups.MatchupAnalysis{}, err
	}
	s.record(a)
	logging.Info(logging.FromContext(ctx, s.logger), "matchup analyzed",
		logging.FieldGameID, a.GameID,
		logging.FieldBetKind, string(a.BestBet.Kind),
		logging.FieldCount, len(a.AllDiagnostics()),
	)
	return a, nil
}

func teamInput(teamID string, data matchups.TeamData, playedDay map[string]bool) engine.TeamInput {
	return engine.TeamInput{
		Roster:      data.Roster,
		SeasonStats: data.SeasonStats,
		Synergy:     data.Synergy,
		Defense:     data.Defense,
		BackToBack:  playedDay[teamID],
	}
}

func (s *Service) record(a matchups.MatchupAnalysis) {
	unmatched := 0
	for _, d := range a.AllDiagnostics() {
		if d.Kind == matchups.DiagUnmatchedPlayer {
			unmatched++
		}
	}
	s.metrics.RecordAnalysis(a.Source, string(a.BestBet.Kind), unmatched)
}

func (s *Service) recordRosterFailure(err error) {
	if rerr, ok := roster.AsRosterUnavailable(err); ok {
		s.metrics.RecordRosterFailure(rerr.TeamID)
	}
}
