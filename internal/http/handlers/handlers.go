package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	domaingames "github.com/preston-bernstein/nba-edge-service/internal/domain/games"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/matchups"
	"github.com/preston-bernstein/nba-edge-service/internal/engine"
	"github.com/preston-bernstein/nba-edge-service/internal/engine/roster"
	"github.com/preston-bernstein/nba-edge-service/internal/logging"
	"github.com/preston-bernstein/nba-edge-service/internal/oddsmath"
	"github.com/preston-bernstein/nba-edge-service/internal/poller"
	"github.com/preston-bernstein/nba-edge-service/internal/snapshots"
	"github.com/preston-bernstein/nba-edge-service/internal/timeutil"
)

const maxAnalyzeBody = 1 << 20

// Service is the analysis surface the handlers read from.
type Service interface {
	Current() domaingames.Board
	Matchup(gameID string) (matchups.MatchupAnalysis, bool)
	Analyze(in engine.MatchupInput) (matchups.MatchupAnalysis, error)
}

// Handler wires HTTP routes to the analysis service and snapshot store.
type Handler struct {
	svc      Service
	snaps    snapshots.Store
	logger   *slog.Logger
	location *time.Location
	now      func() time.Time
	statusFn func() poller.Status
}

// NewHandler constructs a Handler. A nil location means UTC.
func NewHandler(svc Service, snaps snapshots.Store, logger *slog.Logger, location *time.Location, statusFn func() poller.Status) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		svc:      svc,
		snaps:    snaps,
		logger:   logger,
		location: location,
		now:      time.Now,
		statusFn: statusFn,
	}
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.statusFn == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":   "ready",
			"date":     status.LastDate,
			"matchups": status.LastMatchups,
		}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, http.StatusServiceUnavailable, msg, h.logger)
}

// Matchups returns the current board, or the stored board for ?date=.
func (h *Handler) Matchups(w http.ResponseWriter, r *http.Request) {
	board, status, msg := h.resolveBoard(r)
	if status != http.StatusOK {
		writeError(w, r, status, msg, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, board, h.logger)
}

// MatchupByID returns one analyzed matchup from the current board.
func (h *Handler) MatchupByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" || strings.ContainsAny(id, " \t/") {
		writeError(w, r, http.StatusBadRequest, "invalid matchup id", h.logger)
		return
	}
	a, ok := h.svc.Matchup(id)
	if !ok {
		writeError(w, r, http.StatusNotFound, "matchup not found", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, a, h.logger)
}

// Pick is one best bet with the bookmaker's implied probability when a price is known.
type Pick struct {
	GameID             string           `json:"gameId"`
	Home               string           `json:"home"`
	Away               string           `json:"away"`
	BestBet            matchups.BestBet `json:"bestBet"`
	ImpliedProbability *float64         `json:"impliedProbability,omitempty"`
}

// PicksResponse lists the board's actionable bets.
type PicksResponse struct {
	Date  string `json:"date"`
	Picks []Pick `json:"picks"`
}

// Picks returns the non-None best bets of the current board, or of ?date=.
func (h *Handler) Picks(w http.ResponseWriter, r *http.Request) {
	board, status, msg := h.resolveBoard(r)
	if status != http.StatusOK {
		writeError(w, r, status, msg, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, BuildPicks(board), h.logger)
}

// BuildPicks lists the board's non-None best bets with implied probabilities.
func BuildPicks(board domaingames.Board) PicksResponse {
	out := PicksResponse{Date: board.Date, Picks: []Pick{}}
	for _, m := range board.Picks() {
		p := Pick{
			GameID:  m.GameID,
			Home:    m.Home.Team.Alias(),
			Away:    m.Away.Team.Alias(),
			BestBet: m.BestBet,
		}
		if m.BestBet.Price != 0 {
			if implied, err := oddsmath.AmericanToImpliedProbability(m.BestBet.Price); err == nil {
				p.ImpliedProbability = &implied
			}
		}
		out.Picks = append(out.Picks, p)
	}
	return out
}

// Analyze runs the engine on a posted MatchupInput without storing the result.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	var in engine.MatchupInput
	dec := json.NewDecoder(io.LimitReader(r.Body, maxAnalyzeBody))
	if err := dec.Decode(&in); err != nil {
		logging.Warn(logger, "analyze request rejected", "error", err)
		writeError(w, r, http.StatusBadRequest, "invalid matchup input", logger)
		return
	}
	a, err := h.svc.Analyze(in)
	if err != nil {
		if rerr, ok := roster.AsRosterUnavailable(err); ok {
			logging.Warn(logger, "analyze roster unavailable", logging.FieldTeamID, rerr.TeamID)
			writeError(w, r, http.StatusUnprocessableEntity, err.Error(), logger)
			return
		}
		logging.Error(logger, "analyze failed", err)
		writeError(w, r, http.StatusInternalServerError, "analysis failed", logger)
		return
	}
	writeJSON(w, http.StatusOK, a, logger)
}

// resolveBoard picks the board for a request. Explicit dates are served from
// snapshots only; the default path serves the current board and falls back to
// today's snapshot while the poller is still warming up.
func (h *Handler) resolveBoard(r *http.Request) (domaingames.Board, int, string) {
	logger := loggerFromContext(r, h.logger)
	dateParam := strings.TrimSpace(r.URL.Query().Get("date"))

	if dateParam != "" {
		if _, err := timeutil.ParseDate(dateParam); err != nil {
			return domaingames.Board{}, http.StatusBadRequest, "invalid date format (expected YYYY-MM-DD)"
		}
		board, err := h.loadSnapshot(dateParam)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return domaingames.Board{}, http.StatusNotFound, "no board for date"
			}
			logging.Warn(logger, "snapshot load failed", logging.FieldDate, dateParam, "error", err)
			return domaingames.Board{}, http.StatusBadGateway, "snapshot unavailable"
		}
		logging.Info(logger, "served snapshot board", logging.FieldDate, board.Date, logging.FieldCount, len(board.Matchups))
		return board, http.StatusOK, ""
	}

	board := h.svc.Current()
	if len(board.Matchups) == 0 {
		today := timeutil.Today(h.now(), timeutil.Location(r.URL.Query().Get("tz"), h.location))
		if snap, err := h.loadSnapshot(today); err == nil {
			logging.Info(logger, "served snapshot board", logging.FieldDate, snap.Date, logging.FieldCount, len(snap.Matchups))
			return snap, http.StatusOK, ""
		}
		if board.Date == "" {
			board = domaingames.NewBoard(today, nil)
		}
	}
	return board, http.StatusOK, ""
}

func (h *Handler) loadSnapshot(date string) (domaingames.Board, error) {
	if h.snaps == nil {
		return domaingames.Board{}, errors.New("snapshot store not configured")
	}
	return h.snaps.LoadBoard(date)
}
