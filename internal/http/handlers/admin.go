package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	domaingames "github.com/preston-bernstein/nba-edge-service/internal/domain/games"
	"github.com/preston-bernstein/nba-edge-service/internal/http/middleware"
	"github.com/preston-bernstein/nba-edge-service/internal/logging"
	"github.com/preston-bernstein/nba-edge-service/internal/timeutil"
)

// Refresher re-analyzes a slate and can make it the current board.
type Refresher interface {
	AnalyzeSlate(ctx context.Context, date string) (domaingames.Board, error)
	Publish(board domaingames.Board)
	Current() domaingames.Board
}

// BoardWriter persists a board snapshot.
type BoardWriter interface {
	WriteBoard(date string, board domaingames.Board) error
}

// AdminHandler exposes admin-only endpoints.
type AdminHandler struct {
	refresher Refresher
	writer    BoardWriter
	token     string
	logger    *slog.Logger
	location  *time.Location
	now       func() time.Time
}

// NewAdminHandler constructs an AdminHandler. A nil location means UTC.
func NewAdminHandler(refresher Refresher, writer BoardWriter, token string, logger *slog.Logger, location *time.Location) *AdminHandler {
	if location == nil {
		location = time.UTC
	}
	return &AdminHandler{
		refresher: refresher,
		writer:    writer,
		token:     token,
		logger:    logger,
		location:  location,
		now:       time.Now,
	}
}

// Refresh re-analyzes ?date= (default today) and writes its board snapshot.
// Requires a bearer token matching ADMIN_TOKEN.
func (h *AdminHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String("path", r.URL.Path),
			slog.String("client_ip", middleware.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	if h.refresher == nil || h.writer == nil {
		writeError(w, r, http.StatusServiceUnavailable, "snapshot writer not configured", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		date = timeutil.Today(h.now(), h.location)
	}
	if _, err := timeutil.ParseDate(date); err != nil {
		logging.Warn(logger, "admin refresh invalid date", slog.String(logging.FieldDate, date))
		writeError(w, r, http.StatusBadRequest, "invalid date format", logger)
		return
	}

	start := time.Now()
	board, err := h.refresher.AnalyzeSlate(r.Context(), date)
	if err != nil {
		logging.Warn(logger, "admin refresh analyze failed", slog.String(logging.FieldDate, date), slog.Any("error", err))
		writeError(w, r, http.StatusBadGateway, "failed to analyze slate", logger)
		return
	}
	if err := h.writer.WriteBoard(date, board); err != nil {
		logging.Warn(logger, "admin refresh write failed",
			slog.String(logging.FieldDate, date),
			slog.Int(logging.FieldCount, len(board.Matchups)),
			slog.Any("error", err),
		)
		writeError(w, r, http.StatusInternalServerError, "failed to write snapshot", logger)
		return
	}
	published := false
	if current := h.refresher.Current(); current.Date == "" || current.Date == date {
		h.refresher.Publish(board)
		published = true
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"date":      date,
		"matchups":  len(board.Matchups),
		"picks":     len(board.Picks()),
		"published": published,
		"status":    "ok",
	}, logger)
	logging.Info(logger, "admin refresh written",
		slog.String(logging.FieldDate, date),
		slog.Int(logging.FieldCount, len(board.Matchups)),
		slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
	)
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	return r.Header.Get("Authorization") == "Bearer "+h.token
}
