package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	domaingames "github.com/preston-bernstein/nba-edge-service/internal/domain/games"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/matchups"
	"github.com/preston-bernstein/nba-edge-service/internal/http/middleware"
	"github.com/preston-bernstein/nba-edge-service/internal/poller"
	"github.com/preston-bernstein/nba-edge-service/internal/teststubs"
	"github.com/preston-bernstein/nba-edge-service/internal/testutil"
)

var fixedNow = time.Date(2024, 1, 2, 18, 0, 0, 0, time.UTC)

func newTestHandler(board domaingames.Board, snaps *teststubs.StubSnapshotStore, statusFn func() poller.Status) *Handler {
	h := NewHandler(testutil.NewServiceWithBoard(board), nil, nil, nil, statusFn)
	if snaps != nil {
		h.snaps = snaps
	}
	h.now = testutil.NowAt(fixedNow)
	return h
}

func routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Get("/matchups", h.Matchups)
	r.Get("/matchups/{id}", h.MatchupByID)
	r.Get("/picks", h.Picks)
	r.Post("/analyze", h.Analyze)
	return r
}

func TestHealth(t *testing.T) {
	h := newTestHandler(domaingames.Board{}, nil, nil)

	rr := testutil.Serve(routes(h), http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["status"] != "ok" {
		t.Fatalf("expected status ok, got %s", resp["status"])
	}
}

func TestHealthShuttingDownReturnsServiceUnavailable(t *testing.T) {
	h := newTestHandler(domaingames.Board{}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	ctx, cancel := context.WithCancel(req.Context())
	cancel()
	rr := testutil.ServeRequest(http.HandlerFunc(h.Health), req.WithContext(ctx))

	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["error"] != "shutting down" {
		t.Fatalf("unexpected error %q", resp["error"])
	}
}

func TestReady(t *testing.T) {
	cases := []struct {
		name     string
		statusFn func() poller.Status
		want     int
		wantErr  string
	}{
		{name: "no poller", statusFn: nil, want: http.StatusOK},
		{name: "ready", statusFn: func() poller.Status { return poller.Status{LastSuccess: fixedNow, LastDate: "2024-01-02"} }, want: http.StatusOK},
		{name: "warming", statusFn: func() poller.Status { return poller.Status{} }, want: http.StatusServiceUnavailable, wantErr: "not ready"},
		{name: "failing", statusFn: func() poller.Status {
			return poller.Status{LastSuccess: fixedNow, ConsecutiveFailures: 5, LastError: "upstream down"}
		}, want: http.StatusServiceUnavailable, wantErr: "upstream down"},
	}
	for _, tc := range cases {
		h := newTestHandler(domaingames.Board{}, nil, tc.statusFn)
		rr := testutil.Serve(routes(h), http.MethodGet, "/ready", nil)
		if rr.Code != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, rr.Code)
		}
		if tc.wantErr != "" && !strings.Contains(rr.Body.String(), tc.wantErr) {
			t.Fatalf("%s: expected error %q in %s", tc.name, tc.wantErr, rr.Body.String())
		}
	}
}

func TestMatchupsServesCurrentBoard(t *testing.T) {
	h := newTestHandler(testutil.SampleBoard("2024-01-02", "g1", "g2"), nil, nil)

	rr := testutil.Serve(routes(h), http.MethodGet, "/matchups", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var board domaingames.Board
	testutil.DecodeJSON(t, rr, &board)
	if board.Date != "2024-01-02" || len(board.Matchups) != 2 || board.Matchups[0].GameID != "g1" {
		t.Fatalf("unexpected board %+v", board)
	}
}

func TestMatchupsFallsBackToTodaySnapshot(t *testing.T) {
	snaps := &teststubs.StubSnapshotStore{Boards: map[string]domaingames.Board{
		"2024-01-02": testutil.SampleBoard("2024-01-02", "snap-1"),
	}}
	h := newTestHandler(domaingames.Board{}, snaps, nil)

	rr := testutil.Serve(routes(h), http.MethodGet, "/matchups", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var board domaingames.Board
	testutil.DecodeJSON(t, rr, &board)
	if len(board.Matchups) != 1 || board.Matchups[0].GameID != "snap-1" {
		t.Fatalf("expected snapshot fallback, got %+v", board)
	}
}

func TestMatchupsEmptyWithoutSnapshotUsesTimezone(t *testing.T) {
	h := newTestHandler(domaingames.Board{}, &teststubs.StubSnapshotStore{}, nil)
	h.now = testutil.NowAt(time.Date(2024, 1, 2, 3, 0, 0, 0, time.UTC))

	rr := testutil.Serve(routes(h), http.MethodGet, "/matchups?tz=America/New_York", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var board domaingames.Board
	testutil.DecodeJSON(t, rr, &board)
	if board.Date != "2024-01-01" || board.Matchups == nil || len(board.Matchups) != 0 {
		t.Fatalf("expected empty board dated in tz, got %+v", board)
	}
}

func TestMatchupsForDateUsesSnapshotsOnly(t *testing.T) {
	snaps := &teststubs.StubSnapshotStore{Boards: map[string]domaingames.Board{
		"2023-12-30": testutil.SampleBoard("2023-12-30", "old-1"),
	}}
	h := newTestHandler(testutil.SampleBoard("2024-01-02", "g1"), snaps, nil)

	rr := testutil.Serve(routes(h), http.MethodGet, "/matchups?date=2023-12-30", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var board domaingames.Board
	testutil.DecodeJSON(t, rr, &board)
	if board.Date != "2023-12-30" || board.Matchups[0].GameID != "old-1" {
		t.Fatalf("unexpected snapshot board %+v", board)
	}
}

func TestMatchupsForDateErrors(t *testing.T) {
	cases := []struct {
		name  string
		path  string
		snaps *teststubs.StubSnapshotStore
		want  int
	}{
		{name: "bad date", path: "/matchups?date=01-02-2024", snaps: &teststubs.StubSnapshotStore{}, want: http.StatusBadRequest},
		{name: "missing file", path: "/matchups?date=2024-01-01", snaps: &teststubs.StubSnapshotStore{LoadErr: os.ErrNotExist}, want: http.StatusNotFound},
		{name: "broken store", path: "/matchups?date=2024-01-01", snaps: &teststubs.StubSnapshotStore{LoadErr: errors.New("disk")}, want: http.StatusBadGateway},
		{name: "no store", path: "/matchups?date=2024-01-01", snaps: nil, want: http.StatusBadGateway},
	}
	for _, tc := range cases {
		h := newTestHandler(domaingames.Board{}, tc.snaps, nil)
		rr := testutil.Serve(routes(h), http.MethodGet, tc.path, nil)
		if rr.Code != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, rr.Code)
		}
	}
}

func TestMatchupByID(t *testing.T) {
	h := newTestHandler(testutil.SampleBoard("2024-01-02", "g1"), nil, nil)

	rr := testutil.Serve(routes(h), http.MethodGet, "/matchups/g1", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var a matchups.MatchupAnalysis
	testutil.DecodeJSON(t, rr, &a)
	if a.GameID != "g1" {
		t.Fatalf("unexpected matchup %+v", a)
	}

	rr = testutil.Serve(routes(h), http.MethodGet, "/matchups/missing", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)

	rr = testutil.Serve(routes(h), http.MethodGet, "/matchups/bad%20id", nil)
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
}

func TestPicksListsActionableBetsWithImpliedProbability(t *testing.T) {
	board := domaingames.NewBoard("2024-01-02", []matchups.MatchupAnalysis{
		testutil.SampleAnalysis("none", matchups.BestBet{Kind: matchups.BetNone}),
		testutil.SampleAnalysis("ml", matchups.BestBet{Kind: matchups.BetMoneylineValue, Team: "HOM", Edge: 9.5, Confidence: 7, Price: -150}),
		testutil.SampleAnalysis("prop", matchups.BestBet{Kind: matchups.BetPropOver, PlayerID: "p1", Edge: 12, Confidence: 6}),
	})
	h := newTestHandler(board, nil, nil)

	rr := testutil.Serve(routes(h), http.MethodGet, "/picks", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp PicksResponse
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Date != "2024-01-02" || len(resp.Picks) != 2 {
		t.Fatalf("unexpected picks %+v", resp)
	}
	ml := resp.Picks[0]
	if ml.GameID != "ml" || ml.Home != "HOM" || ml.Away != "AWA" || ml.ImpliedProbability == nil {
		t.Fatalf("unexpected moneyline pick %+v", ml)
	}
	if got := *ml.ImpliedProbability; got < 0.59 || got > 0.61 {
		t.Fatalf("expected implied probability 0.6, got %f", got)
	}
	if resp.Picks[1].ImpliedProbability != nil {
		t.Fatalf("expected no implied probability without a price")
	}
}

func TestPicksEmptyBoardReturnsEmptyList(t *testing.T) {
	h := newTestHandler(domaingames.Board{}, nil, nil)
	rr := testutil.Serve(routes(h), http.MethodGet, "/picks", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	if !strings.Contains(rr.Body.String(), `"picks":[]`) {
		t.Fatalf("expected empty picks array, got %s", rr.Body.String())
	}
}

func TestAnalyzeRunsEngine(t *testing.T) {
	h := newTestHandler(domaingames.Board{}, nil, nil)
	body, err := json.Marshal(testutil.SampleMatchupInput())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	rr := testutil.Serve(routes(h), http.MethodPost, "/analyze", bytes.NewReader(body))
	testutil.AssertStatus(t, rr, http.StatusOK)

	var a matchups.MatchupAnalysis
	testutil.DecodeJSON(t, rr, &a)
	if a.GameID != "sample-game" || len(a.Home.Players) != 3 || len(a.Away.Players) != 3 {
		t.Fatalf("unexpected analysis %+v", a)
	}
	sum := a.WinEstimate.HomeWinProbability + a.WinEstimate.AwayWinProbability
	if sum < 99.9 || sum > 100.1 {
		t.Fatalf("expected probabilities to sum to 100, got %f", sum)
	}
	if _, ok := h.svc.Matchup("sample-game"); ok {
		t.Fatalf("expected posted analysis not to be stored")
	}
}

func TestAnalyzeRejectsBadInput(t *testing.T) {
	h := newTestHandler(domaingames.Board{}, nil, nil)

	rr := testutil.Serve(routes(h), http.MethodPost, "/analyze", strings.NewReader("{not json"))
	testutil.AssertStatus(t, rr, http.StatusBadRequest)

	in := testutil.SampleMatchupInput()
	in.Away.Roster = nil
	in.Away.SeasonStats = nil
	body, _ := json.Marshal(in)
	rr = testutil.Serve(routes(h), http.MethodPost, "/analyze", bytes.NewReader(body))
	testutil.AssertStatus(t, rr, http.StatusUnprocessableEntity)
	if !strings.Contains(rr.Body.String(), "away") {
		t.Fatalf("expected roster error naming the away side, got %s", rr.Body.String())
	}
}

func TestErrorsCarryRequestID(t *testing.T) {
	h := newTestHandler(domaingames.Board{}, nil, nil)
	logger, _ := testutil.NewBufferLogger()
	handler := middleware.LoggingMiddleware(logger, nil, routes(h))

	req := httptest.NewRequest(http.MethodGet, "/matchups/missing", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rr := testutil.ServeRequest(handler, req)

	testutil.AssertStatus(t, rr, http.StatusNotFound)
	if !strings.Contains(rr.Body.String(), "req-42") {
		t.Fatalf("expected request id in error body, got %s", rr.Body.String())
	}
}
