package testutil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/nba-edge-service/internal/poller"
	"github.com/preston-bernstein/nba-edge-service/internal/providers"
)

func TestClockHelpers(t *testing.T) {
	start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if got := NowAt(start)(); !got.Equal(start) {
		t.Fatalf("expected fixed time, got %v", got)
	}
	c := NewClock(start)
	c.Advance(90 * time.Minute)
	if got := c.Now(); !got.Equal(start.Add(90 * time.Minute)) {
		t.Fatalf("expected advanced clock, got %v", got)
	}
}

func TestFixturesHelper(t *testing.T) {
	g := SampleGame("id-1")
	if g.ID != "id-1" || g.HomeTeam.ID == "" || g.AwayTeam.ID == "" {
		t.Fatalf("unexpected game fixture %+v", g)
	}
	board := SampleBoard("2024-01-01", "g1", "g2")
	if board.Date != "2024-01-01" || len(board.Matchups) != 2 || len(board.Picks()) != 0 {
		t.Fatalf("unexpected board %+v", board)
	}
	if team := SampleTeam("lakers"); team.Alias() != "LAK" || team.FullName == "" {
		t.Fatalf("unexpected team fixture %+v", team)
	}
	in := SampleMatchupInput()
	if len(in.Home.Roster) != 3 || len(in.Away.SeasonStats) != 3 || in.Market != nil {
		t.Fatalf("unexpected matchup input %+v", in)
	}
}

func TestServiceHelpers(t *testing.T) {
	board := SampleBoard("2024-01-01", "g1")
	svc := NewServiceWithBoard(board)
	if got := svc.Current(); got.Date != "2024-01-01" || len(got.Matchups) != 1 {
		t.Fatalf("expected preloaded board, got %+v", got)
	}
	if _, ok := svc.Matchup("g1"); !ok {
		t.Fatalf("expected matchup lookup")
	}
	if _, err := svc.Analyze(SampleMatchupInput()); err != nil {
		t.Fatalf("expected sample input to analyze, got %v", err)
	}
	fx, err := NewFixtureService().AnalyzeSlate(context.Background(), "2024-01-02")
	if err != nil || len(fx.Matchups) == 0 {
		t.Fatalf("expected fixture slate, got %+v err %v", fx, err)
	}
}

func TestServeHelpers(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	rr := Serve(handler, http.MethodPost, "/test", strings.NewReader("{}"))
	AssertStatus(t, rr, http.StatusCreated)
	var body map[string]bool
	DecodeJSON(t, rr, &body)
	if !body["ok"] {
		t.Fatalf("expected ok=true")
	}

	req := httptest.NewRequest(http.MethodGet, "/req", nil)
	rr2 := ServeRequest(handler, req)
	AssertStatus(t, rr2, http.StatusCreated)
}

func TestSnapshotHelpers(t *testing.T) {
	w := NewTempWriter(t, 5)
	date := time.Now().UTC().Format(time.DateOnly)
	WriteSnapshot(t, w, date, "g1")
	path := SnapshotPath(w, date)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected snapshot file, got %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected snapshot contents")
	}
}

func TestStubPoller(t *testing.T) {
	p := &StubPoller{StopErr: errors.New("stop"), StatusVal: poller.Status{LastDate: "2024-01-02"}}
	p.Start(context.Background())
	if err := p.Stop(context.Background()); !errors.Is(err, p.StopErr) {
		t.Fatalf("expected stop error")
	}
	if starts, stops := p.Calls(); starts != 1 || stops != 1 {
		t.Fatalf("unexpected call counts %d/%d", starts, stops)
	}
	if p.Status().LastDate != "2024-01-02" {
		t.Fatalf("expected status passthrough")
	}
}

func TestStubHTTPServerBlocksUntilShutdown(t *testing.T) {
	s := &StubHTTPServer{HandlerVal: http.NewServeMux()}
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe() }()

	select {
	case <-done:
		t.Fatalf("expected ListenAndServe to block")
	case <-time.After(10 * time.Millisecond):
	}
	if err := s.Shutdown(context.Background()); err != nil {
		t.Fatalf("unexpected shutdown error %v", err)
	}
	if err := <-done; !errors.Is(err, http.ErrServerClosed) {
		t.Fatalf("expected ErrServerClosed, got %v", err)
	}
	_ = s.Shutdown(context.Background())
	if listens, shutdowns := s.Calls(); listens != 1 || shutdowns != 2 {
		t.Fatalf("unexpected call counts %d/%d", listens, shutdowns)
	}
	if s.Addr() != ":0" || s.Handler() == nil {
		t.Fatalf("expected default addr and handler passthrough")
	}
}

func TestStubHTTPServerErrors(t *testing.T) {
	s := &StubHTTPServer{ListenErr: errors.New("boom"), ShutdownErr: errors.New("down")}
	if err := s.ListenAndServe(); !errors.Is(err, s.ListenErr) {
		t.Fatalf("expected listen error, got %v", err)
	}
	if err := s.Shutdown(context.Background()); !errors.Is(err, s.ShutdownErr) {
		t.Fatalf("expected shutdown error, got %v", err)
	}

	blocking := &StubHTTPServer{BlockShutdown: true}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	if err := blocking.Shutdown(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
}

func TestLoggerAndMetricsHelpers(t *testing.T) {
	logger, buf := NewBufferLogger()
	logger.Debug("hello", "k", "v")
	if !strings.Contains(buf.String(), "k=v") {
		t.Fatalf("expected debug output, got %q", buf.String())
	}

	rec, handler := NewTelemetryRecorder(t)
	rec.RecordAnalysis("fixture", "NONE", 0)
	rr := Serve(handler, http.MethodGet, "/metrics", nil)
	AssertStatus(t, rr, http.StatusOK)
	if !strings.Contains(rr.Body.String(), "matchup_analyses") {
		t.Fatalf("expected analysis series in scrape output")
	}
}

func TestPostJSON(t *testing.T) {
	var got map[string]string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			w.WriteHeader(http.StatusUnsupportedMediaType)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusAccepted)
	})
	rr := PostJSON(t, handler, "/analyze", map[string]string{"gameId": "g1"})
	AssertStatus(t, rr, http.StatusAccepted)
	if got["gameId"] != "g1" {
		t.Fatalf("expected decoded body, got %+v", got)
	}
}

func TestProviderHelpers(t *testing.T) {
	ctx := context.Background()
	errProv := ErrProvider{Err: errors.New("boom")}
	if _, err := errProv.FetchGames(ctx, "", ""); !errors.Is(err, errProv.Err) {
		t.Fatalf("expected error passthrough")
	}
	if _, err := errProv.FetchTeamData(ctx, "bos"); !errors.Is(err, errProv.Err) {
		t.Fatalf("expected error passthrough")
	}
	if _, err := errProv.FetchInjuries(ctx, ""); !errors.Is(err, errProv.Err) {
		t.Fatalf("expected error passthrough")
	}
	if _, err := errProv.FetchMarket(ctx, "g1"); !errors.Is(err, errProv.Err) {
		t.Fatalf("expected error passthrough")
	}
	if _, err := UnavailableProvider().FetchGames(ctx, "", ""); !errors.Is(err, providers.ErrProviderUnavailable) {
		t.Fatalf("expected provider unavailable")
	}
}
