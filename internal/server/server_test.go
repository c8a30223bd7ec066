package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/preston-bernstein/nba-edge-service/internal/config"
	domaingames "github.com/preston-bernstein/nba-edge-service/internal/domain/games"
	"github.com/preston-bernstein/nba-edge-service/internal/metrics"
	"github.com/preston-bernstein/nba-edge-service/internal/poller"
	"github.com/preston-bernstein/nba-edge-service/internal/providers/balldontlie"
	"github.com/preston-bernstein/nba-edge-service/internal/providers/fixture"
	"github.com/preston-bernstein/nba-edge-service/internal/testutil"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Port:         "0",
		Provider:     "fixture",
		PollInterval: time.Hour,
		Metrics:      config.MetricsConfig{Enabled: false},
		Cache:        config.CacheConfig{Backend: config.CacheBackendMemory, TTL: time.Minute},
		Snapshots:    config.SnapshotConfig{Enabled: false, Folder: t.TempDir()},
	}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestServerServesFixtureBoard(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := newServer(testConfig(t), nil, nil, metrics.NewRecorder())
	plr, ok := srv.poller.(*poller.Poller)
	if !ok {
		t.Fatalf("expected concrete poller")
	}
	srv.poller.Start(ctx)
	defer func() { _ = srv.poller.Stop(context.Background()) }()

	waitFor(t, "poller to publish the board", func() bool {
		return plr.Status().IsReady() && len(srv.analysis.Current().Matchups) > 0
	})

	router := srv.Handler()
	testutil.AssertStatus(t, testutil.Serve(router, http.MethodGet, "/health", nil), http.StatusOK)
	testutil.AssertStatus(t, testutil.Serve(router, http.MethodGet, "/ready", nil), http.StatusOK)

	rr := testutil.Serve(router, http.MethodGet, "/matchups", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var board domaingames.Board
	testutil.DecodeJSON(t, rr, &board)
	if len(board.Matchups) == 0 || board.Matchups[0].Source != fixture.Source {
		t.Fatalf("expected fixture-sourced board, got %+v", board)
	}

	rr = testutil.Serve(router, http.MethodGet, "/matchups/"+board.Matchups[0].GameID, nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	if got := srv.metrics.Analysis().Total; got == 0 {
		t.Fatalf("expected analyses recorded")
	}
}

func TestServerReportsNotReadyWhenProviderFails(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := newServer(testConfig(t), nil, testutil.UnavailableProvider(), metrics.NewRecorder())
	plr, ok := srv.poller.(*poller.Poller)
	if !ok {
		t.Fatalf("expected concrete poller")
	}
	srv.poller.Start(ctx)
	defer func() { _ = srv.poller.Stop(context.Background()) }()

	waitFor(t, "a failed poll", func() bool { return plr.Status().ConsecutiveFailures > 0 })

	rr := testutil.Serve(srv.Handler(), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)

	rr = testutil.Serve(srv.Handler(), http.MethodGet, "/matchups", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestServerMountsAdminOnlyWithTokenAndSnapshots(t *testing.T) {
	cases := []struct {
		name     string
		token    string
		snapshot bool
		want     int
	}{
		{name: "no token", token: "", snapshot: true, want: http.StatusNotFound},
		{name: "snapshots disabled", token: "secret", snapshot: false, want: http.StatusNotFound},
		{name: "mounted", token: "secret", snapshot: true, want: http.StatusOK},
	}
	for _, tc := range cases {
		cfg := testConfig(t)
		cfg.AdminToken = tc.token
		cfg.Snapshots.Enabled = tc.snapshot
		srv := newServer(cfg, nil, nil, metrics.NewRecorder())

		req := httptest.NewRequest(http.MethodPost, "/admin/refresh?date=2024-01-02", nil)
		req.Header.Set("Authorization", "Bearer secret")
		rr := testutil.ServeRequest(srv.Handler(), req)
		if rr.Code != tc.want {
			t.Fatalf("%s: expected %d, got %d (%s)", tc.name, tc.want, rr.Code, rr.Body.String())
		}
	}
}

func TestServerServesSnapshotForDate(t *testing.T) {
	cfg := testConfig(t)
	cfg.Snapshots.Enabled = true
	cfg.AdminToken = "secret"
	srv := newServer(cfg, nil, nil, metrics.NewRecorder())

	req := httptest.NewRequest(http.MethodPost, "/admin/refresh?date=2024-01-02", nil)
	req.Header.Set("Authorization", "Bearer secret")
	testutil.AssertStatus(t, testutil.ServeRequest(srv.Handler(), req), http.StatusOK)

	rr := testutil.Serve(srv.Handler(), http.MethodGet, "/matchups?date=2024-01-02", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	if !strings.Contains(rr.Body.String(), `"date":"2024-01-02"`) {
		t.Fatalf("expected stored board, got %s", rr.Body.String())
	}

	rr = testutil.Serve(srv.Handler(), http.MethodGet, "/picks?date=2024-01-02", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestSelectProvider(t *testing.T) {
	if _, ok := selectProvider(config.Config{Provider: "unknown"}, nil).(*fixture.Provider); !ok {
		t.Fatalf("expected fixture fallback for unknown provider")
	}
	if _, ok := selectProvider(config.Config{}, nil).(*fixture.Provider); !ok {
		t.Fatalf("expected fixture by default")
	}
	provider := selectProvider(config.Config{
		Provider: "balldontlie",
		Balldontlie: config.BalldontlieConfig{
			BaseURL: "http://example.com",
			APIKey:  "key",
		},
	}, nil)
	if _, ok := provider.(*balldontlie.Client); !ok {
		t.Fatalf("expected balldontlie provider")
	}
}

func TestNewConstructsServer(t *testing.T) {
	srv := New(testConfig(t), nil)
	if srv == nil || srv.Handler() == nil || srv.metrics == nil {
		t.Fatalf("expected server with handler")
	}
	if srv.syncer != nil {
		t.Fatalf("expected no syncer when snapshots are disabled")
	}
}

func TestResolveLocation(t *testing.T) {
	if resolveLocation("") != time.UTC || resolveLocation("Not/AZone") != time.UTC {
		t.Fatalf("expected UTC fallback")
	}
	if loc := resolveLocation("America/New_York"); loc.String() != "America/New_York" {
		t.Fatalf("expected named zone, got %s", loc)
	}
}

func TestGracefulShutdownCallsStopShutdownAndClosers(t *testing.T) {
	p := &testutil.StubPoller{}
	httpSrv := &testutil.StubHTTPServer{}

	srv := newServerWithDeps(config.Config{}, nil, httpSrv, p)
	closed := 0
	srv.closers = []func() error{
		func() error { closed++; return nil },
		func() error { closed++; return errors.New("close failed") },
	}
	srv.gracefulShutdown()

	if _, stops := p.Calls(); stops != 1 {
		t.Fatalf("expected poller Stop once, got %d", stops)
	}
	if _, shutdowns := httpSrv.Calls(); shutdowns != 1 {
		t.Fatalf("expected server Shutdown once, got %d", shutdowns)
	}
	if closed != 2 {
		t.Fatalf("expected every closer to run, got %d", closed)
	}
}

func TestGracefulShutdownTimesOutLongRunningShutdown(t *testing.T) {
	original := shutdownTimeout
	shutdownTimeout = 5 * time.Millisecond
	defer func() { shutdownTimeout = original }()

	p := &testutil.StubPoller{}
	httpSrv := &testutil.StubHTTPServer{BlockShutdown: true}
	srv := newServerWithDeps(config.Config{}, nil, httpSrv, p)

	start := time.Now()
	srv.gracefulShutdown()
	if elapsed := time.Since(start); elapsed > 200*time.Millisecond {
		t.Fatalf("shutdown took too long: %s", elapsed)
	}
	if _, shutdowns := httpSrv.Calls(); shutdowns != 1 {
		t.Fatalf("expected server Shutdown once, got %d", shutdowns)
	}
}

func TestGracefulShutdownContinuesWhenPollerStopErrors(t *testing.T) {
	p := &testutil.StubPoller{StopErr: errors.New("stop failure")}
	httpSrv := &testutil.StubHTTPServer{}

	newServerWithDeps(config.Config{}, nil, httpSrv, p).gracefulShutdown()

	if _, shutdowns := httpSrv.Calls(); shutdowns != 1 {
		t.Fatalf("expected shutdown after poller error, got %d", shutdowns)
	}
}

func TestServerStartStopsOnListenError(t *testing.T) {
	httpSrv := &testutil.StubHTTPServer{ListenErr: errors.New("address in use")}
	srv := newServerWithDeps(config.Config{}, nil, httpSrv, &testutil.StubPoller{})

	stopped := make(chan struct{})
	var once sync.Once
	srv.startServer(func() { once.Do(func() { close(stopped) }) })

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("expected stop to be called on listen failure")
	}
}

func TestRunCancelsAndStopsComponents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	plr := &testutil.StubPoller{}
	httpSrv := &testutil.StubHTTPServer{}
	srv := newServerWithDeps(config.Config{}, nil, httpSrv, plr)

	done := make(chan struct{})
	go func() {
		srv.Run(ctx, cancel)
		close(done)
	}()

	waitFor(t, "server to listen", func() bool {
		listens, _ := httpSrv.Calls()
		starts, _ := plr.Calls()
		return listens == 1 && starts == 1
	})
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("run did not return after cancel")
	}

	if starts, stops := plr.Calls(); starts != 1 || stops != 1 {
		t.Fatalf("expected poller started and stopped once, got %d and %d", starts, stops)
	}
	if _, shutdowns := httpSrv.Calls(); shutdowns != 1 {
		t.Fatalf("expected server Shutdown once, got %d", shutdowns)
	}
}
