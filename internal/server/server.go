package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/preston-bernstein/nba-edge-service/internal/app/analysis"
	"github.com/preston-bernstein/nba-edge-service/internal/config"
	"github.com/preston-bernstein/nba-edge-service/internal/engine/usage"
	httpserver "github.com/preston-bernstein/nba-edge-service/internal/http"
	"github.com/preston-bernstein/nba-edge-service/internal/http/handlers"
	"github.com/preston-bernstein/nba-edge-service/internal/logging"
	"github.com/preston-bernstein/nba-edge-service/internal/metrics"
	"github.com/preston-bernstein/nba-edge-service/internal/poller"
	"github.com/preston-bernstein/nba-edge-service/internal/providers"
	"github.com/preston-bernstein/nba-edge-service/internal/snapshots"
	"github.com/preston-bernstein/nba-edge-service/internal/store"
	"github.com/preston-bernstein/nba-edge-service/internal/timeutil"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	analysis      *analysis.Service
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	syncer        *snapshots.Syncer
	metricsStop   func(context.Context) error
	closers       []func() error
}

// New constructs a server with the configured provider, cache, snapshots and poller.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServer(cfg, logger, nil, nil)
}

// newServer wires every component; see buildAnalysis for the provider argument.
func newServer(cfg config.Config, logger *slog.Logger, provider providers.DataProvider, recorder *metrics.Recorder) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)
	loc := resolveLocation(cfg.Timezone)

	svc, closeCache := buildAnalysis(cfg, logger, provider, recorder)
	snaps := buildSnapshots(cfg, svc, logger, loc)

	var writer poller.SnapshotWriter
	if snaps.writer != nil {
		writer = snaps.writer
	}
	plr := poller.New(svc, writer, logger, recorder, cfg.PollInterval, loc)
	httpSrv := buildHTTPServer(cfg, svc, snaps, logger, recorder, plr.Status, loc)

	s := &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		analysis:      svc,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		poller:        plr,
		syncer:        snaps.syncer,
		metricsStop:   metricsShutdown,
	}
	if closeCache != nil {
		s.closers = append(s.closers, closeCache)
	}
	return s
}

// NewAnalysisService builds the analysis service with the configured provider
// and cache but none of the HTTP surface. Callers release the result with the
// returned closer, which may be nil.
func NewAnalysisService(cfg config.Config, logger *slog.Logger) (*analysis.Service, func() error) {
	return buildAnalysis(cfg, logger, nil, metrics.NewRecorder())
}

// buildAnalysis wires cache, provider wrappers and store into a service. A
// non-nil provider replaces the configured upstream but still gets wrapped.
func buildAnalysis(cfg config.Config, logger *slog.Logger, provider providers.DataProvider, recorder *metrics.Recorder) (*analysis.Service, func() error) {
	c, closeCache := buildCache(cfg.Cache, logger)
	factory := newProviderFactory(logger, recorder, c)
	if provider == nil {
		provider = factory.build(cfg)
	} else {
		provider = factory.wrap(cfg, provider)
	}
	svc := analysis.NewService(provider, store.NewMemoryStore(), logger, recorder, analysis.Options{
		Policy:   usage.Policy{DayToDayUnavailable: cfg.Analysis.DayToDayUnavailable},
		Timezone: cfg.Timezone,
	})
	return svc, closeCache
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
		poller:     plr,
	}
}

func buildHTTPServer(cfg config.Config, svc *analysis.Service, snaps snapshotComponents, logger *slog.Logger, recorder *metrics.Recorder, statusFn func() poller.Status, loc *time.Location) httpServer {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	routerCfg := httpserver.RouterConfig{
		Handler:     handlers.NewHandler(svc, snaps.store, logger, loc, statusFn),
		Logger:      logger,
		Metrics:     recorder,
		CORSOrigins: cfg.CORSOrigins,
	}
	// Admin refresh is only mounted when a token is set and boards can be written.
	if cfg.AdminToken != "" && snaps.writer != nil {
		routerCfg.Admin = handlers.NewAdminHandler(svc, snaps.writer, cfg.AdminToken, logger, loc)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpserver.NewRouter(routerCfg),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
	return netHTTPServer{srv: srv}
}

func resolveLocation(tz string) *time.Location {
	return timeutil.Location(tz, time.UTC)
}

// Run starts the poller, snapshot backfill and HTTP server, then waits for
// context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.poller.Start(ctx)
	if s.syncer != nil {
		go s.syncer.Run(ctx)
	}

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if err := s.poller.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "failed to stop poller", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	for _, closeFn := range s.closers {
		if err := closeFn(); err != nil {
			logging.Warn(s.logger, "resource close failed", "error", err)
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "error", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
