package snapshots

import (
	"context"
	"log/slog"
	"time"

	domaingames "github.com/preston-bernstein/nba-edge-service/internal/domain/games"
	"github.com/preston-bernstein/nba-edge-service/internal/logging"
	"github.com/preston-bernstein/nba-edge-service/internal/timeutil"
)

// Analyzer produces the board for a date.
type Analyzer interface {
	AnalyzeSlate(ctx context.Context, date string) (domaingames.Board, error)
}

// Syncer backfills missing boards for recent past dates.
type Syncer struct {
	analyzer Analyzer
	writer   *Writer
	cfg      SyncConfig
	logger   *slog.Logger
	now      func() time.Time
}

// SyncConfig controls snapshot backfill behavior.
type SyncConfig struct {
	Enabled  bool
	Days     int           // how many past days to keep analyzed
	Interval time.Duration // delay between analyzed dates
	Location *time.Location
}

// NewSyncer constructs a snapshot syncer.
func NewSyncer(analyzer Analyzer, writer *Writer, cfg SyncConfig, logger *slog.Logger) *Syncer {
	if cfg.Days < 0 {
		cfg.Days = 0
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Syncer{
		analyzer: analyzer,
		writer:   writer,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// Run analyzes and writes every missing board in the past window, spaced by Interval.
// Today is left to the poller. Callers should run this in a goroutine.
func (s *Syncer) Run(ctx context.Context) {
	if s == nil || !s.cfg.Enabled || s.writer == nil || s.analyzer == nil {
		return
	}
	dates := s.buildDates(s.now())
	logging.Info(s.logger, "snapshot backfill starting",
		"past_days", s.cfg.Days,
		"missing", len(dates),
		"interval", s.cfg.Interval.String(),
	)
	for i, date := range dates {
		select {
		case <-ctx.Done():
			return
		default:
		}
		s.analyzeAndWrite(ctx, date)
		if i < len(dates)-1 {
			s.sleep(ctx, s.cfg.Interval)
		}
	}
}

func (s *Syncer) buildDates(now time.Time) []string {
	local := now.In(s.cfg.Location)
	var dates []string
	for i := 1; i <= s.cfg.Days; i++ {
		date := timeutil.FormatDate(local.AddDate(0, 0, -i))
		if !s.writer.HasBoard(date) {
			dates = append(dates, date)
		}
	}
	return dates
}

func (s *Syncer) analyzeAndWrite(ctx context.Context, date string) {
	start := time.Now()
	board, err := s.analyzer.AnalyzeSlate(ctx, date)
	if err != nil {
		logging.Warn(s.logger, "snapshot backfill analyze failed", logging.FieldDate, date, "error", err)
		return
	}
	if err := s.writer.WriteBoard(date, board); err != nil {
		logging.Warn(s.logger, "snapshot backfill write failed", logging.FieldDate, date, "error", err)
		return
	}
	logging.Info(s.logger, "snapshot written",
		logging.FieldDate, date,
		logging.FieldCount, len(board.Matchups),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
}

func (s *Syncer) sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
