package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	domaingames "github.com/preston-bernstein/nba-edge-service/internal/domain/games"
	"github.com/preston-bernstein/nba-edge-service/internal/logging"
	"github.com/preston-bernstein/nba-edge-service/internal/metrics"
	"github.com/preston-bernstein/nba-edge-service/internal/timeutil"
)

const (
	defaultInterval = 5 * time.Minute
	readyFailures   = 3
)

// Analyzer produces and publishes the board for a date.
type Analyzer interface {
	AnalyzeSlate(ctx context.Context, date string) (domaingames.Board, error)
	Publish(board domaingames.Board)
}

// SnapshotWriter persists board snapshots to disk.
type SnapshotWriter interface {
	WriteBoard(date string, board domaingames.Board) error
}

// Poller analyzes today's slate on an interval, publishes it and writes the snapshot.
type Poller struct {
	analyzer Analyzer
	writer   SnapshotWriter
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	location *time.Location
	now      func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poller loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
	LastDate            string
	LastMatchups        int
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < readyFailures
}

// New constructs a Poller. A nil location means UTC.
func New(analyzer Analyzer, writer SnapshotWriter, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration, location *time.Location) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	if location == nil {
		location = time.UTC
	}
	return &Poller{
		analyzer: analyzer,
		writer:   writer,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		location: location,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// Start begins polling until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	p.ticker = time.NewTicker(p.interval)

	go func() {
		logging.Info(p.logger, "poller started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
		// Warm the board on boot.
		p.analyzeOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.done:
				p.stopTicker()
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.ticker.C:
				p.analyzeOnce(ctx)
			}
		}
	}()
}

// Stop halts the polling loop.
func (p *Poller) Stop(ctx context.Context) error {
	_ = ctx
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})
	return nil
}

func (p *Poller) analyzeOnce(ctx context.Context) {
	start := time.Now()
	p.recordAttempt(start)
	today := timeutil.Today(p.now(), p.location)

	board, err := p.analyzer.AnalyzeSlate(ctx, today)
	p.metrics.RecordPollerCycle(time.Since(start), err)
	if err != nil {
		logging.Error(p.logger, "poller analysis failed", err,
			logging.FieldDate, today,
			logging.FieldDurationMS, time.Since(start).Milliseconds(),
		)
		p.recordFailure(err, start)
		return
	}

	p.analyzer.Publish(board)
	if p.writer != nil {
		if writeErr := p.writer.WriteBoard(today, board); writeErr != nil {
			logging.Error(p.logger, "poller snapshot write failed", writeErr, logging.FieldDate, today)
		}
	}
	p.recordSuccess(start, today, len(board.Matchups))
	logging.Info(p.logger, "poller refreshed board",
		logging.FieldDate, today,
		logging.FieldCount, len(board.Matchups),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
}

func (p *Poller) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time, date string, count int) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
	p.status.LastDate = date
	p.status.LastMatchups = count
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
