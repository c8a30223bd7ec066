package testutil

import (
	"context"
	"net/http"
	"sync"

	"github.com/preston-bernstein/nba-edge-service/internal/poller"
)

// StubPoller counts Start and Stop calls and reports a fixed Status.
type StubPoller struct {
	mu         sync.Mutex
	startCalls int
	stopCalls  int

	StopErr   error
	StatusVal poller.Status
}

func (p *StubPoller) Start(context.Context) {
	p.mu.Lock()
	p.startCalls++
	p.mu.Unlock()
}

func (p *StubPoller) Stop(context.Context) error {
	p.mu.Lock()
	p.stopCalls++
	p.mu.Unlock()
	return p.StopErr
}

func (p *StubPoller) Status() poller.Status { return p.StatusVal }

// Calls returns how many times Start and Stop ran.
func (p *StubPoller) Calls() (start, stop int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.startCalls, p.stopCalls
}

// StubHTTPServer stands in for a listening server. ListenAndServe returns
// ListenErr immediately when set; otherwise it blocks until Shutdown, like
// net/http. With BlockShutdown, Shutdown waits for its context to expire.
type StubHTTPServer struct {
	AddrVal       string
	HandlerVal    http.Handler
	ListenErr     error
	ShutdownErr   error
	BlockShutdown bool

	mu            sync.Mutex
	listenCalls   int
	shutdownCalls int
	closed        chan struct{}
}

func (s *StubHTTPServer) closedCh() chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed == nil {
		s.closed = make(chan struct{})
	}
	return s.closed
}

func (s *StubHTTPServer) ListenAndServe() error {
	s.mu.Lock()
	s.listenCalls++
	s.mu.Unlock()
	if s.ListenErr != nil {
		return s.ListenErr
	}
	<-s.closedCh()
	return http.ErrServerClosed
}

func (s *StubHTTPServer) Shutdown(ctx context.Context) error {
	ch := s.closedCh()
	s.mu.Lock()
	s.shutdownCalls++
	select {
	case <-ch:
	default:
		close(ch)
	}
	s.mu.Unlock()

	if s.BlockShutdown {
		<-ctx.Done()
		return ctx.Err()
	}
	return s.ShutdownErr
}

func (s *StubHTTPServer) Addr() string {
	if s.AddrVal == "" {
		return ":0"
	}
	return s.AddrVal
}

func (s *StubHTTPServer) Handler() http.Handler { return s.HandlerVal }

// Calls returns how many times ListenAndServe and Shutdown ran.
func (s *StubHTTPServer) Calls() (listen, shutdown int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listenCalls, s.shutdownCalls
}
