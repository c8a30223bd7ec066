package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type analysisStats struct {
	total          int
	rosterFailures int
	unmatched      int
	betKinds       map[string]int
	cacheHits      int
	cacheMisses    int
}

// Recorder captures in-memory provider and analysis counters and forwards them
// to OpenTelemetry instruments when configured.
type Recorder struct {
	mu       sync.Mutex
	stats    map[string]*providerStats
	analysis analysisStats
	otel     *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats:    make(map[string]*providerStats),
		analysis: analysisStats{betKinds: make(map[string]int)},
		otel:     otel,
	}
}

// RecordProviderAttempt increments counters for a provider call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	stats := r.ensureStats(provider)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordRateLimit tracks that a provider response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	stats := r.ensureStats(provider)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	if r.otel != nil {
		r.otel.recordRateLimit(provider, retryAfter)
	}
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// RateLimitHits returns the number of rate limit events seen for a provider.
func (r *Recorder) RateLimitHits(provider string) int {
	return r.Snapshot(provider).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for a provider.
func (r *Recorder) LastRetryAfter(provider string) time.Duration {
	return r.Snapshot(provider).LastRetryAfter
}

// LastCallLatency returns the last recorded latency for a provider call.
func (r *Recorder) LastCallLatency(provider string) time.Duration {
	return r.Snapshot(provider).LastCallLatency
}

// Snapshot returns a copy of the current stats for the provider.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	stats := r.snapshot(provider)
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordPollerCycle tracks poller cycles and errors.
func (r *Recorder) RecordPollerCycle(duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordPoller(duration, err)
}

// RecordAnalysis counts a completed matchup analysis, its best-bet kind and the
// number of players that fell back to default averages.
func (r *Recorder) RecordAnalysis(source, betKind string, unmatched int) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.analysis.total++
	r.analysis.unmatched += unmatched
	r.analysis.betKinds[betKind]++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordAnalysis(source, betKind, unmatched)
	}
}

// RecordRosterFailure counts a matchup aborted because a roster was unavailable.
func (r *Recorder) RecordRosterFailure(teamID string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.analysis.rosterFailures++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordRosterFailure(teamID)
	}
}

// RecordCacheLookup counts provider cache hits and misses.
func (r *Recorder) RecordCacheLookup(kind string, hit bool) {
	if r == nil {
		return
	}
	r.mu.Lock()
	if hit {
		r.analysis.cacheHits++
	} else {
		r.analysis.cacheMisses++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordCacheLookup(kind, hit)
	}
}

// AnalysisSnapshot is a copy of the analysis counters.
type AnalysisSnapshot struct {
	Total          int
	RosterFailures int
	Unmatched      int
	BetKinds       map[string]int
	CacheHits      int
	CacheMisses    int
}

// Analysis returns the current analysis counters.
func (r *Recorder) Analysis() AnalysisSnapshot {
	if r == nil {
		return AnalysisSnapshot{BetKinds: map[string]int{}}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make(map[string]int, len(r.analysis.betKinds))
	for k, v := range r.analysis.betKinds {
		kinds[k] = v
	}
	return AnalysisSnapshot{
		Total:          r.analysis.total,
		RosterFailures: r.analysis.rosterFailures,
		Unmatched:      r.analysis.unmatched,
		BetKinds:       kinds,
		CacheHits:      r.analysis.cacheHits,
		CacheMisses:    r.analysis.cacheMisses,
	}
}

func (r *Recorder) ensureStats(provider string) *providerStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}

func (r *Recorder) snapshot(provider string) providerStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	if stats, ok := r.stats[provider]; ok && stats != nil {
		return *stats
	}
	return providerStats{}
}
