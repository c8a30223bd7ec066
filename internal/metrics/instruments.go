package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "nba-edge-service"

type otelInstruments struct {
	ctx context.Context

	requests         metric.Int64Counter
	requestLatencyMs metric.Float64Histogram

	providerAttempts  metric.Int64Counter
	providerErrors    metric.Int64Counter
	providerLatencyMs metric.Float64Histogram
	rateLimitHits     metric.Int64Counter
	retryAfterMs      metric.Float64Histogram
	cacheLookups      metric.Int64Counter

	pollerCycles    metric.Int64Counter
	pollerErrors    metric.Int64Counter
	pollerLatencyMs metric.Float64Histogram

	analyses         metric.Int64Counter
	unmatchedPlayers metric.Int64Counter
	rosterFailures   metric.Int64Counter
}

// instrumentBuilder keeps the first creation error so construction reads as a list.
type instrumentBuilder struct {
	meter metric.Meter
	err   error
}

func (b *instrumentBuilder) counter(name, desc string) metric.Int64Counter {
	c, err := b.meter.Int64Counter(name, metric.WithDescription(desc))
	if err != nil && b.err == nil {
		b.err = fmt.Errorf("counter %s: %w", name, err)
	}
	return c
}

func (b *instrumentBuilder) millis(name, desc string) metric.Float64Histogram {
	h, err := b.meter.Float64Histogram(name, metric.WithDescription(desc), metric.WithUnit("ms"))
	if err != nil && b.err == nil {
		b.err = fmt.Errorf("histogram %s: %w", name, err)
	}
	return h
}

func newOtelInstruments(provider metric.MeterProvider) (*otelInstruments, error) {
	b := &instrumentBuilder{meter: provider.Meter(meterName)}
	inst := &otelInstruments{
		ctx: context.Background(),

		requests:         b.counter("http_requests_total", "HTTP requests served"),
		requestLatencyMs: b.millis("http_request_duration_ms", "HTTP request latency"),

		providerAttempts:  b.counter("provider_attempts_total", "Upstream provider calls, including retries"),
		providerErrors:    b.counter("provider_errors_total", "Upstream provider calls that failed"),
		providerLatencyMs: b.millis("provider_duration_ms", "Upstream provider call latency"),
		rateLimitHits:     b.counter("provider_rate_limit_hits_total", "Upstream rate limit responses"),
		retryAfterMs:      b.millis("provider_retry_after_ms", "Retry-After advertised by the upstream"),
		cacheLookups:      b.counter("provider_cache_lookups_total", "Provider cache lookups by kind and outcome"),

		pollerCycles:    b.counter("poller_cycles_total", "Slate analysis cycles"),
		pollerErrors:    b.counter("poller_errors_total", "Slate analysis cycles that failed"),
		pollerLatencyMs: b.millis("poller_cycle_duration_ms", "Slate analysis cycle duration"),

		analyses:         b.counter("matchup_analyses_total", "Matchups analyzed by source and best bet kind"),
		unmatchedPlayers: b.counter("unmatched_players_total", "Roster players without a season record"),
		rosterFailures:   b.counter("roster_unavailable_total", "Teams with neither roster nor season stats"),
	}
	if b.err != nil {
		return nil, b.err
	}
	return inst, nil
}

func (o *otelInstruments) recordHTTPRequest(method, path string, status int, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String(AttrMethod, method),
		attribute.String(AttrPath, path),
		attribute.Int(AttrStatus, status),
	)
	o.requests.Add(o.ctx, 1, attrs)
	o.requestLatencyMs.Record(o.ctx, millis(duration), attrs)
}

func (o *otelInstruments) recordProviderAttempt(provider string, duration time.Duration, err error) {
	if o == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String(AttrProvider, provider))
	o.providerAttempts.Add(o.ctx, 1, attrs)
	o.providerLatencyMs.Record(o.ctx, millis(duration), attrs)
	if err != nil {
		o.providerErrors.Add(o.ctx, 1, attrs)
	}
}

func (o *otelInstruments) recordRateLimit(provider string, retryAfter time.Duration) {
	if o == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String(AttrProvider, provider))
	o.rateLimitHits.Add(o.ctx, 1, attrs)
	if retryAfter > 0 {
		o.retryAfterMs.Record(o.ctx, millis(retryAfter), attrs)
	}
}

func (o *otelInstruments) recordPoller(duration time.Duration, err error) {
	if o == nil {
		return
	}
	o.pollerCycles.Add(o.ctx, 1)
	o.pollerLatencyMs.Record(o.ctx, millis(duration))
	if err != nil {
		o.pollerErrors.Add(o.ctx, 1)
	}
}

func (o *otelInstruments) recordAnalysis(source, betKind string, unmatched int) {
	if o == nil {
		return
	}
	o.analyses.Add(o.ctx, 1, metric.WithAttributes(
		attribute.String(AttrSource, source),
		attribute.String(AttrBetKind, betKind),
	))
	if unmatched > 0 {
		o.unmatchedPlayers.Add(o.ctx, int64(unmatched), metric.WithAttributes(attribute.String(AttrSource, source)))
	}
}

func (o *otelInstruments) recordRosterFailure(teamID string) {
	if o == nil {
		return
	}
	o.rosterFailures.Add(o.ctx, 1, metric.WithAttributes(attribute.String(AttrTeam, teamID)))
}

func (o *otelInstruments) recordCacheLookup(kind string, hit bool) {
	if o == nil {
		return
	}
	o.cacheLookups.Add(o.ctx, 1, metric.WithAttributes(
		attribute.String(AttrCacheKind, kind),
		attribute.Bool(AttrCacheHit, hit),
	))
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
