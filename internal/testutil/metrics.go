package testutil

import (
	"context"
	"net/http"
	"testing"

	"github.com/preston-bernstein/nba-edge-service/internal/metrics"
)

// NewTelemetryRecorder returns an OpenTelemetry-backed recorder and its
// Prometheus scrape handler. The meter provider is shut down with the test.
func NewTelemetryRecorder(t *testing.T) (*metrics.Recorder, http.Handler) {
	t.Helper()
	rec, handler, shutdown, err := metrics.Setup(context.Background(), metrics.TelemetryConfig{
		Enabled:     true,
		ServiceName: "nba-edge-service-test",
	})
	if err != nil {
		t.Fatalf("metrics setup: %v", err)
	}
	t.Cleanup(func() { _ = shutdown(context.Background()) })
	return rec, handler
}
