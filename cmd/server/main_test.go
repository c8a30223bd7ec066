package main

import (
	"testing"

	"github.com/preston-bernstein/nba-edge-service/internal/config"
)

func TestMainSkipsWhenEnvSet(t *testing.T) {
	t.Setenv("SKIP_SERVER_RUN", "1")
	main()
}

func TestLoggerConfigFollowsConfig(t *testing.T) {
	got := loggerConfig(config.Config{Log: config.LogConfig{Level: "debug", Format: "json"}})
	if got.Level != "debug" || got.Format != "json" || got.Service != "nba-edge-service" || got.Version != appVersion {
		t.Fatalf("unexpected logger config %+v", got)
	}
}
