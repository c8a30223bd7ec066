package server

import (
	"context"
	"testing"

	"github.com/preston-bernstein/nba-edge-service/internal/config"
	"github.com/preston-bernstein/nba-edge-service/internal/teststubs"
)

func TestBuildSnapshotsDisabledKeepsReadOnlyStore(t *testing.T) {
	cfg := config.Config{Snapshots: config.SnapshotConfig{Enabled: false, Folder: t.TempDir()}}
	components := buildSnapshots(cfg, &teststubs.StubAnalyzer{}, nil, nil)
	if components.store == nil {
		t.Fatalf("expected store even when snapshots are disabled")
	}
	if components.writer != nil || components.syncer != nil {
		t.Fatalf("expected no writer or syncer when disabled")
	}
}

func TestBuildSnapshotsEnabledBuildsWriterAndSyncer(t *testing.T) {
	cfg := config.Config{Snapshots: config.SnapshotConfig{
		Enabled:       true,
		Folder:        t.TempDir(),
		RetentionDays: 1,
	}}
	components := buildSnapshots(cfg, &teststubs.StubAnalyzer{}, nil, nil)
	if components.store == nil || components.writer == nil || components.syncer == nil {
		t.Fatalf("expected snapshots components to be initialized")
	}

	// Backfill is off without BackfillDays, so Run returns promptly.
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		components.syncer.Run(ctx)
		close(done)
	}()
	cancel()
	<-done
}
