package server

import (
	"log/slog"
	"time"

	"github.com/preston-bernstein/nba-edge-service/internal/config"
	"github.com/preston-bernstein/nba-edge-service/internal/snapshots"
)

type snapshotComponents struct {
	store  snapshots.Store
	writer *snapshots.Writer // nil when snapshots are disabled
	syncer *snapshots.Syncer
}

func buildSnapshots(cfg config.Config, analyzer snapshots.Analyzer, logger *slog.Logger, loc *time.Location) snapshotComponents {
	basePath := cfg.Snapshots.Folder
	components := snapshotComponents{store: snapshots.NewFSStore(basePath)}
	if !cfg.Snapshots.Enabled {
		return components
	}
	components.writer = snapshots.NewWriter(basePath, cfg.Snapshots.RetentionDays)
	components.syncer = snapshots.NewSyncer(analyzer, components.writer, snapshots.SyncConfig{
		Enabled:  cfg.Snapshots.BackfillDays > 0,
		Days:     cfg.Snapshots.BackfillDays,
		Interval: cfg.Snapshots.BackfillInterval,
		Location: loc,
	}, logger)
	return components
}
