package config

// SnapshotConfig controls where daily boards are written and how long they are kept.
type SnapshotConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Folder        string `yaml:"folder"`
	RetentionDays int    `yaml:"retentionDays"`
	// BackfillDays is how many past days are analyzed at startup when their board is missing.
	BackfillDays     int      `yaml:"backfillDays"`
	BackfillInterval Duration `yaml:"backfillInterval"`
}

func defaultSnapshots() SnapshotConfig {
	return SnapshotConfig{
		Enabled:          defaultSnapshotsOn,
		Folder:           defaultSnapshotDir,
		RetentionDays:    defaultRetentionDays,
		BackfillDays:     defaultBackfillDays,
		BackfillInterval: defaultBackfillInterval,
	}
}

func applySnapshotsEnv(cfg *SnapshotConfig) {
	cfg.Enabled = boolEnvOrDefault(envSnapshotsOn, cfg.Enabled)
	cfg.Folder = envOrDefault(envSnapshotDir, cfg.Folder)
	cfg.RetentionDays = intEnvOrDefault(envSnapshotRetainDays, cfg.RetentionDays)
	cfg.BackfillDays = intEnvOrDefault(envSnapshotBackfill, cfg.BackfillDays)
	cfg.BackfillInterval = durationEnvOrDefault(envSnapshotBackfillRate, cfg.BackfillInterval)
}
