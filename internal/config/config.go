package config

import (
	"os"
	"strings"
)

// Config holds runtime configuration for the server.
type Config struct {
	Port         string            `yaml:"port"`
	PollInterval Duration          `yaml:"pollInterval"`
	Provider     string            `yaml:"provider"`
	Timezone     string            `yaml:"timezone"`
	AdminToken   string            `yaml:"adminToken"`
	CORSOrigins  []string          `yaml:"corsOrigins"`
	Log          LogConfig         `yaml:"log"`
	Analysis     AnalysisConfig    `yaml:"analysis"`
	Balldontlie  BalldontlieConfig `yaml:"balldontlie"`
	Metrics      MetricsConfig     `yaml:"metrics"`
	Cache        CacheConfig       `yaml:"cache"`
	Snapshots    SnapshotConfig    `yaml:"snapshots"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// AnalysisConfig tunes engine policy knobs exposed to operators.
type AnalysisConfig struct {
	DayToDayUnavailable bool `yaml:"dayToDayUnavailable"`
}

// Load builds configuration from defaults, then an optional YAML file named by
// CONFIG_FILE, then environment variables. Later sources win.
func Load() (Config, error) {
	cfg := defaults()
	if path := os.Getenv(envConfigFile); path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func defaults() Config {
	return Config{
		Port:         defaultPort,
		PollInterval: defaultPollInterval,
		Provider:     defaultProvider,
		Timezone:     defaultTimezone,
		CORSOrigins:  []string{defaultCORSOrigins},
		Log:          LogConfig{Level: defaultLogLevel, Format: defaultLogFormat},
		Balldontlie:  defaultBalldontlie(),
		Metrics:      defaultMetrics(),
		Cache:        defaultCache(),
		Snapshots:    defaultSnapshots(),
	}
}

func applyEnv(cfg *Config) {
	cfg.Port = envOrDefault(envPort, cfg.Port)
	cfg.PollInterval = durationEnvOrDefault(envPollInterval, cfg.PollInterval)
	cfg.Provider = strings.ToLower(envOrDefault(envProvider, cfg.Provider))
	cfg.Timezone = envOrDefault(envTimezone, cfg.Timezone)
	cfg.AdminToken = envOrDefault(envAdminToken, cfg.AdminToken)
	cfg.CORSOrigins = listEnvOrDefault(envCORSOrigins, cfg.CORSOrigins)
	cfg.Log.Level = envOrDefault(envLogLevel, cfg.Log.Level)
	cfg.Log.Format = envOrDefault(envLogFormat, cfg.Log.Format)
	cfg.Analysis.DayToDayUnavailable = boolEnvOrDefault(envDayToDayOut, cfg.Analysis.DayToDayUnavailable)

	applyBalldontlieEnv(&cfg.Balldontlie)
	applyMetricsEnv(&cfg.Metrics)
	applyCacheEnv(&cfg.Cache)
	applySnapshotsEnv(&cfg.Snapshots)
}
