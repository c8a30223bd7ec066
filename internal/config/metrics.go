package config

// MetricsConfig controls telemetry export settings.
type MetricsConfig struct {
	Enabled      bool   `yaml:"enabled"`
	Port         string `yaml:"port"`
	OtlpEndpoint string `yaml:"otlpEndpoint"`
	ServiceName  string `yaml:"serviceName"`
	OtlpInsecure bool   `yaml:"otlpInsecure"`
}

func defaultMetrics() MetricsConfig {
	return MetricsConfig{
		Enabled:      true,
		Port:         defaultMetricsPort,
		ServiceName:  defaultMetricsService,
		OtlpInsecure: true,
	}
}

func applyMetricsEnv(cfg *MetricsConfig) {
	cfg.Enabled = boolEnvOrDefault(envMetricsOn, cfg.Enabled)
	cfg.Port = envOrDefault(envMetricsPort, cfg.Port)
	cfg.OtlpEndpoint = envOrDefault(envOtelEndpoint, cfg.OtlpEndpoint)
	cfg.ServiceName = envOrDefault(envOtelService, cfg.ServiceName)
	cfg.OtlpInsecure = boolEnvOrDefault(envOtelInsecure, cfg.OtlpInsecure)
}
