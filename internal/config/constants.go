package config

import "time"

const (
	envConfigFile   = "CONFIG_FILE"
	envPort         = "PORT"
	envPollInterval = "POLL_INTERVAL"
	envProvider     = "PROVIDER"
	envTimezone     = "TIMEZONE"
	envLogLevel     = "LOG_LEVEL"
	envLogFormat    = "LOG_FORMAT"
	envAdminToken   = "ADMIN_TOKEN"
	envCORSOrigins  = "CORS_ALLOWED_ORIGINS"
	envDayToDayOut  = "DAY_TO_DAY_UNAVAILABLE"

	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"

	envSnapshotsOn          = "SNAPSHOTS_ENABLED"
	envSnapshotDir          = "SNAPSHOT_DIR"
	envSnapshotRetainDays   = "SNAPSHOT_RETENTION_DAYS"
	envSnapshotBackfill     = "SNAPSHOT_BACKFILL_DAYS"
	envSnapshotBackfillRate = "SNAPSHOT_BACKFILL_INTERVAL"

	envCacheBackend  = "CACHE_BACKEND"
	envCacheTTL      = "CACHE_TTL"
	envRedisAddr     = "REDIS_ADDR"
	envRedisPassword = "REDIS_PASSWORD"
	envRedisDB       = "REDIS_DB"

	defaultPort = "4000"
	// Conservative default poll interval to respect upstream quotas (balldontlie: 5 req/min).
	defaultPollInterval = 10 * Duration(time.Minute)
	defaultProvider     = "fixture"
	defaultTimezone     = "America/New_York"
	defaultLogLevel     = "info"
	defaultLogFormat    = "text"
	defaultCORSOrigins  = "*"

	defaultMetricsPort    = "9090"
	defaultMetricsService = "nba-edge-service"

	defaultSnapshotsOn      = true
	defaultSnapshotDir      = "data/snapshots"
	defaultRetentionDays    = 14
	defaultBackfillDays     = 3
	defaultBackfillInterval = 2 * Duration(time.Second)

	defaultCacheBackend = "memory"
	// Team data changes at most a few times a day; injury reports are refreshed on the next poll.
	defaultCacheTTL  = 15 * Duration(time.Minute)
	defaultRedisAddr = "localhost:6379"
)
