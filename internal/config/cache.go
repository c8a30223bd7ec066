package config

import "strings"

const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// CacheConfig selects the provider cache backend.
type CacheConfig struct {
	Backend       string   `yaml:"backend"`
	TTL           Duration `yaml:"ttl"`
	RedisAddr     string   `yaml:"redisAddr"`
	RedisPassword string   `yaml:"redisPassword"`
	RedisDB       int      `yaml:"redisDB"`
}

func defaultCache() CacheConfig {
	return CacheConfig{
		Backend:   defaultCacheBackend,
		TTL:       defaultCacheTTL,
		RedisAddr: defaultRedisAddr,
	}
}

func applyCacheEnv(cfg *CacheConfig) {
	cfg.Backend = strings.ToLower(envOrDefault(envCacheBackend, cfg.Backend))
	cfg.TTL = durationEnvOrDefault(envCacheTTL, cfg.TTL)
	cfg.RedisAddr = envOrDefault(envRedisAddr, cfg.RedisAddr)
	cfg.RedisPassword = envOrDefault(envRedisPassword, cfg.RedisPassword)
	cfg.RedisDB = intEnvOrDefault(envRedisDB, cfg.RedisDB)
}
