package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Duration aliases time.Duration so YAML fields read as "10m" through the file decoder.
type Duration = time.Duration

// fromEnv returns parse(value) for a set variable, or def when the variable is
// unset, blank, or rejected by parse.
func fromEnv[T any](key string, def T, parse func(string) (T, bool)) T {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	if v, ok := parse(raw); ok {
		return v
	}
	return def
}

func envOrDefault(key, defaultValue string) string {
	return fromEnv(key, defaultValue, func(raw string) (string, bool) { return raw, true })
}

// durationEnvOrDefault rejects non-positive durations.
func durationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	return fromEnv(key, defaultValue, func(raw string) (time.Duration, bool) {
		d, err := time.ParseDuration(raw)
		return d, err == nil && d > 0
	})
}

// intEnvOrDefault rejects non-positive values.
func intEnvOrDefault(key string, defaultValue int) int {
	return fromEnv(key, defaultValue, func(raw string) (int, bool) {
		n, err := strconv.Atoi(raw)
		return n, err == nil && n > 0
	})
}

func boolEnvOrDefault(key string, defaultValue bool) bool {
	return fromEnv(key, defaultValue, func(raw string) (bool, bool) {
		switch strings.ToLower(raw) {
		case "1", "true", "yes":
			return true, true
		case "0", "false", "no":
			return false, true
		}
		return false, false
	})
}

// listEnvOrDefault splits a comma-separated value, dropping blank entries.
func listEnvOrDefault(key string, defaultValue []string) []string {
	return fromEnv(key, defaultValue, func(raw string) ([]string, bool) {
		var out []string
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out, len(out) > 0
	})
}
