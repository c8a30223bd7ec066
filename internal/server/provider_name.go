package server

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/nba-edge-service/internal/providers"
)

// normalizeProviderName returns a lower-cased provider name, deriving from the instance when not configured.
// Metrics and logs use the same name for every wrapper around one upstream.
func normalizeProviderName(raw string, provider providers.DataProvider) string {
	if raw != "" {
		return strings.ToLower(raw)
	}
	if provider != nil {
		return strings.ToLower(fmt.Sprintf("%T", provider))
	}
	return "provider"
}
