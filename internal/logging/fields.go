package logging

import "log/slog"

// Field keys shared by every component.
const (
	FieldService = "service"
	FieldVersion = "version"

	// HTTP
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDurationMS = "duration_ms"

	// Data plumbing
	FieldProvider = "provider"
	FieldBackend  = "backend"
	FieldDate     = "date"
	FieldCount    = "count"

	// Analysis
	FieldGameID  = "game_id"
	FieldTeamID  = "team_id"
	FieldBetKind = "bet_kind"
)

func commonAttrs(service, version string) []slog.Attr {
	var attrs []slog.Attr
	if service != "" {
		attrs = append(attrs, slog.String(FieldService, service))
	}
	if version != "" {
		attrs = append(attrs, slog.String(FieldVersion, version))
	}
	return attrs
}
