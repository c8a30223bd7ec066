package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrMethod    = "method"
	AttrPath      = "path"
	AttrStatus    = "status"
	AttrProvider  = "provider"
	AttrSource    = "source"
	AttrBetKind   = "bet_kind"
	AttrTeam      = "team"
	AttrCacheKind = "cache_kind"
	AttrCacheHit  = "hit"
)
