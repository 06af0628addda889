package services

// SchemaVersion identifies the result layout stamped on route and detection
// results and on persisted history rows. Bump it when a field changes meaning.
const SchemaVersion = 1

// Result sources.
const (
	SourceModel    = "model"
	SourceFallback = "fallback"
)
