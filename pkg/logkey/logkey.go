package logkey

// Shared slog attribute keys so log lines stay grep-able across handlers.
const (
	TraceID = "TRACE ID"
	ERROR   = "ERROR"
)
