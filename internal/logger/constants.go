package logger

// Accepted LOG_LEVEL values.
const (
	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarn    = "warn"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
)

// Accepted LOG_FORMAT values.
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Keys attached to every record.
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyFrontend    = "frontend"
	AttrKeyRequestID   = "request_id"
)
