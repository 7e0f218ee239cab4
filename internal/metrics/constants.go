package metrics

// ============================================================================
// Metric Names
// ============================================================================

// Backend API metric names
const (
	MetricNameAPIRequestsTotal    = "doofi_api_requests_total"
	MetricNameAPIRequestDuration  = "doofi_api_request_duration_seconds"
	MetricNameAPIRequestsInFlight = "doofi_api_requests_in_flight"
)

// Front end metric names
const (
	MetricNameCommandsTotal      = "doofi_commands_total"
	MetricNameConfirmationsTotal = "doofi_confirmations_total"
	MetricNameActiveSessions     = "doofi_active_sessions"
)

// ============================================================================
// Metric Help Text
// ============================================================================

const (
	HelpTextAPIRequestsTotal    = "Total number of requests sent to the game backend"
	HelpTextAPIRequestDuration  = "Game backend request latency in seconds"
	HelpTextAPIRequestsInFlight = "Current number of backend requests awaiting a response"
	HelpTextCommandsTotal       = "Total number of user commands handled"
	HelpTextConfirmationsTotal  = "Total number of confirmation prompts by outcome"
	HelpTextActiveSessions      = "Current number of cached user sessions"
)

// ============================================================================
// Metric Label Names
// ============================================================================

const (
	LabelMethod   = "method"
	LabelRoute    = "route"
	LabelStatus   = "status"
	LabelFrontend = "frontend"
	LabelCommand  = "command"
	LabelOutcome  = "outcome"
)

// Label values
const (
	StatusNetworkError = "network_error"
	RouteUnknown       = "unknown"

	OutcomeConfirmed = "confirmed"
	OutcomeDeclined  = "declined"

	FrontendConsole = "console"
	FrontendDiscord = "discord"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// APILatencyBuckets spans 5ms to 10s.
var APILatencyBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
