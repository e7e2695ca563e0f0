package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameAttachmentsAdded   = "attachments_added_total"
	MetricNameAttachmentsRemoved = "attachments_removed_total"
	MetricNameLoadoutsCleared    = "loadouts_cleared_total"
	MetricNamePreferencesSaved   = "preferences_saved_total"
	MetricNamePreferencesCleared = "preferences_cleared_total"
	MetricNameWeaponsIssued      = "weapons_issued_total"
	MetricNameWeaponHandovers    = "weapon_handovers_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextAttachmentsAdded   = "Total number of attachments added to weapons"
	HelpTextAttachmentsRemoved = "Total number of attachments removed from weapons"
	HelpTextLoadoutsCleared    = "Total number of loadouts reset to baseline"
	HelpTextPreferencesSaved   = "Total number of preference saves"
	HelpTextPreferencesCleared = "Total number of preference clears"
	HelpTextWeaponsIssued      = "Total number of weapons issued"
	HelpTextWeaponHandovers    = "Total number of weapon ownership transfers"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod     = "method"
	LabelPath       = "path"
	LabelStatus     = "status"
	LabelType       = "type"
	LabelKind       = "kind"
	LabelAttachment = "attachment"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets are the histogram buckets for HTTP request durations
var HTTPLatencyBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}
