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

// Game metric names
const (
	MetricNameEXPGranted           = "exp_granted_total"
	MetricNameGoldGranted          = "gold_granted_total"
	MetricNameTasksByOutcome       = "tasks_total"
	MetricNameMissionsByOutcome    = "missions_resolved_total"
	MetricNameDungeonRuns          = "dungeon_runs_total"
	MetricNameLevelUps             = "level_ups_total"
	MetricNameAchievementsUnlocked = "achievements_unlocked_total"
	MetricNameForgeOperations      = "forge_operations_total"
	MetricNameCollaboratorFailures = "collaborator_failures_total"
	MetricNameScheduledRuns        = "scheduled_job_runs_total"
	MetricNameScheduledItems       = "scheduled_job_items_total"
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

// Game metric help text
const (
	HelpTextEXPGranted           = "Total EXP credited to characters"
	HelpTextGoldGranted          = "Total gold credited to characters"
	HelpTextTasksByOutcome       = "Task lifecycle transitions by outcome"
	HelpTextMissionsByOutcome    = "Resolved missions by outcome"
	HelpTextDungeonRuns          = "Resolved dungeon runs by status and grade"
	HelpTextLevelUps             = "Character level ups by source"
	HelpTextAchievementsUnlocked = "Achievements unlocked"
	HelpTextForgeOperations      = "Enhance and salvage operations by result"
	HelpTextCollaboratorFailures = "Swallowed failures of sync, notification and publish collaborators"
	HelpTextScheduledRuns        = "Scheduled maintenance ticks by job and outcome"
	HelpTextScheduledItems       = "Records touched by scheduled maintenance jobs"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod       = "method"
	LabelPath         = "path"
	LabelStatus       = "status"
	LabelType         = "type"
	LabelSource       = "source"
	LabelOutcome      = "outcome"
	LabelGrade        = "grade"
	LabelOperation    = "operation"
	LabelCollaborator = "collaborator"
	LabelJob          = "job"
)

// Label values
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeSkipped = "skipped"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadUndecodable = "Event payload could not be decoded"
	LogMsgMetricsRecorded         = "Metrics recorded for event"
)
