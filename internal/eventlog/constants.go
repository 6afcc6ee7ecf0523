package eventlog

// JSON payload field keys
const (
	PayloadKeyCharacterID = "character_id"
	PayloadKeyPartyIDs    = "party_ids"
)

// History limits
const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 500
)

// Log messages - service events
const (
	LogMsgEventPayloadNotMap = "Event payload is not an object, skipping log"
	LogMsgFailedToLogEvent   = "Failed to log event"
	LogMsgEventLogged        = "Event logged"
)

// LogMsgCleanupJobFailed prefixes pruning errors
const LogMsgCleanupJobFailed = "event log cleanup failed"

// Log field keys - structured logging fields
const (
	LogFieldType  = "type"
	LogFieldError = "error"
)
