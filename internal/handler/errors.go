package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details for security reasons.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidID             = "Invalid %s"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
	ErrMsgInvalidDate           = "Invalid date, expected YYYY-MM-DD"
	ErrMsgInvalidLimit          = "Invalid limit, expected a non-negative integer"
)

// Success messages for API responses
const (
	MsgMissionRunning   = "Mission still running"
	MsgNoMission        = "No mission to check"
	MsgMissionClaimed   = "Mission claimed"
	MsgEscrowSwept      = "Escrow sweep finished"
	MsgRecurringReset   = "Recurring tasks reset"
	MsgStreaksChecked   = "Streak check finished"
	MsgOutboxDrained    = "Outbox drained"
	MsgOutboxNotEnabled = "Outbox is not configured"
	MsgContentReloaded  = "Content cache invalidated"
)
