package postgres

// Error message prefixes for wrapped pgx errors
const (
	ErrMsgFailedToQuery     = "failed to query"
	ErrMsgFailedToScan      = "failed to scan"
	ErrMsgFailedToUpsert    = "failed to upsert"
	ErrMsgFailedToDelete    = "failed to delete"
	ErrMsgFailedToMarshal   = "failed to marshal"
	ErrMsgFailedToUnmarshal = "failed to unmarshal"
	ErrMsgFailedToBeginTx   = "failed to begin transaction"
)
