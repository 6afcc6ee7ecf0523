package cloudsync

// CollaboratorName labels sync failures in metrics
const CollaboratorName = "cloudsync"

// DefaultDrainBatch bounds how many outbox rows one drain forwards
const DefaultDrainBatch = 100

// outboxDSNParams configures the local outbox database
const outboxDSNParams = "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"

// Error messages
const (
	ErrMsgOutboxPathRequired = "outbox path is required"
	ErrMsgOpenOutbox         = "open outbox"
	ErrMsgMigrateOutbox      = "migrate outbox"
	ErrMsgWriteOutbox        = "write outbox"
	ErrMsgReadOutbox         = "read outbox"
)

// Log messages
const (
	LogMsgSnapshotsReplicated = "Snapshots replicated"
	LogMsgReplicationFailed   = "Snapshot replication failed, parking in outbox"
	LogMsgOutboxWriteFailed   = "Failed to park snapshots in outbox, dropping"
	LogMsgReplicationDropped  = "Sync queue full, snapshots dropped"
	LogMsgOutboxDrained       = "Drained snapshot outbox"
	LogMsgOutboxDrainFailed   = "Snapshot outbox drain failed"
)
