package bootstrap

import "time"

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionLimit is the file count that triggers cleanup
	LogFileRetentionLimit = 10

	// LogFileRetentionCount is the number of log files to retain after cleanup
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingService     = "Starting QuestForge"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file %s: %v\n"
)

// =============================================================================
// Event System Configuration
// =============================================================================

const (
	// EventDefaultMaxRetries is the default number of retry attempts for failed event publishing
	EventDefaultMaxRetries = 5

	// EventDefaultRetryDelay is the default base delay between retry attempts (exponential backoff)
	EventDefaultRetryDelay = 2 * time.Second

	// EventDefaultDeadLetterPath is the default file path for dead-letter event logging
	EventDefaultDeadLetterPath = "logs/event_deadletter.jsonl"
)

const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	LogMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
)

// =============================================================================
// Storage, Content and Replication
// =============================================================================

const (
	DBMaxConnIdleTime   = 5 * time.Minute
	DBMaxConnLifetime   = 30 * time.Minute
	ContentFetchTimeout = 5 * time.Second
)

const (
	LogMsgStorageInitialized    = "Storage initialized"
	LogMsgContentLoaded         = "Content tables loaded"
	LogMsgReplicatorInitialized = "Snapshot replicator initialized"

	ErrMsgFailedConnectDatabase = "failed to connect to database"
	ErrMsgFailedOpenOutbox      = "failed to open sync outbox"
)

// =============================================================================
// Event Handler Configuration
// =============================================================================

const (
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgNotifierRegistered         = "Notifier registered"
	LogMsgEventLoggerInitialized     = "Event logger initialized"
	ErrMsgFailedSubscribeEventLogger = "failed to subscribe event logger"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
	ErrMsgFailedCreateDiscordSender  = "failed to create discord sender"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer          = "Shutting down server..."
	LogMsgShuttingDownEventPublisher  = "Shutting down event publisher..."
	LogMsgServerStopped               = "Server stopped"
	LogMsgServerForcedShutdown        = "Server forced to shutdown"
	LogMsgResilientPublisherFailed    = "Resilient publisher shutdown failed"
	LogMsgMissionWorkerShutdownFailed = "Mission worker shutdown failed"
	LogMsgDailyResetShutdownFailed    = "Daily reset worker shutdown failed"
	LogMsgOutboxCloseFailed           = "Sync outbox close failed"
	LogMsgTelemetryShutdownFailed     = "Tracer provider shutdown failed"
)
