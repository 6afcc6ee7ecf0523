package event

import "time"

// EventSchemaVersion is stamped on every published event
const EventSchemaVersion = "1.0"

// Retry configuration
const (
	RetryQueueBufferSize = 1000

	// MaxRetryDelay caps the backoff so a long retry budget still retries
	// within the same shutdown horizon
	MaxRetryDelay = 5 * time.Minute
)

// Dead-letter files hold player payloads, so they stay private to the service user
const (
	DeadLetterFilePermissions = 0o600
	DeadLetterDirPermissions  = 0o750

	maxDeadLetterLine = 1 << 20
)

// Log message constants
const (
	// Log messages for event publishing
	LogMsgEventPublishFailed     = "Event publish failed, queuing for retry"
	LogMsgRetryQueueFull         = "Retry queue full, event dropped to dead-letter"
	LogMsgDeadLetterWriteFailed  = "Failed to write to dead letter"
	LogMsgEventRetryExhausted    = "Event retry exhausted, writing to dead-letter"
	LogMsgEventRetryFailed       = "Event retry failed, scheduling next attempt"
	LogMsgEventRetrySucceeded    = "Event retry succeeded"
	LogMsgEventDroppedShutdown   = "Event dropped during shutdown"
	LogMsgQueueDrainedShutdown   = "Drained retry queue during shutdown"
	LogMsgShutdownTimeout        = "Resilient publisher shutdown timed out"
	LogMsgDeadLetterWriteFailedS = "Failed to write to dead letter shutdown"
	LogMsgEventDeadLettered      = "event_dead_lettered"

	// Log message for handler errors
	LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %v"
)

// CalculateRetryDelay doubles baseDelay per attempt (attempt 1 waits
// baseDelay) and never exceeds MaxRetryDelay
func CalculateRetryDelay(baseDelay time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := baseDelay
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= MaxRetryDelay {
			return MaxRetryDelay
		}
	}
	if d > MaxRetryDelay {
		return MaxRetryDelay
	}
	return d
}
