package worker

import "time"

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// LogMsgWorkerQueueFull is logged when a non-blocking enqueue drops a job
const LogMsgWorkerQueueFull = "Worker queue full, job dropped"

// JobTimeout bounds a single job run
const JobTimeout = 30 * time.Second

// Log messages for deadline timers
const (
	LogMsgDeadlineCancelled = "Cancelled pending deadline"
	LogMsgWorkerStopped     = "Worker stopped"
	LogMsgWorkerStopTimeout = "Worker stop timed out"
)

// Log messages for mission worker operations
const (
	LogMsgMissionWorkerClosed        = "Mission worker closed, claim not scheduled"
	LogMsgFailedToLoadActiveMissions = "Failed to load active missions on startup"
	LogMsgSchedulingMissionClaim     = "Scheduling mission claim"
	LogMsgClaimingMission            = "Claiming finished mission"
	LogMsgFailedToClaimMission       = "Failed to claim mission"
)

// Log messages for daily reset worker operations
const (
	LogMsgDailyResetStarting  = "Daily reset starting"
	LogMsgDailyResetCompleted = "Daily reset completed"
	LogMsgDailyResetFailed    = "Daily reset failed"
	LogMsgDailyResetStandby   = "Daily reset standby, checking again later"
	LogMsgDailyResetApproach  = "Daily reset scheduled"
)

// Daily reset scheduling
const (
	// ResetStandbyThreshold switches from the standby timer to the exact reset timer
	ResetStandbyThreshold = time.Hour

	// ResetStandbyLead is how long before the reset the standby timer wakes up
	ResetStandbyLead = 45 * time.Minute

	// ResetJitterTolerance is how early a timer may fire and still count as on time
	ResetJitterTolerance = 10 * time.Second
)

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount           = 2
	TestQueueSize             = 10
	TestExpectedJobCount      = 2
	TestWorkerProcessWaitTime = 100 // milliseconds
)
