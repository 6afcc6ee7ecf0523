package worker

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/QuestForge_Go/internal/logger"
)

// DailyResetter performs the midnight rollover
type DailyResetter interface {
	// ResetRecurring returns recurring tasks whose window elapsed to pending
	// and reports how many were reset
	ResetRecurring(ctx context.Context, now time.Time) (int, error)
}

// DailyResetWorker runs the recurring-task reset at local midnight
type DailyResetWorker struct {
	resetter DailyResetter
	location *time.Location
	timer    *time.Timer
	shutdown chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
}

// NewDailyResetWorker creates a new DailyResetWorker. A nil location means UTC.
func NewDailyResetWorker(resetter DailyResetter, location *time.Location) *DailyResetWorker {
	if location == nil {
		location = time.UTC
	}
	return &DailyResetWorker{
		resetter: resetter,
		location: location,
		shutdown: make(chan struct{}),
	}
}

// Start initializes the worker and schedules the first reset
func (w *DailyResetWorker) Start() {
	w.scheduleNext()
}

// scheduleNext calculates the time until the next local midnight and schedules the reset
func (w *DailyResetWorker) scheduleNext() {
	duration := timeUntilNextReset(time.Now(), w.location)
	log := logger.FromContext(context.Background())

	w.mu.Lock()
	defer w.mu.Unlock()
	select {
	case <-w.shutdown:
		return
	default:
	}
	if w.timer != nil {
		w.timer.Stop()
	}

	// Two-stage scheduling so an early trigger never turns into a tight loop
	if duration > ResetStandbyThreshold {
		wait := duration - ResetStandbyLead
		w.timer = time.AfterFunc(wait, w.scheduleNext)
		log.Info(LogMsgDailyResetStandby, "next_check_at", time.Now().Add(wait))
		return
	}

	w.timer = time.AfterFunc(duration, func() {
		select {
		case <-w.shutdown:
			return
		default:
		}

		// Fired early: wait out the remainder
		rem := timeUntilNextReset(time.Now(), w.location)
		if rem > ResetJitterTolerance && rem < 23*time.Hour {
			w.scheduleNext()
			return
		}

		w.executeReset()
		w.scheduleNext()
	})
	log.Info(LogMsgDailyResetApproach, "next_reset_at", time.Now().Add(duration))
}

// executeReset performs the daily reset in a tracked goroutine
func (w *DailyResetWorker) executeReset() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.RunNow(context.Background())
	}()
}

// RunNow performs the reset synchronously
func (w *DailyResetWorker) RunNow(ctx context.Context) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgDailyResetStarting)

	reset, err := w.resetter.ResetRecurring(ctx, time.Now())
	if err != nil {
		log.Error(LogMsgDailyResetFailed, "error", err)
		return
	}
	log.Info(LogMsgDailyResetCompleted, "tasks_reset", reset)
}

// Shutdown cancels the pending timer and waits for any in-flight reset
func (w *DailyResetWorker) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info("Shutting down daily reset worker")

	w.mu.Lock()
	select {
	case <-w.shutdown:
	default:
		close(w.shutdown)
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info("Daily reset worker shutdown complete")
		return nil
	case <-ctx.Done():
		log.Warn("Daily reset worker shutdown timeout, a reset may still be running")
		return ctx.Err()
	}
}

// timeUntilNextReset is the duration from now until the next midnight in loc
func timeUntilNextReset(now time.Time, loc *time.Location) time.Duration {
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	if !next.After(local) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(local)
}
