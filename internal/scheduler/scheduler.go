// Package scheduler runs maintenance sweeps (escrow auto-confirm, streak
// checks, outbox drain, journal cleanup) on the shared worker pool.
package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/osse101/QuestForge_Go/internal/logger"
	"github.com/osse101/QuestForge_Go/internal/metrics"
	"github.com/osse101/QuestForge_Go/internal/worker"
)

// Task is one maintenance pass. It reports how many records it touched.
type Task func(ctx context.Context) (int, error)

// Scheduler enqueues named tasks on the worker pool at fixed intervals
type Scheduler struct {
	pool     *worker.Pool
	quit     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates a scheduler feeding pool
func New(pool *worker.Pool) *Scheduler {
	return &Scheduler{
		pool: pool,
		quit: make(chan struct{}),
	}
}

// Every runs task each interval, first firing one interval from now.
// A tick is skipped when the previous run of the same task has not finished
// or the pool queue is full.
func (s *Scheduler) Every(name string, interval time.Duration, task Task) {
	var running atomic.Bool
	job := worker.JobFunc(func(ctx context.Context) error {
		defer running.Store(false)
		return run(ctx, name, task)
	})

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if !running.CompareAndSwap(false, true) {
					skip(name, LogMsgStillRunning)
					continue
				}
				if !s.pool.TryEnqueue(job) {
					running.Store(false)
					skip(name, LogMsgQueueFull)
				}
			case <-s.quit:
				return
			}
		}
	}()
}

// Stop halts all tickers. Runs already queued on the pool still complete.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.quit) })
	s.wg.Wait()
}

func run(ctx context.Context, name string, task Task) error {
	log := logger.FromContext(ctx).With(LogFieldJob, name)
	start := time.Now()
	n, err := task(ctx)
	if err != nil {
		metrics.ScheduledRuns.WithLabelValues(name, metrics.OutcomeFailure).Inc()
		log.Error(LogMsgJobFailed, "error", err, "duration", time.Since(start))
		return err
	}
	metrics.ScheduledRuns.WithLabelValues(name, metrics.OutcomeSuccess).Inc()
	if n > 0 {
		metrics.ScheduledItems.WithLabelValues(name).Add(float64(n))
		log.Info(LogMsgJobCompleted, "count", n, "duration", time.Since(start))
	}
	return nil
}

func skip(name, reason string) {
	metrics.ScheduledRuns.WithLabelValues(name, metrics.OutcomeSkipped).Inc()
	logger.Debug(reason, LogFieldJob, name)
}

const (
	LogFieldJob        = "job"
	LogMsgJobCompleted = "Scheduled job completed"
	LogMsgJobFailed    = "Scheduled job failed"
	LogMsgStillRunning = "Scheduled tick skipped, previous run still in progress"
	LogMsgQueueFull    = "Scheduled tick skipped, worker queue full"
)
