package event

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/QuestForge_Go/internal/logger"
)

type retryEntry struct {
	event     Event
	attempt   int
	nextRetry time.Time
	lastErr   error
}

// ResilientPublisher wraps an Event Bus to add retry logic and dead letter queuing.
// The first attempt is synchronous; failures move to a background retry worker
// with exponential backoff and land in the dead-letter file once exhausted.
type ResilientPublisher struct {
	bus        Bus
	retryQueue chan retryEntry
	maxRetries int
	retryDelay time.Duration
	deadLetter *DeadLetterWriter
	shutdown   chan struct{}
	closeOnce  sync.Once
	wg         sync.WaitGroup
}

// NewResilientPublisher creates a publisher and starts its retry worker
func NewResilientPublisher(bus Bus, maxRetries int, retryDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dl, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}
	rp := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, RetryQueueBufferSize),
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}
	rp.wg.Add(1)
	go rp.retryWorker()
	return rp, nil
}

// PublishWithRetry never reports failure to the caller
func (rp *ResilientPublisher) PublishWithRetry(ctx context.Context, event Event) {
	err := rp.bus.Publish(ctx, event)
	if err == nil {
		return
	}

	logger.FromContext(ctx).Warn(LogMsgEventPublishFailed,
		"event_type", event.Type,
		"error", err)
	rp.enqueue(retryEntry{
		event:     event,
		attempt:   1,
		nextRetry: time.Now().Add(CalculateRetryDelay(rp.retryDelay, 1)),
		lastErr:   err,
	})
}

func (rp *ResilientPublisher) enqueue(entry retryEntry) {
	select {
	case rp.retryQueue <- entry:
	default:
		logger.Warn(LogMsgRetryQueueFull, "event_type", entry.event.Type)
		rp.writeDeadLetter(entry)
	}
}

// retryWorker keeps entries it has taken off the queue in a pending set and
// wakes for whichever is due first, so a long backoff never delays a short one.
func (rp *ResilientPublisher) retryWorker() {
	defer rp.wg.Done()
	var pending []retryEntry
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		var wake <-chan time.Time
		if len(pending) > 0 {
			timer.Reset(max(time.Until(earliest(pending)), 0))
			wake = timer.C
		}
		select {
		case <-rp.shutdown:
			rp.drain(pending)
			return
		case entry := <-rp.retryQueue:
			pending = rp.hold(pending, entry)
		case <-wake:
			pending = rp.retryDue(pending, time.Now())
		}
	}
}

func earliest(pending []retryEntry) time.Time {
	next := pending[0].nextRetry
	for _, e := range pending[1:] {
		if e.nextRetry.Before(next) {
			next = e.nextRetry
		}
	}
	return next
}

func (rp *ResilientPublisher) hold(pending []retryEntry, entry retryEntry) []retryEntry {
	if len(pending) >= RetryQueueBufferSize {
		logger.Warn(LogMsgRetryQueueFull, "event_type", entry.event.Type)
		rp.writeDeadLetter(entry)
		return pending
	}
	return append(pending, entry)
}

// retryDue publishes every entry whose backoff has elapsed and returns the rest
func (rp *ResilientPublisher) retryDue(pending []retryEntry, now time.Time) []retryEntry {
	waiting := pending[:0]
	var again []retryEntry
	for _, entry := range pending {
		if entry.nextRetry.After(now) {
			waiting = append(waiting, entry)
			continue
		}
		if next, ok := rp.retry(entry); ok {
			again = append(again, next)
		}
	}
	for _, entry := range again {
		waiting = rp.hold(waiting, entry)
	}
	return waiting
}

// retry makes one attempt and reports the rescheduled entry when it should run again
func (rp *ResilientPublisher) retry(entry retryEntry) (retryEntry, bool) {
	err := rp.bus.Publish(context.Background(), entry.event)
	if err == nil {
		logger.Info(LogMsgEventRetrySucceeded, "event_type", entry.event.Type, "attempt", entry.attempt)
		return entry, false
	}
	entry.lastErr = err

	if entry.attempt >= rp.maxRetries {
		logger.Warn(LogMsgEventRetryExhausted, "event_type", entry.event.Type, "attempts", entry.attempt)
		rp.writeDeadLetter(entry)
		return entry, false
	}

	entry.attempt++
	entry.nextRetry = time.Now().Add(CalculateRetryDelay(rp.retryDelay, entry.attempt))
	logger.Warn(LogMsgEventRetryFailed, "event_type", entry.event.Type, "attempt", entry.attempt, "error", err)
	return entry, true
}

// drain makes one last attempt at everything pending or still queued
func (rp *ResilientPublisher) drain(pending []retryEntry) {
	for {
		select {
		case entry := <-rp.retryQueue:
			pending = append(pending, entry)
			continue
		default:
		}
		break
	}
	for _, entry := range pending {
		if err := rp.bus.Publish(context.Background(), entry.event); err != nil {
			entry.lastErr = err
			logger.Warn(LogMsgEventDroppedShutdown, "event_type", entry.event.Type)
			rp.writeDeadLetter(entry)
		}
	}
	if len(pending) > 0 {
		logger.Info(LogMsgQueueDrainedShutdown, "count", len(pending))
	}
}

func (rp *ResilientPublisher) writeDeadLetter(entry retryEntry) {
	if rp.deadLetter == nil {
		return
	}
	if err := rp.deadLetter.Write(entry.event, entry.attempt, entry.lastErr); err != nil {
		logger.Error(LogMsgDeadLetterWriteFailed, "error", err)
	}
}

// Shutdown stops the retry worker after draining the queue
func (rp *ResilientPublisher) Shutdown(ctx context.Context) error {
	rp.closeOnce.Do(func() { close(rp.shutdown) })

	done := make(chan struct{})
	go func() {
		rp.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logger.Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}

	if rp.deadLetter != nil {
		if err := rp.deadLetter.Close(); err != nil {
			logger.Error(LogMsgDeadLetterWriteFailedS, "error", err)
		}
	}
	return nil
}

// Publish lets the resilient publisher stand in for a Bus
func (rp *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	rp.PublishWithRetry(ctx, event)
	return nil
}

// Subscribe delegates to the inner bus
func (rp *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	rp.bus.Subscribe(eventType, handler)
}
