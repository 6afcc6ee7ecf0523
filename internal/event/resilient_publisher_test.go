package event

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyBus records every publish and fails when shouldFail says so
type flakyBus struct {
	mu           sync.Mutex
	calls        []Event
	failCount    int32
	shouldFail   func(attempt int) bool
	publishDelay time.Duration
}

func (m *flakyBus) Publish(ctx context.Context, event Event) error {
	m.mu.Lock()
	m.calls = append(m.calls, event)
	callCount := len(m.calls)
	m.mu.Unlock()

	if m.publishDelay > 0 {
		time.Sleep(m.publishDelay)
	}

	if m.shouldFail != nil && m.shouldFail(callCount) {
		atomic.AddInt32(&m.failCount, 1)
		return errors.New("bus unavailable")
	}
	return nil
}

func (m *flakyBus) Subscribe(eventType Type, handler Handler) {}

func (m *flakyBus) Calls() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Event{}, m.calls...)
}

func (m *flakyBus) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func levelUp() Event {
	return NewLevelUpEvent(uuid.New(), 4, 5, "task")
}

func TestResilientPublisher_SuccessfulPublish(t *testing.T) {
	path := t.TempDir() + "/deadletter.jsonl"
	bus := &flakyBus{}

	rp, err := NewResilientPublisher(bus, 3, 100*time.Millisecond, path)
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	rp.PublishWithRetry(context.Background(), levelUp())
	time.Sleep(50 * time.Millisecond)

	require.Equal(t, 1, bus.CallCount())
	assert.Equal(t, CharacterLeveledUp, bus.Calls()[0].Type)

	content, _ := os.ReadFile(path)
	assert.Empty(t, content)
}

func TestResilientPublisher_RetrySuccess(t *testing.T) {
	path := t.TempDir() + "/deadletter.jsonl"
	bus := &flakyBus{shouldFail: func(attempt int) bool { return attempt == 1 }}

	rp, err := NewResilientPublisher(bus, 3, 100*time.Millisecond, path)
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	rp.PublishWithRetry(context.Background(), levelUp())
	time.Sleep(300 * time.Millisecond)

	assert.Equal(t, 2, bus.CallCount(), "initial attempt plus one retry")
	content, _ := os.ReadFile(path)
	assert.Empty(t, content)
}

func TestResilientPublisher_RetryExhaustion(t *testing.T) {
	path := t.TempDir() + "/deadletter.jsonl"
	bus := &flakyBus{shouldFail: func(int) bool { return true }}

	rp, err := NewResilientPublisher(bus, 3, 50*time.Millisecond, path)
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	rp.PublishWithRetry(context.Background(), levelUp())
	// 50ms + 100ms + 200ms of backoff
	time.Sleep(500 * time.Millisecond)

	assert.GreaterOrEqual(t, bus.CallCount(), 4)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotEmpty(t, content)

	entries, err := ReadDeadLetters(bytes.NewReader(content))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	entry := entries[0]
	payload, ok := entry.Event.Payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, DeadLetterSchemaVersion, entry.SchemaVersion)
	assert.Equal(t, CharacterLeveledUp, entry.Event.Type)
	assert.EqualValues(t, 5, payload["new_level"])
	assert.Equal(t, 3, entry.Attempts)
	assert.Equal(t, "bus unavailable", entry.LastError)
}

func TestResilientPublisher_QueueOverflow(t *testing.T) {
	path := t.TempDir() + "/deadletter.jsonl"
	bus := &flakyBus{
		shouldFail:   func(int) bool { return true },
		publishDelay: 20 * time.Millisecond,
	}

	rp := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, 5),
		maxRetries: 3,
		retryDelay: time.Second,
		shutdown:   make(chan struct{}),
	}
	dl, err := NewDeadLetterWriter(path)
	require.NoError(t, err)
	rp.deadLetter = dl
	// no worker, so nothing takes entries off the queue
	defer rp.Shutdown(context.Background())

	for i := 0; i < 10; i++ {
		rp.PublishWithRetry(context.Background(), levelUp())
	}

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEmpty(t, content, "overflowing events go straight to the dead letter file")
}

func TestResilientPublisher_LongBackoffDoesNotDelayOthers(t *testing.T) {
	path := t.TempDir() + "/deadletter.jsonl"
	bus := &flakyBus{}

	rp, err := NewResilientPublisher(bus, 3, time.Second, path)
	require.NoError(t, err)

	slow, fast := levelUp(), levelUp()
	rp.enqueue(retryEntry{event: slow, attempt: 1, nextRetry: time.Now().Add(time.Hour)})
	rp.enqueue(retryEntry{event: fast, attempt: 1, nextRetry: time.Now().Add(20 * time.Millisecond)})

	assert.Eventually(t, func() bool { return bus.CallCount() == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, fast.Payload, bus.Calls()[0].Payload)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, rp.Shutdown(ctx))

	calls := bus.Calls()
	require.Len(t, calls, 2, "shutdown flushes the entry still backing off")
	assert.Equal(t, slow.Payload, calls[1].Payload)
}

func TestResilientPublisher_GracefulShutdown(t *testing.T) {
	path := t.TempDir() + "/deadletter.jsonl"
	var calls int32
	bus := &flakyBus{shouldFail: func(int) bool { return atomic.AddInt32(&calls, 1) <= 2 }}

	rp, err := NewResilientPublisher(bus, 5, 50*time.Millisecond, path)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		rp.PublishWithRetry(context.Background(), levelUp())
	}
	time.Sleep(100 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, rp.Shutdown(ctx))

	assert.GreaterOrEqual(t, bus.CallCount(), 3)
	assert.NoError(t, rp.Shutdown(ctx), "second shutdown is a no-op")
}

func TestResilientPublisher_ExponentialBackoff(t *testing.T) {
	path := t.TempDir() + "/deadletter.jsonl"

	var mu sync.Mutex
	attempts := make([]time.Time, 0, 5)
	bus := &flakyBus{shouldFail: func(attempt int) bool {
		mu.Lock()
		attempts = append(attempts, time.Now())
		mu.Unlock()
		return attempt < 4
	}}

	base := 100 * time.Millisecond
	rp, err := NewResilientPublisher(bus, 5, base, path)
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	rp.PublishWithRetry(context.Background(), levelUp())
	time.Sleep(time.Second)

	mu.Lock()
	defer mu.Unlock()
	require.GreaterOrEqual(t, len(attempts), 3)

	assert.InDelta(t, base.Milliseconds(), attempts[1].Sub(attempts[0]).Milliseconds(), 50)
	assert.InDelta(t, (2 * base).Milliseconds(), attempts[2].Sub(attempts[1]).Milliseconds(), 50)
}

func TestResilientPublisher_ConcurrentPublishes(t *testing.T) {
	path := t.TempDir() + "/deadletter.jsonl"
	bus := &flakyBus{}

	rp, err := NewResilientPublisher(bus, 3, 50*time.Millisecond, path)
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	const goroutines = 10
	const perGoroutine = 5

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				rp.PublishWithRetry(context.Background(), levelUp())
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, goroutines*perGoroutine, bus.CallCount())
}

func TestCalculateRetryDelay(t *testing.T) {
	base := 2 * time.Second
	assert.Equal(t, 2*time.Second, CalculateRetryDelay(base, 1))
	assert.Equal(t, 4*time.Second, CalculateRetryDelay(base, 2))
	assert.Equal(t, 32*time.Second, CalculateRetryDelay(base, 5))
	assert.Equal(t, base, CalculateRetryDelay(base, 0))
	assert.Equal(t, MaxRetryDelay, CalculateRetryDelay(base, 12))
	assert.Equal(t, MaxRetryDelay, CalculateRetryDelay(base, 80), "no overflow on huge attempts")
}

func TestDeadLetterWriter_CreatesDirAndRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dl.jsonl")
	dl, err := NewDeadLetterWriter(path)
	require.NoError(t, err)

	require.NoError(t, dl.Write(levelUp(), 2, errors.New("first")))
	require.NoError(t, dl.Write(levelUp(), 4, nil))
	require.NoError(t, dl.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(DeadLetterFilePermissions), info.Mode().Perm())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	entries, err := ReadDeadLetters(f)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "first", entries[0].LastError)
	assert.Empty(t, entries[1].LastError)
	assert.Equal(t, 4, entries[1].Attempts)
}

func TestReadDeadLetters_ReportsBadLine(t *testing.T) {
	_, err := ReadDeadLetters(strings.NewReader("{\"attempts\":1}\n\nnot json\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}
