package worker

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/QuestForge_Go/internal/logger"
)

// deadline is one armed timer. Its identity tells a firing timer whether it
// was replaced in the meantime.
type deadline struct {
	timer *time.Timer
	at    time.Time
}

// deadlines fires at most one callback per key at a wall-clock time.
// Re-arming a key replaces its pending deadline.
type deadlines struct {
	mu      sync.Mutex
	pending map[uuid.UUID]*deadline
	closed  bool
	running sync.WaitGroup
}

func newDeadlines() deadlines {
	return deadlines{pending: make(map[uuid.UUID]*deadline)}
}

// arm schedules fn for id at at. Past deadlines fire immediately. It reports
// false once the set is closed.
func (d *deadlines) arm(id uuid.UUID, at time.Time, fn func(ctx context.Context)) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return false
	}
	if prev, ok := d.pending[id]; ok {
		prev.timer.Stop()
	}
	dl := &deadline{at: at}
	// fire blocks on d.mu, so dl.timer is set before it is read
	dl.timer = time.AfterFunc(max(time.Until(at), 0), func() { d.fire(id, dl, fn) })
	d.pending[id] = dl
	return true
}

func (d *deadlines) fire(id uuid.UUID, dl *deadline, fn func(ctx context.Context)) {
	d.mu.Lock()
	if d.closed || d.pending[id] != dl {
		d.mu.Unlock()
		return
	}
	delete(d.pending, id)
	d.running.Add(1)
	d.mu.Unlock()

	defer d.running.Done()
	fn(context.Background())
}

func (d *deadlines) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// close cancels every pending deadline and waits for callbacks already running
func (d *deadlines) close(ctx context.Context, name string) error {
	log := logger.FromContext(ctx).With("worker", name)

	d.mu.Lock()
	d.closed = true
	for id, dl := range d.pending {
		dl.timer.Stop()
		log.Info(LogMsgDeadlineCancelled, "id", id, "due", dl.at)
	}
	clear(d.pending)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.running.Wait()
		close(done)
	}()
	select {
	case <-done:
		log.Info(LogMsgWorkerStopped)
		return nil
	case <-ctx.Done():
		log.Warn(LogMsgWorkerStopTimeout)
		return ctx.Err()
	}
}
