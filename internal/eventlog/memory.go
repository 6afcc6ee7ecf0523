package eventlog

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository keeps the journal in process. It backs the in-memory store.
type MemoryRepository struct {
	mu     sync.RWMutex
	events []Event
	nextID int64
	now    func() time.Time
}

// NewMemoryRepository creates an empty journal
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{now: time.Now}
}

// LogEvent appends an event
func (r *MemoryRepository) LogEvent(_ context.Context, eventType string, characterID *uuid.UUID, payload, metadata map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.events = append(r.events, Event{
		ID:          r.nextID,
		EventType:   eventType,
		CharacterID: characterID,
		Payload:     payload,
		Metadata:    metadata,
		CreatedAt:   r.now(),
	})
	return nil
}

// GetEvents returns matching events newest first
func (r *MemoryRepository) GetEvents(_ context.Context, filter EventFilter) ([]Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Event
	for i := len(r.events) - 1; i >= 0; i-- {
		if !filter.Matches(r.events[i]) {
			continue
		}
		out = append(out, r.events[i])
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

// CleanupOldEvents drops events older than retentionDays
func (r *MemoryRepository) CleanupOldEvents(_ context.Context, retentionDays int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().AddDate(0, 0, -retentionDays)
	kept := r.events[:0]
	var removed int64
	for _, e := range r.events {
		if e.CreatedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	r.events = kept
	return removed, nil
}
