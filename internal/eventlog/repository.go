package eventlog

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event is one journal entry. Events that involve several characters, such as
// a dungeon run, are stored once per character.
type Event struct {
	ID          int64                  `json:"id"`
	EventType   string                 `json:"event_type"`
	CharacterID *uuid.UUID             `json:"character_id,omitempty"`
	Payload     map[string]interface{} `json:"payload"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
}

// EventFilter filters events for queries
type EventFilter struct {
	CharacterID *uuid.UUID
	EventType   *string
	Since       *time.Time
	Until       *time.Time
	Limit       int
}

// Matches reports whether e passes every set criterion
func (f EventFilter) Matches(e Event) bool {
	if f.CharacterID != nil && (e.CharacterID == nil || *e.CharacterID != *f.CharacterID) {
		return false
	}
	if f.EventType != nil && e.EventType != *f.EventType {
		return false
	}
	if f.Since != nil && e.CreatedAt.Before(*f.Since) {
		return false
	}
	if f.Until != nil && e.CreatedAt.After(*f.Until) {
		return false
	}
	return true
}

// Repository defines the interface for event journal storage
type Repository interface {
	// LogEvent stores an event
	LogEvent(ctx context.Context, eventType string, characterID *uuid.UUID, payload, metadata map[string]interface{}) error

	// GetEvents retrieves events newest first
	GetEvents(ctx context.Context, filter EventFilter) ([]Event, error)

	// CleanupOldEvents removes events older than the specified number of days
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}
