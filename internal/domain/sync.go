package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SnapshotKind names the aggregate a snapshot was taken from
type SnapshotKind string

const (
	SnapshotCharacter  SnapshotKind = "character"
	SnapshotTask       SnapshotKind = "task"
	SnapshotBond       SnapshotKind = "bond"
	SnapshotDungeonRun SnapshotKind = "dungeon_run"
)

// Snapshot is a post-hoc copy of a mutated aggregate handed to cloud replication
type Snapshot struct {
	Kind       SnapshotKind    `json:"kind" db:"kind"`
	EntityID   uuid.UUID       `json:"entity_id" db:"entity_id"`
	Payload    json.RawMessage `json:"payload" db:"payload"`
	CapturedAt time.Time       `json:"captured_at" db:"captured_at"`
}

// NewSnapshot marshals v into a snapshot
func NewSnapshot(kind SnapshotKind, id uuid.UUID, v any, at time.Time) (Snapshot, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Snapshot{}, fmt.Errorf("marshal %s snapshot: %w", kind, err)
	}
	return Snapshot{Kind: kind, EntityID: id, Payload: data, CapturedAt: at}, nil
}
