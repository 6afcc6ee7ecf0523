package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/QuestForge_Go/internal/domain"
)

// SnapshotSink stores replicated aggregate snapshots
type SnapshotSink struct {
	db *pgxpool.Pool
}

// NewSnapshotSink creates a new SnapshotSink
func NewSnapshotSink(db *pgxpool.Pool) *SnapshotSink {
	return &SnapshotSink{db: db}
}

// Name identifies the sink in logs
func (s *SnapshotSink) Name() string {
	return "postgres"
}

// Write appends a batch of snapshots in one round trip
func (s *SnapshotSink) Write(ctx context.Context, snaps []domain.Snapshot) error {
	batch := &pgx.Batch{}
	for _, snap := range snaps {
		batch.Queue(`
			INSERT INTO sync_snapshots (kind, entity_id, payload, captured_at)
			VALUES ($1, $2, $3, $4)
		`, string(snap.Kind), snap.EntityID, []byte(snap.Payload), snap.CapturedAt)
	}
	if err := s.db.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("%s snapshots: %w", ErrMsgFailedToUpsert, err)
	}
	return nil
}

// Latest returns the most recent snapshot of an entity
func (s *SnapshotSink) Latest(ctx context.Context, kind domain.SnapshotKind, id uuid.UUID) (*domain.Snapshot, error) {
	var snap domain.Snapshot
	var kindStr string
	var payload []byte
	err := s.db.QueryRow(ctx, `
		SELECT kind, entity_id, payload, captured_at FROM sync_snapshots
		WHERE kind = $1 AND entity_id = $2
		ORDER BY captured_at DESC, snapshot_id DESC
		LIMIT 1
	`, string(kind), id).Scan(&kindStr, &snap.EntityID, &payload, &snap.CapturedAt)
	if err != nil {
		return nil, fmt.Errorf("%s snapshot: %w", ErrMsgFailedToQuery, err)
	}
	snap.Kind = domain.SnapshotKind(kindStr)
	snap.Payload = payload
	return &snap, nil
}
