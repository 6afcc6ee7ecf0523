package cloudsync

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/osse101/QuestForge_Go/internal/domain"
)

//go:embed migrations/*.sql
var migrations embed.FS

// OutboxEntry is a parked snapshot awaiting redelivery
type OutboxEntry struct {
	ID       int64
	Snapshot domain.Snapshot
	Attempts int
}

// Outbox is a local SQLite queue for snapshots the remote sink rejected
type Outbox struct {
	db *sql.DB
}

// OpenOutbox opens (creating if needed) the outbox database at path and applies migrations
func OpenOutbox(ctx context.Context, path string) (*Outbox, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%s", ErrMsgOutboxPathRequired)
	}
	db, err := sql.Open("sqlite", filepath.Clean(path)+outboxDSNParams)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgOpenOutbox, err)
	}
	// One writer keeps SQLite from returning SQLITE_BUSY under concurrent workers
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgOpenOutbox, err)
	}

	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgMigrateOutbox, err)
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgMigrateOutbox, err)
	}
	if _, err := provider.Up(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgMigrateOutbox, err)
	}
	return &Outbox{db: db}, nil
}

// Close releases the database
func (o *Outbox) Close() error {
	if o == nil || o.db == nil {
		return nil
	}
	return o.db.Close()
}

// Name identifies the outbox when it is used as a sink
func (o *Outbox) Name() string { return "outbox" }

// Write parks snapshots
func (o *Outbox) Write(ctx context.Context, snaps []domain.Snapshot) error {
	tx, err := o.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgWriteOutbox, err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, s := range snaps {
		_, err := tx.ExecContext(ctx, `
INSERT INTO snapshot_outbox (kind, entity_id, payload, captured_at)
VALUES (?, ?, ?, ?)`,
			string(s.Kind), s.EntityID.String(), []byte(s.Payload), s.CapturedAt.UTC().UnixNano(),
		)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgWriteOutbox, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgWriteOutbox, err)
	}
	return nil
}

// Pending returns the oldest parked entries, at most limit
func (o *Outbox) Pending(ctx context.Context, limit int) ([]OutboxEntry, error) {
	if limit <= 0 {
		limit = DefaultDrainBatch
	}
	rows, err := o.db.QueryContext(ctx, `
SELECT id, kind, entity_id, payload, captured_at, attempts
FROM snapshot_outbox
ORDER BY captured_at, id
LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgReadOutbox, err)
	}
	defer rows.Close()

	var entries []OutboxEntry
	for rows.Next() {
		var (
			e        OutboxEntry
			kind     string
			entityID string
			payload  []byte
			captured int64
		)
		if err := rows.Scan(&e.ID, &kind, &entityID, &payload, &captured, &e.Attempts); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgReadOutbox, err)
		}
		id, err := uuid.Parse(entityID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgReadOutbox, err)
		}
		e.Snapshot = domain.Snapshot{
			Kind:       domain.SnapshotKind(kind),
			EntityID:   id,
			Payload:    payload,
			CapturedAt: time.Unix(0, captured).UTC(),
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgReadOutbox, err)
	}
	return entries, nil
}

// Delete removes delivered entries
func (o *Outbox) Delete(ctx context.Context, ids []int64) error {
	for _, id := range ids {
		if _, err := o.db.ExecContext(ctx, `DELETE FROM snapshot_outbox WHERE id = ?`, id); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgWriteOutbox, err)
		}
	}
	return nil
}

// MarkFailed bumps the attempt counter of entries a drain could not deliver
func (o *Outbox) MarkFailed(ctx context.Context, ids []int64, cause error) error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	for _, id := range ids {
		_, err := o.db.ExecContext(ctx,
			`UPDATE snapshot_outbox SET attempts = attempts + 1, last_error = ? WHERE id = ?`, msg, id)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgWriteOutbox, err)
		}
	}
	return nil
}

// Count returns the number of parked entries
func (o *Outbox) Count(ctx context.Context) (int, error) {
	var n int
	if err := o.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM snapshot_outbox`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgReadOutbox, err)
	}
	return n, nil
}
