package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/QuestForge_Go/internal/eventlog"
)

const (
	insertEventSQL = `INSERT INTO events (event_type, character_id, payload, metadata) VALUES ($1, $2, $3, $4)`
	selectEventSQL = `SELECT id, event_type, character_id, payload, metadata, created_at FROM events`
	pruneEventSQL  = `DELETE FROM events WHERE created_at < NOW() - make_interval(days => $1)`
)

type eventLogRepository struct {
	db *pgxpool.Pool
}

// NewEventLogRepository stores the event journal in the events table
func NewEventLogRepository(db *pgxpool.Pool) eventlog.Repository {
	return &eventLogRepository{db: db}
}

func (r *eventLogRepository) LogEvent(ctx context.Context, eventType string, characterID *uuid.UUID, payload, metadata map[string]interface{}) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%s event payload: %w", ErrMsgFailedToMarshal, err)
	}
	// nil keeps the column NULL instead of the JSON literal null
	var metadataJSON []byte
	if len(metadata) > 0 {
		if metadataJSON, err = json.Marshal(metadata); err != nil {
			return fmt.Errorf("%s event metadata: %w", ErrMsgFailedToMarshal, err)
		}
	}

	if _, err := r.db.Exec(ctx, insertEventSQL, eventType, characterID, payloadJSON, metadataJSON); err != nil {
		return fmt.Errorf("%s event: %w", ErrMsgFailedToUpsert, err)
	}
	return nil
}

// GetEvents returns the journal newest first
func (r *eventLogRepository) GetEvents(ctx context.Context, filter eventlog.EventFilter) ([]eventlog.Event, error) {
	var w where
	if filter.CharacterID != nil {
		w.add("character_id = ?", *filter.CharacterID)
	}
	if filter.EventType != nil {
		w.add("event_type = ?", *filter.EventType)
	}
	if filter.Since != nil {
		w.add("created_at >= ?", *filter.Since)
	}
	if filter.Until != nil {
		w.add("created_at <= ?", *filter.Until)
	}

	sql := selectEventSQL + w.String() + " ORDER BY created_at DESC, id DESC"
	args := w.args
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		sql += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s events: %w", ErrMsgFailedToQuery, err)
	}
	events, err := pgx.CollectRows(rows, pgx.RowToStructByPos[eventlog.Event])
	if err != nil {
		return nil, fmt.Errorf("%s event: %w", ErrMsgFailedToScan, err)
	}
	return events, nil
}

func (r *eventLogRepository) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	tag, err := r.db.Exec(ctx, pruneEventSQL, retentionDays)
	if err != nil {
		return 0, fmt.Errorf("%s events: %w", ErrMsgFailedToDelete, err)
	}
	return tag.RowsAffected(), nil
}
