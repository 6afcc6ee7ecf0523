// Package cloudsync replicates mutated aggregates to remote storage.
//
// Replication is best-effort: game operations hand snapshots to a
// Replicator and never wait on, or fail because of, delivery.
package cloudsync

import (
	"context"

	"github.com/osse101/QuestForge_Go/internal/domain"
)

// Sink is a replication target
type Sink interface {
	Name() string
	Write(ctx context.Context, snaps []domain.Snapshot) error
}

// LogSink discards snapshots after logging them. Used when no remote is configured.
type LogSink struct{}

// Name identifies the sink in logs
func (LogSink) Name() string { return "log" }

// Write does nothing
func (LogSink) Write(context.Context, []domain.Snapshot) error { return nil }
