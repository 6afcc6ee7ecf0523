package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/QuestForge_Go/internal/cloudsync"
	"github.com/osse101/QuestForge_Go/internal/config"
	"github.com/osse101/QuestForge_Go/internal/worker"
)

// InitializeReplicator builds the snapshot replicator. Postgres storage
// replicates into its snapshot table; the in-memory store only logs. The
// outbox is opened when SYNC_OUTBOX_PATH is set and must be closed by the caller.
func InitializeReplicator(ctx context.Context, cfg *config.Config, storage *Storage, pool *worker.Pool) (*cloudsync.Replicator, *cloudsync.Outbox, error) {
	var sink cloudsync.Sink = cloudsync.LogSink{}
	if storage.Snapshots != nil {
		sink = storage.Snapshots
	}

	var outbox *cloudsync.Outbox
	if cfg.SyncOutboxPath != "" {
		ob, err := cloudsync.OpenOutbox(ctx, cfg.SyncOutboxPath)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenOutbox, err)
		}
		outbox = ob
	}

	slog.Info(LogMsgReplicatorInitialized,
		"sink", sink.Name(),
		"outbox", cfg.SyncOutboxPath != "",
		"workers", cfg.SyncWorkers)
	return cloudsync.NewReplicator(sink, outbox, pool), outbox, nil
}
