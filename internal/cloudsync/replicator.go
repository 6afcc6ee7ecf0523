package cloudsync

import (
	"context"

	"github.com/osse101/QuestForge_Go/internal/domain"
	"github.com/osse101/QuestForge_Go/internal/logger"
	"github.com/osse101/QuestForge_Go/internal/metrics"
	"github.com/osse101/QuestForge_Go/internal/worker"
)

// Replicator ships snapshots to the remote sink on the worker pool.
// Batches the remote rejects are parked in the outbox and retried by Drain.
type Replicator struct {
	remote Sink
	outbox *Outbox
	pool   *worker.Pool
}

// NewReplicator creates a replicator. outbox and pool may be nil: without an
// outbox failed batches are dropped, without a pool writes happen inline.
func NewReplicator(remote Sink, outbox *Outbox, pool *worker.Pool) *Replicator {
	if remote == nil {
		remote = LogSink{}
	}
	return &Replicator{remote: remote, outbox: outbox, pool: pool}
}

// Replicate hands snapshots off for delivery and returns immediately
func (r *Replicator) Replicate(ctx context.Context, snaps ...domain.Snapshot) {
	if len(snaps) == 0 {
		return
	}
	batch := append([]domain.Snapshot(nil), snaps...)
	job := worker.JobFunc(func(ctx context.Context) error {
		r.deliver(ctx, batch)
		return nil
	})
	if r.pool == nil {
		_ = job.Process(ctx)
		return
	}
	if !r.pool.TryEnqueue(job) {
		logger.FromContext(ctx).Warn(LogMsgReplicationDropped, "count", len(batch))
		metrics.RecordCollaboratorFailure(CollaboratorName)
		r.park(ctx, batch)
	}
}

func (r *Replicator) deliver(ctx context.Context, batch []domain.Snapshot) {
	log := logger.FromContext(ctx)
	if err := r.remote.Write(ctx, batch); err != nil {
		log.Warn(LogMsgReplicationFailed, "sink", r.remote.Name(), "count", len(batch), "error", err)
		metrics.RecordCollaboratorFailure(CollaboratorName)
		r.park(ctx, batch)
		return
	}
	log.Debug(LogMsgSnapshotsReplicated, "sink", r.remote.Name(), "count", len(batch))
}

func (r *Replicator) park(ctx context.Context, batch []domain.Snapshot) {
	if r.outbox == nil {
		return
	}
	if err := r.outbox.Write(ctx, batch); err != nil {
		logger.FromContext(ctx).Error(LogMsgOutboxWriteFailed, "count", len(batch), "error", err)
	}
}

// Drain forwards parked snapshots to the remote sink, oldest first.
// It returns how many entries were delivered.
func (r *Replicator) Drain(ctx context.Context) (int, error) {
	if r.outbox == nil {
		return 0, nil
	}
	entries, err := r.outbox.Pending(ctx, DefaultDrainBatch)
	if err != nil || len(entries) == 0 {
		return 0, err
	}

	snaps := make([]domain.Snapshot, len(entries))
	ids := make([]int64, len(entries))
	for i, e := range entries {
		snaps[i] = e.Snapshot
		ids[i] = e.ID
	}

	if err := r.remote.Write(ctx, snaps); err != nil {
		logger.FromContext(ctx).Warn(LogMsgOutboxDrainFailed, "sink", r.remote.Name(), "error", err)
		metrics.RecordCollaboratorFailure(CollaboratorName)
		return 0, r.outbox.MarkFailed(ctx, ids, err)
	}
	if err := r.outbox.Delete(ctx, ids); err != nil {
		return 0, err
	}
	logger.FromContext(ctx).Info(LogMsgOutboxDrained, "count", len(ids))
	return len(ids), nil
}
