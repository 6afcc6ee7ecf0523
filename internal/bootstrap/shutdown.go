package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/QuestForge_Go/internal/cloudsync"
	"github.com/osse101/QuestForge_Go/internal/event"
	"github.com/osse101/QuestForge_Go/internal/scheduler"
	"github.com/osse101/QuestForge_Go/internal/server"
	"github.com/osse101/QuestForge_Go/internal/sse"
	"github.com/osse101/QuestForge_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Nil members are skipped.
type ShutdownComponents struct {
	Stream             *sse.Hub
	Server             *server.Server
	Scheduler          *scheduler.Scheduler
	MissionWorker      *worker.MissionWorker
	DailyResetWorker   *worker.DailyResetWorker
	ResilientPublisher *event.ResilientPublisher
	WorkerPool         *worker.Pool
	Outbox             *cloudsync.Outbox
	Storage            *Storage
	Telemetry          func(context.Context) error
}

// GracefulShutdown stops components in dependency order:
// 1. Event streams, then the HTTP server (open streams would block Shutdown)
// 2. Scheduler and timer workers (no new background jobs)
// 3. Event publisher (flush pending events)
// 4. Worker pool (finish queued notifications and replication)
// 5. Outbox, database and tracing
//
// Errors are logged and do not stop the sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if c.Stream != nil {
		c.Stream.Stop()
	}
	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}
	if c.MissionWorker != nil {
		if err := c.MissionWorker.Shutdown(ctx); err != nil {
			slog.Error(LogMsgMissionWorkerShutdownFailed, "error", err)
		}
	}
	if c.DailyResetWorker != nil {
		if err := c.DailyResetWorker.Shutdown(ctx); err != nil {
			slog.Error(LogMsgDailyResetShutdownFailed, "error", err)
		}
	}

	if c.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := c.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if c.WorkerPool != nil {
		c.WorkerPool.Stop()
	}

	if c.Outbox != nil {
		if err := c.Outbox.Close(); err != nil {
			slog.Error(LogMsgOutboxCloseFailed, "error", err)
		}
	}
	if c.Storage != nil {
		c.Storage.Close()
	}
	if c.Telemetry != nil {
		if err := c.Telemetry(ctx); err != nil {
			slog.Error(LogMsgTelemetryShutdownFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
