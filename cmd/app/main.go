package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/QuestForge_Go/internal/bootstrap"
	"github.com/osse101/QuestForge_Go/internal/config"
	"github.com/osse101/QuestForge_Go/internal/eventlog"
	"github.com/osse101/QuestForge_Go/internal/game"
	"github.com/osse101/QuestForge_Go/internal/handler"
	"github.com/osse101/QuestForge_Go/internal/logger"
	"github.com/osse101/QuestForge_Go/internal/scheduler"
	"github.com/osse101/QuestForge_Go/internal/server"
	"github.com/osse101/QuestForge_Go/internal/sse"
	"github.com/osse101/QuestForge_Go/internal/telemetry"
	"github.com/osse101/QuestForge_Go/internal/utils"
	"github.com/osse101/QuestForge_Go/internal/worker"
)

const (
	outboxDrainInterval    = 5 * time.Minute
	journalCleanupInterval = 24 * time.Hour
	shutdownTimeout        = 15 * time.Second
)

// @title QuestForge API
// @version 1.0
// @description Gamified real-world task tracking: characters, partner-verified tasks, missions and dungeon runs.
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	if err := run(); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, logger.DefaultServiceName, cfg.Version, cfg.OTLPEndpoint)
	if err != nil {
		slog.Warn("Tracing disabled", "error", err)
	}

	storage, err := bootstrap.InitializeStorage(ctx, cfg)
	if err != nil {
		return err
	}
	catalog := bootstrap.InitializeContent(ctx, cfg)

	eventBus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		storage.Close()
		return err
	}

	pool := worker.NewPool(cfg.SyncWorkers, cfg.SyncQueueSize)
	pool.Start()

	replicator, outbox, err := bootstrap.InitializeReplicator(ctx, cfg, storage, pool)
	if err != nil {
		pool.Stop()
		storage.Close()
		return err
	}

	seed := cfg.RNGSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	svc := game.NewService(game.Deps{
		Store:      storage.Store,
		Content:    catalog.Provider,
		RNG:        utils.NewLockedRNG(seed),
		Publisher:  publisher,
		Replicator: replicator,
		Location:   loc,
	})

	journal := eventlog.NewService(storage.Journal)
	stream := sse.NewHub()
	stream.Start()
	missionWorker := worker.NewMissionWorker(svc)
	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:      eventBus,
		Service:       svc,
		WorkerPool:    pool,
		MissionWorker: missionWorker,
		Journal:       journal,
		Stream:        stream,
		Config:        cfg,
	}); err != nil {
		return err
	}
	missionWorker.Start(ctx)

	dailyReset := worker.NewDailyResetWorker(svc, loc)
	dailyReset.Start()

	sched := scheduler.New(pool)
	sched.Every("escrow_sweep", cfg.EscrowSweepInterval, svc.SweepEscrow)
	sched.Every("streak_check", cfg.StreakCheckInterval, svc.CheckStreaks)
	sched.Every("journal_cleanup", journalCleanupInterval, eventlog.Pruner(journal, cfg.EventRetention))

	opts := server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		Journal:        journal,
		Stream:         stream,
	}
	if storage.Pool != nil {
		opts.DB = storage.Pool
	}
	if outbox != nil {
		opts.Drainer = replicator
		sched.Every("outbox_drain", outboxDrainInterval, replicator.Drain)
	}
	if catalog.Cache != nil {
		opts.Invalidator = catalog.Cache
	}

	handler.InitValidator()
	srv := server.NewServer(opts, svc, catalog.Provider)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err = <-serverErr:
		slog.Error("Server failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Stream:             stream,
		Server:             srv,
		Scheduler:          sched,
		MissionWorker:      missionWorker,
		DailyResetWorker:   dailyReset,
		ResilientPublisher: publisher,
		WorkerPool:         pool,
		Outbox:             outbox,
		Storage:            storage,
		Telemetry:          shutdownTracing,
	})
	return err
}
