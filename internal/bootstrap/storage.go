package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/QuestForge_Go/internal/config"
	"github.com/osse101/QuestForge_Go/internal/database"
	"github.com/osse101/QuestForge_Go/internal/database/postgres"
	"github.com/osse101/QuestForge_Go/internal/eventlog"
	"github.com/osse101/QuestForge_Go/internal/repository"
	"github.com/osse101/QuestForge_Go/internal/repository/memory"
)

// Storage is the selected persistence backend. Pool and Snapshots are nil
// for the in-memory store.
type Storage struct {
	Store     repository.Store
	Journal   eventlog.Repository
	Pool      *pgxpool.Pool
	Snapshots *postgres.SnapshotSink
}

// InitializeStorage opens the backend named by STORAGE. Postgres is migrated
// before use.
func InitializeStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	if cfg.Storage != config.StoragePostgres {
		slog.Info(LogMsgStorageInitialized, "backend", config.StorageMemory)
		return &Storage{Store: memory.NewStore(), Journal: eventlog.NewMemoryRepository()}, nil
	}

	pool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, DBMaxConnIdleTime, DBMaxConnLifetime)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDatabase, err)
	}
	if err := database.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	slog.Info(LogMsgStorageInitialized, "backend", config.StoragePostgres, "max_conns", cfg.DBMaxConns)
	return &Storage{
		Store:     postgres.NewStore(pool),
		Journal:   postgres.NewEventLogRepository(pool),
		Pool:      pool,
		Snapshots: postgres.NewSnapshotSink(pool),
	}, nil
}

// Close releases the database pool, if any
func (s *Storage) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
}
