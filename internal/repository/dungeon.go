package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/osse101/QuestForge_Go/internal/domain"
)

// DungeonRun defines persistence for dungeon runs
type DungeonRun interface {
	// GetRun returns domain.ErrRunNotFound when absent
	GetRun(ctx context.Context, id uuid.UUID) (*domain.DungeonRun, error)
	FindRuns(ctx context.Context, q domain.RunQuery) ([]*domain.DungeonRun, error)
	UpsertRun(ctx context.Context, r *domain.DungeonRun) error
}
