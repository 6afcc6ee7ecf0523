package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/osse101/QuestForge_Go/internal/domain"
)

// Task defines persistence for tasks and routine bundles
type Task interface {
	// GetTask returns domain.ErrTaskNotFound when absent
	GetTask(ctx context.Context, id uuid.UUID) (*domain.GameTask, error)
	FindTasks(ctx context.Context, q domain.TaskQuery) ([]*domain.GameTask, error)
	UpsertTask(ctx context.Context, t *domain.GameTask) error
	DeleteTask(ctx context.Context, id uuid.UUID) error

	// GetBundle returns domain.ErrBundleNotFound when absent
	GetBundle(ctx context.Context, id uuid.UUID) (*domain.RoutineBundle, error)
	UpsertBundle(ctx context.Context, b *domain.RoutineBundle) error
}
