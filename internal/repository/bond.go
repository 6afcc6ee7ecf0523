package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/osse101/QuestForge_Go/internal/domain"
)

// Bond defines persistence for bonds
type Bond interface {
	// GetBond returns domain.ErrBondNotFound when absent
	GetBond(ctx context.Context, id uuid.UUID) (*domain.Bond, error)
	FindBonds(ctx context.Context, q domain.BondQuery) ([]*domain.Bond, error)
	UpsertBond(ctx context.Context, b *domain.Bond) error
}
