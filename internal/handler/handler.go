package handler

import (
	"context"

	"github.com/osse101/QuestForge_Go/internal/content"
	"github.com/osse101/QuestForge_Go/internal/game"
)

// OutboxDrainer retries sync snapshots parked while the remote sink was down
type OutboxDrainer interface {
	Drain(ctx context.Context) (int, error)
}

// ContentInvalidator drops cached content tables so the next read refetches them
type ContentInvalidator interface {
	Invalidate()
}

// GameHandlers exposes game.Service over HTTP
type GameHandlers struct {
	svc     game.Service
	content content.Provider
}

// NewGameHandlers creates handlers for the game routes
func NewGameHandlers(svc game.Service, provider content.Provider) *GameHandlers {
	return &GameHandlers{svc: svc, content: provider}
}

// AdminHandlers serves the maintenance routes. Drainer and Invalidator may be nil.
type AdminHandlers struct {
	svc         game.Service
	drainer     OutboxDrainer
	invalidator ContentInvalidator
}

// NewAdminHandlers creates handlers for the admin routes
func NewAdminHandlers(svc game.Service, drainer OutboxDrainer, invalidator ContentInvalidator) *AdminHandlers {
	return &AdminHandlers{svc: svc, drainer: drainer, invalidator: invalidator}
}
