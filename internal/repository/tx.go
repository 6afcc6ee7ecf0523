package repository

import (
	"context"
)

// Tx is a unit of work over every aggregate. Nothing written through it is
// visible to other readers until Commit.
type Tx interface {
	Character
	Task
	Bond
	DungeonRun
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Store is the persistence collaborator used by the game coordinator
type Store interface {
	Character
	Task
	Bond
	DungeonRun
	BeginTx(ctx context.Context) (Tx, error)
}
