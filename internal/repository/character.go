package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/osse101/QuestForge_Go/internal/domain"
)

// Character defines persistence for the character aggregate. Achievements,
// research bonuses and the active mission are stored with the character.
type Character interface {
	// GetCharacter returns domain.ErrCharacterNotFound when absent
	GetCharacter(ctx context.Context, id uuid.UUID) (*domain.PlayerCharacter, error)
	FindCharacters(ctx context.Context, q domain.CharacterQuery) ([]*domain.PlayerCharacter, error)
	UpsertCharacter(ctx context.Context, c *domain.PlayerCharacter) error
	DeleteCharacter(ctx context.Context, id uuid.UUID) error
}
