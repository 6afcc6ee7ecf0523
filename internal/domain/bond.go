package domain

import (
	"time"

	"github.com/google/uuid"
)

// Perk is an unlocked capability on a Bond
type Perk string

const (
	PerkSharedWisdom   Perk = "shared_wisdom"
	PerkGoldenTouch    Perk = "golden_touch"
	PerkKindredSpirits Perk = "kindred_spirits"
	PerkGuardianOath   Perk = "guardian_oath"
	PerkLegendaryBond  Perk = "legendary_bond"
)

// Bond is the cooperative relationship between party members
type Bond struct {
	ID            uuid.UUID   `json:"id"`
	MemberIDs     []uuid.UUID `json:"member_ids"`
	Level         int         `json:"level"`
	EXP           int         `json:"exp"`
	Perks         []Perk      `json:"perks"`
	PartyStreak   int         `json:"party_streak"`
	LastSharedDay string      `json:"last_shared_day,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
}

// HasPerk reports whether the perk is unlocked
func (b *Bond) HasPerk(p Perk) bool {
	if b == nil {
		return false
	}
	for _, have := range b.Perks {
		if have == p {
			return true
		}
	}
	return false
}

// HasMember reports whether the character belongs to the bond
func (b *Bond) HasMember(id uuid.UUID) bool {
	if b == nil {
		return false
	}
	for _, m := range b.MemberIDs {
		if m == id {
			return true
		}
	}
	return false
}
