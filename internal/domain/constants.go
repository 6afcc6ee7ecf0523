package domain

import "time"

// Character limits
const (
	// MaxLevel is the level cap; EXP stops accumulating one short of the next threshold
	MaxLevel = 100

	// MaxPartySize is the largest party a dungeon run accepts
	MaxPartySize = 4

	// WisdomBuffStatBonus is the flat wisdom granted while the meditation buff is active
	WisdomBuffStatBonus = 5
)

// Buff durations
const (
	WisdomBuffDuration = 2 * time.Hour
	RegenBuffDuration  = 4 * time.Hour
)

// Escrow policy
const (
	// EscrowAutoConfirmAfter is how long a partner has to confirm before the
	// completion is accepted on their behalf
	EscrowAutoConfirmAfter = 24 * time.Hour
)

// BuffKind names a timed buff bought with one consumable
type BuffKind string

const (
	BuffMeditation BuffKind = "meditation"
	BuffRegen      BuffKind = "regen"
)
