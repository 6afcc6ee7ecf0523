package loot

// Rarity shift tuning
const (
	MaxLuckShift   = 1.0
	LuckShiftScale = 25.0

	// TierShift is added per dungeon tier above 1
	TierShift            = 0.25
	DifficultyShift      = 0.5
	DifficultyShiftScale = 20.0
)
