package leveling

// EXP curve constants
const (
	// BaseEXP is the coefficient of the curve: EXP(level) = BaseEXP * (level-1)^1.5
	BaseEXP = 100.0
)

// Level-up reward bundle
const (
	StatPointsPerLevel = 3

	// ChestEveryLevels grants a gold and materials chest on multiples of this level
	ChestEveryLevels  = 5
	ChestGoldPerLevel = 50
	ChestMaterials    = 2
	GemEveryLevels    = 10
	GemsPerMilestone  = 1
)

// Level scaling of task rewards
const (
	LevelScalingPerLevel = 0.05
	LevelScalingCap      = 5.0
)
