package bond

const (
	// EXPPerLevel * level is the bond EXP needed to leave a level
	EXPPerLevel = 100
	MaxLevel    = 20

	// LegendaryAmplifier multiplies the combined bond bonus
	LegendaryAmplifier = 1.5

	GuardianOathMitigation = 0.10

	// Fixed bond EXP grants
	CoopDutyBondEXP     = 25
	CoopDungeonBondEXP  = 50
	ConfirmationBondEXP = 10
)
