package reward

// Stage names the multiplier steps in application order
type Stage string

const (
	StageLevelScaling   Stage = "level_scaling"
	StageVerification   Stage = "verification"
	StageClassAffinity  Stage = "class_affinity"
	StageBuffs          Stage = "buffs"
	StageStreak         Stage = "streak"
	StagePartner        Stage = "partner"
	StageBond           Stage = "bond"
	StageResearchCat    Stage = "research_category"
	StageResearchGlobal Stage = "research_global"
)

// Verification tier
const (
	VerificationBase      = 1.0
	PhotoBonus            = 0.10
	LocationBonus         = 0.10
	PhotoAndLocationBonus = 0.25
	DeviceHealthBonus     = 0.05
	PartnerConfirmedBonus = 0.10
	AnomalyPenaltyFactor  = 0.75
	VerificationFloor     = 0.25
)

// Multiplier chain
const (
	ClassAffinityBonus = 0.20
	MeditationBuff     = 0.05
	StreakStep         = 0.05
	StreakCap          = 0.50
	PartnerBonus       = 0.15
	PartnerCharisma    = 1
)

// Independent rolls
const (
	StatRollChance  = 0.10
	LuckRollChance  = 0.05
	CoopDutyShare   = 0.50
	BundleHabitRate = 0.5
)

// Stat gain sources
const (
	SourceStatRoll = "stat_roll"
	SourceLuckRoll = "luck_roll"
	SourcePartner  = "partner"
)

// Log messages
const (
	LogMsgRewardComputed = "Task reward computed"
	LogMsgRewardApplied  = "Task reward applied"
)
