package dungeon

import "github.com/osse101/QuestForge_Go/internal/domain"

// Room selection
const (
	BonusRoomChance = 0.30
)

// Party power
const (
	AffinityMultiplier = 1.25
	SupportMultiplier  = 1.10
)

// Success chance
const (
	MaxRoomChance       = 0.95
	PartySizeDifficulty = 0.5
	MaxDeficitPenalty   = 0.40
)

// Damage and HP
const (
	MinRoomDamage        = 5.0
	TankMitigation       = 0.30
	SupportMitigation    = 0.10
	MaxMitigation        = 0.75
	BaseMemberHP         = 100
	HPPerDefense         = 5
	HPPerLevel           = 2
	RegenHPBonus         = 0.10
	FailureConsolationXP = 5
)

// Room rewards
const (
	BossRewardMultiplier = 2.0
	RoomLootChance       = 0.15
	BonusRoomLootChance  = 0.50
	CardDropChance       = 0.05
)

// Run scoring
const (
	ScoreClearedWeight   = 0.5
	ScoreHPWeight        = 0.3
	ScoreReadinessWeight = 0.2
)

// Secret discovery
const (
	SecretBaseChance       = 0.03
	SecretChancePerLuck    = 0.002
	SecretChanceCap        = 0.15
	SecretGoldPerTier      = 100
	SecretMaterialsPerTier = 3
)

// ApproachProfile scales success, risk and reward for a tactic
type ApproachProfile struct {
	Success     float64
	Risk        float64
	RewardBonus float64
}

var approaches = map[domain.Approach]ApproachProfile{
	domain.ApproachNone:       {Success: 1.0, Risk: 1.0},
	domain.ApproachCautious:   {Success: 1.15, Risk: 0.6},
	domain.ApproachAggressive: {Success: 0.85, Risk: 1.5, RewardBonus: 0.5 * (1.5 - 1)},
}

// ProfileFor returns the modifiers for an approach; unknown approaches play as none
func ProfileFor(a domain.Approach) ApproachProfile {
	if p, ok := approaches[a]; ok {
		return p
	}
	return approaches[domain.ApproachNone]
}

// Tier tables, indexed by tier-1
var (
	tierFloors      = []float64{0.25, 0.15, 0.10, 0.05, 0.02}
	tierDamageMults = []float64{1.0, 1.25, 1.5, 2.0, 2.5}
)

func tierIndex(tier int) int {
	if tier < 1 {
		return 0
	}
	if tier > len(tierFloors) {
		return len(tierFloors) - 1
	}
	return tier - 1
}

// TierFloor is the lowest success chance a room of this tier can have
func TierFloor(tier int) float64 {
	return tierFloors[tierIndex(tier)]
}

// TierDamageMultiplier scales failure damage by tier
func TierDamageMultiplier(tier int) float64 {
	return tierDamageMults[tierIndex(tier)]
}

type gradeBand struct {
	min   float64
	grade domain.Grade
	mult  float64
}

var gradeBands = []gradeBand{
	{0.90, domain.GradeS, 1.50},
	{0.80, domain.GradeA, 1.25},
	{0.65, domain.GradeB, 1.00},
	{0.50, domain.GradeC, 0.85},
	{0.35, domain.GradeD, 0.70},
}

// Log messages
const (
	LogMsgRunStarted  = "Dungeon run started"
	LogMsgRunResolved = "Dungeon run resolved"
)
