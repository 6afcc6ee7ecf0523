package dungeon

import (
	"math"
	"time"

	"github.com/osse101/QuestForge_Go/internal/bond"
	"github.com/osse101/QuestForge_Go/internal/domain"
	"github.com/osse101/QuestForge_Go/internal/utils"
)

// PartyPower sums each member's room stat, boosted for class affinity, then
// boosts the total when the party has a support member
func PartyPower(room domain.Room, party []*domain.PlayerCharacter, now time.Time) float64 {
	var power float64
	support := false
	for _, m := range party {
		v := float64(m.EffectiveStats(now).Get(room.PrimaryStat))
		if m.Class.Affinity() == room.Encounter {
			v *= AffinityMultiplier
		}
		power += v
		if m.Class.Role() == domain.RoleSupport {
			support = true
		}
	}
	if support {
		power *= SupportMultiplier
	}
	return power
}

// Readiness compares the party's best stats against the dungeon minimums.
// It returns the readiness ratio and the success penalty for the shortfall.
func Readiness(d *domain.Dungeon, party []*domain.PlayerCharacter, now time.Time) (readiness, penalty float64) {
	var deficit float64
	counted := 0
	for stat, minimum := range d.MinStats {
		if minimum <= 0 {
			continue
		}
		counted++
		best := 0
		for _, m := range party {
			best = max(best, m.EffectiveStats(now).Get(stat))
		}
		deficit += math.Max(0, float64(minimum-best)/float64(minimum))
	}
	if counted == 0 {
		return 1, 0
	}
	mean := deficit / float64(counted)
	mean = math.Min(mean, 1)
	return 1 - mean, MaxDeficitPenalty * mean
}

// AverageResearchBonus is the party's mean dungeon success research bonus
func AverageResearchBonus(party []*domain.PlayerCharacter) float64 {
	if len(party) == 0 {
		return 0
	}
	var sum float64
	for _, m := range party {
		sum += m.Research.DungeonSuccessBonus
	}
	return sum / float64(len(party))
}

// RoomChance is power*approach / (difficulty * (1 + 0.5*(size-1))) plus the
// research bonus minus the readiness penalty, clamped to [tier floor, 0.95]
func RoomChance(power, difficulty float64, partySize, tier int, approach ApproachProfile, research, penalty float64) float64 {
	if difficulty <= 0 {
		return MaxRoomChance
	}
	size := max(partySize, 1)
	chance := power * approach.Success / (difficulty * (1 + PartySizeDifficulty*float64(size-1)))
	chance += research - penalty
	return utils.Clamp(chance, TierFloor(tier), MaxRoomChance)
}

// Mitigation is the damage reduction from tanks, supports and the guardian oath
func Mitigation(party []*domain.PlayerCharacter, b *domain.Bond) float64 {
	var m float64
	for _, c := range party {
		switch c.Class.Role() {
		case domain.RoleTank:
			m += TankMitigation
		case domain.RoleSupport:
			m += SupportMitigation
		}
	}
	m += bond.Mitigation(b)
	return math.Min(m, MaxMitigation)
}

// RoomDamage is max(5, difficulty-power) * risk * tier multiplier, reduced by mitigation
func RoomDamage(difficulty, power float64, tier int, approach ApproachProfile, mitigation float64) int {
	raw := math.Max(MinRoomDamage, difficulty-power) * approach.Risk * TierDamageMultiplier(tier)
	return utils.RoundInt(raw * (1 - utils.Clamp(mitigation, 0, MaxMitigation)))
}

// PartyHP is the shared pool: 100 + 5*defense + 2*level per member, +10% with regen
func PartyHP(party []*domain.PlayerCharacter, now time.Time) int {
	total := 0
	for _, m := range party {
		hp := float64(BaseMemberHP + HPPerDefense*m.EffectiveStats(now).Defense + HPPerLevel*m.Level)
		if m.HasRegenBuff(now) {
			hp *= 1 + RegenHPBonus
		}
		total += utils.RoundInt(hp)
	}
	return total
}

// Score weights rooms cleared, HP left and readiness into [0,1]
func Score(cleared, total, hp, maxHP int, readiness float64) float64 {
	var clearedRatio, hpRatio float64
	if total > 0 {
		clearedRatio = float64(cleared) / float64(total)
	}
	if maxHP > 0 {
		hpRatio = float64(hp) / float64(maxHP)
	}
	return ScoreClearedWeight*clearedRatio + ScoreHPWeight*hpRatio + ScoreReadinessWeight*readiness
}

// GradeFor maps a score to a letter grade and loot multiplier
func GradeFor(score float64) (domain.Grade, float64) {
	for _, b := range gradeBands {
		if score >= b.min {
			return b.grade, b.mult
		}
	}
	return domain.GradeF, 0.5
}

// SecretChance is min(3% + 0.2% per average Luck, 15%)
func SecretChance(avgLuck float64) float64 {
	return math.Min(SecretBaseChance+SecretChancePerLuck*math.Max(avgLuck, 0), SecretChanceCap)
}

func averageLuck(party []*domain.PlayerCharacter, now time.Time) float64 {
	if len(party) == 0 {
		return 0
	}
	total := 0
	for _, m := range party {
		total += m.EffectiveStats(now).Luck
	}
	return float64(total) / float64(len(party))
}
