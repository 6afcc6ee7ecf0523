package bond

import (
	"time"

	"github.com/google/uuid"

	"github.com/osse101/QuestForge_Go/internal/domain"
)

// PerkBonus is the base reward contribution of a perk before level scaling.
// Values are fractions (0.05 = 5%).
type PerkBonus struct {
	EXP  float64
	Gold float64
}

var perkBonuses = map[domain.Perk]PerkBonus{
	domain.PerkSharedWisdom:   {EXP: 0.05},
	domain.PerkGoldenTouch:    {Gold: 0.05},
	domain.PerkKindredSpirits: {EXP: 0.03, Gold: 0.03},
	domain.PerkLegendaryBond:  {EXP: 0.04, Gold: 0.04},
}

var perkUnlocks = []struct {
	level int
	perk  domain.Perk
}{
	{2, domain.PerkSharedWisdom},
	{4, domain.PerkGoldenTouch},
	{6, domain.PerkKindredSpirits},
	{8, domain.PerkGuardianOath},
	{10, domain.PerkLegendaryBond},
}

var streakTiers = []struct {
	days  int
	bonus float64
}{
	{60, 0.20},
	{30, 0.15},
	{14, 0.10},
	{7, 0.05},
}

// New creates a level 1 bond between the given characters
func New(memberIDs ...uuid.UUID) *domain.Bond {
	return &domain.Bond{
		ID:        uuid.New(),
		MemberIDs: append([]uuid.UUID(nil), memberIDs...),
		Level:     1,
		Perks:     make([]domain.Perk, 0),
		CreatedAt: time.Now(),
	}
}

// LevelScale is the perk scaling factor bondLevel/5+1, stepping every 5 levels
func LevelScale(level int) float64 {
	if level < 0 {
		level = 0
	}
	return float64(level/5 + 1)
}

// StreakTierBonus returns the passive bonus for the party's shared streak
func StreakTierBonus(partyStreak int) float64 {
	for _, tier := range streakTiers {
		if partyStreak >= tier.days {
			return tier.bonus
		}
	}
	return 0
}

// Bonuses returns the combined passive EXP and Gold fractions of a bond.
// A nil bond contributes nothing.
func Bonuses(b *domain.Bond) (exp, gold float64) {
	if b == nil {
		return 0, 0
	}
	scale := LevelScale(b.Level)
	for _, p := range b.Perks {
		pb := perkBonuses[p]
		exp += pb.EXP * scale
		gold += pb.Gold * scale
	}
	streak := StreakTierBonus(b.PartyStreak)
	exp += streak
	gold += streak

	if b.HasPerk(domain.PerkLegendaryBond) {
		exp *= LegendaryAmplifier
		gold *= LegendaryAmplifier
	}
	return exp, gold
}

// ExpForNextLevel is the bond EXP needed to advance from level
func ExpForNextLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return EXPPerLevel * level
}

// AddEXP credits bond EXP, resolves level-ups and returns any perks unlocked
func AddEXP(b *domain.Bond, amount int) (levelsGained int, unlocked []domain.Perk) {
	if b == nil || amount <= 0 {
		return 0, nil
	}
	if b.Level < 1 {
		b.Level = 1
	}
	b.EXP += amount
	for b.Level < MaxLevel {
		need := ExpForNextLevel(b.Level)
		if b.EXP < need {
			break
		}
		b.EXP -= need
		b.Level++
		levelsGained++
		for _, u := range perkUnlocks {
			if u.level == b.Level && !b.HasPerk(u.perk) {
				b.Perks = append(b.Perks, u.perk)
				unlocked = append(unlocked, u.perk)
			}
		}
	}
	return levelsGained, unlocked
}

// RecordSharedActivity advances the party streak once per day
func RecordSharedActivity(b *domain.Bond, now time.Time) {
	if b == nil {
		return
	}
	today := domain.DayKey(now)
	if b.LastSharedDay == today {
		return
	}
	if b.LastSharedDay == domain.DayKey(now.AddDate(0, 0, -1)) {
		b.PartyStreak++
	} else {
		b.PartyStreak = 1
	}
	b.LastSharedDay = today
}

// Mitigation is the extra dungeon damage mitigation granted by the bond
func Mitigation(b *domain.Bond) float64 {
	if b.HasPerk(domain.PerkGuardianOath) {
		return GuardianOathMitigation
	}
	return 0
}
