package leveling

import (
	"fmt"
	"math"

	"github.com/osse101/QuestForge_Go/internal/domain"
)

// ExpForLevel returns the EXP needed to advance into level from level-1.
// Level 1 and below cost nothing.
func ExpForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	// n*sqrt(n) instead of Pow(n, 1.5) keeps perfect squares exact
	n := float64(level - 1)
	return int(math.Floor(BaseEXP * n * math.Sqrt(n)))
}

// TotalExpToLevel returns the cumulative EXP from level 1 to reach level
func TotalExpToLevel(level int) int {
	total := 0
	for i := 1; i <= level; i++ {
		total += ExpForLevel(i)
	}
	return total
}

// LevelScaling is the first multiplier stage of task rewards
func LevelScaling(level int) float64 {
	if level < 1 {
		level = 1
	}
	f := 1 + LevelScalingPerLevel*float64(level-1)
	return math.Min(f, LevelScalingCap)
}

// ExpToNext returns how much more EXP the character needs for the next level
func ExpToNext(c *domain.PlayerCharacter) int {
	if c.Level >= domain.MaxLevel {
		return 0
	}
	return ExpForLevel(c.Level+1) - c.CurrentEXP
}

// LevelUpReport summarizes what one EXP grant did to the character
type LevelUpReport struct {
	OldLevel   int `json:"old_level"`
	NewLevel   int `json:"new_level"`
	StatPoints int `json:"stat_points"`
	Gold       int `json:"gold"`
	Materials  int `json:"materials"`
	Gems       int `json:"gems"`
}

// LevelsGained returns how many thresholds were crossed
func (r LevelUpReport) LevelsGained() int {
	return r.NewLevel - r.OldLevel
}

// LeveledUp reports whether at least one threshold was crossed
func (r LevelUpReport) LeveledUp() bool {
	return r.NewLevel > r.OldLevel
}

// ApplyEXP credits EXP and resolves every level-up it pays for in one call.
// CurrentEXP always ends below the next threshold.
func ApplyEXP(c *domain.PlayerCharacter, amount int) LevelUpReport {
	if c.Level < 1 {
		c.Level = 1
	}
	report := LevelUpReport{OldLevel: c.Level, NewLevel: c.Level}
	if amount > 0 {
		c.CurrentEXP += amount
		c.Daily.ExpEarned += amount
	}

	for c.Level < domain.MaxLevel {
		next := ExpForLevel(c.Level + 1)
		if c.CurrentEXP < next {
			break
		}
		c.CurrentEXP -= next
		c.Level++
		grantLevelRewards(c, &report)
	}

	if c.Level >= domain.MaxLevel {
		ceiling := ExpForLevel(domain.MaxLevel+1) - 1
		if c.CurrentEXP > ceiling {
			c.CurrentEXP = ceiling
		}
	}

	report.NewLevel = c.Level
	return report
}

func grantLevelRewards(c *domain.PlayerCharacter, report *LevelUpReport) {
	c.UnspentStatPoints += StatPointsPerLevel
	report.StatPoints += StatPointsPerLevel

	if c.Level%ChestEveryLevels == 0 {
		gold := ChestGoldPerLevel * c.Level
		c.AddGold(gold)
		c.Inventory.Materials += ChestMaterials
		report.Gold += gold
		report.Materials += ChestMaterials
	}
	if c.Level%GemEveryLevels == 0 {
		c.Gems += GemsPerMilestone
		report.Gems += GemsPerMilestone
	}
}

// SpendStatPoint moves one unspent point into stat
func SpendStatPoint(c *domain.PlayerCharacter, stat domain.StatType) error {
	if stat == domain.StatUnknown {
		return fmt.Errorf("%w: stat required", domain.ErrInvalidInput)
	}
	if c.UnspentStatPoints <= 0 {
		return domain.ErrNoStatPoints
	}
	c.UnspentStatPoints--
	c.Stats.Add(stat, 1)
	return nil
}
