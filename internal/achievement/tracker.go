package achievement

import (
	"time"

	"github.com/osse101/QuestForge_Go/internal/domain"
)

// Tracker derives achievement progress from character state
type Tracker struct {
	defs []domain.AchievementDefinition
}

// NewTracker creates a tracker over a validated catalog
func NewTracker(defs []domain.AchievementDefinition) *Tracker {
	return &Tracker{defs: append([]domain.AchievementDefinition(nil), defs...)}
}

// Definitions returns the catalog
func (t *Tracker) Definitions() []domain.AchievementDefinition {
	return t.defs
}

// Ensure adds a locked record for every catalog entry the character lacks
func (t *Tracker) Ensure(c *domain.PlayerCharacter) {
	have := make(map[string]bool, len(c.Achievements))
	for _, a := range c.Achievements {
		have[a.ID] = true
	}
	for _, d := range t.defs {
		if have[d.ID] {
			continue
		}
		c.Achievements = append(c.Achievements, domain.Achievement{
			ID:          d.ID,
			Title:       d.Title,
			Key:         d.Key,
			TargetValue: d.Target,
		})
	}
}

// Check re-derives every locked achievement and returns the ones that unlocked
// on this call. Unlocked records are never touched and values never regress.
func (t *Tracker) Check(c *domain.PlayerCharacter, now time.Time) []domain.Achievement {
	t.Ensure(c)

	var unlocked []domain.Achievement
	for i := range c.Achievements {
		a := &c.Achievements[i]
		if a.Unlocked {
			continue
		}
		v, ok := Value(c, a.Key)
		if !ok {
			continue
		}
		if v > a.CurrentValue {
			a.CurrentValue = v
		}
		if a.CurrentValue >= a.TargetValue {
			at := now
			a.Unlocked = true
			a.UnlockedAt = &at
			unlocked = append(unlocked, *a)
		}
	}
	return unlocked
}

// Value returns the tracked quantity for key. The second result is false for
// keys outside the closed set.
func Value(c *domain.PlayerCharacter, key domain.AchievementKey) (int, bool) {
	switch key {
	case domain.AchievementTasksCompleted:
		return c.TotalTasksCompleted, true
	case domain.AchievementLongestStreak:
		return c.LongestStreak, true
	case domain.AchievementLevel:
		return c.Level, true
	case domain.AchievementMissionsCompleted:
		return c.MissionsCompleted, true
	case domain.AchievementDungeonsCleared:
		return c.DungeonsCleared, true
	case domain.AchievementLifetimeGold:
		return c.LifetimeGold, true
	case domain.AchievementRareItemsFound,
		domain.AchievementPartnerConfirmations,
		domain.AchievementSecretsDiscovered:
		return c.Counters[key], true
	case domain.AchievementUnknown:
		return 0, false
	default:
		return 0, false
	}
}
