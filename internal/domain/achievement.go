package domain

import (
	"fmt"
	"time"
)

// AchievementKey identifies what an achievement tracks. The set is closed:
// anything outside it parses to AchievementUnknown and is rejected at load time.
type AchievementKey string

const (
	AchievementUnknown AchievementKey = ""

	// Derived directly from character state
	AchievementTasksCompleted    AchievementKey = "tasks_completed"
	AchievementLongestStreak     AchievementKey = "longest_streak"
	AchievementLevel             AchievementKey = "level"
	AchievementMissionsCompleted AchievementKey = "missions_completed"
	AchievementDungeonsCleared   AchievementKey = "dungeons_cleared"
	AchievementLifetimeGold      AchievementKey = "lifetime_gold"

	// Backed by explicit counters
	AchievementRareItemsFound       AchievementKey = "rare_items_found"
	AchievementPartnerConfirmations AchievementKey = "partner_confirmations"
	AchievementSecretsDiscovered    AchievementKey = "secrets_discovered"
)

var achievementKeys = map[AchievementKey]bool{
	AchievementTasksCompleted:       true,
	AchievementLongestStreak:        true,
	AchievementLevel:                true,
	AchievementMissionsCompleted:    true,
	AchievementDungeonsCleared:      true,
	AchievementLifetimeGold:         true,
	AchievementRareItemsFound:       true,
	AchievementPartnerConfirmations: true,
	AchievementSecretsDiscovered:    true,
}

// ParseAchievementKey validates a tracking key read from config or storage
func ParseAchievementKey(s string) (AchievementKey, error) {
	k := AchievementKey(s)
	if !achievementKeys[k] {
		return AchievementUnknown, fmt.Errorf("%w: unsupported achievement key %q", ErrInvalidInput, s)
	}
	return k, nil
}

// Achievement is one progress record owned by a character
type Achievement struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Key          AchievementKey `json:"key"`
	CurrentValue int            `json:"current_value"`
	TargetValue  int            `json:"target_value"`
	Unlocked     bool           `json:"unlocked"`
	UnlockedAt   *time.Time     `json:"unlocked_at,omitempty"`
}

// Progress returns completion in [0,1]
func (a Achievement) Progress() float64 {
	if a.TargetValue <= 0 || a.Unlocked {
		return 1
	}
	p := float64(a.CurrentValue) / float64(a.TargetValue)
	if p > 1 {
		return 1
	}
	return p
}

// AchievementDefinition is a catalog entry instantiated into a character's records
type AchievementDefinition struct {
	ID     string         `json:"id" validate:"required"`
	Title  string         `json:"title" validate:"required"`
	Key    AchievementKey `json:"key" validate:"required"`
	Target int            `json:"target" validate:"gte=1"`
}
