package leveling

import (
	"time"

	"github.com/osse101/QuestForge_Go/internal/domain"
)

// RollDaily resets the per-day counters when now falls on a new local day
func RollDaily(c *domain.PlayerCharacter, now time.Time) bool {
	today := domain.DayKey(now)
	if c.Daily.Day == today {
		return false
	}
	c.Daily = domain.DailyCounters{Day: today}
	return true
}

// RecordActivity advances the daily streak. Activity on consecutive days extends
// it, a missed day restarts it at 1, repeated activity on one day is a no-op.
func RecordActivity(c *domain.PlayerCharacter, now time.Time) {
	today := domain.DayKey(now)
	if c.LastActiveDay == today {
		return
	}
	yesterday := domain.DayKey(now.AddDate(0, 0, -1))
	if c.LastActiveDay == yesterday {
		c.CurrentStreak++
	} else {
		c.CurrentStreak = 1
	}
	if c.CurrentStreak > c.LongestStreak {
		c.LongestStreak = c.CurrentStreak
	}
	c.LastActiveDay = today
}

// StreakAtRisk reports whether the streak ends unless something is completed today
func StreakAtRisk(c *domain.PlayerCharacter, now time.Time) bool {
	if c.CurrentStreak == 0 {
		return false
	}
	return c.LastActiveDay == domain.DayKey(now.AddDate(0, 0, -1))
}
