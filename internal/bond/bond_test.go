package bond

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/QuestForge_Go/internal/domain"
)

func TestLevelScale(t *testing.T) {
	assert.Equal(t, 1.0, LevelScale(1))
	assert.Equal(t, 1.0, LevelScale(4))
	assert.Equal(t, 2.0, LevelScale(5))
	assert.Equal(t, 3.0, LevelScale(10))
	assert.Equal(t, 1.0, LevelScale(-2))
}

func TestStreakTierBonus(t *testing.T) {
	tests := []struct {
		streak   int
		expected float64
	}{
		{0, 0},
		{6, 0},
		{7, 0.05},
		{13, 0.05},
		{14, 0.10},
		{30, 0.15},
		{59, 0.15},
		{60, 0.20},
		{400, 0.20},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.expected, StreakTierBonus(tt.streak), 1e-9, "streak %d", tt.streak)
	}
}

func TestBonuses(t *testing.T) {
	t.Run("nil bond", func(t *testing.T) {
		exp, gold := Bonuses(nil)
		assert.Zero(t, exp)
		assert.Zero(t, gold)
	})

	t.Run("perks tallied separately", func(t *testing.T) {
		b := &domain.Bond{Level: 3, Perks: []domain.Perk{domain.PerkSharedWisdom, domain.PerkGoldenTouch}}
		exp, gold := Bonuses(b)
		assert.InDelta(t, 0.05, exp, 1e-9)
		assert.InDelta(t, 0.05, gold, 1e-9)
	})

	t.Run("streak tier added", func(t *testing.T) {
		b := &domain.Bond{Level: 5, Perks: []domain.Perk{domain.PerkSharedWisdom}, PartyStreak: 14}
		exp, gold := Bonuses(b)
		assert.InDelta(t, 0.05*2+0.10, exp, 1e-9)
		assert.InDelta(t, 0.10, gold, 1e-9)
	})

	t.Run("legendary amplifies combined value", func(t *testing.T) {
		b := &domain.Bond{
			Level:       10,
			Perks:       []domain.Perk{domain.PerkSharedWisdom, domain.PerkLegendaryBond},
			PartyStreak: 7,
		}
		exp, gold := Bonuses(b)
		assert.InDelta(t, (0.05*3+0.04*3+0.05)*1.5, exp, 1e-9)
		assert.InDelta(t, (0.04*3+0.05)*1.5, gold, 1e-9)
	})
}

func TestAddEXP_UnlocksPerks(t *testing.T) {
	b := New(uuid.New(), uuid.New())
	require.Equal(t, 1, b.Level)

	levels, perks := AddEXP(b, 100)
	assert.Equal(t, 1, levels)
	assert.Equal(t, []domain.Perk{domain.PerkSharedWisdom}, perks)
	assert.Equal(t, 0, b.EXP)

	// 2->3 costs 200, 3->4 costs 300
	levels, perks = AddEXP(b, 550)
	assert.Equal(t, 2, levels)
	assert.Equal(t, []domain.Perk{domain.PerkGoldenTouch}, perks)
	assert.Equal(t, 4, b.Level)
	assert.Equal(t, 50, b.EXP)
	assert.True(t, b.HasPerk(domain.PerkSharedWisdom))
	assert.True(t, b.HasPerk(domain.PerkGoldenTouch))
}

func TestAddEXP_IgnoresNonPositive(t *testing.T) {
	b := New(uuid.New())
	levels, perks := AddEXP(b, 0)
	assert.Zero(t, levels)
	assert.Nil(t, perks)

	levels, _ = AddEXP(nil, 100)
	assert.Zero(t, levels)
}

func TestRecordSharedActivity(t *testing.T) {
	b := New(uuid.New(), uuid.New())
	d := func(day int) time.Time { return time.Date(2025, time.May, day, 12, 0, 0, 0, time.UTC) }

	RecordSharedActivity(b, d(1))
	RecordSharedActivity(b, d(1))
	RecordSharedActivity(b, d(2))
	assert.Equal(t, 2, b.PartyStreak)

	RecordSharedActivity(b, d(9))
	assert.Equal(t, 1, b.PartyStreak)
}

func TestMitigation(t *testing.T) {
	assert.Zero(t, Mitigation(nil))
	b := &domain.Bond{Perks: []domain.Perk{domain.PerkGuardianOath}}
	assert.InDelta(t, GuardianOathMitigation, Mitigation(b), 1e-9)
}
