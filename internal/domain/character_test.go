package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivateBuff(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("needs a consumable", func(t *testing.T) {
		c := NewCharacter("Aria", ClassMage)
		assert.ErrorIs(t, c.ActivateBuff(BuffMeditation, now), ErrNoConsumables)
		assert.Nil(t, c.WisdomBuffExpiresAt)
	})

	t.Run("unknown kind spends nothing", func(t *testing.T) {
		c := NewCharacter("Aria", ClassMage)
		c.Inventory.Consumables = 1
		assert.ErrorIs(t, c.ActivateBuff(BuffKind("haste"), now), ErrInvalidInput)
		assert.Equal(t, 1, c.Inventory.Consumables)
	})

	t.Run("meditation raises wisdom until expiry", func(t *testing.T) {
		c := NewCharacter("Aria", ClassMage)
		c.Inventory.Consumables = 1
		base := c.EffectiveStats(now).Wisdom

		require.NoError(t, c.ActivateBuff(BuffMeditation, now))
		assert.Equal(t, base+WisdomBuffStatBonus, c.EffectiveStats(now).Wisdom)
		assert.Equal(t, base, c.EffectiveStats(now.Add(WisdomBuffDuration)).Wisdom)
	})

	t.Run("active buff is extended", func(t *testing.T) {
		c := NewCharacter("Aria", ClassCleric)
		c.Inventory.Consumables = 2
		require.NoError(t, c.ActivateBuff(BuffRegen, now))
		require.NoError(t, c.ActivateBuff(BuffRegen, now.Add(time.Hour)))
		assert.Equal(t, now.Add(2*RegenBuffDuration), *c.RegenBuffExpiresAt)
		assert.True(t, c.HasRegenBuff(now.Add(RegenBuffDuration)))
	})

	t.Run("expired buff restarts from now", func(t *testing.T) {
		c := NewCharacter("Aria", ClassCleric)
		c.Inventory.Consumables = 2
		require.NoError(t, c.ActivateBuff(BuffRegen, now))
		later := now.Add(10 * time.Hour)
		require.NoError(t, c.ActivateBuff(BuffRegen, later))
		assert.Equal(t, later.Add(RegenBuffDuration), *c.RegenBuffExpiresAt)
	})
}

func TestSpendGoldAndMaterials(t *testing.T) {
	c := NewCharacter("Aria", ClassWarrior)
	c.AddGold(30)
	c.AddGold(-5)
	assert.Equal(t, 30, c.Gold)
	assert.Equal(t, 30, c.LifetimeGold)

	assert.ErrorIs(t, c.SpendGold(31), ErrInsufficientFunds)
	assert.Equal(t, 30, c.Gold)
	require.NoError(t, c.SpendGold(10))
	assert.Equal(t, 20, c.Gold)
	assert.Equal(t, 30, c.LifetimeGold)

	assert.ErrorIs(t, c.SpendMaterials(1), ErrInsufficientMaterials)
}
