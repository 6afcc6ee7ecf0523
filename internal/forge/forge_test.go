package forge

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/QuestForge_Go/internal/content"
	"github.com/osse101/QuestForge_Go/internal/domain"
	"github.com/osse101/QuestForge_Go/internal/testing/rngtest"
)

func newForge(rng *rngtest.Scripted) *Forge {
	return New(rng, content.NewStaticProvider(content.Defaults()))
}

func withItem(rarity domain.Rarity, level int) (*domain.PlayerCharacter, uuid.UUID) {
	c := domain.NewCharacter("tamsin", domain.ClassWarrior)
	item := domain.Equipment{
		ID:               uuid.New(),
		Name:             "Sturdy Blade of Strength",
		Slot:             domain.SlotWeapon,
		Rarity:           rarity,
		PrimaryStat:      domain.StatStrength,
		Bonus:            domain.Stats{Strength: 2},
		EnhancementLevel: level,
	}
	c.Inventory.Equipment = append(c.Inventory.Equipment, item)
	return c, item.ID
}

func TestEnhance_Success(t *testing.T) {
	c, id := withItem(domain.RarityUncommon, 0)
	c.Gold = 100
	c.Inventory.Materials = 5

	res, err := newForge(rngtest.New(0.5)).Enhance(context.Background(), c, id)
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, 1, res.Item.EnhancementLevel)
	assert.Equal(t, 50, res.GoldSpent)
	assert.Equal(t, 2, res.MaterialsSpent)
	assert.Equal(t, 50, c.Gold)
	assert.Equal(t, 3, c.Inventory.Materials)
	assert.Equal(t, 1, c.Inventory.Equipment[0].EnhancementLevel)
}

func TestEnhance_FailureStillCosts(t *testing.T) {
	c, id := withItem(domain.RarityUncommon, 3)
	c.Gold = 1000
	c.Inventory.Materials = 20

	// level 4 succeeds 76% of the time
	res, err := newForge(rngtest.New(0.8)).Enhance(context.Background(), c, id)
	require.NoError(t, err)

	assert.False(t, res.Success)
	assert.InDelta(t, 0.76, res.SuccessRate, 1e-9)
	assert.Equal(t, 3, c.Inventory.Equipment[0].EnhancementLevel)
	assert.Equal(t, 1000-800, c.Gold)
	assert.Equal(t, 20-8, c.Inventory.Materials)
}

func TestEnhance_Guards(t *testing.T) {
	tests := []struct {
		name      string
		level     int
		gold      int
		materials int
		unknown   bool
		wantErr   error
	}{
		{name: "unknown item", gold: 100, materials: 10, unknown: true, wantErr: domain.ErrEquipmentNotFound},
		{name: "max level", level: 10, gold: 100000, materials: 100, wantErr: domain.ErrMaxEnhancement},
		{name: "short on gold", gold: 49, materials: 10, wantErr: domain.ErrInsufficientFunds},
		{name: "short on materials", gold: 100, materials: 1, wantErr: domain.ErrInsufficientMaterials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, id := withItem(domain.RarityCommon, tt.level)
			c.Gold = tt.gold
			c.Inventory.Materials = tt.materials
			if tt.unknown {
				id = uuid.New()
			}
			before := c.Clone()
			rng := rngtest.New(0.1)

			res, err := newForge(rng).Enhance(context.Background(), c, id)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, res)
			assert.Equal(t, before, c)
			assert.Zero(t, rng.FloatUsed)
		})
	}
}

func TestSalvage(t *testing.T) {
	t.Run("normal yield", func(t *testing.T) {
		c, id := withItem(domain.RarityRare, 2)
		res, err := newForge(rngtest.New(0.5)).Salvage(context.Background(), c, id)
		require.NoError(t, err)

		assert.Equal(t, 8, res.Materials)
		assert.False(t, res.IsPerfectSalvage)
		assert.Equal(t, 8, c.Inventory.Materials)
		assert.Empty(t, c.Inventory.Equipment)
	})

	t.Run("perfect salvage", func(t *testing.T) {
		c, id := withItem(domain.RarityUncommon, 0)
		res, err := newForge(rngtest.New(0.05)).Salvage(context.Background(), c, id)
		require.NoError(t, err)

		assert.True(t, res.IsPerfectSalvage)
		assert.Equal(t, 5, res.Materials)
		assert.Equal(t, 5, c.Inventory.Materials)
	})

	t.Run("unknown item", func(t *testing.T) {
		c, _ := withItem(domain.RarityUncommon, 0)
		_, err := newForge(rngtest.New(0.5)).Salvage(context.Background(), c, uuid.New())
		assert.ErrorIs(t, err, domain.ErrEquipmentNotFound)
		assert.Len(t, c.Inventory.Equipment, 1)
	})
}

func TestEquip(t *testing.T) {
	c, first := withItem(domain.RarityCommon, 0)
	second := domain.Equipment{ID: uuid.New(), Slot: domain.SlotWeapon, PrimaryStat: domain.StatStrength, Bonus: domain.Stats{Strength: 4}}
	c.Inventory.Equipment = append(c.Inventory.Equipment, second)

	require.NoError(t, Equip(c, first))
	assert.Equal(t, 10, c.EffectiveStats(c.CreatedAt).Strength)

	require.NoError(t, Equip(c, second.ID))
	assert.False(t, c.Inventory.Equipment[0].Equipped)
	assert.Equal(t, 12, c.EffectiveStats(c.CreatedAt).Strength)

	require.NoError(t, Unequip(c, second.ID))
	assert.Equal(t, 8, c.EffectiveStats(c.CreatedAt).Strength)

	assert.ErrorIs(t, Equip(c, uuid.New()), domain.ErrEquipmentNotFound)
}
