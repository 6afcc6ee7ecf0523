package forge

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/osse101/QuestForge_Go/internal/content"
	"github.com/osse101/QuestForge_Go/internal/domain"
	"github.com/osse101/QuestForge_Go/internal/logger"
	"github.com/osse101/QuestForge_Go/internal/utils"
)

// Forge enhances and salvages equipment using the content tables
type Forge struct {
	rng     utils.RNG
	content content.Provider
}

// New creates a forge
func New(rng utils.RNG, provider content.Provider) *Forge {
	return &Forge{rng: rng, content: provider}
}

// EnhanceResult reports one enhancement attempt. Costs are paid on failure too.
type EnhanceResult struct {
	Item           domain.Equipment `json:"item"`
	Success        bool             `json:"success"`
	Roll           float64          `json:"roll"`
	SuccessRate    float64          `json:"success_rate"`
	GoldSpent      int              `json:"gold_spent"`
	MaterialsSpent int              `json:"materials_spent"`
}

// SalvageResult reports what a salvaged item returned
type SalvageResult struct {
	Item             domain.Equipment `json:"item"`
	Materials        int              `json:"materials"`
	IsPerfectSalvage bool             `json:"is_perfect_salvage"`
}

func (f *Forge) tables(ctx context.Context) *content.Tables {
	if f.content == nil {
		return content.Defaults()
	}
	return f.content.Tables(ctx)
}

// Enhance tries to raise an item one enhancement level
func (f *Forge) Enhance(ctx context.Context, c *domain.PlayerCharacter, itemID uuid.UUID) (*EnhanceResult, error) {
	item, _ := c.FindEquipment(itemID)
	if item == nil {
		return nil, domain.ErrEquipmentNotFound
	}

	tables := f.tables(ctx)
	next := item.EnhancementLevel + 1
	if next > tables.MaxEnhancement() {
		return nil, domain.ErrMaxEnhancement
	}
	step, ok := tables.EnhancementFor(next)
	if !ok {
		return nil, fmt.Errorf("%w: no enhancement step for level %d", domain.ErrInvalidInput, next)
	}

	// Check both costs before spending either
	if c.Gold < step.GoldCost {
		return nil, domain.ErrInsufficientFunds
	}
	if c.Inventory.Materials < step.MaterialCost {
		return nil, domain.ErrInsufficientMaterials
	}
	if err := c.SpendGold(step.GoldCost); err != nil {
		return nil, err
	}
	if err := c.SpendMaterials(step.MaterialCost); err != nil {
		return nil, err
	}

	res := &EnhanceResult{
		SuccessRate:    step.SuccessRate,
		GoldSpent:      step.GoldCost,
		MaterialsSpent: step.MaterialCost,
	}
	res.Roll = f.rng.Float64()
	if res.Roll < step.SuccessRate {
		res.Success = true
		item.EnhancementLevel = next
	}
	res.Item = *item

	logger.FromContext(ctx).Info(LogMsgEnhanceAttempted,
		"character_id", c.ID,
		"item", item.Name,
		"target_level", next,
		"success", res.Success)
	return res, nil
}

// Salvage destroys an item and returns materials by rarity and enhancement
func (f *Forge) Salvage(ctx context.Context, c *domain.PlayerCharacter, itemID uuid.UUID) (*SalvageResult, error) {
	item, idx := c.FindEquipment(itemID)
	if item == nil {
		return nil, domain.ErrEquipmentNotFound
	}

	res := &SalvageResult{
		Item:      *item,
		Materials: f.tables(ctx).SalvageYield(item.Rarity, item.EnhancementLevel),
	}
	if f.rng.Float64() < PerfectSalvageChance {
		res.IsPerfectSalvage = true
		res.Materials = int(math.Ceil(float64(res.Materials) * PerfectSalvageMultiplier))
	}

	c.Inventory.Equipment = append(c.Inventory.Equipment[:idx], c.Inventory.Equipment[idx+1:]...)
	c.Inventory.Materials += res.Materials

	logger.FromContext(ctx).Info(LogMsgItemSalvaged,
		"character_id", c.ID,
		"item", res.Item.Name,
		"materials", res.Materials,
		"perfect_salvage", res.IsPerfectSalvage)
	return res, nil
}

// Equip toggles an owned item on, unequipping whatever shares its slot
func Equip(c *domain.PlayerCharacter, itemID uuid.UUID) error {
	item, _ := c.FindEquipment(itemID)
	if item == nil {
		return domain.ErrEquipmentNotFound
	}
	for i := range c.Inventory.Equipment {
		eq := &c.Inventory.Equipment[i]
		if eq.Slot == item.Slot {
			eq.Equipped = false
		}
	}
	item.Equipped = true
	return nil
}

// Unequip takes an item off
func Unequip(c *domain.PlayerCharacter, itemID uuid.UUID) error {
	item, _ := c.FindEquipment(itemID)
	if item == nil {
		return domain.ErrEquipmentNotFound
	}
	item.Equipped = false
	return nil
}
