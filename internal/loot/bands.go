package loot

import (
	"math"

	"github.com/osse101/QuestForge_Go/internal/domain"
	"github.com/osse101/QuestForge_Go/internal/utils"
)

// Bands are the cumulative probability bands of a task loot roll.
// All values are fractions of one uniform draw.
type Bands struct {
	EquipmentBase    float64 `json:"equipment_base" validate:"gte=0,lte=1"`
	EquipmentPerLuck float64 `json:"equipment_per_luck" validate:"gte=0,lte=1"`
	EquipmentCap     float64 `json:"equipment_cap" validate:"gte=0,lte=1"`
	Materials        float64 `json:"materials" validate:"gte=0,lte=1"`
	Consumables      float64 `json:"consumables" validate:"gte=0,lte=1"`
	MaterialMin      int     `json:"material_min" validate:"gte=1"`
	MaterialMax      int     `json:"material_max" validate:"gtefield=MaterialMin"`
}

// DefaultBands returns the built-in task loot bands
func DefaultBands() Bands {
	return Bands{
		EquipmentBase:    0.065,
		EquipmentPerLuck: 0.002,
		EquipmentCap:     0.15,
		Materials:        0.35,
		Consumables:      0.175,
		MaterialMin:      1,
		MaterialMax:      3,
	}
}

// EquipmentChance is the equipment band width for a given Luck
func (b Bands) EquipmentChance(luck int) float64 {
	if luck < 0 {
		luck = 0
	}
	return math.Min(b.EquipmentBase+b.EquipmentPerLuck*float64(luck), b.EquipmentCap)
}

// Classify maps one uniform draw onto the cumulative bands
func (b Bands) Classify(roll float64, luck int) domain.LootKind {
	edge := b.EquipmentChance(luck)
	if roll < edge {
		return domain.LootEquipment
	}
	edge += b.Materials
	if roll < edge {
		return domain.LootMaterial
	}
	edge += b.Consumables
	if roll < edge {
		return domain.LootConsumable
	}
	return domain.LootNone
}

// Roll performs the task loot roll: exactly one uniform draw picks the band,
// further draws only shape the item that band produced.
func Roll(rng utils.RNG, b Bands, weights RarityWeights, luck int) domain.LootDrop {
	kind := b.Classify(rng.Float64(), luck)
	switch kind {
	case domain.LootEquipment:
		eq := NewEquipment(rng, weights.Pick(rng, LuckShift(luck)))
		return domain.LootDrop{Kind: kind, Quantity: 1, Equipment: &eq}
	case domain.LootMaterial:
		span := b.MaterialMax - b.MaterialMin + 1
		qty := b.MaterialMin
		if span > 1 {
			qty += rng.Intn(span)
		}
		return domain.LootDrop{Kind: kind, Quantity: qty}
	case domain.LootConsumable:
		return domain.LootDrop{Kind: kind, Quantity: 1}
	default:
		return domain.LootDrop{Kind: domain.LootNone}
	}
}

// Apply credits a drop to the character inventory
func Apply(c *domain.PlayerCharacter, drop domain.LootDrop) {
	switch drop.Kind {
	case domain.LootEquipment:
		if drop.Equipment != nil {
			c.Inventory.Equipment = append(c.Inventory.Equipment, *drop.Equipment)
			if drop.Equipment.Rarity.IsRareOrBetter() {
				c.IncrementCounter(domain.AchievementRareItemsFound, 1)
			}
		}
	case domain.LootMaterial:
		c.Inventory.Materials += drop.Quantity
	case domain.LootConsumable:
		c.Inventory.Consumables += drop.Quantity
	}
}
