package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Rarity is the quality tier shared by equipment and missions
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// AllRarities lists rarities from lowest to highest
var AllRarities = []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityLegendary}

// Rank returns 0 for common up to 4 for legendary, -1 when unknown
func (r Rarity) Rank() int {
	for i, v := range AllRarities {
		if v == r {
			return i
		}
	}
	return -1
}

// IsRareOrBetter is used for the rare-find achievement counter
func (r Rarity) IsRareOrBetter() bool {
	return r.Rank() >= RarityRare.Rank()
}

// ParseRarity validates a raw rarity name
func ParseRarity(s string) (Rarity, error) {
	r := Rarity(s)
	if r.Rank() < 0 {
		return "", fmt.Errorf("%w: unknown rarity %q", ErrInvalidInput, s)
	}
	return r, nil
}

// EquipmentSlot is where an item is worn
type EquipmentSlot string

const (
	SlotWeapon    EquipmentSlot = "weapon"
	SlotArmor     EquipmentSlot = "armor"
	SlotAccessory EquipmentSlot = "accessory"
)

// Equipment is a single owned item
type Equipment struct {
	ID               uuid.UUID     `json:"id"`
	Name             string        `json:"name"`
	Slot             EquipmentSlot `json:"slot"`
	Rarity           Rarity        `json:"rarity"`
	PrimaryStat      StatType      `json:"primary_stat"`
	Bonus            Stats         `json:"bonus"`
	EnhancementLevel int           `json:"enhancement_level"`
	Equipped         bool          `json:"equipped"`
}

// EffectiveBonus includes the enhancement levels on the primary stat
func (e Equipment) EffectiveBonus() Stats {
	b := e.Bonus
	b.Add(e.PrimaryStat, e.EnhancementLevel)
	return b
}

// LootKind is the band a single loot draw landed in
type LootKind string

const (
	LootNone       LootKind = "none"
	LootEquipment  LootKind = "equipment"
	LootMaterial   LootKind = "material"
	LootConsumable LootKind = "consumable"
)

// LootDrop is the outcome of one loot roll
type LootDrop struct {
	Kind      LootKind   `json:"kind"`
	Quantity  int        `json:"quantity,omitempty"`
	Equipment *Equipment `json:"equipment,omitempty"`
}
