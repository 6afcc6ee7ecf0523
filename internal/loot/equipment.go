package loot

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/osse101/QuestForge_Go/internal/domain"
	"github.com/osse101/QuestForge_Go/internal/utils"
)

var slots = []domain.EquipmentSlot{domain.SlotWeapon, domain.SlotArmor, domain.SlotAccessory}

var slotNouns = map[domain.EquipmentSlot][]string{
	domain.SlotWeapon:    {"Blade", "Staff", "Bow", "Hammer"},
	domain.SlotArmor:     {"Mail", "Robe", "Cloak", "Plate"},
	domain.SlotAccessory: {"Ring", "Amulet", "Charm", "Sigil"},
}

var rarityAdjectives = map[domain.Rarity]string{
	domain.RarityCommon:    "Worn",
	domain.RarityUncommon:  "Sturdy",
	domain.RarityRare:      "Gleaming",
	domain.RarityEpic:      "Runed",
	domain.RarityLegendary: "Mythic",
}

// primaryBonus is the primary stat bonus by rarity rank
var primaryBonus = []int{1, 2, 4, 6, 9}

// NewEquipment generates a random item of the given rarity
func NewEquipment(rng utils.RNG, rarity domain.Rarity) domain.Equipment {
	rank := rarity.Rank()
	if rank < 0 {
		rarity, rank = domain.RarityCommon, 0
	}
	slot := slots[rng.Intn(len(slots))]
	stat := domain.AllStats[rng.Intn(len(domain.AllStats))]
	nouns := slotNouns[slot]
	noun := nouns[rng.Intn(len(nouns))]

	var bonus domain.Stats
	bonus.Add(stat, primaryBonus[rank])
	if slot == domain.SlotArmor {
		bonus.Add(domain.StatDefense, 1+rank/2)
	}

	return domain.Equipment{
		ID:          uuid.New(),
		Name:        fmt.Sprintf("%s %s of %s", rarityAdjectives[rarity], noun, titleCase(string(stat))),
		Slot:        slot,
		Rarity:      rarity,
		PrimaryStat: stat,
		Bonus:       bonus,
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
