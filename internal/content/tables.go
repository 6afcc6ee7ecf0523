package content

import (
	"github.com/osse101/QuestForge_Go/internal/domain"
	"github.com/osse101/QuestForge_Go/internal/loot"
	"github.com/osse101/QuestForge_Go/internal/research"
)

// EnhancementStep is the cost and odds of raising equipment to Level
type EnhancementStep struct {
	Level        int     `json:"level" validate:"gte=1"`
	SuccessRate  float64 `json:"success_rate" validate:"gt=0,lte=1"`
	GoldCost     int     `json:"gold_cost" validate:"gte=0"`
	MaterialCost int     `json:"material_cost" validate:"gte=0"`
}

// Tables is the full set of tunable game content
type Tables struct {
	Version       string                         `json:"version" validate:"required"`
	Enhancement   []EnhancementStep              `json:"enhancement" validate:"required,min=1,dive"`
	Salvage       map[domain.Rarity]int          `json:"salvage" validate:"required,dive,gte=0"`
	RarityWeights loot.RarityWeights             `json:"rarity_weights" validate:"required,dive,gte=0"`
	LootBands     loot.Bands                     `json:"loot_bands"`
	Missions      []domain.Mission               `json:"missions" validate:"required,min=1"`
	Dungeons      []domain.Dungeon               `json:"dungeons" validate:"required,min=1"`
	Achievements  []domain.AchievementDefinition `json:"achievements" validate:"dive"`
	Research      []research.Node                `json:"research" validate:"dive"`
}

// MaxEnhancement is the highest reachable enhancement level
func (t *Tables) MaxEnhancement() int {
	return len(t.Enhancement)
}

// EnhancementFor returns the step that raises an item to level
func (t *Tables) EnhancementFor(level int) (EnhancementStep, bool) {
	for _, s := range t.Enhancement {
		if s.Level == level {
			return s, true
		}
	}
	return EnhancementStep{}, false
}

// SalvageYield returns the materials recovered from an item
func (t *Tables) SalvageYield(rarity domain.Rarity, enhancement int) int {
	return t.Salvage[rarity] + enhancement
}

// Mission looks up a mission definition
func (t *Tables) Mission(id string) (*domain.Mission, bool) {
	for i := range t.Missions {
		if t.Missions[i].ID == id {
			return &t.Missions[i], true
		}
	}
	return nil, false
}

// Dungeon looks up a dungeon definition
func (t *Tables) Dungeon(id string) (*domain.Dungeon, bool) {
	for i := range t.Dungeons {
		if t.Dungeons[i].ID == id {
			return &t.Dungeons[i], true
		}
	}
	return nil, false
}
