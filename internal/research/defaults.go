package research

import "github.com/osse101/QuestForge_Go/internal/domain"

// MaxDurationReduction caps how much research can shorten a mission
const MaxDurationReduction = 0.5

func ptr(v float64) *float64 { return &v }

// DefaultNodes is the built-in research catalog
func DefaultNodes() []Node {
	nodes := []Node{
		{Key: "global_exp", Name: "Scholar's Focus", Target: TargetGlobalEXP, ModifierType: ModifierTypePercentage, PerLevelValue: 0.02, MaxLevel: 5, BaseCost: 2},
		{Key: "global_gold", Name: "Merchant's Eye", Target: TargetGlobalGold, ModifierType: ModifierTypePercentage, PerLevelValue: 0.02, MaxLevel: 5, BaseCost: 2},
		{Key: "mission_haste", Name: "Forced March", Target: TargetMissionDuration, ModifierType: ModifierTypePercentage, PerLevelValue: 0.05, MaxValue: ptr(MaxDurationReduction), MaxLevel: 10, BaseCost: 3},
		{Key: "mission_tactics", Name: "Field Tactics", Target: TargetMissionSuccess, ModifierType: ModifierTypePercentage, PerLevelValue: 0.02, MaxLevel: 5, BaseCost: 3},
		{Key: "dungeon_lore", Name: "Dungeon Lore", Target: TargetDungeonSuccess, ModifierType: ModifierTypePercentage, PerLevelValue: 0.02, MaxLevel: 5, BaseCost: 4},
	}
	for _, cat := range []domain.TaskCategory{
		domain.CategoryPhysical, domain.CategoryMental, domain.CategorySocial, domain.CategoryHousehold,
		domain.CategoryWellness, domain.CategoryCreative, domain.CategoryWork,
	} {
		nodes = append(nodes, Node{
			Key:           "category_" + string(cat),
			Name:          "Discipline: " + string(cat),
			Target:        TargetCategoryEXP,
			Category:      cat,
			ModifierType:  ModifierTypePercentage,
			PerLevelValue: 0.03,
			MaxLevel:      5,
			BaseCost:      1,
		})
	}
	return nodes
}

// DefaultTree builds the built-in tree. The default catalog is known valid.
func DefaultTree() *Tree {
	t, err := NewTree(DefaultNodes())
	if err != nil {
		panic(err)
	}
	return t
}
