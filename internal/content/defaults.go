package content

import (
	"time"

	"github.com/osse101/QuestForge_Go/internal/domain"
	"github.com/osse101/QuestForge_Go/internal/loot"
	"github.com/osse101/QuestForge_Go/internal/research"
)

// DefaultVersion marks the built-in tables
const DefaultVersion = "builtin-1"

// Defaults returns the hardcoded tables used whenever the content service is unavailable
func Defaults() *Tables {
	return &Tables{
		Version:       DefaultVersion,
		Enhancement:   defaultEnhancement(),
		Salvage:       defaultSalvage(),
		RarityWeights: loot.DefaultRarityWeights(),
		LootBands:     loot.DefaultBands(),
		Missions:      defaultMissions(),
		Dungeons:      defaultDungeons(),
		Achievements:  defaultAchievements(),
		Research:      research.DefaultNodes(),
	}
}

func defaultEnhancement() []EnhancementStep {
	steps := make([]EnhancementStep, 0, 10)
	for level := 1; level <= 10; level++ {
		rate := 1.0 - 0.08*float64(level-1)
		steps = append(steps, EnhancementStep{
			Level:        level,
			SuccessRate:  rate,
			GoldCost:     50 * level * level,
			MaterialCost: 2 * level,
		})
	}
	return steps
}

func defaultSalvage() map[domain.Rarity]int {
	return map[domain.Rarity]int{
		domain.RarityCommon:    1,
		domain.RarityUncommon:  3,
		domain.RarityRare:      6,
		domain.RarityEpic:      12,
		domain.RarityLegendary: 25,
	}
}

func defaultMissions() []domain.Mission {
	return []domain.Mission{
		{
			ID: "morning_drills", Name: "Morning Drills", Rarity: domain.RarityCommon,
			Duration: 30 * time.Minute, RequiredLevel: 1,
			StatRequirements: map[domain.StatType]int{domain.StatStrength: 5},
			PrimaryStat:      domain.StatStrength, BaseSuccessRate: 0.80, BaseEXP: 40, BaseGold: 20,
		},
		{
			ID: "library_study", Name: "Library Study", Rarity: domain.RarityUncommon,
			Duration: time.Hour, RequiredLevel: 3,
			StatRequirements: map[domain.StatType]int{domain.StatWisdom: 8},
			PrimaryStat:      domain.StatWisdom, BaseSuccessRate: 0.75, BaseEXP: 90, BaseGold: 40,
		},
		{
			ID: "market_haggle", Name: "Market Haggle", Rarity: domain.RarityRare,
			Duration: 2 * time.Hour, RequiredLevel: 5,
			StatRequirements: map[domain.StatType]int{domain.StatCharisma: 10},
			PrimaryStat:      domain.StatCharisma, BaseSuccessRate: 0.70, BaseEXP: 180, BaseGold: 120,
		},
		{
			ID: "shadow_run", Name: "Shadow Run", Rarity: domain.RarityEpic,
			Duration: 4 * time.Hour, RequiredLevel: 10,
			StatRequirements: map[domain.StatType]int{domain.StatDexterity: 15},
			PrimaryStat:      domain.StatDexterity, BaseSuccessRate: 0.60, BaseEXP: 400, BaseGold: 250,
		},
		{
			ID: "dragon_watch", Name: "Dragon Watch", Rarity: domain.RarityLegendary,
			Duration: 8 * time.Hour, RequiredLevel: 20,
			StatRequirements: map[domain.StatType]int{domain.StatStrength: 20, domain.StatLuck: 10},
			PrimaryStat:      domain.StatStrength, BaseSuccessRate: 0.50, BaseEXP: 900, BaseGold: 600,
		},
		rankUpMission("paladin_trial", "Trial of the Oath", domain.StatStrength, domain.ClassPaladin),
		rankUpMission("archmage_trial", "Trial of the Tower", domain.StatWisdom, domain.ClassArchmage),
		rankUpMission("assassin_trial", "Trial of Shadows", domain.StatDexterity, domain.ClassAssassin),
		rankUpMission("bishop_trial", "Trial of the Chapel", domain.StatCharisma, domain.ClassBishop),
	}
}

func rankUpMission(id, name string, primary domain.StatType, target domain.CharacterClass) domain.Mission {
	return domain.Mission{
		ID: id, Name: name, Rarity: domain.RarityEpic,
		Duration: 6 * time.Hour, RequiredLevel: 15,
		StatRequirements: map[domain.StatType]int{primary: 18},
		PrimaryStat:      primary, BaseSuccessRate: 0.55, BaseEXP: 500, BaseGold: 200,
		RankUpTo: target,
	}
}

func defaultDungeons() []domain.Dungeon {
	return []domain.Dungeon{
		{
			ID: "goblin_warren", Name: "Goblin Warren", Tier: 1, RoomSlots: 4,
			TotalEXP: 200, TotalGold: 120,
			MinStats:     map[domain.StatType]int{domain.StatStrength: 6},
			MinPartySize: 1, MaxPartySize: 4,
			Rooms: []domain.Room{
				{ID: "gw_tunnels", Name: "Muddy Tunnels", Kind: domain.RoomRegular, Encounter: domain.EncounterCombat, PrimaryStat: domain.StatStrength, Difficulty: 8},
				{ID: "gw_snare", Name: "Snare Corridor", Kind: domain.RoomRegular, Encounter: domain.EncounterTrap, PrimaryStat: domain.StatDexterity, Difficulty: 8},
				{ID: "gw_riddle", Name: "Riddle Door", Kind: domain.RoomRegular, Encounter: domain.EncounterPuzzle, PrimaryStat: domain.StatWisdom, Difficulty: 8},
				{ID: "gw_parley", Name: "Goblin Parley", Kind: domain.RoomRegular, Encounter: domain.EncounterSocial, PrimaryStat: domain.StatCharisma, Difficulty: 8},
				{ID: "gw_cache", Name: "Hidden Cache", Kind: domain.RoomBonus, Encounter: domain.EncounterTrap, PrimaryStat: domain.StatLuck, Difficulty: 10},
				{ID: "gw_king", Name: "Goblin King", Kind: domain.RoomBoss, Encounter: domain.EncounterCombat, PrimaryStat: domain.StatStrength, Difficulty: 14},
			},
		},
		{
			ID: "sunken_library", Name: "Sunken Library", Tier: 2, RoomSlots: 5,
			TotalEXP: 450, TotalGold: 260,
			MinStats:     map[domain.StatType]int{domain.StatWisdom: 10, domain.StatDexterity: 8},
			MinPartySize: 1, MaxPartySize: 4,
			Rooms: []domain.Room{
				{ID: "sl_stacks", Name: "Flooded Stacks", Kind: domain.RoomRegular, Encounter: domain.EncounterPuzzle, PrimaryStat: domain.StatWisdom, Difficulty: 14},
				{ID: "sl_glyphs", Name: "Shifting Glyphs", Kind: domain.RoomRegular, Encounter: domain.EncounterPuzzle, PrimaryStat: domain.StatWisdom, Difficulty: 16},
				{ID: "sl_eels", Name: "Eel Pool", Kind: domain.RoomRegular, Encounter: domain.EncounterCombat, PrimaryStat: domain.StatStrength, Difficulty: 14},
				{ID: "sl_pressure", Name: "Pressure Plates", Kind: domain.RoomRegular, Encounter: domain.EncounterTrap, PrimaryStat: domain.StatDexterity, Difficulty: 15},
				{ID: "sl_archivist", Name: "The Archivist", Kind: domain.RoomRegular, Encounter: domain.EncounterSocial, PrimaryStat: domain.StatCharisma, Difficulty: 13},
				{ID: "sl_seal", Name: "Arcane Seal", Kind: domain.RoomRegular, Encounter: domain.EncounterPuzzle, PrimaryStat: domain.StatWisdom, Difficulty: 18, RequiredClass: domain.ClassMage},
				{ID: "sl_vault", Name: "Reading Vault", Kind: domain.RoomBonus, Encounter: domain.EncounterPuzzle, PrimaryStat: domain.StatLuck, Difficulty: 16},
				{ID: "sl_leviathan", Name: "Ink Leviathan", Kind: domain.RoomBoss, Encounter: domain.EncounterCombat, PrimaryStat: domain.StatStrength, Difficulty: 24},
			},
		},
		{
			ID: "obsidian_keep", Name: "Obsidian Keep", Tier: 3, RoomSlots: 6,
			TotalEXP: 900, TotalGold: 600,
			MinStats:     map[domain.StatType]int{domain.StatStrength: 15, domain.StatDefense: 12, domain.StatCharisma: 10},
			MinPartySize: 2, MaxPartySize: 4,
			Rooms: []domain.Room{
				{ID: "ok_gate", Name: "Burning Gate", Kind: domain.RoomRegular, Encounter: domain.EncounterCombat, PrimaryStat: domain.StatStrength, Difficulty: 28},
				{ID: "ok_hall", Name: "Hall of Blades", Kind: domain.RoomRegular, Encounter: domain.EncounterTrap, PrimaryStat: domain.StatDexterity, Difficulty: 26},
				{ID: "ok_court", Name: "Ash Court", Kind: domain.RoomRegular, Encounter: domain.EncounterSocial, PrimaryStat: domain.StatCharisma, Difficulty: 24},
				{ID: "ok_forge", Name: "Soul Forge", Kind: domain.RoomRegular, Encounter: domain.EncounterPuzzle, PrimaryStat: domain.StatWisdom, Difficulty: 27},
				{ID: "ok_barracks", Name: "Barracks", Kind: domain.RoomRegular, Encounter: domain.EncounterCombat, PrimaryStat: domain.StatDefense, Difficulty: 25},
				{ID: "ok_shrine", Name: "Forgotten Shrine", Kind: domain.RoomRegular, Encounter: domain.EncounterSocial, PrimaryStat: domain.StatCharisma, Difficulty: 26, RequiredClass: domain.ClassCleric},
				{ID: "ok_treasury", Name: "Treasury", Kind: domain.RoomBonus, Encounter: domain.EncounterTrap, PrimaryStat: domain.StatLuck, Difficulty: 28},
				{ID: "ok_warlord", Name: "Obsidian Warlord", Kind: domain.RoomBoss, Encounter: domain.EncounterCombat, PrimaryStat: domain.StatStrength, Difficulty: 40},
			},
		},
	}
}

func defaultAchievements() []domain.AchievementDefinition {
	return []domain.AchievementDefinition{
		{ID: "first_steps", Title: "First Steps", Key: domain.AchievementTasksCompleted, Target: 1},
		{ID: "task_apprentice", Title: "Task Apprentice", Key: domain.AchievementTasksCompleted, Target: 25},
		{ID: "task_master", Title: "Task Master", Key: domain.AchievementTasksCompleted, Target: 100},
		{ID: "week_streak", Title: "Seven Days Strong", Key: domain.AchievementLongestStreak, Target: 7},
		{ID: "month_streak", Title: "Unbroken Month", Key: domain.AchievementLongestStreak, Target: 30},
		{ID: "level_10", Title: "Seasoned", Key: domain.AchievementLevel, Target: 10},
		{ID: "level_25", Title: "Veteran", Key: domain.AchievementLevel, Target: 25},
		{ID: "mission_runner", Title: "Mission Runner", Key: domain.AchievementMissionsCompleted, Target: 5},
		{ID: "delver", Title: "Delver", Key: domain.AchievementDungeonsCleared, Target: 1},
		{ID: "dungeon_master", Title: "Dungeon Master", Key: domain.AchievementDungeonsCleared, Target: 10},
		{ID: "coin_purse", Title: "Coin Purse", Key: domain.AchievementLifetimeGold, Target: 1000},
		{ID: "rare_finder", Title: "Keen Eye", Key: domain.AchievementRareItemsFound, Target: 5},
		{ID: "trusted_partner", Title: "Trusted Partner", Key: domain.AchievementPartnerConfirmations, Target: 10},
		{ID: "secret_keeper", Title: "Secret Keeper", Key: domain.AchievementSecretsDiscovered, Target: 1},
	}
}
