package domain

import "fmt"

// CharacterClass is the character's specialization
type CharacterClass string

const (
	ClassUnknown  CharacterClass = ""
	ClassWarrior  CharacterClass = "warrior"
	ClassMage     CharacterClass = "mage"
	ClassRogue    CharacterClass = "rogue"
	ClassCleric   CharacterClass = "cleric"
	ClassPaladin  CharacterClass = "paladin"
	ClassArchmage CharacterClass = "archmage"
	ClassAssassin CharacterClass = "assassin"
	ClassBishop   CharacterClass = "bishop"
)

// ClassRole is the party role a class fills in dungeon encounters
type ClassRole string

const (
	RoleDamage  ClassRole = "damage"
	RoleTank    ClassRole = "tank"
	RoleSupport ClassRole = "support"
)

// ClassInfo describes the static traits of a class
type ClassInfo struct {
	Specialty   TaskCategory
	Role        ClassRole
	Affinity    EncounterType
	PrimaryStat StatType
	Tier        int
	RankUpFrom  CharacterClass
	Starting    Stats
}

var classCatalog = map[CharacterClass]ClassInfo{
	ClassWarrior: {
		Specialty: CategoryPhysical, Role: RoleTank, Affinity: EncounterCombat, PrimaryStat: StatStrength, Tier: 1,
		Starting: Stats{Strength: 8, Wisdom: 3, Charisma: 4, Dexterity: 5, Luck: 3, Defense: 7},
	},
	ClassMage: {
		Specialty: CategoryMental, Role: RoleDamage, Affinity: EncounterPuzzle, PrimaryStat: StatWisdom, Tier: 1,
		Starting: Stats{Strength: 3, Wisdom: 9, Charisma: 4, Dexterity: 4, Luck: 5, Defense: 3},
	},
	ClassRogue: {
		Specialty: CategoryHousehold, Role: RoleDamage, Affinity: EncounterTrap, PrimaryStat: StatDexterity, Tier: 1,
		Starting: Stats{Strength: 4, Wisdom: 4, Charisma: 4, Dexterity: 9, Luck: 6, Defense: 3},
	},
	ClassCleric: {
		Specialty: CategoryWellness, Role: RoleSupport, Affinity: EncounterSocial, PrimaryStat: StatCharisma, Tier: 1,
		Starting: Stats{Strength: 4, Wisdom: 6, Charisma: 8, Dexterity: 3, Luck: 4, Defense: 5},
	},
	ClassPaladin: {
		Specialty: CategoryPhysical, Role: RoleTank, Affinity: EncounterCombat, PrimaryStat: StatStrength, Tier: 2,
		RankUpFrom: ClassWarrior,
	},
	ClassArchmage: {
		Specialty: CategoryMental, Role: RoleDamage, Affinity: EncounterPuzzle, PrimaryStat: StatWisdom, Tier: 2,
		RankUpFrom: ClassMage,
	},
	ClassAssassin: {
		Specialty: CategoryHousehold, Role: RoleDamage, Affinity: EncounterTrap, PrimaryStat: StatDexterity, Tier: 2,
		RankUpFrom: ClassRogue,
	},
	ClassBishop: {
		Specialty: CategoryWellness, Role: RoleSupport, Affinity: EncounterSocial, PrimaryStat: StatCharisma, Tier: 2,
		RankUpFrom: ClassCleric,
	},
}

// ParseCharacterClass validates a raw class name
func ParseCharacterClass(s string) (CharacterClass, error) {
	c := CharacterClass(s)
	if _, ok := classCatalog[c]; !ok {
		return ClassUnknown, fmt.Errorf("%w: unknown class %q", ErrInvalidInput, s)
	}
	return c, nil
}

// Info returns the static traits of the class
func (c CharacterClass) Info() (ClassInfo, bool) {
	info, ok := classCatalog[c]
	return info, ok
}

// Role returns the party role; unknown classes count as damage dealers
func (c CharacterClass) Role() ClassRole {
	if info, ok := classCatalog[c]; ok {
		return info.Role
	}
	return RoleDamage
}

// Specialty returns the task category the class earns an affinity bonus on
func (c CharacterClass) Specialty() TaskCategory {
	return classCatalog[c].Specialty
}

// Affinity returns the encounter type the class excels at
func (c CharacterClass) Affinity() EncounterType {
	return classCatalog[c].Affinity
}

// StartingStats returns the base stat block for a fresh character. Advanced
// classes inherit the block of the class they rank up from.
func (c CharacterClass) StartingStats() Stats {
	info, ok := classCatalog[c]
	if !ok {
		return Stats{Strength: 5, Wisdom: 5, Charisma: 5, Dexterity: 5, Luck: 5, Defense: 5}
	}
	if info.RankUpFrom != ClassUnknown {
		return info.RankUpFrom.StartingStats()
	}
	return info.Starting
}

// CanRankUpTo reports whether a character of class c may transition to target
func (c CharacterClass) CanRankUpTo(target CharacterClass) bool {
	info, ok := classCatalog[target]
	return ok && info.RankUpFrom == c
}
