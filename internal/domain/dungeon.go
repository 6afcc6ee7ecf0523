package domain

import (
	"time"

	"github.com/google/uuid"
)

// EncounterType is the flavor of a dungeon room, matched against class affinity
type EncounterType string

const (
	EncounterCombat EncounterType = "combat"
	EncounterPuzzle EncounterType = "puzzle"
	EncounterTrap   EncounterType = "trap"
	EncounterSocial EncounterType = "social"
)

// RoomKind controls how a room is selected into a run
type RoomKind string

const (
	RoomRegular RoomKind = "regular"
	RoomBonus   RoomKind = "bonus"
	RoomBoss    RoomKind = "boss"
)

// Room is one encounter inside a dungeon
type Room struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Kind          RoomKind       `json:"kind"`
	Encounter     EncounterType  `json:"encounter"`
	PrimaryStat   StatType       `json:"primary_stat"`
	Difficulty    float64        `json:"difficulty"`
	RequiredClass CharacterClass `json:"required_class,omitempty"`
}

// Dungeon is a static multi-room definition
type Dungeon struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Tier         int              `json:"tier"`
	RoomSlots    int              `json:"room_slots"`
	Rooms        []Room           `json:"rooms"`
	TotalEXP     int              `json:"total_exp"`
	TotalGold    int              `json:"total_gold"`
	MinStats     map[StatType]int `json:"min_stats,omitempty"`
	MinPartySize int              `json:"min_party_size"`
	MaxPartySize int              `json:"max_party_size"`
}

// Approach is the party's chosen tactic for a run
type Approach string

const (
	ApproachNone       Approach = ""
	ApproachCautious   Approach = "cautious"
	ApproachAggressive Approach = "aggressive"
)

// RunState is the explicit lifecycle of a DungeonRun
type RunState string

const (
	RunInProgress RunState = "in_progress"
	RunResolved   RunState = "resolved"
)

// RunStatus is the terminal outcome of a resolved run
type RunStatus string

const (
	RunStatusNone      RunStatus = ""
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Grade is the letter grade of a run's performance score
type Grade string

const (
	GradeS Grade = "S"
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// RoomResult records how the party fared in one room
type RoomResult struct {
	RoomID    string   `json:"room_id"`
	RoomName  string   `json:"room_name"`
	Kind      RoomKind `json:"kind"`
	Success   bool     `json:"success"`
	Chance    float64  `json:"chance"`
	Power     float64  `json:"power"`
	Damage    int      `json:"damage"`
	EXP       int      `json:"exp"`
	Gold      int      `json:"gold"`
	Materials int      `json:"materials"`
	Card      string   `json:"card,omitempty"`
	HPAfter   int      `json:"hp_after"`
}

// SecretDiscovery is the rare bonus found at the end of a run
type SecretDiscovery struct {
	Gold      int        `json:"gold"`
	Materials int        `json:"materials"`
	Equipment *Equipment `json:"equipment,omitempty"`
}

// MemberReward is what one party member receives from a resolved run
type MemberReward struct {
	CharacterID  uuid.UUID   `json:"character_id"`
	EXP          int         `json:"exp"`
	Gold         int         `json:"gold"`
	Materials    int         `json:"materials"`
	Cards        []string    `json:"cards,omitempty"`
	Equipment    []Equipment `json:"equipment,omitempty"`
	LevelsGained int         `json:"levels_gained"`
}

// DungeonRunResult is the stored outcome of a resolved run
type DungeonRunResult struct {
	Status         RunStatus        `json:"status"`
	RoomsCleared   int              `json:"rooms_cleared"`
	RoomsTotal     int              `json:"rooms_total"`
	HPRemaining    int              `json:"hp_remaining"`
	MaxHP          int              `json:"max_hp"`
	Readiness      float64          `json:"readiness"`
	Score          float64          `json:"score"`
	Grade          Grade            `json:"grade"`
	LootMultiplier float64          `json:"loot_multiplier"`
	EXP            int              `json:"exp"`
	Gold           int              `json:"gold"`
	Materials      int              `json:"materials"`
	Cards          []string         `json:"cards,omitempty"`
	Loot           []Equipment      `json:"loot,omitempty"`
	Secret         *SecretDiscovery `json:"secret,omitempty"`
	BondEXP        int              `json:"bond_exp"`
	Rewards        []MemberReward   `json:"rewards"`
}

// DungeonRun is one in-flight or resolved attempt by a party
type DungeonRun struct {
	ID          uuid.UUID         `json:"id"`
	DungeonID   string            `json:"dungeon_id"`
	PartyIDs    []uuid.UUID       `json:"party_ids"`
	BondID      *uuid.UUID        `json:"bond_id,omitempty"`
	Approach    Approach          `json:"approach"`
	Rooms       []Room            `json:"rooms"`
	RoomResults []RoomResult      `json:"room_results"`
	PartyHP     int               `json:"party_hp"`
	MaxPartyHP  int               `json:"max_party_hp"`
	EXP         int               `json:"exp"`
	Gold        int               `json:"gold"`
	State       RunState          `json:"state"`
	Status      RunStatus         `json:"status"`
	Feed        []string          `json:"feed"`
	Result      *DungeonRunResult `json:"result,omitempty"`
	StartedAt   time.Time         `json:"started_at"`
	ResolvedAt  *time.Time        `json:"resolved_at,omitempty"`
}

// IsResolved reports whether rewards for this run were already computed
func (r *DungeonRun) IsResolved() bool {
	return r.State == RunResolved && r.Result != nil
}
