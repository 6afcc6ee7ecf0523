package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/QuestForge_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Game event types
const (
	TaskCompleted       Type = "task.completed"
	TaskEscrowed        Type = "task.escrowed"
	TaskConfirmed       Type = "task.confirmed"
	TaskDisputed        Type = "task.disputed"
	MissionStarted      Type = "mission.started"
	MissionResolved     Type = "mission.resolved"
	DungeonResolved     Type = "dungeon.resolved"
	CharacterLeveledUp  Type = "character.leveled_up"
	AchievementUnlocked Type = "achievement.unlocked"
	BondLeveledUp       Type = "bond.leveled_up"
	StreakAtRisk        Type = "streak.at_risk"
	EquipmentEnhanced   Type = "equipment.enhanced"
	EquipmentSalvaged   Type = "equipment.salvaged"
	ResearchPurchased   Type = "research.purchased"
)

// AllTypes lists every game event type, used to wire subscribers
var AllTypes = []Type{
	TaskCompleted, TaskEscrowed, TaskConfirmed, TaskDisputed,
	MissionStarted, MissionResolved, DungeonResolved,
	CharacterLeveledUp, AchievementUnlocked, BondLeveledUp, StreakAtRisk,
	EquipmentEnhanced, EquipmentSalvaged, ResearchPurchased,
}

// Typed event payloads

// TaskPayloadV1 describes a task lifecycle transition
type TaskPayloadV1 struct {
	CharacterID uuid.UUID `json:"character_id"`
	TaskID      uuid.UUID `json:"task_id"`
	Title       string    `json:"title"`
	EXP         int       `json:"exp"`
	Gold        int       `json:"gold"`
	Reason      string    `json:"reason,omitempty"`
	Timestamp   int64     `json:"timestamp"`
}

// MissionPayloadV1 describes a mission start or resolution
type MissionPayloadV1 struct {
	CharacterID uuid.UUID `json:"character_id"`
	MissionID   string    `json:"mission_id"`
	Success     bool      `json:"success"`
	EXP         int       `json:"exp"`
	Gold        int       `json:"gold"`
	CompletesAt time.Time `json:"completes_at,omitempty"`
	Timestamp   int64     `json:"timestamp"`
}

// DungeonPayloadV1 describes a resolved dungeon run
type DungeonPayloadV1 struct {
	RunID     uuid.UUID        `json:"run_id"`
	DungeonID string           `json:"dungeon_id"`
	PartyIDs  []uuid.UUID      `json:"party_ids"`
	Status    domain.RunStatus `json:"status"`
	Grade     domain.Grade     `json:"grade"`
	Cleared   int              `json:"rooms_cleared"`
	Total     int              `json:"rooms_total"`
	Timestamp int64            `json:"timestamp"`
}

// LevelUpPayloadV1 is the typed payload for level up events
type LevelUpPayloadV1 struct {
	CharacterID uuid.UUID `json:"character_id"`
	OldLevel    int       `json:"old_level"`
	NewLevel    int       `json:"new_level"`
	Source      string    `json:"source,omitempty"`
}

// AchievementPayloadV1 is the typed payload for unlock events
type AchievementPayloadV1 struct {
	CharacterID   uuid.UUID `json:"character_id"`
	AchievementID string    `json:"achievement_id"`
	Title         string    `json:"title"`
}

// BondLevelUpPayloadV1 is the typed payload for bond level ups
type BondLevelUpPayloadV1 struct {
	BondID   uuid.UUID     `json:"bond_id"`
	NewLevel int           `json:"new_level"`
	Unlocked []domain.Perk `json:"unlocked,omitempty"`
}

// StreakPayloadV1 is the typed payload for streak warnings
type StreakPayloadV1 struct {
	CharacterID uuid.UUID `json:"character_id"`
	Streak      int       `json:"streak"`
}

// ForgePayloadV1 is the typed payload for enhancement and salvage events
type ForgePayloadV1 struct {
	CharacterID uuid.UUID `json:"character_id"`
	ItemID      uuid.UUID `json:"item_id"`
	ItemName    string    `json:"item_name"`
	Success     bool      `json:"success"`
	Level       int       `json:"level"`
	Materials   int       `json:"materials"`
}

// ResearchPayloadV1 is the typed payload for research purchases
type ResearchPayloadV1 struct {
	CharacterID uuid.UUID `json:"character_id"`
	NodeKey     string    `json:"node_key"`
	Level       int       `json:"level"`
}

// Type-safe event constructors

// NewTaskEvent creates a task lifecycle event
func NewTaskEvent(t Type, characterID uuid.UUID, task *domain.GameTask, exp, gold int, reason string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    t,
		Payload: TaskPayloadV1{
			CharacterID: characterID,
			TaskID:      task.ID,
			Title:       task.Title,
			EXP:         exp,
			Gold:        gold,
			Reason:      reason,
			Timestamp:   time.Now().Unix(),
		},
		Metadata: map[string]interface{}{
			"category": string(task.Category),
		},
	}
}

// NewMissionStartedEvent creates a mission started event
func NewMissionStartedEvent(characterID uuid.UUID, active *domain.ActiveMission) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    MissionStarted,
		Payload: MissionPayloadV1{
			CharacterID: characterID,
			MissionID:   active.MissionID,
			CompletesAt: active.CompletesAt,
			Timestamp:   time.Now().Unix(),
		},
	}
}

// NewMissionResolvedEvent creates a mission resolved event
func NewMissionResolvedEvent(characterID uuid.UUID, outcome *domain.MissionOutcome) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    MissionResolved,
		Payload: MissionPayloadV1{
			CharacterID: characterID,
			MissionID:   outcome.MissionID,
			Success:     outcome.Success,
			EXP:         outcome.EXP,
			Gold:        outcome.Gold,
			Timestamp:   time.Now().Unix(),
		},
	}
}

// NewDungeonResolvedEvent creates a dungeon resolved event
func NewDungeonResolvedEvent(run *domain.DungeonRun) Event {
	p := DungeonPayloadV1{
		RunID:     run.ID,
		DungeonID: run.DungeonID,
		PartyIDs:  run.PartyIDs,
		Status:    run.Status,
		Timestamp: time.Now().Unix(),
	}
	if run.Result != nil {
		p.Grade = run.Result.Grade
		p.Cleared = run.Result.RoomsCleared
		p.Total = run.Result.RoomsTotal
	}
	return Event{Version: EventSchemaVersion, Type: DungeonResolved, Payload: p}
}

// NewLevelUpEvent creates a new level up event
func NewLevelUpEvent(characterID uuid.UUID, oldLevel, newLevel int, source string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CharacterLeveledUp,
		Payload: LevelUpPayloadV1{
			CharacterID: characterID,
			OldLevel:    oldLevel,
			NewLevel:    newLevel,
			Source:      source,
		},
		Metadata: map[string]interface{}{
			"source": source,
		},
	}
}

// NewAchievementUnlockedEvent creates an achievement unlocked event
func NewAchievementUnlockedEvent(characterID uuid.UUID, a domain.Achievement) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    AchievementUnlocked,
		Payload: AchievementPayloadV1{
			CharacterID:   characterID,
			AchievementID: a.ID,
			Title:         a.Title,
		},
	}
}

// NewBondLevelUpEvent creates a bond level up event
func NewBondLevelUpEvent(b *domain.Bond, unlocked []domain.Perk) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    BondLeveledUp,
		Payload: BondLevelUpPayloadV1{BondID: b.ID, NewLevel: b.Level, Unlocked: unlocked},
	}
}

// NewStreakAtRiskEvent creates a streak warning event
func NewStreakAtRiskEvent(c *domain.PlayerCharacter) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    StreakAtRisk,
		Payload: StreakPayloadV1{CharacterID: c.ID, Streak: c.CurrentStreak},
	}
}

// NewForgeEvent creates an enhancement or salvage event
func NewForgeEvent(t Type, characterID uuid.UUID, item domain.Equipment, success bool, materials int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    t,
		Payload: ForgePayloadV1{
			CharacterID: characterID,
			ItemID:      item.ID,
			ItemName:    item.Name,
			Success:     success,
			Level:       item.EnhancementLevel,
			Materials:   materials,
		},
	}
}

// NewResearchPurchasedEvent creates a research purchase event
func NewResearchPurchasedEvent(characterID uuid.UUID, key string, level int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ResearchPurchased,
		Payload: ResearchPayloadV1{CharacterID: characterID, NodeKey: key, Level: level},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// Publisher is what services use to emit events without caring about delivery
type Publisher interface {
	PublishWithRetry(ctx context.Context, event Event)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	// Handlers run synchronously; slow subscribers hand work to the worker pool
	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
