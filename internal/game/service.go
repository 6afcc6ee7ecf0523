// Package game is the coordinator in front of the progression engines. Each
// operation serializes on the characters it touches, loads the aggregates,
// runs an engine, re-checks achievements and persists in one transaction.
// Events and sync snapshots go out only after the commit.
package game

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/osse101/QuestForge_Go/internal/achievement"
	"github.com/osse101/QuestForge_Go/internal/concurrency"
	"github.com/osse101/QuestForge_Go/internal/content"
	"github.com/osse101/QuestForge_Go/internal/domain"
	"github.com/osse101/QuestForge_Go/internal/dungeon"
	"github.com/osse101/QuestForge_Go/internal/event"
	"github.com/osse101/QuestForge_Go/internal/forge"
	"github.com/osse101/QuestForge_Go/internal/logger"
	"github.com/osse101/QuestForge_Go/internal/mission"
	"github.com/osse101/QuestForge_Go/internal/repository"
	"github.com/osse101/QuestForge_Go/internal/research"
	"github.com/osse101/QuestForge_Go/internal/reward"
	"github.com/osse101/QuestForge_Go/internal/task"
	"github.com/osse101/QuestForge_Go/internal/telemetry"
	"github.com/osse101/QuestForge_Go/internal/utils"
)

// Service defines the game operations exposed to external callers
type Service interface {
	CreateCharacter(ctx context.Context, name string, class domain.CharacterClass) (*domain.PlayerCharacter, error)
	GetCharacter(ctx context.Context, id uuid.UUID) (*domain.PlayerCharacter, error)
	SpendStatPoint(ctx context.Context, characterID uuid.UUID, stat domain.StatType) (*domain.PlayerCharacter, error)
	ActivateBuff(ctx context.Context, characterID uuid.UUID, kind domain.BuffKind) (*domain.PlayerCharacter, error)
	PurchaseResearch(ctx context.Context, characterID uuid.UUID, nodeKey string) (int, error)

	CreateTask(ctx context.Context, t *domain.GameTask) (*domain.GameTask, error)
	CreateBundle(ctx context.Context, b *domain.RoutineBundle) (*domain.RoutineBundle, error)
	ListTasks(ctx context.Context, ownerID uuid.UUID) ([]*domain.GameTask, error)
	CompleteTask(ctx context.Context, taskID, actorID uuid.UUID, signals reward.Signals) (*reward.Result, error)
	ConfirmTask(ctx context.Context, taskID, confirmerID uuid.UUID) (*reward.Result, error)
	DisputeTask(ctx context.Context, taskID, disputerID uuid.UUID, reason string) (*domain.GameTask, error)

	CreateBond(ctx context.Context, memberIDs ...uuid.UUID) (*domain.Bond, error)

	StartMission(ctx context.Context, characterID uuid.UUID, missionID string) (*domain.ActiveMission, error)
	CheckMission(ctx context.Context, characterID uuid.UUID) (*mission.Resolution, error)
	ClaimMission(ctx context.Context, characterID uuid.UUID) error
	ActiveMissions(ctx context.Context) ([]domain.ActiveMission, error)

	StartDungeon(ctx context.Context, dungeonID string, partyIDs []uuid.UUID, approach domain.Approach) (*domain.DungeonRun, error)
	ResolveDungeon(ctx context.Context, runID uuid.UUID) (*domain.DungeonRun, error)
	RunDungeon(ctx context.Context, dungeonID string, partyIDs []uuid.UUID, approach domain.Approach) (*domain.DungeonRun, error)
	GetRun(ctx context.Context, runID uuid.UUID) (*domain.DungeonRun, error)

	EnhanceEquipment(ctx context.Context, characterID, itemID uuid.UUID) (*forge.EnhanceResult, error)
	SalvageEquipment(ctx context.Context, characterID, itemID uuid.UUID) (*forge.SalvageResult, error)
	EquipItem(ctx context.Context, characterID, itemID uuid.UUID, equip bool) (*domain.PlayerCharacter, error)

	SweepEscrow(ctx context.Context) (int, error)
	ResetRecurring(ctx context.Context, now time.Time) (int, error)
	CheckStreaks(ctx context.Context) (int, error)
}

// EventPublisher publishes events without blocking on delivery
type EventPublisher interface {
	PublishWithRetry(ctx context.Context, evt event.Event)
}

// SnapshotReplicator receives post-commit copies of mutated aggregates
type SnapshotReplicator interface {
	Replicate(ctx context.Context, snaps ...domain.Snapshot)
}

// Deps are the collaborators of the coordinator. Publisher and Replicator may be nil.
type Deps struct {
	Store      repository.Store
	Content    content.Provider
	RNG        utils.RNG
	Publisher  EventPublisher
	Replicator SnapshotReplicator
	Tracker    *achievement.Tracker
	Research   *research.Tree
	Location   *time.Location
	Clock      func() time.Time
}

type service struct {
	store      repository.Store
	content    content.Provider
	publisher  EventPublisher
	replicator SnapshotReplicator
	locks      *concurrency.LockManager
	tracker    *achievement.Tracker
	tree       *research.Tree
	tasks      *task.Machine
	missions   *mission.Engine
	dungeons   *dungeon.Engine
	forge      *forge.Forge
	location   *time.Location
	clock      func() time.Time
	tracer     trace.Tracer
}

// NewService wires the engines around the store
func NewService(d Deps) Service {
	if d.Content == nil {
		d.Content = content.NewStaticProvider(content.Defaults())
	}
	if d.RNG == nil {
		d.RNG = utils.NewLockedRNG(time.Now().UnixNano())
	}
	tables := d.Content.Tables(context.Background())
	if d.Tracker == nil {
		d.Tracker = achievement.NewTracker(tables.Achievements)
	}
	if d.Research == nil {
		d.Research = research.DefaultTree()
		if len(tables.Research) > 0 {
			if tree, err := research.NewTree(tables.Research); err == nil {
				d.Research = tree
			}
		}
	}
	if d.Location == nil {
		d.Location = time.UTC
	}
	if d.Clock == nil {
		d.Clock = time.Now
	}
	return &service{
		store:      d.Store,
		content:    d.Content,
		publisher:  d.Publisher,
		replicator: d.Replicator,
		locks:      concurrency.NewLockManager(),
		tracker:    d.Tracker,
		tree:       d.Research,
		tasks:      task.NewMachine(reward.NewPipeline(d.RNG, d.Content)),
		missions:   mission.NewEngine(d.RNG, d.Content),
		dungeons:   dungeon.NewEngine(d.RNG, d.Content),
		forge:      forge.New(d.RNG, d.Content),
		location:   d.Location,
		clock:      d.Clock,
		tracer:     telemetry.Tracer(),
	}
}

// now is the wall clock in the configured day-boundary location
func (s *service) now() time.Time {
	return s.clock().In(s.location)
}

func (s *service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// endSpan records err on the span and ends it
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func characterAttr(id uuid.UUID) attribute.KeyValue {
	return attribute.String("character.id", id.String())
}

// effects collects what an operation emits once its transaction commits
type effects struct {
	events []event.Event
	snaps  []domain.Snapshot
	failed int
}

func (fx *effects) emit(evt event.Event) {
	fx.events = append(fx.events, evt)
}

func (fx *effects) capture(kind domain.SnapshotKind, id uuid.UUID, v any, now time.Time) {
	snap, err := domain.NewSnapshot(kind, id, v, now)
	if err != nil {
		fx.failed++
		return
	}
	fx.snaps = append(fx.snaps, snap)
}

// flush hands events and snapshots to the collaborators. It never fails.
func (s *service) flush(ctx context.Context, fx *effects) {
	if fx.failed > 0 {
		logger.FromContext(ctx).Warn(LogMsgSnapshotFailed, "count", fx.failed)
	}
	if s.publisher != nil {
		for _, evt := range fx.events {
			s.publisher.PublishWithRetry(ctx, evt)
		}
	}
	if s.replicator != nil && len(fx.snaps) > 0 {
		s.replicator.Replicate(ctx, fx.snaps...)
	}
}

// progress runs the achievement tracker after a mutation and records
// level-up and unlock events. oldLevel is the level before the mutation.
func (s *service) progress(ctx context.Context, fx *effects, c *domain.PlayerCharacter, oldLevel int, source string, now time.Time) {
	if c.Level > oldLevel {
		fx.emit(event.NewLevelUpEvent(c.ID, oldLevel, c.Level, source))
	}
	for _, a := range s.tracker.Check(c, now) {
		logger.FromContext(ctx).Info(LogMsgAchievementUnlock, "character_id", c.ID, "achievement", a.ID)
		fx.emit(event.NewAchievementUnlockedEvent(c.ID, a))
	}
	fx.capture(domain.SnapshotCharacter, c.ID, c, now)
}

// bondProgress records a bond level-up when the bond crossed a level
func bondProgress(fx *effects, b *domain.Bond, oldLevel int, oldPerks []domain.Perk, now time.Time) {
	if b == nil {
		return
	}
	if b.Level > oldLevel {
		fx.emit(event.NewBondLevelUpEvent(b, newPerks(oldPerks, b.Perks)))
	}
	fx.capture(domain.SnapshotBond, b.ID, b, now)
}

func newPerks(before, after []domain.Perk) []domain.Perk {
	had := make(map[domain.Perk]bool, len(before))
	for _, p := range before {
		had[p] = true
	}
	var out []domain.Perk
	for _, p := range after {
		if !had[p] {
			out = append(out, p)
		}
	}
	return out
}

// bondFor returns the first bond the character belongs to, or nil
func bondFor(ctx context.Context, repo repository.Bond, characterID uuid.UUID) (*domain.Bond, error) {
	bonds, err := repo.FindBonds(ctx, domain.BondQuery{MemberID: &characterID})
	if err != nil || len(bonds) == 0 {
		return nil, err
	}
	return bonds[0], nil
}

func bondState(b *domain.Bond) (int, []domain.Perk) {
	if b == nil {
		return 0, nil
	}
	return b.Level, append([]domain.Perk(nil), b.Perks...)
}
