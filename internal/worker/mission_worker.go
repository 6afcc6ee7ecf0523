package worker

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/QuestForge_Go/internal/domain"
	"github.com/osse101/QuestForge_Go/internal/event"
	"github.com/osse101/QuestForge_Go/internal/logger"
)

// MissionClaimer resolves finished missions on behalf of the worker
type MissionClaimer interface {
	ActiveMissions(ctx context.Context) ([]domain.ActiveMission, error)
	ClaimMission(ctx context.Context, characterID uuid.UUID) error
}

// MissionWorker claims missions when their countdown ends. The timers only
// trigger the claim; the mission engine still checks the deadline itself.
type MissionWorker struct {
	deadlines
	claimer MissionClaimer
}

// NewMissionWorker creates a new MissionWorker
func NewMissionWorker(claimer MissionClaimer) *MissionWorker {
	return &MissionWorker{deadlines: newDeadlines(), claimer: claimer}
}

// Start schedules every mission that was running before a restart
func (w *MissionWorker) Start(ctx context.Context) {
	active, err := w.claimer.ActiveMissions(ctx)
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgFailedToLoadActiveMissions, "error", err)
		return
	}
	for _, m := range active {
		w.Schedule(m.CharacterID, m.CompletesAt)
	}
}

// Subscribe subscribes the worker to relevant events
func (w *MissionWorker) Subscribe(bus event.Bus) {
	bus.Subscribe(event.MissionStarted, w.handleMissionStarted)
}

func (w *MissionWorker) handleMissionStarted(_ context.Context, e event.Event) error {
	p, err := event.DecodePayload[event.MissionPayloadV1](e.Payload)
	if err != nil {
		return err
	}
	w.Schedule(p.CharacterID, p.CompletesAt)
	return nil
}

// Schedule arranges a claim for the character at the deadline
func (w *MissionWorker) Schedule(characterID uuid.UUID, at time.Time) {
	log := logger.FromContext(context.Background()).With("character_id", characterID)
	armed := w.arm(characterID, at, func(ctx context.Context) {
		log.Info(LogMsgClaimingMission)
		if err := w.claimer.ClaimMission(ctx, characterID); err != nil {
			log.Error(LogMsgFailedToClaimMission, "error", err)
		}
	})
	if !armed {
		log.Warn(LogMsgMissionWorkerClosed)
		return
	}
	log.Info(LogMsgSchedulingMissionClaim, "completes_at", at)
}

// pending reports how many claims are armed
func (w *MissionWorker) pending() int { return w.count() }

// Shutdown gracefully shuts down the mission worker
func (w *MissionWorker) Shutdown(ctx context.Context) error {
	return w.close(ctx, "mission")
}
