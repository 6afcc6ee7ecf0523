package task

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/QuestForge_Go/internal/bond"
	"github.com/osse101/QuestForge_Go/internal/domain"
	"github.com/osse101/QuestForge_Go/internal/logger"
	"github.com/osse101/QuestForge_Go/internal/reward"
)

// Machine drives GameTask through Pending, AwaitingPartner and Completed.
// Every failed guard returns a sentinel error and leaves all inputs untouched.
type Machine struct {
	pipeline *reward.Pipeline
}

// NewMachine creates a state machine pricing completions with pipeline
func NewMachine(pipeline *reward.Pipeline) *Machine {
	return &Machine{pipeline: pipeline}
}

// Complete prices a pending task. Partner-assigned tasks with a bond and no
// confirmation yet go to escrow: the result is returned with
// PendingConfirmation set and the character is not touched.
func (m *Machine) Complete(ctx context.Context, in reward.Input, actorID uuid.UUID) (*reward.Result, error) {
	t := in.Task
	if t.Status != domain.TaskPending {
		return nil, fmt.Errorf("%w: task %s is %s", domain.ErrTaskNotPending, t.ID, t.Status)
	}
	if in.Now.IsZero() {
		in.Now = time.Now()
	}
	log := logger.FromContext(ctx)

	res := m.pipeline.Compute(ctx, in)

	completedAt := in.Now
	actor := actorID
	if t.RequiresEscrow(in.Bond) {
		t.Status = domain.TaskAwaitingPartner
		t.CompletedAt = &completedAt
		t.CompletedBy = &actor
		held := in.Signals.Clone()
		held.PartnerConfirmed = false
		t.EscrowSignals = &held
		res.PendingConfirmation = true
		log.Info(LogMsgTaskEscrowed, "task_id", t.ID, "character_id", in.Character.ID)
		return res, nil
	}

	reward.Apply(ctx, in, res)
	t.Status = domain.TaskCompleted
	t.CompletedAt = &completedAt
	t.CompletedBy = &actor
	t.DisputeReason = ""
	log.Info(LogMsgTaskCompleted, "task_id", t.ID, "character_id", in.Character.ID, "exp", res.TotalEXP())
	return res, nil
}

// Confirm releases an escrowed completion. The reward is recomputed from the
// signals held at completion time with only partner confirmation added, so a
// failed geofence or an anomaly flag still lowers the payout. confirmerID must
// be the assigning partner or another bond member; uuid.Nil is the timeout sweep.
func (m *Machine) Confirm(ctx context.Context, in reward.Input, confirmerID uuid.UUID) (*reward.Result, error) {
	t := in.Task
	if t.Status != domain.TaskAwaitingPartner {
		return nil, fmt.Errorf("%w: task %s is %s", domain.ErrTaskNotAwaitingPartner, t.ID, t.Status)
	}
	if confirmerID != uuid.Nil && !canConfirm(t, in.Bond, confirmerID) {
		return nil, domain.ErrNotTaskPartner
	}
	if in.Now.IsZero() {
		in.Now = time.Now()
	}

	// The completion timestamp stays the original one; rewards land on the confirmation day
	completedAt := in.Now
	if t.CompletedAt != nil {
		completedAt = *t.CompletedAt
	}

	if t.EscrowSignals != nil {
		in.Signals = t.EscrowSignals.Clone()
	}
	t.PartnerConfirmed = true
	in.Signals.PartnerConfirmed = true
	res := m.pipeline.Compute(ctx, in)
	reward.Apply(ctx, in, res)

	t.Status = domain.TaskCompleted
	t.CompletedAt = &completedAt
	t.EscrowSignals = nil
	in.Character.IncrementCounter(domain.AchievementPartnerConfirmations, 1)
	if in.Bond != nil {
		bond.AddEXP(in.Bond, bond.ConfirmationBondEXP)
		res.BondEXP += bond.ConfirmationBondEXP
	}

	msg := LogMsgTaskConfirmed
	if confirmerID == uuid.Nil {
		msg = LogMsgTaskAutoConfirmed
	}
	logger.FromContext(ctx).Info(msg, "task_id", t.ID, "character_id", in.Character.ID, "exp", res.TotalEXP())
	return res, nil
}

// Dispute rejects an escrowed completion: the task returns to Pending,
// completion metadata is cleared and the computed rewards are discarded.
func (m *Machine) Dispute(ctx context.Context, t *domain.GameTask, disputerID uuid.UUID, b *domain.Bond, reason string) error {
	if t.Status != domain.TaskAwaitingPartner {
		return fmt.Errorf("%w: task %s is %s", domain.ErrTaskNotAwaitingPartner, t.ID, t.Status)
	}
	if !canConfirm(t, b, disputerID) {
		return domain.ErrNotTaskPartner
	}
	t.ClearCompletion()
	t.DisputeReason = reason
	logger.FromContext(ctx).Info(LogMsgTaskDisputed, "task_id", t.ID, "reason", reason)
	return nil
}

// DueForAutoConfirm reports whether an escrowed task passed the confirmation window
func DueForAutoConfirm(t *domain.GameTask, now time.Time) bool {
	if t.Status != domain.TaskAwaitingPartner || t.CompletedAt == nil {
		return false
	}
	return now.Sub(*t.CompletedAt) >= domain.EscrowAutoConfirmAfter
}

// ResetIfDue returns a completed recurring task to Pending once its window elapsed
func ResetIfDue(ctx context.Context, t *domain.GameTask, now time.Time) bool {
	if !t.RecurrenceElapsed(now) {
		return false
	}
	t.ClearCompletion()
	t.DisputeReason = ""
	logger.FromContext(ctx).Debug(LogMsgTaskReset, "task_id", t.ID, "recurrence", t.Recurrence)
	return true
}

func canConfirm(t *domain.GameTask, b *domain.Bond, actorID uuid.UUID) bool {
	if actorID == t.OwnerID {
		return false
	}
	if t.AssignedByID != nil && *t.AssignedByID == actorID {
		return true
	}
	return b.HasMember(actorID)
}
