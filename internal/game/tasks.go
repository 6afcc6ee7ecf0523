package game

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/osse101/QuestForge_Go/internal/domain"
	"github.com/osse101/QuestForge_Go/internal/event"
	"github.com/osse101/QuestForge_Go/internal/logger"
	"github.com/osse101/QuestForge_Go/internal/repository"
	"github.com/osse101/QuestForge_Go/internal/reward"
	"github.com/osse101/QuestForge_Go/internal/task"
)

func (s *service) CreateTask(ctx context.Context, t *domain.GameTask) (*domain.GameTask, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: task is required", domain.ErrInvalidInput)
	}
	t.Title = strings.TrimSpace(t.Title)
	switch {
	case t.Title == "":
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	case !t.Category.IsValid():
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrInvalidInput, t.Category)
	case t.BaseEXP < 0 || t.BaseGold < 0:
		return nil, fmt.Errorf("%w: rewards must not be negative", domain.ErrInvalidInput)
	}
	if _, err := s.store.GetCharacter(ctx, t.OwnerID); err != nil {
		return nil, err
	}
	if t.AssignedByID != nil {
		if *t.AssignedByID == t.OwnerID {
			return nil, fmt.Errorf("%w: a task cannot be assigned to its owner", domain.ErrInvalidInput)
		}
		t.IsFromPartner = true
	}
	if t.Verification == "" {
		t.Verification = domain.VerificationNone
	}
	if t.Recurrence == "" {
		t.Recurrence = domain.RecurrenceNone
	}
	if t.IsCoopDuty && t.CoopBonus == domain.CoopBonusNotApplicable {
		t.CoopBonus = domain.CoopBonusPending
	}

	now := s.now()
	t.ID = uuid.New()
	t.Status = domain.TaskPending
	t.PartnerConfirmed = false
	t.CompletedAt, t.CompletedBy = nil, nil
	t.CreatedAt = now
	if err := s.store.UpsertTask(ctx, t); err != nil {
		return nil, err
	}

	fx := &effects{}
	fx.capture(domain.SnapshotTask, t.ID, t, now)
	s.flush(ctx, fx)
	logger.FromContext(ctx).Info(LogMsgTaskCreated, "task_id", t.ID, "owner_id", t.OwnerID)
	return t, nil
}

func (s *service) CreateBundle(ctx context.Context, b *domain.RoutineBundle) (*domain.RoutineBundle, error) {
	if b == nil || len(b.TaskIDs) == 0 {
		return nil, fmt.Errorf("%w: a bundle needs tasks", domain.ErrInvalidInput)
	}
	if b.PerHabitEXP < 0 {
		return nil, fmt.Errorf("%w: per-habit EXP must not be negative", domain.ErrInvalidInput)
	}

	unlock := s.locks.LockAll(b.OwnerID)
	defer unlock()

	b.ID = uuid.New()
	b.LastAwardedDay = ""
	err := repository.WithTx(ctx, s.store, func(tx repository.Tx) error {
		for _, id := range b.TaskIDs {
			t, err := tx.GetTask(ctx, id)
			if err != nil {
				return err
			}
			if t.OwnerID != b.OwnerID {
				return fmt.Errorf("%w: task %s belongs to another character", domain.ErrInvalidInput, id)
			}
			bundleID := b.ID
			t.RoutineBundleID = &bundleID
			if err := tx.UpsertTask(ctx, t); err != nil {
				return err
			}
		}
		return tx.UpsertBundle(ctx, b)
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) ListTasks(ctx context.Context, ownerID uuid.UUID) ([]*domain.GameTask, error) {
	return s.store.FindTasks(ctx, domain.TaskQuery{OwnerID: &ownerID})
}

// taskScope is everything a task transition reads and may write
type taskScope struct {
	task        *domain.GameTask
	character   *domain.PlayerCharacter
	bond        *domain.Bond
	bundle      *domain.RoutineBundle
	bundleTasks []*domain.GameTask
}

func (sc *taskScope) input(signals reward.Signals, now time.Time) reward.Input {
	return reward.Input{
		Task:        sc.task,
		Character:   sc.character,
		Bond:        sc.bond,
		Signals:     signals,
		Bundle:      sc.bundle,
		BundleTasks: sc.bundleTasks,
		Now:         now,
	}
}

// lockTask serializes on the task owner and the owner's bond. The owner and
// bond are looked up before locking and re-read inside the transaction.
func (s *service) lockTask(ctx context.Context, taskID uuid.UUID) (func(), error) {
	t, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	ids := []uuid.UUID{t.OwnerID}
	if b, err := bondFor(ctx, s.store, t.OwnerID); err != nil {
		return nil, err
	} else if b != nil {
		ids = append(ids, b.ID)
	}
	return s.locks.LockAll(ids...), nil
}

func (s *service) loadTaskScope(ctx context.Context, tx repository.Tx, taskID uuid.UUID) (*taskScope, error) {
	t, err := tx.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	c, err := tx.GetCharacter(ctx, t.OwnerID)
	if err != nil {
		return nil, err
	}
	b, err := bondFor(ctx, tx, t.OwnerID)
	if err != nil {
		return nil, err
	}
	sc := &taskScope{task: t, character: c, bond: b}
	if t.RoutineBundleID != nil {
		bundle, err := tx.GetBundle(ctx, *t.RoutineBundleID)
		if err != nil {
			return nil, err
		}
		members, err := tx.FindTasks(ctx, domain.TaskQuery{BundleID: t.RoutineBundleID})
		if err != nil {
			return nil, err
		}
		sc.bundle, sc.bundleTasks = bundle, members
	}
	return sc, nil
}

// saveApplied persists a scope whose reward was applied and records its effects
func (s *service) saveApplied(ctx context.Context, tx repository.Tx, sc *taskScope, res *reward.Result, fx *effects, oldLevel, oldBondLevel int, oldPerks []domain.Perk) error {
	now := s.now()
	s.progress(ctx, fx, sc.character, oldLevel, SourceTask, now)
	if err := tx.UpsertCharacter(ctx, sc.character); err != nil {
		return err
	}
	if err := tx.UpsertTask(ctx, sc.task); err != nil {
		return err
	}
	fx.capture(domain.SnapshotTask, sc.task.ID, sc.task, now)
	if sc.bond != nil {
		if err := tx.UpsertBond(ctx, sc.bond); err != nil {
			return err
		}
		bondProgress(fx, sc.bond, oldBondLevel, oldPerks, now)
	}
	if sc.bundle != nil && res.BundleBonusEXP > 0 {
		if err := tx.UpsertBundle(ctx, sc.bundle); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) CompleteTask(ctx context.Context, taskID, actorID uuid.UUID, signals reward.Signals) (res *reward.Result, err error) {
	ctx, span := s.startSpan(ctx, spanCompleteTask, attribute.String("task.id", taskID.String()))
	defer func() { endSpan(span, err) }()

	unlock, err := s.lockTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	fx := &effects{}
	err = repository.WithTx(ctx, s.store, func(tx repository.Tx) error {
		sc, err := s.loadTaskScope(ctx, tx, taskID)
		if err != nil {
			return err
		}
		actor := actorID
		if actor == uuid.Nil {
			actor = sc.task.OwnerID
		}
		if actor != sc.task.OwnerID {
			return fmt.Errorf("%w: only the owner completes a task", domain.ErrInvalidInput)
		}

		oldLevel := sc.character.Level
		oldBondLevel, oldPerks := bondState(sc.bond)
		r, err := s.tasks.Complete(ctx, sc.input(signals, s.now()), actor)
		if err != nil {
			return err
		}
		res = r

		if r.PendingConfirmation {
			fx.emit(event.NewTaskEvent(event.TaskEscrowed, sc.character.ID, sc.task, r.TotalEXP(), r.TotalGold(), ""))
			fx.capture(domain.SnapshotTask, sc.task.ID, sc.task, s.now())
			return tx.UpsertTask(ctx, sc.task)
		}
		fx.emit(event.NewTaskEvent(event.TaskCompleted, sc.character.ID, sc.task, r.TotalEXP(), r.TotalGold(), ""))
		return s.saveApplied(ctx, tx, sc, r, fx, oldLevel, oldBondLevel, oldPerks)
	})
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Bool("task.escrowed", res.PendingConfirmation), attribute.Int("reward.exp", res.TotalEXP()))
	s.flush(ctx, fx)
	return res, nil
}

func (s *service) ConfirmTask(ctx context.Context, taskID, confirmerID uuid.UUID) (res *reward.Result, err error) {
	ctx, span := s.startSpan(ctx, spanConfirmTask, attribute.String("task.id", taskID.String()))
	defer func() { endSpan(span, err) }()

	unlock, err := s.lockTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	defer unlock()
	return s.confirmLocked(ctx, taskID, confirmerID)
}

// confirmLocked expects the caller to hold the task lock
func (s *service) confirmLocked(ctx context.Context, taskID, confirmerID uuid.UUID) (*reward.Result, error) {
	fx := &effects{}
	var res *reward.Result
	err := repository.WithTx(ctx, s.store, func(tx repository.Tx) error {
		sc, err := s.loadTaskScope(ctx, tx, taskID)
		if err != nil {
			return err
		}
		oldLevel := sc.character.Level
		oldBondLevel, oldPerks := bondState(sc.bond)
		// signals come from the task's escrow copy
		r, err := s.tasks.Confirm(ctx, sc.input(reward.Signals{}, s.now()), confirmerID)
		if err != nil {
			return err
		}
		res = r
		reason := ""
		if confirmerID == uuid.Nil {
			reason = "auto"
		}
		fx.emit(event.NewTaskEvent(event.TaskConfirmed, sc.character.ID, sc.task, r.TotalEXP(), r.TotalGold(), reason))
		return s.saveApplied(ctx, tx, sc, r, fx, oldLevel, oldBondLevel, oldPerks)
	})
	if err != nil {
		return nil, err
	}
	s.flush(ctx, fx)
	return res, nil
}

func (s *service) DisputeTask(ctx context.Context, taskID, disputerID uuid.UUID, reason string) (out *domain.GameTask, err error) {
	ctx, span := s.startSpan(ctx, spanDisputeTask, attribute.String("task.id", taskID.String()))
	defer func() { endSpan(span, err) }()

	unlock, err := s.lockTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	fx := &effects{}
	err = repository.WithTx(ctx, s.store, func(tx repository.Tx) error {
		t, err := tx.GetTask(ctx, taskID)
		if err != nil {
			return err
		}
		b, err := bondFor(ctx, tx, t.OwnerID)
		if err != nil {
			return err
		}
		if err := s.tasks.Dispute(ctx, t, disputerID, b, strings.TrimSpace(reason)); err != nil {
			return err
		}
		out = t
		fx.emit(event.NewTaskEvent(event.TaskDisputed, t.OwnerID, t, 0, 0, t.DisputeReason))
		fx.capture(domain.SnapshotTask, t.ID, t, s.now())
		return tx.UpsertTask(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	s.flush(ctx, fx)
	return out, nil
}

// SweepEscrow auto-confirms every escrowed task past the confirmation window.
// One failing task does not stop the sweep.
func (s *service) SweepEscrow(ctx context.Context) (confirmed int, err error) {
	ctx, span := s.startSpan(ctx, spanSweepEscrow)
	defer func() { endSpan(span, err) }()

	now := s.now()
	status := domain.TaskAwaitingPartner
	escrowed, err := s.store.FindTasks(ctx, domain.TaskQuery{Status: &status})
	if err != nil {
		return 0, err
	}
	log := logger.FromContext(ctx)
	for _, t := range escrowed {
		if !task.DueForAutoConfirm(t, now) {
			continue
		}
		if err := s.sweepOne(ctx, t.ID); err != nil {
			log.Warn(LogMsgEscrowSweepFailed, "task_id", t.ID, "error", err)
			continue
		}
		confirmed++
	}
	log.Info(LogMsgEscrowSweepDone, "confirmed", confirmed, "escrowed", len(escrowed))
	return confirmed, nil
}

func (s *service) sweepOne(ctx context.Context, taskID uuid.UUID) error {
	unlock, err := s.lockTask(ctx, taskID)
	if err != nil {
		return err
	}
	defer unlock()
	// Re-check under the lock: a partner may have confirmed or disputed meanwhile
	t, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return err
	}
	if !task.DueForAutoConfirm(t, s.now()) {
		return nil
	}
	_, err = s.confirmLocked(ctx, taskID, uuid.Nil)
	return err
}

// ResetRecurring returns completed recurring tasks to pending once their
// window elapsed. It satisfies worker.DailyResetter.
func (s *service) ResetRecurring(ctx context.Context, now time.Time) (reset int, err error) {
	ctx, span := s.startSpan(ctx, spanResetRecurring)
	defer func() { endSpan(span, err) }()

	now = now.In(s.location)
	status := domain.TaskCompleted
	done, err := s.store.FindTasks(ctx, domain.TaskQuery{Status: &status, Recurring: domain.Ptr(true)})
	if err != nil {
		return 0, err
	}

	fx := &effects{}
	for _, t := range done {
		unlock := s.locks.LockAll(t.OwnerID)
		err := repository.WithTx(ctx, s.store, func(tx repository.Tx) error {
			cur, err := tx.GetTask(ctx, t.ID)
			if err != nil {
				return err
			}
			if !task.ResetIfDue(ctx, cur, now) {
				return nil
			}
			reset++
			fx.capture(domain.SnapshotTask, cur.ID, cur, now)
			return tx.UpsertTask(ctx, cur)
		})
		unlock()
		if err != nil {
			return reset, err
		}
	}
	s.flush(ctx, fx)
	logger.FromContext(ctx).Info(LogMsgRecurringResetDone, "reset", reset, "checked", len(done))
	return reset, nil
}
