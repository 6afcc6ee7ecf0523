package domain

import (
	"time"

	"github.com/google/uuid"
)

// TaskCategory groups real-world tasks; each category feeds one bonus stat
type TaskCategory string

const (
	CategoryPhysical  TaskCategory = "physical"
	CategoryMental    TaskCategory = "mental"
	CategorySocial    TaskCategory = "social"
	CategoryHousehold TaskCategory = "household"
	CategoryWellness  TaskCategory = "wellness"
	CategoryCreative  TaskCategory = "creative"
	CategoryWork      TaskCategory = "work"
)

var categoryStats = map[TaskCategory]StatType{
	CategoryPhysical:  StatStrength,
	CategoryMental:    StatWisdom,
	CategorySocial:    StatCharisma,
	CategoryHousehold: StatDefense,
	CategoryWellness:  StatDexterity,
	CategoryCreative:  StatLuck,
	CategoryWork:      StatWisdom,
}

// BonusStat returns the stat a completion of this category may raise
func (c TaskCategory) BonusStat() StatType {
	if st, ok := categoryStats[c]; ok {
		return st
	}
	return StatUnknown
}

// IsValid reports whether the category is known
func (c TaskCategory) IsValid() bool {
	_, ok := categoryStats[c]
	return ok
}

// VerificationType is how a completion is proven
type VerificationType string

const (
	VerificationNone     VerificationType = "none"
	VerificationPhoto    VerificationType = "photo"
	VerificationLocation VerificationType = "location"
	VerificationBoth     VerificationType = "both"
)

// Recurrence controls when a completed task returns to pending
type Recurrence string

const (
	RecurrenceNone   Recurrence = "none"
	RecurrenceDaily  Recurrence = "daily"
	RecurrenceWeekly Recurrence = "weekly"
)

// TaskStatus is the lifecycle state of a GameTask
type TaskStatus string

const (
	TaskPending         TaskStatus = "pending"
	TaskAwaitingPartner TaskStatus = "awaiting_partner"
	TaskCompleted       TaskStatus = "completed"
)

// CoopBonusState tracks the once-per-task co-op duty bonus
type CoopBonusState string

const (
	CoopBonusNotApplicable CoopBonusState = ""
	CoopBonusPending       CoopBonusState = "pending"
	CoopBonusAwarded       CoopBonusState = "awarded"
)

// VerificationSignals are the optional verification inputs collected with a completion
type VerificationSignals struct {
	GeofencePassed        bool     `json:"geofence_passed"`
	DeviceHealthConfirmed bool     `json:"device_health_confirmed"`
	AnomalyFlags          []string `json:"anomaly_flags,omitempty"`
	PartnerConfirmed      bool     `json:"partner_confirmed"`
}

// Clone returns a copy that shares no slice storage with s
func (s VerificationSignals) Clone() VerificationSignals {
	if s.AnomalyFlags != nil {
		s.AnomalyFlags = append([]string(nil), s.AnomalyFlags...)
	}
	return s
}

// GameTask is one completable unit of real-world behavior
type GameTask struct {
	ID               uuid.UUID        `json:"id"`
	OwnerID          uuid.UUID        `json:"owner_id"`
	AssignedByID     *uuid.UUID       `json:"assigned_by_id,omitempty"`
	Title            string           `json:"title"`
	Category         TaskCategory     `json:"category"`
	BaseEXP          int              `json:"base_exp"`
	BaseGold         int              `json:"base_gold"`
	Verification     VerificationType `json:"verification"`
	IsHabit          bool             `json:"is_habit"`
	Recurrence       Recurrence       `json:"recurrence"`
	IsFromPartner    bool             `json:"is_from_partner"`
	IsCoopDuty       bool             `json:"is_coop_duty"`
	CoopBonus        CoopBonusState   `json:"coop_bonus,omitempty"`
	RoutineBundleID  *uuid.UUID       `json:"routine_bundle_id,omitempty"`
	Status           TaskStatus       `json:"status"`
	PartnerConfirmed bool             `json:"partner_confirmed"`
	CompletedAt      *time.Time       `json:"completed_at,omitempty"`
	CompletedBy      *uuid.UUID       `json:"completed_by,omitempty"`
	DisputeReason    string           `json:"dispute_reason,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`

	// EscrowSignals holds the completion's signals while rewards await the partner
	EscrowSignals *VerificationSignals `json:"escrow_signals,omitempty"`
}

// RequiresEscrow reports whether completing the task must hold rewards until
// the partner confirms
func (t *GameTask) RequiresEscrow(bond *Bond) bool {
	return t.IsFromPartner && bond != nil && !t.PartnerConfirmed
}

// RecurrenceElapsed reports whether a completed recurring task is due again
func (t *GameTask) RecurrenceElapsed(now time.Time) bool {
	if t.Status != TaskCompleted || t.CompletedAt == nil {
		return false
	}
	done := t.CompletedAt.In(now.Location())
	switch t.Recurrence {
	case RecurrenceDaily:
		return DayKey(done) != DayKey(now)
	case RecurrenceWeekly:
		y1, w1 := done.ISOWeek()
		y2, w2 := now.ISOWeek()
		return y1 != y2 || w1 != w2
	default:
		return false
	}
}

// ClearCompletion returns the task to pending and drops completion metadata
func (t *GameTask) ClearCompletion() {
	t.Status = TaskPending
	t.PartnerConfirmed = false
	t.CompletedAt = nil
	t.CompletedBy = nil
	t.EscrowSignals = nil
}

// RoutineBundle is a themed set of habits that pays a bonus when all are done in a day
type RoutineBundle struct {
	ID             uuid.UUID   `json:"id"`
	OwnerID        uuid.UUID   `json:"owner_id"`
	Theme          string      `json:"theme"`
	TaskIDs        []uuid.UUID `json:"task_ids"`
	PerHabitEXP    int         `json:"per_habit_exp"`
	LastAwardedDay string      `json:"last_awarded_day,omitempty"`
}

// Contains reports whether the bundle includes the task
func (b *RoutineBundle) Contains(taskID uuid.UUID) bool {
	for _, id := range b.TaskIDs {
		if id == taskID {
			return true
		}
	}
	return false
}

// DayKey formats the calendar day of t in its own location
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
