package domain

import (
	"time"

	"github.com/google/uuid"
)

// Queries are conjunctions of simple equality and range predicates. A nil
// field does not constrain the result.

// CharacterQuery selects characters
type CharacterQuery struct {
	IDs []uuid.UUID
	// HasActiveMission selects characters with (true) or without (false) a running mission
	HasActiveMission *bool
	MissionDueBy     *time.Time
	// LastActiveBefore selects characters whose last active day sorts before the given day key
	LastActiveBefore *string
	MinStreak        *int
}

// Matches reports whether c satisfies every predicate
func (q CharacterQuery) Matches(c *PlayerCharacter) bool {
	if len(q.IDs) > 0 && !containsID(q.IDs, c.ID) {
		return false
	}
	if q.HasActiveMission != nil && (c.ActiveMission != nil) != *q.HasActiveMission {
		return false
	}
	if q.MissionDueBy != nil && (c.ActiveMission == nil || c.ActiveMission.CompletesAt.After(*q.MissionDueBy)) {
		return false
	}
	if q.LastActiveBefore != nil && (c.LastActiveDay == "" || c.LastActiveDay >= *q.LastActiveBefore) {
		return false
	}
	if q.MinStreak != nil && c.CurrentStreak < *q.MinStreak {
		return false
	}
	return true
}

// TaskQuery selects tasks
type TaskQuery struct {
	OwnerID         *uuid.UUID
	Status          *TaskStatus
	Recurring       *bool
	CompletedBefore *time.Time
	BundleID        *uuid.UUID
}

// Matches reports whether t satisfies every predicate
func (q TaskQuery) Matches(t *GameTask) bool {
	if q.OwnerID != nil && t.OwnerID != *q.OwnerID {
		return false
	}
	if q.Status != nil && t.Status != *q.Status {
		return false
	}
	if q.Recurring != nil && (t.Recurrence != RecurrenceNone && t.Recurrence != "") != *q.Recurring {
		return false
	}
	if q.CompletedBefore != nil && (t.CompletedAt == nil || !t.CompletedAt.Before(*q.CompletedBefore)) {
		return false
	}
	if q.BundleID != nil && (t.RoutineBundleID == nil || *t.RoutineBundleID != *q.BundleID) {
		return false
	}
	return true
}

// BondQuery selects bonds
type BondQuery struct {
	MemberID *uuid.UUID
}

// Matches reports whether b satisfies every predicate
func (q BondQuery) Matches(b *Bond) bool {
	if q.MemberID != nil && !b.HasMember(*q.MemberID) {
		return false
	}
	return true
}

// RunQuery selects dungeon runs
type RunQuery struct {
	CharacterID *uuid.UUID
	DungeonID   *string
	State       *RunState
}

// Matches reports whether r satisfies every predicate
func (q RunQuery) Matches(r *DungeonRun) bool {
	if q.CharacterID != nil && !containsID(r.PartyIDs, *q.CharacterID) {
		return false
	}
	if q.DungeonID != nil && r.DungeonID != *q.DungeonID {
		return false
	}
	if q.State != nil && r.State != *q.State {
		return false
	}
	return true
}

// Ptr returns a pointer to v, for building queries inline
func Ptr[T any](v T) *T {
	return &v
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, have := range ids {
		if have == id {
			return true
		}
	}
	return false
}
