package domain

import (
	"time"

	"github.com/google/uuid"
)

// Mission is a timed training definition a character can start
type Mission struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Rarity           Rarity           `json:"rarity"`
	Duration         time.Duration    `json:"duration"`
	RequiredLevel    int              `json:"required_level"`
	StatRequirements map[StatType]int `json:"stat_requirements,omitempty"`
	PrimaryStat      StatType         `json:"primary_stat"`
	BaseSuccessRate  float64          `json:"base_success_rate"`
	BaseEXP          int              `json:"base_exp"`
	BaseGold         int              `json:"base_gold"`
	RankUpTo         CharacterClass   `json:"rank_up_to,omitempty"`
}

// IsRankUp reports whether success transitions the character's class
func (m *Mission) IsRankUp() bool {
	return m.RankUpTo != ClassUnknown
}

// MissionState is the explicit lifecycle of an ActiveMission
type MissionState string

const (
	MissionRunning  MissionState = "running"
	MissionComplete MissionState = "complete"
	MissionClaimed  MissionState = "claimed"
)

// ActiveMission is the single in-flight training session of a character
type ActiveMission struct {
	ID          uuid.UUID       `json:"id"`
	MissionID   string          `json:"mission_id"`
	CharacterID uuid.UUID       `json:"character_id"`
	StartedAt   time.Time       `json:"started_at"`
	CompletesAt time.Time       `json:"completes_at"`
	Claimed     bool            `json:"claimed"`
	Outcome     *MissionOutcome `json:"outcome,omitempty"`
}

// StateAt derives the state from the claim flag and the deadline
func (m *ActiveMission) StateAt(now time.Time) MissionState {
	switch {
	case m.Claimed:
		return MissionClaimed
	case !now.Before(m.CompletesAt):
		return MissionComplete
	default:
		return MissionRunning
	}
}

// Remaining returns the time left before the deadline, never negative
func (m *ActiveMission) Remaining(now time.Time) time.Duration {
	d := m.CompletesAt.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

func (m *ActiveMission) clone() *ActiveMission {
	if m == nil {
		return nil
	}
	cp := *m
	if m.Outcome != nil {
		o := *m.Outcome
		if o.Equipment != nil {
			eq := *o.Equipment
			o.Equipment = &eq
		}
		cp.Outcome = &o
	}
	return &cp
}

// MissionOutcome is the resolved result of a mission
type MissionOutcome struct {
	MissionID      string         `json:"mission_id"`
	Success        bool           `json:"success"`
	Roll           float64        `json:"roll"`
	SuccessRate    float64        `json:"success_rate"`
	EXP            int            `json:"exp"`
	Gold           int            `json:"gold"`
	StatGain       StatType       `json:"stat_gain,omitempty"`
	Equipment      *Equipment     `json:"equipment,omitempty"`
	ResearchTokens int            `json:"research_tokens"`
	NewClass       CharacterClass `json:"new_class,omitempty"`
	LevelsGained   int            `json:"levels_gained"`
	ResolvedAt     time.Time      `json:"resolved_at"`
}
