package dungeon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/QuestForge_Go/internal/bond"
	"github.com/osse101/QuestForge_Go/internal/domain"
)

var now = time.Date(2025, time.July, 3, 18, 0, 0, 0, time.UTC)

func TestRoomChance(t *testing.T) {
	none := ProfileFor(domain.ApproachNone)

	tests := []struct {
		name     string
		power    float64
		diff     float64
		size     int
		tier     int
		approach ApproachProfile
		research float64
		penalty  float64
		want     float64
	}{
		{"even match solo clamps to cap", 10, 10, 1, 1, none, 0, 0, 0.95},
		{"party size raises difficulty", 10, 10, 2, 1, none, 0, 0, 10.0 / 15.0},
		{"cautious", 6, 10, 1, 1, ProfileFor(domain.ApproachCautious), 0, 0, 0.69},
		{"aggressive", 6, 10, 1, 1, ProfileFor(domain.ApproachAggressive), 0, 0, 0.51},
		{"research and penalty", 5, 10, 1, 1, none, 0.05, 0.2, 0.35},
		{"tier one floor", 0, 10, 1, 1, none, 0, 0, 0.25},
		{"tier three floor", 0, 10, 1, 3, none, 0, 0, 0.10},
		{"tier above five uses last floor", 0, 10, 1, 9, none, 0, 0, 0.02},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RoomChance(tt.power, tt.diff, tt.size, tt.tier, tt.approach, tt.research, tt.penalty)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestPartyPower(t *testing.T) {
	combat := domain.Room{Encounter: domain.EncounterCombat, PrimaryStat: domain.StatStrength}
	warrior := domain.NewCharacter("bram", domain.ClassWarrior)
	cleric := domain.NewCharacter("ines", domain.ClassCleric)
	mage := domain.NewCharacter("oro", domain.ClassMage)

	assert.InDelta(t, 10.0, PartyPower(combat, []*domain.PlayerCharacter{warrior}, now), 1e-9)
	assert.InDelta(t, 3.0, PartyPower(combat, []*domain.PlayerCharacter{mage}, now), 1e-9)
	assert.InDelta(t, 15.4, PartyPower(combat, []*domain.PlayerCharacter{warrior, cleric}, now), 1e-9)
}

func TestMitigation(t *testing.T) {
	warrior := domain.NewCharacter("bram", domain.ClassWarrior)
	cleric := domain.NewCharacter("ines", domain.ClassCleric)
	mage := domain.NewCharacter("oro", domain.ClassMage)

	assert.Zero(t, Mitigation([]*domain.PlayerCharacter{mage}, nil))
	assert.InDelta(t, 0.40, Mitigation([]*domain.PlayerCharacter{warrior, cleric}, nil), 1e-9)

	tanks := []*domain.PlayerCharacter{warrior, warrior, warrior, cleric}
	assert.InDelta(t, MaxMitigation, Mitigation(tanks, nil), 1e-9)

	oath := bond.New(warrior.ID, mage.ID)
	oath.Perks = append(oath.Perks, domain.PerkGuardianOath)
	assert.InDelta(t, 0.40, Mitigation([]*domain.PlayerCharacter{warrior, mage}, oath), 1e-9)
}

func TestRoomDamage(t *testing.T) {
	none := ProfileFor(domain.ApproachNone)

	assert.Equal(t, 20, RoomDamage(30, 10, 1, none, 0))
	assert.Equal(t, 5, RoomDamage(10, 12, 1, none, 0), "floor of five damage")
	assert.Equal(t, 26, RoomDamage(30, 10, 2, ProfileFor(domain.ApproachAggressive), 0.3))
	assert.Equal(t, 5, RoomDamage(30, 10, 1, none, 0.9), "mitigation capped")
}

func TestPartyHP(t *testing.T) {
	warrior := domain.NewCharacter("bram", domain.ClassWarrior)
	assert.Equal(t, 137, PartyHP([]*domain.PlayerCharacter{warrior}, now))

	expires := now.Add(time.Hour)
	warrior.RegenBuffExpiresAt = &expires
	assert.Equal(t, 151, PartyHP([]*domain.PlayerCharacter{warrior}, now))
}

func TestReadiness(t *testing.T) {
	d := &domain.Dungeon{MinStats: map[domain.StatType]int{domain.StatStrength: 6}}
	warrior := domain.NewCharacter("bram", domain.ClassWarrior)
	mage := domain.NewCharacter("oro", domain.ClassMage)

	readiness, penalty := Readiness(d, []*domain.PlayerCharacter{warrior}, now)
	assert.InDelta(t, 1.0, readiness, 1e-9)
	assert.Zero(t, penalty)

	readiness, penalty = Readiness(d, []*domain.PlayerCharacter{mage}, now)
	assert.InDelta(t, 0.5, readiness, 1e-9)
	assert.InDelta(t, 0.2, penalty, 1e-9)

	readiness, _ = Readiness(d, []*domain.PlayerCharacter{mage, warrior}, now)
	assert.InDelta(t, 1.0, readiness, 1e-9, "best stat in the party counts")

	readiness, penalty = Readiness(&domain.Dungeon{}, []*domain.PlayerCharacter{mage}, now)
	assert.InDelta(t, 1.0, readiness, 1e-9)
	assert.Zero(t, penalty)
}

func TestReadiness_IgnoresZeroMinimums(t *testing.T) {
	d := &domain.Dungeon{MinStats: map[domain.StatType]int{domain.StatStrength: 10, domain.StatWisdom: 0}}

	readiness, penalty := Readiness(d, nil, now)
	assert.InDelta(t, 0.0, readiness, 1e-9)
	assert.InDelta(t, 0.4, penalty, 1e-9)

	d.MinStats = map[domain.StatType]int{domain.StatWisdom: 0, domain.StatLuck: -1}
	readiness, penalty = Readiness(d, nil, now)
	assert.InDelta(t, 1.0, readiness, 1e-9)
	assert.Zero(t, penalty)
}

func TestScoreAndGrade(t *testing.T) {
	tests := []struct {
		score float64
		grade domain.Grade
		mult  float64
	}{
		{1.0, domain.GradeS, 1.5},
		{0.85, domain.GradeA, 1.25},
		{0.7, domain.GradeB, 1.0},
		{0.55, domain.GradeC, 0.85},
		{0.4, domain.GradeD, 0.7},
		{0.2, domain.GradeF, 0.5},
	}
	for _, tt := range tests {
		grade, mult := GradeFor(tt.score)
		assert.Equal(t, tt.grade, grade, "score %v", tt.score)
		assert.InDelta(t, tt.mult, mult, 1e-9)
	}

	assert.InDelta(t, 1.0, Score(4, 4, 100, 100, 1), 1e-9)
	assert.InDelta(t, 0.5*0.5+0.3*0.25+0.2*0.5, Score(2, 4, 25, 100, 0.5), 1e-9)
	assert.InDelta(t, 0.2, Score(0, 0, 0, 0, 1), 1e-9)
}

func TestSecretChance(t *testing.T) {
	assert.InDelta(t, 0.03, SecretChance(0), 1e-9)
	assert.InDelta(t, 0.05, SecretChance(10), 1e-9)
	assert.InDelta(t, SecretChanceCap, SecretChance(500), 1e-9)
}
