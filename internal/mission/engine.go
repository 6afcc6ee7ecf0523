package mission

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/QuestForge_Go/internal/content"
	"github.com/osse101/QuestForge_Go/internal/domain"
	"github.com/osse101/QuestForge_Go/internal/leveling"
	"github.com/osse101/QuestForge_Go/internal/logger"
	"github.com/osse101/QuestForge_Go/internal/loot"
	"github.com/osse101/QuestForge_Go/internal/research"
	"github.com/osse101/QuestForge_Go/internal/utils"
)

// Engine runs the timed training state machine
type Engine struct {
	rng     utils.RNG
	content content.Provider
}

// NewEngine creates a mission engine
func NewEngine(rng utils.RNG, provider content.Provider) *Engine {
	return &Engine{rng: rng, content: provider}
}

// Resolution is what CheckCompletion hands back. Replayed is true when the
// mission was already claimed and the stored outcome is returned unchanged.
type Resolution struct {
	Mission  *domain.ActiveMission  `json:"mission"`
	Outcome  *domain.MissionOutcome `json:"outcome"`
	Replayed bool                   `json:"replayed"`
	LevelUp  leveling.LevelUpReport `json:"level_up"`
}

// Start begins a mission. Guards fail with a sentinel error and no mutation.
func (e *Engine) Start(ctx context.Context, m *domain.Mission, c *domain.PlayerCharacter, now time.Time) (*domain.ActiveMission, error) {
	if c.ActiveMission != nil {
		return nil, domain.ErrMissionAlreadyActive
	}
	if c.ActiveDungeonRunID != nil {
		return nil, domain.ErrActivityInProgress
	}
	if err := CheckRequirements(m, c, now); err != nil {
		return nil, err
	}

	active := &domain.ActiveMission{
		ID:          uuid.New(),
		MissionID:   m.ID,
		CharacterID: c.ID,
		StartedAt:   now,
		CompletesAt: now.Add(EffectiveDuration(m.Duration, c.Research.MissionDurationReduction)),
	}
	c.ActiveMission = active
	c.UpdatedAt = now

	logger.FromContext(ctx).Info(LogMsgMissionStarted,
		"character_id", c.ID,
		"mission", m.ID,
		"completes_at", active.CompletesAt)
	return active, nil
}

// CheckRequirements validates level, stat and class gates
func CheckRequirements(m *domain.Mission, c *domain.PlayerCharacter, now time.Time) error {
	if c.Level < m.RequiredLevel {
		return fmt.Errorf("%w: level %d required", domain.ErrRequirementsNotMet, m.RequiredLevel)
	}
	eff := c.EffectiveStats(now)
	for stat, need := range m.StatRequirements {
		if eff.Get(stat) < need {
			return fmt.Errorf("%w: %s %d required", domain.ErrRequirementsNotMet, stat, need)
		}
	}
	if m.IsRankUp() && !c.Class.CanRankUpTo(m.RankUpTo) {
		return fmt.Errorf("%w: %s cannot become %s", domain.ErrClassTransitionNotAllowed, c.Class, m.RankUpTo)
	}
	return nil
}

// EffectiveDuration shortens a duration by the research reduction, at most half
func EffectiveDuration(d time.Duration, reduction float64) time.Duration {
	reduction = utils.Clamp(reduction, 0, research.MaxDurationReduction)
	return time.Duration(math.Round(float64(d) * (1 - reduction)))
}

// SuccessRate is base + 2% per point of the primary stat above the requirement
// (negative below it) + research bonus, clamped to [5%, 95%]
func SuccessRate(m *domain.Mission, eff domain.Stats, bonuses domain.ResearchBonuses) float64 {
	margin := eff.Get(m.PrimaryStat) - m.StatRequirements[m.PrimaryStat]
	rate := m.BaseSuccessRate + SuccessPerStatPoint*float64(margin) + bonuses.MissionSuccessBonus
	return utils.Clamp(rate, MinSuccessRate, MaxSuccessRate)
}

// EquipmentChance is the success drop chance for a given Luck
func EquipmentChance(luck int) float64 {
	return math.Min(EquipmentBaseChance+EquipmentChancePerLuck*float64(max(luck, 0)), EquipmentChanceCap)
}

// CheckCompletion resolves the active mission once its deadline passed.
// It returns nil while the mission is still running or when there is nothing
// to resolve, and the stored outcome when called again after the claim.
func (e *Engine) CheckCompletion(ctx context.Context, m *domain.Mission, c *domain.PlayerCharacter, now time.Time) (*Resolution, error) {
	active := c.ActiveMission
	if active == nil {
		if last := c.LastMission; last != nil && last.Claimed && last.MissionID == m.ID {
			return &Resolution{Mission: last, Outcome: last.Outcome, Replayed: true}, nil
		}
		return nil, nil
	}
	if active.MissionID != m.ID {
		return nil, fmt.Errorf("%w: active mission is %s", domain.ErrInvalidInput, active.MissionID)
	}
	if active.StateAt(now) != domain.MissionComplete {
		return nil, nil
	}

	outcome := e.roll(ctx, m, c, now)
	report := e.apply(c, m, outcome)
	outcome.LevelsGained = report.LevelsGained()

	active.Claimed = true
	active.Outcome = outcome
	c.LastMission = active
	c.ActiveMission = nil
	c.UpdatedAt = now

	logger.FromContext(ctx).Info(LogMsgMissionResolved,
		"character_id", c.ID,
		"mission", m.ID,
		"success", outcome.Success,
		"roll", outcome.Roll,
		"rate", outcome.SuccessRate,
		"exp", outcome.EXP)
	return &Resolution{Mission: active, Outcome: outcome, LevelUp: report}, nil
}

// roll draws, in order: success, stat gain, equipment, research tokens
func (e *Engine) roll(ctx context.Context, m *domain.Mission, c *domain.PlayerCharacter, now time.Time) *domain.MissionOutcome {
	eff := c.EffectiveStats(now)
	out := &domain.MissionOutcome{
		MissionID:   m.ID,
		SuccessRate: SuccessRate(m, eff, c.Research),
		ResolvedAt:  now,
	}
	out.Roll = e.rng.Float64()
	out.Success = out.Roll <= out.SuccessRate

	if !out.Success {
		out.EXP = utils.RoundInt(float64(m.BaseEXP) * ConsolationShare)
		out.Gold = utils.RoundInt(float64(m.BaseGold) * ConsolationShare)
		return out
	}

	out.EXP = m.BaseEXP
	out.Gold = m.BaseGold

	if e.rng.Float64() < StatGainChance {
		out.StatGain = m.PrimaryStat
	}
	if e.rng.Float64() < EquipmentChance(eff.Luck) {
		tables := content.Defaults()
		if e.content != nil {
			tables = e.content.Tables(ctx)
		}
		eq := loot.NewEquipment(e.rng, tables.RarityWeights.Pick(e.rng, loot.LuckShift(eff.Luck)))
		out.Equipment = &eq
	}
	if chance, count := TokenDrop(m.Rarity); e.rng.Float64() < chance {
		out.ResearchTokens = count
	}
	if m.IsRankUp() {
		out.NewClass = m.RankUpTo
	}
	return out
}

func (e *Engine) apply(c *domain.PlayerCharacter, m *domain.Mission, out *domain.MissionOutcome) leveling.LevelUpReport {
	report := leveling.ApplyEXP(c, out.EXP)
	c.AddGold(out.Gold)
	c.Daily.GoldEarned += out.Gold

	if !out.Success {
		return report
	}
	c.MissionsCompleted++
	if out.StatGain != domain.StatUnknown {
		c.Stats.Add(out.StatGain, 1)
	}
	if out.Equipment != nil {
		loot.Apply(c, domain.LootDrop{Kind: domain.LootEquipment, Quantity: 1, Equipment: out.Equipment})
	}
	c.Inventory.ResearchTokens += out.ResearchTokens
	if out.NewClass != domain.ClassUnknown {
		c.Class = out.NewClass
	}
	return report
}
