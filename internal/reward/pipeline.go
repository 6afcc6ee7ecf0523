package reward

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/QuestForge_Go/internal/bond"
	"github.com/osse101/QuestForge_Go/internal/content"
	"github.com/osse101/QuestForge_Go/internal/domain"
	"github.com/osse101/QuestForge_Go/internal/leveling"
	"github.com/osse101/QuestForge_Go/internal/logger"
	"github.com/osse101/QuestForge_Go/internal/loot"
	"github.com/osse101/QuestForge_Go/internal/utils"
)

// Input is everything one task completion is priced from
type Input struct {
	Task      *domain.GameTask
	Character *domain.PlayerCharacter
	Bond      *domain.Bond
	Signals   Signals

	// Bundle is the routine bundle the task belongs to, if any, and
	// BundleTasks its member tasks as currently stored.
	Bundle      *domain.RoutineBundle
	BundleTasks []*domain.GameTask

	Now time.Time
}

// StageRecord captures the running totals right after one stage
type StageRecord struct {
	Stage      Stage   `json:"stage"`
	EXPFactor  float64 `json:"exp_factor"`
	GoldFactor float64 `json:"gold_factor"`
	EXP        float64 `json:"exp"`
	Gold       float64 `json:"gold"`
}

// StatGain is one awarded stat increment
type StatGain struct {
	Stat   domain.StatType `json:"stat"`
	Amount int             `json:"amount"`
	Source string          `json:"source"`
}

// Result is the structured outcome of pricing one completion
type Result struct {
	TaskID              uuid.UUID               `json:"task_id"`
	BaseEXP             int                     `json:"base_exp"`
	BaseGold            int                     `json:"base_gold"`
	VerificationTier    float64                 `json:"verification_tier"`
	Stages              []StageRecord           `json:"stages"`
	ChainEXP            int                     `json:"chain_exp"`
	ChainGold           int                     `json:"chain_gold"`
	CoopBonus           bool                    `json:"coop_bonus"`
	CoopEXP             int                     `json:"coop_exp"`
	CoopGold            int                     `json:"coop_gold"`
	BondEXP             int                     `json:"bond_exp"`
	StatGains           []StatGain              `json:"stat_gains,omitempty"`
	Loot                domain.LootDrop         `json:"loot"`
	BundleBonusEXP      int                     `json:"bundle_bonus_exp"`
	PendingConfirmation bool                    `json:"pending_confirmation"`
	LevelUp             *leveling.LevelUpReport `json:"level_up,omitempty"`
}

// TotalEXP is everything the character receives in EXP
func (r *Result) TotalEXP() int {
	return r.ChainEXP + r.CoopEXP + r.BundleBonusEXP
}

// TotalGold is everything the character receives in gold
func (r *Result) TotalGold() int {
	return r.ChainGold + r.CoopGold
}

// Pipeline prices task completions
type Pipeline struct {
	rng     utils.RNG
	content content.Provider
}

// NewPipeline creates a pipeline drawing rolls from rng
func NewPipeline(rng utils.RNG, provider content.Provider) *Pipeline {
	return &Pipeline{rng: rng, content: provider}
}

type runningTotal struct {
	exp, gold float64
	stages    []StageRecord
}

func (t *runningTotal) apply(stage Stage, expFactor, goldFactor float64) {
	t.exp *= expFactor
	t.gold *= goldFactor
	t.stages = append(t.stages, StageRecord{
		Stage:      stage,
		EXPFactor:  expFactor,
		GoldFactor: goldFactor,
		EXP:        t.exp,
		Gold:       t.gold,
	})
}

// Compute runs the multiplier chain and the independent rolls. It never
// mutates its inputs.
func (p *Pipeline) Compute(ctx context.Context, in Input) *Result {
	if in.Now.IsZero() {
		in.Now = time.Now()
	}
	task, c, now := in.Task, in.Character, in.Now

	res := &Result{
		TaskID:   task.ID,
		BaseEXP:  task.BaseEXP,
		BaseGold: task.BaseGold,
	}
	total := &runningTotal{exp: float64(task.BaseEXP), gold: float64(task.BaseGold)}

	scale := leveling.LevelScaling(c.Level)
	total.apply(StageLevelScaling, scale, scale)

	res.VerificationTier = VerificationTier(task.Verification, in.Signals)
	total.apply(StageVerification, res.VerificationTier, res.VerificationTier)

	affinity := 1.0
	if task.Category == c.Class.Specialty() {
		affinity += ClassAffinityBonus
	}
	total.apply(StageClassAffinity, affinity, affinity)

	buff := 1.0
	if c.HasWisdomBuff(now) {
		buff += MeditationBuff
	}
	total.apply(StageBuffs, buff, buff)

	streak := 1 + StreakBonus(c.CurrentStreak)
	total.apply(StageStreak, streak, streak)

	partner := 1.0
	if task.IsFromPartner {
		partner += PartnerBonus
		res.StatGains = append(res.StatGains, StatGain{Stat: domain.StatCharisma, Amount: PartnerCharisma, Source: SourcePartner})
	}
	total.apply(StagePartner, partner, partner)

	bondEXP, bondGold := bond.Bonuses(in.Bond)
	total.apply(StageBond, 1+bondEXP, 1+bondGold)

	category := 1 + c.Research.CategoryPercent[task.Category]
	total.apply(StageResearchCat, category, category)
	total.apply(StageResearchGlobal, 1+c.Research.GlobalExpPercent, 1+c.Research.GlobalGoldPercent)

	res.Stages = total.stages
	res.ChainEXP = utils.RoundInt(total.exp)
	res.ChainGold = utils.RoundInt(total.gold)

	p.rollBonuses(ctx, in, res)

	logger.FromContext(ctx).Debug(LogMsgRewardComputed,
		"task_id", task.ID,
		"character_id", c.ID,
		"exp", res.TotalEXP(),
		"gold", res.TotalGold(),
		"loot", res.Loot.Kind)
	return res
}

// rollBonuses draws the independent rolls in a fixed order: stat, luck, loot.
// Co-op duty and bundle bonuses are unconditional and draw nothing.
func (p *Pipeline) rollBonuses(ctx context.Context, in Input, res *Result) {
	task, c := in.Task, in.Character

	if p.rng.Float64() < StatRollChance {
		if st := task.Category.BonusStat(); st != domain.StatUnknown {
			res.StatGains = append(res.StatGains, StatGain{Stat: st, Amount: 1, Source: SourceStatRoll})
		}
	}
	if p.rng.Float64() < LuckRollChance {
		res.StatGains = append(res.StatGains, StatGain{Stat: domain.StatLuck, Amount: 1, Source: SourceLuckRoll})
	}

	if task.IsCoopDuty && task.CoopBonus != domain.CoopBonusAwarded {
		res.CoopBonus = true
		res.CoopEXP = utils.RoundInt(float64(res.ChainEXP) * CoopDutyShare)
		res.CoopGold = utils.RoundInt(float64(res.ChainGold) * CoopDutyShare)
		res.BondEXP += bond.CoopDutyBondEXP
	}

	tables := content.Defaults()
	if p.content != nil {
		tables = p.content.Tables(ctx)
	}
	res.Loot = loot.Roll(p.rng, tables.LootBands, tables.RarityWeights, c.EffectiveStats(in.Now).Luck)

	res.BundleBonusEXP = BundleBonus(task, in.Bundle, in.BundleTasks, in.Now)
}

// StreakBonus is min(5% per streak day, 50%)
func StreakBonus(streak int) float64 {
	if streak <= 0 {
		return 0
	}
	b := StreakStep * float64(streak)
	if b > StreakCap {
		return StreakCap
	}
	return b
}

// BundleBonus returns the routine bundle payout when task is the last habit
// of the bundle still open today, zero otherwise. A bundle pays once per day.
func BundleBonus(task *domain.GameTask, bundle *domain.RoutineBundle, members []*domain.GameTask, now time.Time) int {
	if bundle == nil || !bundle.Contains(task.ID) || len(bundle.TaskIDs) == 0 {
		return 0
	}
	today := domain.DayKey(now)
	if bundle.LastAwardedDay == today {
		return 0
	}

	doneToday := make(map[uuid.UUID]bool, len(members))
	for _, m := range members {
		if m.Status == domain.TaskCompleted && m.CompletedAt != nil && domain.DayKey(m.CompletedAt.In(now.Location())) == today {
			doneToday[m.ID] = true
		}
	}
	for _, id := range bundle.TaskIDs {
		if id == task.ID {
			continue
		}
		if !doneToday[id] {
			return 0
		}
	}
	return utils.RoundInt(BundleHabitRate * float64(bundle.PerHabitEXP) * float64(len(bundle.TaskIDs)))
}
