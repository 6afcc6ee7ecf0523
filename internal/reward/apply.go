package reward

import (
	"context"
	"time"

	"github.com/osse101/QuestForge_Go/internal/bond"
	"github.com/osse101/QuestForge_Go/internal/domain"
	"github.com/osse101/QuestForge_Go/internal/leveling"
	"github.com/osse101/QuestForge_Go/internal/logger"
	"github.com/osse101/QuestForge_Go/internal/loot"
)

// Apply credits a computed result to the character and its related records.
// EXP is applied eagerly and every level-up it pays for resolves here.
func Apply(ctx context.Context, in Input, res *Result) {
	if in.Now.IsZero() {
		in.Now = time.Now()
	}
	c, task, now := in.Character, in.Task, in.Now

	leveling.RollDaily(c, now)

	report := leveling.ApplyEXP(c, res.TotalEXP())
	res.LevelUp = &report

	gold := res.TotalGold()
	c.AddGold(gold)
	c.Daily.GoldEarned += gold

	for _, g := range res.StatGains {
		c.Stats.Add(g.Stat, g.Amount)
	}
	loot.Apply(c, res.Loot)

	c.TotalTasksCompleted++
	c.Daily.TasksCompleted++
	leveling.RecordActivity(c, now)

	if res.CoopBonus {
		task.CoopBonus = domain.CoopBonusAwarded
	}
	if in.Bond != nil {
		if res.BondEXP > 0 {
			bond.AddEXP(in.Bond, res.BondEXP)
		}
		if task.IsFromPartner {
			bond.RecordSharedActivity(in.Bond, now)
		}
	}
	if res.BundleBonusEXP > 0 && in.Bundle != nil {
		in.Bundle.LastAwardedDay = domain.DayKey(now)
	}
	c.UpdatedAt = now

	logger.FromContext(ctx).Info(LogMsgRewardApplied,
		"task_id", task.ID,
		"character_id", c.ID,
		"exp", res.TotalEXP(),
		"gold", gold,
		"levels_gained", report.LevelsGained())
}
