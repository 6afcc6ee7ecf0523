package game

import (
	"context"

	"github.com/osse101/QuestForge_Go/internal/domain"
	"github.com/osse101/QuestForge_Go/internal/event"
	"github.com/osse101/QuestForge_Go/internal/leveling"
	"github.com/osse101/QuestForge_Go/internal/logger"
)

// CheckStreaks warns every character whose streak ends tonight unless they
// complete something today. It only publishes; nothing is written.
func (s *service) CheckStreaks(ctx context.Context) (atRisk int, err error) {
	ctx, span := s.startSpan(ctx, spanCheckStreaks)
	defer func() { endSpan(span, err) }()

	now := s.now()
	chars, err := s.store.FindCharacters(ctx, domain.CharacterQuery{
		MinStreak:        domain.Ptr(1),
		LastActiveBefore: domain.Ptr(domain.DayKey(now)),
	})
	if err != nil {
		return 0, err
	}
	fx := &effects{}
	for _, c := range chars {
		if leveling.StreakAtRisk(c, now) {
			fx.emit(event.NewStreakAtRiskEvent(c))
			atRisk++
		}
	}
	s.flush(ctx, fx)
	logger.FromContext(ctx).Info(LogMsgStreakCheckDone, "at_risk", atRisk, "checked", len(chars))
	return atRisk, nil
}
