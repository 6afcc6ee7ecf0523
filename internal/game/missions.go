package game

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/osse101/QuestForge_Go/internal/domain"
	"github.com/osse101/QuestForge_Go/internal/event"
	"github.com/osse101/QuestForge_Go/internal/mission"
	"github.com/osse101/QuestForge_Go/internal/repository"
)

func (s *service) missionDef(ctx context.Context, id string) (*domain.Mission, error) {
	m, ok := s.content.Tables(ctx).Mission(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissionNotFound, id)
	}
	return m, nil
}

func (s *service) StartMission(ctx context.Context, characterID uuid.UUID, missionID string) (active *domain.ActiveMission, err error) {
	ctx, span := s.startSpan(ctx, spanStartMission, characterAttr(characterID), attribute.String("mission.id", missionID))
	defer func() { endSpan(span, err) }()

	m, err := s.missionDef(ctx, missionID)
	if err != nil {
		return nil, err
	}
	_, err = s.mutateCharacter(ctx, characterID, func(c *domain.PlayerCharacter, fx *effects) error {
		a, err := s.missions.Start(ctx, m, c, s.now())
		if err != nil {
			return err
		}
		active = a
		fx.emit(event.NewMissionStartedEvent(c.ID, a))
		fx.capture(domain.SnapshotCharacter, c.ID, c, s.now())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return active, nil
}

// CheckMission resolves the character's mission once its deadline passed.
// It returns (nil, nil) while the mission is still running or when nothing
// was started, and the stored outcome when the mission was already claimed.
func (s *service) CheckMission(ctx context.Context, characterID uuid.UUID) (res *mission.Resolution, err error) {
	ctx, span := s.startSpan(ctx, spanCheckMission, characterAttr(characterID))
	defer func() { endSpan(span, err) }()

	unlock := s.locks.LockAll(characterID)
	defer unlock()

	fx := &effects{}
	err = repository.WithTx(ctx, s.store, func(tx repository.Tx) error {
		c, err := tx.GetCharacter(ctx, characterID)
		if err != nil {
			return err
		}
		missionID := ""
		switch {
		case c.ActiveMission != nil:
			missionID = c.ActiveMission.MissionID
		case c.LastMission != nil:
			missionID = c.LastMission.MissionID
		default:
			return nil
		}
		m, err := s.missionDef(ctx, missionID)
		if err != nil {
			return err
		}

		now := s.now()
		oldLevel := c.Level
		r, err := s.missions.CheckCompletion(ctx, m, c, now)
		if err != nil || r == nil || r.Replayed {
			res = r
			return err
		}
		res = r
		fx.emit(event.NewMissionResolvedEvent(c.ID, r.Outcome))
		s.progress(ctx, fx, c, oldLevel, SourceMission, now)
		return tx.UpsertCharacter(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	if res != nil {
		span.SetAttributes(attribute.Bool("mission.success", res.Outcome.Success), attribute.Bool("mission.replayed", res.Replayed))
	}
	s.flush(ctx, fx)
	return res, nil
}

// ClaimMission is the timer-driven entry point; it satisfies worker.MissionClaimer
func (s *service) ClaimMission(ctx context.Context, characterID uuid.UUID) error {
	_, err := s.CheckMission(ctx, characterID)
	return err
}

// ActiveMissions lists every running mission, used to re-arm timers on startup
func (s *service) ActiveMissions(ctx context.Context) ([]domain.ActiveMission, error) {
	chars, err := s.store.FindCharacters(ctx, domain.CharacterQuery{HasActiveMission: domain.Ptr(true)})
	if err != nil {
		return nil, err
	}
	out := make([]domain.ActiveMission, 0, len(chars))
	for _, c := range chars {
		out = append(out, *c.ActiveMission)
	}
	return out, nil
}
