package game

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/osse101/QuestForge_Go/internal/domain"
	"github.com/osse101/QuestForge_Go/internal/event"
	"github.com/osse101/QuestForge_Go/internal/repository"
)

func (s *service) dungeonDef(ctx context.Context, id string) (*domain.Dungeon, error) {
	d, ok := s.content.Tables(ctx).Dungeon(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrDungeonNotFound, id)
	}
	return d, nil
}

// partyBond returns a bond holding every party member, or nil for solo runs
// and parties nobody bonded
func partyBond(ctx context.Context, repo repository.Bond, partyIDs []uuid.UUID) (*domain.Bond, error) {
	if len(partyIDs) < 2 {
		return nil, nil
	}
	bonds, err := repo.FindBonds(ctx, domain.BondQuery{MemberID: &partyIDs[0]})
	if err != nil {
		return nil, err
	}
	for _, b := range bonds {
		all := true
		for _, id := range partyIDs[1:] {
			if !b.HasMember(id) {
				all = false
				break
			}
		}
		if all {
			return b, nil
		}
	}
	return nil, nil
}

func loadParty(ctx context.Context, tx repository.Tx, ids []uuid.UUID) ([]*domain.PlayerCharacter, error) {
	party := make([]*domain.PlayerCharacter, 0, len(ids))
	for _, id := range ids {
		c, err := tx.GetCharacter(ctx, id)
		if err != nil {
			return nil, err
		}
		party = append(party, c)
	}
	return party, nil
}

func (s *service) lockParty(ctx context.Context, partyIDs []uuid.UUID) (func(), error) {
	ids := append([]uuid.UUID(nil), partyIDs...)
	b, err := partyBond(ctx, s.store, partyIDs)
	if err != nil {
		return nil, err
	}
	if b != nil {
		ids = append(ids, b.ID)
	}
	return s.locks.LockAll(ids...), nil
}

func (s *service) StartDungeon(ctx context.Context, dungeonID string, partyIDs []uuid.UUID, approach domain.Approach) (run *domain.DungeonRun, err error) {
	ctx, span := s.startSpan(ctx, spanStartDungeon, attribute.String("dungeon.id", dungeonID), attribute.Int("party.size", len(partyIDs)))
	defer func() { endSpan(span, err) }()

	d, err := s.dungeonDef(ctx, dungeonID)
	if err != nil {
		return nil, err
	}
	unlock, err := s.lockParty(ctx, partyIDs)
	if err != nil {
		return nil, err
	}
	defer unlock()

	fx := &effects{}
	err = repository.WithTx(ctx, s.store, func(tx repository.Tx) error {
		party, err := loadParty(ctx, tx, partyIDs)
		if err != nil {
			return err
		}
		b, err := partyBond(ctx, tx, partyIDs)
		if err != nil {
			return err
		}
		now := s.now()
		r, err := s.dungeons.Start(ctx, d, party, b, approach, now)
		if err != nil {
			return err
		}
		run = r
		if err := tx.UpsertRun(ctx, r); err != nil {
			return err
		}
		fx.capture(domain.SnapshotDungeonRun, r.ID, r, now)
		for _, c := range party {
			if err := tx.UpsertCharacter(ctx, c); err != nil {
				return err
			}
			fx.capture(domain.SnapshotCharacter, c.ID, c, now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.flush(ctx, fx)
	return run, nil
}

// ResolveDungeon plays out an in-progress run. A resolved run is returned as
// stored without rolling again.
func (s *service) ResolveDungeon(ctx context.Context, runID uuid.UUID) (run *domain.DungeonRun, err error) {
	ctx, span := s.startSpan(ctx, spanResolveDungeon, attribute.String("run.id", runID.String()))
	defer func() { endSpan(span, err) }()

	stored, err := s.store.GetRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	if stored.IsResolved() {
		return stored, nil
	}
	ids := append([]uuid.UUID(nil), stored.PartyIDs...)
	if stored.BondID != nil {
		ids = append(ids, *stored.BondID)
	}
	unlock := s.locks.LockAll(ids...)
	defer unlock()

	fx := &effects{}
	err = repository.WithTx(ctx, s.store, func(tx repository.Tx) error {
		r, err := tx.GetRun(ctx, runID)
		if err != nil {
			return err
		}
		run = r
		if r.IsResolved() {
			return nil
		}
		d, err := s.dungeonDef(ctx, r.DungeonID)
		if err != nil {
			return err
		}
		party, err := loadParty(ctx, tx, r.PartyIDs)
		if err != nil {
			return err
		}
		var b *domain.Bond
		if r.BondID != nil {
			if b, err = tx.GetBond(ctx, *r.BondID); err != nil {
				return err
			}
		}

		oldLevels := make([]int, len(party))
		for i, c := range party {
			oldLevels[i] = c.Level
		}
		oldBondLevel, oldPerks := bondState(b)

		now := s.now()
		if _, err := s.dungeons.Resolve(ctx, d, r, party, b, now); err != nil {
			return err
		}
		if err := tx.UpsertRun(ctx, r); err != nil {
			return err
		}
		fx.emit(event.NewDungeonResolvedEvent(r))
		fx.capture(domain.SnapshotDungeonRun, r.ID, r, now)
		for i, c := range party {
			s.progress(ctx, fx, c, oldLevels[i], SourceDungeon, now)
			if err := tx.UpsertCharacter(ctx, c); err != nil {
				return err
			}
		}
		if b != nil {
			if err := tx.UpsertBond(ctx, b); err != nil {
				return err
			}
			bondProgress(fx, b, oldBondLevel, oldPerks, now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if run.Result != nil {
		span.SetAttributes(attribute.String("run.status", string(run.Result.Status)), attribute.String("run.grade", string(run.Result.Grade)))
	}
	s.flush(ctx, fx)
	return run, nil
}

// RunDungeon starts and resolves a run back to back
func (s *service) RunDungeon(ctx context.Context, dungeonID string, partyIDs []uuid.UUID, approach domain.Approach) (*domain.DungeonRun, error) {
	run, err := s.StartDungeon(ctx, dungeonID, partyIDs, approach)
	if err != nil {
		return nil, err
	}
	return s.ResolveDungeon(ctx, run.ID)
}

func (s *service) GetRun(ctx context.Context, runID uuid.UUID) (*domain.DungeonRun, error) {
	return s.store.GetRun(ctx, runID)
}
