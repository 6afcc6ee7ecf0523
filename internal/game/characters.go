package game

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/osse101/QuestForge_Go/internal/bond"
	"github.com/osse101/QuestForge_Go/internal/domain"
	"github.com/osse101/QuestForge_Go/internal/event"
	"github.com/osse101/QuestForge_Go/internal/forge"
	"github.com/osse101/QuestForge_Go/internal/leveling"
	"github.com/osse101/QuestForge_Go/internal/logger"
	"github.com/osse101/QuestForge_Go/internal/repository"
)

func (s *service) CreateCharacter(ctx context.Context, name string, class domain.CharacterClass) (*domain.PlayerCharacter, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if _, ok := class.Info(); !ok {
		return nil, fmt.Errorf("%w: unknown class %q", domain.ErrInvalidInput, class)
	}

	now := s.now()
	c := domain.NewCharacter(name, class)
	c.CreatedAt, c.UpdatedAt = now, now
	s.tracker.Ensure(c)
	if err := s.store.UpsertCharacter(ctx, c); err != nil {
		return nil, err
	}

	fx := &effects{}
	fx.capture(domain.SnapshotCharacter, c.ID, c, now)
	s.flush(ctx, fx)
	logger.FromContext(ctx).Info(LogMsgCharacterCreated, "character_id", c.ID, "class", class)
	return c, nil
}

func (s *service) GetCharacter(ctx context.Context, id uuid.UUID) (*domain.PlayerCharacter, error) {
	c, err := s.store.GetCharacter(ctx, id)
	if err != nil {
		return nil, err
	}
	// Fold the day rollover into the read so callers see today's counters
	leveling.RollDaily(c, s.now())
	s.tracker.Ensure(c)
	return c, nil
}

// mutateCharacter runs fn on one locked character inside a transaction and
// persists the result when fn succeeds
func (s *service) mutateCharacter(ctx context.Context, id uuid.UUID, fn func(c *domain.PlayerCharacter, fx *effects) error) (*domain.PlayerCharacter, error) {
	unlock := s.locks.LockAll(id)
	defer unlock()

	fx := &effects{}
	var out *domain.PlayerCharacter
	err := repository.WithTx(ctx, s.store, func(tx repository.Tx) error {
		c, err := tx.GetCharacter(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(c, fx); err != nil {
			return err
		}
		c.UpdatedAt = s.now()
		if err := tx.UpsertCharacter(ctx, c); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.flush(ctx, fx)
	return out, nil
}

func (s *service) SpendStatPoint(ctx context.Context, characterID uuid.UUID, stat domain.StatType) (*domain.PlayerCharacter, error) {
	return s.mutateCharacter(ctx, characterID, func(c *domain.PlayerCharacter, fx *effects) error {
		if err := leveling.SpendStatPoint(c, stat); err != nil {
			return err
		}
		fx.capture(domain.SnapshotCharacter, c.ID, c, s.now())
		return nil
	})
}

func (s *service) ActivateBuff(ctx context.Context, characterID uuid.UUID, kind domain.BuffKind) (*domain.PlayerCharacter, error) {
	return s.mutateCharacter(ctx, characterID, func(c *domain.PlayerCharacter, fx *effects) error {
		now := s.now()
		if err := c.ActivateBuff(kind, now); err != nil {
			return err
		}
		logger.FromContext(ctx).Info(LogMsgBuffActivated, "character_id", c.ID, "buff", kind)
		fx.capture(domain.SnapshotCharacter, c.ID, c, now)
		return nil
	})
}

func (s *service) PurchaseResearch(ctx context.Context, characterID uuid.UUID, nodeKey string) (level int, err error) {
	ctx, span := s.startSpan(ctx, spanResearch, characterAttr(characterID), attribute.String("research.node", nodeKey))
	defer func() { endSpan(span, err) }()

	_, err = s.mutateCharacter(ctx, characterID, func(c *domain.PlayerCharacter, fx *effects) error {
		lvl, err := s.tree.Purchase(c, nodeKey)
		if err != nil {
			return err
		}
		level = lvl
		fx.emit(event.NewResearchPurchasedEvent(c.ID, nodeKey, lvl))
		fx.capture(domain.SnapshotCharacter, c.ID, c, s.now())
		return nil
	})
	if err != nil {
		return 0, err
	}
	return level, nil
}

func (s *service) EnhanceEquipment(ctx context.Context, characterID, itemID uuid.UUID) (res *forge.EnhanceResult, err error) {
	ctx, span := s.startSpan(ctx, spanEnhance, characterAttr(characterID), attribute.String("item.id", itemID.String()))
	defer func() { endSpan(span, err) }()

	_, err = s.mutateCharacter(ctx, characterID, func(c *domain.PlayerCharacter, fx *effects) error {
		r, err := s.forge.Enhance(ctx, c, itemID)
		if err != nil {
			return err
		}
		res = r
		fx.emit(event.NewForgeEvent(event.EquipmentEnhanced, c.ID, r.Item, r.Success, r.MaterialsSpent))
		fx.capture(domain.SnapshotCharacter, c.ID, c, s.now())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *service) SalvageEquipment(ctx context.Context, characterID, itemID uuid.UUID) (res *forge.SalvageResult, err error) {
	ctx, span := s.startSpan(ctx, spanSalvage, characterAttr(characterID), attribute.String("item.id", itemID.String()))
	defer func() { endSpan(span, err) }()

	_, err = s.mutateCharacter(ctx, characterID, func(c *domain.PlayerCharacter, fx *effects) error {
		r, err := s.forge.Salvage(ctx, c, itemID)
		if err != nil {
			return err
		}
		res = r
		fx.emit(event.NewForgeEvent(event.EquipmentSalvaged, c.ID, r.Item, true, r.Materials))
		fx.capture(domain.SnapshotCharacter, c.ID, c, s.now())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *service) EquipItem(ctx context.Context, characterID, itemID uuid.UUID, equip bool) (*domain.PlayerCharacter, error) {
	return s.mutateCharacter(ctx, characterID, func(c *domain.PlayerCharacter, fx *effects) error {
		var err error
		if equip {
			err = forge.Equip(c, itemID)
		} else {
			err = forge.Unequip(c, itemID)
		}
		if err != nil {
			return err
		}
		fx.capture(domain.SnapshotCharacter, c.ID, c, s.now())
		return nil
	})
}

func (s *service) CreateBond(ctx context.Context, memberIDs ...uuid.UUID) (*domain.Bond, error) {
	if len(memberIDs) < 2 || len(memberIDs) > domain.MaxPartySize {
		return nil, fmt.Errorf("%w: a bond needs 2-%d members", domain.ErrInvalidInput, domain.MaxPartySize)
	}
	seen := make(map[uuid.UUID]bool, len(memberIDs))
	for _, id := range memberIDs {
		if seen[id] {
			return nil, fmt.Errorf("%w: duplicate member", domain.ErrInvalidInput)
		}
		seen[id] = true
		if _, err := s.store.GetCharacter(ctx, id); err != nil {
			return nil, err
		}
	}

	now := s.now()
	b := bond.New(memberIDs...)
	b.CreatedAt = now
	if err := s.store.UpsertBond(ctx, b); err != nil {
		return nil, err
	}
	fx := &effects{}
	fx.capture(domain.SnapshotBond, b.ID, b, now)
	s.flush(ctx, fx)
	logger.FromContext(ctx).Info(LogMsgBondCreated, "bond_id", b.ID, "members", len(memberIDs))
	return b, nil
}
