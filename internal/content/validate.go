package content

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/QuestForge_Go/internal/domain"
)

var validate = validator.New()

// Validate checks struct tags first, then the cross-field rules tags cannot express
func Validate(t *Tables) error {
	if t == nil {
		return errors.New("content tables are nil")
	}
	if err := validate.Struct(t); err != nil {
		return fmt.Errorf("content tables: %w", err)
	}

	for i, step := range t.Enhancement {
		if step.Level != i+1 {
			return fmt.Errorf("enhancement step %d has level %d, steps must be contiguous from 1", i, step.Level)
		}
	}
	for r := range t.Salvage {
		if _, err := domain.ParseRarity(string(r)); err != nil {
			return fmt.Errorf("salvage: %w", err)
		}
	}
	if bands := t.LootBands; bands.EquipmentCap+bands.Materials+bands.Consumables > 1 {
		return fmt.Errorf("loot bands exceed 1.0")
	}

	for _, m := range t.Missions {
		if err := validateMission(m); err != nil {
			return fmt.Errorf("mission %q: %w", m.ID, err)
		}
	}
	for _, d := range t.Dungeons {
		if err := validateDungeon(d); err != nil {
			return fmt.Errorf("dungeon %q: %w", d.ID, err)
		}
	}

	seen := make(map[string]bool, len(t.Achievements))
	for _, a := range t.Achievements {
		if _, err := domain.ParseAchievementKey(string(a.Key)); err != nil {
			return fmt.Errorf("achievement %q: %w", a.ID, err)
		}
		if seen[a.ID] {
			return fmt.Errorf("achievement %q defined twice", a.ID)
		}
		seen[a.ID] = true
	}
	return nil
}

func validateMission(m domain.Mission) error {
	if m.ID == "" {
		return errors.New("id is required")
	}
	if _, err := domain.ParseRarity(string(m.Rarity)); err != nil {
		return err
	}
	if _, err := domain.ParseStatType(string(m.PrimaryStat)); err != nil {
		return err
	}
	if m.Duration <= 0 {
		return errors.New("duration must be positive")
	}
	if m.BaseSuccessRate <= 0 || m.BaseSuccessRate > 1 {
		return errors.New("base success rate must be in (0,1]")
	}
	for st := range m.StatRequirements {
		if _, err := domain.ParseStatType(string(st)); err != nil {
			return err
		}
	}
	if m.IsRankUp() {
		if _, err := domain.ParseCharacterClass(string(m.RankUpTo)); err != nil {
			return err
		}
	}
	return nil
}

func validateDungeon(d domain.Dungeon) error {
	if d.ID == "" {
		return errors.New("id is required")
	}
	if d.Tier < 1 || d.Tier > 5 {
		return fmt.Errorf("tier %d outside 1..5", d.Tier)
	}
	if d.RoomSlots < 1 {
		return errors.New("room slots must be positive")
	}
	if d.MinPartySize < 1 || d.MaxPartySize < d.MinPartySize || d.MaxPartySize > domain.MaxPartySize {
		return fmt.Errorf("party size range %d..%d invalid", d.MinPartySize, d.MaxPartySize)
	}
	if len(d.Rooms) == 0 {
		return errors.New("no rooms")
	}
	ids := make(map[string]bool, len(d.Rooms))
	for _, r := range d.Rooms {
		if ids[r.ID] {
			return fmt.Errorf("room %q defined twice", r.ID)
		}
		ids[r.ID] = true
		if r.Difficulty <= 0 {
			return fmt.Errorf("room %q difficulty must be positive", r.ID)
		}
		if _, err := domain.ParseStatType(string(r.PrimaryStat)); err != nil {
			return fmt.Errorf("room %q: %w", r.ID, err)
		}
		switch r.Kind {
		case domain.RoomRegular, domain.RoomBonus, domain.RoomBoss:
		default:
			return fmt.Errorf("room %q has unknown kind %q", r.ID, r.Kind)
		}
	}
	return nil
}
