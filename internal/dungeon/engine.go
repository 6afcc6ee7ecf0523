package dungeon

import (
	"context"
	"fmt"
	"math"
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

// Engine runs multi-room dungeon attempts for a party
type Engine struct {
	rng     utils.RNG
	content content.Provider
}

// NewEngine creates a dungeon engine
func NewEngine(rng utils.RNG, provider content.Provider) *Engine {
	return &Engine{rng: rng, content: provider}
}

func (e *Engine) tables(ctx context.Context) *content.Tables {
	if e.content == nil {
		return content.Defaults()
	}
	return e.content.Tables(ctx)
}

// Start validates the party, picks the rooms and marks every member busy
func (e *Engine) Start(ctx context.Context, d *domain.Dungeon, party []*domain.PlayerCharacter, b *domain.Bond, approach domain.Approach, now time.Time) (*domain.DungeonRun, error) {
	if _, ok := approaches[approach]; !ok {
		return nil, fmt.Errorf("%w: unknown approach %q", domain.ErrInvalidInput, approach)
	}
	if err := validateParty(d, party, b); err != nil {
		return nil, err
	}
	for _, m := range party {
		if m.IsBusy() {
			return nil, fmt.Errorf("%w: %s is busy", domain.ErrActivityInProgress, m.Name)
		}
	}

	run := &domain.DungeonRun{
		ID:          uuid.New(),
		DungeonID:   d.ID,
		PartyIDs:    make([]uuid.UUID, 0, len(party)),
		Approach:    approach,
		Rooms:       SelectRooms(e.rng, d, party),
		RoomResults: make([]domain.RoomResult, 0),
		State:       domain.RunInProgress,
		StartedAt:   now,
	}
	if b != nil && len(party) > 1 {
		id := b.ID
		run.BondID = &id
	}
	run.MaxPartyHP = PartyHP(party, now)
	run.PartyHP = run.MaxPartyHP
	for _, m := range party {
		run.PartyIDs = append(run.PartyIDs, m.ID)
		id := run.ID
		m.ActiveDungeonRunID = &id
		m.UpdatedAt = now
	}
	run.Feed = append(run.Feed, fmt.Sprintf("The party of %d enters %s (%d rooms, %d HP)", len(party), d.Name, len(run.Rooms), run.MaxPartyHP))

	logger.FromContext(ctx).Info(LogMsgRunStarted,
		"run_id", run.ID,
		"dungeon", d.ID,
		"party_size", len(party),
		"rooms", len(run.Rooms))
	return run, nil
}

func validateParty(d *domain.Dungeon, party []*domain.PlayerCharacter, b *domain.Bond) error {
	minSize := max(d.MinPartySize, 1)
	maxSize := domain.MaxPartySize
	if d.MaxPartySize > 0 && d.MaxPartySize < maxSize {
		maxSize = d.MaxPartySize
	}
	if len(party) < minSize || len(party) > maxSize {
		return fmt.Errorf("%w: party of %d, need %d-%d", domain.ErrInvalidParty, len(party), minSize, maxSize)
	}
	seen := make(map[uuid.UUID]bool, len(party))
	for _, m := range party {
		if m == nil || seen[m.ID] {
			return fmt.Errorf("%w: duplicate or missing member", domain.ErrInvalidParty)
		}
		seen[m.ID] = true
		if b != nil && len(party) > 1 && !b.HasMember(m.ID) {
			return fmt.Errorf("%w: %s is not in the bond", domain.ErrInvalidParty, m.Name)
		}
	}
	return nil
}

// Resolve plays every selected room and pays out the run. A run that was
// already resolved returns its stored result without rolling again.
func (e *Engine) Resolve(ctx context.Context, d *domain.Dungeon, run *domain.DungeonRun, party []*domain.PlayerCharacter, b *domain.Bond, now time.Time) (*domain.DungeonRunResult, error) {
	if run.IsResolved() {
		return run.Result, nil
	}
	if run.State != domain.RunInProgress {
		return nil, domain.ErrRunNotInProgress
	}
	if run.DungeonID != d.ID {
		return nil, fmt.Errorf("%w: run belongs to %s", domain.ErrInvalidInput, run.DungeonID)
	}
	if !sameParty(run.PartyIDs, party) {
		return nil, fmt.Errorf("%w: party does not match the run", domain.ErrInvalidParty)
	}
	if run.BondID == nil || b == nil || b.ID != *run.BondID {
		b = nil
	}

	profile := ProfileFor(run.Approach)
	readiness, penalty := Readiness(d, party, now)
	research := AverageResearchBonus(party)
	mitigation := Mitigation(party, b)

	run.Status = domain.RunStatusCompleted
	for _, room := range run.Rooms {
		res := e.playRoom(d, room, len(run.Rooms), party, profile, research, penalty, mitigation, now)
		run.PartyHP = max(run.PartyHP-res.Damage, 0)
		res.HPAfter = run.PartyHP
		run.EXP += res.EXP
		run.Gold += res.Gold
		run.RoomResults = append(run.RoomResults, res)
		run.Feed = append(run.Feed, roomLine(res))

		if run.PartyHP == 0 {
			run.Status = domain.RunStatusFailed
			run.Feed = append(run.Feed, "The party collapses and retreats")
			break
		}
	}

	result := e.complete(ctx, d, run, party, readiness, now)
	e.payout(run, result, party, b, now)

	run.Result = result
	run.State = domain.RunResolved
	resolved := now
	run.ResolvedAt = &resolved

	logger.FromContext(ctx).Info(LogMsgRunResolved,
		"run_id", run.ID,
		"dungeon", d.ID,
		"status", result.Status,
		"grade", result.Grade,
		"rooms_cleared", result.RoomsCleared,
		"hp_remaining", result.HPRemaining)
	return result, nil
}

// Run starts and resolves a dungeon in one call
func (e *Engine) Run(ctx context.Context, d *domain.Dungeon, party []*domain.PlayerCharacter, b *domain.Bond, approach domain.Approach, now time.Time) (*domain.DungeonRun, error) {
	run, err := e.Start(ctx, d, party, b, approach, now)
	if err != nil {
		return nil, err
	}
	if _, err := e.Resolve(ctx, d, run, party, b, now); err != nil {
		return nil, err
	}
	return run, nil
}

func sameParty(ids []uuid.UUID, party []*domain.PlayerCharacter) bool {
	if len(ids) != len(party) {
		return false
	}
	want := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	for _, m := range party {
		if m == nil || !want[m.ID] {
			return false
		}
	}
	return true
}

// playRoom draws the success roll and, on success, the loot and card rolls
func (e *Engine) playRoom(d *domain.Dungeon, room domain.Room, roomCount int, party []*domain.PlayerCharacter, profile ApproachProfile, research, penalty, mitigation float64, now time.Time) domain.RoomResult {
	power := PartyPower(room, party, now)
	res := domain.RoomResult{
		RoomID:   room.ID,
		RoomName: room.Name,
		Kind:     room.Kind,
		Power:    power,
		Chance:   RoomChance(power, room.Difficulty, len(party), d.Tier, profile, research, penalty),
	}

	if e.rng.Float64() >= res.Chance {
		res.Damage = RoomDamage(room.Difficulty, power, d.Tier, profile, mitigation)
		res.EXP = FailureConsolationXP
		return res
	}

	res.Success = true
	share := 1 + profile.RewardBonus
	if room.Kind == domain.RoomBoss {
		share *= BossRewardMultiplier
	}
	rooms := float64(max(roomCount, 1))
	res.EXP = utils.RoundInt(float64(d.TotalEXP) / rooms * share)
	res.Gold = utils.RoundInt(float64(d.TotalGold) / rooms * share)

	lootChance := RoomLootChance
	if room.Kind == domain.RoomBonus {
		lootChance = BonusRoomLootChance
	}
	if e.rng.Float64() < lootChance {
		res.Materials = max(d.Tier, 1)
	}
	if e.rng.Float64() < CardDropChance {
		res.Card = room.Name + " Card"
	}
	return res
}

func roomLine(r domain.RoomResult) string {
	if r.Success {
		line := fmt.Sprintf("Cleared %s (%.0f%%): +%d EXP, +%d gold", r.RoomName, r.Chance*100, r.EXP, r.Gold)
		if r.Card != "" {
			line += ", found " + r.Card
		}
		return line
	}
	return fmt.Sprintf("Failed %s (%.0f%%): took %d damage, %d HP left", r.RoomName, r.Chance*100, r.Damage, r.HPAfter)
}

// complete scores the run and rolls the end-of-run loot and the secret
func (e *Engine) complete(ctx context.Context, d *domain.Dungeon, run *domain.DungeonRun, party []*domain.PlayerCharacter, readiness float64, now time.Time) *domain.DungeonRunResult {
	result := &domain.DungeonRunResult{
		Status:      run.Status,
		RoomsTotal:  len(run.Rooms),
		HPRemaining: run.PartyHP,
		MaxHP:       run.MaxPartyHP,
		Readiness:   readiness,
		EXP:         run.EXP,
		Gold:        run.Gold,
		Rewards:     make([]domain.MemberReward, 0, len(party)),
	}
	var difficulty float64
	for _, r := range run.RoomResults {
		if r.Success {
			result.RoomsCleared++
		}
		result.Materials += r.Materials
		if r.Card != "" {
			result.Cards = append(result.Cards, r.Card)
		}
	}
	for _, r := range run.Rooms {
		difficulty += r.Difficulty
	}
	if len(run.Rooms) > 0 {
		difficulty /= float64(len(run.Rooms))
	}

	result.Score = Score(result.RoomsCleared, result.RoomsTotal, result.HPRemaining, result.MaxHP, readiness)
	result.Grade, result.LootMultiplier = GradeFor(result.Score)

	weights := e.tables(ctx).RarityWeights
	avgLuck := averageLuck(party, now)
	shift := loot.DungeonShift(d.Tier, avgLuck, difficulty)
	drops := int(math.Floor(float64(1+result.RoomsCleared/2) * result.LootMultiplier))
	for range drops {
		result.Loot = append(result.Loot, loot.NewEquipment(e.rng, weights.Pick(e.rng, shift)))
	}

	if e.rng.Float64() < SecretChance(avgLuck) {
		eq := loot.NewEquipment(e.rng, weights.Pick(e.rng, shift))
		result.Secret = &domain.SecretDiscovery{
			Gold:      SecretGoldPerTier * max(d.Tier, 1),
			Materials: SecretMaterialsPerTier * max(d.Tier, 1),
			Equipment: &eq,
		}
		run.Feed = append(run.Feed, "A hidden passage reveals a secret cache")
	}
	run.Feed = append(run.Feed, fmt.Sprintf("Run %s with grade %s", result.Status, result.Grade))
	return result
}

// payout credits every member. Currency and materials go to everyone,
// items are dealt out in party order.
func (e *Engine) payout(run *domain.DungeonRun, result *domain.DungeonRunResult, party []*domain.PlayerCharacter, b *domain.Bond, now time.Time) {
	rewards := make([]domain.MemberReward, len(party))
	for i, m := range party {
		rewards[i] = domain.MemberReward{
			CharacterID: m.ID,
			EXP:         result.EXP,
			Gold:        result.Gold,
			Materials:   result.Materials,
		}
		if result.Secret != nil {
			rewards[i].Gold += result.Secret.Gold
			rewards[i].Materials += result.Secret.Materials
		}
	}

	items := append([]domain.Equipment(nil), result.Loot...)
	if result.Secret != nil && result.Secret.Equipment != nil {
		items = append(items, *result.Secret.Equipment)
	}
	for i, eq := range items {
		r := &rewards[i%len(party)]
		r.Equipment = append(r.Equipment, eq)
	}
	for i, card := range result.Cards {
		r := &rewards[i%len(party)]
		r.Cards = append(r.Cards, card)
	}

	for i, m := range party {
		r := &rewards[i]
		report := leveling.ApplyEXP(m, r.EXP)
		r.LevelsGained = report.LevelsGained()
		m.AddGold(r.Gold)
		m.Daily.GoldEarned += r.Gold
		m.Inventory.Materials += r.Materials
		m.Inventory.Cards = append(m.Inventory.Cards, r.Cards...)
		for j := range r.Equipment {
			loot.Apply(m, domain.LootDrop{Kind: domain.LootEquipment, Quantity: 1, Equipment: &r.Equipment[j]})
		}
		if result.Secret != nil {
			m.IncrementCounter(domain.AchievementSecretsDiscovered, 1)
		}
		if result.Status == domain.RunStatusCompleted {
			m.DungeonsCleared++
		}
		m.ActiveDungeonRunID = nil
		m.UpdatedAt = now
	}

	if b != nil && result.Status == domain.RunStatusCompleted && len(party) > 1 {
		bond.AddEXP(b, bond.CoopDungeonBondEXP)
		bond.RecordSharedActivity(b, now)
		result.BondEXP = bond.CoopDungeonBondEXP
	}
	result.Rewards = rewards
}
