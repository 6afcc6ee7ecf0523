package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/QuestForge_Go/internal/domain"
	"github.com/osse101/QuestForge_Go/internal/forge"
	"github.com/osse101/QuestForge_Go/internal/mission"
	"github.com/osse101/QuestForge_Go/internal/reward"
)

// MockGameService mocks the game.Service interface
type MockGameService struct {
	mock.Mock
}

func ret[T any](args mock.Arguments) (T, error) {
	var zero T
	if v := args.Get(0); v != nil {
		return v.(T), args.Error(1)
	}
	return zero, args.Error(1)
}

func (m *MockGameService) CreateCharacter(ctx context.Context, name string, class domain.CharacterClass) (*domain.PlayerCharacter, error) {
	return ret[*domain.PlayerCharacter](m.Called(ctx, name, class))
}

func (m *MockGameService) GetCharacter(ctx context.Context, id uuid.UUID) (*domain.PlayerCharacter, error) {
	return ret[*domain.PlayerCharacter](m.Called(ctx, id))
}

func (m *MockGameService) SpendStatPoint(ctx context.Context, id uuid.UUID, stat domain.StatType) (*domain.PlayerCharacter, error) {
	return ret[*domain.PlayerCharacter](m.Called(ctx, id, stat))
}

func (m *MockGameService) ActivateBuff(ctx context.Context, id uuid.UUID, kind domain.BuffKind) (*domain.PlayerCharacter, error) {
	return ret[*domain.PlayerCharacter](m.Called(ctx, id, kind))
}

func (m *MockGameService) PurchaseResearch(ctx context.Context, id uuid.UUID, node string) (int, error) {
	args := m.Called(ctx, id, node)
	return args.Int(0), args.Error(1)
}

func (m *MockGameService) CreateTask(ctx context.Context, t *domain.GameTask) (*domain.GameTask, error) {
	return ret[*domain.GameTask](m.Called(ctx, t))
}

func (m *MockGameService) CreateBundle(ctx context.Context, b *domain.RoutineBundle) (*domain.RoutineBundle, error) {
	return ret[*domain.RoutineBundle](m.Called(ctx, b))
}

func (m *MockGameService) ListTasks(ctx context.Context, ownerID uuid.UUID) ([]*domain.GameTask, error) {
	return ret[[]*domain.GameTask](m.Called(ctx, ownerID))
}

func (m *MockGameService) CompleteTask(ctx context.Context, taskID, actorID uuid.UUID, signals reward.Signals) (*reward.Result, error) {
	return ret[*reward.Result](m.Called(ctx, taskID, actorID, signals))
}

func (m *MockGameService) ConfirmTask(ctx context.Context, taskID, confirmerID uuid.UUID) (*reward.Result, error) {
	return ret[*reward.Result](m.Called(ctx, taskID, confirmerID))
}

func (m *MockGameService) DisputeTask(ctx context.Context, taskID, disputerID uuid.UUID, reason string) (*domain.GameTask, error) {
	return ret[*domain.GameTask](m.Called(ctx, taskID, disputerID, reason))
}

func (m *MockGameService) CreateBond(ctx context.Context, memberIDs ...uuid.UUID) (*domain.Bond, error) {
	return ret[*domain.Bond](m.Called(ctx, memberIDs))
}

func (m *MockGameService) StartMission(ctx context.Context, id uuid.UUID, missionID string) (*domain.ActiveMission, error) {
	return ret[*domain.ActiveMission](m.Called(ctx, id, missionID))
}

func (m *MockGameService) CheckMission(ctx context.Context, id uuid.UUID) (*mission.Resolution, error) {
	return ret[*mission.Resolution](m.Called(ctx, id))
}

func (m *MockGameService) ClaimMission(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockGameService) ActiveMissions(ctx context.Context) ([]domain.ActiveMission, error) {
	return ret[[]domain.ActiveMission](m.Called(ctx))
}

func (m *MockGameService) StartDungeon(ctx context.Context, dungeonID string, partyIDs []uuid.UUID, approach domain.Approach) (*domain.DungeonRun, error) {
	return ret[*domain.DungeonRun](m.Called(ctx, dungeonID, partyIDs, approach))
}

func (m *MockGameService) ResolveDungeon(ctx context.Context, runID uuid.UUID) (*domain.DungeonRun, error) {
	return ret[*domain.DungeonRun](m.Called(ctx, runID))
}

func (m *MockGameService) RunDungeon(ctx context.Context, dungeonID string, partyIDs []uuid.UUID, approach domain.Approach) (*domain.DungeonRun, error) {
	return ret[*domain.DungeonRun](m.Called(ctx, dungeonID, partyIDs, approach))
}

func (m *MockGameService) GetRun(ctx context.Context, runID uuid.UUID) (*domain.DungeonRun, error) {
	return ret[*domain.DungeonRun](m.Called(ctx, runID))
}

func (m *MockGameService) EnhanceEquipment(ctx context.Context, id, itemID uuid.UUID) (*forge.EnhanceResult, error) {
	return ret[*forge.EnhanceResult](m.Called(ctx, id, itemID))
}

func (m *MockGameService) SalvageEquipment(ctx context.Context, id, itemID uuid.UUID) (*forge.SalvageResult, error) {
	return ret[*forge.SalvageResult](m.Called(ctx, id, itemID))
}

func (m *MockGameService) EquipItem(ctx context.Context, id, itemID uuid.UUID, equip bool) (*domain.PlayerCharacter, error) {
	return ret[*domain.PlayerCharacter](m.Called(ctx, id, itemID, equip))
}

func (m *MockGameService) SweepEscrow(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockGameService) ResetRecurring(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}

func (m *MockGameService) CheckStreaks(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
