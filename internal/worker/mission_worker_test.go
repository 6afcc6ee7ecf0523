package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/QuestForge_Go/internal/domain"
	"github.com/osse101/QuestForge_Go/internal/event"
)

type MockMissionClaimer struct {
	mock.Mock
}

func (m *MockMissionClaimer) ActiveMissions(ctx context.Context) ([]domain.ActiveMission, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActiveMission), args.Error(1)
}

func (m *MockMissionClaimer) ClaimMission(ctx context.Context, characterID uuid.UUID) error {
	args := m.Called(ctx, characterID)
	return args.Error(0)
}

func TestMissionWorker_StartClaimsOverdueMissions(t *testing.T) {
	overdue := uuid.New()
	future := uuid.New()

	claimer := new(MockMissionClaimer)
	claimer.On("ActiveMissions", mock.Anything).Return([]domain.ActiveMission{
		{CharacterID: overdue, CompletesAt: time.Now().Add(-time.Minute)},
		{CharacterID: future, CompletesAt: time.Now().Add(time.Hour)},
	}, nil)
	claimed := make(chan struct{})
	claimer.On("ClaimMission", mock.Anything, overdue).Return(nil).Once().Run(func(mock.Arguments) {
		close(claimed)
	})

	w := NewMissionWorker(claimer)
	w.Start(context.Background())

	select {
	case <-claimed:
	case <-time.After(time.Second):
		t.Fatal("overdue mission was never claimed")
	}
	assert.Equal(t, 1, w.pending())

	require.NoError(t, w.Shutdown(context.Background()))
	assert.Equal(t, 0, w.pending())
	claimer.AssertNotCalled(t, "ClaimMission", mock.Anything, future)
}

func TestMissionWorker_StartLoadError(t *testing.T) {
	claimer := new(MockMissionClaimer)
	claimer.On("ActiveMissions", mock.Anything).Return(nil, errors.New("db down"))

	w := NewMissionWorker(claimer)
	w.Start(context.Background())

	assert.Equal(t, 0, w.pending())
	claimer.AssertNotCalled(t, "ClaimMission", mock.Anything, mock.Anything)
}

func TestMissionWorker_SchedulesFromEvent(t *testing.T) {
	charID := uuid.New()
	claimer := new(MockMissionClaimer)
	done := make(chan struct{})
	claimer.On("ClaimMission", mock.Anything, charID).Return(nil).Once().Run(func(mock.Arguments) {
		close(done)
	})

	bus := event.NewMemoryBus()
	w := NewMissionWorker(claimer)
	w.Subscribe(bus)

	active := &domain.ActiveMission{MissionID: "m_warmup", CompletesAt: time.Now().Add(20 * time.Millisecond)}
	require.NoError(t, bus.Publish(context.Background(), event.NewMissionStartedEvent(charID, active)))
	assert.Equal(t, 1, w.pending())

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("mission was never claimed")
	}
	claimer.AssertExpectations(t)
	require.NoError(t, w.Shutdown(context.Background()))
}

func TestMissionWorker_RescheduleReplacesTimer(t *testing.T) {
	charID := uuid.New()
	w := NewMissionWorker(new(MockMissionClaimer))

	w.Schedule(charID, time.Now().Add(time.Hour))
	w.Schedule(charID, time.Now().Add(2*time.Hour))
	assert.Equal(t, 1, w.pending())

	require.NoError(t, w.Shutdown(context.Background()))
}

func TestMissionWorker_ScheduleAfterShutdownIsIgnored(t *testing.T) {
	claimer := new(MockMissionClaimer)
	w := NewMissionWorker(claimer)
	require.NoError(t, w.Shutdown(context.Background()))

	w.Schedule(uuid.New(), time.Now().Add(-time.Second))
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, 0, w.pending())
	claimer.AssertNotCalled(t, "ClaimMission", mock.Anything, mock.Anything)
}

func TestMissionWorker_ReplacedDeadlineDoesNotFire(t *testing.T) {
	charID := uuid.New()
	claimer := new(MockMissionClaimer)
	w := NewMissionWorker(claimer)

	w.Schedule(charID, time.Now().Add(10*time.Millisecond))
	w.Schedule(charID, time.Now().Add(time.Hour))
	time.Sleep(40 * time.Millisecond)

	assert.Equal(t, 1, w.pending())
	claimer.AssertNotCalled(t, "ClaimMission", mock.Anything, mock.Anything)
	require.NoError(t, w.Shutdown(context.Background()))
}
