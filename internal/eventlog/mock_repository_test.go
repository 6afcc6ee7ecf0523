package eventlog

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockRepository records journal writes for assertions
type MockRepository struct {
	mock.Mock
}

var _ Repository = (*MockRepository)(nil)

func (m *MockRepository) LogEvent(ctx context.Context, eventType string, characterID *uuid.UUID, payload, metadata map[string]interface{}) error {
	return m.Called(ctx, eventType, characterID, payload, metadata).Error(0)
}

func (m *MockRepository) GetEvents(ctx context.Context, filter EventFilter) ([]Event, error) {
	args := m.Called(ctx, filter)
	events, _ := args.Get(0).([]Event)
	return events, args.Error(1)
}

func (m *MockRepository) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	args := m.Called(ctx, retentionDays)
	n, _ := args.Get(0).(int64)
	return n, args.Error(1)
}
