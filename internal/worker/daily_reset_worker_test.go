package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDailyResetter struct {
	mock.Mock
}

func (m *MockDailyResetter) ResetRecurring(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}

func TestTimeUntilNextReset(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*60*60)

	tests := []struct {
		name string
		now  time.Time
		loc  *time.Location
		want time.Duration
	}{
		{"utc evening", time.Date(2026, 3, 1, 22, 0, 0, 0, time.UTC), time.UTC, 2 * time.Hour},
		{"utc exactly midnight", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), time.UTC, 24 * time.Hour},
		{"offset zone", time.Date(2026, 3, 1, 16, 30, 0, 0, time.UTC), loc, 30 * time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, timeUntilNextReset(tt.now, tt.loc))
		})
	}
}

func TestDailyResetWorker_RunNow(t *testing.T) {
	resetter := new(MockDailyResetter)
	resetter.On("ResetRecurring", mock.Anything, mock.AnythingOfType("time.Time")).Return(3, nil).Once()

	w := NewDailyResetWorker(resetter, nil)
	w.RunNow(context.Background())

	resetter.AssertExpectations(t)
}

func TestDailyResetWorker_RunNowError(t *testing.T) {
	resetter := new(MockDailyResetter)
	resetter.On("ResetRecurring", mock.Anything, mock.Anything).Return(0, errors.New("db down")).Once()

	w := NewDailyResetWorker(resetter, time.UTC)
	assert.NotPanics(t, func() { w.RunNow(context.Background()) })

	resetter.AssertExpectations(t)
}

func TestDailyResetWorker_StartAndShutdown(t *testing.T) {
	resetter := new(MockDailyResetter)
	w := NewDailyResetWorker(resetter, time.UTC)

	w.Start()
	w.mu.Lock()
	assert.NotNil(t, w.timer)
	w.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, w.Shutdown(ctx))
	require.NoError(t, w.Shutdown(ctx))

	// No reset runs after shutdown
	resetter.AssertNotCalled(t, "ResetRecurring", mock.Anything, mock.Anything)
}
