package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/QuestForge_Go/internal/domain"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	var got Event
	bus.Subscribe(StreakAtRisk, func(ctx context.Context, e Event) error {
		got = e
		return nil
	})

	c := domain.NewCharacter("pell", domain.ClassRogue)
	c.CurrentStreak = 12
	require.NoError(t, bus.Publish(context.Background(), NewStreakAtRiskEvent(c)))

	assert.Equal(t, StreakAtRisk, got.Type)
	assert.Equal(t, EventSchemaVersion, got.Version)
	payload, err := DecodePayload[StreakPayloadV1](got.Payload)
	require.NoError(t, err)
	assert.Equal(t, 12, payload.Streak)
}

func TestMemoryBus_PublishMultipleHandlers(t *testing.T) {
	bus := NewMemoryBus()
	count := 0
	handler := func(ctx context.Context, e Event) error {
		count++
		return nil
	}
	bus.Subscribe(TaskCompleted, handler)
	bus.Subscribe(TaskCompleted, handler)

	require.NoError(t, bus.Publish(context.Background(), Event{Version: EventSchemaVersion, Type: TaskCompleted}))
	assert.Equal(t, 2, count)
}

func TestMemoryBus_NoSubscribers(t *testing.T) {
	assert.NoError(t, NewMemoryBus().Publish(context.Background(), Event{Type: DungeonResolved}))
}

func TestMemoryBus_PublishError(t *testing.T) {
	bus := NewMemoryBus()
	bus.Subscribe(TaskCompleted, func(ctx context.Context, e Event) error {
		return errors.New("handler error")
	})

	err := bus.Publish(context.Background(), Event{Version: EventSchemaVersion, Type: TaskCompleted})
	assert.Error(t, err)
}

func TestDecodePayload_FromJSONShape(t *testing.T) {
	id := uuid.New()
	raw := map[string]interface{}{
		"character_id": id.String(),
		"old_level":    3,
		"new_level":    4,
		"source":       "mission",
	}

	p, err := DecodePayload[LevelUpPayloadV1](raw)
	require.NoError(t, err)
	assert.Equal(t, id, p.CharacterID)
	assert.Equal(t, 4, p.NewLevel)
}

func TestDecodePayload_RawJSONAndNil(t *testing.T) {
	id := uuid.New()
	raw := json.RawMessage(`{"character_id":"` + id.String() + `","new_level":7}`)

	p, err := DecodePayload[LevelUpPayloadV1](raw)
	require.NoError(t, err)
	assert.Equal(t, id, p.CharacterID)
	assert.Equal(t, 7, p.NewLevel)

	p, err = DecodePayload[LevelUpPayloadV1]([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, 7, p.NewLevel)

	_, err = DecodePayload[LevelUpPayloadV1](nil)
	assert.ErrorIs(t, err, ErrNilPayload)
}

func TestGetMetadataValue(t *testing.T) {
	e := NewLevelUpEvent(uuid.New(), 1, 2, "dungeon")
	assert.Equal(t, "dungeon", e.GetMetadataValue("source"))
	assert.Nil(t, Event{}.GetMetadataValue("source"))
}
