package sse

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/osse101/QuestForge_Go/internal/event"
	"github.com/osse101/QuestForge_Go/internal/logger"
)

// Subscriber bridges the internal event bus to the hub
type Subscriber struct {
	hub *Hub
}

// NewSubscriber creates a bus-to-hub bridge
func NewSubscriber(hub *Hub) *Subscriber {
	return &Subscriber{hub: hub}
}

// Subscribe registers the bridge on every game event type
func (s *Subscriber) Subscribe(bus event.Bus) {
	for _, t := range event.AllTypes {
		bus.Subscribe(t, s.handle)
	}
	slog.Info(LogMsgSubscribed, "types", len(event.AllTypes))
}

func (s *Subscriber) handle(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[map[string]interface{}](evt.Payload)
	if err != nil {
		// stream the raw payload; it just can't be routed per character
		s.hub.Broadcast(string(evt.Type), evt.Payload)
		return nil
	}

	characters := owners(payload)
	s.hub.Broadcast(string(evt.Type), payload, characters...)
	logger.FromContext(ctx).Debug(LogMsgEventBroadcast, "type", evt.Type, "characters", len(characters))
	return nil
}

func owners(payload map[string]interface{}) []uuid.UUID {
	var ids []uuid.UUID
	if raw, ok := payload[payloadKeyCharacterID].(string); ok {
		if id, err := uuid.Parse(raw); err == nil && id != uuid.Nil {
			ids = append(ids, id)
		}
	}
	if party, ok := payload[payloadKeyPartyIDs].([]interface{}); ok {
		for _, raw := range party {
			s, _ := raw.(string)
			if id, err := uuid.Parse(s); err == nil && id != uuid.Nil {
				ids = append(ids, id)
			}
		}
	}
	return ids
}
