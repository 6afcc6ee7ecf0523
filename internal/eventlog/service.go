package eventlog

import (
	"context"

	"github.com/google/uuid"

	"github.com/osse101/QuestForge_Go/internal/event"
	"github.com/osse101/QuestForge_Go/internal/logger"
)

// Service records game events into a per-character journal
type Service interface {
	// Subscribe registers the journal on every game event type
	Subscribe(bus event.Bus) error

	// History returns a character's most recent events, newest first
	History(ctx context.Context, characterID uuid.UUID, limit int) ([]Event, error)

	// CleanupOldEvents removes events older than retention period
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}

type service struct {
	repo Repository
}

// NewService creates a new event journal service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Subscribe registers event handlers for all event types
func (s *service) Subscribe(bus event.Bus) error {
	for _, eventType := range event.AllTypes {
		bus.Subscribe(eventType, s.handleEvent)
	}
	return nil
}

// handleEvent writes one entry per character named in the payload
func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := event.DecodePayload[map[string]interface{}](evt.Payload)
	if err != nil || payload == nil {
		log.Debug(LogMsgEventPayloadNotMap, LogFieldType, evt.Type)
		return nil
	}
	metadata, _ := evt.Metadata.(map[string]interface{})

	for _, id := range characterIDs(payload) {
		if err := s.repo.LogEvent(ctx, string(evt.Type), id, payload, metadata); err != nil {
			log.Error(LogMsgFailedToLogEvent, LogFieldError, err, LogFieldType, evt.Type)
			return err
		}
	}

	log.Debug(LogMsgEventLogged, LogFieldType, evt.Type)
	return nil
}

// characterIDs extracts the characters an event belongs to. Events with no
// owner are logged once without one.
func characterIDs(payload map[string]interface{}) []*uuid.UUID {
	if id, ok := parseID(payload[PayloadKeyCharacterID]); ok {
		return []*uuid.UUID{&id}
	}
	if party, ok := payload[PayloadKeyPartyIDs].([]interface{}); ok && len(party) > 0 {
		ids := make([]*uuid.UUID, 0, len(party))
		for _, raw := range party {
			if id, ok := parseID(raw); ok {
				ids = append(ids, &id)
			}
		}
		if len(ids) > 0 {
			return ids
		}
	}
	return []*uuid.UUID{nil}
}

func parseID(raw interface{}) (uuid.UUID, bool) {
	s, ok := raw.(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// History returns the character's journal
func (s *service) History(ctx context.Context, characterID uuid.UUID, limit int) ([]Event, error) {
	if limit <= 0 || limit > MaxHistoryLimit {
		limit = DefaultHistoryLimit
	}
	return s.repo.GetEvents(ctx, EventFilter{CharacterID: &characterID, Limit: limit})
}

// CleanupOldEvents removes events older than the retention period
func (s *service) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	return s.repo.CleanupOldEvents(ctx, retentionDays)
}
