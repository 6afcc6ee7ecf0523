package metrics

import (
	"context"
	"strings"

	"github.com/osse101/QuestForge_Go/internal/event"
	"github.com/osse101/QuestForge_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	for _, eventType := range event.AllTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}
	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	// Always increment event counter
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.TaskCompleted, event.TaskConfirmed:
		var p event.TaskPayloadV1
		if p, err = event.DecodePayload[event.TaskPayloadV1](evt.Payload); err == nil {
			TasksByOutcome.WithLabelValues(outcomeLabel(evt.Type)).Inc()
			EXPGranted.WithLabelValues("task").Add(float64(p.EXP))
			GoldGranted.WithLabelValues("task").Add(float64(p.Gold))
		}

	case event.TaskEscrowed, event.TaskDisputed:
		TasksByOutcome.WithLabelValues(outcomeLabel(evt.Type)).Inc()

	case event.MissionResolved:
		var p event.MissionPayloadV1
		if p, err = event.DecodePayload[event.MissionPayloadV1](evt.Payload); err == nil {
			outcome := OutcomeFailure
			if p.Success {
				outcome = OutcomeSuccess
			}
			MissionsByOutcome.WithLabelValues(outcome).Inc()
			EXPGranted.WithLabelValues("mission").Add(float64(p.EXP))
			GoldGranted.WithLabelValues("mission").Add(float64(p.Gold))
		}

	case event.DungeonResolved:
		var p event.DungeonPayloadV1
		if p, err = event.DecodePayload[event.DungeonPayloadV1](evt.Payload); err == nil {
			DungeonRuns.WithLabelValues(string(p.Status), string(p.Grade)).Inc()
		}

	case event.CharacterLeveledUp:
		var p event.LevelUpPayloadV1
		if p, err = event.DecodePayload[event.LevelUpPayloadV1](evt.Payload); err == nil {
			source := p.Source
			if source == "" {
				source = "unknown"
			}
			LevelUps.WithLabelValues(source).Add(float64(p.NewLevel - p.OldLevel))
		}

	case event.AchievementUnlocked:
		AchievementsUnlocked.Inc()

	case event.EquipmentEnhanced, event.EquipmentSalvaged:
		var p event.ForgePayloadV1
		if p, err = event.DecodePayload[event.ForgePayloadV1](evt.Payload); err == nil {
			outcome := OutcomeFailure
			if p.Success {
				outcome = OutcomeSuccess
			}
			op := strings.TrimPrefix(string(evt.Type), "equipment.")
			ForgeOperations.WithLabelValues(op, outcome).Inc()
		}
	}

	if err != nil {
		log.Debug(LogMsgEventPayloadUndecodable, "type", evt.Type, "error", err)
		EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

// RecordCollaboratorFailure counts a swallowed collaborator error
func RecordCollaboratorFailure(collaborator string) {
	CollaboratorFailures.WithLabelValues(collaborator).Inc()
}

func outcomeLabel(t event.Type) string {
	return strings.TrimPrefix(string(t), "task.")
}
