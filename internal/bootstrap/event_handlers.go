package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/osse101/QuestForge_Go/internal/config"
	"github.com/osse101/QuestForge_Go/internal/discord"
	"github.com/osse101/QuestForge_Go/internal/event"
	"github.com/osse101/QuestForge_Go/internal/eventlog"
	"github.com/osse101/QuestForge_Go/internal/game"
	"github.com/osse101/QuestForge_Go/internal/metrics"
	"github.com/osse101/QuestForge_Go/internal/sse"
	"github.com/osse101/QuestForge_Go/internal/worker"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus      event.Bus
	Service       game.Service
	WorkerPool    *worker.Pool
	MissionWorker *worker.MissionWorker
	Journal       eventlog.Service
	Stream        *sse.Hub
	Config        *config.Config
}

// RegisterEventHandlers sets up all event subscribers:
// - Metrics collector (event-derived counters)
// - Discord notifier (level-ups, missions, dungeons, streaks, achievements, bonds)
// - Mission worker (timers for newly started missions)
// - Event journal (per-character activity history)
// - Live stream bridge (server-sent events)
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	sender, err := newSender(deps.Config)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedCreateDiscordSender, err)
	}
	notifier := discord.NewNotifier(sender, deps.WorkerPool, characterNames(deps.Service))
	notifier.Register(deps.EventBus)
	slog.Info(LogMsgNotifierRegistered, "discord", deps.Config.DiscordToken != "")

	if deps.MissionWorker != nil {
		deps.MissionWorker.Subscribe(deps.EventBus)
	}

	if deps.Journal != nil {
		if err := deps.Journal.Subscribe(deps.EventBus); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedSubscribeEventLogger, err)
		}
		slog.Info(LogMsgEventLoggerInitialized)
	}

	if deps.Stream != nil {
		sse.NewSubscriber(deps.Stream).Subscribe(deps.EventBus)
	}
	return nil
}

func newSender(cfg *config.Config) (discord.Sender, error) {
	if cfg.DiscordToken == "" {
		return discord.LogSender{}, nil
	}
	return discord.NewChannelSender(cfg.DiscordToken, cfg.DiscordChannelID)
}

// characterNames resolves display names for notifications, falling back to
// an empty name so the notifier can use the short ID.
func characterNames(svc game.Service) discord.NameFunc {
	return func(ctx context.Context, id uuid.UUID) string {
		c, err := svc.GetCharacter(ctx, id)
		if err != nil {
			return ""
		}
		return c.Name
	}
}
