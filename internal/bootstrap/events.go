package bootstrap

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/osse101/QuestForge_Go/internal/config"
	"github.com/osse101/QuestForge_Go/internal/event"
)

type eventSettings struct {
	maxRetries int
	retryDelay time.Duration
	deadLetter string
}

// resolveEventSettings fills unset values. A zero retry count is honored
// (dead-letter on first failure); a non-positive delay is not.
func resolveEventSettings(cfg *config.Config) eventSettings {
	s := eventSettings{
		maxRetries: cfg.EventMaxRetries,
		retryDelay: cfg.EventRetryDelay,
		deadLetter: cfg.DeadLetterPath,
	}
	if s.maxRetries < 0 {
		s.maxRetries = EventDefaultMaxRetries
	}
	if s.retryDelay <= 0 {
		s.retryDelay = EventDefaultRetryDelay
	}
	if s.deadLetter == "" {
		s.deadLetter = EventDefaultDeadLetterPath
	}
	return s
}

// InitializeEventSystem creates the in-process bus and the resilient
// publisher the game service emits through
func InitializeEventSystem(cfg *config.Config) (event.Bus, *event.ResilientPublisher, error) {
	s := resolveEventSettings(cfg)
	bus := event.NewMemoryBus()

	publisher, err := event.NewResilientPublisher(bus, s.maxRetries, s.retryDelay, s.deadLetter)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateResilientPublisher, err)
	}

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", s.maxRetries,
		"retry_delay", s.retryDelay,
		"deadletter_path", s.deadLetter)
	return bus, publisher, nil
}
