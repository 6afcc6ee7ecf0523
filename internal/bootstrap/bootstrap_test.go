package bootstrap

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/QuestForge_Go/internal/config"
	"github.com/osse101/QuestForge_Go/internal/content"
	"github.com/osse101/QuestForge_Go/internal/event"
	"github.com/osse101/QuestForge_Go/internal/eventlog"
	"github.com/osse101/QuestForge_Go/internal/game"
	"github.com/osse101/QuestForge_Go/internal/repository/memory"
	"github.com/osse101/QuestForge_Go/internal/sse"
	"github.com/osse101/QuestForge_Go/internal/worker"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		LogLevel:        "info",
		LogFormat:       "text",
		Environment:     "test",
		Storage:         config.StorageMemory,
		ContentCacheTTL: 0,
		SyncWorkers:     1,
		DeadLetterPath:  filepath.Join(t.TempDir(), "dl", "events.jsonl"),
	}
}

func TestSetupLogger_StdoutOnly(t *testing.T) {
	f, err := SetupLogger(testConfig(t))
	require.NoError(t, err)
	assert.Nil(t, f)
}

func TestSetupLogger_WritesSessionFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.LogDir = filepath.Join(t.TempDir(), "logs")

	f, err := SetupLogger(cfg)
	require.NoError(t, err)
	require.NotNil(t, f)
	t.Cleanup(func() { _ = f.Close() })

	entries, err := os.ReadDir(cfg.LogDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCleanupLogs_KeepsNewest(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 12; i++ {
		name := fmt.Sprintf("session_2026-01-%02d_00-00-00.log", i+1)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o600))

	cleanupLogs(dir)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var logs []string
	for _, e := range entries {
		if filepath.Ext(e.Name()) == LogFileExtension {
			logs = append(logs, e.Name())
		}
	}
	assert.Len(t, logs, LogFileRetentionCount)
	assert.NotContains(t, logs, "session_2026-01-01_00-00-00.log")
	assert.Contains(t, logs, "session_2026-01-12_00-00-00.log")
	assert.FileExists(t, filepath.Join(dir, "notes.txt"))
}

func TestInitializeEventSystem(t *testing.T) {
	cfg := testConfig(t)

	bus, pub, err := InitializeEventSystem(cfg)
	require.NoError(t, err)
	require.NotNil(t, bus)
	require.NotNil(t, pub)
	t.Cleanup(func() { _ = pub.Shutdown(context.Background()) })

	assert.DirExists(t, filepath.Dir(cfg.DeadLetterPath))
}

func TestResolveEventSettings(t *testing.T) {
	s := resolveEventSettings(&config.Config{EventMaxRetries: 0, EventRetryDelay: 0})
	assert.Equal(t, 0, s.maxRetries)
	assert.Equal(t, EventDefaultRetryDelay, s.retryDelay)
	assert.Equal(t, EventDefaultDeadLetterPath, s.deadLetter)

	s = resolveEventSettings(&config.Config{EventMaxRetries: -1, EventRetryDelay: time.Second, DeadLetterPath: "x.jsonl"})
	assert.Equal(t, EventDefaultMaxRetries, s.maxRetries)
	assert.Equal(t, time.Second, s.retryDelay)
	assert.Equal(t, "x.jsonl", s.deadLetter)
}

func TestInitializeStorage_Memory(t *testing.T) {
	s, err := InitializeStorage(context.Background(), testConfig(t))
	require.NoError(t, err)

	assert.IsType(t, &memory.Store{}, s.Store)
	assert.IsType(t, &eventlog.MemoryRepository{}, s.Journal)
	assert.Nil(t, s.Pool)
	assert.Nil(t, s.Snapshots)
	s.Close()
}

func TestInitializeContent(t *testing.T) {
	t.Run("defaults are not reloadable", func(t *testing.T) {
		c := InitializeContent(context.Background(), testConfig(t))
		assert.Nil(t, c.Cache)
		assert.NotEmpty(t, c.Provider.Tables(context.Background()).Missions)
	})

	t.Run("file source is cached", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "content.json")
		data, err := json.Marshal(content.Defaults())
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, data, 0o600))

		cfg := testConfig(t)
		cfg.ContentFile = path
		cfg.ContentCacheTTL = 1 << 40

		c := InitializeContent(context.Background(), cfg)
		require.NotNil(t, c.Cache)
		assert.NotEmpty(t, c.Provider.Tables(context.Background()).Dungeons)
	})
}

func TestInitializeReplicator(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	storage := &Storage{Store: memory.NewStore()}

	r, outbox, err := InitializeReplicator(ctx, cfg, storage, nil)
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Nil(t, outbox)

	cfg.SyncOutboxPath = filepath.Join(t.TempDir(), "outbox.db")
	r, outbox, err = InitializeReplicator(ctx, cfg, storage, nil)
	require.NoError(t, err)
	require.NotNil(t, outbox)
	t.Cleanup(func() { _ = outbox.Close() })

	n, err := r.Drain(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRegisterEventHandlers_WiresJournalAndStream(t *testing.T) {
	cfg := testConfig(t)
	bus := event.NewMemoryBus()
	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	provider := content.NewStaticProvider(content.Defaults())
	svc := game.NewService(game.Deps{Store: memory.NewStore(), Content: provider})
	journal := eventlog.NewService(eventlog.NewMemoryRepository())
	hub := sse.NewHub()
	hub.Start()

	require.NoError(t, RegisterEventHandlers(EventHandlerDependencies{
		EventBus:   bus,
		Service:    svc,
		WorkerPool: pool,
		Journal:    journal,
		Stream:     hub,
		Config:     cfg,
	}))

	id := uuid.New()
	client := hub.Register(nil, id)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, bus.Publish(context.Background(), event.Event{
		Version: event.EventSchemaVersion,
		Type:    event.TaskCompleted,
		Payload: event.TaskPayloadV1{CharacterID: id, TaskID: uuid.New(), EXP: 10},
	}))

	history, err := journal.History(context.Background(), id, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, string(event.TaskCompleted), history[0].EventType)

	select {
	case e := <-client.EventChannel:
		assert.Equal(t, string(event.TaskCompleted), e.Type)
	case <-time.After(time.Second):
		t.Fatal("stream did not receive event")
	}

	GracefulShutdown(context.Background(), ShutdownComponents{Stream: hub})
	_, open := <-client.EventChannel
	assert.False(t, open)
}
