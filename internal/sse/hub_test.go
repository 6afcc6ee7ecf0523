package sse

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/QuestForge_Go/internal/event"
	"github.com/osse101/QuestForge_Go/internal/testing/leaktest"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	h := NewHub()
	h.Start()
	t.Cleanup(h.Stop)
	return h
}

func waitClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return h.ClientCount() == n }, time.Second, 5*time.Millisecond)
}

func receive(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case e := <-c.EventChannel:
		return e
	case <-time.After(time.Second):
		t.Fatal("no event received")
		return Event{}
	}
}

func assertNothing(t *testing.T, c *Client) {
	t.Helper()
	select {
	case e := <-c.EventChannel:
		t.Fatalf("unexpected event %q", e.Type)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_FiltersByType(t *testing.T) {
	h := startHub(t)
	all := h.Register(nil, uuid.Nil)
	missions := h.Register([]string{"mission.resolved"}, uuid.Nil)
	waitClients(t, h, 2)

	h.Broadcast("task.completed", map[string]interface{}{"n": 1})

	assert.Equal(t, "task.completed", receive(t, all).Type)
	assertNothing(t, missions)
}

func TestHub_FiltersByCharacter(t *testing.T) {
	h := startHub(t)
	alice, bob := uuid.New(), uuid.New()
	aliceClient := h.Register(nil, alice)
	bobClient := h.Register(nil, bob)
	waitClients(t, h, 2)

	h.Broadcast("task.completed", nil, alice)
	assert.Equal(t, "task.completed", receive(t, aliceClient).Type)
	assertNothing(t, bobClient)

	// unowned events reach everyone
	h.Broadcast("streak.at_risk", nil)
	assert.Equal(t, "streak.at_risk", receive(t, aliceClient).Type)
	assert.Equal(t, "streak.at_risk", receive(t, bobClient).Type)
}

func TestHub_UnregisterClosesChannel(t *testing.T) {
	h := startHub(t)
	c := h.Register(nil, uuid.Nil)
	waitClients(t, h, 1)

	h.Unregister(c.ID)
	waitClients(t, h, 0)

	_, ok := <-c.EventChannel
	assert.False(t, ok)
}

func TestHub_StopIsIdempotent(t *testing.T) {
	h := NewHub()
	h.Start()
	c := h.Register(nil, uuid.Nil)
	waitClients(t, h, 1)

	h.Stop()
	h.Stop()

	_, ok := <-c.EventChannel
	assert.False(t, ok)
}

func TestFormatSSEMessage(t *testing.T) {
	msg, err := FormatSSEMessage(Event{ID: "1", Type: "task.completed", Timestamp: 10, Payload: map[string]int{"exp": 5}})
	require.NoError(t, err)

	s := string(msg)
	assert.True(t, strings.HasPrefix(s, "id: 1\nevent: task.completed\ndata: {"))
	assert.Contains(t, s, `"exp":5`)
	assert.True(t, strings.HasSuffix(s, "\n\n"))
}

func TestSubscriber_RoutesByOwner(t *testing.T) {
	h := startHub(t)
	bus := event.NewMemoryBus()
	NewSubscriber(h).Subscribe(bus)

	owner, member, other := uuid.New(), uuid.New(), uuid.New()
	ownerClient := h.Register(nil, owner)
	memberClient := h.Register(nil, member)
	otherClient := h.Register(nil, other)
	waitClients(t, h, 3)

	require.NoError(t, bus.Publish(context.Background(), event.Event{
		Version: event.EventSchemaVersion,
		Type:    event.TaskCompleted,
		Payload: event.TaskPayloadV1{CharacterID: owner, TaskID: uuid.New(), EXP: 10},
	}))
	got := receive(t, ownerClient)
	assert.Equal(t, string(event.TaskCompleted), got.Type)
	payload, ok := got.Payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, owner.String(), payload["character_id"])
	assertNothing(t, otherClient)

	require.NoError(t, bus.Publish(context.Background(), event.Event{
		Version: event.EventSchemaVersion,
		Type:    event.DungeonResolved,
		Payload: event.DungeonPayloadV1{RunID: uuid.New(), PartyIDs: []uuid.UUID{owner, member}},
	}))
	assert.Equal(t, string(event.DungeonResolved), receive(t, ownerClient).Type)
	assert.Equal(t, string(event.DungeonResolved), receive(t, memberClient).Type)
	assertNothing(t, otherClient)
}

func TestHandler_RejectsBadCharacter(t *testing.T) {
	h := startHub(t)
	rec := httptest.NewRecorder()
	Handler(h)(rec, httptest.NewRequest(http.MethodGet, "/stream?character=nope", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_StreamsEvents(t *testing.T) {
	h := startHub(t)
	srv := httptest.NewServer(Handler(h))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"?types=task.completed", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := bufio.NewScanner(resp.Body)
	next := func() string {
		for lines.Scan() {
			if strings.HasPrefix(lines.Text(), "event: ") {
				return strings.TrimPrefix(lines.Text(), "event: ")
			}
		}
		return ""
	}

	assert.Equal(t, EventTypeConnected, next())
	waitClients(t, h, 1)

	h.Broadcast("mission.resolved", nil)
	h.Broadcast("task.completed", nil)
	assert.Equal(t, "task.completed", next())
}

func TestHub_StopReleasesGoroutines(t *testing.T) {
	leaktest.CheckNoGoroutineLeak(t, func() {
		h := NewHub()
		h.Start()
		h.Register(nil, uuid.Nil)
		h.Broadcast("task.completed", nil)
		h.Stop()
	})
}
