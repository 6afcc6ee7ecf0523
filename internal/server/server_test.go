package server

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/QuestForge_Go/internal/content"
	"github.com/osse101/QuestForge_Go/internal/domain"
	"github.com/osse101/QuestForge_Go/internal/eventlog"
	"github.com/osse101/QuestForge_Go/internal/game"
	"github.com/osse101/QuestForge_Go/internal/handler"
	"github.com/osse101/QuestForge_Go/internal/repository/memory"
	"github.com/osse101/QuestForge_Go/internal/sse"
)

const testAPIKey = "test-key"

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	provider := content.NewStaticProvider(content.Defaults())
	svc := game.NewService(game.Deps{Store: memory.NewStore(), Content: provider})
	journal := eventlog.NewService(eventlog.NewMemoryRepository())
	return NewServer(Options{Port: 0, APIKey: testAPIKey, Journal: journal}, svc, provider).Handler()
}

func call(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(HeaderAPIKey, testAPIKey)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_PublicRoutes(t *testing.T) {
	h := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz", "/version", "/metrics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestRouter_SwaggerDoc(t *testing.T) {
	h := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var doc struct {
		Swagger string                 `json:"swagger"`
		Info    map[string]interface{} `json:"info"`
		Paths   map[string]interface{} `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "2.0", doc.Swagger)
	assert.Equal(t, "QuestForge API", doc.Info["title"])
	assert.Contains(t, doc.Paths, "/api/v1/tasks/{id}/complete")
	assert.Contains(t, rec.Header().Get(HeaderContentSecurity), "'self'")
}

func TestRouter_RequiresAPIKey(t *testing.T) {
	h := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/content/missions", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_CharacterFlow(t *testing.T) {
	h := newTestServer(t)

	rec := call(t, h, http.MethodPost, "/api/v1/characters", handler.CreateCharacterRequest{Name: "Aria", Class: "Warrior"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created domain.PlayerCharacter
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, domain.ClassWarrior, created.Class)

	rec = call(t, h, http.MethodGet, "/api/v1/characters/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = call(t, h, http.MethodPost, "/api/v1/tasks", handler.CreateTaskRequest{
		OwnerID: created.ID, Title: "Read a chapter", Category: "mental", BaseEXP: 30, BaseGold: 5,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var task domain.GameTask
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&task))

	rec = call(t, h, http.MethodPost, "/api/v1/tasks/"+task.ID.String()+"/complete", handler.CompleteTaskRequest{})
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = call(t, h, http.MethodPost, "/api/v1/tasks/"+task.ID.String()+"/complete", handler.CompleteTaskRequest{})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = call(t, h, http.MethodGet, "/api/v1/characters/"+created.ID.String()+"/tasks", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = call(t, h, http.MethodGet, "/api/v1/characters/"+created.ID.String()+"/events?limit=5", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_AdminRoutes(t *testing.T) {
	h := newTestServer(t)

	for _, path := range []string{
		"/api/v1/admin/escrow/sweep",
		"/api/v1/admin/recurring/reset",
		"/api/v1/admin/streaks/check",
		"/api/v1/admin/outbox/drain",
		"/api/v1/admin/content/reload",
	} {
		rec := call(t, h, http.MethodPost, path, nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestRouter_UnknownRun(t *testing.T) {
	h := newTestServer(t)

	rec := call(t, h, http.MethodGet, "/api/v1/dungeons/runs/"+"00000000-0000-0000-0000-000000000001", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_StreamThroughMiddleware(t *testing.T) {
	hub := sse.NewHub()
	hub.Start()
	defer hub.Stop()

	provider := content.NewStaticProvider(content.Defaults())
	svc := game.NewService(game.Deps{Store: memory.NewStore(), Content: provider})
	srv := httptest.NewServer(NewServer(Options{APIKey: testAPIKey, Stream: hub}, svc, provider).Handler())
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/stream", nil)
	require.NoError(t, err)
	req.Header.Set(HeaderAPIKey, testAPIKey)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	lines := bufio.NewScanner(resp.Body)
	var first string
	for lines.Scan() {
		if strings.HasPrefix(lines.Text(), "event: ") {
			first = strings.TrimPrefix(lines.Text(), "event: ")
			break
		}
	}
	assert.Equal(t, sse.EventTypeConnected, first)
}
