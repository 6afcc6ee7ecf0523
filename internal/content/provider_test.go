package content

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/QuestForge_Go/internal/domain"
	"github.com/osse101/QuestForge_Go/internal/validation"
)

type MockSource struct {
	mock.Mock
}

func (m *MockSource) Fetch(ctx context.Context) (*Tables, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Tables), args.Error(1)
}

func TestDefaults_AreValid(t *testing.T) {
	require.NoError(t, Validate(Defaults()))
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Tables)
	}{
		{"gap in enhancement", func(t *Tables) { t.Enhancement[1].Level = 5 }},
		{"unknown achievement key", func(t *Tables) { t.Achievements[0].Key = "pets_adopted" }},
		{"duplicate achievement", func(t *Tables) { t.Achievements[1].ID = t.Achievements[0].ID }},
		{"bad mission stat", func(t *Tables) { t.Missions[0].PrimaryStat = "agility" }},
		{"zero duration", func(t *Tables) { t.Missions[0].Duration = 0 }},
		{"bad dungeon tier", func(t *Tables) { t.Dungeons[0].Tier = 9 }},
		{"oversized party", func(t *Tables) { t.Dungeons[0].MaxPartySize = 6 }},
		{"no version", func(t *Tables) { t.Version = "" }},
		{"bands overflow", func(t *Tables) { t.LootBands.Materials = 0.9 }},
		{"bad material range", func(t *Tables) { t.LootBands.MaterialMax = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tables := Defaults()
			tt.mutate(tables)
			assert.Error(t, Validate(tables))
		})
	}
}

func TestTablesLookups(t *testing.T) {
	tables := Defaults()

	m, ok := tables.Mission("library_study")
	require.True(t, ok)
	assert.Equal(t, domain.StatWisdom, m.PrimaryStat)

	_, ok = tables.Dungeon("nowhere")
	assert.False(t, ok)

	step, ok := tables.EnhancementFor(1)
	require.True(t, ok)
	assert.InDelta(t, 1.0, step.SuccessRate, 1e-9)
	assert.Equal(t, 10, tables.MaxEnhancement())

	assert.Equal(t, 8, tables.SalvageYield(domain.RarityRare, 2))
}

func TestCachedProvider_CachesSuccessfulFetch(t *testing.T) {
	ctx := context.Background()
	remote := Defaults()
	remote.Version = "remote-7"

	src := new(MockSource)
	src.On("Fetch", mock.Anything).Return(remote, nil).Once()

	p := NewCachedProvider(src, time.Minute)
	assert.Equal(t, "remote-7", p.Tables(ctx).Version)
	assert.Equal(t, "remote-7", p.Tables(ctx).Version)

	src.AssertExpectations(t)
}

func TestCachedProvider_FallsBackToDefaults(t *testing.T) {
	src := new(MockSource)
	src.On("Fetch", mock.Anything).Return(nil, errors.New("connection refused")).Once()

	p := NewCachedProvider(src, time.Minute)
	assert.Equal(t, DefaultVersion, p.Tables(context.Background()).Version)
	src.AssertExpectations(t)
}

func TestCachedProvider_FallsBackToLastGood(t *testing.T) {
	ctx := context.Background()
	good := Defaults()
	good.Version = "remote-1"
	bad := Defaults()
	bad.Enhancement = nil

	src := new(MockSource)
	src.On("Fetch", mock.Anything).Return(good, nil).Once()
	src.On("Fetch", mock.Anything).Return(bad, nil).Once()

	p := NewCachedProvider(src, time.Minute)
	assert.Equal(t, "remote-1", p.Tables(ctx).Version)

	p.Invalidate()
	assert.Equal(t, "remote-1", p.Tables(ctx).Version)
	src.AssertExpectations(t)
}

func TestCachedProvider_NilSource(t *testing.T) {
	p := NewCachedProvider(nil, time.Minute)
	assert.Equal(t, DefaultVersion, p.Tables(context.Background()).Version)
}

func TestHTTPSource(t *testing.T) {
	remote := Defaults()
	remote.Version = "http-3"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(remote)
	}))
	defer srv.Close()

	tables, err := NewHTTPSource(srv.URL, time.Second).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "http-3", tables.Version)
	assert.Len(t, tables.Missions, len(remote.Missions))
	assert.NoError(t, Validate(tables))
}

func TestHTTPSource_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL, time.Second).Fetch(context.Background())
	assert.Error(t, err)
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.json")
	data, err := json.Marshal(Defaults())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	tables, err := (&FileSource{Path: path}).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultVersion, tables.Version)

	_, err = (&FileSource{Path: filepath.Join(t.TempDir(), "missing.json")}).Fetch(context.Background())
	assert.Error(t, err)
}

func TestFileSource_RejectsSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing missions", `{"version":"x","enhancement":[{"level":1,"success_rate":1}],"salvage":{},"rarity_weights":{},"dungeons":[]}`},
		{"mission rate above one", `{"version":"x","enhancement":[{"level":1,"success_rate":1}],"salvage":{},"rarity_weights":{},` +
			`"missions":[{"id":"m","name":"M","duration":1,"base_success_rate":1.5}],` +
			`"dungeons":[{"id":"d","name":"D","rooms":[{"id":"r","kind":"boss"}]}]}`},
		{"dungeon without rooms", `{"version":"x","enhancement":[{"level":1,"success_rate":1}],"salvage":{},"rarity_weights":{},` +
			`"missions":[{"id":"m","name":"M","duration":1,"base_success_rate":0.5}],` +
			`"dungeons":[{"id":"d","name":"D","rooms":[]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "content.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.doc), 0o600))

			_, err := (&FileSource{Path: path}).Fetch(context.Background())
			assert.ErrorIs(t, err, validation.ErrSchemaValidation)
		})
	}
}

func TestFileSource_RejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":`), 0o600))

	_, err := (&FileSource{Path: path}).Fetch(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, validation.ErrSchemaValidation)
}
