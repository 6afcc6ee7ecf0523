// Package memory is a map-backed repository.Store used by service tests and
// by the app when no database is configured.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/osse101/QuestForge_Go/internal/domain"
	"github.com/osse101/QuestForge_Go/internal/repository"
)

type tables struct {
	characters map[uuid.UUID]*domain.PlayerCharacter
	tasks      map[uuid.UUID]*domain.GameTask
	bundles    map[uuid.UUID]*domain.RoutineBundle
	bonds      map[uuid.UUID]*domain.Bond
	runs       map[uuid.UUID]*domain.DungeonRun
}

func newTables() tables {
	return tables{
		characters: make(map[uuid.UUID]*domain.PlayerCharacter),
		tasks:      make(map[uuid.UUID]*domain.GameTask),
		bundles:    make(map[uuid.UUID]*domain.RoutineBundle),
		bonds:      make(map[uuid.UUID]*domain.Bond),
		runs:       make(map[uuid.UUID]*domain.DungeonRun),
	}
}

// Store keeps deep copies of every aggregate so callers never share memory with it
type Store struct {
	mu sync.RWMutex
	t  tables
}

var _ repository.Store = (*Store)(nil)

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{t: newTables()}
}

// clone deep-copies through JSON, the same shape the postgres store persists
func clone[T any](v *T) *T {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("memory store: marshal %T: %v", v, err))
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		panic(fmt.Sprintf("memory store: unmarshal %T: %v", v, err))
	}
	return &out
}

func get[T any](mu *sync.RWMutex, m map[uuid.UUID]*T, id uuid.UUID, notFound error) (*T, error) {
	mu.RLock()
	defer mu.RUnlock()
	v, ok := m[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", notFound, id)
	}
	return clone(v), nil
}

func find[T any](mu *sync.RWMutex, m map[uuid.UUID]*T, match func(*T) bool, key func(*T) uuid.UUID) []*T {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]*T, 0)
	for _, v := range m {
		if match(v) {
			out = append(out, clone(v))
		}
	}
	// Stable order for callers and tests
	sort.Slice(out, func(i, j int) bool {
		a, b := key(out[i]), key(out[j])
		return a.String() < b.String()
	})
	return out
}

func put[T any](mu *sync.RWMutex, m map[uuid.UUID]*T, id uuid.UUID, v *T) error {
	if id == uuid.Nil {
		return fmt.Errorf("%w: missing id", domain.ErrInvalidInput)
	}
	cp := clone(v)
	mu.Lock()
	defer mu.Unlock()
	m[id] = cp
	return nil
}

// GetCharacter implements repository.Character
func (s *Store) GetCharacter(_ context.Context, id uuid.UUID) (*domain.PlayerCharacter, error) {
	return get(&s.mu, s.t.characters, id, domain.ErrCharacterNotFound)
}

// FindCharacters implements repository.Character
func (s *Store) FindCharacters(_ context.Context, q domain.CharacterQuery) ([]*domain.PlayerCharacter, error) {
	return find(&s.mu, s.t.characters, q.Matches, func(c *domain.PlayerCharacter) uuid.UUID { return c.ID }), nil
}

// UpsertCharacter implements repository.Character
func (s *Store) UpsertCharacter(_ context.Context, c *domain.PlayerCharacter) error {
	return put(&s.mu, s.t.characters, c.ID, c)
}

// DeleteCharacter implements repository.Character
func (s *Store) DeleteCharacter(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.t.characters, id)
	return nil
}

// GetTask implements repository.Task
func (s *Store) GetTask(_ context.Context, id uuid.UUID) (*domain.GameTask, error) {
	return get(&s.mu, s.t.tasks, id, domain.ErrTaskNotFound)
}

// FindTasks implements repository.Task
func (s *Store) FindTasks(_ context.Context, q domain.TaskQuery) ([]*domain.GameTask, error) {
	return find(&s.mu, s.t.tasks, q.Matches, func(t *domain.GameTask) uuid.UUID { return t.ID }), nil
}

// UpsertTask implements repository.Task
func (s *Store) UpsertTask(_ context.Context, t *domain.GameTask) error {
	return put(&s.mu, s.t.tasks, t.ID, t)
}

// DeleteTask implements repository.Task
func (s *Store) DeleteTask(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.t.tasks, id)
	return nil
}

// GetBundle implements repository.Task
func (s *Store) GetBundle(_ context.Context, id uuid.UUID) (*domain.RoutineBundle, error) {
	return get(&s.mu, s.t.bundles, id, domain.ErrBundleNotFound)
}

// UpsertBundle implements repository.Task
func (s *Store) UpsertBundle(_ context.Context, b *domain.RoutineBundle) error {
	return put(&s.mu, s.t.bundles, b.ID, b)
}

// GetBond implements repository.Bond
func (s *Store) GetBond(_ context.Context, id uuid.UUID) (*domain.Bond, error) {
	return get(&s.mu, s.t.bonds, id, domain.ErrBondNotFound)
}

// FindBonds implements repository.Bond
func (s *Store) FindBonds(_ context.Context, q domain.BondQuery) ([]*domain.Bond, error) {
	return find(&s.mu, s.t.bonds, q.Matches, func(b *domain.Bond) uuid.UUID { return b.ID }), nil
}

// UpsertBond implements repository.Bond
func (s *Store) UpsertBond(_ context.Context, b *domain.Bond) error {
	return put(&s.mu, s.t.bonds, b.ID, b)
}

// GetRun implements repository.DungeonRun
func (s *Store) GetRun(_ context.Context, id uuid.UUID) (*domain.DungeonRun, error) {
	return get(&s.mu, s.t.runs, id, domain.ErrRunNotFound)
}

// FindRuns implements repository.DungeonRun
func (s *Store) FindRuns(_ context.Context, q domain.RunQuery) ([]*domain.DungeonRun, error) {
	return find(&s.mu, s.t.runs, q.Matches, func(r *domain.DungeonRun) uuid.UUID { return r.ID }), nil
}

// UpsertRun implements repository.DungeonRun
func (s *Store) UpsertRun(_ context.Context, r *domain.DungeonRun) error {
	return put(&s.mu, s.t.runs, r.ID, r)
}

// BeginTx starts a unit of work that applies on Commit
func (s *Store) BeginTx(_ context.Context) (repository.Tx, error) {
	return &tx{store: s, staged: NewStore(), deleted: newDeletes()}, nil
}
