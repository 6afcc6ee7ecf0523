package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/osse101/QuestForge_Go/internal/domain"
)

type deletes struct {
	characters map[uuid.UUID]bool
	tasks      map[uuid.UUID]bool
}

func newDeletes() deletes {
	return deletes{characters: make(map[uuid.UUID]bool), tasks: make(map[uuid.UUID]bool)}
}

// tx stages writes in a private store. Reads see staged values first.
type tx struct {
	store   *Store
	staged  *Store
	deleted deletes
	done    bool
}

func readThrough[T any](ctx context.Context, staged func(context.Context, uuid.UUID) (*T, error), base func(context.Context, uuid.UUID) (*T, error), id uuid.UUID, isDeleted bool, notFound error) (*T, error) {
	if isDeleted {
		return nil, notFound
	}
	if v, err := staged(ctx, id); err == nil {
		return v, nil
	}
	return base(ctx, id)
}

// mergeFind returns base results overlaid with staged writes
func mergeFind[T any](base, staged []*T, key func(*T) uuid.UUID, isDeleted func(uuid.UUID) bool) []*T {
	seen := make(map[uuid.UUID]bool, len(staged))
	out := make([]*T, 0, len(base)+len(staged))
	for _, v := range staged {
		seen[key(v)] = true
		out = append(out, v)
	}
	for _, v := range base {
		id := key(v)
		if seen[id] || isDeleted(id) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func (t *tx) GetCharacter(ctx context.Context, id uuid.UUID) (*domain.PlayerCharacter, error) {
	return readThrough(ctx, t.staged.GetCharacter, t.store.GetCharacter, id, t.deleted.characters[id], domain.ErrCharacterNotFound)
}

// FindCharacters applies q to the staged and committed records. A staged
// write that no longer matches hides the committed version.
func (t *tx) FindCharacters(ctx context.Context, q domain.CharacterQuery) ([]*domain.PlayerCharacter, error) {
	base, _ := t.store.FindCharacters(ctx, q)
	staged, _ := t.staged.FindCharacters(ctx, q)
	return mergeFind(base, staged, func(c *domain.PlayerCharacter) uuid.UUID { return c.ID }, func(id uuid.UUID) bool {
		return t.deleted.characters[id] || stagedHas(t.staged, t.staged.t.characters, id)
	}), nil
}

func (t *tx) UpsertCharacter(ctx context.Context, c *domain.PlayerCharacter) error {
	delete(t.deleted.characters, c.ID)
	return t.staged.UpsertCharacter(ctx, c)
}

func (t *tx) DeleteCharacter(ctx context.Context, id uuid.UUID) error {
	t.deleted.characters[id] = true
	return t.staged.DeleteCharacter(ctx, id)
}

func (t *tx) GetTask(ctx context.Context, id uuid.UUID) (*domain.GameTask, error) {
	return readThrough(ctx, t.staged.GetTask, t.store.GetTask, id, t.deleted.tasks[id], domain.ErrTaskNotFound)
}

func (t *tx) FindTasks(ctx context.Context, q domain.TaskQuery) ([]*domain.GameTask, error) {
	base, _ := t.store.FindTasks(ctx, q)
	staged, _ := t.staged.FindTasks(ctx, q)
	return mergeFind(base, staged, func(v *domain.GameTask) uuid.UUID { return v.ID }, func(id uuid.UUID) bool {
		return t.deleted.tasks[id] || stagedHas(t.staged, t.staged.t.tasks, id)
	}), nil
}

func (t *tx) UpsertTask(ctx context.Context, v *domain.GameTask) error {
	delete(t.deleted.tasks, v.ID)
	return t.staged.UpsertTask(ctx, v)
}

func (t *tx) DeleteTask(ctx context.Context, id uuid.UUID) error {
	t.deleted.tasks[id] = true
	return t.staged.DeleteTask(ctx, id)
}

func (t *tx) GetBundle(ctx context.Context, id uuid.UUID) (*domain.RoutineBundle, error) {
	return readThrough(ctx, t.staged.GetBundle, t.store.GetBundle, id, false, domain.ErrBundleNotFound)
}

func (t *tx) UpsertBundle(ctx context.Context, b *domain.RoutineBundle) error {
	return t.staged.UpsertBundle(ctx, b)
}

func (t *tx) GetBond(ctx context.Context, id uuid.UUID) (*domain.Bond, error) {
	return readThrough(ctx, t.staged.GetBond, t.store.GetBond, id, false, domain.ErrBondNotFound)
}

func (t *tx) FindBonds(ctx context.Context, q domain.BondQuery) ([]*domain.Bond, error) {
	base, _ := t.store.FindBonds(ctx, q)
	staged, _ := t.staged.FindBonds(ctx, q)
	return mergeFind(base, staged, func(v *domain.Bond) uuid.UUID { return v.ID }, func(id uuid.UUID) bool {
		return stagedHas(t.staged, t.staged.t.bonds, id)
	}), nil
}

func (t *tx) UpsertBond(ctx context.Context, b *domain.Bond) error {
	return t.staged.UpsertBond(ctx, b)
}

func (t *tx) GetRun(ctx context.Context, id uuid.UUID) (*domain.DungeonRun, error) {
	return readThrough(ctx, t.staged.GetRun, t.store.GetRun, id, false, domain.ErrRunNotFound)
}

func (t *tx) FindRuns(ctx context.Context, q domain.RunQuery) ([]*domain.DungeonRun, error) {
	base, _ := t.store.FindRuns(ctx, q)
	staged, _ := t.staged.FindRuns(ctx, q)
	return mergeFind(base, staged, func(v *domain.DungeonRun) uuid.UUID { return v.ID }, func(id uuid.UUID) bool {
		return stagedHas(t.staged, t.staged.t.runs, id)
	}), nil
}

func (t *tx) UpsertRun(ctx context.Context, r *domain.DungeonRun) error {
	return t.staged.UpsertRun(ctx, r)
}

// stagedHas reports whether id was written in this tx
func stagedHas[T any](s *Store, m map[uuid.UUID]*T, id uuid.UUID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := m[id]
	return ok
}

// Commit applies staged writes atomically
func (t *tx) Commit(_ context.Context) error {
	if t.done {
		return domain.ErrTxClosed
	}
	t.done = true

	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for id := range t.deleted.characters {
		delete(t.store.t.characters, id)
	}
	for id := range t.deleted.tasks {
		delete(t.store.t.tasks, id)
	}
	copyInto(t.store.t.characters, t.staged.t.characters)
	copyInto(t.store.t.tasks, t.staged.t.tasks)
	copyInto(t.store.t.bundles, t.staged.t.bundles)
	copyInto(t.store.t.bonds, t.staged.t.bonds)
	copyInto(t.store.t.runs, t.staged.t.runs)
	return nil
}

// Rollback discards staged writes
func (t *tx) Rollback(_ context.Context) error {
	if t.done {
		return domain.ErrTxClosed
	}
	t.done = true
	return nil
}

func copyInto[T any](dst, src map[uuid.UUID]*T) {
	for id, v := range src {
		dst[id] = v
	}
}
