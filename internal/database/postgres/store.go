package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/QuestForge_Go/internal/domain"
	"github.com/osse101/QuestForge_Go/internal/repository"
)

// queries implements every aggregate repository against a querier. Each
// aggregate is one JSONB document plus the columns its queries filter on.
type queries struct {
	q querier
}

// Store implements repository.Store for PostgreSQL
type Store struct {
	queries
	db *pgxpool.Pool
}

var _ repository.Store = (*Store)(nil)

// NewStore creates a new Store
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{queries: queries{q: db}, db: db}
}

// BeginTx starts a transaction covering every aggregate
func (s *Store) BeginTx(ctx context.Context) (repository.Tx, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTx, err)
	}
	return &Tx{queries: queries{q: tx}, tx: tx}, nil
}

// Tx implements repository.Tx over a pgx transaction
type Tx struct {
	queries
	tx pgx.Tx
}

// Commit commits the transaction
func (t *Tx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return domain.ErrTxClosed
		}
		return err
	}
	return nil
}

// Rollback aborts the transaction
func (t *Tx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return domain.ErrTxClosed
		}
		return err
	}
	return nil
}

// ---- Characters ----

func (r queries) GetCharacter(ctx context.Context, id uuid.UUID) (*domain.PlayerCharacter, error) {
	return getJSON[domain.PlayerCharacter](ctx, r.q,
		`SELECT character_data FROM characters WHERE character_id = $1`,
		id, "character", domain.ErrCharacterNotFound)
}

func (r queries) FindCharacters(ctx context.Context, cq domain.CharacterQuery) ([]*domain.PlayerCharacter, error) {
	var w where
	if len(cq.IDs) > 0 {
		w.add("character_id = ANY(?)", cq.IDs)
	}
	if cq.HasActiveMission != nil {
		if *cq.HasActiveMission {
			w.add("mission_completes_at IS NOT NULL")
		} else {
			w.add("mission_completes_at IS NULL")
		}
	}
	if cq.MissionDueBy != nil {
		w.add("mission_completes_at <= ?", *cq.MissionDueBy)
	}
	if cq.LastActiveBefore != nil {
		w.add("last_active_day < ?", *cq.LastActiveBefore)
	}
	if cq.MinStreak != nil {
		w.add("current_streak >= ?", *cq.MinStreak)
	}

	rows, err := r.q.Query(ctx, `SELECT character_data FROM characters`+w.String()+` ORDER BY character_id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("%s characters: %w", ErrMsgFailedToQuery, err)
	}
	return scanJSON[domain.PlayerCharacter](rows, "character")
}

func (r queries) UpsertCharacter(ctx context.Context, c *domain.PlayerCharacter) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("%s character: %w", ErrMsgFailedToMarshal, err)
	}
	var lastActive *string
	if c.LastActiveDay != "" {
		lastActive = &c.LastActiveDay
	}
	var due any
	if c.ActiveMission != nil {
		due = c.ActiveMission.CompletesAt
	}

	_, err = r.q.Exec(ctx, `
		INSERT INTO characters (character_id, name, class, level, current_streak, last_active_day, mission_completes_at, character_data, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (character_id) DO UPDATE SET
			name = EXCLUDED.name,
			class = EXCLUDED.class,
			level = EXCLUDED.level,
			current_streak = EXCLUDED.current_streak,
			last_active_day = EXCLUDED.last_active_day,
			mission_completes_at = EXCLUDED.mission_completes_at,
			character_data = EXCLUDED.character_data,
			updated_at = NOW()
	`, c.ID, c.Name, string(c.Class), c.Level, c.CurrentStreak, lastActive, due, data)
	if err != nil {
		return fmt.Errorf("%s character: %w", ErrMsgFailedToUpsert, err)
	}
	return nil
}

func (r queries) DeleteCharacter(ctx context.Context, id uuid.UUID) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM characters WHERE character_id = $1`, id); err != nil {
		return fmt.Errorf("%s character: %w", ErrMsgFailedToDelete, err)
	}
	return nil
}

// ---- Tasks ----

func (r queries) GetTask(ctx context.Context, id uuid.UUID) (*domain.GameTask, error) {
	return getJSON[domain.GameTask](ctx, r.q,
		`SELECT task_data FROM tasks WHERE task_id = $1`,
		id, "task", domain.ErrTaskNotFound)
}

func (r queries) FindTasks(ctx context.Context, tq domain.TaskQuery) ([]*domain.GameTask, error) {
	var w where
	if tq.OwnerID != nil {
		w.add("owner_id = ?", *tq.OwnerID)
	}
	if tq.Status != nil {
		w.add("status = ?", string(*tq.Status))
	}
	if tq.Recurring != nil {
		if *tq.Recurring {
			w.add("recurrence <> 'none'")
		} else {
			w.add("recurrence = 'none'")
		}
	}
	if tq.CompletedBefore != nil {
		w.add("completed_at < ?", *tq.CompletedBefore)
	}
	if tq.BundleID != nil {
		w.add("bundle_id = ?", *tq.BundleID)
	}

	rows, err := r.q.Query(ctx, `SELECT task_data FROM tasks`+w.String()+` ORDER BY task_id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("%s tasks: %w", ErrMsgFailedToQuery, err)
	}
	return scanJSON[domain.GameTask](rows, "task")
}

func (r queries) UpsertTask(ctx context.Context, t *domain.GameTask) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("%s task: %w", ErrMsgFailedToMarshal, err)
	}
	recurrence := t.Recurrence
	if recurrence == "" {
		recurrence = domain.RecurrenceNone
	}

	_, err = r.q.Exec(ctx, `
		INSERT INTO tasks (task_id, owner_id, status, recurrence, completed_at, bundle_id, task_data, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (task_id) DO UPDATE SET
			owner_id = EXCLUDED.owner_id,
			status = EXCLUDED.status,
			recurrence = EXCLUDED.recurrence,
			completed_at = EXCLUDED.completed_at,
			bundle_id = EXCLUDED.bundle_id,
			task_data = EXCLUDED.task_data,
			updated_at = NOW()
	`, t.ID, t.OwnerID, string(t.Status), string(recurrence), t.CompletedAt, t.RoutineBundleID, data)
	if err != nil {
		return fmt.Errorf("%s task: %w", ErrMsgFailedToUpsert, err)
	}
	return nil
}

func (r queries) DeleteTask(ctx context.Context, id uuid.UUID) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM tasks WHERE task_id = $1`, id); err != nil {
		return fmt.Errorf("%s task: %w", ErrMsgFailedToDelete, err)
	}
	return nil
}

func (r queries) GetBundle(ctx context.Context, id uuid.UUID) (*domain.RoutineBundle, error) {
	return getJSON[domain.RoutineBundle](ctx, r.q,
		`SELECT bundle_data FROM routine_bundles WHERE bundle_id = $1`,
		id, "bundle", domain.ErrBundleNotFound)
}

func (r queries) UpsertBundle(ctx context.Context, b *domain.RoutineBundle) error {
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("%s bundle: %w", ErrMsgFailedToMarshal, err)
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO routine_bundles (bundle_id, owner_id, bundle_data)
		VALUES ($1, $2, $3)
		ON CONFLICT (bundle_id) DO UPDATE SET owner_id = EXCLUDED.owner_id, bundle_data = EXCLUDED.bundle_data
	`, b.ID, b.OwnerID, data)
	if err != nil {
		return fmt.Errorf("%s bundle: %w", ErrMsgFailedToUpsert, err)
	}
	return nil
}

// ---- Bonds ----

func (r queries) GetBond(ctx context.Context, id uuid.UUID) (*domain.Bond, error) {
	return getJSON[domain.Bond](ctx, r.q,
		`SELECT bond_data FROM bonds WHERE bond_id = $1`,
		id, "bond", domain.ErrBondNotFound)
}

func (r queries) FindBonds(ctx context.Context, bq domain.BondQuery) ([]*domain.Bond, error) {
	var w where
	if bq.MemberID != nil {
		w.add("? = ANY(member_ids)", *bq.MemberID)
	}
	rows, err := r.q.Query(ctx, `SELECT bond_data FROM bonds`+w.String()+` ORDER BY bond_id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("%s bonds: %w", ErrMsgFailedToQuery, err)
	}
	return scanJSON[domain.Bond](rows, "bond")
}

func (r queries) UpsertBond(ctx context.Context, b *domain.Bond) error {
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("%s bond: %w", ErrMsgFailedToMarshal, err)
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO bonds (bond_id, member_ids, bond_data, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (bond_id) DO UPDATE SET
			member_ids = EXCLUDED.member_ids,
			bond_data = EXCLUDED.bond_data,
			updated_at = NOW()
	`, b.ID, b.MemberIDs, data)
	if err != nil {
		return fmt.Errorf("%s bond: %w", ErrMsgFailedToUpsert, err)
	}
	return nil
}

// ---- Dungeon runs ----

func (r queries) GetRun(ctx context.Context, id uuid.UUID) (*domain.DungeonRun, error) {
	return getJSON[domain.DungeonRun](ctx, r.q,
		`SELECT run_data FROM dungeon_runs WHERE run_id = $1`,
		id, "dungeon run", domain.ErrRunNotFound)
}

func (r queries) FindRuns(ctx context.Context, rq domain.RunQuery) ([]*domain.DungeonRun, error) {
	var w where
	if rq.CharacterID != nil {
		w.add("? = ANY(party_ids)", *rq.CharacterID)
	}
	if rq.DungeonID != nil {
		w.add("dungeon_id = ?", *rq.DungeonID)
	}
	if rq.State != nil {
		w.add("state = ?", string(*rq.State))
	}
	rows, err := r.q.Query(ctx, `SELECT run_data FROM dungeon_runs`+w.String()+` ORDER BY started_at, run_id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("%s dungeon runs: %w", ErrMsgFailedToQuery, err)
	}
	return scanJSON[domain.DungeonRun](rows, "dungeon run")
}

func (r queries) UpsertRun(ctx context.Context, run *domain.DungeonRun) error {
	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("%s dungeon run: %w", ErrMsgFailedToMarshal, err)
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO dungeon_runs (run_id, dungeon_id, state, party_ids, started_at, run_data)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (run_id) DO UPDATE SET
			state = EXCLUDED.state,
			party_ids = EXCLUDED.party_ids,
			run_data = EXCLUDED.run_data
	`, run.ID, run.DungeonID, string(run.State), run.PartyIDs, run.StartedAt, data)
	if err != nil {
		return fmt.Errorf("%s dungeon run: %w", ErrMsgFailedToUpsert, err)
	}
	return nil
}
