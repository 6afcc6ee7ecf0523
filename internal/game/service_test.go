package game

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/QuestForge_Go/internal/content"
	"github.com/osse101/QuestForge_Go/internal/domain"
	"github.com/osse101/QuestForge_Go/internal/event"
	"github.com/osse101/QuestForge_Go/internal/repository/memory"
	"github.com/osse101/QuestForge_Go/internal/reward"
	"github.com/osse101/QuestForge_Go/internal/testing/rngtest"
)

var baseTime = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *recordingPublisher) PublishWithRetry(_ context.Context, evt event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
}

func (p *recordingPublisher) count(typ event.Type) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, e := range p.events {
		if e.Type == typ {
			n++
		}
	}
	return n
}

func (p *recordingPublisher) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}

type recordingReplicator struct {
	mu    sync.Mutex
	snaps []domain.Snapshot
}

func (r *recordingReplicator) Replicate(_ context.Context, snaps ...domain.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snaps = append(r.snaps, snaps...)
}

func (r *recordingReplicator) kinds() map[domain.SnapshotKind]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[domain.SnapshotKind]int)
	for _, s := range r.snaps {
		out[s.Kind]++
	}
	return out
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	svc   Service
	store *memory.Store
	pub   *recordingPublisher
	rep   *recordingReplicator
	clock *fakeClock
}

func newFixture(t *testing.T, roll float64) *fixture {
	t.Helper()
	f := &fixture{
		store: memory.NewStore(),
		pub:   &recordingPublisher{},
		rep:   &recordingReplicator{},
		clock: &fakeClock{now: baseTime},
	}
	f.svc = NewService(Deps{
		Store:      f.store,
		Content:    content.NewStaticProvider(content.Defaults()),
		RNG:        rngtest.Always(roll),
		Publisher:  f.pub,
		Replicator: f.rep,
		Clock:      f.clock.Now,
	})
	return f
}

func (f *fixture) character(t *testing.T, name string, class domain.CharacterClass) *domain.PlayerCharacter {
	t.Helper()
	c, err := f.svc.CreateCharacter(context.Background(), name, class)
	require.NoError(t, err)
	return c
}

func (f *fixture) load(t *testing.T, id uuid.UUID) *domain.PlayerCharacter {
	t.Helper()
	c, err := f.store.GetCharacter(context.Background(), id)
	require.NoError(t, err)
	return c
}

func (f *fixture) save(t *testing.T, c *domain.PlayerCharacter) {
	t.Helper()
	require.NoError(t, f.store.UpsertCharacter(context.Background(), c))
}

func (f *fixture) task(t *testing.T, owner uuid.UUID, mutate func(*domain.GameTask)) *domain.GameTask {
	t.Helper()
	tk := &domain.GameTask{
		OwnerID:  owner,
		Title:    "Read a chapter",
		Category: domain.CategoryMental,
		BaseEXP:  50,
		BaseGold: 20,
	}
	if mutate != nil {
		mutate(tk)
	}
	out, err := f.svc.CreateTask(context.Background(), tk)
	require.NoError(t, err)
	return out
}

func TestCreateCharacter(t *testing.T) {
	f := newFixture(t, 0.99)
	ctx := context.Background()

	c := f.character(t, "  Aria ", domain.ClassWarrior)
	assert.Equal(t, "Aria", c.Name)
	assert.Equal(t, 1, c.Level)
	assert.NotEmpty(t, c.Achievements)
	assert.Equal(t, baseTime, c.CreatedAt)
	assert.Equal(t, 1, f.rep.kinds()[domain.SnapshotCharacter])

	got, err := f.svc.GetCharacter(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)

	_, err = f.svc.CreateCharacter(ctx, "  ", domain.ClassWarrior)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.svc.CreateCharacter(ctx, "Nobody", domain.CharacterClass("bard"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateTask_Validation(t *testing.T) {
	f := newFixture(t, 0.99)
	ctx := context.Background()
	c := f.character(t, "Aria", domain.ClassWarrior)

	_, err := f.svc.CreateTask(ctx, &domain.GameTask{OwnerID: c.ID, Title: "", Category: domain.CategoryMental})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.svc.CreateTask(ctx, &domain.GameTask{OwnerID: c.ID, Title: "x", Category: "cooking"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.svc.CreateTask(ctx, &domain.GameTask{OwnerID: c.ID, Title: "x", Category: domain.CategoryMental, BaseEXP: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.svc.CreateTask(ctx, &domain.GameTask{OwnerID: c.ID, AssignedByID: &c.ID, Title: "x", Category: domain.CategoryMental})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	tk := f.task(t, c.ID, func(tk *domain.GameTask) { tk.IsCoopDuty = true })
	assert.Equal(t, domain.TaskPending, tk.Status)
	assert.Equal(t, domain.VerificationNone, tk.Verification)
	assert.Equal(t, domain.RecurrenceNone, tk.Recurrence)
	assert.Equal(t, domain.CoopBonusPending, tk.CoopBonus)

	list, err := f.svc.ListTasks(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCompleteTask_AppliesReward(t *testing.T) {
	f := newFixture(t, 0.99)
	ctx := context.Background()
	c := f.character(t, "Aria", domain.ClassWarrior)
	tk := f.task(t, c.ID, nil)

	res, err := f.svc.CompleteTask(ctx, tk.ID, uuid.Nil, reward.Signals{})
	require.NoError(t, err)
	assert.False(t, res.PendingConfirmation)
	assert.Positive(t, res.TotalEXP())
	assert.Positive(t, res.TotalGold())

	stored := f.load(t, c.ID)
	assert.Equal(t, 1, stored.TotalTasksCompleted)
	assert.Equal(t, res.TotalGold(), stored.Gold)
	assert.Equal(t, 1, stored.CurrentStreak)
	assert.Equal(t, domain.DayKey(baseTime), stored.LastActiveDay)

	storedTask, err := f.store.GetTask(ctx, tk.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskCompleted, storedTask.Status)

	assert.Equal(t, 1, f.pub.count(event.TaskCompleted))
	assert.Equal(t, 1, f.pub.count(event.AchievementUnlocked), "first completion unlocks first_steps")

	_, err = f.svc.CompleteTask(ctx, tk.ID, c.ID, reward.Signals{})
	assert.ErrorIs(t, err, domain.ErrTaskNotPending)
	assert.Equal(t, stored.Gold, f.load(t, c.ID).Gold)
}

func TestCompleteTask_RejectsOtherActor(t *testing.T) {
	f := newFixture(t, 0.99)
	owner := f.character(t, "Aria", domain.ClassWarrior)
	other := f.character(t, "Bram", domain.ClassMage)
	tk := f.task(t, owner.ID, nil)

	_, err := f.svc.CompleteTask(context.Background(), tk.ID, other.ID, reward.Signals{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, f.load(t, owner.ID).TotalTasksCompleted)
}

func TestPartnerTask_EscrowConfirmDispute(t *testing.T) {
	f := newFixture(t, 0.99)
	ctx := context.Background()
	owner := f.character(t, "Aria", domain.ClassWarrior)
	partner := f.character(t, "Bram", domain.ClassCleric)
	_, err := f.svc.CreateBond(ctx, owner.ID, partner.ID)
	require.NoError(t, err)

	assigned := func(tk *domain.GameTask) { tk.AssignedByID = &partner.ID }

	t.Run("escrow leaves the character untouched", func(t *testing.T) {
		tk := f.task(t, owner.ID, assigned)
		before := f.load(t, owner.ID)

		res, err := f.svc.CompleteTask(ctx, tk.ID, owner.ID, reward.Signals{})
		require.NoError(t, err)
		assert.True(t, res.PendingConfirmation)

		after := f.load(t, owner.ID)
		assert.Equal(t, before.Gold, after.Gold)
		assert.Equal(t, before.CurrentEXP, after.CurrentEXP)
		assert.Equal(t, before.TotalTasksCompleted, after.TotalTasksCompleted)

		got, err := f.store.GetTask(ctx, tk.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.TaskAwaitingPartner, got.Status)

		_, err = f.svc.ConfirmTask(ctx, tk.ID, owner.ID)
		assert.ErrorIs(t, err, domain.ErrNotTaskPartner)

		res, err = f.svc.ConfirmTask(ctx, tk.ID, partner.ID)
		require.NoError(t, err)
		assert.False(t, res.PendingConfirmation)

		confirmed := f.load(t, owner.ID)
		assert.Equal(t, before.Gold+res.TotalGold(), confirmed.Gold)
		assert.Equal(t, 1, confirmed.TotalTasksCompleted)
		assert.Equal(t, 1, confirmed.Counters[domain.AchievementPartnerConfirmations])
		assert.Equal(t, 1, f.pub.count(event.TaskConfirmed))

		b, err := bondFor(ctx, f.store, owner.ID)
		require.NoError(t, err)
		require.NotNil(t, b)
		assert.Positive(t, b.EXP)
	})

	t.Run("dispute returns the task to pending", func(t *testing.T) {
		tk := f.task(t, owner.ID, assigned)
		_, err := f.svc.CompleteTask(ctx, tk.ID, owner.ID, reward.Signals{})
		require.NoError(t, err)

		_, err = f.svc.DisputeTask(ctx, tk.ID, owner.ID, "nope")
		assert.ErrorIs(t, err, domain.ErrNotTaskPartner)

		got, err := f.svc.DisputeTask(ctx, tk.ID, partner.ID, "  no photo  ")
		require.NoError(t, err)
		assert.Equal(t, domain.TaskPending, got.Status)
		assert.Equal(t, "no photo", got.DisputeReason)
		assert.Nil(t, got.CompletedAt)

		_, err = f.svc.DisputeTask(ctx, tk.ID, partner.ID, "again")
		assert.ErrorIs(t, err, domain.ErrTaskNotAwaitingPartner)
		assert.Equal(t, 1, f.pub.count(event.TaskDisputed))
	})
}

func TestSweepEscrow(t *testing.T) {
	f := newFixture(t, 0.99)
	ctx := context.Background()
	owner := f.character(t, "Aria", domain.ClassWarrior)
	partner := f.character(t, "Bram", domain.ClassCleric)
	_, err := f.svc.CreateBond(ctx, owner.ID, partner.ID)
	require.NoError(t, err)

	tk := f.task(t, owner.ID, func(tk *domain.GameTask) { tk.AssignedByID = &partner.ID })
	_, err = f.svc.CompleteTask(ctx, tk.ID, owner.ID, reward.Signals{})
	require.NoError(t, err)

	f.clock.Advance(time.Hour)
	n, err := f.svc.SweepEscrow(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	f.clock.Advance(domain.EscrowAutoConfirmAfter)
	n, err = f.svc.SweepEscrow(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := f.store.GetTask(ctx, tk.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskCompleted, got.Status)
	assert.True(t, got.PartnerConfirmed)
	assert.Equal(t, 1, f.load(t, owner.ID).TotalTasksCompleted)

	n, err = f.svc.SweepEscrow(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPartnerTask_ConfirmKeepsCompletionSignals(t *testing.T) {
	flagged := reward.Signals{GeofencePassed: false, AnomalyFlags: []string{"gps_jump", "mock_location"}}

	setup := func(t *testing.T, signals reward.Signals) (*fixture, *domain.PlayerCharacter, *domain.PlayerCharacter, *domain.GameTask) {
		f := newFixture(t, 0.99)
		owner := f.character(t, "Aria", domain.ClassWarrior)
		partner := f.character(t, "Bram", domain.ClassCleric)
		_, err := f.svc.CreateBond(context.Background(), owner.ID, partner.ID)
		require.NoError(t, err)
		tk := f.task(t, owner.ID, func(tk *domain.GameTask) {
			tk.AssignedByID = &partner.ID
			tk.Verification = domain.VerificationLocation
		})

		res, err := f.svc.CompleteTask(context.Background(), tk.ID, owner.ID, signals)
		require.NoError(t, err)
		require.True(t, res.PendingConfirmation)
		return f, owner, partner, tk
	}

	t.Run("partner confirm", func(t *testing.T) {
		ctx := context.Background()
		f, _, partner, tk := setup(t, flagged)

		held, err := f.store.GetTask(ctx, tk.ID)
		require.NoError(t, err)
		require.NotNil(t, held.EscrowSignals)
		assert.Equal(t, flagged.AnomalyFlags, held.EscrowSignals.AnomalyFlags)

		res, err := f.svc.ConfirmTask(ctx, tk.ID, partner.ID)
		require.NoError(t, err)
		assert.Less(t, res.VerificationTier, 1.0)
		assert.InDelta(t, 1.1*0.5625, res.VerificationTier, 1e-9)

		got, err := f.store.GetTask(ctx, tk.ID)
		require.NoError(t, err)
		assert.Nil(t, got.EscrowSignals)
	})

	t.Run("auto confirm", func(t *testing.T) {
		ctx := context.Background()
		sweep := func(t *testing.T, signals reward.Signals) int {
			f, owner, _, _ := setup(t, signals)
			before := f.load(t, owner.ID).Gold
			f.clock.Advance(domain.EscrowAutoConfirmAfter)
			n, err := f.svc.SweepEscrow(ctx)
			require.NoError(t, err)
			require.Equal(t, 1, n)
			return f.load(t, owner.ID).Gold - before
		}

		assert.Less(t, sweep(t, flagged), sweep(t, reward.Signals{GeofencePassed: true}))
	})

	t.Run("dispute drops held signals", func(t *testing.T) {
		ctx := context.Background()
		f, _, partner, tk := setup(t, flagged)

		got, err := f.svc.DisputeTask(ctx, tk.ID, partner.ID, "wrong place")
		require.NoError(t, err)
		assert.Nil(t, got.EscrowSignals)
	})
}

func TestResetRecurring(t *testing.T) {
	f := newFixture(t, 0.99)
	ctx := context.Background()
	c := f.character(t, "Aria", domain.ClassWarrior)
	daily := f.task(t, c.ID, func(tk *domain.GameTask) {
		tk.IsHabit = true
		tk.Recurrence = domain.RecurrenceDaily
	})
	once := f.task(t, c.ID, nil)

	for _, id := range []uuid.UUID{daily.ID, once.ID} {
		_, err := f.svc.CompleteTask(ctx, id, c.ID, reward.Signals{})
		require.NoError(t, err)
	}

	n, err := f.svc.ResetRecurring(ctx, baseTime.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = f.svc.ResetRecurring(ctx, baseTime.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := f.store.GetTask(ctx, daily.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskPending, got.Status)
	assert.Nil(t, got.CompletedAt)

	got, err = f.store.GetTask(ctx, once.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskCompleted, got.Status)
}

func TestConcurrentCompletionsSerialize(t *testing.T) {
	f := newFixture(t, 0.99)
	ctx := context.Background()
	c := f.character(t, "Aria", domain.ClassWarrior)

	const n = 8
	ids := make([]uuid.UUID, n)
	for i := range ids {
		ids[i] = f.task(t, c.ID, nil).ID
	}

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for _, id := range ids {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			_, err := f.svc.CompleteTask(ctx, id, c.ID, reward.Signals{})
			errs <- err
		}(id)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	stored := f.load(t, c.ID)
	assert.Equal(t, n, stored.TotalTasksCompleted)
	assert.Equal(t, n, stored.Daily.TasksCompleted)
}

func TestCreateBond(t *testing.T) {
	f := newFixture(t, 0.99)
	ctx := context.Background()
	a := f.character(t, "Aria", domain.ClassWarrior)
	b := f.character(t, "Bram", domain.ClassMage)

	_, err := f.svc.CreateBond(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.svc.CreateBond(ctx, a.ID, a.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	bond, err := f.svc.CreateBond(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, bond.Level)
	assert.ElementsMatch(t, []uuid.UUID{a.ID, b.ID}, bond.MemberIDs)
}
