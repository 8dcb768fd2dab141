package repo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/hunt-packages/backend/internal/domain"
	"github.com/pkordes/hunt-packages/backend/internal/repo"
)

// fakeClock is a manually advanced time source.
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

func newTestSelectionRepo(ttl time.Duration) (*repo.MemSelectionRepo, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	return repo.NewMemSelectionRepo(ttl).WithClock(clock.Now), clock
}

// compile-time check: MemSelectionRepo must satisfy repo.SelectionRepo.
var _ repo.SelectionRepo = (*repo.MemSelectionRepo)(nil)

// ---- Create / Get ----------------------------------------------------------

func TestSelectionRepo_CreateAndGet(t *testing.T) {
	r, _ := newTestSelectionRepo(time.Hour)
	ctx := context.Background()
	sel := domain.NewSelection()
	sel.AddHunt("tahr")

	created, err := r.Create(ctx, sel)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	got, err := r.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, sel, got.Selection)
}

func TestSelectionRepo_Get_NotFound(t *testing.T) {
	r, _ := newTestSelectionRepo(time.Hour)

	_, err := r.Get(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSelectionRepo_ReturnedSelectionIsACopy(t *testing.T) {
	r, _ := newTestSelectionRepo(time.Hour)
	ctx := context.Background()
	sel := domain.NewSelection()
	sel.AddHunt("tahr")

	created, err := r.Create(ctx, sel)
	require.NoError(t, err)

	created.Selection.Lines[0].Quantity = 99
	sel.Lines[0].Quantity = 42

	got, err := r.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Selection.Lines[0].Quantity)
}

// ---- Update / Delete -------------------------------------------------------

func TestSelectionRepo_Update(t *testing.T) {
	r, _ := newTestSelectionRepo(time.Hour)
	ctx := context.Background()

	created, err := r.Create(ctx, domain.NewSelection())
	require.NoError(t, err)

	created.Selection.SetExtraDays(3)
	_, err = r.Update(ctx, created)
	require.NoError(t, err)

	got, err := r.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Selection.ExtraDays)
}

func TestSelectionRepo_Update_NotFound(t *testing.T) {
	r, _ := newTestSelectionRepo(time.Hour)

	_, err := r.Update(context.Background(), domain.Package{ID: uuid.New()})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSelectionRepo_Delete(t *testing.T) {
	r, _ := newTestSelectionRepo(time.Hour)
	ctx := context.Background()

	created, err := r.Create(ctx, domain.NewSelection())
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, created.ID))

	_, err = r.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, r.Delete(ctx, created.ID), domain.ErrNotFound)
}

// ---- expiry ----------------------------------------------------------------

func TestSelectionRepo_ExpiresAfterIdleTTL(t *testing.T) {
	r, clock := newTestSelectionRepo(time.Hour)
	ctx := context.Background()

	created, err := r.Create(ctx, domain.NewSelection())
	require.NoError(t, err)

	clock.Advance(59 * time.Minute)
	_, err = r.Get(ctx, created.ID)
	require.NoError(t, err, "use within the TTL keeps the session alive")

	clock.Advance(59 * time.Minute)
	_, err = r.Get(ctx, created.ID)
	require.NoError(t, err, "the previous Get refreshed the idle timer")

	clock.Advance(61 * time.Minute)
	_, err = r.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSelectionRepo_Sweep(t *testing.T) {
	r, clock := newTestSelectionRepo(time.Hour)
	ctx := context.Background()

	_, err := r.Create(ctx, domain.NewSelection())
	require.NoError(t, err)
	clock.Advance(30 * time.Minute)
	fresh, err := r.Create(ctx, domain.NewSelection())
	require.NoError(t, err)
	clock.Advance(45 * time.Minute)

	removed := r.Sweep()

	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, r.Len())
	_, err = r.Get(ctx, fresh.ID)
	assert.NoError(t, err)
}

func TestSelectionRepo_ZeroTTLNeverExpires(t *testing.T) {
	r, clock := newTestSelectionRepo(0)
	ctx := context.Background()

	created, err := r.Create(ctx, domain.NewSelection())
	require.NoError(t, err)
	clock.Advance(1000 * time.Hour)

	_, err = r.Get(ctx, created.ID)
	assert.NoError(t, err)
}

func TestSelectionRepo_RunJanitorStopsOnCancel(t *testing.T) {
	r, clock := newTestSelectionRepo(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	_, err := r.Create(ctx, domain.NewSelection())
	require.NoError(t, err)
	clock.Advance(2 * time.Minute)

	swept := make(chan int, 1)
	done := make(chan struct{})
	go func() {
		r.RunJanitor(ctx, time.Millisecond, func(n int) { swept <- n })
		close(done)
	}()

	select {
	case n := <-swept:
		assert.Equal(t, 1, n)
	case <-time.After(2 * time.Second):
		t.Fatal("janitor did not sweep")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("janitor did not stop")
	}
}
