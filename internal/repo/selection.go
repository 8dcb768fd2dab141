package repo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/hunt-packages/backend/internal/domain"
)

// SelectionRepo holds package sessions. Sessions live in memory only and
// expire after a period without use.
type SelectionRepo interface {
	// Create stores sel under a new id.
	Create(ctx context.Context, sel domain.PackageSelection) (domain.Package, error)

	// Get returns the session with the given id and marks it as used.
	// Returns domain.ErrNotFound if it does not exist or has expired.
	Get(ctx context.Context, id uuid.UUID) (domain.Package, error)

	// Update replaces the selection of an existing session.
	// Returns domain.ErrNotFound if it does not exist or has expired.
	Update(ctx context.Context, pkg domain.Package) (domain.Package, error)

	// Delete discards a session. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

type storedSelection struct {
	sel      domain.PackageSelection
	lastUsed time.Time
}

// MemSelectionRepo is the in-memory SelectionRepo.
// Stored selections are cloned on the way in and out, so callers never share
// slices with the store.
type MemSelectionRepo struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]storedSelection
}

// NewMemSelectionRepo returns an empty store whose sessions expire after ttl
// without use. A ttl of zero disables expiry.
func NewMemSelectionRepo(ttl time.Duration) *MemSelectionRepo {
	return &MemSelectionRepo{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[uuid.UUID]storedSelection),
	}
}

// WithClock replaces the time source. Intended for tests.
func (r *MemSelectionRepo) WithClock(now func() time.Time) *MemSelectionRepo {
	r.now = now
	return r
}

// Create implements SelectionRepo.
func (r *MemSelectionRepo) Create(_ context.Context, sel domain.PackageSelection) (domain.Package, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return domain.Package{}, fmt.Errorf("repo.SelectionRepo.Create: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[id] = storedSelection{sel: sel.Clone(), lastUsed: r.now()}
	return domain.Package{ID: id, Selection: sel.Clone()}, nil
}

// Get implements SelectionRepo.
func (r *MemSelectionRepo) Get(_ context.Context, id uuid.UUID) (domain.Package, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.live(id)
	if !ok {
		return domain.Package{}, fmt.Errorf("repo.SelectionRepo.Get: %w", domain.ErrNotFound)
	}
	s.lastUsed = r.now()
	r.sessions[id] = s
	return domain.Package{ID: id, Selection: s.sel.Clone()}, nil
}

// Update implements SelectionRepo.
func (r *MemSelectionRepo) Update(_ context.Context, pkg domain.Package) (domain.Package, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.live(pkg.ID); !ok {
		return domain.Package{}, fmt.Errorf("repo.SelectionRepo.Update: %w", domain.ErrNotFound)
	}
	r.sessions[pkg.ID] = storedSelection{sel: pkg.Selection.Clone(), lastUsed: r.now()}
	return domain.Package{ID: pkg.ID, Selection: pkg.Selection.Clone()}, nil
}

// Delete implements SelectionRepo.
func (r *MemSelectionRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.live(id); !ok {
		return fmt.Errorf("repo.SelectionRepo.Delete: %w", domain.ErrNotFound)
	}
	delete(r.sessions, id)
	return nil
}

// Len returns the number of stored sessions, expired ones included until the
// next sweep.
func (r *MemSelectionRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep removes expired sessions and returns how many were removed.
func (r *MemSelectionRepo) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, s := range r.sessions {
		if r.expired(s) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// RunJanitor sweeps expired sessions every interval until ctx is done.
func (r *MemSelectionRepo) RunJanitor(ctx context.Context, interval time.Duration, onSweep func(removed int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}

// live returns the session if it exists and has not expired. An expired
// session is removed. Callers hold r.mu.
func (r *MemSelectionRepo) live(id uuid.UUID) (storedSelection, bool) {
	s, ok := r.sessions[id]
	if !ok {
		return storedSelection{}, false
	}
	if r.expired(s) {
		delete(r.sessions, id)
		return storedSelection{}, false
	}
	return s, true
}

func (r *MemSelectionRepo) expired(s storedSelection) bool {
	return r.ttl > 0 && r.now().Sub(s.lastUsed) > r.ttl
}
