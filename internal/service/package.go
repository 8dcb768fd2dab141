package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/pkordes/hunt-packages/backend/internal/domain"
	"github.com/pkordes/hunt-packages/backend/internal/pricing"
	"github.com/pkordes/hunt-packages/backend/internal/repo"
)

// PackageService edits package sessions and prices them after every change.
//
// A mutation is stored only if the resulting selection still prices, so a
// stored session is always valid against the catalog.
type PackageService struct {
	repo    repo.SelectionRepo
	catalog CatalogProvider

	// mu serializes read-modify-write cycles so concurrent edits to one
	// session are not lost.
	mu sync.Mutex
}

// NewPackageService constructs a PackageService.
func NewPackageService(r repo.SelectionRepo, c CatalogProvider) *PackageService {
	return &PackageService{repo: r, catalog: c}
}

// PeopleUpdate sets either count; nil leaves it unchanged.
type PeopleUpdate struct {
	Hunters    *int
	NonHunters *int
}

// Create starts a session. A non-empty huntID known to the catalog pre-selects
// one animal of that hunt; an unknown huntID is ignored.
func (s *PackageService) Create(ctx context.Context, huntID string) (domain.PricedPackage, error) {
	cat, err := s.catalog.Load(ctx)
	if err != nil {
		return domain.PricedPackage{}, fmt.Errorf("service.PackageService.Create: %w", err)
	}

	sel := domain.NewSelection()
	if _, ok := cat.Offering(huntID); ok {
		sel.AddHunt(huntID)
	}
	q, err := pricing.Compute(cat, sel)
	if err != nil {
		return domain.PricedPackage{}, fmt.Errorf("service.PackageService.Create: %w", err)
	}

	pkg, err := s.repo.Create(ctx, sel)
	if err != nil {
		return domain.PricedPackage{}, fmt.Errorf("service.PackageService.Create: %w", err)
	}
	return priced(pkg, q), nil
}

// Get returns a session with its current quote.
func (s *PackageService) Get(ctx context.Context, id uuid.UUID) (domain.PricedPackage, error) {
	cat, err := s.catalog.Load(ctx)
	if err != nil {
		return domain.PricedPackage{}, fmt.Errorf("service.PackageService.Get: %w", err)
	}
	pkg, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.PricedPackage{}, fmt.Errorf("service.PackageService.Get: %w", err)
	}
	q, err := pricing.Compute(cat, pkg.Selection)
	if err != nil {
		return domain.PricedPackage{}, fmt.Errorf("service.PackageService.Get: %w", err)
	}
	return priced(pkg, q), nil
}

// Delete discards a session.
func (s *PackageService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.PackageService.Delete: %w", err)
	}
	return nil
}

// Reset empties the session back to a single hunter and nothing selected.
func (s *PackageService) Reset(ctx context.Context, id uuid.UUID) (domain.PricedPackage, error) {
	return s.mutate(ctx, id, "Reset", func(sel *domain.PackageSelection) error {
		sel.Reset()
		return nil
	})
}

// AddHunt adds one animal of huntID.
func (s *PackageService) AddHunt(ctx context.Context, id uuid.UUID, huntID string) (domain.PricedPackage, error) {
	return s.mutate(ctx, id, "AddHunt", func(sel *domain.PackageSelection) error {
		sel.AddHunt(huntID)
		return nil
	})
}

// SetQuantity sets the number of animals of huntID. Zero or less removes it.
func (s *PackageService) SetQuantity(ctx context.Context, id uuid.UUID, huntID string, quantity int) (domain.PricedPackage, error) {
	return s.mutate(ctx, id, "SetQuantity", func(sel *domain.PackageSelection) error {
		if _, ok := sel.Line(huntID); !ok {
			return fmt.Errorf("%w: hunt %q is not in the package", domain.ErrNotFound, huntID)
		}
		sel.SetQuantity(huntID, quantity)
		return nil
	})
}

// RemoveHunt removes huntID and its extras.
func (s *PackageService) RemoveHunt(ctx context.Context, id uuid.UUID, huntID string) (domain.PricedPackage, error) {
	return s.mutate(ctx, id, "RemoveHunt", func(sel *domain.PackageSelection) error {
		if _, ok := sel.Line(huntID); !ok {
			return fmt.Errorf("%w: hunt %q is not in the package", domain.ErrNotFound, huntID)
		}
		sel.RemoveHunt(huntID)
		return nil
	})
}

// SetExtraDays sets the additional days. Negative values become 0.
func (s *PackageService) SetExtraDays(ctx context.Context, id uuid.UUID, days int) (domain.PricedPackage, error) {
	return s.mutate(ctx, id, "SetExtraDays", func(sel *domain.PackageSelection) error {
		sel.SetExtraDays(days)
		return nil
	})
}

// SetPeople updates the party size. Hunters never drop below 1 and
// non-hunters never below 0.
func (s *PackageService) SetPeople(ctx context.Context, id uuid.UUID, u PeopleUpdate) (domain.PricedPackage, error) {
	return s.mutate(ctx, id, "SetPeople", func(sel *domain.PackageSelection) error {
		if u.Hunters != nil {
			sel.SetHunters(*u.Hunters)
		}
		if u.NonHunters != nil {
			sel.SetNonHunters(*u.NonHunters)
		}
		return nil
	})
}

// SetExtra sets the quantity of one extra of a selected hunt. Zero or less
// removes it.
func (s *PackageService) SetExtra(ctx context.Context, id uuid.UUID, huntID, extraID string, quantity int) (domain.PricedPackage, error) {
	return s.mutate(ctx, id, "SetExtra", func(sel *domain.PackageSelection) error {
		return sel.SetExtra(huntID, extraID, quantity)
	})
}

// Summary builds the contact handoff for a session.
func (s *PackageService) Summary(ctx context.Context, id uuid.UUID) (domain.SummaryHandoff, error) {
	cat, err := s.catalog.Load(ctx)
	if err != nil {
		return domain.SummaryHandoff{}, fmt.Errorf("service.PackageService.Summary: %w", err)
	}
	pkg, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.SummaryHandoff{}, fmt.Errorf("service.PackageService.Summary: %w", err)
	}
	h, err := summaryHandoff(cat, pkg.Selection)
	if err != nil {
		return domain.SummaryHandoff{}, fmt.Errorf("service.PackageService.Summary: %w", err)
	}
	return h, nil
}

func (s *PackageService) mutate(ctx context.Context, id uuid.UUID, op string, fn func(*domain.PackageSelection) error) (domain.PricedPackage, error) {
	cat, err := s.catalog.Load(ctx)
	if err != nil {
		return domain.PricedPackage{}, fmt.Errorf("service.PackageService.%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pkg, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.PricedPackage{}, fmt.Errorf("service.PackageService.%s: %w", op, err)
	}
	if err := fn(&pkg.Selection); err != nil {
		return domain.PricedPackage{}, fmt.Errorf("service.PackageService.%s: %w", op, err)
	}
	q, err := pricing.Compute(cat, pkg.Selection)
	if err != nil {
		return domain.PricedPackage{}, fmt.Errorf("service.PackageService.%s: %w", op, err)
	}
	pkg, err = s.repo.Update(ctx, pkg)
	if err != nil {
		return domain.PricedPackage{}, fmt.Errorf("service.PackageService.%s: %w", op, err)
	}
	return priced(pkg, q), nil
}

// priced hides orphaned extras from callers; they stay in the store only until
// their hunt is added again.
func priced(pkg domain.Package, q domain.Quote) domain.PricedPackage {
	sel := pkg.Selection.Clone()
	sel.Extras = sel.ActiveExtras()
	return domain.PricedPackage{ID: pkg.ID, Selection: sel, Quote: q}
}
