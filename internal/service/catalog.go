// Package service contains the business logic for the hunt packages API.
// Services orchestrate the catalog, the pricing engine and the stores.
// No SQL or HTTP lives here.
package service

import (
	"context"
	"fmt"

	"github.com/pkordes/hunt-packages/backend/internal/catalog"
	"github.com/pkordes/hunt-packages/backend/internal/domain"
)

// CatalogProvider returns the loaded catalog. *catalog.Accessor satisfies it.
type CatalogProvider interface {
	Load(ctx context.Context) (*catalog.Catalog, error)
	Ready() bool
}

// CatalogService answers read-only questions about the hunt catalog.
type CatalogService struct {
	catalog CatalogProvider
}

// NewCatalogService constructs a CatalogService backed by the provided catalog.
func NewCatalogService(c CatalogProvider) *CatalogService {
	return &CatalogService{catalog: c}
}

// Ready reports whether the catalog has been loaded.
func (s *CatalogService) Ready() bool {
	return s.catalog.Ready()
}

// ListHunts returns one page of offerings and the total number of matches.
// An empty species lists every offering.
func (s *CatalogService) ListHunts(ctx context.Context, species string, p domain.PaginationParams) ([]domain.HuntOffering, int, error) {
	cat, err := s.catalog.Load(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("service.CatalogService.ListHunts: %w", err)
	}

	var all []domain.HuntOffering
	if species == "" {
		all = cat.AllOfferings()
	} else {
		all = cat.OfferingsBySpecies(species)
	}
	return domain.Paginate(all, p), len(all), nil
}

// GetHunt returns one offering. Unknown ids wrap domain.ErrNotFound and name
// the closest known id when there is one.
func (s *CatalogService) GetHunt(ctx context.Context, id string) (domain.HuntOffering, error) {
	cat, err := s.catalog.Load(ctx)
	if err != nil {
		return domain.HuntOffering{}, fmt.Errorf("service.CatalogService.GetHunt: %w", err)
	}

	o, ok := cat.Offering(id)
	if !ok {
		if near, ok := cat.Suggest(id); ok {
			return domain.HuntOffering{}, fmt.Errorf("service.CatalogService.GetHunt: %w: hunt %q (did you mean %q?)", domain.ErrNotFound, id, near)
		}
		return domain.HuntOffering{}, fmt.Errorf("service.CatalogService.GetHunt: %w: hunt %q", domain.ErrNotFound, id)
	}
	return o, nil
}

// Species returns the species names in catalog order.
func (s *CatalogService) Species(ctx context.Context) ([]string, error) {
	cat, err := s.catalog.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.CatalogService.Species: %w", err)
	}
	return cat.Species(), nil
}

// DayRates returns the day rates and whether any were filled from defaults.
func (s *CatalogService) DayRates(ctx context.Context) (domain.DayRateSchedule, bool, error) {
	cat, err := s.catalog.Load(ctx)
	if err != nil {
		return domain.DayRateSchedule{}, false, fmt.Errorf("service.CatalogService.DayRates: %w", err)
	}
	return cat.DayRates(), cat.DayRatesDefaulted(), nil
}

// Booking returns the deposit terms.
func (s *CatalogService) Booking(ctx context.Context) (domain.BookingInfo, error) {
	cat, err := s.catalog.Load(ctx)
	if err != nil {
		return domain.BookingInfo{}, fmt.Errorf("service.CatalogService.Booking: %w", err)
	}
	return cat.Booking(), nil
}
