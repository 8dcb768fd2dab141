package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/hunt-packages/backend/internal/catalog"
	"github.com/pkordes/hunt-packages/backend/internal/domain"
	"github.com/pkordes/hunt-packages/backend/internal/service"
)

// mockCatalog is a hand-written test double for service.CatalogProvider.
type mockCatalog struct {
	load  func(ctx context.Context) (*catalog.Catalog, error)
	ready bool
}

func (m *mockCatalog) Load(ctx context.Context) (*catalog.Catalog, error) { return m.load(ctx) }
func (m *mockCatalog) Ready() bool                                        { return m.ready }

// compile-time check: mockCatalog must satisfy service.CatalogProvider.
var _ service.CatalogProvider = (*mockCatalog)(nil)

// ---- helpers ---------------------------------------------------------------

const testCatalogDoc = `{
  "animals": {
    "red-deer": {
      "species": "Red Deer",
      "baseIncluded": ["Guide", "Lodge"],
      "baseNotIncluded": ["Flights"],
      "extras": [
        {"id": "rifle", "name": "Rifle Hire", "description": "Scoped rifle", "price": 50, "perDay": true},
        {"id": "taxidermy", "name": "Taxidermy", "description": "Shoulder mount", "price": 1200}
      ],
      "hunts": {
        "a": {"id": "red-stag", "name": "Red Stag", "basePrice": 1500, "baseDays": 3,
              "additionalAnimalPrice": 700, "additionalAnimalDays": 1, "location": "Canterbury"},
        "b": {"id": "trophy-stag", "name": "Trophy Stag", "basePrice": 4500, "baseDays": 4,
              "additionalAnimalPrice": 2500, "additionalAnimalDays": 1, "location": "Canterbury"}
      }
    },
    "tahr": {
      "species": "Himalayan Tahr",
      "hunts": {
        "a": {"id": "tahr-bull", "name": "Tahr Bull", "basePrice": 3000, "baseDays": 4,
              "additionalAnimalPrice": 1500, "additionalAnimalDays": 1, "location": "Southern Alps"}
      }
    }
  },
  "dayRates": {"solo": 290, "additionalHunter": 200, "nonHunter": 180},
  "booking": {"deposit": 500, "currency": "NZD", "depositNote": "Non-refundable"}
}`

func loadedCatalog(t *testing.T) *mockCatalog {
	t.Helper()
	c, err := catalog.Parse([]byte(testCatalogDoc))
	require.NoError(t, err)
	return &mockCatalog{
		load:  func(context.Context) (*catalog.Catalog, error) { return c, nil },
		ready: true,
	}
}

func unavailableCatalog() *mockCatalog {
	return &mockCatalog{load: func(context.Context) (*catalog.Catalog, error) {
		return nil, domain.ErrCatalogUnavailable
	}}
}

// ---- CatalogService --------------------------------------------------------

func TestCatalogService_ListHunts(t *testing.T) {
	svc := service.NewCatalogService(loadedCatalog(t))
	ctx := context.Background()

	all, total, err := svc.ListHunts(ctx, "", domain.NewPaginationParams(nil, nil))
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, all, 3)

	deer, total, err := svc.ListHunts(ctx, "Red Deer", domain.NewPaginationParams(nil, nil))
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, "red-stag", deer[0].ID)
}

func TestCatalogService_ListHunts_Paginates(t *testing.T) {
	svc := service.NewCatalogService(loadedCatalog(t))
	page, limit := 2, 2

	got, total, err := svc.ListHunts(context.Background(), "", domain.NewPaginationParams(&page, &limit))

	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, got, 1)
	assert.Equal(t, "tahr-bull", got[0].ID)
}

func TestCatalogService_GetHunt(t *testing.T) {
	svc := service.NewCatalogService(loadedCatalog(t))

	o, err := svc.GetHunt(context.Background(), "tahr-bull")

	require.NoError(t, err)
	assert.Equal(t, "Himalayan Tahr", o.SpeciesName)
}

func TestCatalogService_GetHunt_NotFoundSuggests(t *testing.T) {
	svc := service.NewCatalogService(loadedCatalog(t))

	_, err := svc.GetHunt(context.Background(), "tahr-bul")

	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), `did you mean "tahr-bull"`)
}

func TestCatalogService_DayRatesAndBooking(t *testing.T) {
	svc := service.NewCatalogService(loadedCatalog(t))
	ctx := context.Background()

	rates, defaulted, err := svc.DayRates(ctx)
	require.NoError(t, err)
	assert.False(t, defaulted)
	assert.Equal(t, int64(290), rates.Solo)

	b, err := svc.Booking(ctx)
	require.NoError(t, err)
	assert.Equal(t, "NZD", b.Currency)

	species, err := svc.Species(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Red Deer", "Himalayan Tahr"}, species)
}

func TestCatalogService_Unavailable(t *testing.T) {
	svc := service.NewCatalogService(unavailableCatalog())
	ctx := context.Background()

	_, _, err := svc.ListHunts(ctx, "", domain.NewPaginationParams(nil, nil))
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
	_, err = svc.Species(ctx)
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
	assert.False(t, svc.Ready())
}

// ---- QuoteService ----------------------------------------------------------

func TestQuoteService_Quote(t *testing.T) {
	svc := service.NewQuoteService(loadedCatalog(t))
	sel := domain.NewSelection()
	sel.AddHunt("red-stag")
	sel.AddHunt("red-stag")

	q, err := svc.Quote(context.Background(), sel)

	require.NoError(t, err)
	assert.Equal(t, int64(2200), q.TotalPrice)
	assert.Equal(t, 4, q.TotalDays)
}

func TestQuoteService_Quote_UnknownOffering(t *testing.T) {
	svc := service.NewQuoteService(loadedCatalog(t))
	sel := domain.NewSelection()
	sel.AddHunt("moose")

	_, err := svc.Quote(context.Background(), sel)

	assert.ErrorIs(t, err, domain.ErrUnknownOffering)
}

func TestQuoteService_Summary(t *testing.T) {
	svc := service.NewQuoteService(loadedCatalog(t))
	sel := domain.NewSelection()
	sel.AddHunt("tahr-bull")

	h, err := svc.Summary(context.Background(), sel)

	require.NoError(t, err)
	assert.Equal(t, int64(3000), h.Summary.TotalPrice)
	assert.Contains(t, h.Text, "Tahr Bull (Himalayan Tahr) x1: $3,000")
	assert.Contains(t, h.Encoded, "Tahr%20Bull")
}

func TestQuoteService_Unavailable(t *testing.T) {
	svc := service.NewQuoteService(unavailableCatalog())

	_, err := svc.Quote(context.Background(), domain.NewSelection())

	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
}
