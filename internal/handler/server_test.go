package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/hunt-packages/backend/internal/domain"
	"github.com/pkordes/hunt-packages/backend/internal/handler"
	"github.com/pkordes/hunt-packages/backend/internal/service"
)

// ---- mock CatalogServicer --------------------------------------------------

type mockCatalogServicer struct {
	ready     bool
	listHunts func(ctx context.Context, species string, p domain.PaginationParams) ([]domain.HuntOffering, int, error)
	getHunt   func(ctx context.Context, id string) (domain.HuntOffering, error)
	species   func(ctx context.Context) ([]string, error)
	dayRates  func(ctx context.Context) (domain.DayRateSchedule, bool, error)
	booking   func(ctx context.Context) (domain.BookingInfo, error)
}

func (m *mockCatalogServicer) Ready() bool { return m.ready }
func (m *mockCatalogServicer) ListHunts(ctx context.Context, species string, p domain.PaginationParams) ([]domain.HuntOffering, int, error) {
	return m.listHunts(ctx, species, p)
}
func (m *mockCatalogServicer) GetHunt(ctx context.Context, id string) (domain.HuntOffering, error) {
	return m.getHunt(ctx, id)
}
func (m *mockCatalogServicer) Species(ctx context.Context) ([]string, error) { return m.species(ctx) }
func (m *mockCatalogServicer) DayRates(ctx context.Context) (domain.DayRateSchedule, bool, error) {
	return m.dayRates(ctx)
}
func (m *mockCatalogServicer) Booking(ctx context.Context) (domain.BookingInfo, error) {
	return m.booking(ctx)
}

// compile-time check: mockCatalogServicer must satisfy handler.CatalogServicer.
var _ handler.CatalogServicer = (*mockCatalogServicer)(nil)

// ---- mock QuoteServicer ----------------------------------------------------

type mockQuoteServicer struct {
	quote   func(ctx context.Context, sel domain.PackageSelection) (domain.Quote, error)
	summary func(ctx context.Context, sel domain.PackageSelection) (domain.SummaryHandoff, error)
}

func (m *mockQuoteServicer) Quote(ctx context.Context, sel domain.PackageSelection) (domain.Quote, error) {
	return m.quote(ctx, sel)
}
func (m *mockQuoteServicer) Summary(ctx context.Context, sel domain.PackageSelection) (domain.SummaryHandoff, error) {
	return m.summary(ctx, sel)
}

// compile-time check: mockQuoteServicer must satisfy handler.QuoteServicer.
var _ handler.QuoteServicer = (*mockQuoteServicer)(nil)

// ---- mock PackageServicer --------------------------------------------------

type mockPackageServicer struct {
	create       func(ctx context.Context, huntID string) (domain.PricedPackage, error)
	get          func(ctx context.Context, id uuid.UUID) (domain.PricedPackage, error)
	delete       func(ctx context.Context, id uuid.UUID) error
	reset        func(ctx context.Context, id uuid.UUID) (domain.PricedPackage, error)
	addHunt      func(ctx context.Context, id uuid.UUID, huntID string) (domain.PricedPackage, error)
	setQuantity  func(ctx context.Context, id uuid.UUID, huntID string, quantity int) (domain.PricedPackage, error)
	removeHunt   func(ctx context.Context, id uuid.UUID, huntID string) (domain.PricedPackage, error)
	setExtraDays func(ctx context.Context, id uuid.UUID, days int) (domain.PricedPackage, error)
	setPeople    func(ctx context.Context, id uuid.UUID, u service.PeopleUpdate) (domain.PricedPackage, error)
	setExtra     func(ctx context.Context, id uuid.UUID, huntID, extraID string, quantity int) (domain.PricedPackage, error)
	summary      func(ctx context.Context, id uuid.UUID) (domain.SummaryHandoff, error)
}

func (m *mockPackageServicer) Create(ctx context.Context, huntID string) (domain.PricedPackage, error) {
	return m.create(ctx, huntID)
}
func (m *mockPackageServicer) Get(ctx context.Context, id uuid.UUID) (domain.PricedPackage, error) {
	return m.get(ctx, id)
}
func (m *mockPackageServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockPackageServicer) Reset(ctx context.Context, id uuid.UUID) (domain.PricedPackage, error) {
	return m.reset(ctx, id)
}
func (m *mockPackageServicer) AddHunt(ctx context.Context, id uuid.UUID, huntID string) (domain.PricedPackage, error) {
	return m.addHunt(ctx, id, huntID)
}
func (m *mockPackageServicer) SetQuantity(ctx context.Context, id uuid.UUID, huntID string, quantity int) (domain.PricedPackage, error) {
	return m.setQuantity(ctx, id, huntID, quantity)
}
func (m *mockPackageServicer) RemoveHunt(ctx context.Context, id uuid.UUID, huntID string) (domain.PricedPackage, error) {
	return m.removeHunt(ctx, id, huntID)
}
func (m *mockPackageServicer) SetExtraDays(ctx context.Context, id uuid.UUID, days int) (domain.PricedPackage, error) {
	return m.setExtraDays(ctx, id, days)
}
func (m *mockPackageServicer) SetPeople(ctx context.Context, id uuid.UUID, u service.PeopleUpdate) (domain.PricedPackage, error) {
	return m.setPeople(ctx, id, u)
}
func (m *mockPackageServicer) SetExtra(ctx context.Context, id uuid.UUID, huntID, extraID string, quantity int) (domain.PricedPackage, error) {
	return m.setExtra(ctx, id, huntID, extraID, quantity)
}
func (m *mockPackageServicer) Summary(ctx context.Context, id uuid.UUID) (domain.SummaryHandoff, error) {
	return m.summary(ctx, id)
}

// compile-time check: mockPackageServicer must satisfy handler.PackageServicer.
var _ handler.PackageServicer = (*mockPackageServicer)(nil)

// ---- mock InquiryServicer --------------------------------------------------

type mockInquiryServicer struct {
	submit func(ctx context.Context, inq domain.Inquiry) (domain.InquiryHandoff, error)
}

func (m *mockInquiryServicer) Submit(ctx context.Context, inq domain.Inquiry) (domain.InquiryHandoff, error) {
	return m.submit(ctx, inq)
}

// compile-time check: mockInquiryServicer must satisfy handler.InquiryServicer.
var _ handler.InquiryServicer = (*mockInquiryServicer)(nil)

// ---- helpers ---------------------------------------------------------------

// serve sends one request through the full router and returns the recorder.
// A non-empty body is sent as JSON.
func serve(t *testing.T, srv *handler.Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	return rec
}

// decodeError decodes an error body and returns its detail.
func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorDetail {
	t.Helper()
	var body handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error
}

// redStag is an offering fixture used across handler tests.
func redStag() domain.HuntOffering {
	return domain.HuntOffering{
		ID:                    "red-stag",
		Name:                  "Red Stag",
		SpeciesName:           "Red Deer",
		BasePrice:             1500,
		BaseDurationDays:      3,
		AdditionalAnimalPrice: 700,
		AdditionalAnimalDays:  1,
		Location:              "Canterbury",
	}
}

// pricedFixture returns a package with one red stag on it.
func pricedFixture(id uuid.UUID) domain.PricedPackage {
	sel := domain.NewSelection()
	sel.AddHunt("red-stag")
	return domain.PricedPackage{
		ID:        id,
		Selection: sel,
		Quote: domain.Quote{
			TotalDays:  3,
			TotalPrice: 1500,
			Breakdown: []domain.LineItem{
				{Kind: domain.KindHunt, Label: "Red Stag (1x)", Price: 1500, Description: "1 Red Deer"},
			},
		},
	}
}

// ---- routing ---------------------------------------------------------------

func TestRoutes_UnknownPathIsJSON404(t *testing.T) {
	rec := serve(t, handler.NewHealthHandler(), http.MethodGet, "/nope", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "not_found", decodeError(t, rec).Code)
}

func TestRoutes_WrongMethodIs405(t *testing.T) {
	rec := serve(t, handler.NewHealthHandler(), http.MethodDelete, "/healthz", "")

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRoutes_InquiryMiddlewareWrapsOnlyInquiries(t *testing.T) {
	blocked := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})
	}
	srv := handler.NewHealthHandler().WithInquiryMiddleware(blocked)

	require.Equal(t, http.StatusTooManyRequests, serve(t, srv, http.MethodPost, "/inquiries", `{}`).Code)
	require.Equal(t, http.StatusOK, serve(t, srv, http.MethodGet, "/healthz", "").Code)
}
