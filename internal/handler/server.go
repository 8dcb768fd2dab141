// Package handler implements the HTTP handlers for the hunt packages API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, catalog.go, packages.go, etc.) but all share the same
// Server struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/hunt-packages/backend/internal/domain"
	"github.com/pkordes/hunt-packages/backend/internal/service"
)

// CatalogServicer defines the catalog reads the handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without loading a real catalog.
type CatalogServicer interface {
	Ready() bool
	ListHunts(ctx context.Context, species string, p domain.PaginationParams) ([]domain.HuntOffering, int, error)
	GetHunt(ctx context.Context, id string) (domain.HuntOffering, error)
	Species(ctx context.Context) ([]string, error)
	DayRates(ctx context.Context) (domain.DayRateSchedule, bool, error)
	Booking(ctx context.Context) (domain.BookingInfo, error)
}

// QuoteServicer prices selections posted by the client.
type QuoteServicer interface {
	Quote(ctx context.Context, sel domain.PackageSelection) (domain.Quote, error)
	Summary(ctx context.Context, sel domain.PackageSelection) (domain.SummaryHandoff, error)
}

// PackageServicer edits server-held package sessions.
type PackageServicer interface {
	Create(ctx context.Context, huntID string) (domain.PricedPackage, error)
	Get(ctx context.Context, id uuid.UUID) (domain.PricedPackage, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reset(ctx context.Context, id uuid.UUID) (domain.PricedPackage, error)
	AddHunt(ctx context.Context, id uuid.UUID, huntID string) (domain.PricedPackage, error)
	SetQuantity(ctx context.Context, id uuid.UUID, huntID string, quantity int) (domain.PricedPackage, error)
	RemoveHunt(ctx context.Context, id uuid.UUID, huntID string) (domain.PricedPackage, error)
	SetExtraDays(ctx context.Context, id uuid.UUID, days int) (domain.PricedPackage, error)
	SetPeople(ctx context.Context, id uuid.UUID, u service.PeopleUpdate) (domain.PricedPackage, error)
	SetExtra(ctx context.Context, id uuid.UUID, huntID, extraID string, quantity int) (domain.PricedPackage, error)
	Summary(ctx context.Context, id uuid.UUID) (domain.SummaryHandoff, error)
}

// InquiryServicer turns contact form submissions into a handoff.
type InquiryServicer interface {
	Submit(ctx context.Context, inq domain.Inquiry) (domain.InquiryHandoff, error)
}

// Server holds the services behind every endpoint.
// Methods are in domain-specific files but all operate on this struct.
type Server struct {
	catalog   CatalogServicer
	quotes    QuoteServicer
	packages  PackageServicer
	inquiries InquiryServicer

	inquiryMiddleware []func(http.Handler) http.Handler
}

// NewServer constructs the Server with all its dependencies.
func NewServer(catalog CatalogServicer, quotes QuoteServicer, packages PackageServicer, inquiries InquiryServicer) *Server {
	return &Server{catalog: catalog, quotes: quotes, packages: packages, inquiries: inquiries}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil, nil)
}

// WithInquiryMiddleware wraps POST /inquiries only, e.g. with a rate limiter.
func (s *Server) WithInquiryMiddleware(mw ...func(http.Handler) http.Handler) *Server {
	s.inquiryMiddleware = append(s.inquiryMiddleware, mw...)
	return s
}

// Routes returns a chi router serving every endpoint. Cross-cutting
// middleware (request id, logging, CORS) is applied by the caller.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/readyz", s.GetReady)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Get("/hunts", s.ListHunts)
	r.Get("/hunts/{id}", s.GetHunt)
	r.Get("/species", s.ListSpecies)
	r.Get("/day-rates", s.GetDayRates)
	r.Get("/booking", s.GetBooking)

	r.Post("/quotes", s.CreateQuote)
	r.Post("/quotes/summary", s.CreateQuoteSummary)

	r.Route("/packages", func(r chi.Router) {
		r.Post("/", s.CreatePackage)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetPackage)
			r.Delete("/", s.DeletePackage)
			r.Post("/reset", s.ResetPackage)
			r.Post("/hunts", s.AddPackageHunt)
			r.Put("/hunts/{huntId}", s.SetPackageHuntQuantity)
			r.Delete("/hunts/{huntId}", s.RemovePackageHunt)
			r.Put("/extra-days", s.SetPackageExtraDays)
			r.Put("/people", s.SetPackagePeople)
			r.Put("/extras", s.SetPackageExtra)
			r.Get("/summary", s.GetPackageSummary)
			r.Get("/breakdown", s.GetPackageBreakdown)
		})
	})

	r.With(s.inquiryMiddleware...).Post("/inquiries", s.CreateInquiry)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})
	return r
}
