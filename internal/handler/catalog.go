package handler

import (
	"net/http"

	"github.com/pkordes/hunt-packages/backend/internal/domain"
)

// Pagination describes the page returned by a list endpoint.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// HuntList is the body of GET /hunts.
type HuntList struct {
	Data       []domain.HuntOffering `json:"data"`
	Pagination Pagination            `json:"pagination"`
}

// DayRatesResponse is the body of GET /day-rates. Defaulted is set when any
// rate was missing from the catalog document and filled from the built-in
// schedule.
type DayRatesResponse struct {
	domain.DayRateSchedule
	Defaulted bool `json:"defaulted"`
}

// ListHunts handles GET /hunts.
// Supports ?species=, ?page= and ?limit= (defaults: page=1, limit=20, max=100).
func (s *Server) ListHunts(w http.ResponseWriter, r *http.Request) {
	var species *string
	var page, limit *int
	err := queryParam(r, "species", &species)
	if err == nil {
		err = queryParam(r, "page", &page)
	}
	if err == nil {
		err = queryParam(r, "limit", &limit)
	}
	if err != nil {
		writeRequestError(w, err)
		return
	}

	params := domain.NewPaginationParams(page, limit)
	var filter string
	if species != nil {
		filter = *species
	}
	hunts, total, err := s.catalog.ListHunts(r.Context(), filter, params)
	if err != nil {
		writeServiceError(w, r, err, "hunt not found")
		return
	}
	if hunts == nil {
		hunts = []domain.HuntOffering{}
	}
	writeJSON(w, http.StatusOK, HuntList{
		Data:       hunts,
		Pagination: Pagination{Page: params.Page, Limit: params.Limit, Total: total},
	})
}

// GetHunt handles GET /hunts/{id}.
func (s *Server) GetHunt(w http.ResponseWriter, r *http.Request) {
	id, err := pathString(r, "id")
	if err != nil {
		writeRequestError(w, err)
		return
	}
	o, err := s.catalog.GetHunt(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "hunt not found")
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// ListSpecies handles GET /species.
func (s *Server) ListSpecies(w http.ResponseWriter, r *http.Request) {
	species, err := s.catalog.Species(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "species not found")
		return
	}
	if species == nil {
		species = []string{}
	}
	writeJSON(w, http.StatusOK, species)
}

// GetDayRates handles GET /day-rates.
func (s *Server) GetDayRates(w http.ResponseWriter, r *http.Request) {
	rates, defaulted, err := s.catalog.DayRates(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "day rates not found")
		return
	}
	writeJSON(w, http.StatusOK, DayRatesResponse{DayRateSchedule: rates, Defaulted: defaulted})
}

// GetBooking handles GET /booking.
func (s *Server) GetBooking(w http.ResponseWriter, r *http.Request) {
	b, err := s.catalog.Booking(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "booking terms not found")
		return
	}
	writeJSON(w, http.StatusOK, b)
}
