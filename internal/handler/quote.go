package handler

import (
	"net/http"

	"github.com/pkordes/hunt-packages/backend/internal/domain"
)

// decodeSelection reads a selection body. Fields the client leaves out keep
// the values of an empty single-hunter package.
func decodeSelection(r *http.Request) (domain.PackageSelection, error) {
	sel := domain.NewSelection()
	if err := decodeBody(r, &sel, false); err != nil {
		return domain.PackageSelection{}, err
	}
	return sel, nil
}

// CreateQuote handles POST /quotes. The posted selection is priced as is;
// nothing is clamped or stored.
func (s *Server) CreateQuote(w http.ResponseWriter, r *http.Request) {
	sel, err := decodeSelection(r)
	if err != nil {
		writeRequestError(w, err)
		return
	}
	q, err := s.quotes.Quote(r.Context(), sel)
	if err != nil {
		writeServiceError(w, r, err, "hunt not found")
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// CreateQuoteSummary handles POST /quotes/summary.
func (s *Server) CreateQuoteSummary(w http.ResponseWriter, r *http.Request) {
	sel, err := decodeSelection(r)
	if err != nil {
		writeRequestError(w, err)
		return
	}
	h, err := s.quotes.Summary(r.Context(), sel)
	if err != nil {
		writeServiceError(w, r, err, "hunt not found")
		return
	}
	writeJSON(w, http.StatusOK, h)
}
