package handler

import (
	"net/http"

	"github.com/pkordes/hunt-packages/backend/internal/domain"
)

// CreateInquiry handles POST /inquiries.
// The response always carries a mailto link; sent reports whether the
// inquiry was also delivered by mail.
func (s *Server) CreateInquiry(w http.ResponseWriter, r *http.Request) {
	var inq domain.Inquiry
	if err := decodeBody(r, &inq, false); err != nil {
		writeRequestError(w, err)
		return
	}
	h, err := s.inquiries.Submit(r.Context(), inq)
	if err != nil {
		writeServiceError(w, r, err, packageNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, h)
}
