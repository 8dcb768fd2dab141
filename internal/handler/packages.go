package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/pkordes/hunt-packages/backend/internal/domain"
	"github.com/pkordes/hunt-packages/backend/internal/service"
)

const packageNotFound = "package not found"

// CreatePackageRequest is the optional body of POST /packages.
type CreatePackageRequest struct {
	HuntID string `json:"huntId"`
}

// AddHuntRequest is the body of POST /packages/{id}/hunts.
type AddHuntRequest struct {
	HuntID string `json:"huntId"`
}

// QuantityRequest is the body of PUT /packages/{id}/hunts/{huntId}.
type QuantityRequest struct {
	Quantity *int `json:"quantity"`
}

// ExtraDaysRequest is the body of PUT /packages/{id}/extra-days.
type ExtraDaysRequest struct {
	AdditionalDays *int `json:"additionalDays"`
}

// PeopleRequest is the body of PUT /packages/{id}/people. Omitted counts are
// left unchanged.
type PeopleRequest struct {
	Hunters    *int `json:"hunters"`
	NonHunters *int `json:"nonHunters"`
}

// ExtraRequest is the body of PUT /packages/{id}/extras.
type ExtraRequest struct {
	HuntID   string `json:"huntId"`
	ExtraID  string `json:"extraId"`
	Quantity *int   `json:"quantity"`
}

// CreatePackage handles POST /packages.
// A huntId in the body or the ?hunt= query pre-selects that hunt.
func (s *Server) CreatePackage(w http.ResponseWriter, r *http.Request) {
	var hunt *string
	if err := queryParam(r, "hunt", &hunt); err != nil {
		writeRequestError(w, err)
		return
	}
	var body CreatePackageRequest
	if err := decodeBody(r, &body, true); err != nil {
		writeRequestError(w, err)
		return
	}
	if body.HuntID == "" && hunt != nil {
		body.HuntID = *hunt
	}

	p, err := s.packages.Create(r.Context(), body.HuntID)
	if err != nil {
		writeServiceError(w, r, err, packageNotFound)
		return
	}
	w.Header().Set("Location", "/packages/"+p.ID.String())
	writeJSON(w, http.StatusCreated, packageResponse(p))
}

// GetPackage handles GET /packages/{id}.
func (s *Server) GetPackage(w http.ResponseWriter, r *http.Request) {
	s.withPackage(w, r, func(id uuid.UUID) (domain.PricedPackage, error) {
		return s.packages.Get(r.Context(), id)
	})
}

// DeletePackage handles DELETE /packages/{id}.
func (s *Server) DeletePackage(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeRequestError(w, err)
		return
	}
	if err := s.packages.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, packageNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ResetPackage handles POST /packages/{id}/reset.
func (s *Server) ResetPackage(w http.ResponseWriter, r *http.Request) {
	s.withPackage(w, r, func(id uuid.UUID) (domain.PricedPackage, error) {
		return s.packages.Reset(r.Context(), id)
	})
}

// AddPackageHunt handles POST /packages/{id}/hunts.
func (s *Server) AddPackageHunt(w http.ResponseWriter, r *http.Request) {
	var body AddHuntRequest
	if err := decodeBody(r, &body, false); err != nil {
		writeRequestError(w, err)
		return
	}
	if body.HuntID == "" {
		writeRequestError(w, errors.New("huntId is required"))
		return
	}
	s.withPackage(w, r, func(id uuid.UUID) (domain.PricedPackage, error) {
		return s.packages.AddHunt(r.Context(), id, body.HuntID)
	})
}

// SetPackageHuntQuantity handles PUT /packages/{id}/hunts/{huntId}.
// A quantity of 0 or less removes the hunt.
func (s *Server) SetPackageHuntQuantity(w http.ResponseWriter, r *http.Request) {
	huntID, err := pathString(r, "huntId")
	if err != nil {
		writeRequestError(w, err)
		return
	}
	var body QuantityRequest
	if err := decodeBody(r, &body, false); err != nil {
		writeRequestError(w, err)
		return
	}
	if body.Quantity == nil {
		writeRequestError(w, errors.New("quantity is required"))
		return
	}
	s.withPackage(w, r, func(id uuid.UUID) (domain.PricedPackage, error) {
		return s.packages.SetQuantity(r.Context(), id, huntID, *body.Quantity)
	})
}

// RemovePackageHunt handles DELETE /packages/{id}/hunts/{huntId}.
func (s *Server) RemovePackageHunt(w http.ResponseWriter, r *http.Request) {
	huntID, err := pathString(r, "huntId")
	if err != nil {
		writeRequestError(w, err)
		return
	}
	s.withPackage(w, r, func(id uuid.UUID) (domain.PricedPackage, error) {
		return s.packages.RemoveHunt(r.Context(), id, huntID)
	})
}

// SetPackageExtraDays handles PUT /packages/{id}/extra-days.
// Negative values are stored as 0.
func (s *Server) SetPackageExtraDays(w http.ResponseWriter, r *http.Request) {
	var body ExtraDaysRequest
	if err := decodeBody(r, &body, false); err != nil {
		writeRequestError(w, err)
		return
	}
	if body.AdditionalDays == nil {
		writeRequestError(w, errors.New("additionalDays is required"))
		return
	}
	s.withPackage(w, r, func(id uuid.UUID) (domain.PricedPackage, error) {
		return s.packages.SetExtraDays(r.Context(), id, *body.AdditionalDays)
	})
}

// SetPackagePeople handles PUT /packages/{id}/people.
func (s *Server) SetPackagePeople(w http.ResponseWriter, r *http.Request) {
	var body PeopleRequest
	if err := decodeBody(r, &body, false); err != nil {
		writeRequestError(w, err)
		return
	}
	if body.Hunters == nil && body.NonHunters == nil {
		writeRequestError(w, errors.New("hunters or nonHunters is required"))
		return
	}
	s.withPackage(w, r, func(id uuid.UUID) (domain.PricedPackage, error) {
		return s.packages.SetPeople(r.Context(), id, service.PeopleUpdate{Hunters: body.Hunters, NonHunters: body.NonHunters})
	})
}

// SetPackageExtra handles PUT /packages/{id}/extras.
// A quantity of 0 or less removes the extra.
func (s *Server) SetPackageExtra(w http.ResponseWriter, r *http.Request) {
	var body ExtraRequest
	if err := decodeBody(r, &body, false); err != nil {
		writeRequestError(w, err)
		return
	}
	switch {
	case body.HuntID == "":
		writeRequestError(w, errors.New("huntId is required"))
		return
	case body.ExtraID == "":
		writeRequestError(w, errors.New("extraId is required"))
		return
	case body.Quantity == nil:
		writeRequestError(w, errors.New("quantity is required"))
		return
	}
	s.withPackage(w, r, func(id uuid.UUID) (domain.PricedPackage, error) {
		return s.packages.SetExtra(r.Context(), id, body.HuntID, body.ExtraID, *body.Quantity)
	})
}

// GetPackageSummary handles GET /packages/{id}/summary.
func (s *Server) GetPackageSummary(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeRequestError(w, err)
		return
	}
	h, err := s.packages.Summary(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, packageNotFound)
		return
	}
	writeJSON(w, http.StatusOK, h)
}

// withPackage binds {id}, runs op and writes the priced package.
func (s *Server) withPackage(w http.ResponseWriter, r *http.Request, op func(id uuid.UUID) (domain.PricedPackage, error)) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeRequestError(w, err)
		return
	}
	p, err := op(id)
	if err != nil {
		writeServiceError(w, r, err, packageNotFound)
		return
	}
	writeJSON(w, http.StatusOK, packageResponse(p))
}

// packageResponse renders empty collections as [] rather than null.
func packageResponse(p domain.PricedPackage) domain.PricedPackage {
	if p.Selection.Lines == nil {
		p.Selection.Lines = []domain.SelectionLine{}
	}
	if p.Selection.Extras == nil {
		p.Selection.Extras = []domain.ExtraSelection{}
	}
	if p.Quote.Breakdown == nil {
		p.Quote.Breakdown = []domain.LineItem{}
	}
	return p
}
