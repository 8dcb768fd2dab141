// Package handler: export.go implements GET /packages/{id}/breakdown.
// Returns the bill breakdown of a package session as a flat table.
// Supports content negotiation via ?format=csv (CSV) or default (JSON).
package handler

import (
	"bytes"
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"

	"github.com/pkordes/hunt-packages/backend/internal/domain"
	"github.com/pkordes/hunt-packages/backend/internal/pricing"
)

// csvHeaders defines the column names written as the first row of a CSV breakdown.
var csvHeaders = []string{"kind", "label", "description", "price"}

// BreakdownResponse is the JSON form of a package breakdown.
type BreakdownResponse struct {
	Breakdown  []domain.LineItem `json:"breakdown"`
	TotalDays  int               `json:"totalDays"`
	TotalPrice int64             `json:"totalPrice"`
	// Total is TotalPrice formatted for display, e.g. "$12,500".
	Total string `json:"total"`
}

// GetPackageBreakdown handles GET /packages/{id}/breakdown.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetPackageBreakdown(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeRequestError(w, err)
		return
	}
	var format *string
	if err := queryParam(r, "format", &format); err != nil {
		writeRequestError(w, err)
		return
	}
	wantCSV := format != nil && *format == "csv"
	if format != nil && !wantCSV && *format != "json" {
		writeRequestError(w, errors.New("format must be csv or json"))
		return
	}

	p, err := s.packages.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, packageNotFound)
		return
	}

	if wantCSV {
		body := buildCSV(p.Quote)
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="package-`+p.ID.String()+`.csv"`)
		w.Header().Set("Content-Length", strconv.Itoa(body.Len()))
		w.WriteHeader(http.StatusOK)
		_, _ = body.WriteTo(w)
		return
	}
	writeJSON(w, http.StatusOK, BreakdownResponse{
		Breakdown:  packageResponse(p).Quote.Breakdown,
		TotalDays:  p.Quote.TotalDays,
		TotalPrice: p.Quote.TotalPrice,
		Total:      pricing.FormatMoney(p.Quote.TotalPrice),
	})
}

// buildCSV encodes the breakdown one line item per row, followed by a total
// row whose description carries the package length.
func buildCSV(q domain.Quote) *bytes.Buffer {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	w.Write(csvHeaders)
	for _, item := range q.Breakdown {
		//nolint:errcheck
		w.Write([]string{string(item.Kind), item.Label, item.Description, strconv.FormatInt(item.Price, 10)})
	}
	//nolint:errcheck
	w.Write([]string{"total", "Total", strconv.Itoa(q.TotalDays) + " days", strconv.FormatInt(q.TotalPrice, 10)})
	w.Flush()
	return &buf
}
