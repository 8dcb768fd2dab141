package handler_test

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/hunt-packages/backend/internal/domain"
	"github.com/pkordes/hunt-packages/backend/internal/handler"
)

// ---- helpers ---------------------------------------------------------------

// newBreakdownServer wires a Server whose package service returns p.
func newBreakdownServer(p domain.PricedPackage) *handler.Server {
	return newPackageServer(&mockPackageServicer{
		get: func(context.Context, uuid.UUID) (domain.PricedPackage, error) { return p, nil },
	})
}

// fullPackage has one row of every breakdown kind.
func fullPackage(id uuid.UUID) domain.PricedPackage {
	return domain.PricedPackage{
		ID:        id,
		Selection: domain.NewSelection(),
		Quote: domain.Quote{
			TotalDays:  9,
			TotalPrice: 12500,
			Breakdown: []domain.LineItem{
				{Kind: domain.KindHunt, Label: "Red Stag (2x)", Price: 2200, Description: "2 Red Deers"},
				{Kind: domain.KindExtraDays, Label: "Additional Days", Price: 580, Description: "2 day(s) at $290/day"},
				{Kind: domain.KindAdditionalHunters, Label: "Additional Hunters", Price: 1800, Description: "1 additional hunter(s) at $200/day for 9 days"},
				{Kind: domain.KindNonHunters, Label: "Non-Hunters", Price: 1620, Description: "1 non-hunter(s) at $180/day for 9 days"},
				{Kind: domain.KindExtra, Label: "Taxidermy", Price: 6300, Description: "1x Shoulder mount, with \"care\""},
			},
		},
	}
}

// ---- GET /packages/{id}/breakdown (JSON) -----------------------------------

func TestGetPackageBreakdown_DefaultJSON(t *testing.T) {
	id := uuid.New()

	rec := serve(t, newBreakdownServer(fullPackage(id)), http.MethodGet, "/packages/"+id.String()+"/breakdown", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var got handler.BreakdownResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Len(t, got.Breakdown, 5)
	assert.Equal(t, 9, got.TotalDays)
	assert.Equal(t, int64(12500), got.TotalPrice)
	assert.Equal(t, "$12,500", got.Total)
}

func TestGetPackageBreakdown_EmptyJSONHasEmptyArray(t *testing.T) {
	id := uuid.New()
	p := domain.PricedPackage{ID: id, Selection: domain.NewSelection()}

	rec := serve(t, newBreakdownServer(p), http.MethodGet, "/packages/"+id.String()+"/breakdown?format=json", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"breakdown":[],"totalDays":0,"totalPrice":0,"total":"$0"}`, rec.Body.String())
}

// ---- GET /packages/{id}/breakdown (CSV) -------------------------------------

func TestGetPackageBreakdown_CSV(t *testing.T) {
	id := uuid.New()

	rec := serve(t, newBreakdownServer(fullPackage(id)), http.MethodGet, "/packages/"+id.String()+"/breakdown?format=csv", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), fmt.Sprintf("package-%s.csv", id))

	records, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 7, "header + 5 items + total")
	assert.Equal(t, []string{"kind", "label", "description", "price"}, records[0])
	assert.Equal(t, []string{"hunt", "Red Stag (2x)", "2 Red Deers", "2200"}, records[1])
	assert.Equal(t, []string{"extra", "Taxidermy", "1x Shoulder mount, with \"care\"", "6300"}, records[5])
	assert.Equal(t, []string{"total", "Total", "9 days", "12500"}, records[6])
}

func TestGetPackageBreakdown_EmptyCSVHasHeaderAndTotal(t *testing.T) {
	id := uuid.New()
	p := domain.PricedPackage{ID: id, Selection: domain.NewSelection()}

	rec := serve(t, newBreakdownServer(p), http.MethodGet, "/packages/"+id.String()+"/breakdown?format=csv", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "kind,label,description,price\ntotal,Total,0 days,0\n", rec.Body.String())
}

// ---- errors ----------------------------------------------------------------

func TestGetPackageBreakdown_UnknownFormat(t *testing.T) {
	id := uuid.New()

	rec := serve(t, newBreakdownServer(fullPackage(id)), http.MethodGet, "/packages/"+id.String()+"/breakdown?format=xml", "")

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "format must be csv or json", decodeError(t, rec).Message)
}

func TestGetPackageBreakdown_NotFound(t *testing.T) {
	srv := newPackageServer(&mockPackageServicer{
		get: func(context.Context, uuid.UUID) (domain.PricedPackage, error) {
			return domain.PricedPackage{}, fmt.Errorf("service.PackageService.Get: %w", domain.ErrNotFound)
		},
	})

	rec := serve(t, srv, http.MethodGet, "/packages/"+uuid.NewString()+"/breakdown?format=csv", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
}
