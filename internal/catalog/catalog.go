// Package catalog loads the static hunt catalog and answers read-only queries
// against it. A Catalog is immutable once built; the Accessor owns loading it
// once per process from a Source.
package catalog

import (
	"github.com/agnivade/levenshtein"

	"github.com/pkordes/hunt-packages/backend/internal/domain"
)

// Catalog is a parsed, indexed catalog document.
// All methods are safe for concurrent use because nothing mutates a Catalog
// after Parse returns it.
type Catalog struct {
	offerings []domain.HuntOffering
	byID      map[string]int
	species   []string

	dayRates          domain.DayRateSchedule
	dayRatesDefaulted bool
	booking           domain.BookingInfo
}

// AllOfferings returns every offering in declaration order: species first,
// then hunts within each species.
func (c *Catalog) AllOfferings() []domain.HuntOffering {
	return append([]domain.HuntOffering(nil), c.offerings...)
}

// Offering returns the offering with the given id.
func (c *Catalog) Offering(id string) (domain.HuntOffering, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.HuntOffering{}, false
	}
	return c.offerings[i], true
}

// OfferingsBySpecies returns the offerings of one species in declaration order.
// Unknown species yield an empty result.
func (c *Catalog) OfferingsBySpecies(species string) []domain.HuntOffering {
	var out []domain.HuntOffering
	for _, o := range c.offerings {
		if o.SpeciesName == species {
			out = append(out, o)
		}
	}
	return out
}

// Species returns the species names in declaration order.
func (c *Catalog) Species() []string {
	return append([]string(nil), c.species...)
}

// DayRates returns the day-rate schedule, with domain.DefaultDayRates filling
// any rate the document left out.
func (c *Catalog) DayRates() domain.DayRateSchedule {
	return c.dayRates
}

// DayRatesDefaulted reports whether any day rate came from the fallback
// defaults rather than the document.
func (c *Catalog) DayRatesDefaulted() bool {
	return c.dayRatesDefaulted
}

// Booking returns the booking terms.
func (c *Catalog) Booking() domain.BookingInfo {
	return c.booking
}

// Suggest returns the known offering id closest to id, if one is close enough
// to be a plausible typo.
func (c *Catalog) Suggest(id string) (string, bool) {
	best, bestDist := "", -1
	for _, o := range c.offerings {
		d := levenshtein.ComputeDistance(id, o.ID)
		if d > suggestLimit(len(o.ID)) {
			continue
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = o.ID, d
		}
	}
	return best, bestDist >= 0
}

func suggestLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
