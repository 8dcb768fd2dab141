// Package pricing computes the total days, total price and bill breakdown of
// a hunt package. Every function is pure: the catalog is passed in, nothing is
// cached, and equal inputs always give equal outputs.
package pricing

import (
	"fmt"
	"math"

	"github.com/pkordes/hunt-packages/backend/internal/domain"
)

// IncludedHuntersPerPackage is the number of hunters covered by the hunt
// prices. Only hunters beyond this are charged the additional-hunter rate.
const IncludedHuntersPerPackage = 1

// Catalog is the part of the hunt catalog the engine reads.
// *catalog.Catalog satisfies it.
type Catalog interface {
	Offering(id string) (domain.HuntOffering, bool)
	DayRates() domain.DayRateSchedule
}

// suggester is optionally implemented by a Catalog to enrich unknown-id errors.
type suggester interface {
	Suggest(id string) (string, bool)
}

// LinePrice is the price of quantity animals of one offering: the base price
// for the first, plus the additional-animal price for each one after it.
// A result too large for int64 saturates at math.MaxInt64; Compute reports
// the same case as ErrInvalidSelection.
func LinePrice(o domain.HuntOffering, quantity int) int64 {
	var c calc
	price := c.linePrice(o, quantity)
	if c.overflow {
		return math.MaxInt64
	}
	return price
}

// LineDuration is the days needed for quantity animals of one offering.
// It saturates at math.MaxInt like LinePrice.
func LineDuration(o domain.HuntOffering, quantity int) int {
	var c calc
	days := c.lineDuration(o, quantity)
	if c.overflow || days > math.MaxInt {
		return math.MaxInt
	}
	return int(days)
}

// PackageDays returns the total days of the package's itinerary.
//
// Lines are grouped by location. A group with one line takes that line's
// duration. A group with several lines is priced as if all of its animals
// were taken on the group's primary offering, the one with the most base
// days (first one wins a tie), so hunts at the same place share their
// setup days. Extra days are added on top.
func PackageDays(cat Catalog, sel domain.PackageSelection) (int, error) {
	r, err := resolve(cat, sel)
	if err != nil {
		return 0, fmt.Errorf("pricing.PackageDays: %w", err)
	}
	var c calc
	days := c.packageDays(r.lines, sel.ExtraDays)
	if c.overflow {
		return 0, fmt.Errorf("pricing.PackageDays: %w: day count overflows", domain.ErrInvalidSelection)
	}
	return int(days), nil
}

type resolvedLine struct {
	offering domain.HuntOffering
	quantity int
}

type resolvedExtra struct {
	option   domain.ExtraOption
	quantity int
}

type resolved struct {
	lines  []resolvedLine
	extras []resolvedExtra
	rates  domain.DayRateSchedule
}

// resolve validates sel and looks up every offering and extra it references.
func resolve(cat Catalog, sel domain.PackageSelection) (resolved, error) {
	switch {
	case sel.ExtraDays < 0:
		return resolved{}, fmt.Errorf("%w: additional days must not be negative, got %d", domain.ErrInvalidSelection, sel.ExtraDays)
	case sel.People.Hunters < IncludedHuntersPerPackage:
		return resolved{}, fmt.Errorf("%w: a package needs at least %d hunter, got %d", domain.ErrInvalidSelection, IncludedHuntersPerPackage, sel.People.Hunters)
	case sel.People.NonHunters < 0:
		return resolved{}, fmt.Errorf("%w: non-hunters must not be negative, got %d", domain.ErrInvalidSelection, sel.People.NonHunters)
	}

	r := resolved{rates: cat.DayRates()}
	offerings := make(map[string]domain.HuntOffering, len(sel.Lines))
	for _, l := range sel.Lines {
		if l.Quantity < 1 {
			return resolved{}, fmt.Errorf("%w: hunt %q quantity must be at least 1, got %d", domain.ErrInvalidSelection, l.OfferingID, l.Quantity)
		}
		if _, dup := offerings[l.OfferingID]; dup {
			return resolved{}, fmt.Errorf("%w: hunt %q appears more than once", domain.ErrInvalidSelection, l.OfferingID)
		}
		o, ok := cat.Offering(l.OfferingID)
		if !ok {
			return resolved{}, unknownOffering(cat, l.OfferingID)
		}
		offerings[l.OfferingID] = o
		r.lines = append(r.lines, resolvedLine{offering: o, quantity: l.Quantity})
	}

	seen := make(map[[2]string]bool)
	for _, e := range sel.ActiveExtras() {
		key := [2]string{e.OfferingID, e.ExtraID}
		if seen[key] {
			return resolved{}, fmt.Errorf("%w: extra %q on hunt %q appears more than once", domain.ErrInvalidSelection, e.ExtraID, e.OfferingID)
		}
		seen[key] = true
		if e.Quantity < 1 {
			return resolved{}, fmt.Errorf("%w: extra %q quantity must be at least 1, got %d", domain.ErrInvalidSelection, e.ExtraID, e.Quantity)
		}
		opt, ok := offerings[e.OfferingID].Extra(e.ExtraID)
		if !ok {
			return resolved{}, fmt.Errorf("%w: hunt %q has no extra %q", domain.ErrInvalidSelection, e.OfferingID, e.ExtraID)
		}
		r.extras = append(r.extras, resolvedExtra{option: opt, quantity: e.Quantity})
	}
	return r, nil
}

func unknownOffering(cat Catalog, id string) error {
	if s, ok := cat.(suggester); ok {
		if near, ok := s.Suggest(id); ok {
			return fmt.Errorf("%w: hunt %q (did you mean %q?)", domain.ErrUnknownOffering, id, near)
		}
	}
	return fmt.Errorf("%w: hunt %q", domain.ErrUnknownOffering, id)
}

// calc does non-negative int64 arithmetic and remembers whether any step
// overflowed.
type calc struct {
	overflow bool
}

func (c *calc) add(vals ...int64) int64 {
	var sum int64
	for _, v := range vals {
		if sum > math.MaxInt64-v {
			c.overflow = true
			return 0
		}
		sum += v
	}
	return sum
}

func (c *calc) mul(vals ...int64) int64 {
	prod := int64(1)
	for _, v := range vals {
		if v != 0 && prod > math.MaxInt64/v {
			c.overflow = true
			return 0
		}
		prod *= v
	}
	return prod
}

func (c *calc) linePrice(o domain.HuntOffering, quantity int) int64 {
	if quantity <= 1 {
		return o.BasePrice
	}
	return c.add(o.BasePrice, c.mul(o.AdditionalAnimalPrice, int64(quantity-1)))
}

func (c *calc) lineDuration(o domain.HuntOffering, quantity int) int64 {
	if quantity <= 1 {
		return int64(o.BaseDurationDays)
	}
	return c.add(int64(o.BaseDurationDays), c.mul(int64(o.AdditionalAnimalDays), int64(quantity-1)))
}

func (c *calc) packageDays(lines []resolvedLine, extraDays int) int64 {
	// Groups keep first-seen order so the primary tie-break is deterministic.
	var order []string
	groups := make(map[string][]resolvedLine)
	for _, l := range lines {
		loc := l.offering.Location
		if _, ok := groups[loc]; !ok {
			order = append(order, loc)
		}
		groups[loc] = append(groups[loc], l)
	}

	total := int64(extraDays)
	for _, loc := range order {
		total = c.add(total, c.groupDays(groups[loc]))
	}
	return total
}

func (c *calc) groupDays(group []resolvedLine) int64 {
	if len(group) == 1 {
		return c.lineDuration(group[0].offering, group[0].quantity)
	}

	var animals int64
	primary := group[0]
	for _, l := range group {
		animals = c.add(animals, int64(l.quantity))
		if l.offering.BaseDurationDays > primary.offering.BaseDurationDays {
			primary = l
		}
	}
	if animals == 1 {
		// Unreachable with quantities >= 1, kept for parity with the
		// documented rule: one animal takes the longest base duration.
		return int64(primary.offering.BaseDurationDays)
	}
	if animals > math.MaxInt32 {
		c.overflow = true
		return 0
	}
	return c.lineDuration(primary.offering, int(animals))
}
