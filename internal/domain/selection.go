package domain

import "fmt"

// SelectionLine is one hunt in a package. The line refers to its offering by
// id and is resolved against the catalog at pricing time.
// A line with Quantity 0 never exists: setting the quantity to 0 removes it.
type SelectionLine struct {
	OfferingID string `json:"huntId"`
	Quantity   int    `json:"quantity"`
}

// ExtraSelection is a chosen add-on belonging to one of the selected hunts.
type ExtraSelection struct {
	OfferingID string `json:"huntId"`
	ExtraID    string `json:"extraId"`
	Quantity   int    `json:"quantity"`
}

// PeopleCount is the party size. The first hunter is always included.
type PeopleCount struct {
	Hunters    int `json:"hunters"`
	NonHunters int `json:"nonHunters"`
}

// PackageSelection is a user's in-progress package. It lives only in memory
// for the duration of a session.
//
// Extras may reference hunts that are no longer selected; readers must go
// through ActiveExtras, which drops those orphans.
type PackageSelection struct {
	Lines     []SelectionLine  `json:"hunts"`
	ExtraDays int              `json:"additionalDays"`
	Extras    []ExtraSelection `json:"selectedExtras"`
	People    PeopleCount      `json:"people"`
}

// NewSelection returns an empty package for a single hunter.
func NewSelection() PackageSelection {
	return PackageSelection{People: PeopleCount{Hunters: 1}}
}

// IsEmpty reports whether the package has no hunts and no extra days.
func (s PackageSelection) IsEmpty() bool {
	return len(s.Lines) == 0 && s.ExtraDays == 0
}

// Line returns the line for offeringID.
func (s PackageSelection) Line(offeringID string) (SelectionLine, bool) {
	for _, l := range s.Lines {
		if l.OfferingID == offeringID {
			return l, true
		}
	}
	return SelectionLine{}, false
}

// ActiveExtras returns the extras whose hunt is currently selected, in
// selection order.
func (s PackageSelection) ActiveExtras() []ExtraSelection {
	present := make(map[string]bool, len(s.Lines))
	for _, l := range s.Lines {
		present[l.OfferingID] = true
	}
	var out []ExtraSelection
	for _, e := range s.Extras {
		if present[e.OfferingID] {
			out = append(out, e)
		}
	}
	return out
}

// Clone returns a deep copy so callers can mutate it without aliasing.
func (s PackageSelection) Clone() PackageSelection {
	c := s
	c.Lines = append([]SelectionLine(nil), s.Lines...)
	c.Extras = append([]ExtraSelection(nil), s.Extras...)
	return c
}

// AddHunt adds one animal of offeringID, appending a new line if needed.
func (s *PackageSelection) AddHunt(offeringID string) {
	for i := range s.Lines {
		if s.Lines[i].OfferingID == offeringID {
			s.Lines[i].Quantity++
			return
		}
	}
	// Extras left over from an earlier line for this hunt were orphaned when
	// it was removed and must not come back with the new line.
	s.dropExtras(offeringID)
	s.Lines = append(s.Lines, SelectionLine{OfferingID: offeringID, Quantity: 1})
}

// SetQuantity sets the quantity of an existing line. A quantity of 0 or less
// removes the line. Unknown ids are ignored.
func (s *PackageSelection) SetQuantity(offeringID string, quantity int) {
	if quantity <= 0 {
		s.RemoveHunt(offeringID)
		return
	}
	for i := range s.Lines {
		if s.Lines[i].OfferingID == offeringID {
			s.Lines[i].Quantity = quantity
			return
		}
	}
}

// RemoveHunt removes the line for offeringID, if present.
func (s *PackageSelection) RemoveHunt(offeringID string) {
	out := s.Lines[:0]
	for _, l := range s.Lines {
		if l.OfferingID != offeringID {
			out = append(out, l)
		}
	}
	s.Lines = out
}

// SetExtraDays sets the days added on top of the hunts, clamped at 0.
func (s *PackageSelection) SetExtraDays(days int) {
	s.ExtraDays = max(0, days)
}

// SetHunters sets the hunter count, clamped at 1.
func (s *PackageSelection) SetHunters(n int) {
	s.People.Hunters = max(1, n)
}

// SetNonHunters sets the non-hunter count, clamped at 0.
func (s *PackageSelection) SetNonHunters(n int) {
	s.People.NonHunters = max(0, n)
}

// SetExtra sets the quantity of an extra on a selected hunt. A quantity of 0
// or less removes it. Returns ErrValidation when the hunt is not selected.
func (s *PackageSelection) SetExtra(offeringID, extraID string, quantity int) error {
	if _, ok := s.Line(offeringID); !ok {
		return fmt.Errorf("%w: hunt %q is not in the package", ErrValidation, offeringID)
	}
	for i := range s.Extras {
		e := &s.Extras[i]
		if e.OfferingID != offeringID || e.ExtraID != extraID {
			continue
		}
		if quantity <= 0 {
			s.Extras = append(s.Extras[:i], s.Extras[i+1:]...)
			return nil
		}
		e.Quantity = quantity
		return nil
	}
	if quantity > 0 {
		s.Extras = append(s.Extras, ExtraSelection{OfferingID: offeringID, ExtraID: extraID, Quantity: quantity})
	}
	return nil
}

// Reset empties the package back to NewSelection.
func (s *PackageSelection) Reset() {
	*s = NewSelection()
}

func (s *PackageSelection) dropExtras(offeringID string) {
	out := s.Extras[:0]
	for _, e := range s.Extras {
		if e.OfferingID != offeringID {
			out = append(out, e)
		}
	}
	s.Extras = out
}
