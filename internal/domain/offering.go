// Package domain contains the core data types for the hunt package pricing
// service. It depends only on google/uuid and is imported by every other
// internal package (catalog, pricing, repo, service, handler).
package domain

// HuntOffering is one bookable hunt for a species. Offerings are loaded once
// from the catalog document and never mutated afterwards.
type HuntOffering struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	SpeciesName string `json:"species"`

	// BasePrice is the price of the first animal, in whole currency units.
	BasePrice int64 `json:"basePrice"`
	// BaseDurationDays is the number of days needed for the first animal.
	BaseDurationDays int `json:"baseDays"`
	// AdditionalAnimalPrice is charged for each animal beyond the first.
	AdditionalAnimalPrice int64 `json:"additionalAnimalPrice"`
	// AdditionalAnimalDays is added for each animal beyond the first.
	AdditionalAnimalDays int `json:"additionalAnimalDays"`

	// Location groups offerings whose logistics overlap; see pricing.PackageDays.
	Location string `json:"location"`

	BestSeason  string `json:"bestSeason,omitempty"`
	Difficulty  string `json:"difficulty,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`

	IncludedItems []string      `json:"included"`
	ExcludedItems []string      `json:"notIncluded"`
	BringItems    []string      `json:"youNeedToBring"`
	Extras        []ExtraOption `json:"extras"`
}

// Extra returns the extra option with the given id.
func (o HuntOffering) Extra(id string) (ExtraOption, bool) {
	for _, e := range o.Extras {
		if e.ID == id {
			return e, true
		}
	}
	return ExtraOption{}, false
}

// ExtraOption is an optional add-on for an offering.
// When PerDay is set, UnitPrice is also multiplied by the package's total days.
type ExtraOption struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	UnitPrice   int64  `json:"price"`
	PerDay      bool   `json:"perDay"`
}

// DayRateSchedule holds the per-person, per-day rates of the catalog.
type DayRateSchedule struct {
	Solo             int64 `json:"solo"`
	AdditionalHunter int64 `json:"additionalHunter"`
	NonHunter        int64 `json:"nonHunter"`
}

// DefaultDayRates is used when the catalog document does not set day rates.
var DefaultDayRates = DayRateSchedule{Solo: 290, AdditionalHunter: 200, NonHunter: 180}

// BookingInfo carries the booking terms shown next to a quote.
type BookingInfo struct {
	Deposit     int64  `json:"deposit"`
	Currency    string `json:"currency"`
	DepositNote string `json:"depositNote"`
}

// DefaultBooking is used when the catalog document does not set booking terms.
var DefaultBooking = BookingInfo{
	Deposit:     500,
	Currency:    "AUD",
	DepositNote: "Non-refundable deposit required on booking",
}
