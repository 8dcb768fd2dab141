package domain

import "github.com/google/uuid"

// LineItemKind identifies which part of the price a LineItem covers.
type LineItemKind string

const (
	KindHunt              LineItemKind = "hunt"
	KindExtraDays         LineItemKind = "extra_days"
	KindAdditionalHunters LineItemKind = "additional_hunters"
	KindNonHunters        LineItemKind = "non_hunters"
	KindExtra             LineItemKind = "extra"
)

// LineItem is one row of a bill breakdown.
type LineItem struct {
	Kind        LineItemKind `json:"kind"`
	Label       string       `json:"item"`
	Price       int64        `json:"price"`
	Description string       `json:"description"`
}

// Quote is the result of pricing a PackageSelection.
// The prices in Breakdown always sum to TotalPrice.
type Quote struct {
	TotalDays  int        `json:"totalDays"`
	TotalPrice int64      `json:"totalPrice"`
	Breakdown  []LineItem `json:"breakdown"`
}

// PackageSummary is the serializable description of a package handed to the
// contact mechanism.
type PackageSummary struct {
	Hunts      []HuntSummary  `json:"hunts"`
	ExtraDays  int            `json:"additionalDays"`
	People     PeopleCount    `json:"people"`
	Extras     []ExtraSummary `json:"selectedExtras"`
	TotalPrice int64          `json:"totalPrice"`
	TotalDays  int            `json:"totalDays"`
}

// HuntSummary describes one selected hunt in a PackageSummary.
type HuntSummary struct {
	Name        string   `json:"name"`
	Species     string   `json:"species"`
	Quantity    int      `json:"quantity"`
	Price       int64    `json:"price"`
	Included    []string `json:"included"`
	NotIncluded []string `json:"notIncluded"`
}

// ExtraSummary describes one selected extra in a PackageSummary.
type ExtraSummary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	Price       int64  `json:"price"`
}

// PricedPackage is a package session together with its current quote.
type PricedPackage struct {
	ID        uuid.UUID        `json:"id"`
	Selection PackageSelection `json:"selection"`
	Quote     Quote            `json:"quote"`
}

// SummaryHandoff is a PackageSummary in the three forms a client may need:
// structured, plain text for an email body, and URL-encoded for a link.
type SummaryHandoff struct {
	Summary PackageSummary `json:"summary"`
	Text    string         `json:"text"`
	Encoded string         `json:"encoded"`
}
