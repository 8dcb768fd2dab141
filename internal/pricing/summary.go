package pricing

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/pkordes/hunt-packages/backend/internal/domain"
)

// Summarize builds the summary handed to the contact mechanism. Its prices
// and day count agree with Compute for the same input.
func Summarize(cat Catalog, sel domain.PackageSelection) (domain.PackageSummary, error) {
	r, err := resolve(cat, sel)
	if err != nil {
		return domain.PackageSummary{}, fmt.Errorf("pricing.Summarize: %w", err)
	}
	q, err := r.quote(sel)
	if err != nil {
		return domain.PackageSummary{}, fmt.Errorf("pricing.Summarize: %w", err)
	}

	s := domain.PackageSummary{
		Hunts:      make([]domain.HuntSummary, 0, len(r.lines)),
		ExtraDays:  sel.ExtraDays,
		People:     sel.People,
		Extras:     make([]domain.ExtraSummary, 0, len(r.extras)),
		TotalPrice: q.TotalPrice,
		TotalDays:  q.TotalDays,
	}
	for _, item := range q.Breakdown {
		// Hunt and extra rows come out of quote in the same order as
		// r.lines and r.extras.
		switch item.Kind {
		case domain.KindHunt:
			l := r.lines[len(s.Hunts)]
			s.Hunts = append(s.Hunts, domain.HuntSummary{
				Name:        l.offering.Name,
				Species:     l.offering.SpeciesName,
				Quantity:    l.quantity,
				Price:       item.Price,
				Included:    l.offering.IncludedItems,
				NotIncluded: l.offering.ExcludedItems,
			})
		case domain.KindExtra:
			e := r.extras[len(s.Extras)]
			s.Extras = append(s.Extras, domain.ExtraSummary{
				Name:        e.option.Name,
				Description: e.option.Description,
				Quantity:    e.quantity,
				Price:       item.Price,
			})
		}
	}
	return s, nil
}

// EncodeSummary serializes s as JSON and percent-encodes it so it can travel
// as a single URL query value. Spaces are encoded as %20.
func EncodeSummary(s domain.PackageSummary) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("pricing.EncodeSummary: %w", err)
	}
	return strings.ReplaceAll(url.QueryEscape(string(b)), "+", "%20"), nil
}

// DecodeSummary reverses EncodeSummary.
func DecodeSummary(encoded string) (domain.PackageSummary, error) {
	raw, err := url.QueryUnescape(encoded)
	if err != nil {
		return domain.PackageSummary{}, fmt.Errorf("pricing.DecodeSummary: %w: %w", domain.ErrValidation, err)
	}
	var s domain.PackageSummary
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return domain.PackageSummary{}, fmt.Errorf("pricing.DecodeSummary: %w: %w", domain.ErrValidation, err)
	}
	return s, nil
}

// SummaryText renders s as plain text for an email body.
func SummaryText(s domain.PackageSummary) string {
	var b strings.Builder
	b.WriteString("Package Summary\n")
	if len(s.Hunts) > 0 {
		b.WriteString("\nHunts:\n")
		for _, h := range s.Hunts {
			fmt.Fprintf(&b, "- %s (%s) x%d: %s\n", h.Name, h.Species, h.Quantity, FormatMoney(h.Price))
			if len(h.Included) > 0 {
				fmt.Fprintf(&b, "  Included: %s\n", strings.Join(h.Included, ", "))
			}
			if len(h.NotIncluded) > 0 {
				fmt.Fprintf(&b, "  Not included: %s\n", strings.Join(h.NotIncluded, ", "))
			}
		}
	}
	if len(s.Extras) > 0 {
		b.WriteString("\nExtras:\n")
		for _, e := range s.Extras {
			fmt.Fprintf(&b, "- %s x%d: %s\n", e.Name, e.Quantity, FormatMoney(e.Price))
		}
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Additional days: %d\n", s.ExtraDays)
	fmt.Fprintf(&b, "Hunters: %d\n", s.People.Hunters)
	fmt.Fprintf(&b, "Non-hunters: %d\n", s.People.NonHunters)
	fmt.Fprintf(&b, "Total days: %d\n", s.TotalDays)
	fmt.Fprintf(&b, "Total price: %s", FormatMoney(s.TotalPrice))
	return b.String()
}
