package pricing

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pkordes/hunt-packages/backend/internal/domain"
)

// Compute prices sel against cat.
//
// The breakdown lists hunts in selection order, then additional days,
// additional hunters, non-hunters and finally extras. Zero-valued people and
// day rows are omitted. An empty package yields a zero quote with an empty
// breakdown.
//
// Errors wrap domain.ErrUnknownOffering for ids missing from the catalog and
// domain.ErrInvalidSelection for everything else.
func Compute(cat Catalog, sel domain.PackageSelection) (domain.Quote, error) {
	r, err := resolve(cat, sel)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("pricing.Compute: %w", err)
	}
	q, err := r.quote(sel)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("pricing.Compute: %w", err)
	}
	return q, nil
}

func (r resolved) quote(sel domain.PackageSelection) (domain.Quote, error) {
	var c calc
	days := c.packageDays(r.lines, sel.ExtraDays)
	breakdown := make([]domain.LineItem, 0, len(r.lines)+3+len(r.extras))

	for _, l := range r.lines {
		breakdown = append(breakdown, domain.LineItem{
			Kind:        domain.KindHunt,
			Label:       fmt.Sprintf("%s (%dx)", l.offering.Name, l.quantity),
			Price:       c.linePrice(l.offering, l.quantity),
			Description: fmt.Sprintf("%d %s", l.quantity, plural(l.offering.SpeciesName, l.quantity)),
		})
	}

	p := newPrinter()
	if sel.ExtraDays > 0 {
		breakdown = append(breakdown, domain.LineItem{
			Kind:        domain.KindExtraDays,
			Label:       "Additional Days",
			Price:       c.mul(int64(sel.ExtraDays), r.rates.Solo),
			Description: p.Sprintf("%d day(s) at $%d/day", sel.ExtraDays, r.rates.Solo),
		})
	}
	if extra := sel.People.Hunters - IncludedHuntersPerPackage; extra > 0 {
		breakdown = append(breakdown, domain.LineItem{
			Kind:        domain.KindAdditionalHunters,
			Label:       "Additional Hunters",
			Price:       c.mul(int64(extra), r.rates.AdditionalHunter, days),
			Description: p.Sprintf("%d additional hunter(s) at $%d/day for %d days", extra, r.rates.AdditionalHunter, days),
		})
	}
	if n := sel.People.NonHunters; n > 0 {
		breakdown = append(breakdown, domain.LineItem{
			Kind:        domain.KindNonHunters,
			Label:       "Non-Hunters",
			Price:       c.mul(int64(n), r.rates.NonHunter, days),
			Description: p.Sprintf("%d non-hunter(s) at $%d/day for %d days", n, r.rates.NonHunter, days),
		})
	}
	for _, e := range r.extras {
		breakdown = append(breakdown, c.extraItem(e, days))
	}

	var total int64
	for _, item := range breakdown {
		total = c.add(total, item.Price)
	}
	if c.overflow {
		return domain.Quote{}, fmt.Errorf("%w: package total is too large", domain.ErrInvalidSelection)
	}
	return domain.Quote{TotalDays: int(days), TotalPrice: total, Breakdown: breakdown}, nil
}

func (c *calc) extraItem(e resolvedExtra, days int64) domain.LineItem {
	item := domain.LineItem{
		Kind:        domain.KindExtra,
		Label:       e.option.Name,
		Price:       c.mul(e.option.UnitPrice, int64(e.quantity)),
		Description: fmt.Sprintf("%dx", e.quantity),
	}
	if e.option.Description != "" {
		item.Description += " " + e.option.Description
	}
	if e.option.PerDay {
		item.Price = c.mul(item.Price, days)
		item.Description += fmt.Sprintf(" for %d days", days)
	}
	return item
}

// FormatMoney renders a whole-dollar amount with thousands separators,
// e.g. 12500 as "$12,500".
func FormatMoney(amount int64) string {
	return newPrinter().Sprintf("$%d", amount)
}

// newPrinter returns an English printer. Printers are cheap and created per
// call so no state is shared between goroutines.
func newPrinter() *message.Printer {
	return message.NewPrinter(language.English)
}

func plural(noun string, n int) string {
	if n > 1 {
		return noun + "s"
	}
	return noun
}
