package catalog

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/tidwall/gjson"
	"golang.org/x/text/currency"

	"github.com/pkordes/hunt-packages/backend/internal/domain"
)

// animalRecord is one entry of the document's "animals" object. Its "hunts"
// object is walked separately with gjson so declaration order survives.
type animalRecord struct {
	Name               string        `json:"name"`
	Species            string        `json:"species"`
	Image              string        `json:"image"`
	BaseIncluded       []string      `json:"baseIncluded"`
	BaseNotIncluded    []string      `json:"baseNotIncluded"`
	BaseYouNeedToBring []string      `json:"baseYouNeedToBring"`
	Extras             []extraRecord `json:"extras"`
}

type extraRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	PerDay      bool   `json:"perDay"`
}

type huntRecord struct {
	ID                    string `json:"id"`
	Name                  string `json:"name"`
	BasePrice             int64  `json:"basePrice"`
	BaseDays              int    `json:"baseDays"`
	Location              string `json:"location"`
	BestSeason            string `json:"bestSeason"`
	Difficulty            string `json:"difficulty"`
	Description           string `json:"description"`
	Image                 string `json:"image"`
	AdditionalAnimalPrice int64  `json:"additionalAnimalPrice"`
	AdditionalAnimalDays  int    `json:"additionalAnimalDays"`
}

type dayRatesRecord struct {
	Solo             *int64 `json:"solo"`
	AdditionalHunter *int64 `json:"additionalHunter"`
	NonHunter        *int64 `json:"nonHunter"`
}

type bookingRecord struct {
	Deposit     *int64 `json:"deposit"`
	Currency    string `json:"currency"`
	DepositNote string `json:"depositNote"`
}

// Parse decodes a catalog document. Every failure wraps
// domain.ErrCatalogUnavailable.
func Parse(doc []byte) (*Catalog, error) {
	if !gjson.ValidBytes(doc) {
		return nil, parseErr("document is not valid JSON")
	}
	root := gjson.ParseBytes(doc)

	animals := root.Get("animals")
	if !animals.IsObject() {
		return nil, parseErr(`"animals" object is missing`)
	}

	c := &Catalog{byID: make(map[string]int)}
	var err error
	animals.ForEach(func(key, value gjson.Result) bool {
		err = c.addAnimal(key.String(), value)
		return err == nil
	})
	if err != nil {
		return nil, err
	}
	if len(c.offerings) == 0 {
		return nil, parseErr("catalog has no hunts")
	}

	if c.dayRates, c.dayRatesDefaulted, err = parseDayRates(root.Get("dayRates")); err != nil {
		return nil, err
	}
	if c.booking, err = parseBooking(root.Get("booking")); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) addAnimal(key string, value gjson.Result) error {
	var a animalRecord
	if err := json.Unmarshal([]byte(value.Raw), &a); err != nil {
		return parseErr("animal %q: %v", key, err)
	}
	species := a.Species
	if species == "" {
		species = a.Name
	}
	if species == "" {
		return parseErr("animal %q has no species", key)
	}

	extras := make([]domain.ExtraOption, 0, len(a.Extras))
	for _, e := range a.Extras {
		if e.ID == "" {
			return parseErr("animal %q: extra without id", key)
		}
		if e.Price < 0 {
			return parseErr("animal %q: extra %q has a negative price", key, e.ID)
		}
		extras = append(extras, domain.ExtraOption{
			ID:          e.ID,
			Name:        e.Name,
			Description: e.Description,
			UnitPrice:   e.Price,
			PerDay:      e.PerDay,
		})
	}

	var err error
	value.Get("hunts").ForEach(func(huntKey, hunt gjson.Result) bool {
		var h huntRecord
		if uerr := json.Unmarshal([]byte(hunt.Raw), &h); uerr != nil {
			err = parseErr("hunt %q: %v", huntKey.String(), uerr)
			return false
		}
		err = c.addOffering(a, species, extras, h)
		return err == nil
	})
	if err != nil {
		return err
	}

	if !slices.Contains(c.species, species) {
		c.species = append(c.species, species)
	}
	return nil
}

func (c *Catalog) addOffering(a animalRecord, species string, extras []domain.ExtraOption, h huntRecord) error {
	switch {
	case h.ID == "":
		return parseErr("%s hunt %q has no id", species, h.Name)
	case h.BasePrice < 0 || h.AdditionalAnimalPrice < 0:
		return parseErr("hunt %q has a negative price", h.ID)
	case h.BaseDays < 0 || h.AdditionalAnimalDays < 0:
		return parseErr("hunt %q has a negative day count", h.ID)
	}
	if _, dup := c.byID[h.ID]; dup {
		return parseErr("duplicate hunt id %q", h.ID)
	}

	image := h.Image
	if image == "" {
		image = a.Image
	}
	c.byID[h.ID] = len(c.offerings)
	c.offerings = append(c.offerings, domain.HuntOffering{
		ID:                    h.ID,
		Name:                  h.Name,
		SpeciesName:           species,
		BasePrice:             h.BasePrice,
		BaseDurationDays:      h.BaseDays,
		AdditionalAnimalPrice: h.AdditionalAnimalPrice,
		AdditionalAnimalDays:  h.AdditionalAnimalDays,
		Location:              h.Location,
		BestSeason:            h.BestSeason,
		Difficulty:            h.Difficulty,
		Description:           h.Description,
		Image:                 image,
		IncludedItems:         slices.Clone(a.BaseIncluded),
		ExcludedItems:         slices.Clone(a.BaseNotIncluded),
		BringItems:            slices.Clone(a.BaseYouNeedToBring),
		Extras:                slices.Clone(extras),
	})
	return nil
}

// parseDayRates fills missing rates from domain.DefaultDayRates and reports
// whether it had to.
func parseDayRates(v gjson.Result) (domain.DayRateSchedule, bool, error) {
	if !v.Exists() {
		return domain.DefaultDayRates, true, nil
	}
	var r dayRatesRecord
	if err := json.Unmarshal([]byte(v.Raw), &r); err != nil {
		return domain.DayRateSchedule{}, false, parseErr("dayRates: %v", err)
	}

	rates := domain.DefaultDayRates
	defaulted := false
	for _, f := range []struct {
		src *int64
		dst *int64
	}{
		{r.Solo, &rates.Solo},
		{r.AdditionalHunter, &rates.AdditionalHunter},
		{r.NonHunter, &rates.NonHunter},
	} {
		if f.src == nil {
			defaulted = true
			continue
		}
		if *f.src < 0 {
			return domain.DayRateSchedule{}, false, parseErr("dayRates: negative rate")
		}
		*f.dst = *f.src
	}
	return rates, defaulted, nil
}

func parseBooking(v gjson.Result) (domain.BookingInfo, error) {
	b := domain.DefaultBooking
	if !v.Exists() {
		return b, nil
	}
	var r bookingRecord
	if err := json.Unmarshal([]byte(v.Raw), &r); err != nil {
		return domain.BookingInfo{}, parseErr("booking: %v", err)
	}
	if r.Deposit != nil {
		if *r.Deposit < 0 {
			return domain.BookingInfo{}, parseErr("booking: negative deposit")
		}
		b.Deposit = *r.Deposit
	}
	if r.Currency != "" {
		unit, err := currency.ParseISO(r.Currency)
		if err != nil {
			return domain.BookingInfo{}, parseErr("booking: currency %q: %v", r.Currency, err)
		}
		b.Currency = unit.String()
	}
	if r.DepositNote != "" {
		b.DepositNote = r.DepositNote
	}
	return b, nil
}

func parseErr(format string, args ...any) error {
	return fmt.Errorf("catalog.Parse: %w: %s", domain.ErrCatalogUnavailable, fmt.Sprintf(format, args...))
}
