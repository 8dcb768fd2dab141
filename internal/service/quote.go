package service

import (
	"context"
	"fmt"

	"github.com/pkordes/hunt-packages/backend/internal/catalog"
	"github.com/pkordes/hunt-packages/backend/internal/domain"
	"github.com/pkordes/hunt-packages/backend/internal/pricing"
)

// QuoteService prices selections that the caller holds itself.
type QuoteService struct {
	catalog CatalogProvider
}

// NewQuoteService constructs a QuoteService backed by the provided catalog.
func NewQuoteService(c CatalogProvider) *QuoteService {
	return &QuoteService{catalog: c}
}

// Quote prices sel.
func (s *QuoteService) Quote(ctx context.Context, sel domain.PackageSelection) (domain.Quote, error) {
	cat, err := s.catalog.Load(ctx)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("service.QuoteService.Quote: %w", err)
	}
	q, err := pricing.Compute(cat, sel)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("service.QuoteService.Quote: %w", err)
	}
	return q, nil
}

// Summary builds the contact handoff for sel.
func (s *QuoteService) Summary(ctx context.Context, sel domain.PackageSelection) (domain.SummaryHandoff, error) {
	cat, err := s.catalog.Load(ctx)
	if err != nil {
		return domain.SummaryHandoff{}, fmt.Errorf("service.QuoteService.Summary: %w", err)
	}
	h, err := summaryHandoff(cat, sel)
	if err != nil {
		return domain.SummaryHandoff{}, fmt.Errorf("service.QuoteService.Summary: %w", err)
	}
	return h, nil
}

func summaryHandoff(cat *catalog.Catalog, sel domain.PackageSelection) (domain.SummaryHandoff, error) {
	sum, err := pricing.Summarize(cat, sel)
	if err != nil {
		return domain.SummaryHandoff{}, err
	}
	encoded, err := pricing.EncodeSummary(sum)
	if err != nil {
		return domain.SummaryHandoff{}, err
	}
	return domain.SummaryHandoff{Summary: sum, Text: pricing.SummaryText(sum), Encoded: encoded}, nil
}
