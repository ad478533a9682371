package recipe

import (
	"context"

	"github.com/shopspring/decimal"

	"bakehouse/internal/core/id"
	"bakehouse/internal/domain/catalog/stockitem"
	"bakehouse/internal/domain/scope"
)

// brandPriceSource adapts the brand-price repository to PriceSource,
// resolving only active offers through the default scope.
type brandPriceSource struct {
	repo stockitem.BrandPriceRepository
}

// NewBrandPriceSource wraps a brand-price repository as a PriceSource.
func NewBrandPriceSource(repo stockitem.BrandPriceRepository) PriceSource {
	return &brandPriceSource{repo: repo}
}

func (s *brandPriceSource) UnitCosts(ctx context.Context, stockItemID id.ID) ([]decimal.Decimal, error) {
	offers, err := s.repo.FindByStockItem(ctx, scope.Default, stockItemID)
	if err != nil {
		return nil, err
	}
	costs := make([]decimal.Decimal, 0, len(offers))
	for _, offer := range offers {
		costs = append(costs, offer.UnitCost())
	}
	return costs, nil
}
