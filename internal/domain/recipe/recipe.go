// Package recipe provides product recipes (product → stock item quantities)
// and the unit-cost roll-up over them.
package recipe

import (
	"context"

	"github.com/shopspring/decimal"

	"bakehouse/internal/core/apperror"
	"bakehouse/internal/core/entity"
	"bakehouse/internal/core/id"
	"bakehouse/internal/domain"
	"bakehouse/internal/domain/scope"
)

// Line links a product to one stock item it is made from. Lines cascade on
// the product's hard delete at the database level (ON DELETE CASCADE); the
// soft-delete graph does not propagate through them.
type Line struct {
	entity.BaseEntity

	ProductID   id.ID `db:"product_id" json:"productId"`
	StockItemID id.ID `db:"stock_item_id" json:"stockItemId"`

	// Quantity of the stock item, in the stock item's unit, per product unit
	Quantity decimal.Decimal `db:"quantity" json:"quantity"`
}

// Validate implements entity.Validatable.
func (l *Line) Validate(ctx context.Context) error {
	if id.IsNil(l.ProductID) {
		return apperror.NewValidation("product is required").
			WithDetail("field", "productId")
	}
	if id.IsNil(l.StockItemID) {
		return apperror.NewValidation("stock item is required").
			WithDetail("field", "stockItemId")
	}
	if !l.Quantity.IsPositive() {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("field", "quantity")
	}
	return nil
}

// Repository defines the interface for recipe line persistence.
type Repository interface {
	domain.Repository[*Line]

	// FindByProduct retrieves recipe lines of a product under the scope.
	FindByProduct(ctx context.Context, sc scope.Scope, productID id.ID) ([]*Line, error)
}

// PriceSource yields the active per-brand offers for a stock item.
// NewBrandPriceSource adapts the brand-price repository.
type PriceSource interface {
	UnitCosts(ctx context.Context, stockItemID id.ID) ([]decimal.Decimal, error)
}

// CostService computes product unit cost from recipe lines and brand prices.
// Pure arithmetic over already-fetched rows; only default-scope (active) rows
// participate, so deleting a brand price immediately changes the roll-up.
type CostService struct {
	lines  Repository
	prices PriceSource
}

// NewCostService creates a cost service.
func NewCostService(lines Repository, prices PriceSource) *CostService {
	return &CostService{lines: lines, prices: prices}
}

// LineCost is the costed view of one recipe line.
type LineCost struct {
	StockItemID id.ID           `json:"stockItemId"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unitCost"`
	Total       decimal.Decimal `json:"total"`
}

// Costing is the unit-cost breakdown for a product.
type Costing struct {
	ProductID id.ID           `json:"productId"`
	Lines     []LineCost      `json:"lines"`
	UnitCost  decimal.Decimal `json:"unitCost"`
}

// UnitCost rolls up the cost of producing one unit of the product: for each
// recipe line, the cheapest active brand offer for its stock item times the
// line quantity. A stock item with no active offer fails the roll-up.
func (s *CostService) UnitCost(ctx context.Context, productID id.ID) (Costing, error) {
	costing := Costing{ProductID: productID, UnitCost: decimal.Zero}

	lines, err := s.lines.FindByProduct(ctx, scope.Default, productID)
	if err != nil {
		return costing, err
	}

	for _, line := range lines {
		costs, err := s.prices.UnitCosts(ctx, line.StockItemID)
		if err != nil {
			return costing, err
		}
		if len(costs) == 0 {
			return costing, apperror.NewBusinessRule(apperror.CodeBusinessRule,
				"stock item has no active brand price").
				WithDetail("stockItemId", line.StockItemID.String())
		}

		cheapest := costs[0]
		for _, c := range costs[1:] {
			if c.LessThan(cheapest) {
				cheapest = c
			}
		}

		total := cheapest.Mul(line.Quantity)
		costing.Lines = append(costing.Lines, LineCost{
			StockItemID: line.StockItemID,
			Quantity:    line.Quantity,
			UnitCost:    cheapest,
			Total:       total,
		})
		costing.UnitCost = costing.UnitCost.Add(total)
	}

	return costing, nil
}
