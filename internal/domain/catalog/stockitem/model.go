// Package stockitem provides the StockItem catalog: raw ingredients tracked
// in inventory (flour, butter, sugar), with per-brand package pricing.
package stockitem

import (
	"context"

	"github.com/shopspring/decimal"

	"bakehouse/internal/core/apperror"
	"bakehouse/internal/core/entity"
	"bakehouse/internal/core/id"
)

// Unit is the measurement unit a stock item is tracked in.
type Unit string

const (
	UnitGram       Unit = "g"
	UnitKilogram   Unit = "kg"
	UnitMilliliter Unit = "ml"
	UnitLiter      Unit = "l"
	UnitPiece      Unit = "pc"
)

// StockItem is one tracked ingredient.
type StockItem struct {
	entity.BaseEntity

	Name string `db:"name" json:"name"`
	Unit Unit   `db:"unit" json:"unit"`

	// MinQuantity triggers low-stock reporting
	MinQuantity decimal.Decimal `db:"min_quantity" json:"minQuantity"`
}

// New creates a StockItem.
func New(name string, unit Unit) *StockItem {
	return &StockItem{
		BaseEntity:  entity.NewBaseEntity(),
		Name:        name,
		Unit:        unit,
		MinQuantity: decimal.Zero,
	}
}

// Validate implements entity.Validatable.
func (s *StockItem) Validate(ctx context.Context) error {
	if s.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if !isValidUnit(s.Unit) {
		return apperror.NewValidation("invalid unit").
			WithDetail("field", "unit").
			WithDetail("value", string(s.Unit))
	}
	if s.MinQuantity.IsNegative() {
		return apperror.NewValidation("min quantity cannot be negative").
			WithDetail("field", "minQuantity")
	}
	return nil
}

func isValidUnit(u Unit) bool {
	switch u {
	case UnitGram, UnitKilogram, UnitMilliliter, UnitLiter, UnitPiece:
		return true
	}
	return false
}

// BrandPrice is the per-brand package offer for a stock item: the pair
// (stock item, brand) is the business key, unique among active rows.
type BrandPrice struct {
	entity.BaseEntity

	StockItemID id.ID `db:"stock_item_id" json:"stockItemId"`

	// BrandID is optional; the database clears it (SET NULL) when the brand
	// row is physically removed.
	BrandID *id.ID `db:"brand_id" json:"brandId,omitempty"`

	// PackageSize is the amount in the stock item's unit per package
	PackageSize decimal.Decimal `db:"package_size" json:"packageSize"`

	// PackagePrice is the purchase price per package
	PackagePrice decimal.Decimal `db:"package_price" json:"packagePrice"`
}

// Validate implements entity.Validatable.
func (p *BrandPrice) Validate(ctx context.Context) error {
	if id.IsNil(p.StockItemID) {
		return apperror.NewValidation("stock item is required").
			WithDetail("field", "stockItemId")
	}
	if !p.PackageSize.IsPositive() {
		return apperror.NewValidation("package size must be positive").
			WithDetail("field", "packageSize")
	}
	if p.PackagePrice.IsNegative() {
		return apperror.NewValidation("package price cannot be negative").
			WithDetail("field", "packagePrice")
	}
	return nil
}

// UnitCost returns the purchase cost of one unit of the stock item under
// this offer.
func (p *BrandPrice) UnitCost() decimal.Decimal {
	if p.PackageSize.IsZero() {
		return decimal.Zero
	}
	return p.PackagePrice.Div(p.PackageSize)
}

// StockMovement records a quantity change for a stock item (purchases,
// production usage, spoilage). Movements reference stock items with RESTRICT
// on hard delete so inventory history is never silently dropped.
type StockMovement struct {
	entity.BaseEntity

	StockItemID id.ID           `db:"stock_item_id" json:"stockItemId"`
	Delta       decimal.Decimal `db:"delta" json:"delta"`
	Reason      string          `db:"reason" json:"reason"`
}

// Validate implements entity.Validatable.
func (m *StockMovement) Validate(ctx context.Context) error {
	if id.IsNil(m.StockItemID) {
		return apperror.NewValidation("stock item is required").
			WithDetail("field", "stockItemId")
	}
	if m.Delta.IsZero() {
		return apperror.NewValidation("delta cannot be zero").
			WithDetail("field", "delta")
	}
	if m.Reason == "" {
		return apperror.NewValidation("reason is required").
			WithDetail("field", "reason")
	}
	return nil
}
