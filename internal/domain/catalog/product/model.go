// Package product provides the Product catalog: the bakery's sellable goods.
package product

import (
	"context"

	"github.com/shopspring/decimal"

	"bakehouse/internal/core/apperror"
	"bakehouse/internal/core/entity"
)

// Category groups products on the storefront.
type Category string

const (
	CategoryBread  Category = "bread"
	CategoryPastry Category = "pastry"
	CategoryCake   Category = "cake"
	CategoryCookie Category = "cookie"
	CategoryDrink  Category = "drink"
	CategoryOther  Category = "other"
)

// Product is a sellable bakery item.
//
// Products are referenced by order items (RESTRICT on hard delete, so
// transactional history survives catalog cleanup) and by recipe lines
// (CASCADE on hard delete). Soft-deleting a product never touches orders or
// order items that reference it.
type Product struct {
	entity.BaseEntity

	// SKU is the business key, unique among active (non-deleted) products
	SKU string `db:"sku" json:"sku"`

	// Name is the display name
	Name string `db:"name" json:"name"`

	Category Category `db:"category" json:"category"`

	// UnitPrice is the selling price per unit
	UnitPrice decimal.Decimal `db:"unit_price" json:"unitPrice"`

	Description *string `db:"description" json:"description,omitempty"`
}

// New creates a Product with required fields.
func New(sku, name string, category Category, unitPrice decimal.Decimal) *Product {
	return &Product{
		BaseEntity: entity.NewBaseEntity(),
		SKU:        sku,
		Name:       name,
		Category:   category,
		UnitPrice:  unitPrice,
	}
}

// Validate implements entity.Validatable.
func (p *Product) Validate(ctx context.Context) error {
	if p.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if p.SKU == "" {
		return apperror.NewValidation("sku is required").
			WithDetail("field", "sku")
	}
	if !isValidCategory(p.Category) {
		return apperror.NewValidation("invalid category").
			WithDetail("field", "category").
			WithDetail("value", string(p.Category))
	}
	if p.UnitPrice.IsNegative() {
		return apperror.NewValidation("unit price cannot be negative").
			WithDetail("field", "unitPrice")
	}
	return nil
}

func isValidCategory(c Category) bool {
	switch c {
	case CategoryBread, CategoryPastry, CategoryCake, CategoryCookie, CategoryDrink, CategoryOther:
		return true
	}
	return false
}
