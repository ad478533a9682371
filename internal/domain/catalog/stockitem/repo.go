package stockitem

import (
	"context"

	"bakehouse/internal/core/id"
	"bakehouse/internal/domain"
	"bakehouse/internal/domain/scope"
)

// Repository defines the interface for StockItem persistence.
type Repository interface {
	domain.Repository[*StockItem]
}

// BrandPriceRepository defines the interface for per-brand price persistence.
type BrandPriceRepository interface {
	domain.Repository[*BrandPrice]

	// FindByStockItem retrieves all brand prices for a stock item under the
	// given scope.
	FindByStockItem(ctx context.Context, sc scope.Scope, stockItemID id.ID) ([]*BrandPrice, error)

	// ExistsActivePair reports whether an active price row for the
	// (stock item, brand) pair exists, excluding the given ID.
	ExistsActivePair(ctx context.Context, stockItemID id.ID, brandID *id.ID, excludeID id.ID) (bool, error)
}

// MovementRepository defines the interface for stock movement persistence.
type MovementRepository interface {
	domain.Repository[*StockMovement]

	// FindByStockItem retrieves movements for a stock item under the scope.
	FindByStockItem(ctx context.Context, sc scope.Scope, stockItemID id.ID) ([]*StockMovement, error)
}
