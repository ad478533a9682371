package product

import (
	"context"

	"bakehouse/internal/core/id"
	"bakehouse/internal/domain"
	"bakehouse/internal/domain/scope"
)

// Repository defines the interface for Product persistence.
type Repository interface {
	domain.Repository[*Product]

	// FindBySKU retrieves a product by SKU under the given scope.
	FindBySKU(ctx context.Context, sc scope.Scope, sku string) (*Product, error)

	// ExistsActiveBySKU reports whether an active (non-deleted) product with
	// the SKU exists, excluding the given ID. Used for the
	// unique-among-active check inside the create/update transaction.
	ExistsActiveBySKU(ctx context.Context, sku string, excludeID id.ID) (bool, error)
}
