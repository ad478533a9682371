package orders

import (
	"context"
	"time"

	"bakehouse/internal/core/id"
	"bakehouse/internal/domain"
	"bakehouse/internal/domain/scope"
)

// OrderRepository defines the interface for Order persistence.
type OrderRepository interface {
	domain.Repository[*Order]

	// FindByNumber retrieves an order by order number under the given scope.
	FindByNumber(ctx context.Context, sc scope.Scope, number string) (*Order, error)

	// ExistsActiveByNumber reports whether an active order with the number
	// exists, excluding the given ID.
	ExistsActiveByNumber(ctx context.Context, number string, excludeID id.ID) (bool, error)
}

// ItemRepository defines the interface for OrderItem persistence.
type ItemRepository interface {
	domain.Repository[*OrderItem]

	// FindByOrder retrieves items of an order under the given scope.
	FindByOrder(ctx context.Context, sc scope.Scope, orderID id.ID) ([]*OrderItem, error)

	// SoftDestroyByOrder soft-destroys all ACTIVE items of the order and
	// returns the IDs it touched. Used by the cascade.
	SoftDestroyByOrder(ctx context.Context, orderID id.ID, at time.Time) ([]id.ID, error)
}

// PaymentRepository defines the interface for Payment persistence.
type PaymentRepository interface {
	domain.Repository[*Payment]

	// FindByOrder retrieves payments of an order under the given scope.
	// The default scope yields at most one row (one active payment per order).
	FindByOrder(ctx context.Context, sc scope.Scope, orderID id.ID) ([]*Payment, error)

	// SoftDestroyByOrder soft-destroys the ACTIVE payment of the order, if
	// any, and returns the IDs it touched. Used by the cascade.
	SoftDestroyByOrder(ctx context.Context, orderID id.ID, at time.Time) ([]id.ID, error)

	// ExistsActiveByOrder reports whether the order already has an active
	// payment, excluding the given ID.
	ExistsActiveByOrder(ctx context.Context, orderID id.ID, excludeID id.ID) (bool, error)
}
