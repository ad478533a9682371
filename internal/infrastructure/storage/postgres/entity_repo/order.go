package entity_repo

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"

	"bakehouse/internal/core/id"
	"bakehouse/internal/domain/orders"
	"bakehouse/internal/domain/scope"
	"bakehouse/internal/infrastructure/storage/postgres"
)

const (
	orderTable     = "orders"
	orderItemTable = "order_items"
	paymentTable   = "payments"
)

var (
	_ orders.OrderRepository   = (*OrderRepo)(nil)
	_ orders.ItemRepository    = (*OrderItemRepo)(nil)
	_ orders.PaymentRepository = (*PaymentRepo)(nil)
)

// OrderRepo implements orders.OrderRepository.
type OrderRepo struct {
	*BaseRepo[*orders.Order]
}

// NewOrderRepo creates a new order repository.
func NewOrderRepo(txm *postgres.TxManager) *OrderRepo {
	return &OrderRepo{
		BaseRepo: NewBaseRepo(txm, BaseRepoConfig[*orders.Order]{
			TableName:      orderTable,
			SelectCols:     postgres.ExtractDBColumns[orders.Order](),
			SearchCols:     []string{"order_number", "customer_name"},
			DefaultOrderBy: "created_at DESC",
			New:            func() *orders.Order { return &orders.Order{} },
		}),
	}
}

// FindByNumber retrieves an order by order number under the given scope.
func (r *OrderRepo) FindByNumber(ctx context.Context, sc scope.Scope, number string) (*orders.Order, error) {
	return r.FindOne(ctx, sc, squirrel.Eq{"order_number": number})
}

// ExistsActiveByNumber reports whether an active order with the number
// exists, excluding the given ID.
func (r *OrderRepo) ExistsActiveByNumber(ctx context.Context, number string, excludeID id.ID) (bool, error) {
	return r.ExistsActive(ctx, squirrel.Eq{"order_number": number}, excludeID)
}

// OrderItemRepo implements orders.ItemRepository.
type OrderItemRepo struct {
	*BaseRepo[*orders.OrderItem]
}

// NewOrderItemRepo creates a new order item repository.
func NewOrderItemRepo(txm *postgres.TxManager) *OrderItemRepo {
	return &OrderItemRepo{
		BaseRepo: NewBaseRepo(txm, BaseRepoConfig[*orders.OrderItem]{
			TableName:  orderItemTable,
			SelectCols: postgres.ExtractDBColumns[orders.OrderItem](),
			New:        func() *orders.OrderItem { return &orders.OrderItem{} },
		}),
	}
}

// FindByOrder retrieves items of an order under the given scope.
func (r *OrderItemRepo) FindByOrder(ctx context.Context, sc scope.Scope, orderID id.ID) ([]*orders.OrderItem, error) {
	return r.SelectWhere(ctx, sc, squirrel.Eq{"order_id": orderID})
}

// SoftDestroyByOrder soft-destroys all active items of the order with one
// UPDATE and returns the touched IDs. Rows deleted before the cascade keep
// their own deleted_at.
func (r *OrderItemRepo) SoftDestroyByOrder(ctx context.Context, orderID id.ID, at time.Time) ([]id.ID, error) {
	return r.SoftDestroyWhere(ctx, squirrel.Eq{"order_id": orderID}, at)
}

// PaymentRepo implements orders.PaymentRepository.
type PaymentRepo struct {
	*BaseRepo[*orders.Payment]
}

// NewPaymentRepo creates a new payment repository.
func NewPaymentRepo(txm *postgres.TxManager) *PaymentRepo {
	return &PaymentRepo{
		BaseRepo: NewBaseRepo(txm, BaseRepoConfig[*orders.Payment]{
			TableName:  paymentTable,
			SelectCols: postgres.ExtractDBColumns[orders.Payment](),
			New:        func() *orders.Payment { return &orders.Payment{} },
		}),
	}
}

// FindByOrder retrieves payments of an order under the given scope.
func (r *PaymentRepo) FindByOrder(ctx context.Context, sc scope.Scope, orderID id.ID) ([]*orders.Payment, error) {
	return r.SelectWhere(ctx, sc, squirrel.Eq{"order_id": orderID})
}

// SoftDestroyByOrder soft-destroys the active payment of the order, if any.
func (r *PaymentRepo) SoftDestroyByOrder(ctx context.Context, orderID id.ID, at time.Time) ([]id.ID, error) {
	return r.SoftDestroyWhere(ctx, squirrel.Eq{"order_id": orderID}, at)
}

// ExistsActiveByOrder reports whether the order already has an active
// payment, excluding the given ID.
func (r *PaymentRepo) ExistsActiveByOrder(ctx context.Context, orderID id.ID, excludeID id.ID) (bool, error) {
	return r.ExistsActive(ctx, squirrel.Eq{"order_id": orderID}, excludeID)
}
