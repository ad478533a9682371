// Package orders provides the Order aggregate: orders, their line items and
// the 1:1 payment, plus the soft-delete lifecycle that ties them together.
//
// Orders are the only entity with configured cascade dependents: destroying
// an order soft-destroys its items and payment in the same transaction.
// Destroying an item or the payment independently never touches the order.
package orders

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"bakehouse/internal/core/apperror"
	"bakehouse/internal/core/entity"
	"bakehouse/internal/core/id"
)

// Status is the order fulfilment state.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusConfirmed Status = "CONFIRMED"
	StatusReady     Status = "READY"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

// Order is a customer order.
type Order struct {
	entity.BaseEntity

	// OrderNumber is the business key, unique among active orders. Two
	// soft-deleted orders may share a number; at most one active one can.
	OrderNumber string `db:"order_number" json:"orderNumber"`

	Status Status `db:"status" json:"status"`

	CustomerName string `db:"customer_name" json:"customerName"`

	// ScheduledFor is the requested pickup/delivery time
	ScheduledFor *time.Time `db:"scheduled_for" json:"scheduledFor,omitempty"`

	Notes *string `db:"notes" json:"notes,omitempty"`
}

// NewOrder creates a draft order.
func NewOrder(customerName string) *Order {
	return &Order{
		BaseEntity:   entity.NewBaseEntity(),
		Status:       StatusDraft,
		CustomerName: customerName,
	}
}

// Validate implements entity.Validatable.
func (o *Order) Validate(ctx context.Context) error {
	if o.CustomerName == "" {
		return apperror.NewValidation("customer name is required").
			WithDetail("field", "customerName")
	}
	if !isValidStatus(o.Status) {
		return apperror.NewValidation("invalid order status").
			WithDetail("field", "status").
			WithDetail("value", string(o.Status))
	}
	return nil
}

func isValidStatus(s Status) bool {
	switch s {
	case StatusDraft, StatusConfirmed, StatusReady, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// OrderItem is one product line on an order. Items reference products with
// RESTRICT on hard delete so order history outlives catalog cleanup.
type OrderItem struct {
	entity.BaseEntity

	OrderID   id.ID `db:"order_id" json:"orderId"`
	ProductID id.ID `db:"product_id" json:"productId"`

	Quantity int `db:"quantity" json:"quantity"`

	// UnitPrice is the selling price snapshot at ordering time
	UnitPrice decimal.Decimal `db:"unit_price" json:"unitPrice"`
}

// Validate implements entity.Validatable.
func (i *OrderItem) Validate(ctx context.Context) error {
	if id.IsNil(i.OrderID) {
		return apperror.NewValidation("order is required").
			WithDetail("field", "orderId")
	}
	if id.IsNil(i.ProductID) {
		return apperror.NewValidation("product is required").
			WithDetail("field", "productId")
	}
	if i.Quantity <= 0 {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("field", "quantity")
	}
	if i.UnitPrice.IsNegative() {
		return apperror.NewValidation("unit price cannot be negative").
			WithDetail("field", "unitPrice")
	}
	return nil
}

// Total returns the line total.
func (i *OrderItem) Total() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// PaymentMethod is how an order was paid.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
)

// Payment is the 1:1 payment record of an order. One active payment per
// order; soft-deleted payments may pile up under the same order.
type Payment struct {
	entity.BaseEntity

	OrderID id.ID `db:"order_id" json:"orderId"`

	Amount decimal.Decimal `db:"amount" json:"amount"`

	Method PaymentMethod `db:"method" json:"method"`

	PaidAt time.Time `db:"paid_at" json:"paidAt"`
}

// Validate implements entity.Validatable.
func (p *Payment) Validate(ctx context.Context) error {
	if id.IsNil(p.OrderID) {
		return apperror.NewValidation("order is required").
			WithDetail("field", "orderId")
	}
	if p.Amount.IsNegative() {
		return apperror.NewValidation("amount cannot be negative").
			WithDetail("field", "amount")
	}
	switch p.Method {
	case PaymentCash, PaymentCard, PaymentTransfer:
	default:
		return apperror.NewValidation("invalid payment method").
			WithDetail("field", "method").
			WithDetail("value", string(p.Method))
	}
	return nil
}
