package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"bakehouse/internal/core/entity"
	"bakehouse/internal/core/id"
	"bakehouse/internal/domain/orders"
)

// --- Order DTOs ---

// OrderResponse contains order fields.
type OrderResponse struct {
	BaseResponse
	OrderNumber  string     `json:"orderNumber"`
	Status       string     `json:"status"`
	CustomerName string     `json:"customerName"`
	ScheduledFor *time.Time `json:"scheduledFor,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
}

// FromOrder creates OrderResponse from orders.Order.
func FromOrder(o *orders.Order) OrderResponse {
	return OrderResponse{
		BaseResponse: FromBase(o.BaseEntity),
		OrderNumber:  o.OrderNumber,
		Status:       string(o.Status),
		CustomerName: o.CustomerName,
		ScheduledFor: o.ScheduledFor,
		Notes:        o.Notes,
	}
}

// CreateOrderRequest for creating orders with their initial line items.
// OrderNumber is optional; when absent the server assigns the next one.
type CreateOrderRequest struct {
	OrderNumber  string                   `json:"orderNumber"`
	CustomerName string                   `json:"customerName" binding:"required"`
	ScheduledFor *time.Time               `json:"scheduledFor"`
	Notes        *string                  `json:"notes"`
	Items        []CreateOrderItemRequest `json:"items"`
}

// ToEntity maps the request to a new draft order plus its items.
func (r CreateOrderRequest) ToEntity() (*orders.Order, []*orders.OrderItem, error) {
	o := orders.NewOrder(r.CustomerName)
	o.OrderNumber = r.OrderNumber
	o.ScheduledFor = r.ScheduledFor
	o.Notes = r.Notes

	items := make([]*orders.OrderItem, 0, len(r.Items))
	for _, req := range r.Items {
		item, err := req.toEntity(o.ID)
		if err != nil {
			return nil, nil, err
		}
		items = append(items, item)
	}
	return o, items, nil
}

// UpdateOrderRequest for updating orders.
type UpdateOrderRequest struct {
	Status       *string    `json:"status"`
	CustomerName *string    `json:"customerName"`
	ScheduledFor *time.Time `json:"scheduledFor"`
	Notes        *string    `json:"notes"`
	Version      int        `json:"version" binding:"required,min=1"`
}

// ApplyTo maps set fields onto an existing order. The order number is
// immutable after creation.
func (r UpdateOrderRequest) ApplyTo(o *orders.Order) {
	if r.Status != nil {
		o.Status = orders.Status(*r.Status)
	}
	if r.CustomerName != nil {
		o.CustomerName = *r.CustomerName
	}
	if r.ScheduledFor != nil {
		o.ScheduledFor = r.ScheduledFor
	}
	if r.Notes != nil {
		o.Notes = r.Notes
	}
	o.Version = r.Version
}

// --- OrderItem DTOs ---

// OrderItemResponse contains order item fields.
type OrderItemResponse struct {
	BaseResponse
	OrderID   string          `json:"orderId"`
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Total     decimal.Decimal `json:"total"`
}

// FromOrderItem creates OrderItemResponse from orders.OrderItem.
func FromOrderItem(i *orders.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		BaseResponse: FromBase(i.BaseEntity),
		OrderID:      i.OrderID.String(),
		ProductID:    i.ProductID.String(),
		Quantity:     i.Quantity,
		UnitPrice:    i.UnitPrice,
		Total:        i.Total(),
	}
}

// CreateOrderItemRequest for adding a line item. The order comes from the
// URL (or the surrounding create-order request), not the body.
type CreateOrderItemRequest struct {
	ProductID string          `json:"productId" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// ToEntity maps the request to a new item of the given order.
func (r CreateOrderItemRequest) ToEntity(orderID id.ID) (*orders.OrderItem, error) {
	return r.toEntity(orderID)
}

func (r CreateOrderItemRequest) toEntity(orderID id.ID) (*orders.OrderItem, error) {
	productID, err := id.Parse(r.ProductID)
	if err != nil {
		return nil, err
	}
	return &orders.OrderItem{
		BaseEntity: entity.NewBaseEntity(),
		OrderID:    orderID,
		ProductID:  productID,
		Quantity:   r.Quantity,
		UnitPrice:  r.UnitPrice,
	}, nil
}

// --- Payment DTOs ---

// PaymentResponse contains payment fields.
type PaymentResponse struct {
	BaseResponse
	OrderID string          `json:"orderId"`
	Amount  decimal.Decimal `json:"amount"`
	Method  string          `json:"method"`
	PaidAt  time.Time       `json:"paidAt"`
}

// FromPayment creates PaymentResponse from orders.Payment.
func FromPayment(p *orders.Payment) PaymentResponse {
	return PaymentResponse{
		BaseResponse: FromBase(p.BaseEntity),
		OrderID:      p.OrderID.String(),
		Amount:       p.Amount,
		Method:       string(p.Method),
		PaidAt:       p.PaidAt,
	}
}

// RecordPaymentRequest for recording an order's payment.
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Method string          `json:"method" binding:"required"`
	PaidAt *time.Time      `json:"paidAt"`
}

// ToEntity maps the request to a new payment of the given order.
// PaidAt defaults to now.
func (r RecordPaymentRequest) ToEntity(orderID id.ID) *orders.Payment {
	paidAt := time.Now().UTC()
	if r.PaidAt != nil {
		paidAt = *r.PaidAt
	}
	return &orders.Payment{
		BaseEntity: entity.NewBaseEntity(),
		OrderID:    orderID,
		Amount:     r.Amount,
		Method:     orders.PaymentMethod(r.Method),
		PaidAt:     paidAt,
	}
}

// --- Aggregate views ---

// OrderTotalResponse is the active-items total of an order.
type OrderTotalResponse struct {
	OrderID string          `json:"orderId"`
	Total   decimal.Decimal `json:"total"`
}

// RestoreWithItemsResponse reports a parent restore together with the
// number of dependents revived by it.
type RestoreWithItemsResponse struct {
	Order              OrderResponse `json:"order"`
	RestoredDependents int           `json:"restoredDependents"`
}
