package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bakehouse/internal/core/apperror"
	"bakehouse/internal/core/id"
	"bakehouse/internal/domain/orders"
	"bakehouse/internal/infrastructure/http/v1/dto"
	"bakehouse/internal/observability"
)

// OrderHandler serves the order aggregate: orders, their line items and
// payment. Deleting an order cascades to items and payment; restoring one
// never cascades unless the caller asks for it via RestoreWithItems.
type OrderHandler struct {
	*LifecycleHandler[*orders.Order, dto.CreateOrderRequest, dto.UpdateOrderRequest]
	service *orders.Service
}

// NewOrderHandler creates the order handler.
func NewOrderHandler(base *BaseHandler, service *orders.Service) *OrderHandler {
	lifecycle := NewLifecycleHandler(base, LifecycleHandlerConfig[
		*orders.Order,
		dto.CreateOrderRequest,
		dto.UpdateOrderRequest,
	]{
		Service:    service.LifecycleService,
		EntityName: "order",
		MapCreateDTO: func(req dto.CreateOrderRequest) (*orders.Order, error) {
			o, _, err := req.ToEntity()
			return o, err
		},
		MapUpdateDTO: func(req dto.UpdateOrderRequest, existing *orders.Order) *orders.Order {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(o *orders.Order) any {
			return dto.FromOrder(o)
		},
	})

	return &OrderHandler{LifecycleHandler: lifecycle, service: service}
}

// Create handles POST /orders - the order plus its initial items in one
// transaction, with number generation and the active-number uniqueness
// check.
func (h *OrderHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	o, items, err := req.ToEntity()
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid productId format"))
		return
	}

	if err := h.service.CreateOrder(ctx, o, items); err != nil {
		h.Error(c, err)
		return
	}

	observability.OrdersCreatedTotal.Inc()
	observability.EntitiesCreatedTotal.WithLabelValues("order").Inc()
	c.JSON(http.StatusCreated, dto.FromOrder(o))
}

// GetByNumber handles GET /orders/by-number/:number.
func (h *OrderHandler) GetByNumber(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := h.ParseScope(c)
	if !ok {
		return
	}

	o, err := h.service.GetByNumber(ctx, sc, c.Param("number"))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromOrder(o))
}

// RestoreWithItems handles POST /orders/:id/restore-with-items - restore the
// order together with the dependents removed by the same cascade. Dependents
// deleted on their own before the order keep their deleted state.
func (h *OrderHandler) RestoreWithItems(c *gin.Context) {
	ctx := c.Request.Context()

	orderID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	restored, revived, err := h.service.RestoreWithDependents(ctx, orderID)
	if err != nil {
		h.Error(c, err)
		return
	}
	if restored == nil {
		h.NotFound(c, "order", orderID.String())
		return
	}

	observability.EntitiesRestoredTotal.WithLabelValues("order").Inc()
	observability.CascadeDependentsRestoredTotal.Add(float64(revived))
	c.JSON(http.StatusOK, dto.RestoreWithItemsResponse{
		Order:              dto.FromOrder(restored),
		RestoredDependents: revived,
	})
}

// Total handles GET /orders/:id/total - the sum over active line items.
func (h *OrderHandler) Total(c *gin.Context) {
	ctx := c.Request.Context()

	orderID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	total, err := h.service.Total(ctx, orderID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OrderTotalResponse{
		OrderID: orderID.String(),
		Total:   total,
	})
}

// ListItems handles GET /orders/:id/items.
func (h *OrderHandler) ListItems(c *gin.Context) {
	ctx := c.Request.Context()

	orderID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	sc, ok := h.ParseScope(c)
	if !ok {
		return
	}

	items, err := h.service.ItemsOf(ctx, sc, orderID)
	if err != nil {
		h.Error(c, err)
		return
	}

	resp := make([]dto.OrderItemResponse, len(items))
	for i, item := range items {
		resp[i] = dto.FromOrderItem(item)
	}
	c.JSON(http.StatusOK, gin.H{"items": resp})
}

// AddItem handles POST /orders/:id/items.
func (h *OrderHandler) AddItem(c *gin.Context) {
	ctx := c.Request.Context()

	orderID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.CreateOrderItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := req.ToEntity(orderID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid productId format"))
		return
	}

	if err := h.service.AddItem(ctx, item); err != nil {
		h.Error(c, err)
		return
	}

	observability.EntitiesCreatedTotal.WithLabelValues("order_item").Inc()
	c.JSON(http.StatusCreated, dto.FromOrderItem(item))
}

// DeleteItem handles DELETE /orders/items/:itemId - the item deletes in
// isolation; the parent order is never touched.
func (h *OrderHandler) DeleteItem(c *gin.Context) {
	itemID, err := id.Parse(c.Param("itemId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	deleted, err := h.service.Items().Delete(c.Request.Context(), itemID)
	if err != nil {
		h.Error(c, err)
		return
	}
	if !deleted {
		h.NotFound(c, "order_item", itemID.String())
		return
	}

	observability.EntitiesSoftDeletedTotal.WithLabelValues("order_item").Inc()
	h.NoContent(c)
}

// RestoreItem handles POST /orders/items/:itemId/restore.
func (h *OrderHandler) RestoreItem(c *gin.Context) {
	itemID, err := id.Parse(c.Param("itemId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	restored, err := h.service.Items().Restore(c.Request.Context(), itemID)
	if err != nil {
		h.Error(c, err)
		return
	}
	if restored == nil {
		h.NotFound(c, "order_item", itemID.String())
		return
	}

	observability.EntitiesRestoredTotal.WithLabelValues("order_item").Inc()
	c.JSON(http.StatusOK, dto.FromOrderItem(restored))
}

// ListPayments handles GET /orders/:id/payments.
func (h *OrderHandler) ListPayments(c *gin.Context) {
	ctx := c.Request.Context()

	orderID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	sc, ok := h.ParseScope(c)
	if !ok {
		return
	}

	payments, err := h.service.PaymentsOf(ctx, sc, orderID)
	if err != nil {
		h.Error(c, err)
		return
	}

	resp := make([]dto.PaymentResponse, len(payments))
	for i, p := range payments {
		resp[i] = dto.FromPayment(p)
	}
	c.JSON(http.StatusOK, gin.H{"items": resp})
}

// RecordPayment handles POST /orders/:id/payments with the one-active-payment
// check.
func (h *OrderHandler) RecordPayment(c *gin.Context) {
	ctx := c.Request.Context()

	orderID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.RecordPaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	payment := req.ToEntity(orderID)
	if err := h.service.RecordPayment(ctx, payment); err != nil {
		h.Error(c, err)
		return
	}

	observability.PaymentsRecordedTotal.Inc()
	observability.EntitiesCreatedTotal.WithLabelValues("payment").Inc()
	c.JSON(http.StatusCreated, dto.FromPayment(payment))
}

// DeletePayment handles DELETE /orders/payments/:paymentId - the payment
// deletes in isolation, freeing the one-active-payment slot.
func (h *OrderHandler) DeletePayment(c *gin.Context) {
	paymentID, err := id.Parse(c.Param("paymentId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	deleted, err := h.service.Payments().Delete(c.Request.Context(), paymentID)
	if err != nil {
		h.Error(c, err)
		return
	}
	if !deleted {
		h.NotFound(c, "payment", paymentID.String())
		return
	}

	observability.EntitiesSoftDeletedTotal.WithLabelValues("payment").Inc()
	h.NoContent(c)
}

// RestorePayment handles POST /orders/payments/:paymentId/restore. The
// one-active-payment rule is not re-checked here; reviving a second payment
// for the same order surfaces on the next RecordPayment instead.
func (h *OrderHandler) RestorePayment(c *gin.Context) {
	paymentID, err := id.Parse(c.Param("paymentId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	restored, err := h.service.Payments().Restore(c.Request.Context(), paymentID)
	if err != nil {
		h.Error(c, err)
		return
	}
	if restored == nil {
		h.NotFound(c, "payment", paymentID.String())
		return
	}

	observability.EntitiesRestoredTotal.WithLabelValues("payment").Inc()
	c.JSON(http.StatusOK, dto.FromPayment(restored))
}
