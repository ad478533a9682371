package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bakehouse/internal/core/apperror"
	"bakehouse/internal/core/id"
	"bakehouse/internal/domain/catalog/stockitem"
	"bakehouse/internal/infrastructure/http/v1/dto"
	"bakehouse/internal/observability"
)

// StockItemHandler serves stock items together with their nested brand
// prices and movement history. Prices and movements are separate lifecycle
// entities: deleting a stock item never touches them, and they delete and
// restore on their own.
type StockItemHandler struct {
	*LifecycleHandler[*stockitem.StockItem, dto.CreateStockItemRequest, dto.UpdateStockItemRequest]
	service *stockitem.Service
}

// NewStockItemHandler creates the stock item handler.
func NewStockItemHandler(base *BaseHandler, service *stockitem.Service) *StockItemHandler {
	lifecycle := NewLifecycleHandler(base, LifecycleHandlerConfig[
		*stockitem.StockItem,
		dto.CreateStockItemRequest,
		dto.UpdateStockItemRequest,
	]{
		Service:    service.LifecycleService,
		EntityName: "stock_item",
		MapCreateDTO: func(req dto.CreateStockItemRequest) (*stockitem.StockItem, error) {
			return req.ToEntity(), nil
		},
		MapUpdateDTO: func(req dto.UpdateStockItemRequest, existing *stockitem.StockItem) *stockitem.StockItem {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(s *stockitem.StockItem) any {
			return dto.FromStockItem(s)
		},
	})

	return &StockItemHandler{LifecycleHandler: lifecycle, service: service}
}

// ListPrices handles GET /stock-items/:id/prices.
func (h *StockItemHandler) ListPrices(c *gin.Context) {
	ctx := c.Request.Context()

	stockItemID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	sc, ok := h.ParseScope(c)
	if !ok {
		return
	}

	prices, err := h.service.PricesOf(ctx, sc, stockItemID)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.BrandPriceResponse, len(prices))
	for i, p := range prices {
		items[i] = dto.FromBrandPrice(p)
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// AddPrice handles POST /stock-items/:id/prices with the active-pair
// uniqueness check.
func (h *StockItemHandler) AddPrice(c *gin.Context) {
	ctx := c.Request.Context()

	stockItemID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.CreateBrandPriceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	price, err := req.ToEntity(stockItemID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid brandId format"))
		return
	}

	if err := h.service.AddBrandPrice(ctx, price); err != nil {
		h.Error(c, err)
		return
	}

	observability.EntitiesCreatedTotal.WithLabelValues("brand_price").Inc()
	c.JSON(http.StatusCreated, dto.FromBrandPrice(price))
}

// DeletePrice handles DELETE /stock-items/prices/:priceId.
func (h *StockItemHandler) DeletePrice(c *gin.Context) {
	priceID, err := id.Parse(c.Param("priceId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	deleted, err := h.service.Prices().Delete(c.Request.Context(), priceID)
	if err != nil {
		h.Error(c, err)
		return
	}
	if !deleted {
		h.NotFound(c, "brand_price", priceID.String())
		return
	}

	observability.EntitiesSoftDeletedTotal.WithLabelValues("brand_price").Inc()
	h.NoContent(c)
}

// RestorePrice handles POST /stock-items/prices/:priceId/restore.
func (h *StockItemHandler) RestorePrice(c *gin.Context) {
	priceID, err := id.Parse(c.Param("priceId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	restored, err := h.service.Prices().Restore(c.Request.Context(), priceID)
	if err != nil {
		h.Error(c, err)
		return
	}
	if restored == nil {
		h.NotFound(c, "brand_price", priceID.String())
		return
	}

	observability.EntitiesRestoredTotal.WithLabelValues("brand_price").Inc()
	c.JSON(http.StatusOK, dto.FromBrandPrice(restored))
}

// ListMovements handles GET /stock-items/:id/movements.
func (h *StockItemHandler) ListMovements(c *gin.Context) {
	ctx := c.Request.Context()

	stockItemID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	sc, ok := h.ParseScope(c)
	if !ok {
		return
	}

	movements, err := h.service.MovementsOf(ctx, sc, stockItemID)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.StockMovementResponse, len(movements))
	for i, m := range movements {
		items[i] = dto.FromStockMovement(m)
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// RecordMovement handles POST /stock-items/:id/movements.
func (h *StockItemHandler) RecordMovement(c *gin.Context) {
	ctx := c.Request.Context()

	stockItemID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.CreateStockMovementRequest
	if !h.BindJSON(c, &req) {
		return
	}

	movement := req.ToEntity(stockItemID)
	if err := h.service.RecordMovement(ctx, movement); err != nil {
		h.Error(c, err)
		return
	}

	observability.EntitiesCreatedTotal.WithLabelValues("stock_movement").Inc()
	c.JSON(http.StatusCreated, dto.FromStockMovement(movement))
}
