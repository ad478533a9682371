package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bakehouse/internal/core/apperror"
	"bakehouse/internal/core/id"
	"bakehouse/internal/domain/catalog/product"
	"bakehouse/internal/domain/recipe"
	"bakehouse/internal/domain/scope"
	"bakehouse/internal/infrastructure/http/v1/dto"
	"bakehouse/internal/observability"
)

// ProductHandler serves the product catalog. Create and Update shadow the
// generic lifecycle methods because they must route through product.Service,
// which runs the active-SKU uniqueness check in the insert transaction.
type ProductHandler struct {
	*LifecycleHandler[*product.Product, dto.CreateProductRequest, dto.UpdateProductRequest]
	service *product.Service
}

// NewProductHandler creates the product handler.
func NewProductHandler(base *BaseHandler, service *product.Service) *ProductHandler {
	lifecycle := NewLifecycleHandler(base, LifecycleHandlerConfig[
		*product.Product,
		dto.CreateProductRequest,
		dto.UpdateProductRequest,
	]{
		Service:    service.LifecycleService,
		EntityName: "product",
		MapCreateDTO: func(req dto.CreateProductRequest) (*product.Product, error) {
			return req.ToEntity(), nil
		},
		MapUpdateDTO: func(req dto.UpdateProductRequest, existing *product.Product) *product.Product {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(p *product.Product) any {
			return dto.FromProduct(p)
		},
	})

	return &ProductHandler{LifecycleHandler: lifecycle, service: service}
}

// Create handles POST /products with the active-SKU uniqueness check.
func (h *ProductHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p := req.ToEntity()
	if err := h.service.Create(ctx, p); err != nil {
		h.Error(c, err)
		return
	}

	observability.EntitiesCreatedTotal.WithLabelValues("product").Inc()
	c.JSON(http.StatusCreated, dto.FromProduct(p))
}

// Update handles PUT /products/:id with the active-SKU uniqueness check.
func (h *ProductHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	existing, err := h.service.GetByID(ctx, scope.Default, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(existing)
	if err := h.service.Update(ctx, existing); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromProduct(existing))
}

// CostHandler serves recipe cost roll-ups.
type CostHandler struct {
	*BaseHandler
	costs *recipe.CostService
}

// NewCostHandler creates the cost handler.
func NewCostHandler(base *BaseHandler, costs *recipe.CostService) *CostHandler {
	return &CostHandler{BaseHandler: base, costs: costs}
}

// Cost handles GET /products/:id/cost - the unit-cost breakdown built from
// active recipe lines and the cheapest active brand offers.
func (h *CostHandler) Cost(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	costing, err := h.costs.UnitCost(ctx, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, costing)
}
