package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bakehouse/internal/core/apperror"
	"bakehouse/internal/core/entity"
	"bakehouse/internal/core/id"
	"bakehouse/internal/domain"
	"bakehouse/internal/domain/scope"
	"bakehouse/internal/infrastructure/http/v1/dto"
	"bakehouse/internal/observability"
)

// Lifecycled constrains handler entities: soft-deletable and comparable so a
// zero service result (restore miss) is detectable.
type Lifecycled interface {
	entity.SoftDeletable
	comparable
}

// LifecycleHandler provides generic HTTP handlers for soft-deletable
// entities: CRUD plus the delete / restore / force-destroy lifecycle.
// Read endpoints take an optional ?scope= query parameter selecting the
// deleted-row view.
type LifecycleHandler[T Lifecycled, CreateDTO any, UpdateDTO any] struct {
	*BaseHandler
	service    *domain.LifecycleService[T]
	entityName string

	mapCreateDTO func(dto CreateDTO) (T, error)
	mapUpdateDTO func(dto UpdateDTO, existing T) T
	mapToDTO     func(entity T) any
}

// LifecycleHandlerConfig configures the lifecycle handler.
type LifecycleHandlerConfig[T Lifecycled, CreateDTO any, UpdateDTO any] struct {
	Service      *domain.LifecycleService[T]
	EntityName   string
	MapCreateDTO func(dto CreateDTO) (T, error)
	MapUpdateDTO func(dto UpdateDTO, existing T) T
	MapToDTO     func(entity T) any
}

// NewLifecycleHandler creates a new lifecycle handler.
func NewLifecycleHandler[T Lifecycled, CreateDTO any, UpdateDTO any](
	base *BaseHandler,
	cfg LifecycleHandlerConfig[T, CreateDTO, UpdateDTO],
) *LifecycleHandler[T, CreateDTO, UpdateDTO] {
	return &LifecycleHandler[T, CreateDTO, UpdateDTO]{
		BaseHandler:  base,
		service:      cfg.Service,
		entityName:   cfg.EntityName,
		mapCreateDTO: cfg.MapCreateDTO,
		mapUpdateDTO: cfg.MapUpdateDTO,
		mapToDTO:     cfg.MapToDTO,
	}
}

// List handles GET /{entity} - list with scope, search and pagination.
func (h *LifecycleHandler[T, CreateDTO, UpdateDTO]) List(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := h.ParseScope(c)
	if !ok {
		return
	}

	filter := domain.DefaultListFilter()
	filter.Scope = sc
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.Query("orderBy")

	for _, raw := range c.QueryArray("ids") {
		parsed, err := id.Parse(raw)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid id in ids filter").WithDetail("value", raw))
			return
		}
		filter.IDs = append(filter.IDs, parsed)
	}

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, item := range result.Items {
		items[i] = h.mapToDTO(item)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /{entity}/:id - get single entity under the requested scope.
func (h *LifecycleHandler[T, CreateDTO, UpdateDTO]) Get(c *gin.Context) {
	ctx := c.Request.Context()

	entityID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	sc, ok := h.ParseScope(c)
	if !ok {
		return
	}

	e, err := h.service.GetByID(ctx, sc, entityID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, h.mapToDTO(e))
}

// Create handles POST /{entity} - create new entity.
func (h *LifecycleHandler[T, CreateDTO, UpdateDTO]) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req CreateDTO
	if !h.BindJSON(c, &req) {
		return
	}

	e, err := h.mapCreateDTO(req)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid request body").WithDetail("error", err.Error()))
		return
	}

	if err := h.service.Create(ctx, e); err != nil {
		h.Error(c, err)
		return
	}

	observability.EntitiesCreatedTotal.WithLabelValues(h.entityName).Inc()
	c.JSON(http.StatusCreated, h.mapToDTO(e))
}

// Update handles PUT /{entity}/:id - update existing entity.
func (h *LifecycleHandler[T, CreateDTO, UpdateDTO]) Update(c *gin.Context) {
	ctx := c.Request.Context()

	entityID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req UpdateDTO
	if !h.BindJSON(c, &req) {
		return
	}

	existing, err := h.service.GetByID(ctx, scope.Default, entityID)
	if err != nil {
		h.Error(c, err)
		return
	}

	updated := h.mapUpdateDTO(req, existing)

	if err := h.service.Update(ctx, updated); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, h.mapToDTO(updated))
}

// Delete handles DELETE /{entity}/:id - soft delete. A row absent from the
// default scope (missing or already deleted) is 404; success is 204.
func (h *LifecycleHandler[T, CreateDTO, UpdateDTO]) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	entityID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	deleted, err := h.service.Delete(ctx, entityID)
	if err != nil {
		h.Error(c, err)
		return
	}
	if !deleted {
		h.NotFound(c, h.entityName, entityID.String())
		return
	}

	observability.EntitiesSoftDeletedTotal.WithLabelValues(h.entityName).Inc()
	h.NoContent(c)
}

// Restore handles POST /{entity}/:id/restore - clear the deletion timestamp.
// Missing rows and rows that are already active are both 404; a successful
// restore returns the revived entity.
func (h *LifecycleHandler[T, CreateDTO, UpdateDTO]) Restore(c *gin.Context) {
	ctx := c.Request.Context()

	entityID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	restored, err := h.service.Restore(ctx, entityID)
	if err != nil {
		h.Error(c, err)
		return
	}

	var zero T
	if restored == zero {
		h.NotFound(c, h.entityName, entityID.String())
		return
	}

	observability.EntitiesRestoredTotal.WithLabelValues(h.entityName).Inc()
	c.JSON(http.StatusOK, h.mapToDTO(restored))
}

// ForceDestroy handles DELETE /{entity}/:id/force - physical removal in any
// lifecycle state. Rows referenced under RESTRICT come back as 409.
func (h *LifecycleHandler[T, CreateDTO, UpdateDTO]) ForceDestroy(c *gin.Context) {
	ctx := c.Request.Context()

	entityID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.ForceDestroy(ctx, entityID); err != nil {
		h.Error(c, err)
		return
	}

	observability.EntitiesForceDestroyedTotal.WithLabelValues(h.entityName).Inc()
	h.NoContent(c)
}
