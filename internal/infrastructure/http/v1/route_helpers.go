package v1

import (
	"github.com/gin-gonic/gin"
)

// LifecycleRouteHandler defines the interface for entity handlers. All
// soft-deletable entities expose the same route set.
type LifecycleRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	Restore(c *gin.Context)
	ForceDestroy(c *gin.Context)
}

// RegisterLifecycleRoutes registers the standard CRUD + lifecycle routes for
// an entity, so each group wires up identically:
//
//	GET    ""            list (?scope=, ?search=, ?limit=, ?offset=)
//	POST   ""            create
//	GET    "/:id"        get (?scope=)
//	PUT    "/:id"        update
//	DELETE "/:id"        soft delete
//	POST   "/:id/restore" clear the deletion mark
//	DELETE "/:id/force"  physical delete
func RegisterLifecycleRoutes(group *gin.RouterGroup, handler LifecycleRouteHandler) {
	group.GET("", handler.List)
	group.POST("", handler.Create)
	group.GET("/:id", handler.Get)
	group.PUT("/:id", handler.Update)
	group.DELETE("/:id", handler.Delete)
	group.POST("/:id/restore", handler.Restore)
	group.DELETE("/:id/force", handler.ForceDestroy)
}
