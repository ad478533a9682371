// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bakehouse/internal/domain/catalog/brand"
	"bakehouse/internal/domain/catalog/product"
	"bakehouse/internal/domain/catalog/stockitem"
	"bakehouse/internal/domain/orders"
	"bakehouse/internal/domain/recipe"
	"bakehouse/internal/infrastructure/http/v1/handlers"
	"bakehouse/internal/infrastructure/http/v1/middleware"
	"bakehouse/internal/infrastructure/numbering"
	"bakehouse/internal/infrastructure/storage/postgres"
	"bakehouse/internal/infrastructure/storage/postgres/entity_repo"
	"bakehouse/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the database connection pool (health checks, order numbering)
	Pool *postgres.Pool

	// TxManager runs repository operations, transactional or not
	TxManager *postgres.TxManager

	// Logger for request logging
	Logger *logger.Logger

	// MetricsPath is where the Prometheus scrape endpoint is mounted
	MetricsPath string
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.Metrics())
	router.Use(middleware.ErrorHandler())

	// Health endpoints
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	metricsPath := cfg.MetricsPath
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	router.GET(metricsPath, gin.WrapH(promhttp.Handler()))

	// Repositories and services share one TxManager; every cascade runs
	// through it.
	txm := cfg.TxManager
	baseHandler := handlers.NewBaseHandler()

	productRepo := entity_repo.NewProductRepo(txm)
	brandRepo := entity_repo.NewBrandRepo(txm)
	stockItemRepo := entity_repo.NewStockItemRepo(txm)
	brandPriceRepo := entity_repo.NewBrandPriceRepo(txm)
	movementRepo := entity_repo.NewMovementRepo(txm)
	recipeLineRepo := entity_repo.NewRecipeLineRepo(txm)
	orderRepo := entity_repo.NewOrderRepo(txm)
	orderItemRepo := entity_repo.NewOrderItemRepo(txm)
	paymentRepo := entity_repo.NewPaymentRepo(txm)

	productService := product.NewService(productRepo, txm)
	brandService := brand.NewService(brandRepo, txm)
	stockItemService := stockitem.NewService(stockItemRepo, brandPriceRepo, movementRepo, txm)
	costService := recipe.NewCostService(recipeLineRepo, recipe.NewBrandPriceSource(brandPriceRepo))

	orderService, err := orders.NewService(orders.ServiceConfig{
		Orders:    orderRepo,
		Items:     orderItemRepo,
		Payments:  paymentRepo,
		TxManager: txm,
		Numbers:   numbering.NewOrderNumbers(cfg.Pool),
	})
	if err != nil {
		return nil, err
	}

	// API v1
	api := router.Group("/api/v1")
	{
		productHandler := handlers.NewProductHandler(baseHandler, productService)
		costHandler := handlers.NewCostHandler(baseHandler, costService)
		products := api.Group("/products")
		RegisterLifecycleRoutes(products, productHandler)
		products.GET("/:id/cost", costHandler.Cost)

		brandHandler := handlers.NewBrandHandler(baseHandler, brandService)
		RegisterLifecycleRoutes(api.Group("/brands"), brandHandler)

		stockItemHandler := handlers.NewStockItemHandler(baseHandler, stockItemService)
		stockItems := api.Group("/stock-items")
		RegisterLifecycleRoutes(stockItems, stockItemHandler)
		stockItems.GET("/:id/prices", stockItemHandler.ListPrices)
		stockItems.POST("/:id/prices", stockItemHandler.AddPrice)
		stockItems.DELETE("/prices/:priceId", stockItemHandler.DeletePrice)
		stockItems.POST("/prices/:priceId/restore", stockItemHandler.RestorePrice)
		stockItems.GET("/:id/movements", stockItemHandler.ListMovements)
		stockItems.POST("/:id/movements", stockItemHandler.RecordMovement)

		orderHandler := handlers.NewOrderHandler(baseHandler, orderService)
		ordersGroup := api.Group("/orders")
		RegisterLifecycleRoutes(ordersGroup, orderHandler)
		ordersGroup.GET("/by-number/:number", orderHandler.GetByNumber)
		ordersGroup.POST("/:id/restore-with-items", orderHandler.RestoreWithItems)
		ordersGroup.GET("/:id/total", orderHandler.Total)
		ordersGroup.GET("/:id/items", orderHandler.ListItems)
		ordersGroup.POST("/:id/items", orderHandler.AddItem)
		ordersGroup.DELETE("/items/:itemId", orderHandler.DeleteItem)
		ordersGroup.POST("/items/:itemId/restore", orderHandler.RestoreItem)
		ordersGroup.GET("/:id/payments", orderHandler.ListPayments)
		ordersGroup.POST("/:id/payments", orderHandler.RecordPayment)
		ordersGroup.DELETE("/payments/:paymentId", orderHandler.DeletePayment)
		ordersGroup.POST("/payments/:paymentId/restore", orderHandler.RestorePayment)
	}

	return router, nil
}
