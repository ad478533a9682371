// Package main provides a CLI tool for seeding the database with sample
// bakery data: brands, stock items with per-brand prices, products with
// recipes, and one demo order.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"bakehouse/config"
	"bakehouse/internal/core/entity"
	"bakehouse/internal/domain/catalog/brand"
	"bakehouse/internal/domain/catalog/product"
	"bakehouse/internal/domain/catalog/stockitem"
	"bakehouse/internal/domain/orders"
	"bakehouse/internal/domain/recipe"
	"bakehouse/internal/infrastructure/numbering"
	"bakehouse/internal/infrastructure/storage/postgres"
	"bakehouse/internal/infrastructure/storage/postgres/entity_repo"
	"bakehouse/pkg/logger"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.Database.URL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("connected to database")

	txm := postgres.NewTxManager(pool)

	brandService := brand.NewService(entity_repo.NewBrandRepo(txm), txm)
	productService := product.NewService(entity_repo.NewProductRepo(txm), txm)
	stockItemService := stockitem.NewService(
		entity_repo.NewStockItemRepo(txm),
		entity_repo.NewBrandPriceRepo(txm),
		entity_repo.NewMovementRepo(txm),
		txm,
	)
	recipeLineRepo := entity_repo.NewRecipeLineRepo(txm)

	orderService, err := orders.NewService(orders.ServiceConfig{
		Orders:    entity_repo.NewOrderRepo(txm),
		Items:     entity_repo.NewOrderItemRepo(txm),
		Payments:  entity_repo.NewPaymentRepo(txm),
		TxManager: txm,
		Numbers:   numbering.NewOrderNumbers(pool),
	})
	if err != nil {
		log.Fatalw("failed to build order service", "error", err)
	}

	// --- Brands ---
	millers := brand.New("Miller & Sons")
	dairyco := brand.New("DairyCo")
	for _, b := range []*brand.Brand{millers, dairyco} {
		if err := brandService.Create(ctx, b); err != nil {
			log.Fatalw("failed to seed brand", "name", b.Name, "error", err)
		}
	}
	log.Info("brands seeded")

	// --- Stock items with brand prices ---
	flour := stockitem.New("Wheat flour", stockitem.UnitKilogram)
	flour.MinQuantity = decimal.NewFromInt(20)
	butter := stockitem.New("Butter", stockitem.UnitKilogram)
	butter.MinQuantity = decimal.NewFromInt(5)

	for _, s := range []*stockitem.StockItem{flour, butter} {
		if err := stockItemService.Create(ctx, s); err != nil {
			log.Fatalw("failed to seed stock item", "name", s.Name, "error", err)
		}
	}

	prices := []*stockitem.BrandPrice{
		{
			BaseEntity:   entity.NewBaseEntity(),
			StockItemID:  flour.ID,
			BrandID:      &millers.ID,
			PackageSize:  decimal.NewFromInt(25),
			PackagePrice: decimal.NewFromFloat(18.50),
		},
		{
			BaseEntity:   entity.NewBaseEntity(),
			StockItemID:  butter.ID,
			BrandID:      &dairyco.ID,
			PackageSize:  decimal.NewFromInt(10),
			PackagePrice: decimal.NewFromFloat(62.00),
		},
	}
	for _, p := range prices {
		if err := stockItemService.AddBrandPrice(ctx, p); err != nil {
			log.Fatalw("failed to seed brand price", "error", err)
		}
	}
	log.Info("stock items and prices seeded")

	// --- Products with recipes ---
	sourdough := product.New("BRD-001", "Sourdough Loaf", product.CategoryBread, decimal.NewFromFloat(6.50))
	croissant := product.New("PST-001", "Butter Croissant", product.CategoryPastry, decimal.NewFromFloat(3.20))

	for _, p := range []*product.Product{sourdough, croissant} {
		if err := productService.Create(ctx, p); err != nil {
			log.Fatalw("failed to seed product", "sku", p.SKU, "error", err)
		}
	}

	lines := []*recipe.Line{
		{
			BaseEntity:  entity.NewBaseEntity(),
			ProductID:   sourdough.ID,
			StockItemID: flour.ID,
			Quantity:    decimal.NewFromFloat(0.6),
		},
		{
			BaseEntity:  entity.NewBaseEntity(),
			ProductID:   croissant.ID,
			StockItemID: flour.ID,
			Quantity:    decimal.NewFromFloat(0.08),
		},
		{
			BaseEntity:  entity.NewBaseEntity(),
			ProductID:   croissant.ID,
			StockItemID: butter.ID,
			Quantity:    decimal.NewFromFloat(0.05),
		},
	}
	for _, l := range lines {
		if err := recipeLineRepo.Create(ctx, l); err != nil {
			log.Fatalw("failed to seed recipe line", "error", err)
		}
	}
	log.Info("products and recipes seeded")

	// --- Demo order ---
	order := orders.NewOrder("Walk-in customer")
	items := []*orders.OrderItem{
		{
			BaseEntity: entity.NewBaseEntity(),
			ProductID:  sourdough.ID,
			Quantity:   1,
			UnitPrice:  sourdough.UnitPrice,
		},
		{
			BaseEntity: entity.NewBaseEntity(),
			ProductID:  croissant.ID,
			Quantity:   2,
			UnitPrice:  croissant.UnitPrice,
		},
	}
	if err := orderService.CreateOrder(ctx, order, items); err != nil {
		log.Fatalw("failed to seed order", "error", err)
	}

	total, err := orderService.Total(ctx, order.ID)
	if err != nil {
		log.Fatalw("failed to compute order total", "error", err)
	}
	payment := &orders.Payment{
		BaseEntity: entity.NewBaseEntity(),
		OrderID:    order.ID,
		Amount:     total,
		Method:     orders.PaymentCash,
		PaidAt:     time.Now().UTC(),
	}
	if err := orderService.RecordPayment(ctx, payment); err != nil {
		log.Fatalw("failed to seed payment", "error", err)
	}
	log.Infow("demo order seeded", "number", order.OrderNumber, "total", total.String())

	log.Info("seeding completed successfully")
}
