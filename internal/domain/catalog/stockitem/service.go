package stockitem

import (
	"context"
	"fmt"

	"bakehouse/internal/core/apperror"
	"bakehouse/internal/core/id"
	"bakehouse/internal/core/tx"
	"bakehouse/internal/domain"
	"bakehouse/internal/domain/scope"
)

// Service provides StockItem lifecycle operations. Stock items have no
// cascade dependents: deleting one leaves brand prices and movement history
// in place (they stop resolving through the default scope joins instead).
type Service struct {
	*domain.LifecycleService[*StockItem]
	prices    BrandPriceRepository
	movements MovementRepository
	txManager tx.Manager

	priceLifecycle    *domain.LifecycleService[*BrandPrice]
	movementLifecycle *domain.LifecycleService[*StockMovement]
}

// NewService creates a new StockItem service.
func NewService(repo Repository, prices BrandPriceRepository, movements MovementRepository, txManager tx.Manager) *Service {
	s := &Service{
		LifecycleService: domain.NewLifecycleService(domain.LifecycleServiceConfig[*StockItem]{
			Repo:       repo,
			TxManager:  txManager,
			EntityName: "stock_item",
		}),
		prices:    prices,
		movements: movements,
		txManager: txManager,
	}

	// Prices and movements delete in isolation from their stock item.
	s.priceLifecycle = domain.NewLifecycleService(domain.LifecycleServiceConfig[*BrandPrice]{
		Repo:       prices,
		TxManager:  txManager,
		EntityName: "brand_price",
	})
	s.movementLifecycle = domain.NewLifecycleService(domain.LifecycleServiceConfig[*StockMovement]{
		Repo:       movements,
		TxManager:  txManager,
		EntityName: "stock_movement",
	})

	return s
}

// Prices exposes the brand price lifecycle facade (independent
// delete/restore; creation goes through AddBrandPrice for the pair check).
func (s *Service) Prices() *domain.LifecycleService[*BrandPrice] {
	return s.priceLifecycle
}

// Movements exposes the stock movement lifecycle facade.
func (s *Service) Movements() *domain.LifecycleService[*StockMovement] {
	return s.movementLifecycle
}

// AddBrandPrice records a per-brand package offer. The (stock item, brand)
// pair must be unique among active rows; the check runs in the same
// transaction as the insert.
func (s *Service) AddBrandPrice(ctx context.Context, p *BrandPrice) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}
	if _, err := s.GetByID(ctx, scope.Default, p.StockItemID); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		taken, err := s.prices.ExistsActivePair(ctx, p.StockItemID, p.BrandID, p.ID)
		if err != nil {
			return fmt.Errorf("check brand price pair: %w", err)
		}
		if taken {
			return apperror.NewDuplicate("brand_price", "stock_item/brand", p.StockItemID.String())
		}
		if err := s.prices.Create(ctx, p); err != nil {
			return fmt.Errorf("create brand price: %w", err)
		}
		return nil
	})
}

// PricesOf retrieves the stock item's brand prices under the given scope.
func (s *Service) PricesOf(ctx context.Context, sc scope.Scope, stockItemID id.ID) ([]*BrandPrice, error) {
	if !sc.Valid() {
		return nil, apperror.NewInvalidScope(string(sc))
	}
	return s.prices.FindByStockItem(ctx, sc, stockItemID)
}

// RecordMovement appends a quantity change for an active stock item.
func (s *Service) RecordMovement(ctx context.Context, m *StockMovement) error {
	if err := m.Validate(ctx); err != nil {
		return err
	}
	if _, err := s.GetByID(ctx, scope.Default, m.StockItemID); err != nil {
		return err
	}
	return s.movementLifecycle.Create(ctx, m)
}

// MovementsOf retrieves the stock item's movements under the given scope.
func (s *Service) MovementsOf(ctx context.Context, sc scope.Scope, stockItemID id.ID) ([]*StockMovement, error) {
	if !sc.Valid() {
		return nil, apperror.NewInvalidScope(string(sc))
	}
	return s.movements.FindByStockItem(ctx, sc, stockItemID)
}
