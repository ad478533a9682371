package product

import (
	"context"
	"fmt"

	"bakehouse/internal/core/apperror"
	"bakehouse/internal/core/tx"
	"bakehouse/internal/domain"
)

// Service provides business logic for the Product catalog.
// Products have no configured cascade dependents: they delete in isolation.
type Service struct {
	*domain.LifecycleService[*Product]
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new Product service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewLifecycleService(domain.LifecycleServiceConfig[*Product]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "product",
	})
	return &Service{
		LifecycleService: base,
		repo:             repo,
		txManager:        txManager,
	}
}

// Create validates the product and inserts it. The SKU uniqueness check runs
// inside the same transaction as the insert: SKUs are unique among active
// rows only, and some engines cannot express that as a partial index, so the
// check-then-insert happens at the application layer.
func (s *Service) Create(ctx context.Context, p *Product) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		taken, err := s.repo.ExistsActiveBySKU(ctx, p.SKU, p.ID)
		if err != nil {
			return fmt.Errorf("check sku: %w", err)
		}
		if taken {
			return apperror.NewDuplicate("product", "sku", p.SKU)
		}
		if err := s.repo.Create(ctx, p); err != nil {
			return fmt.Errorf("create product: %w", err)
		}
		return nil
	})
}

// Update validates and persists changes, re-checking SKU uniqueness among
// active rows in the same transaction.
func (s *Service) Update(ctx context.Context, p *Product) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		taken, err := s.repo.ExistsActiveBySKU(ctx, p.SKU, p.ID)
		if err != nil {
			return fmt.Errorf("check sku: %w", err)
		}
		if taken {
			return apperror.NewDuplicate("product", "sku", p.SKU)
		}
		if err := s.repo.Update(ctx, p); err != nil {
			return fmt.Errorf("update product: %w", err)
		}
		return nil
	})
}
