// Package brand provides the Brand catalog: suppliers' product brands used
// for stock-item pricing.
package brand

import (
	"context"

	"bakehouse/internal/core/apperror"
	"bakehouse/internal/core/entity"
	"bakehouse/internal/core/tx"
	"bakehouse/internal/domain"
)

// Brand identifies a supplier brand. Brands are referenced by stock-item
// prices (SET NULL on hard delete) and have no cascade dependents of their
// own: soft-deleting a brand leaves priced stock items untouched.
type Brand struct {
	entity.BaseEntity

	Name string `db:"name" json:"name"`
}

// New creates a Brand.
func New(name string) *Brand {
	return &Brand{
		BaseEntity: entity.NewBaseEntity(),
		Name:       name,
	}
}

// Validate implements entity.Validatable.
func (b *Brand) Validate(ctx context.Context) error {
	if b.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	return nil
}

// Repository defines the interface for Brand persistence.
type Repository interface {
	domain.Repository[*Brand]
}

// Service provides Brand lifecycle operations.
type Service struct {
	*domain.LifecycleService[*Brand]
}

// NewService creates a new Brand service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		LifecycleService: domain.NewLifecycleService(domain.LifecycleServiceConfig[*Brand]{
			Repo:       repo,
			TxManager:  txManager,
			EntityName: "brand",
		}),
	}
}
