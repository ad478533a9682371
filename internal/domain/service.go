package domain

import (
	"context"
	"fmt"
	"time"

	"bakehouse/internal/core/apperror"
	"bakehouse/internal/core/entity"
	"bakehouse/internal/core/id"
	"bakehouse/internal/core/tx"
	"bakehouse/internal/domain/scope"
)

// CascadeFunc propagates a soft destroy from a parent entity to its
// configured dependents. It runs inside the same transaction as the parent
// write so the cascade is synchronous-complete: when Delete returns, every
// dependent row is already soft-deleted.
type CascadeFunc[T any] func(ctx context.Context, parent T, at time.Time) error

// LifecycleService provides soft-delete lifecycle operations for one entity
// type. It is the only supported path for destroying and restoring rows, so
// scope filtering is never bypassed.
type LifecycleService[T entity.SoftDeletable] struct {
	repo       Repository[T]
	txManager  tx.Manager
	hooks      *HookRegistry[T]
	entityName string

	// cascadeDestroy is nil for entities without configured dependents
	cascadeDestroy CascadeFunc[T]

	// now is swappable in tests
	now func() time.Time
}

// LifecycleServiceConfig configures the lifecycle service.
type LifecycleServiceConfig[T entity.SoftDeletable] struct {
	Repo           Repository[T]
	TxManager      tx.Manager
	EntityName     string
	CascadeDestroy CascadeFunc[T]
	Now            func() time.Time
}

// NewLifecycleService creates a new lifecycle service.
func NewLifecycleService[T entity.SoftDeletable](cfg LifecycleServiceConfig[T]) *LifecycleService[T] {
	now := cfg.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &LifecycleService[T]{
		repo:           cfg.Repo,
		txManager:      cfg.TxManager,
		hooks:          NewHookRegistry[T](),
		entityName:     cfg.EntityName,
		cascadeDestroy: cfg.CascadeDestroy,
		now:            now,
	}
}

// Hooks returns the hook registry for external registration.
func (s *LifecycleService[T]) Hooks() *HookRegistry[T] {
	return s.hooks
}

// EntityName returns the name used in errors and metrics labels.
func (s *LifecycleService[T]) EntityName() string {
	return s.entityName
}

func (s *LifecycleService[T]) normalizeValidationErr(err error) error {
	if err == nil {
		return nil
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewValidation(err.Error())
}

func (s *LifecycleService[T]) normalizeGetErr(err error, entityID any) error {
	if err == nil {
		return nil
	}
	if apperror.IsNotFound(err) {
		return apperror.NewNotFound(s.entityName, entityID)
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewInternal(err).WithDetail("entity", s.entityName).WithDetail("id", entityID)
}

// Create validates and inserts a new entity.
func (s *LifecycleService[T]) Create(ctx context.Context, e T) error {
	if v, ok := any(e).(entity.Validatable); ok {
		if err := v.Validate(ctx); err != nil {
			return s.normalizeValidationErr(err)
		}
	}

	if err := s.hooks.Run(ctx, BeforeCreate, e); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, e); err != nil {
			return fmt.Errorf("create %s: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// After-create hooks run outside the transaction; a failure here does not
	// undo the insert.
	_ = s.hooks.Run(ctx, AfterCreate, e)
	return nil
}

// GetByID retrieves an entity under the given scope.
func (s *LifecycleService[T]) GetByID(ctx context.Context, sc scope.Scope, entityID id.ID) (T, error) {
	e, err := s.repo.FindByID(ctx, sc, entityID)
	if err != nil {
		return e, s.normalizeGetErr(err, entityID.String())
	}
	return e, nil
}

// List retrieves entities with scope filtering.
func (s *LifecycleService[T]) List(ctx context.Context, filter ListFilter) (ListResult[T], error) {
	if !filter.Scope.Valid() {
		return ListResult[T]{}, apperror.NewInvalidScope(string(filter.Scope))
	}
	return s.repo.List(ctx, filter)
}

// Update validates and persists changes to an existing entity.
func (s *LifecycleService[T]) Update(ctx context.Context, e T) error {
	if v, ok := any(e).(entity.Validatable); ok {
		if err := v.Validate(ctx); err != nil {
			return s.normalizeValidationErr(err)
		}
	}

	if err := s.hooks.Run(ctx, BeforeUpdate, e); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, e); err != nil {
			return fmt.Errorf("update %s: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	_ = s.hooks.Run(ctx, AfterUpdate, e)
	return nil
}

// Delete soft-destroys the entity with the given ID.
//
// The lookup uses the default scope: an absent or already-deleted row returns
// false without error. When the row exists, deleted_at is set and the
// configured cascade runs inside the same transaction. Persistence errors
// propagate unchanged.
func (s *LifecycleService[T]) Delete(ctx context.Context, entityID id.ID) (bool, error) {
	e, err := s.repo.FindByID(ctx, scope.Default, entityID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return false, nil
		}
		return false, s.normalizeGetErr(err, entityID.String())
	}

	if err := s.hooks.Run(ctx, BeforeSoftDestroy, e); err != nil {
		return false, err
	}

	at := s.now()
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.SoftDestroy(ctx, entityID, at); err != nil {
			return fmt.Errorf("soft destroy %s: %w", s.entityName, err)
		}
		if s.cascadeDestroy != nil {
			if err := s.cascadeDestroy(ctx, e, at); err != nil {
				return fmt.Errorf("cascade destroy %s: %w", s.entityName, err)
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	e.SetDeletedAt(&at)
	_ = s.hooks.Run(ctx, AfterSoftDestroy, e)
	return true, nil
}

// Restore clears the deletion mark on a soft-deleted entity.
//
// The lookup uses the withDeleted scope. A missing row returns the zero value
// without error, and so does a row that is not currently deleted — restore on
// an active entity performs no write. Dependents are NOT restored here: a
// parent restore never implicitly revives children (see RestoreDependents on
// the owning service for the explicit per-dependent loop).
func (s *LifecycleService[T]) Restore(ctx context.Context, entityID id.ID) (T, error) {
	var zero T

	e, err := s.repo.FindByID(ctx, scope.WithDeleted, entityID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return zero, nil
		}
		return zero, s.normalizeGetErr(err, entityID.String())
	}

	if !e.IsDeleted() {
		return zero, nil
	}

	if err := s.hooks.Run(ctx, BeforeRestore, e); err != nil {
		return zero, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Restore(ctx, entityID); err != nil {
			return fmt.Errorf("restore %s: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		return zero, err
	}

	e.SetDeletedAt(nil)
	_ = s.hooks.Run(ctx, AfterRestore, e)
	return e, nil
}

// ForceDestroy physically removes the row, in any lifecycle state. Referential
// integrity is left to the database ON DELETE rules; a RESTRICT violation
// surfaces as a conflict error from the repository.
func (s *LifecycleService[T]) ForceDestroy(ctx context.Context, entityID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.ForceDestroy(ctx, entityID); err != nil {
			return fmt.Errorf("force destroy %s: %w", s.entityName, err)
		}
		return nil
	})
}
