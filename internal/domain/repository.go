// Package domain provides core business logic interfaces and types.
package domain

import (
	"context"
	"time"

	"bakehouse/internal/core/entity"
	"bakehouse/internal/core/id"
	"bakehouse/internal/domain/scope"
)

// --- Filter & Pagination ---

// ListFilter contains common filtering options for list operations.
type ListFilter struct {
	// Scope selects the soft-delete view (default / withDeleted / onlyDeleted)
	Scope scope.Scope

	// Search performs substring search on searchable fields
	Search string

	// IDs filters by specific IDs
	IDs []id.ID

	// OrderBy specifies sorting (e.g., "name", "-created_at")
	OrderBy string

	// Pagination
	Limit  int
	Offset int
}

// DefaultListFilter returns sensible defaults.
func DefaultListFilter() ListFilter {
	return ListFilter{
		Scope: scope.Default,
		Limit: 50,
	}
}

// ListResult contains paginated results.
type ListResult[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// --- Repository Interfaces ---

// Repository defines scoped CRUD and lifecycle operations for a
// soft-deletable entity. All find operations take an explicit scope so no
// query can bypass deleted-row filtering by accident.
type Repository[T entity.SoftDeletable] interface {
	// Create inserts a new entity (deleted_at NULL).
	Create(ctx context.Context, e T) error

	// FindByID retrieves an entity by ID under the given scope.
	// Missing rows surface as a NOT_FOUND AppError.
	FindByID(ctx context.Context, sc scope.Scope, entityID id.ID) (T, error)

	// List retrieves entities with scope filtering and pagination.
	List(ctx context.Context, filter ListFilter) (ListResult[T], error)

	// Update modifies an existing entity (with optimistic locking).
	Update(ctx context.Context, e T) error

	// SoftDestroy sets deleted_at to the given timestamp via UPDATE.
	// Already-deleted rows are overwritten (last write wins), never an error.
	SoftDestroy(ctx context.Context, entityID id.ID, at time.Time) error

	// Restore clears deleted_at via UPDATE.
	Restore(ctx context.Context, entityID id.ID) error

	// ForceDestroy physically removes the row. Database ON DELETE rules
	// (CASCADE / RESTRICT / SET NULL) apply; no cascade hook fires.
	ForceDestroy(ctx context.Context, entityID id.ID) error
}

// --- Hooks ---

// HookEvent represents lifecycle event type.
type HookEvent string

const (
	BeforeCreate      HookEvent = "before_create"
	AfterCreate       HookEvent = "after_create"
	BeforeUpdate      HookEvent = "before_update"
	AfterUpdate       HookEvent = "after_update"
	BeforeSoftDestroy HookEvent = "before_soft_destroy"
	AfterSoftDestroy  HookEvent = "after_soft_destroy"
	BeforeRestore     HookEvent = "before_restore"
	AfterRestore      HookEvent = "after_restore"
)

// Hook is a function that runs at specific lifecycle points.
type Hook[T any] func(ctx context.Context, e T) error

// HookRegistry stores lifecycle hooks for an entity type.
type HookRegistry[T any] struct {
	hooks map[HookEvent][]Hook[T]
}

// NewHookRegistry creates an empty hook registry.
func NewHookRegistry[T any]() *HookRegistry[T] {
	return &HookRegistry[T]{
		hooks: make(map[HookEvent][]Hook[T]),
	}
}

// On registers a hook for the specified event.
func (r *HookRegistry[T]) On(event HookEvent, hook Hook[T]) {
	r.hooks[event] = append(r.hooks[event], hook)
}

// Run executes all hooks for the specified event.
func (r *HookRegistry[T]) Run(ctx context.Context, event HookEvent, e T) error {
	for _, hook := range r.hooks[event] {
		if err := hook(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

// OnBeforeCreate registers a hook to run before create.
func (r *HookRegistry[T]) OnBeforeCreate(hook Hook[T]) {
	r.On(BeforeCreate, hook)
}

// OnBeforeUpdate registers a hook to run before update.
func (r *HookRegistry[T]) OnBeforeUpdate(hook Hook[T]) {
	r.On(BeforeUpdate, hook)
}

// OnAfterSoftDestroy registers a hook to run after a soft destroy.
func (r *HookRegistry[T]) OnAfterSoftDestroy(hook Hook[T]) {
	r.On(AfterSoftDestroy, hook)
}

// OnAfterRestore registers a hook to run after a restore.
func (r *HookRegistry[T]) OnAfterRestore(hook Hook[T]) {
	r.On(AfterRestore, hook)
}
