// Package domaintest provides in-memory fakes for exercising lifecycle
// semantics without a database.
package domaintest

import (
	"context"
	"sort"
	"sync"
	"time"

	"bakehouse/internal/core/apperror"
	"bakehouse/internal/core/entity"
	"bakehouse/internal/core/id"
	"bakehouse/internal/domain"
	"bakehouse/internal/domain/scope"
)

// FakeTxManager satisfies tx.Manager by running the function directly.
// Set Err to make every transaction fail before the function runs, which is
// how persistence-layer failures are injected into service tests.
type FakeTxManager struct {
	Err   error
	Calls int
}

// RunInTransaction implements tx.Manager.
func (m *FakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	if m.Err != nil {
		return m.Err
	}
	return fn(ctx)
}

// FakeRepo is an in-memory domain.Repository implementation. Scope filtering
// mirrors the SQL predicates: the fake and the real repo must agree on which
// rows each scope returns.
type FakeRepo[T entity.SoftDeletable] struct {
	mu    sync.Mutex
	items map[id.ID]T

	// Err makes every call fail, simulating a persistence error.
	Err error

	// SoftDestroyCalls counts write attempts, letting tests assert that
	// no-op paths perform no writes.
	SoftDestroyCalls int
	RestoreCalls     int
}

// NewFakeRepo creates an empty fake repository.
func NewFakeRepo[T entity.SoftDeletable]() *FakeRepo[T] {
	return &FakeRepo[T]{items: make(map[id.ID]T)}
}

// Seed inserts entities directly, bypassing lifecycle checks.
func (r *FakeRepo[T]) Seed(entities ...T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range entities {
		r.items[e.GetID()] = e
	}
}

// All returns every stored entity regardless of scope, for building
// entity-specific finders on top of the fake.
func (r *FakeRepo[T]) All() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]T, 0, len(r.items))
	for _, e := range r.items {
		out = append(out, e)
	}
	return out
}

// Get returns the raw stored entity regardless of scope (test inspection).
func (r *FakeRepo[T]) Get(entityID id.ID) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.items[entityID]
	return e, ok
}

// Create implements domain.Repository.
func (r *FakeRepo[T]) Create(_ context.Context, e T) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[e.GetID()] = e
	return nil
}

// FindByID implements domain.Repository.
func (r *FakeRepo[T]) FindByID(_ context.Context, sc scope.Scope, entityID id.ID) (T, error) {
	var zero T
	if r.Err != nil {
		return zero, r.Err
	}
	if !sc.Valid() {
		return zero, apperror.NewInvalidScope(string(sc))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.items[entityID]
	if !ok || !sc.Matches(e.IsDeleted()) {
		return zero, apperror.NewNotFound("entity", entityID.String())
	}
	return e, nil
}

// List implements domain.Repository.
func (r *FakeRepo[T]) List(_ context.Context, filter domain.ListFilter) (domain.ListResult[T], error) {
	if r.Err != nil {
		return domain.ListResult[T]{}, r.Err
	}
	if !filter.Scope.Valid() {
		return domain.ListResult[T]{}, apperror.NewInvalidScope(string(filter.Scope))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	wanted := make(map[id.ID]bool, len(filter.IDs))
	for _, entityID := range filter.IDs {
		wanted[entityID] = true
	}

	var out []T
	for _, e := range r.items {
		if !filter.Scope.Matches(e.IsDeleted()) {
			continue
		}
		if len(wanted) > 0 && !wanted[e.GetID()] {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].GetID().String() < out[j].GetID().String()
	})

	return domain.ListResult[T]{
		Items:      out,
		TotalCount: int64(len(out)),
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	}, nil
}

// Update implements domain.Repository.
func (r *FakeRepo[T]) Update(_ context.Context, e T) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[e.GetID()]; !ok {
		return apperror.NewNotFound("entity", e.GetID().String())
	}
	r.items[e.GetID()] = e
	return nil
}

// SoftDestroy implements domain.Repository. Last write wins on deleted_at.
func (r *FakeRepo[T]) SoftDestroy(_ context.Context, entityID id.ID, at time.Time) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.SoftDestroyCalls++
	e, ok := r.items[entityID]
	if !ok {
		return apperror.NewNotFound("entity", entityID.String())
	}
	t := at
	e.SetDeletedAt(&t)
	return nil
}

// Restore implements domain.Repository.
func (r *FakeRepo[T]) Restore(_ context.Context, entityID id.ID) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.RestoreCalls++
	e, ok := r.items[entityID]
	if !ok {
		return apperror.NewNotFound("entity", entityID.String())
	}
	e.SetDeletedAt(nil)
	return nil
}

// ForceDestroy implements domain.Repository. The row disappears from every
// scope; no lookup will find it again.
func (r *FakeRepo[T]) ForceDestroy(_ context.Context, entityID id.ID) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, entityID)
	return nil
}
