// Package entity provides core domain entity types.
package entity

import (
	"context"
	"time"

	"bakehouse/internal/core/id"
)

// Validatable is implemented by entities that support self-validation.
// Validation checks internal invariants (without database access).
type Validatable interface {
	// Validate checks entity invariants.
	// Returns nil if valid, AppError with details otherwise.
	Validate(ctx context.Context) error
}

// Identifiable exposes the primary key. Every persisted entity implements it
// through BaseEntity.
type Identifiable interface {
	GetID() id.ID
}

// SoftDeletable is implemented by entities carrying the deleted_at column.
// The timestamp value has no semantic meaning beyond set vs unset: any
// non-null value marks the row logically absent from default queries.
type SoftDeletable interface {
	Identifiable
	IsDeleted() bool
	SetDeletedAt(at *time.Time)
	GetDeletedAt() *time.Time
}

// BaseEntity contains common fields for all persisted entities.
type BaseEntity struct {
	// ID is the primary key (UUIDv7)
	ID id.ID `db:"id" json:"id"`

	// DeletedAt marks the row as soft-deleted when non-null
	DeletedAt *time.Time `db:"deleted_at" json:"deletedAt,omitempty"`

	// Version for optimistic locking (incremented on each update)
	Version int `db:"version" json:"version"`

	// Audit timestamps
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewBaseEntity creates a new BaseEntity with generated ID and timestamps.
func NewBaseEntity() BaseEntity {
	now := time.Now().UTC()
	return BaseEntity{
		ID:        id.New(),
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// GetID implements Identifiable.
func (b *BaseEntity) GetID() id.ID {
	return b.ID
}

// IsDeleted returns true if the entity has been soft-deleted.
func (b *BaseEntity) IsDeleted() bool {
	return b.DeletedAt != nil
}

// SetDeletedAt sets or clears the deletion timestamp.
func (b *BaseEntity) SetDeletedAt(at *time.Time) {
	b.DeletedAt = at
}

// GetDeletedAt returns the deletion timestamp, nil for active rows.
func (b *BaseEntity) GetDeletedAt() *time.Time {
	return b.DeletedAt
}

// Touch updates the UpdatedAt timestamp and increments version.
func (b *BaseEntity) Touch() {
	b.UpdatedAt = time.Now().UTC()
	b.Version++
}

// SetVersion updates the version number (used by repository after sync).
func (b *BaseEntity) SetVersion(v int) {
	b.Version = v
}
