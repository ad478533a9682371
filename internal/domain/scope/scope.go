// Package scope provides the named query views over soft-deletable tables.
//
// Every soft-deletable table carries a nullable deleted_at column. A scope is
// a reusable predicate on that column, ANDed with whatever other criteria the
// caller supplies. The set of scopes is closed: Default, WithDeleted and
// OnlyDeleted. Default ∪ OnlyDeleted = WithDeleted, with no overlap.
package scope

import (
	"github.com/Masterminds/squirrel"

	"bakehouse/internal/core/apperror"
)

// Scope is a named query view over a soft-deletable table.
type Scope string

const (
	// Default excludes soft-deleted rows (deleted_at IS NULL).
	// All plain find/list operations use this view unless the caller
	// explicitly requests another one.
	Default Scope = "default"

	// WithDeleted applies no predicate on deleted_at.
	WithDeleted Scope = "withDeleted"

	// OnlyDeleted returns soft-deleted rows only (deleted_at IS NOT NULL).
	OnlyDeleted Scope = "onlyDeleted"
)

// Column is the soft-delete marker column present on every scoped table.
const Column = "deleted_at"

// Parse validates a scope name against the closed set.
// An empty string maps to Default; anything else unknown is a caller error.
func Parse(name string) (Scope, error) {
	switch Scope(name) {
	case "":
		return Default, nil
	case Default, WithDeleted, OnlyDeleted:
		return Scope(name), nil
	default:
		return "", apperror.NewInvalidScope(name)
	}
}

// Valid reports whether s is one of the three known scopes.
func (s Scope) Valid() bool {
	switch s {
	case Default, WithDeleted, OnlyDeleted:
		return true
	}
	return false
}

// Apply ANDs the scope predicate onto q. It is a pure filter composition:
// predicates already present on q are left untouched.
// Unknown scopes return q unchanged alongside an InvalidScope error.
func (s Scope) Apply(q squirrel.SelectBuilder) (squirrel.SelectBuilder, error) {
	return s.apply(q, Column)
}

// ApplyAliased is Apply for joined queries where the soft-delete column needs
// a table qualifier (e.g. "oi.deleted_at").
func (s Scope) ApplyAliased(q squirrel.SelectBuilder, alias string) (squirrel.SelectBuilder, error) {
	return s.apply(q, alias+"."+Column)
}

func (s Scope) apply(q squirrel.SelectBuilder, col string) (squirrel.SelectBuilder, error) {
	switch s {
	case Default:
		return q.Where(squirrel.Eq{col: nil}), nil
	case OnlyDeleted:
		return q.Where(squirrel.NotEq{col: nil}), nil
	case WithDeleted:
		return q, nil
	default:
		return q, apperror.NewInvalidScope(string(s))
	}
}

// Matches reports whether a row with the given deleted_at value belongs to
// the scope. Used by in-memory fakes and application-level checks; must agree
// with Apply.
func (s Scope) Matches(deleted bool) bool {
	switch s {
	case Default:
		return !deleted
	case OnlyDeleted:
		return deleted
	case WithDeleted:
		return true
	}
	return false
}
