package scope

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bakehouse/internal/core/apperror"
)

func builder() squirrel.SelectBuilder {
	return squirrel.StatementBuilder.
		PlaceholderFormat(squirrel.Dollar).
		Select("id").
		From("orders")
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Scope
		wantErr bool
	}{
		{name: "default", in: "default", want: Default},
		{name: "withDeleted", in: "withDeleted", want: WithDeleted},
		{name: "onlyDeleted", in: "onlyDeleted", want: OnlyDeleted},
		{name: "empty maps to default", in: "", want: Default},
		{name: "unknown", in: "trashed", wantErr: true},
		{name: "case sensitive", in: "WithDeleted", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperror.IsInvalidScope(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApply_SQL(t *testing.T) {
	tests := []struct {
		name    string
		scope   Scope
		wantSQL string
	}{
		{
			name:    "default filters deleted",
			scope:   Default,
			wantSQL: "SELECT id FROM orders WHERE deleted_at IS NULL",
		},
		{
			name:    "onlyDeleted filters active",
			scope:   OnlyDeleted,
			wantSQL: "SELECT id FROM orders WHERE deleted_at IS NOT NULL",
		},
		{
			name:    "withDeleted adds nothing",
			scope:   WithDeleted,
			wantSQL: "SELECT id FROM orders",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := tt.scope.Apply(builder())
			require.NoError(t, err)

			sql, _, err := q.ToSql()
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
		})
	}
}

func TestApply_ComposesWithCallerPredicates(t *testing.T) {
	// Scope predicate must be ANDed with criteria already on the builder.
	q := builder().Where(squirrel.Eq{"order_id": "abc"})
	q, err := Default.Apply(q)
	require.NoError(t, err)

	sql, args, err := q.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM orders WHERE order_id = $1 AND deleted_at IS NULL", sql)
	assert.Equal(t, []any{"abc"}, args)
}

func TestApply_UnknownScope(t *testing.T) {
	_, err := Scope("trashed").Apply(builder())
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidScope(err))
}

func TestApplyAliased(t *testing.T) {
	q := squirrel.StatementBuilder.
		PlaceholderFormat(squirrel.Dollar).
		Select("oi.id").
		From("order_items oi").
		Join("orders o ON o.id = oi.order_id")

	q, err := OnlyDeleted.ApplyAliased(q, "oi")
	require.NoError(t, err)

	sql, _, err := q.ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT oi.id FROM order_items oi JOIN orders o ON o.id = oi.order_id WHERE oi.deleted_at IS NOT NULL",
		sql)
}

func TestMatches_PartitionsRows(t *testing.T) {
	// withDeleted = default ∪ onlyDeleted, with zero overlap.
	for _, deleted := range []bool{false, true} {
		inDefault := Default.Matches(deleted)
		inOnly := OnlyDeleted.Matches(deleted)

		assert.True(t, WithDeleted.Matches(deleted))
		assert.NotEqual(t, inDefault, inOnly, "default and onlyDeleted must not overlap")
		assert.Equal(t, WithDeleted.Matches(deleted), inDefault || inOnly)
	}
}
