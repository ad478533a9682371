package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"bakehouse/internal/core/entity"
	"bakehouse/internal/core/id"
)

type mockEntity struct {
	entity.BaseEntity
	SKU  string `db:"sku" json:"sku"`
	Name string `db:"name" json:"name"`

	internal string //nolint:unused // untagged fields must be skipped
}

func TestExtractDBColumns_IncludesEmbeddedFields(t *testing.T) {
	cols := ExtractDBColumns[mockEntity]()

	expectedCols := []string{
		"id", "deleted_at", "version", "created_at", "updated_at", "sku", "name",
	}

	for _, expected := range expectedCols {
		assert.Contains(t, cols, expected)
	}
	assert.Len(t, cols, len(expectedCols), "untagged fields must not leak into columns")
}

func TestExtractDBColumns_PointerType(t *testing.T) {
	assert.Equal(t, ExtractDBColumns[mockEntity](), ExtractDBColumns[*mockEntity]())
}

func TestStructToMap_EmbeddedAndDeletedAt(t *testing.T) {
	now := time.Now().UTC()
	e := mockEntity{
		BaseEntity: entity.BaseEntity{
			ID:        id.New(),
			DeletedAt: &now,
			Version:   5,
			CreatedAt: now,
			UpdatedAt: now,
		},
		SKU:  "BRD-001",
		Name: "Sourdough Loaf",
	}

	m := StructToMap(e)

	assert.Equal(t, e.ID, m["id"])
	assert.Equal(t, &now, m["deleted_at"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, "BRD-001", m["sku"])
	assert.Equal(t, "Sourdough Loaf", m["name"])
}

func TestStructToMap_ActiveRowHasNilDeletedAt(t *testing.T) {
	e := mockEntity{BaseEntity: entity.NewBaseEntity(), SKU: "X", Name: "Y"}

	m := StructToMap(&e)

	v, ok := m["deleted_at"]
	assert.True(t, ok, "deleted_at column must be present even when NULL")
	assert.Equal(t, (*time.Time)(nil), v)
}
