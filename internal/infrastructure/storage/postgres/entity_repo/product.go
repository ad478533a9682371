package entity_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"bakehouse/internal/core/id"
	"bakehouse/internal/domain/catalog/product"
	"bakehouse/internal/domain/scope"
	"bakehouse/internal/infrastructure/storage/postgres"
)

const productTable = "products"

// Compile-time check.
var _ product.Repository = (*ProductRepo)(nil)

// ProductRepo implements product.Repository.
type ProductRepo struct {
	*BaseRepo[*product.Product]
}

// NewProductRepo creates a new product repository.
func NewProductRepo(txm *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		BaseRepo: NewBaseRepo(txm, BaseRepoConfig[*product.Product]{
			TableName:      productTable,
			SelectCols:     postgres.ExtractDBColumns[product.Product](),
			SearchCols:     []string{"name", "sku"},
			DefaultOrderBy: "name ASC",
			New:            func() *product.Product { return &product.Product{} },
		}),
	}
}

// FindBySKU retrieves a product by SKU under the given scope.
func (r *ProductRepo) FindBySKU(ctx context.Context, sc scope.Scope, sku string) (*product.Product, error) {
	return r.FindOne(ctx, sc, squirrel.Eq{"sku": sku})
}

// ExistsActiveBySKU reports whether an active product with the SKU exists,
// excluding the given ID.
func (r *ProductRepo) ExistsActiveBySKU(ctx context.Context, sku string, excludeID id.ID) (bool, error) {
	return r.ExistsActive(ctx, squirrel.Eq{"sku": sku}, excludeID)
}
