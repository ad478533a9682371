package entity_repo

import (
	"bakehouse/internal/domain/catalog/brand"
	"bakehouse/internal/infrastructure/storage/postgres"
)

const brandTable = "brands"

var _ brand.Repository = (*BrandRepo)(nil)

// BrandRepo implements brand.Repository.
type BrandRepo struct {
	*BaseRepo[*brand.Brand]
}

// NewBrandRepo creates a new brand repository.
func NewBrandRepo(txm *postgres.TxManager) *BrandRepo {
	return &BrandRepo{
		BaseRepo: NewBaseRepo(txm, BaseRepoConfig[*brand.Brand]{
			TableName:      brandTable,
			SelectCols:     postgres.ExtractDBColumns[brand.Brand](),
			SearchCols:     []string{"name"},
			DefaultOrderBy: "name ASC",
			New:            func() *brand.Brand { return &brand.Brand{} },
		}),
	}
}
