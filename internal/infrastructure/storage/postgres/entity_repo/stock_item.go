package entity_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"bakehouse/internal/core/id"
	"bakehouse/internal/domain/catalog/stockitem"
	"bakehouse/internal/domain/scope"
	"bakehouse/internal/infrastructure/storage/postgres"
)

const (
	stockItemTable  = "stock_items"
	brandPriceTable = "stock_item_brand_prices"
	movementTable   = "stock_movements"
)

var (
	_ stockitem.Repository           = (*StockItemRepo)(nil)
	_ stockitem.BrandPriceRepository = (*BrandPriceRepo)(nil)
	_ stockitem.MovementRepository   = (*MovementRepo)(nil)
)

// StockItemRepo implements stockitem.Repository.
type StockItemRepo struct {
	*BaseRepo[*stockitem.StockItem]
}

// NewStockItemRepo creates a new stock item repository.
func NewStockItemRepo(txm *postgres.TxManager) *StockItemRepo {
	return &StockItemRepo{
		BaseRepo: NewBaseRepo(txm, BaseRepoConfig[*stockitem.StockItem]{
			TableName:      stockItemTable,
			SelectCols:     postgres.ExtractDBColumns[stockitem.StockItem](),
			SearchCols:     []string{"name"},
			DefaultOrderBy: "name ASC",
			New:            func() *stockitem.StockItem { return &stockitem.StockItem{} },
		}),
	}
}

// BrandPriceRepo implements stockitem.BrandPriceRepository.
type BrandPriceRepo struct {
	*BaseRepo[*stockitem.BrandPrice]
}

// NewBrandPriceRepo creates a new brand price repository.
func NewBrandPriceRepo(txm *postgres.TxManager) *BrandPriceRepo {
	return &BrandPriceRepo{
		BaseRepo: NewBaseRepo(txm, BaseRepoConfig[*stockitem.BrandPrice]{
			TableName:  brandPriceTable,
			SelectCols: postgres.ExtractDBColumns[stockitem.BrandPrice](),
			New:        func() *stockitem.BrandPrice { return &stockitem.BrandPrice{} },
		}),
	}
}

// FindByStockItem retrieves all brand prices for a stock item under the scope.
func (r *BrandPriceRepo) FindByStockItem(ctx context.Context, sc scope.Scope, stockItemID id.ID) ([]*stockitem.BrandPrice, error) {
	return r.SelectWhere(ctx, sc, squirrel.Eq{"stock_item_id": stockItemID})
}

// ExistsActivePair reports whether an active price row for the
// (stock item, brand) pair exists, excluding the given ID. A NULL brand
// (brand hard-deleted, SET NULL) never collides.
func (r *BrandPriceRepo) ExistsActivePair(ctx context.Context, stockItemID id.ID, brandID *id.ID, excludeID id.ID) (bool, error) {
	if brandID == nil {
		return false, nil
	}
	return r.ExistsActive(ctx, squirrel.Eq{
		"stock_item_id": stockItemID,
		"brand_id":      *brandID,
	}, excludeID)
}

// MovementRepo implements stockitem.MovementRepository.
type MovementRepo struct {
	*BaseRepo[*stockitem.StockMovement]
}

// NewMovementRepo creates a new stock movement repository.
func NewMovementRepo(txm *postgres.TxManager) *MovementRepo {
	return &MovementRepo{
		BaseRepo: NewBaseRepo(txm, BaseRepoConfig[*stockitem.StockMovement]{
			TableName:  movementTable,
			SelectCols: postgres.ExtractDBColumns[stockitem.StockMovement](),
			New:        func() *stockitem.StockMovement { return &stockitem.StockMovement{} },
		}),
	}
}

// FindByStockItem retrieves movements for a stock item under the scope.
func (r *MovementRepo) FindByStockItem(ctx context.Context, sc scope.Scope, stockItemID id.ID) ([]*stockitem.StockMovement, error) {
	return r.SelectWhere(ctx, sc, squirrel.Eq{"stock_item_id": stockItemID})
}
