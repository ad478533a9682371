package stockitem

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bakehouse/internal/core/apperror"
	"bakehouse/internal/core/entity"
	"bakehouse/internal/core/id"
	"bakehouse/internal/domain/domaintest"
	"bakehouse/internal/domain/scope"
)

type fakePriceRepo struct {
	*domaintest.FakeRepo[*BrandPrice]
}

func (r *fakePriceRepo) FindByStockItem(_ context.Context, sc scope.Scope, stockItemID id.ID) ([]*BrandPrice, error) {
	var out []*BrandPrice
	for _, p := range r.All() {
		if p.StockItemID == stockItemID && sc.Matches(p.IsDeleted()) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePriceRepo) ExistsActivePair(_ context.Context, stockItemID id.ID, brandID *id.ID, excludeID id.ID) (bool, error) {
	if brandID == nil {
		return false, nil
	}
	for _, p := range r.All() {
		if p.IsDeleted() || p.ID == excludeID || p.StockItemID != stockItemID {
			continue
		}
		if p.BrandID != nil && *p.BrandID == *brandID {
			return true, nil
		}
	}
	return false, nil
}

type fakeMovementRepo struct {
	*domaintest.FakeRepo[*StockMovement]
}

func (r *fakeMovementRepo) FindByStockItem(_ context.Context, sc scope.Scope, stockItemID id.ID) ([]*StockMovement, error) {
	var out []*StockMovement
	for _, m := range r.All() {
		if m.StockItemID == stockItemID && sc.Matches(m.IsDeleted()) {
			out = append(out, m)
		}
	}
	return out, nil
}

type fixture struct {
	svc       *Service
	items     *domaintest.FakeRepo[*StockItem]
	prices    *fakePriceRepo
	movements *fakeMovementRepo
}

func newFixture() *fixture {
	items := domaintest.NewFakeRepo[*StockItem]()
	prices := &fakePriceRepo{domaintest.NewFakeRepo[*BrandPrice]()}
	movements := &fakeMovementRepo{domaintest.NewFakeRepo[*StockMovement]()}
	svc := NewService(items, prices, movements, &domaintest.FakeTxManager{})
	return &fixture{svc: svc, items: items, prices: prices, movements: movements}
}

func seedStockItem(f *fixture) *StockItem {
	flour := New("Wheat flour", UnitKilogram)
	f.items.Seed(flour)
	return flour
}

func offer(stockItemID id.ID, brandID *id.ID) *BrandPrice {
	return &BrandPrice{
		BaseEntity:   entity.NewBaseEntity(),
		StockItemID:  stockItemID,
		BrandID:      brandID,
		PackageSize:  decimal.NewFromInt(25),
		PackagePrice: decimal.RequireFromString("18.50"),
	}
}

func TestAddBrandPrice_RejectsDuplicateActivePair(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	flour := seedStockItem(f)
	brandID := id.New()

	require.NoError(t, f.svc.AddBrandPrice(ctx, offer(flour.ID, &brandID)))

	err := f.svc.AddBrandPrice(ctx, offer(flour.ID, &brandID))
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
}

func TestAddBrandPrice_PairFreeAfterSoftDelete(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	flour := seedStockItem(f)
	brandID := id.New()

	first := offer(flour.ID, &brandID)
	require.NoError(t, f.svc.AddBrandPrice(ctx, first))

	deleted, err := f.svc.Prices().Delete(ctx, first.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	// The deleted row keeps its (stock item, brand) pair without blocking a
	// replacement offer.
	require.NoError(t, f.svc.AddBrandPrice(ctx, offer(flour.ID, &brandID)))

	active, err := f.svc.PricesOf(ctx, scope.Default, flour.ID)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	all, err := f.svc.PricesOf(ctx, scope.WithDeleted, flour.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestAddBrandPrice_NullBrandNeverCollides(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	flour := seedStockItem(f)

	// Two generic offers (no brand) on the same stock item coexist: SET NULL
	// from a brand hard delete must never create a uniqueness deadlock.
	require.NoError(t, f.svc.AddBrandPrice(ctx, offer(flour.ID, nil)))
	require.NoError(t, f.svc.AddBrandPrice(ctx, offer(flour.ID, nil)))
}

func TestAddBrandPrice_RequiresActiveStockItem(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	flour := seedStockItem(f)

	deleted, err := f.svc.Delete(ctx, flour.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	brandID := id.New()
	err = f.svc.AddBrandPrice(ctx, offer(flour.ID, &brandID))
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestDelete_LeavesPricesAndMovementsAlone(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	flour := seedStockItem(f)
	brandID := id.New()

	price := offer(flour.ID, &brandID)
	require.NoError(t, f.svc.AddBrandPrice(ctx, price))

	movement := &StockMovement{
		BaseEntity:  entity.NewBaseEntity(),
		StockItemID: flour.ID,
		Delta:       decimal.NewFromInt(25),
		Reason:      "purchase",
	}
	require.NoError(t, f.svc.RecordMovement(ctx, movement))

	deleted, err := f.svc.Delete(ctx, flour.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	// No cascade: dependents stay active, they just stop resolving through
	// their deleted parent.
	stored, ok := f.prices.Get(price.ID)
	require.True(t, ok)
	assert.False(t, stored.IsDeleted())

	storedMove, ok := f.movements.Get(movement.ID)
	require.True(t, ok)
	assert.False(t, storedMove.IsDeleted())
}

func TestRecordMovement_RequiresActiveStockItem(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	flour := seedStockItem(f)

	_, err := f.svc.Delete(ctx, flour.ID)
	require.NoError(t, err)

	err = f.svc.RecordMovement(ctx, &StockMovement{
		BaseEntity:  entity.NewBaseEntity(),
		StockItemID: flour.ID,
		Delta:       decimal.NewFromInt(5),
		Reason:      "purchase",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestRecordMovement_RejectsZeroDelta(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	flour := seedStockItem(f)

	err := f.svc.RecordMovement(ctx, &StockMovement{
		BaseEntity:  entity.NewBaseEntity(),
		StockItemID: flour.ID,
		Delta:       decimal.Zero,
		Reason:      "noop",
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestBrandPrice_UnitCost(t *testing.T) {
	p := &BrandPrice{
		PackageSize:  decimal.NewFromInt(25),
		PackagePrice: decimal.NewFromInt(50),
	}
	assert.True(t, p.UnitCost().Equal(decimal.NewFromInt(2)))

	empty := &BrandPrice{PackageSize: decimal.Zero}
	assert.True(t, empty.UnitCost().IsZero())
}
