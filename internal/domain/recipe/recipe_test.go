package recipe

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bakehouse/internal/core/apperror"
	"bakehouse/internal/core/entity"
	"bakehouse/internal/core/id"
	"bakehouse/internal/domain"
	"bakehouse/internal/domain/scope"
)

type fakeLines struct {
	domain.Repository[*Line] // unused methods panic if called
	byProduct map[id.ID][]*Line
}

func (f *fakeLines) FindByProduct(_ context.Context, sc scope.Scope, productID id.ID) ([]*Line, error) {
	if sc != scope.Default {
		return nil, apperror.NewInvalidScope(string(sc))
	}
	return f.byProduct[productID], nil
}

type fakePrices struct {
	byStockItem map[id.ID][]decimal.Decimal
}

func (f *fakePrices) UnitCosts(_ context.Context, stockItemID id.ID) ([]decimal.Decimal, error) {
	return f.byStockItem[stockItemID], nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func line(productID, stockItemID id.ID, qty string) *Line {
	return &Line{
		BaseEntity:  entity.NewBaseEntity(),
		ProductID:   productID,
		StockItemID: stockItemID,
		Quantity:    dec(qty),
	}
}

func TestUnitCost_PicksCheapestActiveOffer(t *testing.T) {
	productID := id.New()
	flour := id.New()
	butter := id.New()

	lines := &fakeLines{byProduct: map[id.ID][]*Line{
		productID: {
			line(productID, flour, "500"),  // 500 g flour
			line(productID, butter, "250"), // 250 g butter
		},
	}}
	prices := &fakePrices{byStockItem: map[id.ID][]decimal.Decimal{
		flour:  {dec("0.002"), dec("0.0015")}, // per gram; cheapest 0.0015
		butter: {dec("0.01")},
	}}

	costing, err := NewCostService(lines, prices).UnitCost(context.Background(), productID)
	require.NoError(t, err)

	// 500*0.0015 + 250*0.01 = 0.75 + 2.50 = 3.25
	assert.True(t, costing.UnitCost.Equal(dec("3.25")), "got %s", costing.UnitCost)
	require.Len(t, costing.Lines, 2)
	assert.True(t, costing.Lines[0].UnitCost.Equal(dec("0.0015")))
}

func TestUnitCost_EmptyRecipeIsZero(t *testing.T) {
	lines := &fakeLines{byProduct: map[id.ID][]*Line{}}
	prices := &fakePrices{}

	costing, err := NewCostService(lines, prices).UnitCost(context.Background(), id.New())
	require.NoError(t, err)
	assert.True(t, costing.UnitCost.IsZero())
	assert.Empty(t, costing.Lines)
}

func TestUnitCost_MissingPriceFails(t *testing.T) {
	productID := id.New()
	flour := id.New()
	lines := &fakeLines{byProduct: map[id.ID][]*Line{
		productID: {line(productID, flour, "500")},
	}}
	prices := &fakePrices{byStockItem: map[id.ID][]decimal.Decimal{}}

	_, err := NewCostService(lines, prices).UnitCost(context.Background(), productID)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeBusinessRule, appErr.Code)
}

func TestBrandPriceArithmetic_NoFloatDrift(t *testing.T) {
	// 2.50 per 500 g package resolves to exactly 0.005 per gram.
	unit := dec("2.50").Div(dec("500"))
	assert.True(t, unit.Equal(dec("0.005")))
}
