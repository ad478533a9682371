package product

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bakehouse/internal/core/apperror"
	"bakehouse/internal/core/id"
	"bakehouse/internal/domain"
	"bakehouse/internal/domain/domaintest"
	"bakehouse/internal/domain/scope"
)

type fakeProductRepo struct {
	*domaintest.FakeRepo[*Product]
}

func (r *fakeProductRepo) FindBySKU(_ context.Context, sc scope.Scope, sku string) (*Product, error) {
	for _, p := range r.All() {
		if p.SKU == sku && sc.Matches(p.IsDeleted()) {
			return p, nil
		}
	}
	return nil, apperror.NewNotFound("product", sku)
}

func (r *fakeProductRepo) ExistsActiveBySKU(_ context.Context, sku string, excludeID id.ID) (bool, error) {
	for _, p := range r.All() {
		if p.SKU == sku && !p.IsDeleted() && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func newTestService() (*Service, *fakeProductRepo) {
	repo := &fakeProductRepo{domaintest.NewFakeRepo[*Product]()}
	return NewService(repo, &domaintest.FakeTxManager{}), repo
}

func sourdough() *Product {
	return New("BRD-001", "Sourdough Loaf", CategoryBread, decimal.RequireFromString("6.50"))
}

func TestCreate_RejectsDuplicateActiveSKU(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, sourdough()))

	err := svc.Create(ctx, sourdough())
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
}

func TestCreate_SKUFreeAfterSoftDelete(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	first := sourdough()
	require.NoError(t, svc.Create(ctx, first))

	ok, err := svc.Delete(ctx, first.ID)
	require.NoError(t, err)
	require.True(t, ok)

	// The SKU is unique among active rows only, so a deleted row does not
	// block a new one.
	second := sourdough()
	require.NoError(t, svc.Create(ctx, second))

	// Both rows coexist: one active, one deleted.
	active, err := repo.FindBySKU(ctx, scope.Default, "BRD-001")
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)

	deleted, err := repo.FindBySKU(ctx, scope.OnlyDeleted, "BRD-001")
	require.NoError(t, err)
	assert.Equal(t, first.ID, deleted.ID)
}

func TestCreate_ValidationFailsBeforeAnyWrite(t *testing.T) {
	svc, repo := newTestService()

	bad := sourdough()
	bad.SKU = ""
	err := svc.Create(context.Background(), bad)
	require.Error(t, err)
	assert.Empty(t, repo.All())
}

func TestUpdate_OwnSKUIsNotADuplicate(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	p := sourdough()
	require.NoError(t, svc.Create(ctx, p))

	p.Name = "Country Sourdough"
	require.NoError(t, svc.Update(ctx, p))

	got, err := svc.GetByID(ctx, scope.Default, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Country Sourdough", got.Name)
}

func TestUpdate_RejectsTakingAnotherActiveSKU(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	first := sourdough()
	require.NoError(t, svc.Create(ctx, first))

	other := New("BRD-002", "Rye Loaf", CategoryBread, decimal.RequireFromString("5.00"))
	require.NoError(t, svc.Create(ctx, other))

	other.SKU = "BRD-001"
	err := svc.Update(ctx, other)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
}

func TestDelete_HidesFromDefaultScope(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	p := sourdough()
	require.NoError(t, svc.Create(ctx, p))

	ok, err := svc.Delete(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = svc.GetByID(ctx, scope.Default, p.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))

	got, err := svc.GetByID(ctx, scope.WithDeleted, p.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.DeletedAt)
}

func TestRestore_ActiveProductIsNoOpWithoutWrite(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	p := sourdough()
	require.NoError(t, svc.Create(ctx, p))

	got, err := svc.Restore(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Zero(t, repo.RestoreCalls)
}

func TestRestore_MissingProductReturnsNil(t *testing.T) {
	svc, _ := newTestService()

	got, err := svc.Restore(context.Background(), id.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestList_ScopePartitionsRows(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	active := sourdough()
	require.NoError(t, svc.Create(ctx, active))

	gone := New("BRD-002", "Rye Loaf", CategoryBread, decimal.RequireFromString("5.00"))
	require.NoError(t, svc.Create(ctx, gone))
	_, err := svc.Delete(ctx, gone.ID)
	require.NoError(t, err)

	cases := []struct {
		sc   scope.Scope
		want int
	}{
		{scope.Default, 1},
		{scope.OnlyDeleted, 1},
		{scope.WithDeleted, 2},
	}
	for _, tc := range cases {
		filter := domain.DefaultListFilter()
		filter.Scope = tc.sc
		res, err := svc.List(ctx, filter)
		require.NoError(t, err)
		assert.Len(t, res.Items, tc.want, "scope %s", tc.sc)
	}
}

func TestList_UnknownScopeRejected(t *testing.T) {
	svc, _ := newTestService()

	filter := domain.DefaultListFilter()
	filter.Scope = scope.Scope("active")
	_, err := svc.List(context.Background(), filter)
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidScope(err))
}
