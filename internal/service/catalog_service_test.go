package service_test

import (
	"context"
	"testing"

	"fsstock/internal/catalog"
	"fsstock/internal/dto"
	"fsstock/internal/model"
	"fsstock/internal/repository"
	"fsstock/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubUserProductRepo struct {
	products map[uuid.UUID]map[string]*model.UserProduct
}

func newStubUserProductRepo() *stubUserProductRepo {
	return &stubUserProductRepo{products: make(map[uuid.UUID]map[string]*model.UserProduct)}
}

func (r *stubUserProductRepo) Create(_ context.Context, p *model.UserProduct) error {
	if r.products[p.FarmID] == nil {
		r.products[p.FarmID] = make(map[string]*model.UserProduct)
	}
	r.products[p.FarmID][p.ProductID] = p
	return nil
}

func (r *stubUserProductRepo) FindByFarmAndProduct(_ context.Context, farmID uuid.UUID, productID string) (*model.UserProduct, error) {
	p, ok := r.products[farmID][productID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubUserProductRepo) ListByFarm(_ context.Context, farmID uuid.UUID) ([]model.UserProduct, error) {
	out := make([]model.UserProduct, 0, len(r.products[farmID]))
	for _, p := range r.products[farmID] {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubUserProductRepo) Delete(_ context.Context, farmID uuid.UUID, productID string) error {
	delete(r.products[farmID], productID)
	return nil
}

var _ repository.UserProductRepository = (*stubUserProductRepo)(nil)

func newCatalogFixture(t *testing.T) (service.CatalogService, *stubUserProductRepo) {
	t.Helper()
	builtin, err := catalog.Load("../../data/catalog.json")
	require.NoError(t, err)
	repo := newStubUserProductRepo()
	return service.NewCatalogService(builtin, repo), repo
}

func TestCatalogListBuiltinOnly(t *testing.T) {
	svc, _ := newCatalogFixture(t)

	out, err := svc.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Greater(t, len(out), 10)
	for _, p := range out {
		assert.False(t, p.UserDefined)
	}
}

func TestCatalogListMergesFarmProducts(t *testing.T) {
	svc, _ := newCatalogFixture(t)
	ctx := context.Background()
	farmID := uuid.New()

	_, err := svc.CreateUserProduct(ctx, farmID, dto.CreateUserProductRequest{
		ProductID:              "maple_syrup",
		Name:                   "Maple Syrup",
		DefaultMaxPricePer1000: decimal.RequireFromString("9000"),
	})
	require.NoError(t, err)

	out, err := svc.List(ctx, &farmID)
	require.NoError(t, err)

	var found bool
	for _, p := range out {
		if p.ProductID == "maple_syrup" {
			found = true
			assert.True(t, p.UserDefined)
		}
	}
	assert.True(t, found)

	// Another farm does not see it.
	other := uuid.New()
	out, err = svc.List(ctx, &other)
	require.NoError(t, err)
	for _, p := range out {
		assert.NotEqual(t, "maple_syrup", p.ProductID)
	}
}

func TestCreateUserProductRejectsBuiltinCollision(t *testing.T) {
	svc, _ := newCatalogFixture(t)

	_, err := svc.CreateUserProduct(context.Background(), uuid.New(), dto.CreateUserProductRequest{
		ProductID: "milk",
		Name:      "My Milk",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "built-in catalog")
}

func TestCreateUserProductRejectsDuplicate(t *testing.T) {
	svc, _ := newCatalogFixture(t)
	ctx := context.Background()
	farmID := uuid.New()

	req := dto.CreateUserProductRequest{ProductID: "maple_syrup", Name: "Maple Syrup"}
	_, err := svc.CreateUserProduct(ctx, farmID, req)
	require.NoError(t, err)

	_, err = svc.CreateUserProduct(ctx, farmID, req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already defined")
}

func TestResolveChecksBuiltinThenFarm(t *testing.T) {
	svc, _ := newCatalogFixture(t)
	ctx := context.Background()
	farmID := uuid.New()

	name, ok := svc.Resolve(ctx, farmID, "milk")
	assert.True(t, ok)
	assert.NotEmpty(t, name)

	_, ok = svc.Resolve(ctx, farmID, "maple_syrup")
	assert.False(t, ok)

	_, err := svc.CreateUserProduct(ctx, farmID, dto.CreateUserProductRequest{
		ProductID: "maple_syrup",
		Name:      "Maple Syrup",
	})
	require.NoError(t, err)

	name, ok = svc.Resolve(ctx, farmID, "maple_syrup")
	assert.True(t, ok)
	assert.Equal(t, "Maple Syrup", name)
}
