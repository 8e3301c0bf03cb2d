package catalog

import (
	"context"
	"testing"

	"github.com/eezystore/backend/internal/domain/catalog"
	"github.com/eezystore/backend/internal/domain/shared"
	"github.com/eezystore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindActive(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountActive(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func newStoredProduct(name string, price float64) *catalog.Product {
	p, _ := catalog.NewProduct(name, "", valueobject.NewMoneyUSDFromFloat(price), "")
	return p
}

func TestProductService_Create(t *testing.T) {
	t.Run("creates a product", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)
		ctx := context.Background()

		repo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		result, err := service.Create(ctx, CreateProductRequest{
			Name:  "Widget",
			Price: decimal.NewFromFloat(19.99),
		})

		require.NoError(t, err)
		assert.Equal(t, "Widget", result.Name)
		assert.True(t, result.Active)
		repo.AssertExpectations(t)
	})

	t.Run("rejects a negative price", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)
		ctx := context.Background()

		_, err := service.Create(ctx, CreateProductRequest{
			Name:  "Widget",
			Price: decimal.NewFromInt(-1),
		})

		assert.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestProductService_Update(t *testing.T) {
	repo := new(MockProductRepository)
	service := NewProductService(repo)
	ctx := context.Background()

	product := newStoredProduct("Widget", 10)
	repo.On("FindByID", ctx, product.ID).Return(product, nil)
	repo.On("Save", ctx, product).Return(nil)

	newName := "Gadget"
	newPrice := decimal.NewFromFloat(12.50)
	inactive := false
	result, err := service.Update(ctx, product.ID, UpdateProductRequest{
		Name:   &newName,
		Price:  &newPrice,
		Active: &inactive,
	})

	require.NoError(t, err)
	assert.Equal(t, "Gadget", result.Name)
	assert.True(t, result.Price.Equal(newPrice))
	assert.False(t, result.Active)
}

func TestProductService_Delete_Retires(t *testing.T) {
	repo := new(MockProductRepository)
	service := NewProductService(repo)
	ctx := context.Background()

	product := newStoredProduct("Widget", 10)
	repo.On("FindByID", ctx, product.ID).Return(product, nil)
	repo.On("Save", ctx, product).Return(nil)

	require.NoError(t, service.Delete(ctx, product.ID))
	assert.False(t, product.Active)
}

func TestProductService_GetActiveByID(t *testing.T) {
	repo := new(MockProductRepository)
	service := NewProductService(repo)
	ctx := context.Background()

	product := newStoredProduct("Widget", 10)
	product.Deactivate()
	repo.On("FindByID", ctx, product.ID).Return(product, nil)

	_, err := service.GetActiveByID(ctx, product.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestProductService_List(t *testing.T) {
	repo := new(MockProductRepository)
	service := NewProductService(repo)
	ctx := context.Background()

	products := []catalog.Product{*newStoredProduct("Widget", 10)}
	repo.On("FindActive", ctx, mock.Anything).Return(products, nil)
	repo.On("CountActive", ctx, mock.Anything).Return(int64(1), nil)

	result, err := service.List(ctx, ProductListFilter{})

	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
	assert.Len(t, result.Items, 1)
}
