package storefront

import (
	"context"
	"testing"

	"github.com/eezystore/backend/internal/domain/catalog"
	"github.com/eezystore/backend/internal/domain/shared"
	"github.com/eezystore/backend/internal/domain/shared/valueobject"
	"github.com/eezystore/backend/internal/domain/storefront"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCartRepository is a mock implementation of CartRepository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) (*storefront.Cart, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storefront.Cart), args.Error(1)
}

func (m *MockCartRepository) Save(ctx context.Context, cart *storefront.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *MockCartRepository) ClearForCustomer(ctx context.Context, customerID uuid.UUID) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

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

// Test helpers
var testCustomerID = uuid.New()

func newTestProduct(name string, price float64) *catalog.Product {
	p, _ := catalog.NewProduct(name, "", valueobject.NewMoneyUSDFromFloat(price), "")
	return p
}

func newTestCart() *storefront.Cart {
	cart, _ := storefront.NewCart(testCustomerID)
	return cart
}

func TestCartService_AddItem(t *testing.T) {
	t.Run("adds a product to an empty cart", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		service := NewCartService(cartRepo, productRepo)
		ctx := context.Background()

		product := newTestProduct("Widget", 19.99)
		cart := newTestCart()

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		cartRepo.On("FindByCustomer", ctx, testCustomerID).Return(cart, nil)
		cartRepo.On("Save", ctx, cart).Return(nil)
		productRepo.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Product{*product}, nil)

		result, err := service.AddItem(ctx, testCustomerID, AddCartItemRequest{ProductID: product.ID, Quantity: 2})

		require.NoError(t, err)
		require.Len(t, result.Lines, 1)
		assert.Equal(t, 2, result.Lines[0].Quantity)
		assert.Equal(t, "Widget", result.Lines[0].ProductName)
		assert.True(t, result.Total.Equal(decimal.NewFromFloat(39.98)))
		cartRepo.AssertExpectations(t)
	})

	t.Run("defaults quantity to one", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		service := NewCartService(cartRepo, productRepo)
		ctx := context.Background()

		product := newTestProduct("Widget", 5)
		cart := newTestCart()

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		cartRepo.On("FindByCustomer", ctx, testCustomerID).Return(cart, nil)
		cartRepo.On("Save", ctx, cart).Return(nil)
		productRepo.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Product{*product}, nil)

		result, err := service.AddItem(ctx, testCustomerID, AddCartItemRequest{ProductID: product.ID})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Lines[0].Quantity)
	})

	t.Run("increments an existing line", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		service := NewCartService(cartRepo, productRepo)
		ctx := context.Background()

		product := newTestProduct("Widget", 5)
		cart := newTestCart()
		_, err := cart.AddProduct(product.ID, 9)
		require.NoError(t, err)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		cartRepo.On("FindByCustomer", ctx, testCustomerID).Return(cart, nil)
		cartRepo.On("Save", ctx, cart).Return(nil)
		productRepo.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Product{*product}, nil)

		// Pushes the line past the cap; the cap only bites at checkout
		result, err := service.AddItem(ctx, testCustomerID, AddCartItemRequest{ProductID: product.ID, Quantity: 3})

		require.NoError(t, err)
		require.Len(t, result.Lines, 1)
		assert.Equal(t, 12, result.Lines[0].Quantity)
	})

	t.Run("rejects an inactive product", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		service := NewCartService(cartRepo, productRepo)
		ctx := context.Background()

		product := newTestProduct("Widget", 5)
		product.Deactivate()

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

		_, err := service.AddItem(ctx, testCustomerID, AddCartItemRequest{ProductID: product.ID, Quantity: 1})

		assert.ErrorIs(t, err, shared.ErrNotFound)
		cartRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown product", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		service := NewCartService(cartRepo, productRepo)
		ctx := context.Background()

		productID := uuid.New()
		productRepo.On("FindByID", ctx, productID).Return(nil, shared.ErrNotFound)

		_, err := service.AddItem(ctx, testCustomerID, AddCartItemRequest{ProductID: productID, Quantity: 1})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestCartService_UpdateItem(t *testing.T) {
	t.Run("sets the quantity", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		service := NewCartService(cartRepo, productRepo)
		ctx := context.Background()

		product := newTestProduct("Widget", 5)
		cart := newTestCart()
		line, err := cart.AddProduct(product.ID, 2)
		require.NoError(t, err)

		cartRepo.On("FindByCustomer", ctx, testCustomerID).Return(cart, nil)
		cartRepo.On("Save", ctx, cart).Return(nil)
		productRepo.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Product{*product}, nil)

		result, err := service.UpdateItem(ctx, testCustomerID, line.ID, UpdateCartItemRequest{Quantity: 7})

		require.NoError(t, err)
		assert.Equal(t, 7, result.Lines[0].Quantity)
	})

	t.Run("quantity below one removes the line", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		service := NewCartService(cartRepo, productRepo)
		ctx := context.Background()

		cart := newTestCart()
		line, err := cart.AddProduct(uuid.New(), 2)
		require.NoError(t, err)

		cartRepo.On("FindByCustomer", ctx, testCustomerID).Return(cart, nil)
		cartRepo.On("Save", ctx, cart).Return(nil)

		result, err := service.UpdateItem(ctx, testCustomerID, line.ID, UpdateCartItemRequest{Quantity: 0})

		require.NoError(t, err)
		assert.Empty(t, result.Lines)
	})

	t.Run("rejects a quantity above the cap", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		service := NewCartService(cartRepo, productRepo)
		ctx := context.Background()

		cart := newTestCart()
		line, err := cart.AddProduct(uuid.New(), 2)
		require.NoError(t, err)

		cartRepo.On("FindByCustomer", ctx, testCustomerID).Return(cart, nil)

		_, err = service.UpdateItem(ctx, testCustomerID, line.ID, UpdateCartItemRequest{Quantity: 11})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "QUANTITY_OUT_OF_RANGE", domainErr.Code)
		cartRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestCartService_RemoveItem(t *testing.T) {
	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)
	service := NewCartService(cartRepo, productRepo)
	ctx := context.Background()

	cart := newTestCart()
	line, err := cart.AddProduct(uuid.New(), 2)
	require.NoError(t, err)

	cartRepo.On("FindByCustomer", ctx, testCustomerID).Return(cart, nil)
	cartRepo.On("Save", ctx, cart).Return(nil)

	result, err := service.RemoveItem(ctx, testCustomerID, line.ID)

	require.NoError(t, err)
	assert.Empty(t, result.Lines)
}

func TestCartService_Get_PricesFromCurrentCatalog(t *testing.T) {
	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)
	service := NewCartService(cartRepo, productRepo)
	ctx := context.Background()

	product := newTestProduct("Widget", 10)
	require.NoError(t, product.UpdatePrice(valueobject.NewMoneyUSDFromFloat(12.50)))

	cart := newTestCart()
	_, err := cart.AddProduct(product.ID, 2)
	require.NoError(t, err)

	cartRepo.On("FindByCustomer", ctx, testCustomerID).Return(cart, nil)
	productRepo.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Product{*product}, nil)

	result, err := service.Get(ctx, testCustomerID)

	require.NoError(t, err)
	assert.True(t, result.Lines[0].UnitPrice.Equal(decimal.NewFromFloat(12.50)))
	assert.True(t, result.Total.Equal(decimal.NewFromFloat(25.00)))
}

func TestCartService_Clear(t *testing.T) {
	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)
	service := NewCartService(cartRepo, productRepo)
	ctx := context.Background()

	cartRepo.On("ClearForCustomer", ctx, testCustomerID).Return(nil)

	assert.NoError(t, service.Clear(ctx, testCustomerID))
	cartRepo.AssertExpectations(t)
}
