package handler

import (
	"context"
	"net/http"
	"testing"

	catalogapp "github.com/eezystore/backend/internal/application/catalog"
	"github.com/eezystore/backend/internal/domain/catalog"
	"github.com/eezystore/backend/internal/domain/shared"
	"github.com/eezystore/backend/internal/domain/shared/valueobject"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository implements catalog.ProductRepository for testing
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
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindActive(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
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

func productFixture(t *testing.T, name string, price string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, "", valueobject.NewMoneyUSD(decimal.RequireFromString(price)), "")
	require.NoError(t, err)
	return p
}

func newProductTestRouter(repo *MockProductRepository) *gin.Engine {
	h := NewProductHandler(catalogapp.NewProductService(repo))
	router := gin.New()
	router.GET("/products", h.List)
	router.GET("/products/:id", h.GetByID)
	return router
}

func TestProductHandler_List(t *testing.T) {
	repo := new(MockProductRepository)
	repo.On("FindActive", mock.Anything, mock.Anything).
		Return([]catalog.Product{*productFixture(t, "Travel Mug", "19.99")}, nil)
	repo.On("CountActive", mock.Anything, mock.Anything).Return(int64(1), nil)

	rec := performRequest(newProductTestRouter(repo), http.MethodGet, "/products?page=1&page_size=20", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(1), resp.Meta.Total)
	repo.AssertExpectations(t)
}

func TestProductHandler_List_InvalidPageSize(t *testing.T) {
	repo := new(MockProductRepository)

	rec := performRequest(newProductTestRouter(repo), http.MethodGet, "/products?page_size=500", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductHandler_GetByID(t *testing.T) {
	product := productFixture(t, "Travel Mug", "19.99")

	repo := new(MockProductRepository)
	repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)

	rec := performRequest(newProductTestRouter(repo), http.MethodGet, "/products/"+product.ID.String(), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "Travel Mug", data["name"])
}

func TestProductHandler_GetByID_RetiredIsHidden(t *testing.T) {
	product := productFixture(t, "Travel Mug", "19.99")
	product.Deactivate()

	repo := new(MockProductRepository)
	repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)

	rec := performRequest(newProductTestRouter(repo), http.MethodGet, "/products/"+product.ID.String(), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductHandler_GetByID_InvalidID(t *testing.T) {
	repo := new(MockProductRepository)

	rec := performRequest(newProductTestRouter(repo), http.MethodGet, "/products/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "ERR_BAD_REQUEST", errorCode(t, rec))
}

func TestProductHandler_GetByID_NotFound(t *testing.T) {
	repo := new(MockProductRepository)
	repo.On("FindByID", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

	rec := performRequest(newProductTestRouter(repo), http.MethodGet, "/products/"+uuid.NewString(), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, rec))
}
