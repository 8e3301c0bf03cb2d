package handler

import (
	"net/http"
	"testing"

	orderapp "github.com/eezystore/backend/internal/application/order"
	storefrontapp "github.com/eezystore/backend/internal/application/storefront"
	"github.com/eezystore/backend/internal/domain/catalog"
	"github.com/eezystore/backend/internal/domain/order"
	"github.com/eezystore/backend/internal/domain/shared"
	"github.com/eezystore/backend/internal/domain/storefront"
	"github.com/eezystore/backend/internal/infrastructure/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type checkoutTestDeps struct {
	cartRepo    *MockCartRepository
	addressRepo *MockAddressRepository
	productRepo *MockProductRepository
	orderRepo   *MockOrderRepository
}

func newCheckoutTestRouter(customerID uuid.UUID) (*gin.Engine, checkoutTestDeps) {
	deps := checkoutTestDeps{
		cartRepo:    new(MockCartRepository),
		addressRepo: new(MockAddressRepository),
		productRepo: new(MockProductRepository),
		orderRepo:   new(MockOrderRepository),
	}
	cartService := storefrontapp.NewCartService(deps.cartRepo, deps.productRepo)
	h := NewCheckoutHandler(orderapp.NewCheckoutService(
		cartService, deps.cartRepo, deps.addressRepo, deps.productRepo, deps.orderRepo))

	router := gin.New()
	router.Use(asUser(customerID, auth.RoleCustomer))
	router.GET("/checkout", h.Preview)
	router.POST("/checkout/place-order", h.PlaceOrder)
	return router, deps
}

func TestCheckoutHandler_Preview(t *testing.T) {
	customerID := uuid.New()
	product := productFixture(t, "Desk Lamp", "34.50")
	cart := cartFixture(t, customerID)
	_, err := cart.AddProduct(product.ID, 2)
	require.NoError(t, err)

	router, deps := newCheckoutTestRouter(customerID)
	deps.cartRepo.On("FindByCustomer", mock.Anything, customerID).Return(cart, nil)
	deps.productRepo.On("FindByIDs", mock.Anything, []uuid.UUID{product.ID}).
		Return([]catalog.Product{*product}, nil)
	deps.addressRepo.On("FindAllForCustomer", mock.Anything, customerID).
		Return([]storefront.Address{*addressFixture(t, customerID, true)}, nil)

	rec := performRequest(router, http.MethodGet, "/checkout", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]interface{})
	assert.NotNil(t, data["cart"])
	assert.Len(t, data["addresses"], 1)
}

func TestCheckoutHandler_Preview_EmptyCart(t *testing.T) {
	customerID := uuid.New()
	cart := cartFixture(t, customerID)

	router, deps := newCheckoutTestRouter(customerID)
	deps.cartRepo.On("FindByCustomer", mock.Anything, customerID).Return(cart, nil)

	rec := performRequest(router, http.MethodGet, "/checkout", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "EMPTY_CART", errorCode(t, rec))
	deps.addressRepo.AssertNotCalled(t, "FindAllForCustomer")
}

func TestCheckoutHandler_PlaceOrder(t *testing.T) {
	customerID := uuid.New()
	product := productFixture(t, "Desk Lamp", "34.50")
	address := addressFixture(t, customerID, true)
	cart := cartFixture(t, customerID)
	_, err := cart.AddProduct(product.ID, 2)
	require.NoError(t, err)

	router, deps := newCheckoutTestRouter(customerID)
	deps.cartRepo.On("FindByCustomer", mock.Anything, customerID).Return(cart, nil)
	deps.addressRepo.On("FindByIDForCustomer", mock.Anything, customerID, address.ID).Return(address, nil)
	deps.productRepo.On("FindByIDs", mock.Anything, []uuid.UUID{product.ID}).
		Return([]catalog.Product{*product}, nil)
	deps.orderRepo.On("Create", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
		return o.CustomerID == customerID &&
			o.Status == order.StatusPending &&
			o.TotalAmount.Equal(decimal.RequireFromString("69")) &&
			len(o.Items) == 1
	})).Return(nil)

	rec := performRequest(router, http.MethodPost, "/checkout/place-order",
		orderapp.PlaceOrderRequest{AddressID: address.ID})

	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "pending", data["status"])
	deps.orderRepo.AssertExpectations(t)
}

func TestCheckoutHandler_PlaceOrder_EmptyCart(t *testing.T) {
	customerID := uuid.New()
	cart := cartFixture(t, customerID)

	router, deps := newCheckoutTestRouter(customerID)
	deps.cartRepo.On("FindByCustomer", mock.Anything, customerID).Return(cart, nil)

	rec := performRequest(router, http.MethodPost, "/checkout/place-order",
		orderapp.PlaceOrderRequest{AddressID: uuid.New()})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "EMPTY_CART", errorCode(t, rec))
	deps.orderRepo.AssertNotCalled(t, "Create")
}

func TestCheckoutHandler_PlaceOrder_AddressNotOwned(t *testing.T) {
	customerID := uuid.New()
	product := productFixture(t, "Desk Lamp", "34.50")
	cart := cartFixture(t, customerID)
	_, err := cart.AddProduct(product.ID, 1)
	require.NoError(t, err)

	router, deps := newCheckoutTestRouter(customerID)
	deps.cartRepo.On("FindByCustomer", mock.Anything, customerID).Return(cart, nil)
	deps.addressRepo.On("FindByIDForCustomer", mock.Anything, customerID, mock.Anything).
		Return(nil, shared.ErrNotFound)

	rec := performRequest(router, http.MethodPost, "/checkout/place-order",
		orderapp.PlaceOrderRequest{AddressID: uuid.New()})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "INVALID_ADDRESS", errorCode(t, rec))
	deps.orderRepo.AssertNotCalled(t, "Create")
}

func TestCheckoutHandler_PlaceOrder_MissingAddress(t *testing.T) {
	customerID := uuid.New()
	router, _ := newCheckoutTestRouter(customerID)

	rec := performRequest(router, http.MethodPost, "/checkout/place-order", gin.H{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "ERR_VALIDATION", errorCode(t, rec))
}
