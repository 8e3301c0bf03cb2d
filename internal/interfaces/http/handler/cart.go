package handler

import (
	storefrontapp "github.com/eezystore/backend/internal/application/storefront"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CartHandler handles shopping cart endpoints. Every route operates on the
// authenticated customer's own cart.
type CartHandler struct {
	BaseHandler
	cartService *storefrontapp.CartService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *storefrontapp.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Get returns the customer's cart priced against the current catalog
func (h *CartHandler) Get(c *gin.Context) {
	customerID, err := getCustomerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	cart, err := h.cartService.Get(c.Request.Context(), customerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, cart)
}

// AddItem puts a product into the cart. Adding a product that is already
// there increments its line.
func (h *CartHandler) AddItem(c *gin.Context) {
	customerID, err := getCustomerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req storefrontapp.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	cart, err := h.cartService.AddItem(c.Request.Context(), customerID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, cart)
}

// UpdateItem sets a cart line's quantity. A quantity below 1 removes the line.
func (h *CartHandler) UpdateItem(c *gin.Context) {
	customerID, err := getCustomerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	lineID, err := uuid.Parse(c.Param("lineId"))
	if err != nil {
		h.BadRequest(c, "Invalid cart line ID format")
		return
	}

	var req storefrontapp.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	cart, err := h.cartService.UpdateItem(c.Request.Context(), customerID, lineID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, cart)
}

// RemoveItem removes a cart line. Removing an absent line succeeds.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	customerID, err := getCustomerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	lineID, err := uuid.Parse(c.Param("lineId"))
	if err != nil {
		h.BadRequest(c, "Invalid cart line ID format")
		return
	}

	cart, err := h.cartService.RemoveItem(c.Request.Context(), customerID, lineID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, cart)
}

// Clear empties the customer's cart
func (h *CartHandler) Clear(c *gin.Context) {
	customerID, err := getCustomerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.cartService.Clear(c.Request.Context(), customerID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
