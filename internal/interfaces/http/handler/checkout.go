package handler

import (
	orderapp "github.com/eezystore/backend/internal/application/order"
	"github.com/gin-gonic/gin"
)

// CheckoutHandler handles the checkout flow
type CheckoutHandler struct {
	BaseHandler
	checkoutService *orderapp.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService *orderapp.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// Preview assembles the checkout page: the priced cart plus the customer's
// address book. An empty cart is rejected.
func (h *CheckoutHandler) Preview(c *gin.Context) {
	customerID, err := getCustomerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	preview, err := h.checkoutService.Preview(c.Request.Context(), customerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, preview)
}

// PlaceOrder confirms checkout. The cart is re-validated, the selected
// address and current catalog prices are snapshotted into a pending order,
// and the cart is cleared.
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	customerID, err := getCustomerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req orderapp.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	order, err := h.checkoutService.PlaceOrder(c.Request.Context(), customerID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, order)
}
