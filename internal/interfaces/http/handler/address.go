package handler

import (
	storefrontapp "github.com/eezystore/backend/internal/application/storefront"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AddressHandler handles the customer's address book
type AddressHandler struct {
	BaseHandler
	addressService *storefrontapp.AddressService
}

// NewAddressHandler creates a new AddressHandler
func NewAddressHandler(addressService *storefrontapp.AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService}
}

// Create adds an address. The first address a customer saves becomes their
// default regardless of the request flag.
func (h *AddressHandler) Create(c *gin.Context) {
	customerID, err := getCustomerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req storefrontapp.CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	address, err := h.addressService.Create(c.Request.Context(), customerID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, address)
}

// List returns the customer's addresses, default first
func (h *AddressHandler) List(c *gin.Context) {
	customerID, err := getCustomerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addresses, err := h.addressService.List(c.Request.Context(), customerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, addresses)
}

// GetByID returns one of the customer's addresses
func (h *AddressHandler) GetByID(c *gin.Context) {
	customerID, err := getCustomerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid address ID format")
		return
	}

	address, err := h.addressService.GetByID(c.Request.Context(), customerID, addressID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, address)
}

// SetDefault marks an address as the customer's default shipping address
func (h *AddressHandler) SetDefault(c *gin.Context) {
	customerID, err := getCustomerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid address ID format")
		return
	}

	if err := h.addressService.SetDefault(c.Request.Context(), customerID, addressID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Delete removes an address. An address still referenced by an undelivered
// order cannot be deleted.
func (h *AddressHandler) Delete(c *gin.Context) {
	customerID, err := getCustomerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid address ID format")
		return
	}

	if err := h.addressService.Delete(c.Request.Context(), customerID, addressID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
