package storefront

import (
	"time"

	"github.com/eezystore/backend/internal/domain/storefront"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ==================== Cart DTOs ====================

// AddCartItemRequest represents a request to add a product to the cart
type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"omitempty,min=1"`
}

// UpdateCartItemRequest represents a request to change a cart line quantity.
// A quantity below 1 removes the line.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartLineResponse is a cart line priced against the current catalog
type CartLineResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	ImageURL    string          `json:"image_url"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// CartResponse represents the customer's cart in API responses
type CartResponse struct {
	ID        uuid.UUID          `json:"id"`
	Lines     []CartLineResponse `json:"lines"`
	ItemCount int                `json:"item_count"`
	Total     decimal.Decimal    `json:"total"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// ==================== Address DTOs ====================

// CreateAddressRequest represents a request to add an address
type CreateAddressRequest struct {
	Name       string `json:"name" binding:"required,min=1,max=120"`
	Phone      string `json:"phone" binding:"required,min=3,max=40"`
	Street     string `json:"street" binding:"required,min=1,max=255"`
	City       string `json:"city" binding:"required,min=1,max=120"`
	State      string `json:"state" binding:"max=120"`
	PostalCode string `json:"postal_code" binding:"max=20"`
	Country    string `json:"country" binding:"required,min=2,max=120"`
	IsDefault  bool   `json:"is_default"`
}

// AddressResponse represents an address in API responses
type AddressResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Street     string    `json:"street"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	PostalCode string    `json:"postal_code"`
	Country    string    `json:"country"`
	IsDefault  bool      `json:"is_default"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToAddressResponse converts a domain Address to a response DTO
func ToAddressResponse(a *storefront.Address) AddressResponse {
	return AddressResponse{
		ID:         a.ID,
		Name:       a.Name,
		Phone:      a.Phone,
		Street:     a.Street,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
		IsDefault:  a.IsDefault,
		CreatedAt:  a.CreatedAt,
	}
}

// ToAddressResponses converts a slice of domain Addresses to response DTOs
func ToAddressResponses(addresses []storefront.Address) []AddressResponse {
	responses := make([]AddressResponse, len(addresses))
	for i := range addresses {
		responses[i] = ToAddressResponse(&addresses[i])
	}
	return responses
}
