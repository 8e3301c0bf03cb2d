package order

import (
	"time"

	storefrontapp "github.com/eezystore/backend/internal/application/storefront"
	"github.com/eezystore/backend/internal/domain/order"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ==================== Checkout DTOs ====================

// CheckoutPreviewResponse is everything the checkout page needs: the priced
// cart plus the customer's address book
type CheckoutPreviewResponse struct {
	Cart      storefrontapp.CartResponse      `json:"cart"`
	Addresses []storefrontapp.AddressResponse `json:"addresses"`
}

// PlaceOrderRequest represents a request to confirm checkout
type PlaceOrderRequest struct {
	AddressID uuid.UUID `json:"address_id" binding:"required"`
}

// ==================== Order DTOs ====================

// UpdateOrderStatusRequest represents an admin request to advance an order
type UpdateOrderStatusRequest struct {
	Status order.Status `json:"status" binding:"required"`
	// ExpectedStatus guards against racing admins; when set, the transition
	// only applies if the order is still in this status
	ExpectedStatus *order.Status `json:"expected_status"`
}

// RateItemRequest represents a request to rate a delivered order item.
// The 1..5 range is enforced by the domain so out-of-range stars surface
// as INVALID_RATING rather than a generic binding failure.
type RateItemRequest struct {
	Rating int `json:"rating"`
}

// OrderListFilter represents filter options for order lists
type OrderListFilter struct {
	Status   *order.Status `form:"status" binding:"omitempty,oneof=pending shipped delivered"`
	Page     int           `form:"page" binding:"omitempty,min=1"`
	PageSize int           `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// OrderItemResponse represents an order item in API responses
type OrderItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Rating      *int            `json:"rating,omitempty"`
}

// ShippingAddressResponse is the address snapshot captured at checkout
type ShippingAddressResponse struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID          uuid.UUID               `json:"id"`
	CustomerID  uuid.UUID               `json:"customer_id"`
	Address     ShippingAddressResponse `json:"shipping_address"`
	Items       []OrderItemResponse     `json:"items"`
	ItemCount   int                     `json:"item_count"`
	TotalAmount decimal.Decimal         `json:"total_amount"`
	Status      string                  `json:"status"`
	ShippedAt   *time.Time              `json:"shipped_at,omitempty"`
	DeliveredAt *time.Time              `json:"delivered_at,omitempty"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

// OrderListItemResponse represents an order in list responses
type OrderListItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	CustomerID  uuid.UUID       `json:"customer_id"`
	ItemCount   int             `json:"item_count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToOrderItemResponse converts a domain order item to a response DTO
func ToOrderItemResponse(item *order.Item) OrderItemResponse {
	resp := OrderItemResponse{
		ID:          item.ID,
		ProductID:   item.ProductID,
		ProductName: item.ProductName,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		Subtotal:    item.Subtotal,
	}
	if item.IsRated() {
		rating := item.Rating
		resp.Rating = &rating
	}
	return resp
}

// ToOrderResponse converts a domain Order to a response DTO
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i := range o.Items {
		items[i] = ToOrderItemResponse(&o.Items[i])
	}

	return OrderResponse{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		Address: ShippingAddressResponse{
			Name:       o.Address.Name,
			Phone:      o.Address.Phone,
			Street:     o.Address.Street,
			City:       o.Address.City,
			State:      o.Address.State,
			PostalCode: o.Address.PostalCode,
			Country:    o.Address.Country,
		},
		Items:       items,
		ItemCount:   o.ItemCount(),
		TotalAmount: o.TotalAmount,
		Status:      string(o.Status),
		ShippedAt:   o.ShippedAt,
		DeliveredAt: o.DeliveredAt,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

// ToOrderListItemResponse converts a domain Order to a list response DTO
func ToOrderListItemResponse(o *order.Order) OrderListItemResponse {
	return OrderListItemResponse{
		ID:          o.ID,
		CustomerID:  o.CustomerID,
		ItemCount:   o.ItemCount(),
		TotalAmount: o.TotalAmount,
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt,
	}
}

// ToOrderListItemResponses converts a slice of domain Orders to list DTOs
func ToOrderListItemResponses(orders []order.Order) []OrderListItemResponse {
	responses := make([]OrderListItemResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderListItemResponse(&orders[i])
	}
	return responses
}
