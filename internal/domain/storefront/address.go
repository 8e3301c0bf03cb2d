package storefront

import (
	"time"

	"github.com/eezystore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Address is a customer's saved shipping address. Addresses are append-only:
// an edit is modeled as a new record, never an in-place mutation, so orders
// that captured an address keep an accurate snapshot source.
type Address struct {
	shared.BaseEntity
	CustomerID uuid.UUID
	Name       string
	Phone      string
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
	IsDefault  bool
}

// TableName returns the table name for GORM
func (Address) TableName() string {
	return "addresses"
}

// NewAddress creates a new address for a customer
func NewAddress(customerID uuid.UUID, name, phone, street, city, state, postalCode, country string, isDefault bool) (*Address, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if street == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Street cannot be empty")
	}
	if city == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "City cannot be empty")
	}
	if country == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Country cannot be empty")
	}
	if phone == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Phone cannot be empty")
	}

	return &Address{
		BaseEntity: shared.NewBaseEntity(),
		CustomerID: customerID,
		Name:       name,
		Phone:      phone,
		Street:     street,
		City:       city,
		State:      state,
		PostalCode: postalCode,
		Country:    country,
		IsDefault:  isDefault,
	}, nil
}

// MarkDefault flags this address as the customer's default.
// Clearing the sibling defaults is the repository's job, in the same
// transaction.
func (a *Address) MarkDefault() {
	a.IsDefault = true
	a.UpdatedAt = time.Now()
}

// ClearDefault removes the default flag
func (a *Address) ClearDefault() {
	a.IsDefault = false
	a.UpdatedAt = time.Now()
}

// BelongsTo returns true if the address is owned by the given customer
func (a *Address) BelongsTo(customerID uuid.UUID) bool {
	return a.CustomerID == customerID
}
