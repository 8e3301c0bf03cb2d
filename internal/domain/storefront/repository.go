package storefront

import (
	"context"

	"github.com/google/uuid"
)

// CartRepository defines persistence operations for carts
type CartRepository interface {
	// FindByCustomer returns the customer's cart with its lines, creating
	// an empty cart row on first access
	FindByCustomer(ctx context.Context, customerID uuid.UUID) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
	// ClearForCustomer drops all lines of the customer's cart
	ClearForCustomer(ctx context.Context, customerID uuid.UUID) error
}

// AddressRepository defines persistence operations for addresses
type AddressRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Address, error)
	// FindByIDForCustomer scopes the lookup to the owning customer
	FindByIDForCustomer(ctx context.Context, customerID, id uuid.UUID) (*Address, error)
	// FindAllForCustomer returns the customer's addresses, default first,
	// newest first within each group
	FindAllForCustomer(ctx context.Context, customerID uuid.UUID) ([]Address, error)
	CountForCustomer(ctx context.Context, customerID uuid.UUID) (int64, error)
	// Save persists the address; when it is flagged default, sibling
	// defaults are cleared in the same transaction
	Save(ctx context.Context, address *Address) error
	// SetDefault re-marks the given address as the customer's default,
	// clearing the prior default atomically
	SetDefault(ctx context.Context, customerID, id uuid.UUID) error
	// Delete removes an address unless an undelivered order references it
	Delete(ctx context.Context, customerID, id uuid.UUID) error
}
