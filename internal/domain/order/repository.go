package order

import (
	"context"

	"github.com/eezystore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines persistence operations for orders
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	// FindByIDForCustomer scopes the lookup to the owning customer
	FindByIDForCustomer(ctx context.Context, customerID, id uuid.UUID) (*Order, error)
	// FindAllForCustomer returns the customer's orders, newest first
	FindAllForCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Order, error)
	CountForCustomer(ctx context.Context, customerID uuid.UUID) (int64, error)
	// FindAll returns orders across all customers, optionally filtered by
	// status, newest first
	FindAll(ctx context.Context, status *Status, filter shared.Filter) ([]Order, error)
	Count(ctx context.Context, status *Status) (int64, error)

	// Create persists a new order with its items and clears the customer's
	// cart in the same transaction
	Create(ctx context.Context, o *Order) error

	// UpdateStatus applies a status transition keyed on the expected current
	// status. Returns ErrConcurrencyConflict when the order moved on
	// between read and write.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status) error

	// RateItem writes a rating conditioned on the item being unrated, and
	// folds the stars into the product's denormalized rating aggregate in
	// the same transaction. Returns ALREADY_RATED when a concurrent rater won.
	RateItem(ctx context.Context, itemID uuid.UUID, stars int) error

	// ExistsUndeliveredForAddress reports whether any order that has not yet
	// been delivered references the given address snapshot
	ExistsUndeliveredForAddress(ctx context.Context, addressID uuid.UUID) (bool, error)
}
