package persistence

import (
	"context"
	"errors"

	"github.com/eezystore/backend/internal/domain/storefront"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCartRepository implements CartRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindByCustomer returns the customer's cart with its lines, creating an
// empty cart row on first access
func (r *GormCartRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) (*storefront.Cart, error) {
	var cart storefront.Cart
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("customer_id = ?", customerID).
		First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created, err := storefront.NewCart(customerID)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Create(created).Error; err != nil {
		return nil, err
	}
	return created, nil
}

// Save persists the cart and reconciles its lines: lines removed from the
// aggregate are deleted, the rest are upserted.
func (r *GormCartRepository) Save(ctx context.Context, cart *storefront.Cart) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Save(cart).Error; err != nil {
			return err
		}

		currentLineIDs := make([]uuid.UUID, len(cart.Lines))
		for i, line := range cart.Lines {
			currentLineIDs[i] = line.ID
		}

		if len(currentLineIDs) > 0 {
			if err := tx.Where("cart_id = ? AND id NOT IN ?", cart.ID, currentLineIDs).
				Delete(&storefront.CartLine{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("cart_id = ?", cart.ID).
				Delete(&storefront.CartLine{}).Error; err != nil {
				return err
			}
		}

		for i := range cart.Lines {
			cart.Lines[i].CartID = cart.ID
			if err := tx.Save(&cart.Lines[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// ClearForCustomer drops all lines of the customer's cart
func (r *GormCartRepository) ClearForCustomer(ctx context.Context, customerID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return clearCartLines(tx, customerID)
	})
}

// clearCartLines deletes all lines of the customer's cart within tx.
// Shared with the checkout transaction.
func clearCartLines(tx *gorm.DB, customerID uuid.UUID) error {
	var cart storefront.Cart
	err := tx.Where("customer_id = ?", customerID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return tx.Where("cart_id = ?", cart.ID).Delete(&storefront.CartLine{}).Error
}
