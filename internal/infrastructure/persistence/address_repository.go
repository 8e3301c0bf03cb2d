package persistence

import (
	"context"
	"errors"

	"github.com/eezystore/backend/internal/domain/order"
	"github.com/eezystore/backend/internal/domain/shared"
	"github.com/eezystore/backend/internal/domain/storefront"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAddressRepository implements AddressRepository using GORM
type GormAddressRepository struct {
	db *gorm.DB
}

// NewGormAddressRepository creates a new GormAddressRepository
func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// FindByID finds an address by its ID
func (r *GormAddressRepository) FindByID(ctx context.Context, id uuid.UUID) (*storefront.Address, error) {
	var address storefront.Address
	if err := r.db.WithContext(ctx).First(&address, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &address, nil
}

// FindByIDForCustomer finds an address scoped to the owning customer
func (r *GormAddressRepository) FindByIDForCustomer(ctx context.Context, customerID, id uuid.UUID) (*storefront.Address, error) {
	var address storefront.Address
	if err := r.db.WithContext(ctx).
		Where("customer_id = ? AND id = ?", customerID, id).
		First(&address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &address, nil
}

// FindAllForCustomer returns the customer's addresses, default first,
// newest first within each group
func (r *GormAddressRepository) FindAllForCustomer(ctx context.Context, customerID uuid.UUID) ([]storefront.Address, error) {
	var addresses []storefront.Address
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("is_default DESC, created_at DESC").
		Find(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}

// CountForCustomer counts the customer's addresses
func (r *GormAddressRepository) CountForCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&storefront.Address{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save persists the address. When it is flagged default, sibling defaults
// are cleared in the same transaction.
func (r *GormAddressRepository) Save(ctx context.Context, address *storefront.Address) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if address.IsDefault {
			if err := tx.Model(&storefront.Address{}).
				Where("customer_id = ? AND id <> ?", address.CustomerID, address.ID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Save(address).Error
	})
}

// SetDefault re-marks the given address as the customer's default,
// clearing the prior default atomically
func (r *GormAddressRepository) SetDefault(ctx context.Context, customerID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&storefront.Address{}).
			Where("customer_id = ? AND id = ?", customerID, id).
			Update("is_default", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}

		return tx.Model(&storefront.Address{}).
			Where("customer_id = ? AND id <> ?", customerID, id).
			Update("is_default", false).Error
	})
}

// Delete removes an address unless an undelivered order references it
func (r *GormAddressRepository) Delete(ctx context.Context, customerID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var address storefront.Address
		if err := tx.Where("customer_id = ? AND id = ?", customerID, id).
			First(&address).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		var inUse int64
		if err := tx.Model(&order.Order{}).
			Where("ship_address_id = ? AND status <> ?", id, order.StatusDelivered).
			Count(&inUse).Error; err != nil {
			return err
		}
		if inUse > 0 {
			return shared.NewDomainError("ADDRESS_IN_USE", "Address is referenced by an undelivered order")
		}

		return tx.Delete(&address).Error
	})
}
