package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/eezystore/backend/internal/domain/catalog"
	"github.com/eezystore/backend/internal/domain/order"
	"github.com/eezystore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByIDForCustomer finds an order scoped to the owning customer
func (r *GormOrderRepository) FindByIDForCustomer(ctx context.Context, customerID, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("customer_id = ? AND id = ?", customerID, id).
		First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindAllForCustomer finds the customer's orders with filtering
func (r *GormOrderRepository) FindAllForCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	var orders []order.Order
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&order.Order{}).
			Preload("Items").
			Where("customer_id = ?", customerID),
		filter,
	)
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// CountForCustomer counts the customer's orders
func (r *GormOrderRepository) CountForCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindAll finds orders across all customers, optionally filtered by status
func (r *GormOrderRepository) FindAll(ctx context.Context, status *order.Status, filter shared.Filter) ([]order.Order, error) {
	var orders []order.Order
	query := r.db.WithContext(ctx).Model(&order.Order{}).Preload("Items")
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	query = r.applyFilter(query, filter)
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Count counts orders, optionally filtered by status
func (r *GormOrderRepository) Count(ctx context.Context, status *order.Status) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&order.Order{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create persists a new order with its items and clears the customer's
// cart in the same transaction. Either the order exists and the cart is
// empty, or neither happened.
func (r *GormOrderRepository) Create(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Create(o).Error; err != nil {
			return err
		}
		for i := range o.Items {
			o.Items[i].OrderID = o.ID
			if err := tx.Create(&o.Items[i]).Error; err != nil {
				return err
			}
		}
		return clearCartLines(tx, o.CustomerID)
	})
}

// UpdateStatus applies a status transition keyed on the expected current
// status. A write that matches zero rows means the order moved on between
// read and write, and the caller gets a conflict.
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to order.Status) error {
	now := time.Now()
	updates := map[string]interface{}{
		"status":     to,
		"updated_at": now,
	}
	switch to {
	case order.StatusShipped:
		updates["shipped_at"] = now
	case order.StatusDelivered:
		updates["delivered_at"] = now
	}

	result := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&order.Order{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// RateItem writes a rating conditioned on the item being unrated, and folds
// the stars into the product's denormalized rating aggregate in the same
// transaction. The conditioned write serializes concurrent raters per item.
func (r *GormOrderRepository) RateItem(ctx context.Context, itemID uuid.UUID, stars int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item order.Item
		if err := tx.First(&item, "id = ?", itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		result := tx.Model(&order.Item{}).
			Where("id = ? AND rating = 0", itemID).
			Updates(map[string]interface{}{
				"rating":     stars,
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("ALREADY_RATED", "This item has already been rated")
		}

		var product catalog.Product
		if err := tx.First(&product, "id = ?", item.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// The product was removed from the catalog; the rating on
				// the order item still stands
				return nil
			}
			return err
		}
		if err := product.ApplyRating(stars); err != nil {
			return err
		}
		return tx.Save(&product).Error
	})
}

// ExistsUndeliveredForAddress reports whether any order that has not yet
// been delivered references the given address snapshot
func (r *GormOrderRepository) ExistsUndeliveredForAddress(ctx context.Context, addressID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Where("ship_address_id = ? AND status <> ?", addressID, order.StatusDelivered).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}
