package order

import (
	"fmt"
	"time"

	"github.com/eezystore/backend/internal/domain/shared"
	"github.com/eezystore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the fulfillment status of an order
type Status string

const (
	StatusPending   Status = "pending" // surfaced as "approved" in the admin UI
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusShipped, StatusDelivered:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// Fulfillment only moves forward, one step at a time; delivered is terminal.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPending:
		return target == StatusShipped
	case StatusShipped:
		return target == StatusDelivered
	case StatusDelivered:
		return false
	}
	return false
}

// IsTerminal returns true for the terminal delivered status
func (s Status) IsTerminal() bool {
	return s == StatusDelivered
}

// Rating bounds for order items; 0 means unrated
const (
	MinRating = 1
	MaxRating = 5
)

// Item is one line of an order: a snapshot of product, quantity and the
// unit price captured at checkout. Later catalog price edits never touch it.
type Item struct {
	ID          uuid.UUID
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null"`
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Rating      int             `gorm:"not null;default:0"` // 0 = unrated, 1..5 once rated
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "order_items"
}

// NewItem creates an order item snapshot
func NewItem(orderID, productID uuid.UUID, productName string, quantity int, unitPrice valueobject.Money) (*Item, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product name cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("QUANTITY_OUT_OF_RANGE", "Quantity must be positive")
	}
	if unitPrice.Amount().IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	return &Item{
		ID:          uuid.New(),
		OrderID:     orderID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice.Amount(),
		Subtotal:    unitPrice.Amount().Mul(decimal.NewFromInt(int64(quantity))),
		Rating:      0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// IsRated returns true once the item carries a rating
func (i *Item) IsRated() bool {
	return i.Rating >= MinRating
}

// ShippingAddress is the address snapshot captured at checkout. It is
// denormalized onto the order so later address-book changes cannot
// rewrite where an order was shipped.
type ShippingAddress struct {
	AddressID  uuid.UUID
	Name       string
	Phone      string
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
}

// Order is the immutable snapshot produced by checkout. Only the status
// field (and its timestamps) ever changes, exclusively through Ship,
// Deliver and RateItem.
type Order struct {
	shared.BaseAggregateRoot
	CustomerID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Address     ShippingAddress `gorm:"embedded;embeddedPrefix:ship_"`
	Items       []Item
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status      Status          `gorm:"not null;index"`
	ShippedAt   *time.Time
	DeliveredAt *time.Time
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// New assembles an order from checkout snapshots. The total is computed
// once, here, from the captured line subtotals and never recomputed.
func New(customerID uuid.UUID, address ShippingAddress, items []Item) (*Order, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if address.AddressID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Shipping address is required")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("EMPTY_CART", "Cannot place an order with an empty cart")
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		Address:           address,
		Items:             make([]Item, 0, len(items)),
		Status:            StatusPending,
	}

	total := decimal.Zero
	for _, item := range items {
		item.OrderID = o.ID
		total = total.Add(item.Subtotal)
		o.Items = append(o.Items, item)
	}
	o.TotalAmount = total

	return o, nil
}

// Transition validates and applies a status change. Anything but the
// single next step in pending -> shipped -> delivered is rejected.
func (o *Order) Transition(target Status) error {
	if !target.IsValid() {
		return shared.NewDomainError("ILLEGAL_TRANSITION", fmt.Sprintf("Unknown order status %q", target))
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("ILLEGAL_TRANSITION",
			fmt.Sprintf("Cannot transition order from %s to %s", o.Status, target))
	}

	now := time.Now()
	switch target {
	case StatusShipped:
		o.ShippedAt = &now
	case StatusDelivered:
		o.DeliveredAt = &now
	}
	o.Status = target
	o.UpdatedAt = now
	return nil
}

// Ship advances the order to shipped
func (o *Order) Ship() error {
	return o.Transition(StatusShipped)
}

// Deliver advances the order to its terminal delivered status
func (o *Order) Deliver() error {
	return o.Transition(StatusDelivered)
}

// RateItem records a one-time star rating on a delivered order's item
func (o *Order) RateItem(itemID uuid.UUID, stars int) (*Item, error) {
	if stars < MinRating || stars > MaxRating {
		return nil, shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}
	if o.Status != StatusDelivered {
		return nil, shared.NewDomainError("ORDER_NOT_DELIVERED", "Items can only be rated once the order is delivered")
	}

	item := o.GetItem(itemID)
	if item == nil {
		return nil, shared.ErrNotFound
	}
	if item.IsRated() {
		return nil, shared.NewDomainError("ALREADY_RATED", "This item has already been rated")
	}

	item.Rating = stars
	item.UpdatedAt = time.Now()
	return item, nil
}

// GetItem returns an item by its ID
func (o *Order) GetItem(itemID uuid.UUID) *Item {
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			return &o.Items[idx]
		}
	}
	return nil
}

// BelongsTo returns true if the order is owned by the given customer
func (o *Order) BelongsTo(customerID uuid.UUID) bool {
	return o.CustomerID == customerID
}

// IsDelivered returns true if the order reached its terminal status
func (o *Order) IsDelivered() bool {
	return o.Status == StatusDelivered
}

// ItemCount returns the number of lines in the order
func (o *Order) ItemCount() int {
	return len(o.Items)
}

// GetTotalAmountMoney returns the order total as Money
func (o *Order) GetTotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.TotalAmount)
}
