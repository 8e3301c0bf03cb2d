package storefront

import (
	"time"

	"github.com/eezystore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart quantity bounds. Adding to an existing line is not capped here;
// the cap is re-checked when the cart is confirmed into an order.
const (
	MinLineQuantity = 1
	MaxLineQuantity = 10
)

// CartLine represents one product line in a customer's cart.
// Lines carry no price: the storefront always prices a cart from the
// current catalog so a stale cart can never show a stale total.
type CartLine struct {
	ID        uuid.UUID
	CartID    uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (CartLine) TableName() string {
	return "cart_lines"
}

// Cart is the mutable pre-purchase collection of product lines for one
// customer. There is exactly one cart per customer; a successful checkout
// empties it.
type Cart struct {
	shared.BaseAggregateRoot
	CustomerID uuid.UUID
	Lines      []CartLine
}

// TableName returns the table name for GORM
func (Cart) TableName() string {
	return "carts"
}

// NewCart creates an empty cart for a customer
func NewCart(customerID uuid.UUID) (*Cart, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	return &Cart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		Lines:             make([]CartLine, 0),
	}, nil
}

// AddProduct adds a product to the cart. An existing line for the product
// has its quantity incremented; otherwise a new line is inserted.
func (c *Cart) AddProduct(productID uuid.UUID, quantity int) (*CartLine, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity < MinLineQuantity {
		return nil, shared.NewDomainError("QUANTITY_OUT_OF_RANGE", "Quantity must be at least 1")
	}

	now := time.Now()
	for idx := range c.Lines {
		if c.Lines[idx].ProductID == productID {
			c.Lines[idx].Quantity += quantity
			c.Lines[idx].UpdatedAt = now
			c.UpdatedAt = now
			return &c.Lines[idx], nil
		}
	}

	line := CartLine{
		ID:        uuid.New(),
		CartID:    c.ID,
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	c.Lines = append(c.Lines, line)
	c.UpdatedAt = now
	return &c.Lines[len(c.Lines)-1], nil
}

// SetLineQuantity sets the quantity of an existing line. A quantity above
// the cap is rejected; a quantity below 1 removes the line.
func (c *Cart) SetLineQuantity(lineID uuid.UUID, quantity int) error {
	if quantity > MaxLineQuantity {
		return shared.NewDomainError("QUANTITY_OUT_OF_RANGE", "Quantity cannot exceed 10")
	}
	if quantity < MinLineQuantity {
		c.RemoveLine(lineID)
		return nil
	}

	for idx := range c.Lines {
		if c.Lines[idx].ID == lineID {
			c.Lines[idx].Quantity = quantity
			c.Lines[idx].UpdatedAt = time.Now()
			c.UpdatedAt = c.Lines[idx].UpdatedAt
			return nil
		}
	}
	return shared.NewDomainError("NOT_FOUND", "Cart line not found")
}

// RemoveLine removes a line from the cart; removing an absent line is a no-op
func (c *Cart) RemoveLine(lineID uuid.UUID) {
	for idx, line := range c.Lines {
		if line.ID == lineID {
			c.Lines = append(c.Lines[:idx], c.Lines[idx+1:]...)
			c.UpdatedAt = time.Now()
			return
		}
	}
}

// Clear removes all lines from the cart
func (c *Cart) Clear() {
	c.Lines = c.Lines[:0]
	c.UpdatedAt = time.Now()
}

// IsEmpty returns true if the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// GetLine returns a line by its ID
func (c *Cart) GetLine(lineID uuid.UUID) *CartLine {
	for idx := range c.Lines {
		if c.Lines[idx].ID == lineID {
			return &c.Lines[idx]
		}
	}
	return nil
}

// GetLineByProduct returns a line by product ID
func (c *Cart) GetLineByProduct(productID uuid.UUID) *CartLine {
	for idx := range c.Lines {
		if c.Lines[idx].ProductID == productID {
			return &c.Lines[idx]
		}
	}
	return nil
}

// ValidateForCheckout re-checks every line quantity against the cap.
// Adding to an existing line is uncapped, so the invariant is enforced
// here, at confirm time.
func (c *Cart) ValidateForCheckout() error {
	if c.IsEmpty() {
		return shared.NewDomainError("EMPTY_CART", "Cannot place an order with an empty cart")
	}
	for _, line := range c.Lines {
		if line.Quantity < MinLineQuantity || line.Quantity > MaxLineQuantity {
			return shared.NewDomainError("QUANTITY_OUT_OF_RANGE", "Line quantity must be between 1 and 10")
		}
	}
	return nil
}

// Total computes the cart total against the supplied unit prices, keyed by
// product ID. Prices come from the current catalog on every read.
func (c *Cart) Total(unitPrices map[uuid.UUID]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		price, ok := unitPrices[line.ProductID]
		if !ok {
			continue
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}
