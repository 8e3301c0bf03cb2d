package catalog

import (
	"time"

	"github.com/eezystore/backend/internal/domain/shared"
	"github.com/eezystore/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Product represents a catalog product aggregate root.
// Price edits affect the storefront only; orders snapshot unit prices at
// checkout and are never recomputed from the catalog.
type Product struct {
	shared.BaseAggregateRoot
	Name        string          `gorm:"not null;size:255"`
	Description string
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ImageURL    string          `gorm:"size:500"`
	Active      bool            `gorm:"not null;default:true"`
	RatingAvg   decimal.Decimal `gorm:"type:decimal(4,2);not null;default:0"` // denormalized; recomputed when an order item is rated
	RatingCount int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(name, description string, price valueobject.Money, imageURL string) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 255 {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 255 characters")
	}
	if price.Amount().IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
		Price:             price.Amount(),
		ImageURL:          imageURL,
		Active:            true,
		RatingAvg:         decimal.Zero,
		RatingCount:       0,
	}, nil
}

// UpdateDetails updates the product's display fields
func (p *Product) UpdateDetails(name, description, imageURL string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	p.Name = name
	p.Description = description
	p.ImageURL = imageURL
	p.UpdatedAt = time.Now()
	return nil
}

// UpdatePrice changes the storefront price. Existing orders keep the unit
// price captured at checkout.
func (p *Product) UpdatePrice(price valueobject.Money) error {
	if price.Amount().IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}
	p.Price = price.Amount()
	p.UpdatedAt = time.Now()
	return nil
}

// Deactivate removes the product from the storefront without deleting it
// (soft delete; ordered items keep referencing it)
func (p *Product) Deactivate() {
	p.Active = false
	p.UpdatedAt = time.Now()
}

// Activate returns the product to the storefront
func (p *Product) Activate() {
	p.Active = true
	p.UpdatedAt = time.Now()
}

// ApplyRating folds one new star rating into the denormalized aggregate
func (p *Product) ApplyRating(stars int) error {
	if stars < 1 || stars > 5 {
		return shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}
	total := p.RatingAvg.Mul(decimal.NewFromInt(int64(p.RatingCount))).Add(decimal.NewFromInt(int64(stars)))
	p.RatingCount++
	p.RatingAvg = total.Div(decimal.NewFromInt(int64(p.RatingCount))).Round(2)
	p.UpdatedAt = time.Now()
	return nil
}

// GetPriceMoney returns the price as Money value object
func (p *Product) GetPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.Price)
}
