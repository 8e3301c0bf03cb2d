package storefront

import (
	"context"

	"github.com/eezystore/backend/internal/domain/catalog"
	"github.com/eezystore/backend/internal/domain/shared"
	"github.com/eezystore/backend/internal/domain/storefront"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartService handles cart business operations
type CartService struct {
	cartRepo    storefront.CartRepository
	productRepo catalog.ProductRepository
}

// NewCartService creates a new CartService
func NewCartService(cartRepo storefront.CartRepository, productRepo catalog.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// Get returns the customer's cart priced against the current catalog
func (s *CartService) Get(ctx context.Context, customerID uuid.UUID) (*CartResponse, error) {
	cart, err := s.cartRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return s.toCartResponse(ctx, cart)
}

// AddItem adds a product to the cart. Adding a product that is already in
// the cart increments its line.
func (s *CartService) AddItem(ctx context.Context, customerID uuid.UUID, req AddCartItemRequest) (*CartResponse, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.Active {
		return nil, shared.ErrNotFound
	}

	cart, err := s.cartRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if _, err := cart.AddProduct(req.ProductID, quantity); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return s.toCartResponse(ctx, cart)
}

// UpdateItem sets a line's quantity; a quantity below 1 removes the line
func (s *CartService) UpdateItem(ctx context.Context, customerID, lineID uuid.UUID, req UpdateCartItemRequest) (*CartResponse, error) {
	cart, err := s.cartRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if err := cart.SetLineQuantity(lineID, req.Quantity); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return s.toCartResponse(ctx, cart)
}

// RemoveItem removes a line from the cart; removing an absent line succeeds
func (s *CartService) RemoveItem(ctx context.Context, customerID, lineID uuid.UUID) (*CartResponse, error) {
	cart, err := s.cartRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	cart.RemoveLine(lineID)

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return s.toCartResponse(ctx, cart)
}

// Clear empties the customer's cart
func (s *CartService) Clear(ctx context.Context, customerID uuid.UUID) error {
	return s.cartRepo.ClearForCustomer(ctx, customerID)
}

// toCartResponse prices the cart lines against the current catalog.
// Lines whose product has been retired are shown without a price.
func (s *CartService) toCartResponse(ctx context.Context, cart *storefront.Cart) (*CartResponse, error) {
	productIDs := make([]uuid.UUID, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		productIDs = append(productIDs, line.ProductID)
	}

	products := make(map[uuid.UUID]*catalog.Product, len(productIDs))
	if len(productIDs) > 0 {
		found, err := s.productRepo.FindByIDs(ctx, productIDs)
		if err != nil {
			return nil, err
		}
		for i := range found {
			products[found[i].ID] = &found[i]
		}
	}

	lines := make([]CartLineResponse, 0, len(cart.Lines))
	total := decimal.Zero
	itemCount := 0
	for _, line := range cart.Lines {
		resp := CartLineResponse{
			ID:        line.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		}
		if product, ok := products[line.ProductID]; ok {
			resp.ProductName = product.Name
			resp.ImageURL = product.ImageURL
			resp.UnitPrice = product.Price
			resp.Subtotal = product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
			total = total.Add(resp.Subtotal)
		}
		itemCount += line.Quantity
		lines = append(lines, resp)
	}

	return &CartResponse{
		ID:        cart.ID,
		Lines:     lines,
		ItemCount: itemCount,
		Total:     total,
		UpdatedAt: cart.UpdatedAt,
	}, nil
}
