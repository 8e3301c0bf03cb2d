package order

import (
	"context"
	"errors"

	storefrontapp "github.com/eezystore/backend/internal/application/storefront"
	"github.com/eezystore/backend/internal/domain/catalog"
	"github.com/eezystore/backend/internal/domain/order"
	"github.com/eezystore/backend/internal/domain/shared"
	"github.com/eezystore/backend/internal/domain/shared/valueobject"
	"github.com/eezystore/backend/internal/domain/storefront"
	"github.com/google/uuid"
)

// CheckoutService turns a cart into an order
type CheckoutService struct {
	cartService *storefrontapp.CartService
	cartRepo    storefront.CartRepository
	addressRepo storefront.AddressRepository
	productRepo catalog.ProductRepository
	orderRepo   order.Repository
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	cartService *storefrontapp.CartService,
	cartRepo storefront.CartRepository,
	addressRepo storefront.AddressRepository,
	productRepo catalog.ProductRepository,
	orderRepo order.Repository,
) *CheckoutService {
	return &CheckoutService{
		cartService: cartService,
		cartRepo:    cartRepo,
		addressRepo: addressRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

// Preview assembles the checkout page: the priced cart plus the customer's
// address book. An empty cart is rejected before the page renders.
func (s *CheckoutService) Preview(ctx context.Context, customerID uuid.UUID) (*CheckoutPreviewResponse, error) {
	cart, err := s.cartService.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if len(cart.Lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_CART", "Cannot check out an empty cart")
	}

	addresses, err := s.addressRepo.FindAllForCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	return &CheckoutPreviewResponse{
		Cart:      *cart,
		Addresses: storefrontapp.ToAddressResponses(addresses),
	}, nil
}

// PlaceOrder confirms checkout: it re-validates the cart, snapshots the
// address and the current catalog prices into a pending order, and clears
// the cart. Order creation and cart clearing happen in one transaction.
func (s *CheckoutService) PlaceOrder(ctx context.Context, customerID uuid.UUID, req PlaceOrderRequest) (*OrderResponse, error) {
	cart, err := s.cartRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if err := cart.ValidateForCheckout(); err != nil {
		return nil, err
	}

	address, err := s.addressRepo.FindByIDForCustomer(ctx, customerID, req.AddressID)
	if err != nil {
		// An address the customer does not own is an invalid checkout input,
		// not a missing resource
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_ADDRESS", "Shipping address does not belong to this customer")
		}
		return nil, err
	}

	productIDs := make([]uuid.UUID, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		productIDs = append(productIDs, line.ProductID)
	}
	products, err := s.productRepo.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	items := make([]order.Item, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		product, ok := byID[line.ProductID]
		if !ok {
			return nil, shared.NewDomainError("PRODUCT_UNAVAILABLE", "A product in the cart is no longer available")
		}
		item, err := order.NewItem(uuid.Nil, product.ID, product.Name, line.Quantity, valueobject.NewMoneyUSD(product.Price))
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	o, err := order.New(customerID, order.ShippingAddress{
		AddressID:  address.ID,
		Name:       address.Name,
		Phone:      address.Phone,
		Street:     address.Street,
		City:       address.City,
		State:      address.State,
		PostalCode: address.PostalCode,
		Country:    address.Country,
	}, items)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Create(ctx, o); err != nil {
		return nil, err
	}

	response := ToOrderResponse(o)
	return &response, nil
}
