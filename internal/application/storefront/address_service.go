package storefront

import (
	"context"

	"github.com/eezystore/backend/internal/domain/storefront"
	"github.com/google/uuid"
)

// AddressService handles address book operations
type AddressService struct {
	addressRepo storefront.AddressRepository
}

// NewAddressService creates a new AddressService
func NewAddressService(addressRepo storefront.AddressRepository) *AddressService {
	return &AddressService{addressRepo: addressRepo}
}

// Create adds an address to the customer's book. The first address a
// customer saves becomes their default regardless of the request flag.
func (s *AddressService) Create(ctx context.Context, customerID uuid.UUID, req CreateAddressRequest) (*AddressResponse, error) {
	address, err := storefront.NewAddress(customerID, req.Name, req.Phone, req.Street, req.City, req.State, req.PostalCode, req.Country, req.IsDefault)
	if err != nil {
		return nil, err
	}

	count, err := s.addressRepo.CountForCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		address.MarkDefault()
	}

	if err := s.addressRepo.Save(ctx, address); err != nil {
		return nil, err
	}

	response := ToAddressResponse(address)
	return &response, nil
}

// List returns the customer's addresses, default first
func (s *AddressService) List(ctx context.Context, customerID uuid.UUID) ([]AddressResponse, error) {
	addresses, err := s.addressRepo.FindAllForCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return ToAddressResponses(addresses), nil
}

// GetByID returns one of the customer's addresses
func (s *AddressService) GetByID(ctx context.Context, customerID, addressID uuid.UUID) (*AddressResponse, error) {
	address, err := s.addressRepo.FindByIDForCustomer(ctx, customerID, addressID)
	if err != nil {
		return nil, err
	}
	response := ToAddressResponse(address)
	return &response, nil
}

// SetDefault marks an address as the customer's default shipping address
func (s *AddressService) SetDefault(ctx context.Context, customerID, addressID uuid.UUID) error {
	return s.addressRepo.SetDefault(ctx, customerID, addressID)
}

// Delete removes an address. An address referenced by an undelivered order
// cannot be deleted.
func (s *AddressService) Delete(ctx context.Context, customerID, addressID uuid.UUID) error {
	return s.addressRepo.Delete(ctx, customerID, addressID)
}
