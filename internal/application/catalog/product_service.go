package catalog

import (
	"context"

	"github.com/eezystore/backend/internal/domain/catalog"
	"github.com/eezystore/backend/internal/domain/shared"
	"github.com/eezystore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// ProductService handles catalog business operations
type ProductService struct {
	productRepo catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.Name, req.Description, valueobject.NewMoneyUSD(req.Price), req.ImageURL)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Update applies partial updates to a product
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	name := product.Name
	description := product.Description
	imageURL := product.ImageURL
	if req.Name != nil {
		name = *req.Name
	}
	if req.Description != nil {
		description = *req.Description
	}
	if req.ImageURL != nil {
		imageURL = *req.ImageURL
	}
	if err := product.UpdateDetails(name, description, imageURL); err != nil {
		return nil, err
	}

	if req.Price != nil {
		if err := product.UpdatePrice(valueobject.NewMoneyUSD(*req.Price)); err != nil {
			return nil, err
		}
	}
	if req.Active != nil {
		if *req.Active {
			product.Activate()
		} else {
			product.Deactivate()
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete retires a product from the storefront. Products are never hard
// deleted because order items keep referencing them.
func (s *ProductService) Delete(ctx context.Context, productID uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	product.Deactivate()
	return s.productRepo.Save(ctx, product)
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// GetActiveByID retrieves a product by ID for the storefront. Inactive
// products are hidden from customers.
func (s *ProductService) GetActiveByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.Active {
		return nil, shared.ErrNotFound
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves storefront products (active only) with pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) (*shared.Paginated[ProductResponse], error) {
	f := toSharedFilter(filter)

	products, err := s.productRepo.FindActive(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.CountActive(ctx, f)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToProductResponses(products), total, f.Page, f.PageSize)
	return &result, nil
}

// ListAll retrieves all products including inactive ones, for the admin panel
func (s *ProductService) ListAll(ctx context.Context, filter ProductListFilter) (*shared.Paginated[ProductResponse], error) {
	f := toSharedFilter(filter)

	products, err := s.productRepo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToProductResponses(products), total, f.Page, f.PageSize)
	return &result, nil
}

func toSharedFilter(filter ProductListFilter) shared.Filter {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	f.Search = filter.Search
	return f
}
