package catalog

import (
	"context"
	"errors"

	"github.com/catalogsync/backend/internal/domain/catalog"
	"github.com/catalogsync/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// Create creates a new product from a manual API request
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.ExternalID, catalog.ProductFields{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		RawData:  req.RawData,
	})
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this external ID already exists")
		}
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// GetByID retrieves a non-deleted product by its ID
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// List returns a page of non-deleted products matching the filter
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) (*shared.Paginated[ProductResponse], error) {
	domainFilter := filter.toDomainFilter()
	domainFilter.Normalize()

	products, total, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, ToProductResponse(&products[i]))
	}

	page := shared.NewPaginated(items, total, domainFilter.Page, domainFilter.Limit)
	return &page, nil
}

// Remove soft-deletes a product. Removing an unknown or already removed
// product fails with not found.
func (s *ProductService) Remove(ctx context.Context, productID uuid.UUID) error {
	return s.productRepo.SoftDelete(ctx, productID)
}
