package catalog

import (
	"time"

	"github.com/catalogsync/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	ExternalID string           `json:"external_id" binding:"required,min=1,max=64"`
	Name       string           `json:"name" binding:"max=200"`
	Category   *string          `json:"category" binding:"omitempty,max=100"`
	Price      *decimal.Decimal `json:"price"`
	RawData    string           `json:"raw_data"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID         uuid.UUID        `json:"id"`
	ExternalID string           `json:"external_id"`
	Name       string           `json:"name"`
	Category   *string          `json:"category"`
	Price      *decimal.Decimal `json:"price"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Name     string   `form:"name"`
	Category string   `form:"category"`
	MinPrice *float64 `form:"min_price" binding:"omitempty,min=0"`
	MaxPrice *float64 `form:"max_price" binding:"omitempty,min=0"`
	Page     int      `form:"page" binding:"omitempty,min=1"`
	Limit    int      `form:"limit" binding:"omitempty,min=1,max=5"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:         p.ID,
		ExternalID: p.ExternalID,
		Name:       p.Name,
		Category:   p.Category,
		Price:      p.Price,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// toDomainFilter converts the transport filter into the repository filter
func (f ProductListFilter) toDomainFilter() catalog.ProductFilter {
	filter := catalog.ProductFilter{
		Name:     f.Name,
		Category: f.Category,
		Page:     f.Page,
		Limit:    f.Limit,
	}
	if f.MinPrice != nil {
		min := decimal.NewFromFloat(*f.MinPrice)
		filter.MinPrice = &min
	}
	if f.MaxPrice != nil {
		max := decimal.NewFromFloat(*f.MaxPrice)
		filter.MaxPrice = &max
	}
	return filter
}
