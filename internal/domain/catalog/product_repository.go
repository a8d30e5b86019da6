package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductFilter holds the query options for listing products.
// All predicates apply on top of the implicit "not deleted" restriction.
type ProductFilter struct {
	// Name is a case-insensitive substring match on the product name
	Name string
	// Category is a case-insensitive substring match on the category
	Category string
	// MinPrice and MaxPrice bound the price range; each is optional
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	// Page is 1-based; Limit is clamped to MaxPageSize
	Page  int
	Limit int
}

// Pagination bounds for product listings
const (
	DefaultPageSize = 5
	MaxPageSize     = 5
)

// Normalize applies defaults and clamps pagination bounds
func (f *ProductFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultPageSize
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}
}

// ReportFilter holds the predicates used by the reporting queries.
// Unlike ProductFilter it does not imply a deleted restriction: reports count
// deleted and non-deleted populations explicitly.
type ReportFilter struct {
	// Deleted filters on the soft-delete flag when set
	Deleted *bool
	// HasPrice, when set, selects products whose price exists and is greater
	// than zero (true) or is absent, null, or zero (false)
	HasPrice *bool
	// CreatedFrom and CreatedTo bound createdAt inclusively; each is optional
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// ProductRepository defines the persistence contract for products
type ProductRepository interface {
	// Create inserts a new product; fails with ErrAlreadyExists if a product
	// with the same external ID exists regardless of its deleted state
	Create(ctx context.Context, product *Product) error

	// Upsert atomically creates or updates the product identified by
	// externalID in a single storage operation and returns the final record.
	// Invoking it twice with identical fields yields the same state.
	Upsert(ctx context.Context, externalID string, fields ProductFields) (*Product, error)

	// FindByID returns the product if it exists and is not soft-deleted;
	// fails with ErrNotFound otherwise
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindAll returns the page of non-deleted products matching the filter
	// together with the total match count
	FindAll(ctx context.Context, filter ProductFilter) ([]Product, int64, error)

	// SoftDelete marks the product as deleted; fails with ErrNotFound if the
	// product does not exist or is already deleted
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// CountAll counts products matching the report filter without the
	// implicit deleted restriction
	CountAll(ctx context.Context, filter ReportFilter) (int64, error)

	// FindAllForReports returns all products matching the report filter
	// without pagination; used only by the reporting engine
	FindAllForReports(ctx context.Context, filter ReportFilter) ([]Product, error)
}
