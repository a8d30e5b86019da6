// Package report computes aggregate statistics over the product catalog.
package report

import (
	"context"
	"math"
	"time"

	"github.com/catalogsync/backend/internal/domain/catalog"
)

// UncategorizedKey is the distribution bucket for products without a category
const UncategorizedKey = "Uncategorized"

// ReportService provides application-level report operations
type ReportService struct {
	productRepo catalog.ProductRepository
}

// NewReportService creates a new ReportService
func NewReportService(productRepo catalog.ProductRepository) *ReportService {
	return &ReportService{productRepo: productRepo}
}

// DeletedPercentageResponse reports the share of soft-deleted products
type DeletedPercentageResponse struct {
	Total      int64   `json:"total"`
	Deleted    int64   `json:"deleted"`
	Percentage float64 `json:"percentage"`
}

// PricedPercentageResponse reports the share of products with or without a
// positive price
type PricedPercentageResponse struct {
	Total      int64   `json:"total"`
	Matching   int64   `json:"matching"`
	Percentage float64 `json:"percentage"`
}

// PricedPercentageFilter defines the request filter for the price report
type PricedPercentageFilter struct {
	HasPrice  bool       `form:"has_price"`
	StartDate *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"end_date" time_format:"2006-01-02"`
}

// CategoryDistributionResponse reports product counts per category
type CategoryDistributionResponse struct {
	Total      int64            `json:"total"`
	Categories map[string]int64 `json:"categories"`
}

// DeletedPercentage returns the percentage of products that have been
// soft-deleted, over the entire store
func (s *ReportService) DeletedPercentage(ctx context.Context) (*DeletedPercentageResponse, error) {
	total, err := s.productRepo.CountAll(ctx, catalog.ReportFilter{})
	if err != nil {
		return nil, err
	}

	deleted := true
	deletedCount, err := s.productRepo.CountAll(ctx, catalog.ReportFilter{Deleted: &deleted})
	if err != nil {
		return nil, err
	}

	return &DeletedPercentageResponse{
		Total:      total,
		Deleted:    deletedCount,
		Percentage: percentage(deletedCount, total),
	}, nil
}

// PricedPercentage returns the percentage of non-deleted products with (or
// without) a positive price. The optional creation window narrows the
// matching set only; the denominator stays the full non-deleted store.
func (s *ReportService) PricedPercentage(ctx context.Context, filter PricedPercentageFilter) (*PricedPercentageResponse, error) {
	notDeleted := false
	total, err := s.productRepo.CountAll(ctx, catalog.ReportFilter{Deleted: &notDeleted})
	if err != nil {
		return nil, err
	}

	matching, err := s.productRepo.CountAll(ctx, catalog.ReportFilter{
		Deleted:     &notDeleted,
		HasPrice:    &filter.HasPrice,
		CreatedFrom: filter.StartDate,
		CreatedTo:   filter.EndDate,
	})
	if err != nil {
		return nil, err
	}

	return &PricedPercentageResponse{
		Total:      total,
		Matching:   matching,
		Percentage: percentage(matching, total),
	}, nil
}

// CategoryDistribution returns product counts per category over non-deleted
// products. Products without a category only appear under the Uncategorized
// bucket when at least one exists.
func (s *ReportService) CategoryDistribution(ctx context.Context) (*CategoryDistributionResponse, error) {
	notDeleted := false
	products, err := s.productRepo.FindAllForReports(ctx, catalog.ReportFilter{Deleted: &notDeleted})
	if err != nil {
		return nil, err
	}

	categories := make(map[string]int64)
	var uncategorized int64
	for i := range products {
		if products[i].HasCategory() {
			categories[*products[i].Category]++
		} else {
			uncategorized++
		}
	}
	if uncategorized > 0 {
		categories[UncategorizedKey] = uncategorized
	}

	return &CategoryDistributionResponse{
		Total:      int64(len(products)),
		Categories: categories,
	}, nil
}

// percentage computes count/total*100 rounded to two decimals, 0 when the
// store is empty
func percentage(count, total int64) float64 {
	if total == 0 {
		return 0
	}
	ratio := float64(count) / float64(total) * 100
	return math.Round(ratio*100) / 100
}
