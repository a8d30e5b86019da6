package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/catalogsync/backend/internal/domain/catalog"
	"github.com/catalogsync/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Create inserts a new product
func (r *GormProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Upsert atomically creates or updates the product keyed by external ID.
// The conflict target is the unique external_id index, so two overlapping
// sync runs cannot create duplicate rows. The deleted flag and deletedAt are
// never touched: upserting a soft-deleted product does not resurrect it.
func (r *GormProductRepository) Upsert(ctx context.Context, externalID string, fields catalog.ProductFields) (*catalog.Product, error) {
	product, err := catalog.NewProduct(externalID, fields)
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "external_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"name":       product.Name,
			"category":   product.Category,
			"price":      product.Price,
			"raw_data":   product.RawData,
			"updated_at": time.Now(),
		}),
	}).Create(product).Error
	if err != nil {
		return nil, err
	}

	return r.findByExternalID(ctx, externalID)
}

// findByExternalID loads a product by external ID regardless of deleted state
func (r *GormProductRepository) findByExternalID(ctx context.Context, externalID string) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Where("external_id = ?", externalID).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByID finds a non-deleted product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Where("id = ? AND deleted = ?", id, false).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindAll returns the requested page of non-deleted products and the total match count
func (r *GormProductRepository) FindAll(ctx context.Context, filter catalog.ProductFilter) ([]catalog.Product, int64, error) {
	filter.Normalize()

	var total int64
	if err := r.applyProductFilter(r.db.WithContext(ctx).Model(&catalog.Product{}), filter).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []catalog.Product
	offset := (filter.Page - 1) * filter.Limit
	if err := r.applyProductFilter(r.db.WithContext(ctx).Model(&catalog.Product{}), filter).
		Order("created_at DESC").
		Offset(offset).
		Limit(filter.Limit).
		Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// SoftDelete marks a product as deleted.
// The lookup excludes already-deleted products, so deleting twice fails with
// ErrNotFound just like deleting a product that never existed.
func (r *GormProductRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	product, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := product.SoftDelete(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"deleted":    product.Deleted,
			"deleted_at": product.DeletedAt,
			"updated_at": product.UpdatedAt,
		}).Error
}

// CountAll counts products matching the report filter without the implicit
// deleted restriction
func (r *GormProductRepository) CountAll(ctx context.Context, filter catalog.ReportFilter) (int64, error) {
	var count int64
	query := r.applyReportFilter(r.db.WithContext(ctx).Model(&catalog.Product{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindAllForReports returns all products matching the report filter
func (r *GormProductRepository) FindAllForReports(ctx context.Context, filter catalog.ReportFilter) ([]catalog.Product, error) {
	var products []catalog.Product
	query := r.applyReportFilter(r.db.WithContext(ctx).Model(&catalog.Product{}), filter)
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// applyProductFilter applies the listing predicates.
// LOWER(...) LIKE keeps the substring match case-insensitive on both Postgres
// and the SQLite databases used in tests.
func (r *GormProductRepository) applyProductFilter(query *gorm.DB, filter catalog.ProductFilter) *gorm.DB {
	query = query.Where("deleted = ?", false)

	if filter.Name != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+filter.Name+"%")
	}
	if filter.Category != "" {
		query = query.Where("LOWER(category) LIKE LOWER(?)", "%"+filter.Category+"%")
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", filter.MaxPrice)
	}

	return query
}

// applyReportFilter applies the reporting predicates
func (r *GormProductRepository) applyReportFilter(query *gorm.DB, filter catalog.ReportFilter) *gorm.DB {
	if filter.Deleted != nil {
		query = query.Where("deleted = ?", *filter.Deleted)
	}
	if filter.HasPrice != nil {
		if *filter.HasPrice {
			query = query.Where("price IS NOT NULL AND price > 0")
		} else {
			query = query.Where("price IS NULL OR price = 0")
		}
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}
	return query
}

// Ensure GormProductRepository implements catalog.ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
