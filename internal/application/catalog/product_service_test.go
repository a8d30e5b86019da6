package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/catalogsync/backend/internal/domain/catalog"
	"github.com/catalogsync/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Upsert(ctx context.Context, externalID string, fields catalog.ProductFields) (*catalog.Product, error) {
	args := m.Called(ctx, externalID, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter catalog.ProductFilter) ([]catalog.Product, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) CountAll(ctx context.Context, filter catalog.ReportFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) FindAllForReports(ctx context.Context, filter catalog.ReportFilter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func newTestProduct(t *testing.T, externalID, name string) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(externalID, catalog.ProductFields{Name: name})
	require.NoError(t, err)
	return product
}

func TestProductService_Create(t *testing.T) {
	t.Run("creates a product", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		repo.On("Create", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

		resp, err := service.Create(context.Background(), CreateProductRequest{
			ExternalID: "manual-1",
			Name:       "Manual Product",
		})

		require.NoError(t, err)
		assert.Equal(t, "manual-1", resp.ExternalID)
		assert.Equal(t, "Manual Product", resp.Name)
		repo.AssertExpectations(t)
	})

	t.Run("defaults the name when none is given", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		repo.On("Create", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

		resp, err := service.Create(context.Background(), CreateProductRequest{ExternalID: "manual-2"})

		require.NoError(t, err)
		assert.Equal(t, catalog.DefaultProductName, resp.Name)
	})

	t.Run("rejects a duplicate external ID", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		repo.On("Create", mock.Anything, mock.Anything).Return(shared.ErrAlreadyExists)

		_, err := service.Create(context.Background(), CreateProductRequest{ExternalID: "dup"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})

	t.Run("rejects a missing external ID without touching the repository", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		_, err := service.Create(context.Background(), CreateProductRequest{})

		assert.Error(t, err)
		repo.AssertNotCalled(t, "Create")
	})
}

func TestProductService_GetByID(t *testing.T) {
	t.Run("returns the product", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		product := newTestProduct(t, "ext-1", "Laptop")
		repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)

		resp, err := service.GetByID(context.Background(), product.ID)

		require.NoError(t, err)
		assert.Equal(t, product.ID, resp.ID)
		assert.Equal(t, "Laptop", resp.Name)
	})

	t.Run("propagates not found", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		id := uuid.New()
		repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := service.GetByID(context.Background(), id)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestProductService_List(t *testing.T) {
	t.Run("returns paginated data", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		products := []catalog.Product{
			*newTestProduct(t, "l-1", "A"),
			*newTestProduct(t, "l-2", "B"),
		}
		repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f catalog.ProductFilter) bool {
			return f.Page == 1 && f.Limit == catalog.DefaultPageSize
		})).Return(products, int64(12), nil)

		page, err := service.List(context.Background(), ProductListFilter{})

		require.NoError(t, err)
		assert.Len(t, page.Items, 2)
		assert.Equal(t, int64(12), page.Total)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 3, page.TotalPages)
	})

	t.Run("converts price bounds to decimals", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		minPrice := 9.5
		repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f catalog.ProductFilter) bool {
			return f.MinPrice != nil && f.MinPrice.Equal(decimal.NewFromFloat(9.5))
		})).Return([]catalog.Product{}, int64(0), nil)

		_, err := service.List(context.Background(), ProductListFilter{MinPrice: &minPrice})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		dbErr := errors.New("boom")
		repo.On("FindAll", mock.Anything, mock.Anything).Return([]catalog.Product{}, int64(0), dbErr)

		_, err := service.List(context.Background(), ProductListFilter{})

		assert.ErrorIs(t, err, dbErr)
	})
}

func TestProductService_Remove(t *testing.T) {
	t.Run("delegates to the repository", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		id := uuid.New()
		repo.On("SoftDelete", mock.Anything, id).Return(nil)

		assert.NoError(t, service.Remove(context.Background(), id))
		repo.AssertExpectations(t)
	})

	t.Run("propagates not found for repeated removal", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		id := uuid.New()
		repo.On("SoftDelete", mock.Anything, id).Return(shared.ErrNotFound)

		assert.ErrorIs(t, service.Remove(context.Background(), id), shared.ErrNotFound)
	})
}
