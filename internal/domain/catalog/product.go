package catalog

import (
	"time"

	"github.com/catalogsync/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DefaultProductName is used when a remote entry carries no usable name field
const DefaultProductName = "Unnamed Product"

// Product represents a catalog product synchronized from the remote content
// source. It is the aggregate root for product operations.
//
// ExternalID ties the record to exactly one remote entry and is immutable once
// set. Products are never physically deleted; removal flips the Deleted flag
// and stamps DeletedAt.
type Product struct {
	shared.BaseEntity
	ExternalID string           `gorm:"type:varchar(64);not null;uniqueIndex:idx_products_external_id"`
	Name       string           `gorm:"type:varchar(200);not null;index"`
	Category   *string          `gorm:"type:varchar(100);index"`
	Price      *decimal.Decimal `gorm:"type:decimal(18,4);index"`
	RawData    string           `gorm:"type:jsonb"` // verbatim remote payload, audit only
	Deleted    bool             `gorm:"not null;default:false;index"`
	DeletedAt  *time.Time
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// ProductFields carries the mutable fields applied on create and upsert.
// A nil Category or Price means "absent", which is distinct from empty or zero.
type ProductFields struct {
	Name     string
	Category *string
	Price    *decimal.Decimal
	RawData  string
}

// NewProduct creates a new product tied to a remote entry
func NewProduct(externalID string, fields ProductFields) (*Product, error) {
	if err := validateExternalID(externalID); err != nil {
		return nil, err
	}

	name := fields.Name
	if name == "" {
		name = DefaultProductName
	}

	// The raw payload column is JSONB, so an absent payload must still be
	// valid JSON
	rawData := fields.RawData
	if rawData == "" {
		rawData = "{}"
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		ExternalID: externalID,
		Name:       name,
		Category:   fields.Category,
		Price:      fields.Price,
		RawData:    rawData,
		Deleted:    false,
	}, nil
}

// Apply overwrites the product's mutable fields, preserving ExternalID
func (p *Product) Apply(fields ProductFields) {
	name := fields.Name
	if name == "" {
		name = DefaultProductName
	}

	p.Name = name
	p.Category = fields.Category
	p.Price = fields.Price
	p.RawData = fields.RawData
	if p.RawData == "" {
		p.RawData = "{}"
	}
	p.Touch()
}

// SoftDelete marks the product as logically removed.
// Returns ErrNotFound if the product is already deleted, so that removing the
// same product twice fails the same way as removing a missing one.
func (p *Product) SoftDelete() error {
	if p.Deleted {
		return shared.ErrNotFound
	}

	now := time.Now()
	p.Deleted = true
	p.DeletedAt = &now
	p.UpdatedAt = now

	return nil
}

// IsDeleted returns true if the product has been soft-deleted
func (p *Product) IsDeleted() bool {
	return p.Deleted
}

// HasPrice returns true if the product carries a price strictly greater than
// zero. A nil or zero price counts as "unpriced".
func (p *Product) HasPrice() bool {
	return p.Price != nil && p.Price.IsPositive()
}

// HasCategory returns true if the product has a non-empty category
func (p *Product) HasCategory() bool {
	return p.Category != nil && *p.Category != ""
}

// validateExternalID validates the remote entry identifier
func validateExternalID(externalID string) error {
	if externalID == "" {
		return shared.NewDomainError("INVALID_EXTERNAL_ID", "External ID cannot be empty")
	}
	if len(externalID) > 64 {
		return shared.NewDomainError("INVALID_EXTERNAL_ID", "External ID cannot exceed 64 characters")
	}
	return nil
}
