// Package integration defines contracts for external catalog platforms.
package integration

import (
	"context"
	"errors"

	"github.com/catalogsync/backend/internal/domain/catalog"
)

// Platform-level errors shared by all catalog source adapters
var (
	// ErrSourceNotConfigured indicates the platform credentials are missing
	ErrSourceNotConfigured = errors.New("integration: catalog source is not configured")
	// ErrSourceSpaceNotFound indicates the remote space or project does not exist
	ErrSourceSpaceNotFound = errors.New("integration: space not found")
	// ErrSourceUnauthorized indicates invalid credentials for the remote platform
	ErrSourceUnauthorized = errors.New("integration: invalid access token")
	// ErrSourceUnavailable indicates a network-level failure reaching the platform
	ErrSourceUnavailable = errors.New("integration: catalog source unavailable")
	// ErrSourceInvalidResponse indicates the platform returned an unparseable payload
	ErrSourceInvalidResponse = errors.New("integration: invalid response from catalog source")
	// ErrSourceRequestFailed indicates the platform rejected the request
	ErrSourceRequestFailed = errors.New("integration: catalog source request failed")
)

// CatalogEntry is a normalized product entry pulled from an external platform
type CatalogEntry struct {
	ExternalID string
	Fields     catalog.ProductFields
}

// CatalogSource pulls product entries from an external content platform
type CatalogSource interface {
	// IsConfigured reports whether the source has usable credentials
	IsConfigured() bool
	// FetchEntries retrieves all product entries from the platform
	FetchEntries(ctx context.Context) ([]CatalogEntry, error)
}
