// Package contentsync orchestrates pulling the remote catalog into the
// local product store.
package contentsync

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/catalogsync/backend/internal/domain/catalog"
	"github.com/catalogsync/backend/internal/domain/integration"
)

// SyncResult summarizes one sync run
type SyncResult struct {
	// Skipped is true when the run did nothing because the source has no
	// credentials
	Skipped bool `json:"skipped"`
	// Total is the number of entries received from the source
	Total int `json:"total"`
	// Succeeded is the number of entries upserted
	Succeeded int `json:"succeeded"`
	// Failed is the number of entries that could not be upserted
	Failed int `json:"failed"`
}

// SyncService pulls entries from a catalog source and upserts them into the
// product store
type SyncService struct {
	source      integration.CatalogSource
	productRepo catalog.ProductRepository

	// continueOnError lets a run survive individual upsert failures instead
	// of aborting on the first one
	continueOnError bool

	logger *zap.Logger
}

// NewSyncService creates a new SyncService
func NewSyncService(
	source integration.CatalogSource,
	productRepo catalog.ProductRepository,
	continueOnError bool,
	logger *zap.Logger,
) *SyncService {
	return &SyncService{
		source:          source,
		productRepo:     productRepo,
		continueOnError: continueOnError,
		logger:          logger,
	}
}

// Run executes a full sync pass.
// A source without credentials makes the run a no-op success. A fetch failure
// always aborts the run. Entries are upserted in the order the source returns
// them; an upsert never resurrects a soft-deleted product.
func (s *SyncService) Run(ctx context.Context) (*SyncResult, error) {
	if !s.source.IsConfigured() {
		s.logger.Warn("catalog source not configured, skipping sync")
		return &SyncResult{Skipped: true}, nil
	}

	entries, err := s.source.FetchEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching catalog entries: %w", err)
	}

	result := &SyncResult{Total: len(entries)}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if _, err := s.productRepo.Upsert(ctx, entry.ExternalID, entry.Fields); err != nil {
			result.Failed++
			if !s.continueOnError {
				return nil, fmt.Errorf("upserting entry %s: %w", entry.ExternalID, err)
			}
			s.logger.Error("failed to upsert catalog entry",
				zap.String("external_id", entry.ExternalID),
				zap.Error(err))
			continue
		}
		result.Succeeded++
	}

	s.logger.Info("catalog sync completed",
		zap.Int("total", result.Total),
		zap.Int("succeeded", result.Succeeded),
		zap.Int("failed", result.Failed))

	return result, nil
}
