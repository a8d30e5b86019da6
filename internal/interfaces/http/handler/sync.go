package handler

import (
	"errors"

	"github.com/catalogsync/backend/internal/application/contentsync"
	"github.com/catalogsync/backend/internal/domain/integration"
	"github.com/catalogsync/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// SyncHandler exposes manual catalog sync runs
type SyncHandler struct {
	BaseHandler
	syncService *contentsync.SyncService
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(syncService *contentsync.SyncService) *SyncHandler {
	return &SyncHandler{syncService: syncService}
}

// Trigger runs a sync pass and reports its outcome.
// Unlike the scheduled runs, failures propagate to the caller.
func (h *SyncHandler) Trigger(c *gin.Context) {
	result, err := h.syncService.Run(c.Request.Context())
	if err != nil {
		h.handleSyncError(c, err)
		return
	}
	h.Success(c, result)
}

// handleSyncError maps catalog source failures onto the statuses the remote
// platform reported
func (h *SyncHandler) handleSyncError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, integration.ErrSourceSpaceNotFound):
		h.ErrorWithCode(c, dto.ErrCodeNotFound, "Space not found")
	case errors.Is(err, integration.ErrSourceUnauthorized):
		h.ErrorWithCode(c, dto.ErrCodeUnauthorized, "Invalid access token")
	case errors.Is(err, integration.ErrSourceUnavailable),
		errors.Is(err, integration.ErrSourceInvalidResponse),
		errors.Is(err, integration.ErrSourceRequestFailed):
		h.ErrorWithCode(c, dto.ErrCodeUpstreamUnavailable, "Failed to fetch catalog from remote platform")
	default:
		h.HandleError(c, err)
	}
}
