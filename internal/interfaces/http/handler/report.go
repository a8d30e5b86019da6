package handler

import (
	reportapp "github.com/catalogsync/backend/internal/application/report"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles catalog report endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// DeletedPercentage returns the share of soft-deleted products
func (h *ReportHandler) DeletedPercentage(c *gin.Context) {
	resp, err := h.reportService.DeletedPercentage(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// PricedPercentage returns the share of non-deleted products that carry a
// price, optionally narrowed to a creation window
func (h *ReportHandler) PricedPercentage(c *gin.Context) {
	filter := reportapp.PricedPercentageFilter{HasPrice: true}
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.reportService.PricedPercentage(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// CategoryDistribution returns product counts per category
func (h *ReportHandler) CategoryDistribution(c *gin.Context) {
	resp, err := h.reportService.CategoryDistribution(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
