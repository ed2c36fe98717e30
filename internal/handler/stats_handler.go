package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gstbill/internal/service"
)

// StatsHandler handles dashboard statistics endpoints.
type StatsHandler struct {
	statsService service.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// InvoiceStats handles GET /api/v1/stats/invoices
// @Summary Invoice statistics
// @Description Counts by status, paid revenue, and a monthly revenue series. Seller accounts always get their own figures; the seller_id filter is admin-only.
// @Tags stats
// @Produce json
// @Param seller_id query string false "Restrict to one seller (UUID, admin only)"
// @Param months query int false "Months of revenue history (max 36)" default(12)
// @Success 200 {object} Response{data=domain.InvoiceStats} "Statistics"
// @Failure 400 {object} ErrorResponseBody "Invalid seller ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 403 {object} ErrorResponseBody "No seller linked to this account"
// @Security BearerAuth
// @Router /stats/invoices [get]
func (h *StatsHandler) InvoiceStats(c *gin.Context) {
	scope, ok := extractScope(c)
	if !ok {
		return
	}

	var sellerID *uuid.UUID
	if s := c.Query("seller_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid seller ID")
			return
		}
		sellerID = &id
	}

	months, _ := strconv.Atoi(c.DefaultQuery("months", "12"))

	stats, err := h.statsService.InvoiceStats(c.Request.Context(), scope, sellerID, months)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, stats)
}
