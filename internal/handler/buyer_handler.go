package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gstbill/internal/service"
)

// BuyerHandler handles buyer management endpoints.
type BuyerHandler struct {
	buyerService service.BuyerService
}

// NewBuyerHandler creates a new BuyerHandler.
func NewBuyerHandler(buyerService service.BuyerService) *BuyerHandler {
	return &BuyerHandler{buyerService: buyerService}
}

// Create handles POST /api/v1/buyers
// @Summary Create a buyer
// @Description Register a buying business; GSTIN is optional for unregistered buyers
// @Tags buyers
// @Accept json
// @Produce json
// @Param request body CreateBuyerRequest true "Buyer details"
// @Success 201 {object} Response{data=domain.Buyer} "Buyer created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /buyers [post]
func (h *BuyerHandler) Create(c *gin.Context) {
	var input service.CreateBuyerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	buyer, err := h.buyerService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, buyer)
}

// List handles GET /api/v1/buyers
// @Summary List buyers
// @Description List buyers with optional name/GSTIN search
// @Tags buyers
// @Produce json
// @Param search query string false "Search by business name or GSTIN"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Buyer,meta=PagMeta} "List of buyers"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /buyers [get]
func (h *BuyerHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	buyers, total, err := h.buyerService.List(c.Request.Context(), c.Query("search"), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, buyers, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/buyers/:id
// @Summary Get buyer by ID
// @Description Get buyer details
// @Tags buyers
// @Produce json
// @Param id path string true "Buyer ID (UUID)"
// @Success 200 {object} Response{data=domain.Buyer} "Buyer details"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Buyer not found"
// @Security BearerAuth
// @Router /buyers/{id} [get]
func (h *BuyerHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid buyer ID")
		return
	}

	buyer, err := h.buyerService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, buyer)
}

// Update handles PUT /api/v1/buyers/:id
// @Summary Update a buyer
// @Description Update buyer details; issued invoices keep their snapshots
// @Tags buyers
// @Accept json
// @Produce json
// @Param id path string true "Buyer ID (UUID)"
// @Param request body UpdateBuyerRequest true "Fields to update"
// @Success 200 {object} Response{data=domain.Buyer} "Buyer updated"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Buyer not found"
// @Security BearerAuth
// @Router /buyers/{id} [put]
func (h *BuyerHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid buyer ID")
		return
	}

	var input service.UpdateBuyerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	buyer, err := h.buyerService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, buyer)
}

// Delete handles DELETE /api/v1/buyers/:id
// @Summary Delete a buyer
// @Description Delete a buyer (admin only)
// @Tags buyers
// @Produce json
// @Param id path string true "Buyer ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Buyer deleted"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 403 {object} ErrorResponseBody "Forbidden - admin only"
// @Failure 404 {object} ErrorResponseBody "Buyer not found"
// @Security BearerAuth
// @Router /buyers/{id} [delete]
func (h *BuyerHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid buyer ID")
		return
	}

	if err := h.buyerService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "buyer deleted"})
}
