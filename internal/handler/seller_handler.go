package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gstbill/internal/service"
)

// SellerHandler handles seller management endpoints.
type SellerHandler struct {
	sellerService service.SellerService
}

// NewSellerHandler creates a new SellerHandler.
func NewSellerHandler(sellerService service.SellerService) *SellerHandler {
	return &SellerHandler{sellerService: sellerService}
}

// Create handles POST /api/v1/sellers
// @Summary Create a seller
// @Description Register a selling business with GSTIN and bank details
// @Tags sellers
// @Accept json
// @Produce json
// @Param request body CreateSellerRequest true "Seller details"
// @Success 201 {object} Response{data=domain.Seller} "Seller created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /sellers [post]
func (h *SellerHandler) Create(c *gin.Context) {
	var input service.CreateSellerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	seller, err := h.sellerService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, seller)
}

// List handles GET /api/v1/sellers
// @Summary List sellers
// @Description List sellers with optional name/GSTIN search
// @Tags sellers
// @Produce json
// @Param search query string false "Search by business name or GSTIN"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Seller,meta=PagMeta} "List of sellers"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /sellers [get]
func (h *SellerHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	sellers, total, err := h.sellerService.List(c.Request.Context(), c.Query("search"), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, sellers, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/sellers/:id
// @Summary Get seller by ID
// @Description Get seller details
// @Tags sellers
// @Produce json
// @Param id path string true "Seller ID (UUID)"
// @Success 200 {object} Response{data=domain.Seller} "Seller details"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Seller not found"
// @Security BearerAuth
// @Router /sellers/{id} [get]
func (h *SellerHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid seller ID")
		return
	}

	seller, err := h.sellerService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, seller)
}

// Update handles PUT /api/v1/sellers/:id
// @Summary Update a seller
// @Description Update seller details; issued invoices keep their snapshots
// @Tags sellers
// @Accept json
// @Produce json
// @Param id path string true "Seller ID (UUID)"
// @Param request body UpdateSellerRequest true "Fields to update"
// @Success 200 {object} Response{data=domain.Seller} "Seller updated"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Seller not found"
// @Security BearerAuth
// @Router /sellers/{id} [put]
func (h *SellerHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid seller ID")
		return
	}

	var input service.UpdateSellerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	seller, err := h.sellerService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, seller)
}

// Delete handles DELETE /api/v1/sellers/:id
// @Summary Delete a seller
// @Description Delete a seller (admin only)
// @Tags sellers
// @Produce json
// @Param id path string true "Seller ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Seller deleted"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 403 {object} ErrorResponseBody "Forbidden - admin only"
// @Failure 404 {object} ErrorResponseBody "Seller not found"
// @Security BearerAuth
// @Router /sellers/{id} [delete]
func (h *SellerHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid seller ID")
		return
	}

	if err := h.sellerService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "seller deleted"})
}
