package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gstbill/internal/domain"
	"gstbill/internal/export"
	"gstbill/internal/port"
	"gstbill/internal/service"
)

// InvoiceHandler handles invoice lifecycle endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Create handles POST /api/v1/invoices
// @Summary Create an invoice
// @Description Compute taxes for the submitted items and issue a draft invoice. The invoice number is auto-generated unless one is supplied.
// @Tags invoices
// @Accept json
// @Produce json
// @Param request body CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} Response{data=domain.Invoice} "Invoice created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 403 {object} ErrorResponseBody "Not the caller's seller"
// @Failure 409 {object} ErrorResponseBody "Invoice number already exists"
// @Security BearerAuth
// @Router /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	scope, ok := extractScope(c)
	if !ok {
		return
	}

	var input service.CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	inv, err := h.invoiceService.Create(c.Request.Context(), scope, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, inv)
}

// parseFilter reads the invoice listing filter from query parameters.
// Returns false with an error response written when an ID or date is malformed.
func parseFilter(c *gin.Context) (port.InvoiceFilter, bool) {
	filter := port.InvoiceFilter{
		Status:    domain.InvoiceStatus(c.Query("status")),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	filter.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))

	if s := c.Query("seller_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid seller ID")
			return filter, false
		}
		filter.SellerID = &id
	}
	if s := c.Query("buyer_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid buyer ID")
			return filter, false
		}
		filter.BuyerID = &id
	}
	if s := c.Query("from_date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_DATE", "from_date must be YYYY-MM-DD")
			return filter, false
		}
		filter.FromDate = &t
	}
	if s := c.Query("to_date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_DATE", "to_date must be YYYY-MM-DD")
			return filter, false
		}
		filter.ToDate = &t
	}
	return filter, true
}

// List handles GET /api/v1/invoices
// @Summary List invoices
// @Description List invoices with filtering by seller, buyer, status, and date range. Non-admin callers only see invoices where their own business appears.
// @Tags invoices
// @Produce json
// @Param seller_id query string false "Filter by seller ID (UUID)"
// @Param buyer_id query string false "Filter by buyer ID (UUID)"
// @Param status query string false "Filter by status" Enums(draft, sent, paid, cancelled)
// @Param from_date query string false "Invoices dated on or after (YYYY-MM-DD)"
// @Param to_date query string false "Invoices dated on or before (YYYY-MM-DD)"
// @Param sort_by query string false "Sort field" Enums(date, invoice_number, total, buyer_name, created_at) default(date)
// @Param sort_order query string false "Sort direction" Enums(asc, desc) default(desc)
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Invoice,meta=PagMeta} "List of invoices"
// @Failure 400 {object} ErrorResponseBody "Invalid filter"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	scope, ok := extractScope(c)
	if !ok {
		return
	}
	filter, ok := parseFilter(c)
	if !ok {
		return
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}

	invoices, total, err := h.invoiceService.List(c.Request.Context(), scope, filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, invoices, PagMeta{Total: total, Offset: filter.Offset, Limit: filter.Limit})
}

// GetByID handles GET /api/v1/invoices/:id
// @Summary Get invoice by ID
// @Description Get an invoice with its line items
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {object} Response{data=domain.Invoice} "Invoice with items"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 403 {object} ErrorResponseBody "Invoice belongs to another party"
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	scope, ok := extractScope(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	inv, err := h.invoiceService.GetByID(c.Request.Context(), scope, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}

// UpdateStatus handles PATCH /api/v1/invoices/:id/status
// @Summary Update invoice status
// @Description Move an invoice through its lifecycle: draft -> sent -> paid/cancelled
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Param request body UpdateInvoiceStatusRequest true "New status and optional payment details"
// @Success 200 {object} Response{data=domain.Invoice} "Invoice updated"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 403 {object} ErrorResponseBody "Invoice belongs to another seller"
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Failure 409 {object} ErrorResponseBody "Transition not allowed"
// @Security BearerAuth
// @Router /invoices/{id}/status [patch]
func (h *InvoiceHandler) UpdateStatus(c *gin.Context) {
	scope, ok := extractScope(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	var input service.UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	inv, err := h.invoiceService.UpdateStatus(c.Request.Context(), scope, id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}

// Delete handles DELETE /api/v1/invoices/:id
// @Summary Delete a draft invoice
// @Description Delete a draft invoice and restore consumed stock. Issued invoices can only be cancelled.
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Invoice deleted"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 403 {object} ErrorResponseBody "Invoice belongs to another seller"
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Failure 409 {object} ErrorResponseBody "Invoice is not a draft"
// @Security BearerAuth
// @Router /invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	scope, ok := extractScope(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), scope, id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "invoice deleted"})
}

// exportLimit caps how many invoices a single export pulls.
const exportLimit = 10000

// ExportCSV handles GET /api/v1/invoices/export/csv
// @Summary Export invoice register as CSV
// @Description Download filtered invoices as a CSV file
// @Tags invoices
// @Produce text/csv
// @Param seller_id query string false "Filter by seller ID (UUID)"
// @Param buyer_id query string false "Filter by buyer ID (UUID)"
// @Param status query string false "Filter by status" Enums(draft, sent, paid, cancelled)
// @Param from_date query string false "Invoices dated on or after (YYYY-MM-DD)"
// @Param to_date query string false "Invoices dated on or before (YYYY-MM-DD)"
// @Success 200 {string} string "CSV file"
// @Failure 400 {object} ErrorResponseBody "Invalid filter"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /invoices/export/csv [get]
func (h *InvoiceHandler) ExportCSV(c *gin.Context) {
	scope, ok := extractScope(c)
	if !ok {
		return
	}
	filter, ok := parseFilter(c)
	if !ok {
		return
	}
	filter.Offset = 0
	filter.Limit = exportLimit

	invoices, _, err := h.invoiceService.List(c.Request.Context(), scope, filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename("invoices", "csv")
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if _, err := c.Writer.Write(export.BOM); err != nil {
		return
	}
	w := export.NewCSVWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		return
	}
	if err := w.WriteInvoices(invoices); err != nil {
		return
	}
	w.Flush()
}

// ExportXLSX handles GET /api/v1/invoices/export/xlsx
// @Summary Export invoice register as XLSX
// @Description Download filtered invoices as an Excel workbook
// @Tags invoices
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param seller_id query string false "Filter by seller ID (UUID)"
// @Param buyer_id query string false "Filter by buyer ID (UUID)"
// @Param status query string false "Filter by status" Enums(draft, sent, paid, cancelled)
// @Param from_date query string false "Invoices dated on or after (YYYY-MM-DD)"
// @Param to_date query string false "Invoices dated on or before (YYYY-MM-DD)"
// @Success 200 {string} string "XLSX file"
// @Failure 400 {object} ErrorResponseBody "Invalid filter"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /invoices/export/xlsx [get]
func (h *InvoiceHandler) ExportXLSX(c *gin.Context) {
	scope, ok := extractScope(c)
	if !ok {
		return
	}
	filter, ok := parseFilter(c)
	if !ok {
		return
	}
	filter.Offset = 0
	filter.Limit = exportLimit

	invoices, _, err := h.invoiceService.List(c.Request.Context(), scope, filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename("invoices", "xlsx")
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := export.WriteXLSX(c.Writer, invoices); err != nil {
		HandleError(c, err)
	}
}
