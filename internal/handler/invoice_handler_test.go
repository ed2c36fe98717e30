package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gstbill/internal/domain"
	"gstbill/internal/handler"
	"gstbill/internal/middleware"
	"gstbill/internal/service"
	"gstbill/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newInvoiceHandler() (*handler.InvoiceHandler, *mocks.MockInvoiceService) {
	mockSvc := new(mocks.MockInvoiceService)
	h := handler.NewInvoiceHandler(mockSvc)
	return h, mockSvc
}

// setAuth injects the auth context the JWT middleware would have set.
func setAuth(c *gin.Context, userID uuid.UUID, role domain.UserRole) {
	c.Set(middleware.ContextKeyUserID, userID)
	c.Set(middleware.ContextKeyRole, string(role))
}

func createBody(sellerID, buyerID uuid.UUID) string {
	return fmt.Sprintf(`{
		"seller_id": %q,
		"buyer_id": %q,
		"items": [{"description": "Copper Wire", "qty": 2, "rate": 100, "gst_rate": 18}]
	}`, sellerID, buyerID)
}

func TestInvoiceHandler_Create(t *testing.T) {
	h, mockSvc := newInvoiceHandler()

	sellerID := uuid.New()
	buyerID := uuid.New()
	created := &domain.Invoice{
		ID:            uuid.New(),
		InvoiceNumber: "2025030001",
		Status:        domain.InvoiceStatusDraft,
		Total:         decimal.NewFromInt(236),
	}
	mockSvc.On("Create", mock.Anything, mock.AnythingOfType("service.AccessScope"),
		mock.AnythingOfType("service.CreateInvoiceInput")).Return(created, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	setAuth(c, uuid.New(), domain.RoleAdmin)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/invoices", strings.NewReader(createBody(sellerID, buyerID)))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	mockSvc.AssertExpectations(t)
}

func TestInvoiceHandler_Create_MissingItems(t *testing.T) {
	h, mockSvc := newInvoiceHandler()

	body := fmt.Sprintf(`{"seller_id": %q, "buyer_id": %q}`, uuid.New(), uuid.New())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	setAuth(c, uuid.New(), domain.RoleAdmin)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/invoices", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Create")
}

func TestInvoiceHandler_Create_DuplicateNumber(t *testing.T) {
	h, mockSvc := newInvoiceHandler()

	dup := &domain.DuplicateInvoiceNumberError{Number: "2025030001"}
	mockSvc.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil, dup)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	setAuth(c, uuid.New(), domain.RoleAdmin)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/invoices", strings.NewReader(createBody(uuid.New(), uuid.New())))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "DUPLICATE_INVOICE_NUMBER", resp.Error.Code)
}

func TestInvoiceHandler_GetByID_InvalidID(t *testing.T) {
	h, mockSvc := newInvoiceHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	setAuth(c, uuid.New(), domain.RoleAdmin)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/invoices/not-a-uuid", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	h.GetByID(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "GetByID")
}

func TestInvoiceHandler_GetByID_CrossPartyForbidden(t *testing.T) {
	h, mockSvc := newInvoiceHandler()

	id := uuid.New()
	mockSvc.On("GetByID", mock.Anything, mock.Anything, id).Return(nil, domain.ErrForbidden)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	setAuth(c, uuid.New(), domain.RoleBuyer)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/invoices/"+id.String(), http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusForbidden, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "FORBIDDEN", resp.Error.Code)
}

func TestInvoiceHandler_List_BadDateFilter(t *testing.T) {
	h, mockSvc := newInvoiceHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	setAuth(c, uuid.New(), domain.RoleAdmin)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/invoices?from_date=14-03-2025", http.NoBody)

	h.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "List")
}

func TestInvoiceHandler_List_MissingAuthContext(t *testing.T) {
	h, mockSvc := newInvoiceHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/invoices", http.NoBody)

	h.List(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockSvc.AssertNotCalled(t, "List")
}

func TestInvoiceHandler_List(t *testing.T) {
	h, mockSvc := newInvoiceHandler()

	invoices := []domain.Invoice{{ID: uuid.New(), InvoiceNumber: "2025030001"}}
	mockSvc.On("List", mock.Anything, mock.AnythingOfType("service.AccessScope"),
		mock.AnythingOfType("port.InvoiceFilter")).Return(invoices, 1, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	setAuth(c, uuid.New(), domain.RoleAdmin)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/invoices?status=draft", http.NoBody)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 1, resp.Meta.Total)
	assert.Equal(t, 20, resp.Meta.Limit)
}

func TestInvoiceHandler_List_ForwardsCallerScope(t *testing.T) {
	h, mockSvc := newInvoiceHandler()

	userID := uuid.New()
	otherSeller := uuid.New()
	mockSvc.On("List", mock.Anything, mock.MatchedBy(func(scope service.AccessScope) bool {
		return scope.UserID == userID && scope.Role == domain.RoleBuyer
	}), mock.AnythingOfType("port.InvoiceFilter")).Return([]domain.Invoice{}, 0, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	setAuth(c, userID, domain.RoleBuyer)
	// A buyer asking for some seller's invoices still runs under its own scope.
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/invoices?seller_id="+otherSeller.String(), http.NoBody)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestInvoiceHandler_UpdateStatus_InvalidTransition(t *testing.T) {
	h, mockSvc := newInvoiceHandler()

	id := uuid.New()
	mockSvc.On("UpdateStatus", mock.Anything, mock.Anything, id, mock.Anything).Return(nil, domain.ErrInvalidStatusChange)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	setAuth(c, uuid.New(), domain.RoleAdmin)
	c.Request, _ = http.NewRequest(http.MethodPatch, "/api/v1/invoices/"+id.String()+"/status",
		strings.NewReader(`{"status": "draft"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.UpdateStatus(c)

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_STATUS_CHANGE", resp.Error.Code)
}

func TestInvoiceHandler_Delete_NotDraft(t *testing.T) {
	h, mockSvc := newInvoiceHandler()

	id := uuid.New()
	mockSvc.On("Delete", mock.Anything, mock.Anything, id).Return(domain.ErrInvoiceNotDraft)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	setAuth(c, uuid.New(), domain.RoleAdmin)
	c.Request, _ = http.NewRequest(http.MethodDelete, "/api/v1/invoices/"+id.String(), http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Delete(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestInvoiceHandler_ExportCSV(t *testing.T) {
	h, mockSvc := newInvoiceHandler()

	invoices := []domain.Invoice{{
		InvoiceNumber: "2025030001",
		Status:        domain.InvoiceStatusDraft,
		TaxType:       domain.TaxTypeIGST,
		Subtotal:      decimal.NewFromInt(500),
		IGST:          decimal.NewFromInt(45),
		Total:         decimal.NewFromInt(545),
	}}
	mockSvc.On("List", mock.Anything, mock.AnythingOfType("service.AccessScope"),
		mock.AnythingOfType("port.InvoiceFilter")).Return(invoices, 1, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	setAuth(c, uuid.New(), domain.RoleAdmin)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/invoices/export/csv", http.NoBody)

	h.ExportCSV(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Body.String(), "2025030001")
	assert.Contains(t, w.Body.String(), "Invoice Number")
}
