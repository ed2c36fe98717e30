package handler

import (
	"time"

	"github.com/google/uuid"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// RegisterRequest represents the registration request body.
type RegisterRequest struct {
	Username     string `json:"username" binding:"required" example:"sharma_traders"`
	Email        string `json:"email" binding:"required" example:"accounts@sharmatraders.in"`
	Password     string `json:"password" binding:"required" example:"securepassword123"`
	Role         string `json:"role" example:"seller"`
	BusinessName string `json:"business_name" example:"Sharma Traders"`
}

// LoginRequest represents the login request body.
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"sharma_traders"`
	Password string `json:"password" binding:"required" example:"securepassword123"`
}

// RefreshRequest represents the token refresh request body.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// CreateSellerRequest represents the create seller request body.
type CreateSellerRequest struct {
	BusinessName      string `json:"business_name" binding:"required" example:"Sharma Traders"`
	BusinessAddress   string `json:"business_address" binding:"required" example:"14 MG Road, Bengaluru"`
	GSTIN             string `json:"gstin" binding:"required" example:"29AABCU9603R1ZM"`
	ContactNumber     string `json:"contact_number" example:"+91 98450 12345"`
	Email             string `json:"email" example:"accounts@sharmatraders.in"`
	BankName          string `json:"bank_name" example:"HDFC Bank"`
	BankAccountNumber string `json:"bank_account_number" example:"50100123456789"`
	BankIFSCCode      string `json:"bank_ifsc_code" example:"HDFC0001234"`
	State             string `json:"state" binding:"required" example:"Karnataka"`
	StateCode         string `json:"state_code" binding:"required" example:"29"`
}

// UpdateSellerRequest represents the update seller request body.
type UpdateSellerRequest struct {
	BusinessName    *string `json:"business_name" example:"Sharma Traders Pvt Ltd"`
	BusinessAddress *string `json:"business_address" example:"14 MG Road, Bengaluru"`
	ContactNumber   *string `json:"contact_number" example:"+91 98450 12345"`
	Email           *string `json:"email" example:"billing@sharmatraders.in"`
	State           *string `json:"state" example:"Karnataka"`
	StateCode       *string `json:"state_code" example:"29"`
}

// CreateBuyerRequest represents the create buyer request body.
type CreateBuyerRequest struct {
	BusinessName    string `json:"business_name" binding:"required" example:"Mehta Electronics"`
	BusinessAddress string `json:"business_address" binding:"required" example:"8 Linking Road, Mumbai"`
	GSTIN           string `json:"gstin" example:"27AABCM1234A1Z5"`
	ContactNumber   string `json:"contact_number" example:"+91 98200 54321"`
	Email           string `json:"email" example:"purchase@mehtaelectronics.in"`
	State           string `json:"state" binding:"required" example:"Maharashtra"`
	StateCode       string `json:"state_code" binding:"required" example:"27"`
}

// UpdateBuyerRequest represents the update buyer request body.
type UpdateBuyerRequest struct {
	BusinessName    *string `json:"business_name" example:"Mehta Electronics LLP"`
	BusinessAddress *string `json:"business_address" example:"8 Linking Road, Mumbai"`
	ContactNumber   *string `json:"contact_number" example:"+91 98200 54321"`
	Email           *string `json:"email" example:"purchase@mehtaelectronics.in"`
	State           *string `json:"state" example:"Maharashtra"`
	StateCode       *string `json:"state_code" example:"27"`
}

// CreateProductRequest represents the create product request body.
type CreateProductRequest struct {
	SellerID      uuid.UUID `json:"seller_id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name          string    `json:"name" binding:"required" example:"Copper Wire 2.5mm"`
	Description   string    `json:"description" example:"FR grade, 90m coil"`
	HSNCode       string    `json:"hsn_code" binding:"required" example:"85444920"`
	Unit          string    `json:"unit" example:"NOS"`
	Rate          string    `json:"rate" example:"1450.00"`
	GSTRate       string    `json:"gst_rate" example:"18"`
	StockQuantity string    `json:"stock_quantity" example:"120"`
}

// UpdateProductRequest represents the update product request body.
type UpdateProductRequest struct {
	Name          *string `json:"name" example:"Copper Wire 2.5mm FR"`
	Description   *string `json:"description" example:"FR grade, 90m coil"`
	HSNCode       *string `json:"hsn_code" example:"85444920"`
	Unit          *string `json:"unit" example:"NOS"`
	Rate          *string `json:"rate" example:"1499.00"`
	GSTRate       *string `json:"gst_rate" example:"18"`
	StockQuantity *string `json:"stock_quantity" example:"95"`
	IsActive      *bool   `json:"is_active" example:"true"`
}

// InvoiceLineRequest represents a single line item in the create invoice request.
type InvoiceLineRequest struct {
	ProductID   *uuid.UUID `json:"product_id" example:"660e8400-e29b-41d4-a716-446655440001"`
	Description string     `json:"description" example:"Copper Wire 2.5mm"`
	HSNCode     string     `json:"hsn_code" example:"85444920"`
	Unit        string     `json:"unit" example:"NOS"`
	Qty         string     `json:"qty" example:"2"`
	Rate        string     `json:"rate" example:"100.00"`
	GSTRate     *string    `json:"gst_rate" example:"18"`
}

// CreateInvoiceRequest represents the create invoice request body.
type CreateInvoiceRequest struct {
	SellerID      uuid.UUID            `json:"seller_id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	BuyerID       uuid.UUID            `json:"buyer_id" binding:"required" example:"770e8400-e29b-41d4-a716-446655440002"`
	InvoiceNumber string               `json:"invoice_number" example:""`
	Date          *time.Time           `json:"date" example:"2025-04-12T00:00:00Z"`
	TaxType       string               `json:"tax_type" example:"cgst_sgst"`
	Items         []InvoiceLineRequest `json:"items" binding:"required"`
	Notes         string               `json:"notes" example:"Delivery within 7 days"`
}

// UpdateInvoiceStatusRequest represents the status change request body.
type UpdateInvoiceStatusRequest struct {
	Status        string     `json:"status" binding:"required" example:"sent"`
	PaymentMethod *string    `json:"payment_method" example:"NEFT"`
	PaymentDate   *time.Time `json:"payment_date" example:"2025-04-20T00:00:00Z"`
}

// UpdateUserRequest represents the update user request body.
type UpdateUserRequest struct {
	Email        *string `json:"email" example:"accounts@sharmatraders.in"`
	Password     *string `json:"password" example:"newsecurepassword"`
	Role         *string `json:"role" example:"seller"`
	BusinessName *string `json:"business_name" example:"Sharma Traders"`
	IsActive     *bool   `json:"is_active" example:"true"`
}

// --- Response Types ---

// TokenResponse represents the authentication token response.
type TokenResponse struct {
	AccessToken  string    `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string    `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt    time.Time `json:"expires_at" example:"2025-04-12T10:30:00Z"`
}

// LoginResponse represents the login response payload.
type LoginResponse struct {
	Tokens TokenResponse `json:"tokens"`
	User   interface{}   `json:"user"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"operation completed successfully"`
}

// DownloadURLResponse represents a presigned attachment download URL.
type DownloadURLResponse struct {
	DownloadURL string `json:"download_url" example:"https://s3.amazonaws.com/gstbill-attachments/...?X-Amz-Signature=..."`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
