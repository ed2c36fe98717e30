package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User represents an authenticated account. Sellers and buyers log in with
// the same credentials model; the role decides what they can see.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         UserRole  `db:"role" json:"role"`
	BusinessName string    `db:"business_name" json:"business_name"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Seller represents a selling business that issues invoices.
// OwnerUserID links the seller to its login account; invoice access for
// seller-role users is scoped through it. Nil means no login owns this party.
type Seller struct {
	ID                uuid.UUID  `db:"id" json:"id"`
	OwnerUserID       *uuid.UUID `db:"owner_user_id" json:"owner_user_id"`
	BusinessName      string     `db:"business_name" json:"business_name"`
	BusinessAddress   string     `db:"business_address" json:"business_address"`
	GSTIN             string     `db:"gstin" json:"gstin"`
	ContactNumber     string     `db:"contact_number" json:"contact_number"`
	Email             string     `db:"email" json:"email"`
	BankName          string     `db:"bank_name" json:"bank_name"`
	BankAccountNumber string     `db:"bank_account_number" json:"bank_account_number"`
	BankIFSCCode      string     `db:"bank_ifsc_code" json:"bank_ifsc_code"`
	State             string     `db:"state" json:"state"`
	StateCode         string     `db:"state_code" json:"state_code"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at" json:"updated_at"`
}

// Buyer represents a buying business that receives invoices.
// OwnerUserID plays the same scoping role as on Seller.
type Buyer struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	OwnerUserID     *uuid.UUID `db:"owner_user_id" json:"owner_user_id"`
	BusinessName    string     `db:"business_name" json:"business_name"`
	BusinessAddress string     `db:"business_address" json:"business_address"`
	GSTIN           string     `db:"gstin" json:"gstin"`
	ContactNumber   string     `db:"contact_number" json:"contact_number"`
	Email           string     `db:"email" json:"email"`
	State           string     `db:"state" json:"state"`
	StateCode       string     `db:"state_code" json:"state_code"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// Product is a catalog entry owned by a seller.
type Product struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	SellerID      uuid.UUID       `db:"seller_id" json:"seller_id"`
	Name          string          `db:"name" json:"name"`
	Description   string          `db:"description" json:"description"`
	HSNCode       string          `db:"hsn_code" json:"hsn_code"`
	Unit          string          `db:"unit" json:"unit"`
	Rate          decimal.Decimal `db:"rate" json:"rate"`
	GSTRate       decimal.Decimal `db:"gst_rate" json:"gst_rate"`
	StockQuantity decimal.Decimal `db:"stock_quantity" json:"stock_quantity"`
	IsActive      bool            `db:"is_active" json:"is_active"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

// TaxBreakdown holds the computed invoice-level tax figures.
// Exactly one of CGST+SGST or IGST is non-zero, never both.
type TaxBreakdown struct {
	TaxType  TaxType         `json:"tax_type"`
	Subtotal decimal.Decimal `json:"subtotal"`
	CGST     decimal.Decimal `json:"cgst"`
	SGST     decimal.Decimal `json:"sgst"`
	IGST     decimal.Decimal `json:"igst"`
	RoundOff decimal.Decimal `json:"round_off"`
	Total    decimal.Decimal `json:"total"`
}

// Invoice is a GST tax invoice. Seller and buyer details are snapshotted at
// creation time so later edits to the parties never change an issued invoice.
// Tax figures are immutable once computed; corrections mean a new invoice.
type Invoice struct {
	ID            uuid.UUID `db:"id" json:"id"`
	InvoiceNumber string    `db:"invoice_number" json:"invoice_number"`
	Date          time.Time `db:"date" json:"date"`
	SellerID      uuid.UUID `db:"seller_id" json:"seller_id"`
	BuyerID       uuid.UUID `db:"buyer_id" json:"buyer_id"`

	SellerName        string `db:"seller_name" json:"seller_name"`
	SellerAddress     string `db:"seller_address" json:"seller_address"`
	SellerGSTIN       string `db:"seller_gstin" json:"seller_gstin"`
	SellerStateCode   string `db:"seller_state_code" json:"seller_state_code"`
	SellerContact     string `db:"seller_contact" json:"seller_contact"`
	SellerBankName    string `db:"seller_bank_name" json:"seller_bank_name"`
	SellerBankAccount string `db:"seller_bank_account" json:"seller_bank_account"`
	SellerBankIFSC    string `db:"seller_bank_ifsc" json:"seller_bank_ifsc"`

	BuyerName      string `db:"buyer_name" json:"buyer_name"`
	BuyerAddress   string `db:"buyer_address" json:"buyer_address"`
	BuyerState     string `db:"buyer_state" json:"buyer_state"`
	BuyerStateCode string `db:"buyer_state_code" json:"buyer_state_code"`
	BuyerGSTIN     string `db:"buyer_gstin" json:"buyer_gstin"`

	TaxType      TaxType         `db:"tax_type" json:"tax_type"`
	Subtotal     decimal.Decimal `db:"subtotal" json:"subtotal"`
	CGST         decimal.Decimal `db:"cgst" json:"cgst"`
	SGST         decimal.Decimal `db:"sgst" json:"sgst"`
	IGST         decimal.Decimal `db:"igst" json:"igst"`
	RoundOff     decimal.Decimal `db:"round_off" json:"round_off"`
	Total        decimal.Decimal `db:"total" json:"total"`
	TotalInWords string          `db:"total_in_words" json:"total_in_words"`

	Status        InvoiceStatus `db:"status" json:"status"`
	PaymentMethod *string       `db:"payment_method" json:"payment_method"`
	PaymentDate   *time.Time    `db:"payment_date" json:"payment_date"`
	Notes         string        `db:"notes" json:"notes"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`

	Items []InvoiceItem `db:"-" json:"items,omitempty"`
}

// InvoiceItem is a single line on an invoice. Serial numbers run 1..N and
// the order is significant.
type InvoiceItem struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	InvoiceID    uuid.UUID       `db:"invoice_id" json:"invoice_id"`
	ProductID    *uuid.UUID      `db:"product_id" json:"product_id"`
	SerialNumber int             `db:"serial_number" json:"serial_number"`
	Description  string          `db:"description" json:"description"`
	HSNCode      string          `db:"hsn_code" json:"hsn_code"`
	Qty          decimal.Decimal `db:"qty" json:"qty"`
	Unit         string          `db:"unit" json:"unit"`
	Rate         decimal.Decimal `db:"rate" json:"rate"`
	GSTRate      decimal.Decimal `db:"gst_rate" json:"gst_rate"`
	CGSTAmount   decimal.Decimal `db:"cgst_amount" json:"cgst_amount"`
	SGSTAmount   decimal.Decimal `db:"sgst_amount" json:"sgst_amount"`
	IGSTAmount   decimal.Decimal `db:"igst_amount" json:"igst_amount"`
	Amount       decimal.Decimal `db:"amount" json:"amount"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
}

// Attachment stores metadata for a supporting document uploaded against an
// invoice (purchase order copy, delivery challan, and the like).
type Attachment struct {
	ID           uuid.UUID `db:"id" json:"id"`
	InvoiceID    uuid.UUID `db:"invoice_id" json:"invoice_id"`
	UploadedBy   uuid.UUID `db:"uploaded_by" json:"uploaded_by"`
	FileName     string    `db:"file_name" json:"file_name"`
	OriginalName string    `db:"original_name" json:"original_name"`
	FileType     FileType  `db:"file_type" json:"file_type"`
	FileSize     int64     `db:"file_size" json:"file_size"`
	S3Bucket     string    `db:"s3_bucket" json:"s3_bucket"`
	S3Key        string    `db:"s3_key" json:"s3_key"`
	ContentType  string    `db:"content_type" json:"content_type"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// MonthlyRevenue is one row of the dashboard revenue series.
type MonthlyRevenue struct {
	Month string          `db:"month" json:"month"`
	Count int             `db:"count" json:"count"`
	Total decimal.Decimal `db:"total" json:"total"`
}

// InvoiceStats aggregates dashboard figures for a seller or the whole system.
type InvoiceStats struct {
	TotalInvoices  int              `json:"total_invoices"`
	CountByStatus  map[string]int   `json:"count_by_status"`
	TotalRevenue   decimal.Decimal  `json:"total_revenue"`
	MonthlyRevenue []MonthlyRevenue `json:"monthly_revenue"`
}
