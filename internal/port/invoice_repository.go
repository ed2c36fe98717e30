package port

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"gstbill/internal/domain"
)

// InvoiceFilter narrows and orders invoice listings.
type InvoiceFilter struct {
	SellerID  *uuid.UUID
	BuyerID   *uuid.UUID
	Status    domain.InvoiceStatus
	FromDate  *time.Time
	ToDate    *time.Time
	SortBy    string
	SortOrder string
	Offset    int
	Limit     int
}

// StatusUpdate carries an invoice status change with its payment details.
type StatusUpdate struct {
	Status        domain.InvoiceStatus
	PaymentMethod *string
	PaymentDate   *time.Time
}

// InvoiceRepository defines the contract for invoice persistence.
//
// Create allocates the invoice number and inserts the header, its items, and
// the stock decrements in one transaction. requestedNumber empty means
// auto-generate. The invoices.invoice_number unique constraint is the final
// arbiter under concurrency; a violation surfaces as
// domain.ErrDuplicateInvoiceNumber so callers can retry allocation.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice, requestedNumber string) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	List(ctx context.Context, filter InvoiceFilter) ([]domain.Invoice, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, update StatusUpdate) error
	// Delete removes a draft invoice and restores any product stock its
	// items consumed, atomically.
	Delete(ctx context.Context, id uuid.UUID) error
}

// StatsRepository defines the contract for dashboard aggregates.
// A nil sellerID aggregates across all sellers.
type StatsRepository interface {
	CountByStatus(ctx context.Context, sellerID *uuid.UUID) (map[string]int, error)
	TotalRevenue(ctx context.Context, sellerID *uuid.UUID) (decimal.Decimal, error)
	RevenueByMonth(ctx context.Context, sellerID *uuid.UUID, months int) ([]domain.MonthlyRevenue, error)
}
