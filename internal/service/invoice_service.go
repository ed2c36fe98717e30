package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"gstbill/internal/domain"
	"gstbill/internal/gst"
	"gstbill/internal/port"
)

// CreateInvoiceInput is the DTO for creating an invoice.
//
// InvoiceNumber empty means auto-generate. TaxType empty means derive from
// the seller and buyer state codes. Date empty means today.
type CreateInvoiceInput struct {
	SellerID      uuid.UUID           `json:"seller_id" binding:"required"`
	BuyerID       uuid.UUID           `json:"buyer_id" binding:"required"`
	InvoiceNumber string              `json:"invoice_number"`
	Date          *time.Time          `json:"date"`
	TaxType       domain.TaxType      `json:"tax_type"`
	Items         []gst.LineItemInput `json:"items" binding:"required"`
	Notes         string              `json:"notes"`
}

// UpdateStatusInput is the DTO for invoice status changes.
type UpdateStatusInput struct {
	Status        domain.InvoiceStatus `json:"status" binding:"required"`
	PaymentMethod *string              `json:"payment_method"`
	PaymentDate   *time.Time           `json:"payment_date"`
}

// AccessScope identifies the caller for invoice access checks. Admins see
// everything; seller and buyer accounts are restricted to invoices where
// their linked party appears.
type AccessScope struct {
	UserID uuid.UUID
	Role   domain.UserRole
}

// InvoiceService defines the invoice lifecycle contract. Every operation
// takes the caller's scope; listings are narrowed to the caller's party and
// cross-party access returns domain.ErrForbidden.
type InvoiceService interface {
	Create(ctx context.Context, scope AccessScope, input CreateInvoiceInput) (*domain.Invoice, error)
	GetByID(ctx context.Context, scope AccessScope, id uuid.UUID) (*domain.Invoice, error)
	List(ctx context.Context, scope AccessScope, filter port.InvoiceFilter) ([]domain.Invoice, int, error)
	UpdateStatus(ctx context.Context, scope AccessScope, id uuid.UUID, input UpdateStatusInput) (*domain.Invoice, error)
	Delete(ctx context.Context, scope AccessScope, id uuid.UUID) error
}

type invoiceService struct {
	repo          port.InvoiceRepository
	sellerRepo    port.SellerRepository
	buyerRepo     port.BuyerRepository
	email         port.EmailSender
	createRetries int
}

// NewInvoiceService creates a new InvoiceService implementation.
func NewInvoiceService(
	repo port.InvoiceRepository,
	sellerRepo port.SellerRepository,
	buyerRepo port.BuyerRepository,
	email port.EmailSender,
	createRetries int,
) InvoiceService {
	if createRetries < 1 {
		createRetries = 1
	}
	return &invoiceService{
		repo:          repo,
		sellerRepo:    sellerRepo,
		buyerRepo:     buyerRepo,
		email:         email,
		createRetries: createRetries,
	}
}

// partyScope resolves the caller's party restriction. Admins get no
// restriction; seller and buyer accounts resolve to their owned party, and a
// user with no linked party is denied outright.
func (s *invoiceService) partyScope(ctx context.Context, scope AccessScope) (sellerID, buyerID *uuid.UUID, err error) {
	switch scope.Role {
	case domain.RoleAdmin:
		return nil, nil, nil
	case domain.RoleSeller:
		seller, err := s.sellerRepo.GetByOwner(ctx, scope.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, nil, domain.ErrForbidden
			}
			return nil, nil, err
		}
		return &seller.ID, nil, nil
	case domain.RoleBuyer:
		buyer, err := s.buyerRepo.GetByOwner(ctx, scope.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, nil, domain.ErrForbidden
			}
			return nil, nil, err
		}
		return nil, &buyer.ID, nil
	}
	return nil, nil, domain.ErrForbidden
}

// Create computes taxes for the submitted items, snapshots the seller and
// buyer details, and persists the invoice. Auto-generated numbers are retried
// a bounded number of times when a concurrent creation wins the same number;
// a caller-supplied number is never retried. Seller accounts may only issue
// invoices for their own seller.
func (s *invoiceService) Create(ctx context.Context, scope AccessScope, input CreateInvoiceInput) (*domain.Invoice, error) {
	ownSeller, ownBuyer, err := s.partyScope(ctx, scope)
	if err != nil {
		return nil, err
	}
	if ownBuyer != nil {
		return nil, domain.ErrForbidden
	}
	if ownSeller != nil && input.SellerID != *ownSeller {
		return nil, domain.ErrForbidden
	}

	seller, err := s.sellerRepo.GetByID(ctx, input.SellerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewValidationError("seller_id", "seller not found")
		}
		return nil, err
	}
	buyer, err := s.buyerRepo.GetByID(ctx, input.BuyerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewValidationError("buyer_id", "buyer not found")
		}
		return nil, err
	}

	breakdown, items, err := gst.Calculate(input.Items, seller.StateCode, buyer.StateCode, input.TaxType)
	if err != nil {
		return nil, err
	}

	date := time.Now().UTC()
	if input.Date != nil {
		date = *input.Date
	}

	inv := &domain.Invoice{
		Date:     date,
		SellerID: seller.ID,
		BuyerID:  buyer.ID,

		SellerName:        seller.BusinessName,
		SellerAddress:     seller.BusinessAddress,
		SellerGSTIN:       seller.GSTIN,
		SellerStateCode:   seller.StateCode,
		SellerContact:     seller.ContactNumber,
		SellerBankName:    seller.BankName,
		SellerBankAccount: seller.BankAccountNumber,
		SellerBankIFSC:    seller.BankIFSCCode,

		BuyerName:      buyer.BusinessName,
		BuyerAddress:   buyer.BusinessAddress,
		BuyerState:     buyer.State,
		BuyerStateCode: buyer.StateCode,
		BuyerGSTIN:     buyer.GSTIN,

		TaxType:      breakdown.TaxType,
		Subtotal:     breakdown.Subtotal,
		CGST:         breakdown.CGST,
		SGST:         breakdown.SGST,
		IGST:         breakdown.IGST,
		RoundOff:     breakdown.RoundOff,
		Total:        breakdown.Total,
		TotalInWords: gst.AmountInWords(breakdown.Total),

		Status: domain.InvoiceStatusDraft,
		Notes:  input.Notes,
		Items:  items,
	}

	attempts := s.createRetries
	if input.InvoiceNumber != "" {
		attempts = 1
	}
	for attempt := 0; attempt < attempts; attempt++ {
		err = s.repo.Create(ctx, inv, input.InvoiceNumber)
		if err == nil {
			return inv, nil
		}
		if !errors.Is(err, domain.ErrDuplicateInvoiceNumber) {
			return nil, err
		}
	}
	return nil, err
}

func (s *invoiceService) GetByID(ctx context.Context, scope AccessScope, id uuid.UUID) (*domain.Invoice, error) {
	ownSeller, ownBuyer, err := s.partyScope(ctx, scope)
	if err != nil {
		return nil, err
	}
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ownSeller != nil && inv.SellerID != *ownSeller {
		return nil, domain.ErrForbidden
	}
	if ownBuyer != nil && inv.BuyerID != *ownBuyer {
		return nil, domain.ErrForbidden
	}
	return inv, nil
}

// List narrows the filter to the caller's party before querying. A
// caller-supplied seller_id or buyer_id never widens what a non-admin sees.
func (s *invoiceService) List(ctx context.Context, scope AccessScope, filter port.InvoiceFilter) ([]domain.Invoice, int, error) {
	ownSeller, ownBuyer, err := s.partyScope(ctx, scope)
	if err != nil {
		return nil, 0, err
	}
	if ownSeller != nil {
		filter.SellerID = ownSeller
	}
	if ownBuyer != nil {
		filter.BuyerID = ownBuyer
	}

	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.List(ctx, filter)
}

// UpdateStatus enforces the lifecycle: draft -> sent -> paid/cancelled, draft
// may be cancelled directly. Marking paid records the payment details. A move
// to sent notifies the buyer by email; a send failure never fails the
// transition.
func (s *invoiceService) UpdateStatus(ctx context.Context, scope AccessScope, id uuid.UUID, input UpdateStatusInput) (*domain.Invoice, error) {
	if !input.Status.Valid() {
		return nil, domain.NewValidationError("status", "invalid status")
	}

	inv, err := s.getOwned(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if !inv.Status.CanTransitionTo(input.Status) {
		return nil, domain.ErrInvalidStatusChange
	}

	update := port.StatusUpdate{Status: input.Status}
	if input.Status == domain.InvoiceStatusPaid {
		update.PaymentMethod = input.PaymentMethod
		paymentDate := time.Now().UTC()
		if input.PaymentDate != nil {
			paymentDate = *input.PaymentDate
		}
		update.PaymentDate = &paymentDate
	}

	if err := s.repo.UpdateStatus(ctx, id, update); err != nil {
		return nil, err
	}
	inv.Status = input.Status
	inv.PaymentMethod = update.PaymentMethod
	inv.PaymentDate = update.PaymentDate

	if input.Status == domain.InvoiceStatusSent {
		s.notifyBuyer(ctx, inv)
	}
	return inv, nil
}

func (s *invoiceService) notifyBuyer(ctx context.Context, inv *domain.Invoice) {
	buyer, err := s.buyerRepo.GetByID(ctx, inv.BuyerID)
	if err != nil || buyer.Email == "" {
		return
	}
	if err := s.email.SendInvoiceIssued(ctx, buyer.Email, buyer.BusinessName, inv); err != nil {
		log.Printf("invoice %s: buyer notification failed: %v", inv.InvoiceNumber, err)
	}
}

// getOwned fetches an invoice for a write operation. Only admins and the
// issuing seller may modify an invoice; buyer accounts never can.
func (s *invoiceService) getOwned(ctx context.Context, scope AccessScope, id uuid.UUID) (*domain.Invoice, error) {
	ownSeller, ownBuyer, err := s.partyScope(ctx, scope)
	if err != nil {
		return nil, err
	}
	if ownBuyer != nil {
		return nil, domain.ErrForbidden
	}
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ownSeller != nil && inv.SellerID != *ownSeller {
		return nil, domain.ErrForbidden
	}
	return inv, nil
}

// Delete removes a draft invoice. Sent, paid, and cancelled invoices are part
// of the audit trail and can only be cancelled, never deleted.
func (s *invoiceService) Delete(ctx context.Context, scope AccessScope, id uuid.UUID) error {
	inv, err := s.getOwned(ctx, scope, id)
	if err != nil {
		return err
	}
	if inv.Status != domain.InvoiceStatusDraft {
		return domain.ErrInvoiceNotDraft
	}
	return s.repo.Delete(ctx, id)
}
