package service

import (
	"context"

	"github.com/google/uuid"

	"gstbill/internal/domain"
	"gstbill/internal/port"
)

// CreateSellerInput is the DTO for creating a seller. OwnerUserID links the
// seller to the login account whose invoice access it scopes.
type CreateSellerInput struct {
	OwnerUserID       *uuid.UUID `json:"owner_user_id"`
	BusinessName      string     `json:"business_name" binding:"required"`
	BusinessAddress   string     `json:"business_address" binding:"required"`
	GSTIN             string     `json:"gstin" binding:"required,len=15"`
	ContactNumber     string     `json:"contact_number"`
	Email             string     `json:"email" binding:"omitempty,email"`
	BankName          string     `json:"bank_name"`
	BankAccountNumber string     `json:"bank_account_number"`
	BankIFSCCode      string     `json:"bank_ifsc_code"`
	State             string     `json:"state" binding:"required"`
	StateCode         string     `json:"state_code" binding:"required,len=2"`
}

// UpdateSellerInput is the DTO for updating a seller.
type UpdateSellerInput struct {
	OwnerUserID       *uuid.UUID `json:"owner_user_id"`
	BusinessName      *string    `json:"business_name"`
	BusinessAddress   *string    `json:"business_address"`
	GSTIN             *string    `json:"gstin" binding:"omitempty,len=15"`
	ContactNumber     *string    `json:"contact_number"`
	Email             *string    `json:"email" binding:"omitempty,email"`
	BankName          *string    `json:"bank_name"`
	BankAccountNumber *string    `json:"bank_account_number"`
	BankIFSCCode      *string    `json:"bank_ifsc_code"`
	State             *string    `json:"state"`
	StateCode         *string    `json:"state_code" binding:"omitempty,len=2"`
}

// SellerService defines the seller management contract.
type SellerService interface {
	Create(ctx context.Context, input CreateSellerInput) (*domain.Seller, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Seller, error)
	List(ctx context.Context, search string, offset, limit int) ([]domain.Seller, int, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateSellerInput) (*domain.Seller, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type sellerService struct {
	repo port.SellerRepository
}

// NewSellerService creates a new SellerService implementation.
func NewSellerService(repo port.SellerRepository) SellerService {
	return &sellerService{repo: repo}
}

func (s *sellerService) Create(ctx context.Context, input CreateSellerInput) (*domain.Seller, error) {
	seller := &domain.Seller{
		OwnerUserID:       input.OwnerUserID,
		BusinessName:      input.BusinessName,
		BusinessAddress:   input.BusinessAddress,
		GSTIN:             input.GSTIN,
		ContactNumber:     input.ContactNumber,
		Email:             input.Email,
		BankName:          input.BankName,
		BankAccountNumber: input.BankAccountNumber,
		BankIFSCCode:      input.BankIFSCCode,
		State:             input.State,
		StateCode:         input.StateCode,
	}
	if err := s.repo.Create(ctx, seller); err != nil {
		return nil, err
	}
	return seller, nil
}

func (s *sellerService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Seller, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *sellerService) List(ctx context.Context, search string, offset, limit int) ([]domain.Seller, int, error) {
	return s.repo.List(ctx, search, offset, limit)
}

func (s *sellerService) Update(ctx context.Context, id uuid.UUID, input UpdateSellerInput) (*domain.Seller, error) {
	seller, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.OwnerUserID != nil {
		seller.OwnerUserID = input.OwnerUserID
	}
	if input.BusinessName != nil {
		seller.BusinessName = *input.BusinessName
	}
	if input.BusinessAddress != nil {
		seller.BusinessAddress = *input.BusinessAddress
	}
	if input.GSTIN != nil {
		seller.GSTIN = *input.GSTIN
	}
	if input.ContactNumber != nil {
		seller.ContactNumber = *input.ContactNumber
	}
	if input.Email != nil {
		seller.Email = *input.Email
	}
	if input.BankName != nil {
		seller.BankName = *input.BankName
	}
	if input.BankAccountNumber != nil {
		seller.BankAccountNumber = *input.BankAccountNumber
	}
	if input.BankIFSCCode != nil {
		seller.BankIFSCCode = *input.BankIFSCCode
	}
	if input.State != nil {
		seller.State = *input.State
	}
	if input.StateCode != nil {
		seller.StateCode = *input.StateCode
	}

	if err := s.repo.Update(ctx, seller); err != nil {
		return nil, err
	}
	return seller, nil
}

func (s *sellerService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
