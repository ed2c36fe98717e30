package service

import (
	"context"

	"github.com/google/uuid"

	"gstbill/internal/domain"
	"gstbill/internal/port"
)

// CreateBuyerInput is the DTO for creating a buyer. OwnerUserID links the
// buyer to the login account whose invoice access it scopes.
type CreateBuyerInput struct {
	OwnerUserID     *uuid.UUID `json:"owner_user_id"`
	BusinessName    string     `json:"business_name" binding:"required"`
	BusinessAddress string     `json:"business_address" binding:"required"`
	GSTIN           string     `json:"gstin" binding:"omitempty,len=15"`
	ContactNumber   string     `json:"contact_number"`
	Email           string     `json:"email" binding:"omitempty,email"`
	State           string     `json:"state" binding:"required"`
	StateCode       string     `json:"state_code" binding:"required,len=2"`
}

// UpdateBuyerInput is the DTO for updating a buyer.
type UpdateBuyerInput struct {
	OwnerUserID     *uuid.UUID `json:"owner_user_id"`
	BusinessName    *string    `json:"business_name"`
	BusinessAddress *string    `json:"business_address"`
	GSTIN           *string    `json:"gstin" binding:"omitempty,len=15"`
	ContactNumber   *string    `json:"contact_number"`
	Email           *string    `json:"email" binding:"omitempty,email"`
	State           *string    `json:"state"`
	StateCode       *string    `json:"state_code" binding:"omitempty,len=2"`
}

// BuyerService defines the buyer management contract.
type BuyerService interface {
	Create(ctx context.Context, input CreateBuyerInput) (*domain.Buyer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Buyer, error)
	List(ctx context.Context, search string, offset, limit int) ([]domain.Buyer, int, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateBuyerInput) (*domain.Buyer, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type buyerService struct {
	repo port.BuyerRepository
}

// NewBuyerService creates a new BuyerService implementation.
func NewBuyerService(repo port.BuyerRepository) BuyerService {
	return &buyerService{repo: repo}
}

func (s *buyerService) Create(ctx context.Context, input CreateBuyerInput) (*domain.Buyer, error) {
	buyer := &domain.Buyer{
		OwnerUserID:     input.OwnerUserID,
		BusinessName:    input.BusinessName,
		BusinessAddress: input.BusinessAddress,
		GSTIN:           input.GSTIN,
		ContactNumber:   input.ContactNumber,
		Email:           input.Email,
		State:           input.State,
		StateCode:       input.StateCode,
	}
	if err := s.repo.Create(ctx, buyer); err != nil {
		return nil, err
	}
	return buyer, nil
}

func (s *buyerService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Buyer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *buyerService) List(ctx context.Context, search string, offset, limit int) ([]domain.Buyer, int, error) {
	return s.repo.List(ctx, search, offset, limit)
}

func (s *buyerService) Update(ctx context.Context, id uuid.UUID, input UpdateBuyerInput) (*domain.Buyer, error) {
	buyer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.OwnerUserID != nil {
		buyer.OwnerUserID = input.OwnerUserID
	}
	if input.BusinessName != nil {
		buyer.BusinessName = *input.BusinessName
	}
	if input.BusinessAddress != nil {
		buyer.BusinessAddress = *input.BusinessAddress
	}
	if input.GSTIN != nil {
		buyer.GSTIN = *input.GSTIN
	}
	if input.ContactNumber != nil {
		buyer.ContactNumber = *input.ContactNumber
	}
	if input.Email != nil {
		buyer.Email = *input.Email
	}
	if input.State != nil {
		buyer.State = *input.State
	}
	if input.StateCode != nil {
		buyer.StateCode = *input.StateCode
	}

	if err := s.repo.Update(ctx, buyer); err != nil {
		return nil, err
	}
	return buyer, nil
}

func (s *buyerService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
