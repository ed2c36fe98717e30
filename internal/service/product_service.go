package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"gstbill/internal/domain"
	"gstbill/internal/port"
)

// CreateProductInput is the DTO for creating a product.
type CreateProductInput struct {
	SellerID      uuid.UUID        `json:"seller_id" binding:"required"`
	Name          string           `json:"name" binding:"required"`
	Description   string           `json:"description"`
	HSNCode       string           `json:"hsn_code" binding:"required"`
	Unit          string           `json:"unit"`
	Rate          decimal.Decimal  `json:"rate" binding:"required"`
	GSTRate       *decimal.Decimal `json:"gst_rate"`
	StockQuantity decimal.Decimal  `json:"stock_quantity"`
}

// UpdateProductInput is the DTO for updating a product.
type UpdateProductInput struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	HSNCode       *string          `json:"hsn_code"`
	Unit          *string          `json:"unit"`
	Rate          *decimal.Decimal `json:"rate"`
	GSTRate       *decimal.Decimal `json:"gst_rate"`
	StockQuantity *decimal.Decimal `json:"stock_quantity"`
	IsActive      *bool            `json:"is_active"`
}

// ProductService defines the product catalog contract.
type ProductService interface {
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context, sellerID *uuid.UUID, search string, offset, limit int) ([]domain.Product, int, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	repo       port.ProductRepository
	sellerRepo port.SellerRepository
}

// NewProductService creates a new ProductService implementation.
func NewProductService(repo port.ProductRepository, sellerRepo port.SellerRepository) ProductService {
	return &productService{repo: repo, sellerRepo: sellerRepo}
}

func (s *productService) Create(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	if _, err := s.sellerRepo.GetByID(ctx, input.SellerID); err != nil {
		return nil, err
	}

	if input.Rate.IsNegative() {
		return nil, domain.NewValidationError("rate", "must not be negative")
	}

	gstRate := decimal.NewFromInt(18)
	if input.GSTRate != nil {
		if input.GSTRate.IsNegative() {
			return nil, domain.NewValidationError("gst_rate", "must not be negative")
		}
		gstRate = *input.GSTRate
	}

	unit := input.Unit
	if unit == "" {
		unit = domain.DefaultUnit
	}

	product := &domain.Product{
		SellerID:      input.SellerID,
		Name:          input.Name,
		Description:   input.Description,
		HSNCode:       input.HSNCode,
		Unit:          unit,
		Rate:          input.Rate,
		GSTRate:       gstRate,
		StockQuantity: input.StockQuantity,
		IsActive:      true,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *productService) List(ctx context.Context, sellerID *uuid.UUID, search string, offset, limit int) ([]domain.Product, int, error) {
	return s.repo.List(ctx, sellerID, search, offset, limit)
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.HSNCode != nil {
		product.HSNCode = *input.HSNCode
	}
	if input.Unit != nil {
		product.Unit = *input.Unit
	}
	if input.Rate != nil {
		if input.Rate.IsNegative() {
			return nil, domain.NewValidationError("rate", "must not be negative")
		}
		product.Rate = *input.Rate
	}
	if input.GSTRate != nil {
		if input.GSTRate.IsNegative() {
			return nil, domain.NewValidationError("gst_rate", "must not be negative")
		}
		product.GSTRate = *input.GSTRate
	}
	if input.StockQuantity != nil {
		product.StockQuantity = *input.StockQuantity
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
