package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"gstbill/internal/domain"
	"gstbill/internal/port"
)

// StatsService defines the dashboard aggregates contract.
// A nil sellerID aggregates across all sellers; seller accounts are always
// pinned to their own seller regardless of what was requested.
type StatsService interface {
	InvoiceStats(ctx context.Context, scope AccessScope, sellerID *uuid.UUID, months int) (*domain.InvoiceStats, error)
}

type statsService struct {
	repo       port.StatsRepository
	sellerRepo port.SellerRepository
}

// NewStatsService creates a new StatsService implementation.
func NewStatsService(repo port.StatsRepository, sellerRepo port.SellerRepository) StatsService {
	return &statsService{repo: repo, sellerRepo: sellerRepo}
}

func (s *statsService) InvoiceStats(ctx context.Context, scope AccessScope, sellerID *uuid.UUID, months int) (*domain.InvoiceStats, error) {
	switch scope.Role {
	case domain.RoleAdmin:
	case domain.RoleSeller:
		seller, err := s.sellerRepo.GetByOwner(ctx, scope.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrForbidden
			}
			return nil, err
		}
		sellerID = &seller.ID
	default:
		return nil, domain.ErrForbidden
	}

	if months <= 0 || months > 36 {
		months = 12
	}

	counts, err := s.repo.CountByStatus(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, c := range counts {
		total += c
	}

	revenue, err := s.repo.TotalRevenue(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	monthly, err := s.repo.RevenueByMonth(ctx, sellerID, months)
	if err != nil {
		return nil, err
	}

	return &domain.InvoiceStats{
		TotalInvoices:  total,
		CountByStatus:  counts,
		TotalRevenue:   revenue,
		MonthlyRevenue: monthly,
	}, nil
}
