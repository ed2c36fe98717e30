package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gstbill/internal/domain"
	"gstbill/internal/service"
	"gstbill/mocks"
)

func TestStatsService_InvoiceStats(t *testing.T) {
	sellerID := uuid.New()
	counts := map[string]int{"draft": 2, "sent": 3, "paid": 5}
	monthly := []domain.MonthlyRevenue{
		{Month: "2025-02", Count: 4, Total: decimal.NewFromInt(9400)},
		{Month: "2025-03", Count: 6, Total: decimal.NewFromInt(15200)},
	}

	repo := new(mocks.MockStatsRepo)
	repo.On("CountByStatus", mock.Anything, &sellerID).Return(counts, nil)
	repo.On("TotalRevenue", mock.Anything, &sellerID).Return(decimal.NewFromInt(24600), nil)
	repo.On("RevenueByMonth", mock.Anything, &sellerID, 6).Return(monthly, nil)

	svc := service.NewStatsService(repo, new(mocks.MockSellerRepo))
	stats, err := svc.InvoiceStats(context.Background(), adminScope(), &sellerID, 6)

	require.NoError(t, err)
	assert.Equal(t, 10, stats.TotalInvoices)
	assert.Equal(t, counts, stats.CountByStatus)
	assert.True(t, stats.TotalRevenue.Equal(decimal.NewFromInt(24600)))
	assert.Equal(t, monthly, stats.MonthlyRevenue)
	repo.AssertExpectations(t)
}

func TestStatsService_InvoiceStats_SellerPinnedToOwnSeller(t *testing.T) {
	userID := uuid.New()
	seller := testSeller()
	seller.OwnerUserID = &userID
	otherSeller := uuid.New()

	repo := new(mocks.MockStatsRepo)
	sellerRepo := new(mocks.MockSellerRepo)
	sellerRepo.On("GetByOwner", mock.Anything, userID).Return(seller, nil)

	// The requested seller_id is ignored for seller accounts.
	repo.On("CountByStatus", mock.Anything, &seller.ID).Return(map[string]int{}, nil)
	repo.On("TotalRevenue", mock.Anything, &seller.ID).Return(decimal.Zero, nil)
	repo.On("RevenueByMonth", mock.Anything, &seller.ID, 12).Return([]domain.MonthlyRevenue{}, nil)

	svc := service.NewStatsService(repo, sellerRepo)
	_, err := svc.InvoiceStats(context.Background(), sellerScope(userID), &otherSeller, 12)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestStatsService_InvoiceStats_BuyerForbidden(t *testing.T) {
	repo := new(mocks.MockStatsRepo)
	svc := service.NewStatsService(repo, new(mocks.MockSellerRepo))

	_, err := svc.InvoiceStats(context.Background(), buyerScope(uuid.New()), nil, 12)

	assert.ErrorIs(t, err, domain.ErrForbidden)
	repo.AssertNotCalled(t, "CountByStatus")
}

func TestStatsService_InvoiceStats_ClampsMonths(t *testing.T) {
	tests := []struct {
		name   string
		months int
	}{
		{"zero", 0},
		{"negative", -4},
		{"too large", 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockStatsRepo)
			repo.On("CountByStatus", mock.Anything, (*uuid.UUID)(nil)).Return(map[string]int{}, nil)
			repo.On("TotalRevenue", mock.Anything, (*uuid.UUID)(nil)).Return(decimal.Zero, nil)
			repo.On("RevenueByMonth", mock.Anything, (*uuid.UUID)(nil), 12).Return([]domain.MonthlyRevenue{}, nil)

			svc := service.NewStatsService(repo, new(mocks.MockSellerRepo))
			_, err := svc.InvoiceStats(context.Background(), adminScope(), nil, tt.months)

			require.NoError(t, err)
			repo.AssertExpectations(t)
		})
	}
}
