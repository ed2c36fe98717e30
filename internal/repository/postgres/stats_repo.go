package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"gstbill/internal/domain"
	"gstbill/internal/port"
)

type statsRepo struct {
	db *sqlx.DB
}

// NewStatsRepo creates a new PostgreSQL-backed StatsRepository.
func NewStatsRepo(db *sqlx.DB) port.StatsRepository {
	return &statsRepo{db: db}
}

func (r *statsRepo) CountByStatus(ctx context.Context, sellerID *uuid.UUID) (map[string]int, error) {
	query := "SELECT status, COUNT(*) AS count FROM invoices"
	args := []interface{}{}
	if sellerID != nil {
		query += " WHERE seller_id = $1"
		args = append(args, *sellerID)
	}
	query += " GROUP BY status"

	var rows []struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("statsRepo.CountByStatus: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *statsRepo) TotalRevenue(ctx context.Context, sellerID *uuid.UUID) (decimal.Decimal, error) {
	query := "SELECT COALESCE(SUM(total), 0) FROM invoices WHERE status = 'paid'"
	args := []interface{}{}
	if sellerID != nil {
		query += " AND seller_id = $1"
		args = append(args, *sellerID)
	}

	var total decimal.Decimal
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return decimal.Zero, fmt.Errorf("statsRepo.TotalRevenue: %w", err)
	}
	return total, nil
}

func (r *statsRepo) RevenueByMonth(ctx context.Context, sellerID *uuid.UUID, months int) ([]domain.MonthlyRevenue, error) {
	query := `SELECT to_char(date, 'YYYY-MM') AS month, COUNT(*) AS count,
			COALESCE(SUM(total), 0) AS total
		FROM invoices
		WHERE status <> 'cancelled' AND date >= date_trunc('month', now()) - make_interval(months => $1)`
	args := []interface{}{months}
	if sellerID != nil {
		query += " AND seller_id = $2"
		args = append(args, *sellerID)
	}
	query += " GROUP BY 1 ORDER BY 1"

	var rows []domain.MonthlyRevenue
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("statsRepo.RevenueByMonth: %w", err)
	}
	return rows, nil
}
