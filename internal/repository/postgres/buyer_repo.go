package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gstbill/internal/domain"
	"gstbill/internal/port"
)

type buyerRepo struct {
	db *sqlx.DB
}

// NewBuyerRepo creates a new PostgreSQL-backed BuyerRepository.
func NewBuyerRepo(db *sqlx.DB) port.BuyerRepository {
	return &buyerRepo{db: db}
}

func (r *buyerRepo) Create(ctx context.Context, buyer *domain.Buyer) error {
	buyer.ID = uuid.New()
	now := time.Now().UTC()
	buyer.CreatedAt = now
	buyer.UpdatedAt = now

	query := `INSERT INTO buyers (id, owner_user_id, business_name, business_address, gstin,
			contact_number, email, state, state_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		buyer.ID, buyer.OwnerUserID, buyer.BusinessName, buyer.BusinessAddress, buyer.GSTIN,
		buyer.ContactNumber, buyer.Email, buyer.State, buyer.StateCode, buyer.CreatedAt, buyer.UpdatedAt)
	if err != nil {
		return fmt.Errorf("buyerRepo.Create: %w", err)
	}
	return nil
}

func (r *buyerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Buyer, error) {
	var buyer domain.Buyer
	err := r.db.GetContext(ctx, &buyer, "SELECT * FROM buyers WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("buyerRepo.GetByID: %w", err)
	}
	return &buyer, nil
}

func (r *buyerRepo) GetByOwner(ctx context.Context, userID uuid.UUID) (*domain.Buyer, error) {
	var buyer domain.Buyer
	err := r.db.GetContext(ctx, &buyer, "SELECT * FROM buyers WHERE owner_user_id = $1", userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("buyerRepo.GetByOwner: %w", err)
	}
	return &buyer, nil
}

func (r *buyerRepo) List(ctx context.Context, search string, offset, limit int) ([]domain.Buyer, int, error) {
	where := ""
	args := []interface{}{}
	if search != "" {
		where = "WHERE business_name ILIKE $1 OR gstin ILIKE $1"
		args = append(args, "%"+search+"%")
	}

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM buyers "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("buyerRepo.List count: %w", err)
	}

	query := fmt.Sprintf("SELECT * FROM buyers %s ORDER BY business_name LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var buyers []domain.Buyer
	err = r.db.SelectContext(ctx, &buyers, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("buyerRepo.List: %w", err)
	}
	return buyers, total, nil
}

func (r *buyerRepo) Update(ctx context.Context, buyer *domain.Buyer) error {
	buyer.UpdatedAt = time.Now().UTC()
	query := `UPDATE buyers SET owner_user_id = $1, business_name = $2, business_address = $3,
			gstin = $4, contact_number = $5, email = $6, state = $7, state_code = $8, updated_at = $9
		WHERE id = $10`
	result, err := r.db.ExecContext(ctx, query,
		buyer.OwnerUserID, buyer.BusinessName, buyer.BusinessAddress, buyer.GSTIN,
		buyer.ContactNumber, buyer.Email, buyer.State, buyer.StateCode, buyer.UpdatedAt, buyer.ID)
	if err != nil {
		return fmt.Errorf("buyerRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *buyerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM buyers WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("buyerRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
