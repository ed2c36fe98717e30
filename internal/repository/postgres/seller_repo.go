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

type sellerRepo struct {
	db *sqlx.DB
}

// NewSellerRepo creates a new PostgreSQL-backed SellerRepository.
func NewSellerRepo(db *sqlx.DB) port.SellerRepository {
	return &sellerRepo{db: db}
}

func (r *sellerRepo) Create(ctx context.Context, seller *domain.Seller) error {
	seller.ID = uuid.New()
	now := time.Now().UTC()
	seller.CreatedAt = now
	seller.UpdatedAt = now

	query := `INSERT INTO sellers (id, owner_user_id, business_name, business_address, gstin, contact_number,
			email, bank_name, bank_account_number, bank_ifsc_code, state, state_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.db.ExecContext(ctx, query,
		seller.ID, seller.OwnerUserID, seller.BusinessName, seller.BusinessAddress, seller.GSTIN,
		seller.ContactNumber, seller.Email, seller.BankName, seller.BankAccountNumber, seller.BankIFSCCode,
		seller.State, seller.StateCode, seller.CreatedAt, seller.UpdatedAt)
	if err != nil {
		return fmt.Errorf("sellerRepo.Create: %w", err)
	}
	return nil
}

func (r *sellerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Seller, error) {
	var seller domain.Seller
	err := r.db.GetContext(ctx, &seller, "SELECT * FROM sellers WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("sellerRepo.GetByID: %w", err)
	}
	return &seller, nil
}

func (r *sellerRepo) GetByOwner(ctx context.Context, userID uuid.UUID) (*domain.Seller, error) {
	var seller domain.Seller
	err := r.db.GetContext(ctx, &seller, "SELECT * FROM sellers WHERE owner_user_id = $1", userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("sellerRepo.GetByOwner: %w", err)
	}
	return &seller, nil
}

func (r *sellerRepo) List(ctx context.Context, search string, offset, limit int) ([]domain.Seller, int, error) {
	where := ""
	args := []interface{}{}
	if search != "" {
		where = "WHERE business_name ILIKE $1 OR gstin ILIKE $1"
		args = append(args, "%"+search+"%")
	}

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM sellers "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("sellerRepo.List count: %w", err)
	}

	query := fmt.Sprintf("SELECT * FROM sellers %s ORDER BY business_name LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var sellers []domain.Seller
	err = r.db.SelectContext(ctx, &sellers, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("sellerRepo.List: %w", err)
	}
	return sellers, total, nil
}

func (r *sellerRepo) Update(ctx context.Context, seller *domain.Seller) error {
	seller.UpdatedAt = time.Now().UTC()
	query := `UPDATE sellers SET owner_user_id = $1, business_name = $2, business_address = $3,
			gstin = $4, contact_number = $5, email = $6, bank_name = $7, bank_account_number = $8,
			bank_ifsc_code = $9, state = $10, state_code = $11, updated_at = $12
		WHERE id = $13`
	result, err := r.db.ExecContext(ctx, query,
		seller.OwnerUserID, seller.BusinessName, seller.BusinessAddress, seller.GSTIN,
		seller.ContactNumber, seller.Email, seller.BankName, seller.BankAccountNumber,
		seller.BankIFSCCode, seller.State, seller.StateCode, seller.UpdatedAt, seller.ID)
	if err != nil {
		return fmt.Errorf("sellerRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *sellerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM sellers WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("sellerRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
