package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gstbill/internal/domain"
	"gstbill/internal/numbering"
	"gstbill/internal/port"
)

type invoiceRepo struct {
	db    *sqlx.DB
	alloc *numbering.Allocator
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB, alloc *numbering.Allocator) port.InvoiceRepository {
	return &invoiceRepo{db: db, alloc: alloc}
}

// txNumberIndex adapts a transaction to the allocator's Index so sequence
// lookup and uniqueness probes see the same snapshot the insert will use.
type txNumberIndex struct {
	tx *sqlx.Tx
}

func (i txNumberIndex) MaxSequence(ctx context.Context, sellerID uuid.UUID, prefix string) (int, error) {
	var numbers []string
	err := i.tx.SelectContext(ctx, &numbers,
		"SELECT invoice_number FROM invoices WHERE seller_id = $1 AND invoice_number LIKE $2 || '%'",
		sellerID, prefix)
	if err != nil {
		return 0, err
	}

	max := 0
	for _, n := range numbers {
		seq, err := strconv.Atoi(strings.TrimPrefix(n, prefix))
		if err != nil {
			// Manual numbers sharing the prefix but not the format are
			// ignored for sequencing.
			continue
		}
		if seq > max {
			max = seq
		}
	}
	return max, nil
}

func (i txNumberIndex) Exists(ctx context.Context, number string) (bool, error) {
	var exists bool
	err := i.tx.GetContext(ctx, &exists,
		"SELECT EXISTS (SELECT 1 FROM invoices WHERE invoice_number = $1)", number)
	return exists, err
}

func isDuplicateNumber(err error) bool {
	return strings.Contains(err.Error(), "duplicate key") &&
		strings.Contains(err.Error(), "invoice_number")
}

// Create allocates the invoice number and persists the invoice header, its
// items, and product stock decrements in one transaction. The unique
// constraint on invoice_number is the final arbiter: a violation at insert
// time surfaces as domain.ErrDuplicateInvoiceNumber.
func (r *invoiceRepo) Create(ctx context.Context, inv *domain.Invoice, requestedNumber string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Create begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	number, err := r.alloc.Allocate(ctx, txNumberIndex{tx: tx}, inv.SellerID, requestedNumber)
	if err != nil {
		return err
	}
	inv.InvoiceNumber = number

	inv.ID = uuid.New()
	now := time.Now().UTC()
	inv.CreatedAt = now
	inv.UpdatedAt = now

	headerQuery := `INSERT INTO invoices (id, invoice_number, date, seller_id, buyer_id,
			seller_name, seller_address, seller_gstin, seller_state_code, seller_contact,
			seller_bank_name, seller_bank_account, seller_bank_ifsc,
			buyer_name, buyer_address, buyer_state, buyer_state_code, buyer_gstin,
			tax_type, subtotal, cgst, sgst, igst, round_off, total, total_in_words,
			status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30)`

	_, err = tx.ExecContext(ctx, headerQuery,
		inv.ID, inv.InvoiceNumber, inv.Date, inv.SellerID, inv.BuyerID,
		inv.SellerName, inv.SellerAddress, inv.SellerGSTIN, inv.SellerStateCode, inv.SellerContact,
		inv.SellerBankName, inv.SellerBankAccount, inv.SellerBankIFSC,
		inv.BuyerName, inv.BuyerAddress, inv.BuyerState, inv.BuyerStateCode, inv.BuyerGSTIN,
		inv.TaxType, inv.Subtotal, inv.CGST, inv.SGST, inv.IGST, inv.RoundOff, inv.Total,
		inv.TotalInWords, inv.Status, inv.Notes, inv.CreatedAt, inv.UpdatedAt)
	if err != nil {
		if isDuplicateNumber(err) {
			return &domain.DuplicateInvoiceNumberError{Number: inv.InvoiceNumber}
		}
		return fmt.Errorf("invoiceRepo.Create header: %w", err)
	}

	itemQuery := `INSERT INTO invoice_items (id, invoice_id, product_id, serial_number,
			description, hsn_code, qty, unit, rate, gst_rate,
			cgst_amount, sgst_amount, igst_amount, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	for idx := range inv.Items {
		item := &inv.Items[idx]
		item.ID = uuid.New()
		item.InvoiceID = inv.ID
		item.CreatedAt = now

		_, err = tx.ExecContext(ctx, itemQuery,
			item.ID, item.InvoiceID, item.ProductID, item.SerialNumber,
			item.Description, item.HSNCode, item.Qty, item.Unit, item.Rate, item.GSTRate,
			item.CGSTAmount, item.SGSTAmount, item.IGSTAmount, item.Amount, item.CreatedAt)
		if err != nil {
			return fmt.Errorf("invoiceRepo.Create item %d: %w", item.SerialNumber, err)
		}

		if item.ProductID != nil {
			_, err = tx.ExecContext(ctx,
				"UPDATE products SET stock_quantity = stock_quantity - $1 WHERE id = $2 AND seller_id = $3",
				item.Qty, *item.ProductID, inv.SellerID)
			if err != nil {
				return fmt.Errorf("invoiceRepo.Create stock decrement: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		if isDuplicateNumber(err) {
			return &domain.DuplicateInvoiceNumberError{Number: inv.InvoiceNumber}
		}
		return fmt.Errorf("invoiceRepo.Create commit: %w", err)
	}
	return nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := r.db.GetContext(ctx, &inv, "SELECT * FROM invoices WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByID: %w", err)
	}

	err = r.db.SelectContext(ctx, &inv.Items,
		"SELECT * FROM invoice_items WHERE invoice_id = $1 ORDER BY serial_number", id)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.GetByID items: %w", err)
	}
	return &inv, nil
}

// sortFields whitelists user-supplied sort columns.
var sortFields = map[string]string{
	"date":           "date",
	"invoice_number": "invoice_number",
	"total":          "total",
	"buyer_name":     "buyer_name",
	"created_at":     "created_at",
}

func (r *invoiceRepo) List(ctx context.Context, filter port.InvoiceFilter) ([]domain.Invoice, int, error) {
	where := []string{"1=1"}
	args := []interface{}{}

	add := func(clause string, value interface{}) {
		args = append(args, value)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}

	if filter.SellerID != nil {
		add("seller_id = $%d", *filter.SellerID)
	}
	if filter.BuyerID != nil {
		add("buyer_id = $%d", *filter.BuyerID)
	}
	if filter.Status != "" {
		add("status = $%d", filter.Status)
	}
	if filter.FromDate != nil {
		add("date >= $%d", *filter.FromDate)
	}
	if filter.ToDate != nil {
		add("date <= $%d", *filter.ToDate)
	}

	whereClause := "WHERE " + strings.Join(where, " AND ")

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM invoices "+whereClause, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List count: %w", err)
	}

	sortField, ok := sortFields[filter.SortBy]
	if !ok {
		sortField = "date"
	}
	sortOrder := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		sortOrder = "ASC"
	}

	query := fmt.Sprintf("SELECT * FROM invoices %s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		whereClause, sortField, sortOrder, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	var invoices []domain.Invoice
	err = r.db.SelectContext(ctx, &invoices, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List: %w", err)
	}
	return invoices, total, nil
}

func (r *invoiceRepo) UpdateStatus(ctx context.Context, id uuid.UUID, update port.StatusUpdate) error {
	query := `UPDATE invoices SET status = $1, payment_method = $2, payment_date = $3,
			updated_at = $4 WHERE id = $5`
	result, err := r.db.ExecContext(ctx, query,
		update.Status, update.PaymentMethod, update.PaymentDate, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("invoiceRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes an invoice and its items, restoring product stock consumed
// by the items, all in one transaction. Status rules are enforced by the
// service layer.
func (r *invoiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Delete begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var items []domain.InvoiceItem
	err = tx.SelectContext(ctx, &items,
		"SELECT * FROM invoice_items WHERE invoice_id = $1 AND product_id IS NOT NULL", id)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Delete items: %w", err)
	}

	for _, item := range items {
		_, err = tx.ExecContext(ctx,
			"UPDATE products SET stock_quantity = stock_quantity + $1 WHERE id = $2",
			item.Qty, *item.ProductID)
		if err != nil {
			return fmt.Errorf("invoiceRepo.Delete stock restore: %w", err)
		}
	}

	// invoice_items cascade on invoice deletion.
	result, err := tx.ExecContext(ctx, "DELETE FROM invoices WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("invoiceRepo.Delete commit: %w", err)
	}
	return nil
}
