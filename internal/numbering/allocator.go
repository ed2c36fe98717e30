// Package numbering allocates invoice numbers: unique, monotonically
// increasing per seller per calendar month, or caller-supplied after a
// global uniqueness check.
package numbering

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gstbill/internal/domain"
)

// maxAttempts bounds the collision-bump loop during auto generation.
const maxAttempts = 100

// Index is the allocator's view of existing invoice numbers. It must be
// backed by the same transaction that inserts the invoice row so the
// database uniqueness constraint stays the final arbiter.
type Index interface {
	// MaxSequence returns the highest sequence already issued for the
	// seller under the YYYYMM prefix, or 0 if none exist.
	MaxSequence(ctx context.Context, sellerID uuid.UUID, prefix string) (int, error)
	// Exists reports whether number is taken by any seller.
	Exists(ctx context.Context, number string) (bool, error)
}

// Allocator produces invoice numbers. Now is injectable for tests and
// defaults to time.Now.
type Allocator struct {
	Now func() time.Time
}

// New creates an Allocator using the wall clock.
func New() *Allocator {
	return &Allocator{Now: time.Now}
}

// Prefix returns the YYYYMM prefix for t.
func Prefix(t time.Time) string {
	return fmt.Sprintf("%04d%02d", t.Year(), int(t.Month()))
}

// Format renders a prefix and sequence as an invoice number, the sequence
// zero-padded to 4 digits.
func Format(prefix string, sequence int) string {
	return fmt.Sprintf("%s%04d", prefix, sequence)
}

// Allocate returns a unique invoice number for the seller.
//
// A non-empty requested number is validated for uniqueness across the whole
// invoice collection, not just this seller's, and returned unchanged.
// Otherwise the next sequence under the current seller-month prefix is
// taken, re-checked globally, and bumped past collisions up to a bounded
// attempt count.
//
// Sequence lookup and the uniqueness probes are not atomic against
// concurrent allocators; callers must run Allocate inside the transaction
// that inserts the invoice and treat an insert-time constraint violation as
// ErrDuplicateInvoiceNumber, retrying the whole transaction.
func (a *Allocator) Allocate(ctx context.Context, idx Index, sellerID uuid.UUID, requested string) (string, error) {
	if requested != "" {
		taken, err := idx.Exists(ctx, requested)
		if err != nil {
			return "", fmt.Errorf("numbering.Allocate: %w", err)
		}
		if taken {
			return "", &domain.DuplicateInvoiceNumberError{Number: requested}
		}
		return requested, nil
	}

	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	prefix := Prefix(now())

	maxSeq, err := idx.MaxSequence(ctx, sellerID, prefix)
	if err != nil {
		return "", fmt.Errorf("numbering.Allocate: %w", err)
	}

	sequence := maxSeq + 1
	for attempt := 0; attempt < maxAttempts; attempt++ {
		candidate := Format(prefix, sequence)
		taken, err := idx.Exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("numbering.Allocate: %w", err)
		}
		if !taken {
			return candidate, nil
		}
		sequence++
	}

	return "", &domain.NumberSpaceExhaustedError{SellerID: sellerID, Prefix: prefix}
}
