package numbering_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstbill/internal/domain"
	"gstbill/internal/numbering"
)

// fakeIndex is an in-memory numbering.Index seeded with taken numbers.
type fakeIndex struct {
	maxSeq int
	taken  map[string]bool
	err    error
}

func (f *fakeIndex) MaxSequence(_ context.Context, _ uuid.UUID, _ string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.maxSeq, nil
}

func (f *fakeIndex) Exists(_ context.Context, number string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.taken[number], nil
}

func fixedClock() time.Time {
	return time.Date(2025, time.March, 14, 10, 0, 0, 0, time.UTC)
}

func newAllocator() *numbering.Allocator {
	return &numbering.Allocator{Now: fixedClock}
}

func TestAllocate_FirstNumberOfMonth(t *testing.T) {
	idx := &fakeIndex{taken: map[string]bool{}}

	number, err := newAllocator().Allocate(context.Background(), idx, uuid.New(), "")

	require.NoError(t, err)
	assert.Equal(t, "2025030001", number)
}

func TestAllocate_ContinuesSequence(t *testing.T) {
	idx := &fakeIndex{maxSeq: 41, taken: map[string]bool{}}

	number, err := newAllocator().Allocate(context.Background(), idx, uuid.New(), "")

	require.NoError(t, err)
	assert.Equal(t, "2025030042", number)
}

func TestAllocate_BumpsPastCollisions(t *testing.T) {
	// Another seller already holds the next two candidates globally.
	idx := &fakeIndex{
		maxSeq: 7,
		taken: map[string]bool{
			"2025030008": true,
			"2025030009": true,
		},
	}

	number, err := newAllocator().Allocate(context.Background(), idx, uuid.New(), "")

	require.NoError(t, err)
	assert.Equal(t, "2025030010", number)
}

func TestAllocate_Exhaustion(t *testing.T) {
	taken := make(map[string]bool)
	for seq := 1; seq <= 200; seq++ {
		taken[numbering.Format("202503", seq)] = true
	}
	idx := &fakeIndex{taken: taken}
	sellerID := uuid.New()

	_, err := newAllocator().Allocate(context.Background(), idx, sellerID, "")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNumberSpaceExhausted)

	var exhausted *domain.NumberSpaceExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, sellerID, exhausted.SellerID)
	assert.Equal(t, "202503", exhausted.Prefix)
}

func TestAllocate_RequestedNumberPassesThrough(t *testing.T) {
	idx := &fakeIndex{taken: map[string]bool{}}

	number, err := newAllocator().Allocate(context.Background(), idx, uuid.New(), "INV-2025-CUSTOM")

	require.NoError(t, err)
	assert.Equal(t, "INV-2025-CUSTOM", number)
}

func TestAllocate_RequestedNumberDuplicate(t *testing.T) {
	idx := &fakeIndex{taken: map[string]bool{"2025030001": true}}

	_, err := newAllocator().Allocate(context.Background(), idx, uuid.New(), "2025030001")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicateInvoiceNumber)

	var dup *domain.DuplicateInvoiceNumberError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "2025030001", dup.Number)
}

func TestAllocate_IndexError(t *testing.T) {
	idx := &fakeIndex{err: errors.New("connection reset")}

	_, err := newAllocator().Allocate(context.Background(), idx, uuid.New(), "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "numbering.Allocate")
}

func TestAllocate_SequentialAllocationsAreDistinct(t *testing.T) {
	idx := &fakeIndex{taken: map[string]bool{}}
	alloc := newAllocator()
	sellerID := uuid.New()

	const n = 50
	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		number, err := alloc.Allocate(context.Background(), idx, sellerID, "")
		require.NoError(t, err)
		assert.False(t, seen[number], "number %s allocated twice", number)
		seen[number] = true

		// Commit: the next allocation sees this number as taken.
		idx.taken[number] = true
		idx.maxSeq = i + 1
	}
	assert.Len(t, seen, n)
}

func TestAllocate_StaleSequenceStillFindsFreeNumber(t *testing.T) {
	// A racing allocator already took the next candidate but the sequence
	// scan has not caught up; the bump loop walks past it.
	idx := &fakeIndex{
		maxSeq: 3,
		taken:  map[string]bool{"2025030004": true},
	}

	number, err := newAllocator().Allocate(context.Background(), idx, uuid.New(), "")

	require.NoError(t, err)
	assert.Equal(t, "2025030005", number)
}

func TestPrefixAndFormat(t *testing.T) {
	assert.Equal(t, "202512", numbering.Prefix(time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "202501", numbering.Prefix(time.Date(2025, time.January, 31, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, "2025120007", numbering.Format("202512", 7))
	assert.Equal(t, "2025121234", numbering.Format("202512", 1234))
}
