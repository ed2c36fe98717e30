package export_test

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstbill/internal/domain"
	"gstbill/internal/export"
)

func sampleInvoice() domain.Invoice {
	method := "UPI"
	paidOn := time.Date(2025, time.March, 25, 0, 0, 0, 0, time.UTC)
	return domain.Invoice{
		InvoiceNumber:  "2025030001",
		Date:           time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC),
		Status:         domain.InvoiceStatusPaid,
		SellerName:     "Sharma Traders",
		SellerGSTIN:    "29AABCU9603R1ZM",
		BuyerName:      "Gupta Enterprises",
		BuyerGSTIN:     "27AAACG1234F1Z5",
		BuyerState:     "Maharashtra",
		BuyerStateCode: "27",
		TaxType:        domain.TaxTypeIGST,
		Subtotal:       decimal.RequireFromString("500.00"),
		IGST:           decimal.RequireFromString("45.00"),
		RoundOff:       decimal.Zero,
		Total:          decimal.RequireFromString("545.00"),
		PaymentMethod:  &method,
		PaymentDate:    &paidOn,
		CreatedAt:      time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC),
	}
}

func TestCSVWriter(t *testing.T) {
	var buf bytes.Buffer
	w := export.NewCSVWriter(&buf)

	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteInvoices([]domain.Invoice{sampleInvoice()}))
	w.Flush()
	require.NoError(t, w.Error())

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	header := rows[0]
	assert.Equal(t, "Invoice Number", header[0])
	assert.Equal(t, "Total", header[15])
	assert.Equal(t, "Created At", header[18])

	row := rows[1]
	assert.Equal(t, "2025030001", row[0])
	assert.Equal(t, "2025-03-14", row[1])
	assert.Equal(t, "paid", row[2])
	assert.Equal(t, "Sharma Traders", row[3])
	assert.Equal(t, "igst", row[9])
	assert.Equal(t, "500.00", row[10])
	assert.Equal(t, "0.00", row[11], "cgst")
	assert.Equal(t, "45.00", row[13], "igst")
	assert.Equal(t, "545.00", row[15])
	assert.Equal(t, "UPI", row[16])
	assert.Equal(t, "2025-03-25", row[17])
}

func TestCSVWriter_EmptyOptionalFields(t *testing.T) {
	inv := sampleInvoice()
	inv.Status = domain.InvoiceStatusDraft
	inv.PaymentMethod = nil
	inv.PaymentDate = nil

	var buf bytes.Buffer
	w := export.NewCSVWriter(&buf)
	require.NoError(t, w.WriteInvoices([]domain.Invoice{inv}))
	w.Flush()

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Empty(t, rows[0][16])
	assert.Empty(t, rows[0][17])
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"invoices", "invoices"},
		{"march invoices 2025", "march_invoices_2025"},
		{"a/b\\c:d", "a_b_c_d"},
		{"__already__messy__", "already_messy"},
		{"наклад/ная", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, export.SanitizeFilename(tt.in), "input %q", tt.in)
	}
}

func TestSanitizeFilename_Truncates(t *testing.T) {
	long := ""
	for i := 0; i < 30; i++ {
		long += "abcdefghij"
	}
	assert.Len(t, export.SanitizeFilename(long), 100)
}

func TestBuildFilename(t *testing.T) {
	got := export.BuildFilename("march invoices", "csv")
	want := fmt.Sprintf("march_invoices_%s.csv", time.Now().Format("2006-01-02"))
	assert.Equal(t, want, got)
}
