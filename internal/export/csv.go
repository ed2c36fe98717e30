// Package export renders invoice registers as CSV and XLSX downloads.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"gstbill/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Invoice Number",
	"Date",
	"Status",
	"Seller Name",
	"Seller GSTIN",
	"Buyer Name",
	"Buyer GSTIN",
	"Buyer State",
	"Buyer State Code",
	"Tax Type",
	"Subtotal",
	"CGST",
	"SGST",
	"IGST",
	"Round Off",
	"Total",
	"Payment Method",
	"Payment Date",
	"Created At",
}

// CSVWriter wraps csv.Writer for exporting the invoice register.
type CSVWriter struct {
	csv *csv.Writer
}

// NewCSVWriter creates a CSVWriter that writes to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *CSVWriter) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteInvoices converts a batch of invoices to CSV rows and writes them.
func (w *CSVWriter) WriteInvoices(invoices []domain.Invoice) error {
	for i := range invoices {
		if err := w.csv.Write(invoiceToRow(&invoices[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *CSVWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *CSVWriter) Error() error {
	return w.csv.Error()
}

func invoiceToRow(inv *domain.Invoice) []string {
	row := make([]string, len(columns))
	row[0] = inv.InvoiceNumber
	row[1] = inv.Date.Format("2006-01-02")
	row[2] = string(inv.Status)
	row[3] = inv.SellerName
	row[4] = inv.SellerGSTIN
	row[5] = inv.BuyerName
	row[6] = inv.BuyerGSTIN
	row[7] = inv.BuyerState
	row[8] = inv.BuyerStateCode
	row[9] = string(inv.TaxType)
	row[10] = inv.Subtotal.StringFixed(2)
	row[11] = inv.CGST.StringFixed(2)
	row[12] = inv.SGST.StringFixed(2)
	row[13] = inv.IGST.StringFixed(2)
	row[14] = inv.RoundOff.StringFixed(2)
	row[15] = inv.Total.StringFixed(2)
	if inv.PaymentMethod != nil {
		row[16] = *inv.PaymentMethod
	}
	if inv.PaymentDate != nil {
		row[17] = inv.PaymentDate.Format("2006-01-02")
	}
	row[18] = inv.CreatedAt.Format(time.RFC3339)
	return row
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for the Content-Disposition header.
// Format: {sanitized_name}_{YYYY-MM-DD}.{ext}
func BuildFilename(name, ext string) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(name), time.Now().Format("2006-01-02"), ext)
}
