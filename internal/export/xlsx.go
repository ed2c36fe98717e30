package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"gstbill/internal/domain"
)

const sheetName = "Invoices"

// WriteXLSX renders the invoice register as a single-sheet XLSX workbook.
// Columns match the CSV export; money columns are written as numbers so
// spreadsheet formulas work on them.
func WriteXLSX(w io.Writer, invoices []domain.Invoice) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("export.WriteXLSX: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("export.WriteXLSX header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		lastCol, _ := excelize.ColumnNumberToName(len(columns))
		_ = f.SetCellStyle(sheetName, "A1", lastCol+"1", bold)
	}

	for i := range invoices {
		inv := &invoices[i]
		row := []interface{}{
			inv.InvoiceNumber,
			inv.Date.Format("2006-01-02"),
			string(inv.Status),
			inv.SellerName,
			inv.SellerGSTIN,
			inv.BuyerName,
			inv.BuyerGSTIN,
			inv.BuyerState,
			inv.BuyerStateCode,
			string(inv.TaxType),
			inv.Subtotal.InexactFloat64(),
			inv.CGST.InexactFloat64(),
			inv.SGST.InexactFloat64(),
			inv.IGST.InexactFloat64(),
			inv.RoundOff.InexactFloat64(),
			inv.Total.InexactFloat64(),
			"",
			"",
			inv.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if inv.PaymentMethod != nil {
			row[16] = *inv.PaymentMethod
		}
		if inv.PaymentDate != nil {
			row[17] = inv.PaymentDate.Format("2006-01-02")
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("export.WriteXLSX: %w", err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("export.WriteXLSX row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export.WriteXLSX write: %w", err)
	}
	return nil
}
