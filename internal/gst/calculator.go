// Package gst implements the invoice tax-calculation engine: per-item and
// invoice-level CGST/SGST or IGST, the upward round-off, and the
// amount-in-words rendering required on Indian tax invoices.
package gst

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"gstbill/internal/domain"
)

// DefaultGSTRate applies when a line item omits its GST rate percent.
var DefaultGSTRate = decimal.NewFromInt(18)

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// LineItemInput is a raw line item as submitted by the request layer.
// Numeric fields unmarshal from both JSON numbers and strings; GSTRate is a
// pointer so an omitted rate (defaulted) is distinguishable from an explicit
// zero-rated item.
type LineItemInput struct {
	ProductID   *uuid.UUID       `json:"product_id"`
	Description string           `json:"description"`
	HSNCode     string           `json:"hsn_code"`
	Unit        string           `json:"unit"`
	Qty         decimal.Decimal  `json:"qty"`
	Rate        decimal.Decimal  `json:"rate"`
	GSTRate     *decimal.Decimal `json:"gst_rate"`
}

// ResolveTaxType decides the jurisdiction split for an invoice, once, before
// any per-item computation. An explicit type overrides; otherwise matching
// state codes mean intra-state (CGST+SGST) and differing codes mean IGST.
func ResolveTaxType(sellerStateCode, buyerStateCode string, explicit domain.TaxType) (domain.TaxType, error) {
	if explicit != "" {
		if !explicit.Valid() {
			return "", domain.NewValidationError("tax_type", "must be cgst_sgst or igst")
		}
		return explicit, nil
	}
	if sellerStateCode == buyerStateCode {
		return domain.TaxTypeCGSTSGST, nil
	}
	return domain.TaxTypeIGST, nil
}

// validateItems checks every line item before any monetary computation.
// The first violation fails the whole calculation; nothing is partially
// applied.
func validateItems(items []LineItemInput) error {
	if len(items) == 0 {
		return domain.NewValidationError("items", "at least one item is required")
	}
	for i, item := range items {
		if strings.TrimSpace(item.Description) == "" {
			return domain.NewItemValidationError(i, "description", "must not be empty")
		}
		if !item.Qty.IsPositive() {
			return domain.NewItemValidationError(i, "qty", "must be greater than 0")
		}
		if item.Rate.IsNegative() {
			return domain.NewItemValidationError(i, "rate", "must be non-negative")
		}
		if item.GSTRate != nil {
			if item.GSTRate.IsNegative() || item.GSTRate.GreaterThan(hundred) {
				return domain.NewItemValidationError(i, "gst_rate", "must be between 0 and 100")
			}
		}
	}
	return nil
}

// Calculate validates the submitted items, resolves the jurisdiction split,
// and computes per-item and invoice-level tax amounts.
//
// Per item: taxable amount = round2(qty x rate); tax = taxable x rate/100,
// split in exact halves for CGST+SGST or taken whole for IGST. The invoice
// total is rounded up to the next whole rupee and the difference recorded as
// round_off, so totals are always integral.
//
// The returned items carry serial numbers 1..N in submission order. The
// function is pure: identical inputs yield identical results.
func Calculate(items []LineItemInput, sellerStateCode, buyerStateCode string, explicit domain.TaxType) (*domain.TaxBreakdown, []domain.InvoiceItem, error) {
	if err := validateItems(items); err != nil {
		return nil, nil, err
	}

	taxType, err := ResolveTaxType(sellerStateCode, buyerStateCode, explicit)
	if err != nil {
		return nil, nil, err
	}

	subtotal := decimal.Zero
	cgstTotal := decimal.Zero
	sgstTotal := decimal.Zero
	igstTotal := decimal.Zero

	out := make([]domain.InvoiceItem, 0, len(items))
	for i, in := range items {
		gstRate := DefaultGSTRate
		if in.GSTRate != nil {
			gstRate = *in.GSTRate
		}
		unit := in.Unit
		if unit == "" {
			unit = domain.DefaultUnit
		}

		// Half-up to 2 decimal places; rates and quantities may carry more.
		amount := in.Qty.Mul(in.Rate).Round(2)
		taxAmount := amount.Mul(gstRate).Div(hundred)

		item := domain.InvoiceItem{
			ProductID:    in.ProductID,
			SerialNumber: i + 1,
			Description:  in.Description,
			HSNCode:      in.HSNCode,
			Qty:          in.Qty,
			Unit:         unit,
			Rate:         in.Rate,
			GSTRate:      gstRate,
			Amount:       amount,
			CGSTAmount:   decimal.Zero,
			SGSTAmount:   decimal.Zero,
			IGSTAmount:   decimal.Zero,
		}

		if taxType == domain.TaxTypeCGSTSGST {
			// Exact halves. A tax amount with an odd minimal unit leaves a
			// half-paisa on each side; it is not redistributed.
			half := taxAmount.Div(two)
			item.CGSTAmount = half
			item.SGSTAmount = half
			cgstTotal = cgstTotal.Add(half)
			sgstTotal = sgstTotal.Add(half)
		} else {
			item.IGSTAmount = taxAmount
			igstTotal = igstTotal.Add(taxAmount)
		}

		subtotal = subtotal.Add(amount)
		out = append(out, item)
	}

	preRound := subtotal.Add(cgstTotal).Add(sgstTotal).Add(igstTotal)
	// Always up to the next whole rupee, never bankers' rounding.
	roundOff := preRound.Ceil().Sub(preRound)
	total := preRound.Add(roundOff)

	breakdown := &domain.TaxBreakdown{
		TaxType:  taxType,
		Subtotal: subtotal,
		CGST:     cgstTotal,
		SGST:     sgstTotal,
		IGST:     igstTotal,
		RoundOff: roundOff,
		Total:    total,
	}
	return breakdown, out, nil
}
