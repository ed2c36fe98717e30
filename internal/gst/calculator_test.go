package gst_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstbill/internal/domain"
	"gstbill/internal/gst"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestCalculate_IntraState(t *testing.T) {
	items := []gst.LineItemInput{
		{Description: "Copper Wire", HSNCode: "7408", Qty: dec("2"), Rate: dec("100"), GSTRate: decPtr("18")},
	}

	breakdown, out, err := gst.Calculate(items, "29", "29", "")

	require.NoError(t, err)
	assert.Equal(t, domain.TaxTypeCGSTSGST, breakdown.TaxType)
	assert.True(t, breakdown.Subtotal.Equal(dec("200.00")), "subtotal = %s", breakdown.Subtotal)
	assert.True(t, breakdown.CGST.Equal(dec("18.00")), "cgst = %s", breakdown.CGST)
	assert.True(t, breakdown.SGST.Equal(dec("18.00")), "sgst = %s", breakdown.SGST)
	assert.True(t, breakdown.IGST.IsZero())
	assert.True(t, breakdown.RoundOff.IsZero())
	assert.True(t, breakdown.Total.Equal(dec("236.00")), "total = %s", breakdown.Total)

	require.Len(t, out, 1)
	assert.Equal(t, 1, out[0].SerialNumber)
	assert.True(t, out[0].Amount.Equal(dec("200.00")))
	assert.True(t, out[0].CGSTAmount.Equal(dec("18.00")))
	assert.True(t, out[0].SGSTAmount.Equal(dec("18.00")))
	assert.True(t, out[0].IGSTAmount.IsZero())
}

func TestCalculate_InterState(t *testing.T) {
	items := []gst.LineItemInput{
		{Description: "Consulting", HSNCode: "9983", Qty: dec("1"), Rate: dec("500"), GSTRate: decPtr("9")},
	}

	breakdown, out, err := gst.Calculate(items, "29", "27", "")

	require.NoError(t, err)
	assert.Equal(t, domain.TaxTypeIGST, breakdown.TaxType)
	assert.True(t, breakdown.Subtotal.Equal(dec("500.00")))
	assert.True(t, breakdown.CGST.IsZero())
	assert.True(t, breakdown.SGST.IsZero())
	assert.True(t, breakdown.IGST.Equal(dec("45.00")), "igst = %s", breakdown.IGST)
	assert.True(t, breakdown.RoundOff.IsZero())
	assert.True(t, breakdown.Total.Equal(dec("545.00")))

	require.Len(t, out, 1)
	assert.True(t, out[0].IGSTAmount.Equal(dec("45.00")))
}

func TestCalculate_RoundOffAlwaysUpward(t *testing.T) {
	// A zero-rated 236.37 line leaves pre_round = 236.37 exactly.
	items := []gst.LineItemInput{
		{Description: "Widget", Qty: dec("1"), Rate: dec("236.37"), GSTRate: decPtr("0")},
	}

	breakdown, _, err := gst.Calculate(items, "29", "27", "")

	require.NoError(t, err)
	assert.True(t, breakdown.RoundOff.Equal(dec("0.63")), "round_off = %s", breakdown.RoundOff)
	assert.True(t, breakdown.Total.Equal(dec("237")), "total = %s", breakdown.Total)
	assert.True(t, breakdown.Total.IsInteger())
}

func TestCalculate_FractionalTaxRoundsUp(t *testing.T) {
	// 200.31 * 18% = 36.0558, so pre_round carries four decimal places.
	items := []gst.LineItemInput{
		{Description: "Widget", Qty: dec("1"), Rate: dec("200.31"), GSTRate: decPtr("18")},
	}

	breakdown, _, err := gst.Calculate(items, "29", "27", "")

	require.NoError(t, err)
	preRound := breakdown.Subtotal.Add(breakdown.IGST)
	assert.True(t, preRound.Equal(dec("236.3658")), "pre_round = %s", preRound)
	assert.True(t, breakdown.RoundOff.Equal(dec("0.6342")), "round_off = %s", breakdown.RoundOff)
	assert.True(t, breakdown.Total.Equal(dec("237")))
}

func TestCalculate_ExplicitTaxTypeOverride(t *testing.T) {
	items := []gst.LineItemInput{
		{Description: "Export order", Qty: dec("1"), Rate: dec("100"), GSTRate: decPtr("18")},
	}

	// Same state codes would infer CGST+SGST; the explicit flag wins.
	breakdown, _, err := gst.Calculate(items, "29", "29", domain.TaxTypeIGST)

	require.NoError(t, err)
	assert.Equal(t, domain.TaxTypeIGST, breakdown.TaxType)
	assert.True(t, breakdown.CGST.IsZero())
	assert.True(t, breakdown.SGST.IsZero())
	assert.True(t, breakdown.IGST.Equal(dec("18.00")))
}

func TestCalculate_InvalidExplicitTaxType(t *testing.T) {
	items := []gst.LineItemInput{
		{Description: "Widget", Qty: dec("1"), Rate: dec("100")},
	}

	_, _, err := gst.Calculate(items, "29", "29", domain.TaxType("vat"))

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "tax_type", verr.Field)
}

func TestCalculate_DefaultGSTRate(t *testing.T) {
	items := []gst.LineItemInput{
		{Description: "Widget", Qty: dec("1"), Rate: dec("100")},
	}

	breakdown, out, err := gst.Calculate(items, "29", "27", "")

	require.NoError(t, err)
	assert.True(t, out[0].GSTRate.Equal(dec("18")))
	assert.True(t, breakdown.IGST.Equal(dec("18.00")))
}

func TestCalculate_ZeroRatedItem(t *testing.T) {
	// An explicit zero rate is not the same as an omitted rate.
	items := []gst.LineItemInput{
		{Description: "Fresh produce", Qty: dec("5"), Rate: dec("40"), GSTRate: decPtr("0")},
	}

	breakdown, out, err := gst.Calculate(items, "29", "29", "")

	require.NoError(t, err)
	assert.True(t, out[0].GSTRate.IsZero())
	assert.True(t, breakdown.CGST.IsZero())
	assert.True(t, breakdown.SGST.IsZero())
	assert.True(t, breakdown.Total.Equal(dec("200.00")))
}

func TestCalculate_MutualExclusivity(t *testing.T) {
	items := []gst.LineItemInput{
		{Description: "A", Qty: dec("3"), Rate: dec("99.99"), GSTRate: decPtr("12")},
		{Description: "B", Qty: dec("1.5"), Rate: dec("250"), GSTRate: decPtr("5")},
		{Description: "C", Qty: dec("10"), Rate: dec("12.34"), GSTRate: decPtr("28")},
	}

	intra, _, err := gst.Calculate(items, "07", "07", "")
	require.NoError(t, err)
	assert.True(t, intra.IGST.IsZero())
	assert.False(t, intra.CGST.Add(intra.SGST).IsZero())
	assert.True(t, intra.CGST.Equal(intra.SGST), "cgst and sgst must be exact halves")

	inter, _, err := gst.Calculate(items, "07", "09", "")
	require.NoError(t, err)
	assert.True(t, inter.CGST.IsZero())
	assert.True(t, inter.SGST.IsZero())
	assert.False(t, inter.IGST.IsZero())

	for _, b := range []*domain.TaxBreakdown{intra, inter} {
		assert.True(t, b.Total.IsInteger(), "total %s must be integral", b.Total)
		assert.False(t, b.RoundOff.IsNegative())
	}
}

func TestCalculate_Idempotent(t *testing.T) {
	items := []gst.LineItemInput{
		{Description: "A", Qty: dec("7"), Rate: dec("13.13"), GSTRate: decPtr("18")},
		{Description: "B", Qty: dec("2"), Rate: dec("450.50")},
	}

	first, firstItems, err := gst.Calculate(items, "29", "27", "")
	require.NoError(t, err)
	second, secondItems, err := gst.Calculate(items, "29", "27", "")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, firstItems, secondItems)
}

func TestCalculate_ValidationErrors(t *testing.T) {
	valid := gst.LineItemInput{Description: "Widget", Qty: dec("1"), Rate: dec("100")}

	tests := []struct {
		name      string
		items     []gst.LineItemInput
		wantField string
		wantIndex int
	}{
		{
			name:      "no items",
			items:     nil,
			wantField: "items",
			wantIndex: -1,
		},
		{
			name: "blank description",
			items: []gst.LineItemInput{
				valid,
				{Description: "   ", Qty: dec("1"), Rate: dec("10")},
			},
			wantField: "description",
			wantIndex: 1,
		},
		{
			name: "zero qty",
			items: []gst.LineItemInput{
				{Description: "Widget", Qty: dec("0"), Rate: dec("10")},
			},
			wantField: "qty",
			wantIndex: 0,
		},
		{
			name: "negative rate",
			items: []gst.LineItemInput{
				{Description: "Widget", Qty: dec("1"), Rate: dec("-5")},
			},
			wantField: "rate",
			wantIndex: 0,
		},
		{
			name: "gst rate above 100",
			items: []gst.LineItemInput{
				{Description: "Widget", Qty: dec("1"), Rate: dec("10"), GSTRate: decPtr("101")},
			},
			wantField: "gst_rate",
			wantIndex: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := gst.Calculate(tt.items, "29", "29", "")

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
			assert.Equal(t, tt.wantIndex, verr.ItemIndex)
		})
	}
}
