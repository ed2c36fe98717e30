package gst_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"gstbill/internal/gst"
)

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"0", "Zero Rupees Only"},
		{"1", "One Rupees Only"},
		{"10", "Ten Rupees Only"},
		{"14", "Fourteen Rupees Only"},
		{"20", "Twenty Rupees Only"},
		{"42", "Forty Two Rupees Only"},
		{"100", "One Hundred Rupees Only"},
		{"118", "One Hundred Eighteen Rupees Only"},
		{"999", "Nine Hundred Ninety Nine Rupees Only"},
		{"1000", "One Thousand Rupees Only"},
		{"2501", "Two Thousand Five Hundred One Rupees Only"},
		{"100000", "One Lakh Rupees Only"},
		{"144507", "One Lakh Forty Four Thousand Five Hundred Seven Rupees Only"},
		{"10000000", "One Crore Rupees Only"},
		{"12345678", "One Crore Twenty Three Lakh Forty Five Thousand Six Hundred Seventy Eight Rupees Only"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			got := gst.AmountInWords(decimal.RequireFromString(tt.amount))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAmountInWords_PaiseIgnored(t *testing.T) {
	// Only the rupee portion is spoken; round-off keeps stored totals
	// integral so nothing is normally dropped here.
	got := gst.AmountInWords(decimal.RequireFromString("236.37"))
	assert.Equal(t, "Two Hundred Thirty Six Rupees Only", got)
}
