package gst

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	onesWords  = []string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine"}
	tensWords  = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}
	teensWords = []string{"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}
)

// convertHundreds renders 0-999. Teens are a lookup, not tens+ones.
func convertHundreds(n int64, sb *strings.Builder) {
	if n > 99 {
		sb.WriteString(onesWords[n/100])
		sb.WriteString(" Hundred ")
		n %= 100
	}
	if n > 19 {
		sb.WriteString(tensWords[n/10])
		sb.WriteString(" ")
		n %= 10
	} else if n > 9 {
		sb.WriteString(teensWords[n-10])
		sb.WriteString(" ")
		return
	}
	if n > 0 {
		sb.WriteString(onesWords[n])
		sb.WriteString(" ")
	}
}

// AmountInWords renders the integer rupee portion of amount in the Indian
// numbering system (crore/lakh/thousand), suffixed "Rupees Only". Paise are
// not spoken; the round-off policy keeps invoice totals integral so nothing
// is lost. Zero renders as "Zero Rupees Only".
func AmountInWords(amount decimal.Decimal) string {
	num := amount.IntPart()
	if num <= 0 {
		return "Zero Rupees Only"
	}

	var sb strings.Builder
	if num >= 10000000 {
		convertHundreds(num/10000000, &sb)
		sb.WriteString("Crore ")
		num %= 10000000
	}
	if num >= 100000 {
		convertHundreds(num/100000, &sb)
		sb.WriteString("Lakh ")
		num %= 100000
	}
	if num >= 1000 {
		convertHundreds(num/1000, &sb)
		sb.WriteString("Thousand ")
		num %= 1000
	}
	if num > 0 {
		convertHundreds(num, &sb)
	}

	return strings.TrimSpace(sb.String()) + " Rupees Only"
}
