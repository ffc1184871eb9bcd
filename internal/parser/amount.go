package parser

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a numeric token like "1,234.56" into a decimal value.
// It returns nil for anything that is not an amount: empty strings, a lone
// "-" (empty statement cells), or tokens that fail strict decimal parsing.
// Malformed tokens are routine in OCR output, so failure is signalled as
// absence rather than an error.
func ParseAmount(s string) *decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	if s == "" || s == "-" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}
