package parser

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finlytics-dev/finlytics/internal/config"
	"github.com/finlytics-dev/finlytics/internal/models"
)

// Categorize assigns a category from the withdrawal/deposit columns and the
// description. Fee keywords force Other regardless of the amounts.
func Categorize(withdrawal, deposit *decimal.Decimal, desc string, layout *config.Layout) models.Category {
	if containsAny(strings.ToLower(desc), layout.FeeWords) {
		return models.Other
	}
	if deposit != nil && !deposit.IsZero() {
		return models.MoneyIn
	}
	if withdrawal != nil && !withdrawal.IsZero() {
		return models.MoneyOut
	}
	return models.Other
}

// CategorizeSigned is the single-signed-amount variant used by the CSV path:
// positive is Money In, negative Money Out, zero or unparsable Other. Fee
// keywords still take precedence.
func CategorizeSigned(amount *decimal.Decimal, desc string, layout *config.Layout) models.Category {
	if containsAny(strings.ToLower(desc), layout.FeeWords) {
		return models.Other
	}
	if amount == nil {
		return models.Other
	}
	switch amount.Sign() {
	case 1:
		return models.MoneyIn
	case -1:
		return models.MoneyOut
	}
	return models.Other
}
