package models

import "github.com/shopspring/decimal"

// Category classifies a transaction by the direction of money movement.
type Category string

const (
	MoneyIn  Category = "Money In"
	MoneyOut Category = "Money Out"
	// Other covers fees, zero/unparsable amounts and degraded-mode placeholders.
	Other Category = "Other"
)

// Transaction is a single normalized statement entry.
//
// The text/image pipeline fills Withdrawal/Deposit/Balance (at most one of
// Withdrawal and Deposit is set); the CSV pipeline fills the single signed
// Amount instead. Both shapes share this struct, with omitempty keeping the
// serialized form of each path unchanged.
type Transaction struct {
	Date        string           `json:"date"`
	Description string           `json:"description"`
	Withdrawal  *decimal.Decimal `json:"withdrawal,omitempty"`
	Deposit     *decimal.Decimal `json:"deposit,omitempty"`
	Balance     *decimal.Decimal `json:"balance,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Category    Category         `json:"category"`
}

// Result is the parse outcome for one uploaded statement. The three category
// slices partition Raw while preserving its order.
type Result struct {
	Count      int           `json:"count"`
	MoneyIn    []Transaction `json:"moneyIn"`
	MoneyOut   []Transaction `json:"moneyOut"`
	Other      []Transaction `json:"other"`
	Raw        []Transaction `json:"raw"`
	OCREnabled bool          `json:"ocrEnabled"`
}

// Partition groups transactions by category into a Result. Slices are always
// non-nil so they marshal as [] rather than null.
func Partition(txns []Transaction, ocrEnabled bool) Result {
	res := Result{
		Count:      len(txns),
		MoneyIn:    []Transaction{},
		MoneyOut:   []Transaction{},
		Other:      []Transaction{},
		Raw:        txns,
		OCREnabled: ocrEnabled,
	}
	if res.Raw == nil {
		res.Raw = []Transaction{}
	}
	for _, t := range txns {
		switch t.Category {
		case MoneyIn:
			res.MoneyIn = append(res.MoneyIn, t)
		case MoneyOut:
			res.MoneyOut = append(res.MoneyOut, t)
		default:
			res.Other = append(res.Other, t)
		}
	}
	return res
}
