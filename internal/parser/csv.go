package parser

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/finlytics-dev/finlytics/internal/config"
	"github.com/finlytics-dev/finlytics/internal/models"
)

// Column aliases accepted in delimited statements, tried in order; the first
// alias present with a non-empty value wins.
var (
	csvDateAliases   = []string{"date", "Date"}
	csvDescAliases   = []string{"description", "Description", "details", "Details"}
	csvAmountAliases = []string{"amount", "Amount", "Debit", "Credit"}
)

// ParseCSV maps delimited rows directly to transactions. The CSV path skips
// line scanning entirely: each row carries one signed amount, categorized by
// sign and fee keywords.
func ParseCSV(r io.Reader, layout *config.Layout) ([]models.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	cols := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		cols[name] = i
	}

	var txns []models.Transaction
	for _, rec := range records[1:] {
		txn := models.Transaction{
			Date:        fieldByAlias(rec, cols, csvDateAliases),
			Description: fieldByAlias(rec, cols, csvDescAliases),
			Amount:      ParseAmount(fieldByAlias(rec, cols, csvAmountAliases)),
		}
		txn.Category = CategorizeSigned(txn.Amount, txn.Description, layout)
		txns = append(txns, txn)
	}
	return txns, nil
}

func fieldByAlias(rec []string, cols map[string]int, aliases []string) string {
	for _, alias := range aliases {
		idx, ok := cols[alias]
		if !ok || idx >= len(rec) {
			continue
		}
		if v := rec[idx]; v != "" {
			return v
		}
	}
	return ""
}
