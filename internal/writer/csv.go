package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"

	"github.com/finlytics-dev/finlytics/internal/models"
)

// CSVWriter writes normalized transactions to CSV format.
type CSVWriter struct {
	IncludeHeader bool
}

// WriteToFile writes transactions to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, txns []models.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, txns)
}

// Write writes transactions in CSV format to the given writer. Empty cells
// stand for absent amounts; the CSV-path signed amount and the text-path
// withdrawal/deposit columns are both emitted.
func (w *CSVWriter) Write(out io.Writer, txns []models.Transaction) error {
	writer := csv.NewWriter(out)
	defer writer.Flush()

	if w.IncludeHeader {
		header := []string{"Date", "Description", "Withdrawal", "Deposit", "Balance", "Amount", "Category"}
		if err := writer.Write(header); err != nil {
			return fmt.Errorf("writing CSV header: %w", err)
		}
	}

	for _, txn := range txns {
		row := []string{
			txn.Date,
			txn.Description,
			formatAmount(txn.Withdrawal),
			formatAmount(txn.Deposit),
			formatAmount(txn.Balance),
			formatAmount(txn.Amount),
			string(txn.Category),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}

	return nil
}

func formatAmount(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}
