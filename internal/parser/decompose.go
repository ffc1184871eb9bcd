package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finlytics-dev/finlytics/internal/config"
	"github.com/finlytics-dev/finlytics/internal/models"
)

var (
	// splitThousandsPattern matches a decimal amount whose thousands group
	// was broken by a stray period, an OCR/typesetting artifact:
	// "1.234.56" reads as 1234.56.
	splitThousandsPattern = regexp.MustCompile(`(\d)\.(\d{3})\.(\d{2})`)
	// amountTokenPattern matches a thousands-grouped decimal with exactly
	// two fraction digits.
	amountTokenPattern = regexp.MustCompile(`\d[\d,]*\.\d{2}`)
)

// amountToken is a recognized decimal substring within a line. The offset is
// the character position where the token begins, used to decide which column
// the amount belongs to.
type amountToken struct {
	offset int
	value  *decimal.Decimal
}

// DecomposeLine splits a candidate table line into date, description and
// column-assigned amounts, returning false when the line does not qualify as
// a transaction row. Candidates must pass the strict month+day date gate,
// carry at least MinLineTokens fields, and contain at least one amount.
func DecomposeLine(line string, layout *config.Layout) (models.Transaction, bool) {
	fields := strings.Fields(line)
	if len(fields) < layout.MinLineTokens {
		return models.Transaction{}, false
	}

	date, ok := statementDate(fields)
	if !ok {
		return models.Transaction{}, false
	}

	cleaned := splitThousandsPattern.ReplaceAllString(line, "$1$2.$3")

	var amounts []amountToken
	for _, loc := range amountTokenPattern.FindAllStringIndex(cleaned, -1) {
		v := ParseAmount(cleaned[loc[0]:loc[1]])
		if v == nil {
			continue
		}
		amounts = append(amounts, amountToken{offset: loc[0], value: v})
	}
	if len(amounts) == 0 {
		return models.Transaction{}, false
	}

	desc := ""
	if first := amounts[0].offset; first > len(date) {
		desc = strings.TrimSpace(cleaned[len(date):first])
	}

	txn := models.Transaction{
		Date:        date,
		Description: desc,
		Balance:     amounts[len(amounts)-1].value,
	}

	switch len(amounts) {
	case 2:
		// One moving amount plus balance: the amount's column decides
		// direction.
		if amounts[0].offset < layout.DepositColStart {
			txn.Withdrawal = amounts[0].value
		} else {
			txn.Deposit = amounts[0].value
		}
	case 3:
		// Both columns explicitly present.
		txn.Withdrawal = amounts[0].value
		txn.Deposit = amounts[1].value
	}

	applyDepositOverride(&txn, layout)

	txn.Category = Categorize(txn.Withdrawal, txn.Deposit, txn.Description, layout)
	return txn, true
}

// applyDepositOverride reclassifies a withdrawal as a deposit when the
// description names an inbound movement. The column heuristic misreads
// deposits printed near the band boundary; the keywords win.
func applyDepositOverride(txn *models.Transaction, layout *config.Layout) {
	if txn.Withdrawal == nil || txn.Withdrawal.IsZero() {
		return
	}
	low := strings.ToLower(txn.Description)
	if containsAny(low, layout.DepositKeywords) {
		txn.Deposit = txn.Withdrawal
		txn.Withdrawal = nil
	}
}
