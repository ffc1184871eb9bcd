package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finlytics-dev/finlytics/internal/config"
	"github.com/finlytics-dev/finlytics/internal/models"
)

func TestParseCSV(t *testing.T) {
	data := `date,description,amount
2024-01-01,ATM withdrawal,-50.00
2024-01-02,Payroll,2500.00
2024-01-03,Monthly fee,-10.00
2024-01-04,Unknown row,abc
`
	txns, err := ParseCSV(strings.NewReader(data), config.Default())
	require.NoError(t, err)
	require.Len(t, txns, 4)

	assert.Equal(t, "2024-01-01", txns[0].Date)
	assert.Equal(t, "ATM withdrawal", txns[0].Description)
	require.NotNil(t, txns[0].Amount)
	assert.Equal(t, "-50.00", txns[0].Amount.StringFixed(2))
	assert.Equal(t, models.MoneyOut, txns[0].Category)
	// CSV path never populates the column-split fields.
	assert.Nil(t, txns[0].Withdrawal)
	assert.Nil(t, txns[0].Deposit)
	assert.Nil(t, txns[0].Balance)

	assert.Equal(t, models.MoneyIn, txns[1].Category)
	assert.Equal(t, models.Other, txns[2].Category)

	assert.Nil(t, txns[3].Amount)
	assert.Equal(t, models.Other, txns[3].Category)
}

func TestParseCSV_HeaderAliases(t *testing.T) {
	data := `Date,Details,Debit
01/02/2024,Card payment,-12.50
`
	txns, err := ParseCSV(strings.NewReader(data), config.Default())
	require.NoError(t, err)
	require.Len(t, txns, 1)

	assert.Equal(t, "01/02/2024", txns[0].Date)
	assert.Equal(t, "Card payment", txns[0].Description)
	require.NotNil(t, txns[0].Amount)
	assert.Equal(t, "-12.50", txns[0].Amount.StringFixed(2))
}

func TestParseCSV_LowercaseAliasWinsOverFallback(t *testing.T) {
	// Both spellings present: the case-sensitive alias is tried first.
	data := `date,Date,description,amount
primary,fallback,Some row,5.00
`
	txns, err := ParseCSV(strings.NewReader(data), config.Default())
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "primary", txns[0].Date)
}

func TestParseCSV_Empty(t *testing.T) {
	txns, err := ParseCSV(strings.NewReader(""), config.Default())
	require.NoError(t, err)
	assert.Empty(t, txns)

	txns, err = ParseCSV(strings.NewReader("date,description,amount\n"), config.Default())
	require.NoError(t, err)
	assert.Empty(t, txns)
}
