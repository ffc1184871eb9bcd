package parser

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finlytics-dev/finlytics/internal/config"
	"github.com/finlytics-dev/finlytics/internal/models"
)

func TestDecomposeLine_WithdrawalByColumn(t *testing.T) {
	txn, ok := DecomposeLine("Jan 5 ATM Withdrawal 200.00 1,800.00", config.Default())
	require.True(t, ok)

	assert.Equal(t, "Jan 5", txn.Date)
	assert.Equal(t, "ATM Withdrawal", txn.Description)
	require.NotNil(t, txn.Withdrawal)
	assert.Equal(t, "200.00", txn.Withdrawal.StringFixed(2))
	assert.Nil(t, txn.Deposit)
	require.NotNil(t, txn.Balance)
	assert.Equal(t, "1800.00", txn.Balance.StringFixed(2))
	assert.Equal(t, models.MoneyOut, txn.Category)
}

func TestDecomposeLine_DepositByColumn(t *testing.T) {
	// The moving amount starts at offset 60, inside the deposit band.
	line := fmt.Sprintf("%-60s1,200.00  5,400.00", "Jan 5 Salary")

	txn, ok := DecomposeLine(line, config.Default())
	require.True(t, ok)

	assert.Equal(t, "Salary", txn.Description)
	assert.Nil(t, txn.Withdrawal)
	require.NotNil(t, txn.Deposit)
	assert.Equal(t, "1200.00", txn.Deposit.StringFixed(2))
	require.NotNil(t, txn.Balance)
	assert.Equal(t, "5400.00", txn.Balance.StringFixed(2))
	assert.Equal(t, models.MoneyIn, txn.Category)
}

func TestDecomposeLine_ThreeAmounts(t *testing.T) {
	txn, ok := DecomposeLine("Jan 7 Utilities 150.00 0.00 1,650.00", config.Default())
	require.True(t, ok)

	require.NotNil(t, txn.Withdrawal)
	assert.Equal(t, "150.00", txn.Withdrawal.StringFixed(2))
	require.NotNil(t, txn.Deposit)
	assert.True(t, txn.Deposit.IsZero())
	require.NotNil(t, txn.Balance)
	assert.Equal(t, "1650.00", txn.Balance.StringFixed(2))
	// Zero deposit does not count as money in.
	assert.Equal(t, models.MoneyOut, txn.Category)
}

func TestDecomposeLine_FourAmountsBalanceOnly(t *testing.T) {
	txn, ok := DecomposeLine("Jan 8 Mystery row 1.00 2.00 3.00 4.00", config.Default())
	require.True(t, ok)

	assert.Nil(t, txn.Withdrawal)
	assert.Nil(t, txn.Deposit)
	require.NotNil(t, txn.Balance)
	assert.Equal(t, "4.00", txn.Balance.StringFixed(2))
	assert.Equal(t, models.Other, txn.Category)
}

func TestDecomposeLine_SplitThousandsArtifact(t *testing.T) {
	txn, ok := DecomposeLine("Jan 5 Deposit 1.234.56 2.000.00", config.Default())
	require.True(t, ok)

	// "1.234.56" reads as 1234.56 and the deposit keyword pulls it out of
	// the withdrawal column.
	assert.Nil(t, txn.Withdrawal)
	require.NotNil(t, txn.Deposit)
	assert.Equal(t, "1234.56", txn.Deposit.StringFixed(2))
	require.NotNil(t, txn.Balance)
	assert.Equal(t, "2000.00", txn.Balance.StringFixed(2))
	assert.Equal(t, models.MoneyIn, txn.Category)
}

func TestDecomposeLine_DepositKeywordOverride(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"payroll", "Jan 12 Payroll Deposit 1,200.00 5,400.00"},
		{"transfer", "Jan 9 Transfer from savings 1,200.00 5,400.00"},
		{"credit", "Jan 9 Refund credit 1,200.00 5,400.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn, ok := DecomposeLine(tt.line, config.Default())
			require.True(t, ok)

			assert.Nil(t, txn.Withdrawal)
			require.NotNil(t, txn.Deposit)
			assert.Equal(t, "1200.00", txn.Deposit.StringFixed(2))
			assert.Equal(t, models.MoneyIn, txn.Category)
		})
	}
}

func TestDecomposeLine_FeeStaysOther(t *testing.T) {
	txn, ok := DecomposeLine("Jan 10 Monthly service charge 12.00 2,288.00", config.Default())
	require.True(t, ok)

	// The withdrawal column is still populated; only the category changes.
	require.NotNil(t, txn.Withdrawal)
	assert.Equal(t, "12.00", txn.Withdrawal.StringFixed(2))
	assert.Equal(t, models.Other, txn.Category)
}

func TestDecomposeLine_Rejections(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"too few tokens", "Jan 5"},
		{"no date gate", "January 5 Grocery 12.00 100.00"},
		{"day first", "5 Jan Grocery 12.00 100.00"},
		{"no amounts", "Jan 5 Grocery Store"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := DecomposeLine(tt.line, config.Default())
			assert.False(t, ok)
		})
	}
}

func TestDecomposeLine_SingleAmountIsBalance(t *testing.T) {
	txn, ok := DecomposeLine("Jan 5 Misc 100.00", config.Default())
	require.True(t, ok)

	assert.Nil(t, txn.Withdrawal)
	assert.Nil(t, txn.Deposit)
	require.NotNil(t, txn.Balance)
	assert.Equal(t, "100.00", txn.Balance.StringFixed(2))
	assert.Equal(t, models.Other, txn.Category)
}
