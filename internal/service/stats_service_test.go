package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finora-server/internal/ledger"
	"github.com/carson-networks/finora-server/internal/storage/sqlconfig"
)

func ledgerRows() []*sqlconfig.TransactionSum {
	return []*sqlconfig.TransactionSum{
		{Type: ledger.TransactionTypeExpense, Amount: dec("100"), TransactionDate: day(2024, 1, 5), CategoryName: "Food"},
		{Type: ledger.TransactionTypeExpense, Amount: dec("200"), TransactionDate: day(2024, 2, 10)},
		{Type: ledger.TransactionTypeIncome, Amount: dec("1500"), TransactionDate: day(2024, 2, 1)},
		{Type: ledger.TransactionTypeSaving, Amount: dec("50"), TransactionDate: day(2024, 2, 20), SavedTo: "Car Fund"},
	}
}

func TestGetTotals(t *testing.T) {
	svc, mocks := newTestService(t)
	userID := newID()

	mocks.Transactions.On("Sums", mock.Anything, mock.MatchedBy(func(f *sqlconfig.TransactionFilter) bool {
		return f.UserID == userID && f.Type == nil && f.Start == nil && f.End == nil
	})).Return(ledgerRows(), nil)

	totals, err := svc.Stats.GetTotals(context.Background(), userID, ledger.Window{})

	require.NoError(t, err)
	assertDecimal(t, "1500", totals.Income)
	assertDecimal(t, "300", totals.Expense)
	assertDecimal(t, "50", totals.Saving)
}

func TestGetTotals_EmptyWindow(t *testing.T) {
	svc, _ := newTestService(t)
	start, end := day(2024, 5, 1), day(2024, 4, 1)

	totals, err := svc.Stats.GetTotals(context.Background(), newID(), ledger.Window{Start: &start, End: &end})

	require.NoError(t, err)
	assert.True(t, totals.Income.IsZero())
	assert.True(t, totals.Expense.IsZero())
	assert.True(t, totals.Saving.IsZero())
}

func TestGetTotals_SameDayWindowReadsWholeDay(t *testing.T) {
	svc, mocks := newTestService(t)
	userID := newID()
	start := time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 10, 8, 0, 0, 0, time.UTC)

	mocks.Transactions.On("Sums", mock.Anything, mock.MatchedBy(func(f *sqlconfig.TransactionFilter) bool {
		return f.Start.Equal(day(2024, 2, 10)) && f.End.Equal(day(2024, 2, 10))
	})).Return([]*sqlconfig.TransactionSum{ledgerRows()[1]}, nil).Once()

	totals, err := svc.Stats.GetTotals(context.Background(), userID, ledger.Window{Start: &start, End: &end})

	require.NoError(t, err)
	assertDecimal(t, "200", totals.Expense)
}

func TestGetMonthlySeries(t *testing.T) {
	svc, mocks := newTestService(t)
	userID := newID()

	mocks.Transactions.On("Sums", mock.Anything, mock.Anything).Return(ledgerRows(), nil)

	series, err := svc.Stats.GetMonthlySeries(context.Background(), userID, ledger.Window{})

	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, "2024-01", series[0].Month)
	assertDecimal(t, "100", series[0].Expense)
	assert.True(t, series[0].Income.IsZero())
	assert.Equal(t, "2024-02", series[1].Month)
	assertDecimal(t, "200", series[1].Expense)
	assertDecimal(t, "1500", series[1].Income)
	assertDecimal(t, "50", series[1].Saving)
}

func TestGetSavingByCategory_UsesGoalTag(t *testing.T) {
	svc, mocks := newTestService(t)
	userID := newID()

	mocks.Transactions.On("Sums", mock.Anything, mock.MatchedBy(func(f *sqlconfig.TransactionFilter) bool {
		return f.Type != nil && *f.Type == ledger.TransactionTypeSaving
	})).Return([]*sqlconfig.TransactionSum{ledgerRows()[3]}, nil)

	rows, err := svc.Stats.GetSavingByCategory(context.Background(), userID, ledger.Window{})

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Car Fund", rows[0].Category)
	assertDecimal(t, "50", rows[0].Total)
}

func TestGetExpenseByCategory_Uncategorized(t *testing.T) {
	svc, mocks := newTestService(t)
	userID := newID()

	rows := ledgerRows()
	mocks.Transactions.On("Sums", mock.Anything, mock.MatchedBy(func(f *sqlconfig.TransactionFilter) bool {
		return f.Type != nil && *f.Type == ledger.TransactionTypeExpense
	})).Return(rows[:2], nil)

	breakdown, err := svc.Stats.GetExpenseByCategory(context.Background(), userID, ledger.Window{})

	require.NoError(t, err)
	require.Len(t, breakdown, 2)
	assert.Equal(t, ledger.UncategorizedLabel, breakdown[0].Category)
	assertDecimal(t, "200", breakdown[0].Total)
	assert.Equal(t, "Food", breakdown[1].Category)
}

func TestGetSummary(t *testing.T) {
	svc, mocks := newTestService(t)
	userID := newID()

	mocks.Transactions.On("Sums", mock.Anything, mock.Anything).Return(ledgerRows(), nil).Once()

	summary, err := svc.Stats.GetSummary(context.Background(), userID, ledger.Window{})

	require.NoError(t, err)
	assertDecimal(t, "300", summary.Totals.Expense)
	assert.Len(t, summary.Monthly, 2)
	assert.Len(t, summary.ExpenseByCategory, 2)
	require.Len(t, summary.SavingByCategory, 1)
	assert.Equal(t, "Car Fund", summary.SavingByCategory[0].Category)
}
