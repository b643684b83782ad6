package aggregate

import (
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finora-server/internal/ledger"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func entry(typ ledger.TransactionType, value string, date time.Time) Entry {
	return Entry{Type: typ, Amount: amount(value), Date: date}
}

func TestSumTotals_MatchesRawSums(t *testing.T) {
	entries := []Entry{
		entry(ledger.TransactionTypeIncome, "1000.10", day(2024, 1, 1)),
		entry(ledger.TransactionTypeIncome, "0.20", day(2024, 3, 1)),
		entry(ledger.TransactionTypeExpense, "0.10", day(2024, 1, 5)),
		entry(ledger.TransactionTypeExpense, "0.20", day(2024, 2, 5)),
		entry(ledger.TransactionTypeSaving, "50", day(2024, 2, 6)),
	}

	totals := SumTotals(entries, ledger.Window{})

	assert.True(t, totals.Income.Equal(amount("1000.30")), spew.Sdump(totals))
	assert.True(t, totals.Expense.Equal(amount("0.30")), "no floating point drift")
	assert.True(t, totals.Saving.Equal(amount("50")))
}

func TestSumTotals_MissingTypesAreZero(t *testing.T) {
	totals := SumTotals([]Entry{entry(ledger.TransactionTypeExpense, "12", day(2024, 1, 1))}, ledger.Window{})

	assert.True(t, totals.Income.IsZero())
	assert.True(t, totals.Saving.IsZero())
	assert.Equal(t, "0", totals.Income.String())
}

func TestSumTotals_InvertedWindowIsEmpty(t *testing.T) {
	start, end := day(2024, 3, 1), day(2024, 1, 1)
	entries := []Entry{entry(ledger.TransactionTypeIncome, "10", day(2024, 2, 1))}

	totals := SumTotals(entries, ledger.Window{Start: &start, End: &end})

	assert.True(t, totals.Income.IsZero())
	assert.Empty(t, MonthlySeries(entries, ledger.Window{Start: &start, End: &end}))
}

func TestMonthlySeries_SparseAndOrdered(t *testing.T) {
	entries := []Entry{
		entry(ledger.TransactionTypeExpense, "200", day(2024, 2, 10)),
		entry(ledger.TransactionTypeExpense, "100", day(2024, 1, 5)),
		entry(ledger.TransactionTypeIncome, "500", day(2024, 4, 1)),
	}

	series := MonthlySeries(entries, ledger.Window{})

	require.Len(t, series, 3, "March has no rows and is omitted")
	assert.Equal(t, "2024-01", series[0].Month)
	assert.True(t, series[0].Expense.Equal(amount("100")))
	assert.True(t, series[0].Income.IsZero())
	assert.True(t, series[0].Saving.IsZero())
	assert.Equal(t, "2024-02", series[1].Month)
	assert.True(t, series[1].Expense.Equal(amount("200")))
	assert.Equal(t, "2024-04", series[2].Month)
	assert.True(t, series[2].Income.Equal(amount("500")))
}

func TestMonthlySeries_RespectsWindow(t *testing.T) {
	entries := []Entry{
		entry(ledger.TransactionTypeExpense, "1", day(2024, 1, 31)),
		entry(ledger.TransactionTypeExpense, "2", day(2024, 2, 1)),
		entry(ledger.TransactionTypeExpense, "3", day(2024, 3, 1)),
	}
	start := day(2024, 2, 1)

	series := MonthlySeries(entries, ledger.Window{Start: &start})

	require.Len(t, series, 2)
	assert.Equal(t, "2024-02", series[0].Month)
	assert.Equal(t, "2024-03", series[1].Month)
}

func TestByCategory_Resolution(t *testing.T) {
	entries := []Entry{
		{Type: ledger.TransactionTypeExpense, Amount: amount("30"), Date: day(2024, 1, 1), CategoryName: "Food"},
		{Type: ledger.TransactionTypeExpense, Amount: amount("20"), Date: day(2024, 1, 2), CategoryName: "Food"},
		{Type: ledger.TransactionTypeExpense, Amount: amount("70"), Date: day(2024, 1, 3)},
		{Type: ledger.TransactionTypeExpense, Amount: amount("5"), Date: day(2024, 1, 4), Note: "gift saved_to: Party ", CategoryName: "Food"},
		{Type: ledger.TransactionTypeSaving, Amount: amount("500"), Date: day(2024, 1, 4), Note: "saved_to:Car Fund"},
		{Type: ledger.TransactionTypeSaving, Amount: amount("100"), Date: day(2024, 1, 5)},
	}

	expenses := ByCategory(entries, ledger.Window{}, ledger.TransactionTypeExpense)
	require.Len(t, expenses, 3, spew.Sdump(expenses))
	assert.Equal(t, ledger.UncategorizedLabel, expenses[0].Category)
	assert.True(t, expenses[0].Total.Equal(amount("70")))
	assert.Equal(t, "Food", expenses[1].Category)
	assert.True(t, expenses[1].Total.Equal(amount("50")))
	assert.Equal(t, "Party", expenses[2].Category)

	savings := ByCategory(entries, ledger.Window{}, ledger.TransactionTypeSaving)
	require.Len(t, savings, 2)
	assert.Equal(t, "Car Fund", savings[0].Category, "goal tag beats a missing category id")
	assert.True(t, savings[0].Total.Equal(amount("500")))
	assert.Equal(t, ledger.UncategorizedLabel, savings[1].Category)
}

func TestByCategory_TiesOrderedByName(t *testing.T) {
	entries := []Entry{
		{Type: ledger.TransactionTypeExpense, Amount: amount("10"), Date: day(2024, 1, 1), CategoryName: "Rent"},
		{Type: ledger.TransactionTypeExpense, Amount: amount("10"), Date: day(2024, 1, 1), CategoryName: "Fuel"},
	}

	result := ByCategory(entries, ledger.Window{}, ledger.TransactionTypeExpense)

	require.Len(t, result, 2)
	assert.Equal(t, "Fuel", result[0].Category)
	assert.Equal(t, "Rent", result[1].Category)
}

func TestBudget_LeapFebruary(t *testing.T) {
	entries := []Entry{
		entry(ledger.TransactionTypeExpense, "10", day(2024, 1, 31)),
		entry(ledger.TransactionTypeExpense, "20", day(2024, 2, 1)),
		entry(ledger.TransactionTypeExpense, "40", day(2024, 2, 29)),
		entry(ledger.TransactionTypeExpense, "80", day(2024, 3, 1)),
		entry(ledger.TransactionTypeIncome, "1000", day(2024, 2, 15)),
	}

	progress := Budget(entries, ledger.Month{Year: 2024, Month: time.February}, amount("300"))

	assert.Equal(t, "2024-02", progress.Month)
	assert.True(t, progress.LimitAmount.Equal(amount("300")))
	assert.True(t, progress.Spent.Equal(amount("60")), "includes Feb 29, excludes Mar 1: %s", progress.Spent)
}

func TestBudget_NoLimit(t *testing.T) {
	progress := Budget(nil, ledger.Month{Year: 2023, Month: time.April}, decimal.Zero)

	assert.True(t, progress.LimitAmount.IsZero())
	assert.True(t, progress.Spent.IsZero())
}

func TestExpenseSeries_SkipsIncomeOnlyMonths(t *testing.T) {
	entries := []Entry{
		entry(ledger.TransactionTypeExpense, "100", day(2024, 1, 5)),
		entry(ledger.TransactionTypeIncome, "900", day(2024, 2, 5)),
		entry(ledger.TransactionTypeExpense, "200", day(2024, 3, 10)),
	}

	series := ExpenseSeries(entries)

	require.Len(t, series, 2)
	assert.Equal(t, "2024-01", series[0].Month)
	assert.Equal(t, "2024-03", series[1].Month)
}
