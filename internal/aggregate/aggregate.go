// Package aggregate turns ledger rows into totals, monthly series, category
// breakdowns and budget progress. Every sum is exact decimal arithmetic.
package aggregate

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/finora-server/internal/ledger"
)

// Entry is the slice of a transaction the engine needs.
type Entry struct {
	Type         ledger.TransactionType
	Amount       decimal.Decimal
	Date         time.Time
	Note         string
	CategoryName string
}

// Totals holds the per-type sums. Missing types are zero.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Saving  decimal.Decimal
}

func (t *Totals) add(typ ledger.TransactionType, amount decimal.Decimal) {
	switch typ {
	case ledger.TransactionTypeIncome:
		t.Income = t.Income.Add(amount)
	case ledger.TransactionTypeExpense:
		t.Expense = t.Expense.Add(amount)
	case ledger.TransactionTypeSaving:
		t.Saving = t.Saving.Add(amount)
	}
}

// MonthlyPoint is one month of the series.
type MonthlyPoint struct {
	Month string
	Totals
}

// CategoryTotal is one row of a category breakdown.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// BudgetProgress compares a month's expenses with its limit.
type BudgetProgress struct {
	Month       string
	LimitAmount decimal.Decimal
	Spent       decimal.Decimal
}

func inWindow(entries []Entry, window ledger.Window) []Entry {
	if window.Empty() {
		return nil
	}
	filtered := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if window.Contains(e.Date) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// SumTotals sums amounts by type inside window.
func SumTotals(entries []Entry, window ledger.Window) Totals {
	var totals Totals
	for _, e := range inWindow(entries, window) {
		totals.add(e.Type, e.Amount)
	}
	return totals
}

// MonthlySeries returns one point per month that has at least one entry in
// window, ascending. Months without entries are omitted.
func MonthlySeries(entries []Entry, window ledger.Window) []MonthlyPoint {
	byMonth := make(map[ledger.Month]*Totals)
	var months []ledger.Month
	for _, e := range inWindow(entries, window) {
		m := ledger.MonthOf(e.Date)
		totals, ok := byMonth[m]
		if !ok {
			totals = &Totals{}
			byMonth[m] = totals
			months = append(months, m)
		}
		totals.add(e.Type, e.Amount)
	}

	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	series := make([]MonthlyPoint, len(months))
	for i, m := range months {
		series[i] = MonthlyPoint{Month: m.String(), Totals: *byMonth[m]}
	}
	return series
}

// ByCategory sums entries of typ by their display category, largest first.
// Ties are ordered by label so the output is stable.
func ByCategory(entries []Entry, window ledger.Window, typ ledger.TransactionType) []CategoryTotal {
	sums := make(map[string]decimal.Decimal)
	for _, e := range inWindow(entries, window) {
		if e.Type != typ {
			continue
		}
		label := ledger.DisplayCategory(e.Note, e.CategoryName)
		sums[label] = sums[label].Add(e.Amount)
	}

	result := make([]CategoryTotal, 0, len(sums))
	for label, total := range sums {
		result = append(result, CategoryTotal{Category: label, Total: total})
	}
	sort.Slice(result, func(i, j int) bool {
		if c := result[i].Total.Cmp(result[j].Total); c != 0 {
			return c > 0
		}
		return result[i].Category < result[j].Category
	})
	return result
}

// Budget computes the progress of month against limit, counting expenses
// dated from the first through the last day of the month.
func Budget(entries []Entry, month ledger.Month, limit decimal.Decimal) BudgetProgress {
	totals := SumTotals(entries, ledger.MonthWindow(month))
	return BudgetProgress{
		Month:       month.String(),
		LimitAmount: limit,
		Spent:       totals.Expense,
	}
}

// ExpenseSeries returns the per-month expense sums for months with at least
// one expense entry, ascending.
func ExpenseSeries(entries []Entry) []MonthlyPoint {
	expenses := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Type == ledger.TransactionTypeExpense {
			expenses = append(expenses, e)
		}
	}
	return MonthlySeries(expenses, ledger.Window{})
}
