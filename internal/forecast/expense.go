// Package forecast projects future expenses and savings-goal completion from
// historical monthly aggregates. Nothing here is persisted.
package forecast

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotEnoughData is returned when the history is too short to project.
var ErrNotEnoughData = errors.New("not enough data to forecast")

// minimumMonths is the shortest history a projection is made from.
const minimumMonths = 2

var hundred = decimal.NewFromInt(100)

// MonthlyAmount is one point of a monthly series, keyed "YYYY-MM".
type MonthlyAmount struct {
	Month  string
	Amount decimal.Decimal
}

// ExpenseForecast is the projection of next month's expenses.
type ExpenseForecast struct {
	Monthly    []MonthlyAmount
	NextMonth  decimal.Decimal
	GrowthRate decimal.Decimal
	Message    string
}

// Expense projects next month's expense from an ascending monthly series.
//
// The series is split into a recent window and the window before it (three
// months each once six months exist, otherwise half the history each). The
// growth between the two window averages is applied to the recent average.
func Expense(series []MonthlyAmount) (*ExpenseForecast, error) {
	if len(series) < minimumMonths {
		return nil, ErrNotEnoughData
	}

	window := 3
	if len(series) < 6 {
		window = max(1, len(series)/2)
	}
	previous := series[len(series)-2*window : len(series)-window]
	recent := series[len(series)-window:]

	previousAvg := average(previous)
	recentAvg := average(recent)

	growth := decimal.Zero
	if !previousAvg.IsZero() {
		growth = recentAvg.Sub(previousAvg).Div(previousAvg)
	}

	base := recentAvg
	if !base.IsPositive() {
		base = series[len(series)-1].Amount
	}

	next := base.Mul(decimal.NewFromInt(1).Add(growth))
	if next.IsNegative() {
		next = decimal.Zero
	}
	next = next.Round(2)

	return &ExpenseForecast{
		Monthly:    series,
		NextMonth:  next,
		GrowthRate: growth,
		Message:    expenseMessage(next, growth),
	}, nil
}

func expenseMessage(next, growth decimal.Decimal) string {
	sign := ""
	if !growth.IsNegative() {
		sign = "+"
	}
	return fmt.Sprintf("Your next month's expenses are expected to be %s (%s%s%% from last month).",
		next.StringFixed(2), sign, growth.Mul(hundred).StringFixed(2))
}

func average(points []MonthlyAmount) decimal.Decimal {
	if len(points) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, p := range points {
		sum = sum.Add(p.Amount)
	}
	return sum.Div(decimal.NewFromInt(int64(len(points))))
}
