// Package stats exposes the ledger aggregates over HTTP.
package stats

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finora-server/internal/aggregate"
	"github.com/carson-networks/finora-server/internal/handlers/v1/apiutil"
	"github.com/carson-networks/finora-server/internal/ledger"
	"github.com/carson-networks/finora-server/internal/service"
)

type Totals struct {
	TotalIncome  string `json:"totalIncome" doc:"Sum of income amounts"`
	TotalExpense string `json:"totalExpense" doc:"Sum of expense amounts"`
	TotalSaving  string `json:"totalSaving" doc:"Sum of saving amounts"`
}

type MonthlyPoint struct {
	Month   string `json:"month" doc:"Calendar month (YYYY-MM)"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Saving  string `json:"saving"`
}

type CategoryTotal struct {
	Category string `json:"category" doc:"Goal name, category name or Uncategorized"`
	Total    string `json:"total"`
}

func totalsFrom(t aggregate.Totals) Totals {
	return Totals{
		TotalIncome:  t.Income.String(),
		TotalExpense: t.Expense.String(),
		TotalSaving:  t.Saving.String(),
	}
}

func seriesFrom(points []aggregate.MonthlyPoint) []MonthlyPoint {
	out := make([]MonthlyPoint, len(points))
	for i, p := range points {
		out[i] = MonthlyPoint{
			Month:   p.Month,
			Income:  p.Income.String(),
			Expense: p.Expense.String(),
			Saving:  p.Saving.String(),
		}
	}
	return out
}

func categoriesFrom(rows []aggregate.CategoryTotal) []CategoryTotal {
	out := make([]CategoryTotal, len(rows))
	for i, r := range rows {
		out[i] = CategoryTotal{Category: r.Category, Total: r.Total.String()}
	}
	return out
}

// StatsInput is the Huma input shared by every stats endpoint.
type StatsInput struct {
	apiutil.UserHeader
	apiutil.WindowQuery
}

func (in *StatsInput) parse() (uuid.UUID, ledger.Window, error) {
	userID, err := in.User()
	if err != nil {
		return uuid.Nil, ledger.Window{}, err
	}
	window, err := in.Window()
	if err != nil {
		return uuid.Nil, ledger.Window{}, err
	}
	return userID, window, nil
}

type statsReader interface {
	GetTotals(ctx context.Context, userID uuid.UUID, window ledger.Window) (aggregate.Totals, error)
	GetMonthlySeries(ctx context.Context, userID uuid.UUID, window ledger.Window) ([]aggregate.MonthlyPoint, error)
	GetExpenseByCategory(ctx context.Context, userID uuid.UUID, window ledger.Window) ([]aggregate.CategoryTotal, error)
	GetSavingByCategory(ctx context.Context, userID uuid.UUID, window ledger.Window) ([]aggregate.CategoryTotal, error)
	GetSummary(ctx context.Context, userID uuid.UUID, window ledger.Window) (*service.StatsSummary, error)
}
