package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finora-server/internal/aggregate"
	"github.com/carson-networks/finora-server/internal/forecast"
	"github.com/carson-networks/finora-server/internal/ledger"
	"github.com/carson-networks/finora-server/internal/storage"
	"github.com/carson-networks/finora-server/internal/storage/sqlconfig"
)

// ExpenseForecast is the projection of next month's expense. NextMonth and
// GrowthRate are nil when the history is too short, and Message says so.
type ExpenseForecast struct {
	Monthly    []forecast.MonthlyAmount
	NextMonth  *decimal.Decimal
	GrowthRate *decimal.Decimal
	Message    string
}

// GoalForecast pairs a goal's progress with its completion forecast.
type GoalForecast struct {
	Goal     GoalProgress
	Forecast forecast.GoalForecast
}

// ForecastService projects expenses and goal completion from the ledger.
type ForecastService struct {
	storage *storage.Storage
	now     func() time.Time
}

func NewForecastService(store *storage.Storage, now func() time.Time) *ForecastService {
	return &ForecastService{storage: store, now: now}
}

func upstream(err error) error {
	return fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
}

// GetExpenseForecast projects next month's expense from the user's monthly
// expense totals.
func (s *ForecastService) GetExpenseForecast(ctx context.Context, userID uuid.UUID) (*ExpenseForecast, error) {
	expense := ledger.TransactionTypeExpense
	entries, err := loadEntries(ctx, s.storage.Transactions, userID, ledger.Window{}, &expense)
	if err != nil {
		return nil, upstream(err)
	}

	points := aggregate.ExpenseSeries(entries)
	series := make([]forecast.MonthlyAmount, len(points))
	for i, p := range points {
		series[i] = forecast.MonthlyAmount{Month: p.Month, Amount: p.Expense}
	}

	projection, err := forecast.Expense(series)
	if errors.Is(err, forecast.ErrNotEnoughData) {
		return &ExpenseForecast{
			Monthly: series,
			Message: "Not enough data to forecast expenses. At least two months of expenses are needed.",
		}, nil
	}
	if err != nil {
		return nil, err
	}

	return &ExpenseForecast{
		Monthly:    projection.Monthly,
		NextMonth:  &projection.NextMonth,
		GrowthRate: &projection.GrowthRate,
		Message:    projection.Message,
	}, nil
}

// GetSavingsForecast projects the completion of every goal of the user from
// its contribution history.
func (s *ForecastService) GetSavingsForecast(ctx context.Context, userID uuid.UUID) ([]GoalForecast, error) {
	goals, err := s.storage.Goals.List(ctx, userID)
	if err != nil {
		return nil, upstream(err)
	}
	if len(goals) == 0 {
		return nil, nil
	}

	rows, err := s.storage.Contributions.List(ctx, &sqlconfig.ContributionFilter{UserID: userID})
	if err != nil {
		return nil, upstream(err)
	}

	byGoal := make(map[uuid.UUID][]forecast.Contribution, len(goals))
	saved := make(map[uuid.UUID]decimal.Decimal, len(goals))
	for _, c := range rows {
		byGoal[c.GoalID] = append(byGoal[c.GoalID], forecast.Contribution{Amount: c.Amount, Date: c.ContributionDate})
		saved[c.GoalID] = saved[c.GoalID].Add(c.Amount)
	}

	now := s.now()
	result := make([]GoalForecast, len(goals))
	for i, row := range goals {
		current := saved[row.ID]
		result[i] = GoalForecast{
			Goal: GoalProgress{
				Goal:           goalFromStorage(row),
				CurrentSavings: current,
				ProgressPct:    progressPct(current, row.TargetAmount),
			},
			Forecast: forecast.Goal(forecast.GoalInput{
				TargetAmount:   row.TargetAmount,
				TargetDate:     row.TargetDate,
				CurrentSavings: current,
			}, byGoal[row.ID], now),
		}
	}
	return result, nil
}
