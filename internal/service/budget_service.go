package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finora-server/internal/aggregate"
	"github.com/carson-networks/finora-server/internal/ledger"
	"github.com/carson-networks/finora-server/internal/operator/actions"
	"github.com/carson-networks/finora-server/internal/storage"
)

// Budget is the spending limit of one month.
type Budget struct {
	Month       string
	LimitAmount decimal.Decimal
}

// BudgetService handles monthly budgets.
type BudgetService struct {
	storage  *storage.Storage
	operator Processor
}

func NewBudgetService(store *storage.Storage, op Processor) *BudgetService {
	return &BudgetService{storage: store, operator: op}
}

func parseMonth(raw string) (ledger.Month, error) {
	month, err := ledger.ParseMonth(raw)
	if err != nil {
		return ledger.Month{}, invalid("month", "must be formatted YYYY-MM")
	}
	return month, nil
}

// SetBudget sets the limit of a month, replacing any previous limit.
func (s *BudgetService) SetBudget(ctx context.Context, userID uuid.UUID, rawMonth string, limit decimal.Decimal) (*Budget, error) {
	month, err := parseMonth(rawMonth)
	if err != nil {
		return nil, err
	}
	if err := checkAmount("limit_amount", limit, moneyPlaces); err != nil {
		return nil, err
	}

	action := &actions.UpsertBudget{UserID: userID, Month: month.String(), Limit: limit}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, translate(err, "budget")
	}

	return &Budget{Month: action.Budget.Month, LimitAmount: action.Budget.LimitAmount}, nil
}

// GetBudgetProgress compares a month's expenses with its limit. A month
// without a budget reports a limit of zero.
func (s *BudgetService) GetBudgetProgress(ctx context.Context, userID uuid.UUID, rawMonth string) (*aggregate.BudgetProgress, error) {
	month, err := parseMonth(rawMonth)
	if err != nil {
		return nil, err
	}

	limit := decimal.Zero
	budget, err := s.storage.Budgets.Find(ctx, userID, month.String())
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, err
	default:
		limit = budget.LimitAmount
	}

	expense := ledger.TransactionTypeExpense
	entries, err := loadEntries(ctx, s.storage.Transactions, userID, ledger.MonthWindow(month), &expense)
	if err != nil {
		return nil, err
	}

	progress := aggregate.Budget(entries, month, limit)
	return &progress, nil
}
