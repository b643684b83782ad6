package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finora-server/internal/operator/actions"
	"github.com/carson-networks/finora-server/internal/storage"
)

// Processor performs a write action inside its own database transaction.
type Processor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Options tunes the services.
type Options struct {
	RecurringConcurrency int
	Now                  func() time.Time
}

// Service holds all business logic services.
type Service struct {
	Transaction *TransactionService
	Category    *CategoryService
	Budget      *BudgetService
	Stats       *StatsService
	Goal        *GoalService
	Recurring   *RecurringService
	Forecast    *ForecastService
	Savings     *SavingsService
	Portfolio   *PortfolioService
}

// NewService creates a new Service reading from store and writing through op.
func NewService(store *storage.Storage, op Processor, logger *logrus.Logger, opts Options) *Service {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	goals := NewGoalService(store, op, now)
	return &Service{
		Transaction: NewTransactionService(store, op, goals, logger, now),
		Category:    NewCategoryService(store, op),
		Budget:      NewBudgetService(store, op),
		Stats:       NewStatsService(store),
		Goal:        goals,
		Recurring:   NewRecurringService(store, op, logger, opts.RecurringConcurrency, now),
		Forecast:    NewForecastService(store, now),
		Savings:     NewSavingsService(store, op, now),
		Portfolio:   NewPortfolioService(store, op),
	}
}
