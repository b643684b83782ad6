package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finora-server/internal/aggregate"
	"github.com/carson-networks/finora-server/internal/ledger"
	"github.com/carson-networks/finora-server/internal/storage"
)

// StatsSummary bundles every aggregate of one window.
type StatsSummary struct {
	Totals            aggregate.Totals
	Monthly           []aggregate.MonthlyPoint
	ExpenseByCategory []aggregate.CategoryTotal
	SavingByCategory  []aggregate.CategoryTotal
}

// StatsService computes ledger aggregates for a date window.
type StatsService struct {
	storage *storage.Storage
}

func NewStatsService(store *storage.Storage) *StatsService {
	return &StatsService{storage: store}
}

func (s *StatsService) entries(ctx context.Context, userID uuid.UUID, window ledger.Window) ([]aggregate.Entry, error) {
	return loadEntries(ctx, s.storage.Transactions, userID, window, nil)
}

// GetTotals sums the window per transaction type.
func (s *StatsService) GetTotals(ctx context.Context, userID uuid.UUID, window ledger.Window) (aggregate.Totals, error) {
	entries, err := s.entries(ctx, userID, window)
	if err != nil {
		return aggregate.Totals{}, err
	}
	return aggregate.SumTotals(entries, window), nil
}

// GetMonthlySeries returns the sparse per-month sums of the window.
func (s *StatsService) GetMonthlySeries(ctx context.Context, userID uuid.UUID, window ledger.Window) ([]aggregate.MonthlyPoint, error) {
	entries, err := s.entries(ctx, userID, window)
	if err != nil {
		return nil, err
	}
	return aggregate.MonthlySeries(entries, window), nil
}

func (s *StatsService) GetExpenseByCategory(ctx context.Context, userID uuid.UUID, window ledger.Window) ([]aggregate.CategoryTotal, error) {
	return s.byCategory(ctx, userID, window, ledger.TransactionTypeExpense)
}

func (s *StatsService) GetSavingByCategory(ctx context.Context, userID uuid.UUID, window ledger.Window) ([]aggregate.CategoryTotal, error) {
	return s.byCategory(ctx, userID, window, ledger.TransactionTypeSaving)
}

func (s *StatsService) byCategory(ctx context.Context, userID uuid.UUID, window ledger.Window, typ ledger.TransactionType) ([]aggregate.CategoryTotal, error) {
	entries, err := loadEntries(ctx, s.storage.Transactions, userID, window, &typ)
	if err != nil {
		return nil, err
	}
	return aggregate.ByCategory(entries, window, typ), nil
}

// GetSummary computes every aggregate from a single read of the window.
func (s *StatsService) GetSummary(ctx context.Context, userID uuid.UUID, window ledger.Window) (*StatsSummary, error) {
	entries, err := s.entries(ctx, userID, window)
	if err != nil {
		return nil, err
	}
	return &StatsSummary{
		Totals:            aggregate.SumTotals(entries, window),
		Monthly:           aggregate.MonthlySeries(entries, window),
		ExpenseByCategory: aggregate.ByCategory(entries, window, ledger.TransactionTypeExpense),
		SavingByCategory:  aggregate.ByCategory(entries, window, ledger.TransactionTypeSaving),
	}, nil
}
