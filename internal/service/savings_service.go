package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finora-server/internal/aggregate"
	"github.com/carson-networks/finora-server/internal/ledger"
	"github.com/carson-networks/finora-server/internal/operator/actions"
	"github.com/carson-networks/finora-server/internal/storage"
	"github.com/carson-networks/finora-server/internal/storage/sqlconfig"
)

// snapshotHistoryLimit is the number of snapshots returned by History.
const snapshotHistoryLimit = 60

// Snapshot is the ledger totals recorded on one day.
type Snapshot struct {
	ID           uuid.UUID
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	TotalSavings decimal.Decimal
	Date         time.Time
}

// SavingsService records and lists savings snapshots.
type SavingsService struct {
	storage  *storage.Storage
	operator Processor
	now      func() time.Time
}

func NewSavingsService(store *storage.Storage, op Processor, now func() time.Time) *SavingsService {
	return &SavingsService{storage: store, operator: op, now: now}
}

func snapshotFromStorage(row *sqlconfig.SavingsSnapshot) Snapshot {
	return Snapshot{
		ID:           row.ID,
		TotalIncome:  row.TotalIncome,
		TotalExpense: row.TotalExpense,
		TotalSavings: row.TotalSavings,
		Date:         row.SnapshotDate,
	}
}

// TakeSnapshot appends the current whole-ledger totals. Repeated calls on the
// same day each append a row.
func (s *SavingsService) TakeSnapshot(ctx context.Context, userID uuid.UUID) (*Snapshot, error) {
	entries, err := loadEntries(ctx, s.storage.Transactions, userID, ledger.Window{}, nil)
	if err != nil {
		return nil, err
	}
	totals := aggregate.SumTotals(entries, ledger.Window{})

	action := &actions.RecordSnapshot{Create: &sqlconfig.SnapshotCreate{
		UserID:       userID,
		TotalIncome:  totals.Income,
		TotalExpense: totals.Expense,
		TotalSavings: totals.Saving,
		SnapshotDate: ledger.Today(s.now()),
	}}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, translate(err, "snapshot")
	}

	snapshot := snapshotFromStorage(action.Snapshot)
	return &snapshot, nil
}

// History returns the latest snapshots, newest first.
func (s *SavingsService) History(ctx context.Context, userID uuid.UUID) ([]Snapshot, error) {
	rows, err := s.storage.Snapshots.List(ctx, userID, snapshotHistoryLimit)
	if err != nil {
		return nil, err
	}

	snapshots := make([]Snapshot, len(rows))
	for i, row := range rows {
		snapshots[i] = snapshotFromStorage(row)
	}
	return snapshots, nil
}
