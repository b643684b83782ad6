// Package storagetest provides testify mocks of the storage tables.
package storagetest

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/finora-server/internal/storage"
	"github.com/carson-networks/finora-server/internal/storage/sqlconfig"
)

// Mocks holds one mock per table. Expectations are asserted on test cleanup.
type Mocks struct {
	Transactions  *TransactionTable
	Categories    *CategoryTable
	Budgets       *BudgetTable
	Goals         *GoalTable
	Contributions *ContributionTable
	Recurring     *RecurringTable
	Snapshots     *SnapshotTable
	Assets        *AssetTable
}

func NewMocks(t *testing.T) *Mocks {
	t.Helper()
	m := &Mocks{
		Transactions:  &TransactionTable{},
		Categories:    &CategoryTable{},
		Budgets:       &BudgetTable{},
		Goals:         &GoalTable{},
		Contributions: &ContributionTable{},
		Recurring:     &RecurringTable{},
		Snapshots:     &SnapshotTable{},
		Assets:        &AssetTable{},
	}
	t.Cleanup(func() {
		m.Transactions.AssertExpectations(t)
		m.Categories.AssertExpectations(t)
		m.Budgets.AssertExpectations(t)
		m.Goals.AssertExpectations(t)
		m.Contributions.AssertExpectations(t)
		m.Recurring.AssertExpectations(t)
		m.Snapshots.AssertExpectations(t)
		m.Assets.AssertExpectations(t)
	})
	return m
}

func (m *Mocks) Tables() storage.Tables {
	return storage.Tables{
		Transactions:  m.Transactions,
		Categories:    m.Categories,
		Budgets:       m.Budgets,
		Goals:         m.Goals,
		Contributions: m.Contributions,
		Recurring:     m.Recurring,
		Snapshots:     m.Snapshots,
		Assets:        m.Assets,
	}
}

// Storage returns a Storage whose pooled reads hit the mocks.
func (m *Mocks) Storage() *storage.Storage {
	return &storage.Storage{Tables: m.Tables()}
}

// Writer returns a Writer over the mocks bound to tx.
func (m *Mocks) Writer(tx *Tx) *storage.Writer {
	return storage.NewWriterWithTables(tx, m.Tables())
}

// Tx counts commits and rollbacks.
type Tx struct {
	Commits   int
	Rollbacks int
}

func (tx *Tx) Commit(context.Context) error {
	tx.Commits++
	return nil
}

func (tx *Tx) Rollback(context.Context) error {
	tx.Rollbacks++
	return nil
}

type TransactionTable struct{ mock.Mock }

var _ sqlconfig.ITransactionTable = (*TransactionTable)(nil)

func (m *TransactionTable) FindByID(ctx context.Context, userID, id uuid.UUID) (*sqlconfig.Transaction, error) {
	args := m.Called(ctx, userID, id)
	row, _ := args.Get(0).(*sqlconfig.Transaction)
	return row, args.Error(1)
}

func (m *TransactionTable) Insert(ctx context.Context, create *sqlconfig.TransactionCreate) (uuid.UUID, error) {
	args := m.Called(ctx, create)
	id, _ := args.Get(0).(uuid.UUID)
	return id, args.Error(1)
}

func (m *TransactionTable) List(ctx context.Context, filter *sqlconfig.TransactionFilter) ([]*sqlconfig.Transaction, error) {
	args := m.Called(ctx, filter)
	rows, _ := args.Get(0).([]*sqlconfig.Transaction)
	return rows, args.Error(1)
}

func (m *TransactionTable) Sums(ctx context.Context, filter *sqlconfig.TransactionFilter) ([]*sqlconfig.TransactionSum, error) {
	args := m.Called(ctx, filter)
	rows, _ := args.Get(0).([]*sqlconfig.TransactionSum)
	return rows, args.Error(1)
}

func (m *TransactionTable) Update(ctx context.Context, userID, id uuid.UUID, update *sqlconfig.TransactionUpdate) (bool, error) {
	args := m.Called(ctx, userID, id, update)
	return args.Bool(0), args.Error(1)
}

func (m *TransactionTable) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, id)
	return args.Bool(0), args.Error(1)
}

type CategoryTable struct{ mock.Mock }

var _ sqlconfig.ICategoryTable = (*CategoryTable)(nil)

func (m *CategoryTable) FindByID(ctx context.Context, userID, id uuid.UUID) (*sqlconfig.Category, error) {
	args := m.Called(ctx, userID, id)
	row, _ := args.Get(0).(*sqlconfig.Category)
	return row, args.Error(1)
}

func (m *CategoryTable) List(ctx context.Context, userID uuid.UUID) ([]*sqlconfig.Category, error) {
	args := m.Called(ctx, userID)
	rows, _ := args.Get(0).([]*sqlconfig.Category)
	return rows, args.Error(1)
}

func (m *CategoryTable) Upsert(ctx context.Context, userID uuid.UUID, name string) (*sqlconfig.Category, error) {
	args := m.Called(ctx, userID, name)
	row, _ := args.Get(0).(*sqlconfig.Category)
	return row, args.Error(1)
}

func (m *CategoryTable) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, id)
	return args.Bool(0), args.Error(1)
}

type BudgetTable struct{ mock.Mock }

var _ sqlconfig.IBudgetTable = (*BudgetTable)(nil)

func (m *BudgetTable) Find(ctx context.Context, userID uuid.UUID, month string) (*sqlconfig.Budget, error) {
	args := m.Called(ctx, userID, month)
	row, _ := args.Get(0).(*sqlconfig.Budget)
	return row, args.Error(1)
}

func (m *BudgetTable) Upsert(ctx context.Context, userID uuid.UUID, month string, limit decimal.Decimal) (*sqlconfig.Budget, error) {
	args := m.Called(ctx, userID, month, limit)
	row, _ := args.Get(0).(*sqlconfig.Budget)
	return row, args.Error(1)
}

type GoalTable struct{ mock.Mock }

var _ sqlconfig.IGoalTable = (*GoalTable)(nil)

func (m *GoalTable) FindByID(ctx context.Context, userID, id uuid.UUID) (*sqlconfig.Goal, error) {
	args := m.Called(ctx, userID, id)
	row, _ := args.Get(0).(*sqlconfig.Goal)
	return row, args.Error(1)
}

func (m *GoalTable) Insert(ctx context.Context, create *sqlconfig.GoalCreate) (*sqlconfig.Goal, error) {
	args := m.Called(ctx, create)
	row, _ := args.Get(0).(*sqlconfig.Goal)
	return row, args.Error(1)
}

func (m *GoalTable) List(ctx context.Context, userID uuid.UUID) ([]*sqlconfig.Goal, error) {
	args := m.Called(ctx, userID)
	rows, _ := args.Get(0).([]*sqlconfig.Goal)
	return rows, args.Error(1)
}

func (m *GoalTable) Update(ctx context.Context, userID, id uuid.UUID, update *sqlconfig.GoalUpdate) (*sqlconfig.Goal, error) {
	args := m.Called(ctx, userID, id, update)
	row, _ := args.Get(0).(*sqlconfig.Goal)
	return row, args.Error(1)
}

type ContributionTable struct{ mock.Mock }

var _ sqlconfig.IContributionTable = (*ContributionTable)(nil)

func (m *ContributionTable) Insert(ctx context.Context, create *sqlconfig.ContributionCreate) (*sqlconfig.Contribution, error) {
	args := m.Called(ctx, create)
	row, _ := args.Get(0).(*sqlconfig.Contribution)
	return row, args.Error(1)
}

func (m *ContributionTable) List(ctx context.Context, filter *sqlconfig.ContributionFilter) ([]*sqlconfig.Contribution, error) {
	args := m.Called(ctx, filter)
	rows, _ := args.Get(0).([]*sqlconfig.Contribution)
	return rows, args.Error(1)
}

type RecurringTable struct{ mock.Mock }

var _ sqlconfig.IRecurringTable = (*RecurringTable)(nil)

func (m *RecurringTable) Insert(ctx context.Context, create *sqlconfig.RecurringCreate) (*sqlconfig.RecurringTemplate, error) {
	args := m.Called(ctx, create)
	row, _ := args.Get(0).(*sqlconfig.RecurringTemplate)
	return row, args.Error(1)
}

func (m *RecurringTable) Lock(ctx context.Context, id uuid.UUID) (*sqlconfig.RecurringTemplate, error) {
	args := m.Called(ctx, id)
	row, _ := args.Get(0).(*sqlconfig.RecurringTemplate)
	return row, args.Error(1)
}

func (m *RecurringTable) List(ctx context.Context, userID uuid.UUID) ([]*sqlconfig.RecurringTemplate, error) {
	args := m.Called(ctx, userID)
	rows, _ := args.Get(0).([]*sqlconfig.RecurringTemplate)
	return rows, args.Error(1)
}

func (m *RecurringTable) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, id)
	return args.Bool(0), args.Error(1)
}

func (m *RecurringTable) MarkApplied(ctx context.Context, id uuid.UUID, appliedOn time.Time) error {
	args := m.Called(ctx, id, appliedOn)
	return args.Error(0)
}

func (m *RecurringTable) ListUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	ids, _ := args.Get(0).([]uuid.UUID)
	return ids, args.Error(1)
}

type SnapshotTable struct{ mock.Mock }

var _ sqlconfig.ISnapshotTable = (*SnapshotTable)(nil)

func (m *SnapshotTable) Insert(ctx context.Context, create *sqlconfig.SnapshotCreate) (*sqlconfig.SavingsSnapshot, error) {
	args := m.Called(ctx, create)
	row, _ := args.Get(0).(*sqlconfig.SavingsSnapshot)
	return row, args.Error(1)
}

func (m *SnapshotTable) List(ctx context.Context, userID uuid.UUID, limit int) ([]*sqlconfig.SavingsSnapshot, error) {
	args := m.Called(ctx, userID, limit)
	rows, _ := args.Get(0).([]*sqlconfig.SavingsSnapshot)
	return rows, args.Error(1)
}

type AssetTable struct{ mock.Mock }

var _ sqlconfig.IAssetTable = (*AssetTable)(nil)

func (m *AssetTable) Insert(ctx context.Context, create *sqlconfig.AssetCreate) (*sqlconfig.Asset, error) {
	args := m.Called(ctx, create)
	row, _ := args.Get(0).(*sqlconfig.Asset)
	return row, args.Error(1)
}

func (m *AssetTable) List(ctx context.Context, userID uuid.UUID) ([]*sqlconfig.Asset, error) {
	args := m.Called(ctx, userID)
	rows, _ := args.Get(0).([]*sqlconfig.Asset)
	return rows, args.Error(1)
}

func (m *AssetTable) Update(ctx context.Context, userID, id uuid.UUID, update *sqlconfig.AssetUpdate) (*sqlconfig.Asset, error) {
	args := m.Called(ctx, userID, id, update)
	row, _ := args.Get(0).(*sqlconfig.Asset)
	return row, args.Error(1)
}

func (m *AssetTable) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, id)
	return args.Bool(0), args.Error(1)
}
