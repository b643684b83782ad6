package storage

import (
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/finora-server/internal/storage/sqlconfig"
)

// Tables groups every table bound to one executor.
type Tables struct {
	Transactions  sqlconfig.ITransactionTable
	Categories    sqlconfig.ICategoryTable
	Budgets       sqlconfig.IBudgetTable
	Goals         sqlconfig.IGoalTable
	Contributions sqlconfig.IContributionTable
	Recurring     sqlconfig.IRecurringTable
	Snapshots     sqlconfig.ISnapshotTable
	Assets        sqlconfig.IAssetTable
}

func NewTables(exec bob.Executor) Tables {
	return Tables{
		Transactions:  sqlconfig.NewTransactionsTable(exec),
		Categories:    sqlconfig.NewCategoriesTable(exec),
		Budgets:       sqlconfig.NewBudgetsTable(exec),
		Goals:         sqlconfig.NewGoalsTable(exec),
		Contributions: sqlconfig.NewContributionsTable(exec),
		Recurring:     sqlconfig.NewRecurringTable(exec),
		Snapshots:     sqlconfig.NewSnapshotsTable(exec),
		Assets:        sqlconfig.NewAssetsTable(exec),
	}
}
