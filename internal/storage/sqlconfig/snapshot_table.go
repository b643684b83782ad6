package sqlconfig

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

var snapshotColumns = []any{"id", "user_id", "total_income", "total_expense", "total_savings", "snapshot_date", "created_at"}

// SavingsSnapshot is an append-only record of the ledger totals on a day.
type SavingsSnapshot struct {
	ID           uuid.UUID       `db:"id"`
	UserID       uuid.UUID       `db:"user_id"`
	TotalIncome  decimal.Decimal `db:"total_income"`
	TotalExpense decimal.Decimal `db:"total_expense"`
	TotalSavings decimal.Decimal `db:"total_savings"`
	SnapshotDate time.Time       `db:"snapshot_date"`
	CreatedAt    time.Time       `db:"created_at"`
}

type SnapshotCreate struct {
	UserID       uuid.UUID
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	TotalSavings decimal.Decimal
	SnapshotDate time.Time
}

type ISnapshotTable interface {
	Insert(ctx context.Context, create *SnapshotCreate) (*SavingsSnapshot, error)
	List(ctx context.Context, userID uuid.UUID, limit int) ([]*SavingsSnapshot, error)
}

type SnapshotsTable struct {
	exec bob.Executor
}

var _ ISnapshotTable = (*SnapshotsTable)(nil)

func NewSnapshotsTable(exec bob.Executor) *SnapshotsTable {
	return &SnapshotsTable{exec: exec}
}

func (t *SnapshotsTable) Insert(ctx context.Context, create *SnapshotCreate) (*SavingsSnapshot, error) {
	query := psql.Insert(
		im.Into("savings_snapshots", "user_id", "total_income", "total_expense", "total_savings", "snapshot_date"),
		im.Values(psql.Arg(
			create.UserID,
			create.TotalIncome,
			create.TotalExpense,
			create.TotalSavings,
			create.SnapshotDate,
		)),
		im.Returning(snapshotColumns...),
	)
	return bob.One(ctx, t.exec, query, scan.StructMapper[*SavingsSnapshot]())
}

// List returns the latest snapshots of a user, newest first.
func (t *SnapshotsTable) List(ctx context.Context, userID uuid.UUID, limit int) ([]*SavingsSnapshot, error) {
	query := psql.Select(
		sm.Columns(snapshotColumns...),
		sm.From("savings_snapshots"),
		sm.Where(ownedBy("", userID)),
		sm.OrderBy(psql.Quote("snapshot_date")).Desc(),
		sm.OrderBy(psql.Quote("created_at")).Desc(),
		sm.Limit(limit),
	)
	return bob.All(ctx, t.exec, query, scan.StructMapper[*SavingsSnapshot]())
}
