package sqlconfig

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

var budgetColumns = []any{"id", "user_id", "month", "limit_amount"}

// Budget is the spending limit of one user for one YYYY-MM month.
type Budget struct {
	ID          uuid.UUID       `db:"id"`
	UserID      uuid.UUID       `db:"user_id"`
	Month       string          `db:"month"`
	LimitAmount decimal.Decimal `db:"limit_amount"`
}

type IBudgetTable interface {
	Find(ctx context.Context, userID uuid.UUID, month string) (*Budget, error)
	Upsert(ctx context.Context, userID uuid.UUID, month string, limit decimal.Decimal) (*Budget, error)
}

type BudgetsTable struct {
	exec bob.Executor
}

var _ IBudgetTable = (*BudgetsTable)(nil)

func NewBudgetsTable(exec bob.Executor) *BudgetsTable {
	return &BudgetsTable{exec: exec}
}

// Find returns the budget of a month, or sql.ErrNoRows when none is set.
func (t *BudgetsTable) Find(ctx context.Context, userID uuid.UUID, month string) (*Budget, error) {
	query := psql.Select(
		sm.Columns(budgetColumns...),
		sm.From("budgets"),
		sm.Where(ownedBy("", userID)),
		sm.Where(psql.Quote("month").EQ(psql.Arg(month))),
	)
	return bob.One(ctx, t.exec, query, scan.StructMapper[*Budget]())
}

// Upsert sets the limit of a month, replacing any previous limit.
func (t *BudgetsTable) Upsert(ctx context.Context, userID uuid.UUID, month string, limit decimal.Decimal) (*Budget, error) {
	query := psql.Insert(
		im.Into("budgets", "user_id", "month", "limit_amount"),
		im.Values(psql.Arg(userID, month, limit)),
		im.OnConflict("user_id", "month").DoUpdate(im.SetExcluded("limit_amount")),
		im.Returning(budgetColumns...),
	)
	return bob.One(ctx, t.exec, query, scan.StructMapper[*Budget]())
}
