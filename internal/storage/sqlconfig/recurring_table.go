package sqlconfig

import (
	"context"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/finora-server/internal/ledger"
)

var recurringColumns = []any{
	"id", "user_id", "category_id", "transaction_type", "amount", "note",
	"day_of_month", "last_applied_date", "created_at",
}

// RecurringTemplate is a transaction materialised once per month.
type RecurringTemplate struct {
	ID              uuid.UUID              `db:"id"`
	UserID          uuid.UUID              `db:"user_id"`
	CategoryID      null.Val[uuid.UUID]    `db:"category_id"`
	Type            ledger.TransactionType `db:"transaction_type"`
	Amount          decimal.Decimal        `db:"amount"`
	Note            string                 `db:"note"`
	DayOfMonth      int                    `db:"day_of_month"`
	LastAppliedDate null.Val[time.Time]    `db:"last_applied_date"`
	CreatedAt       time.Time              `db:"created_at"`
}

type RecurringCreate struct {
	UserID     uuid.UUID
	CategoryID null.Val[uuid.UUID]
	Type       ledger.TransactionType
	Amount     decimal.Decimal
	Note       string
	DayOfMonth int
}

type IRecurringTable interface {
	Insert(ctx context.Context, create *RecurringCreate) (*RecurringTemplate, error)
	List(ctx context.Context, userID uuid.UUID) ([]*RecurringTemplate, error)
	Lock(ctx context.Context, id uuid.UUID) (*RecurringTemplate, error)
	Delete(ctx context.Context, userID, id uuid.UUID) (bool, error)
	MarkApplied(ctx context.Context, id uuid.UUID, appliedOn time.Time) error
	ListUserIDs(ctx context.Context) ([]uuid.UUID, error)
}

type RecurringTable struct {
	exec bob.Executor
}

var _ IRecurringTable = (*RecurringTable)(nil)

func NewRecurringTable(exec bob.Executor) *RecurringTable {
	return &RecurringTable{exec: exec}
}

func (t *RecurringTable) Insert(ctx context.Context, create *RecurringCreate) (*RecurringTemplate, error) {
	query := psql.Insert(
		im.Into("recurring_templates", "user_id", "category_id", "transaction_type", "amount", "note", "day_of_month"),
		im.Values(psql.Arg(
			create.UserID,
			create.CategoryID,
			create.Type,
			create.Amount,
			create.Note,
			create.DayOfMonth,
		)),
		im.Returning(recurringColumns...),
	)
	return bob.One(ctx, t.exec, query, scan.StructMapper[*RecurringTemplate]())
}

// List returns the templates of a user ordered by day of month.
func (t *RecurringTable) List(ctx context.Context, userID uuid.UUID) ([]*RecurringTemplate, error) {
	query := psql.Select(
		sm.Columns(recurringColumns...),
		sm.From("recurring_templates"),
		sm.Where(ownedBy("", userID)),
		sm.OrderBy(psql.Quote("day_of_month")).Asc(),
		sm.OrderBy(psql.Quote("created_at")).Asc(),
	)
	return bob.All(ctx, t.exec, query, scan.StructMapper[*RecurringTemplate]())
}

// Lock reads a template and holds its row lock until the surrounding
// transaction ends. Concurrent callers block and then see the committed row.
func (t *RecurringTable) Lock(ctx context.Context, id uuid.UUID) (*RecurringTemplate, error) {
	query := psql.Select(
		sm.Columns(recurringColumns...),
		sm.From("recurring_templates"),
		sm.Where(idIs("", id)),
		sm.ForUpdate(),
	)
	return bob.One(ctx, t.exec, query, scan.StructMapper[*RecurringTemplate]())
}

func (t *RecurringTable) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	query := psql.Delete(
		dm.From("recurring_templates"),
		dm.Where(idIs("", id)),
		dm.Where(ownedBy("", userID)),
	)
	res, err := bob.Exec(ctx, t.exec, query)
	if err != nil {
		return false, err
	}
	return affected(res)
}

// MarkApplied advances the last applied date of a template.
func (t *RecurringTable) MarkApplied(ctx context.Context, id uuid.UUID, appliedOn time.Time) error {
	query := psql.Update(
		um.Table("recurring_templates"),
		um.SetCol("last_applied_date").ToArg(appliedOn),
		um.Where(idIs("", id)),
	)
	_, err := bob.Exec(ctx, t.exec, query)
	return err
}

// ListUserIDs returns every user owning at least one template.
func (t *RecurringTable) ListUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	query := psql.Select(
		sm.Distinct(),
		sm.Columns("user_id"),
		sm.From("recurring_templates"),
		sm.OrderBy(psql.Quote("user_id")),
	)
	return bob.All(ctx, t.exec, query, scan.SingleColumnMapper[uuid.UUID])
}
