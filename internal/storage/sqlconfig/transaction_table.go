package sqlconfig

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

var _ ITransactionTable = (*TransactionsTable)(nil)

type TransactionsTable struct {
	exec bob.Executor
}

func NewTransactionsTable(exec bob.Executor) *TransactionsTable {
	return &TransactionsTable{exec: exec}
}

func selectTransactions(mods ...bob.Mod[*dialect.SelectQuery]) bob.BaseQuery[*dialect.SelectQuery] {
	base := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(
			"t.id", "t.user_id", "t.category_id",
			"COALESCE(c.name, '') AS category_name",
			"t.transaction_type", "t.amount", "t.note", "t.transaction_date", "t.created_at",
		),
		sm.From("transactions").As("t"),
		sm.LeftJoin("categories").As("c").On(
			psql.Quote("c", "id").EQ(psql.Quote("t", "category_id")),
		),
	}
	return psql.Select(append(base, mods...)...)
}

// FindByID retrieves a transaction by primary key.
func (t *TransactionsTable) FindByID(ctx context.Context, userID, id uuid.UUID) (*Transaction, error) {
	query := selectTransactions(
		sm.Where(idIs("t", id)),
		sm.Where(ownedBy("t", userID)),
	)
	return bob.One(ctx, t.exec, query, scan.StructMapper[*Transaction]())
}

// Insert creates a new transaction and returns its generated ID.
func (t *TransactionsTable) Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error) {
	query := psql.Insert(
		im.Into("transactions", "user_id", "category_id", "transaction_type", "amount", "note", "transaction_date"),
		im.Values(psql.Arg(
			create.UserID,
			create.CategoryID,
			create.Type,
			create.Amount,
			create.Note,
			create.TransactionDate,
		)),
		im.Returning("id"),
	)
	return bob.One(ctx, t.exec, query, scan.SingleColumnMapper[uuid.UUID])
}

// List returns transactions matching the filter, newest first. When Limit is
// set one extra row is fetched so callers can tell whether a next page exists.
func (t *TransactionsTable) List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error) {
	queryMods := filterMods(filter)
	if filter.Limit > 0 {
		queryMods = append(queryMods, sm.Limit(filter.Limit+1))
	}
	if filter.Offset > 0 {
		queryMods = append(queryMods, sm.Offset(filter.Offset))
	}
	queryMods = append(queryMods,
		sm.OrderBy(psql.Quote("t", "transaction_date")).Desc(),
		sm.OrderBy(psql.Quote("t", "created_at")).Desc(),
		sm.OrderBy(psql.Quote("t", "id")).Desc(),
	)

	return bob.All(ctx, t.exec, selectTransactions(queryMods...), scan.StructMapper[*Transaction]())
}

// Sums totals the rows matching filter per date, type, category name and
// saved_to goal tag. Limit and Offset are ignored.
func (t *TransactionsTable) Sums(ctx context.Context, filter *TransactionFilter) ([]*TransactionSum, error) {
	query := psql.Select(append([]bob.Mod[*dialect.SelectQuery]{
		sm.Columns(
			"t.transaction_date", "t.transaction_type",
			"COALESCE(c.name, '') AS category_name",
			savedToColumn,
			"SUM(t.amount) AS amount",
		),
		sm.From("transactions").As("t"),
		sm.LeftJoin("categories").As("c").On(
			psql.Quote("c", "id").EQ(psql.Quote("t", "category_id")),
		),
		sm.GroupBy("t.transaction_date"),
		sm.GroupBy("t.transaction_type"),
		sm.GroupBy("category_name"),
		sm.GroupBy("saved_to"),
		sm.OrderBy("t.transaction_date"),
	}, filterMods(filter)...)...)

	return bob.All(ctx, t.exec, query, scan.StructMapper[*TransactionSum]())
}

// savedToColumn extracts the trimmed text after the first saved_to: marker of
// the note, matching ledger.SavedTo.
const savedToColumn = `CASE WHEN position('saved_to:' in t.note) > 0
	THEN btrim(substr(t.note, position('saved_to:' in t.note) + 9), ' ' || chr(9) || chr(10) || chr(11) || chr(12) || chr(13))
	ELSE '' END AS saved_to`

func filterMods(filter *TransactionFilter) []bob.Mod[*dialect.SelectQuery] {
	mods := []bob.Mod[*dialect.SelectQuery]{
		sm.Where(ownedBy("t", filter.UserID)),
	}
	if filter.Type != nil {
		mods = append(mods, sm.Where(psql.Quote("t", "transaction_type").EQ(psql.Arg(*filter.Type))))
	}
	if filter.Start != nil {
		mods = append(mods, sm.Where(psql.Quote("t", "transaction_date").GTE(psql.Arg(*filter.Start))))
	}
	if filter.End != nil {
		mods = append(mods, sm.Where(psql.Quote("t", "transaction_date").LTE(psql.Arg(*filter.End))))
	}
	return mods
}

// Update applies the set fields of update and reports whether the row exists.
func (t *TransactionsTable) Update(ctx context.Context, userID, id uuid.UUID, update *TransactionUpdate) (bool, error) {
	var sets []bob.Mod[*dialect.UpdateQuery]
	if !update.CategoryID.IsUnset() {
		sets = append(sets, um.SetCol("category_id").ToArg(update.CategoryID))
	}
	if v, ok := update.Type.Get(); ok {
		sets = append(sets, um.SetCol("transaction_type").ToArg(v))
	}
	if v, ok := update.Amount.Get(); ok {
		sets = append(sets, um.SetCol("amount").ToArg(v))
	}
	if v, ok := update.Note.Get(); ok {
		sets = append(sets, um.SetCol("note").ToArg(v))
	}
	if v, ok := update.TransactionDate.Get(); ok {
		sets = append(sets, um.SetCol("transaction_date").ToArg(v))
	}

	if len(sets) == 0 {
		_, err := t.FindByID(ctx, userID, id)
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return err == nil, err
	}

	query := psql.Update(append([]bob.Mod[*dialect.UpdateQuery]{
		um.Table("transactions"),
		um.Where(idIs("", id)),
		um.Where(ownedBy("", userID)),
	}, sets...)...)
	res, err := bob.Exec(ctx, t.exec, query)
	if err != nil {
		return false, err
	}
	return affected(res)
}

// Delete removes a transaction and reports whether it existed.
func (t *TransactionsTable) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	query := psql.Delete(
		dm.From("transactions"),
		dm.Where(idIs("", id)),
		dm.Where(ownedBy("", userID)),
	)
	res, err := bob.Exec(ctx, t.exec, query)
	if err != nil {
		return false, err
	}
	return affected(res)
}
