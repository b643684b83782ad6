// Package sqlconfig holds the per-table PostgreSQL access built on bob.
// Every table is constructed over a bob.Executor so the same implementation
// serves pooled reads and reads or writes bound to a transaction.
package sqlconfig

import (
	"database/sql"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
)

// ownedBy matches rows of table that belong to userID. An empty table name
// leaves the column unqualified.
func ownedBy(table string, userID uuid.UUID) dialect.Expression {
	return qualified(table, "user_id").EQ(psql.Arg(userID))
}

// idIs matches the row of table with the given primary key.
func idIs(table string, id uuid.UUID) dialect.Expression {
	return qualified(table, "id").EQ(psql.Arg(id))
}

func qualified(table, column string) dialect.Expression {
	if table == "" {
		return psql.Quote(column)
	}
	return psql.Quote(table, column)
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
