package actions

import (
	"context"
	"database/sql"

	"github.com/carson-networks/finora-server/internal/storage"
)

// IAction is one unit of work performed inside a single database transaction.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}

// found turns a "row affected" result into sql.ErrNoRows when nothing matched.
func found(ok bool, err error) error {
	if err != nil {
		return err
	}
	if !ok {
		return sql.ErrNoRows
	}
	return nil
}
