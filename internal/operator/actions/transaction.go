package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finora-server/internal/storage"
	"github.com/carson-networks/finora-server/internal/storage/sqlconfig"
)

type CreateTransaction struct {
	Create *sqlconfig.TransactionCreate

	CreatedID uuid.UUID
}

func (t *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	id, err := writer.Transactions.Insert(ctx, t.Create)
	if err != nil {
		return err
	}

	t.CreatedID = id
	return nil
}

type UpdateTransaction struct {
	UserID uuid.UUID
	ID     uuid.UUID
	Update *sqlconfig.TransactionUpdate

	Updated *sqlconfig.Transaction
}

func (t *UpdateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := found(writer.Transactions.Update(ctx, t.UserID, t.ID, t.Update)); err != nil {
		return err
	}

	row, err := writer.Transactions.FindByID(ctx, t.UserID, t.ID)
	if err != nil {
		return err
	}

	t.Updated = row
	return nil
}

type DeleteTransaction struct {
	UserID uuid.UUID
	ID     uuid.UUID
}

func (t *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	return found(writer.Transactions.Delete(ctx, t.UserID, t.ID))
}
