package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finora-server/internal/storage"
	"github.com/carson-networks/finora-server/internal/storage/sqlconfig"
)

type UpsertCategory struct {
	UserID uuid.UUID
	Name   string

	Category *sqlconfig.Category
}

func (c *UpsertCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	category, err := writer.Categories.Upsert(ctx, c.UserID, c.Name)
	if err != nil {
		return err
	}

	c.Category = category
	return nil
}

type DeleteCategory struct {
	UserID uuid.UUID
	ID     uuid.UUID
}

func (c *DeleteCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	return found(writer.Categories.Delete(ctx, c.UserID, c.ID))
}
