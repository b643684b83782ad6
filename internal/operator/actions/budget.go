package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finora-server/internal/storage"
	"github.com/carson-networks/finora-server/internal/storage/sqlconfig"
)

type UpsertBudget struct {
	UserID uuid.UUID
	Month  string
	Limit  decimal.Decimal

	Budget *sqlconfig.Budget
}

func (b *UpsertBudget) Perform(ctx context.Context, writer *storage.Writer) error {
	budget, err := writer.Budgets.Upsert(ctx, b.UserID, b.Month, b.Limit)
	if err != nil {
		return err
	}

	b.Budget = budget
	return nil
}
