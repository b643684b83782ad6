package actions

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finora-server/internal/recurring"
	"github.com/carson-networks/finora-server/internal/storage"
	"github.com/carson-networks/finora-server/internal/storage/sqlconfig"
)

type CreateRecurringTemplate struct {
	Create *sqlconfig.RecurringCreate

	Template *sqlconfig.RecurringTemplate
}

func (r *CreateRecurringTemplate) Perform(ctx context.Context, writer *storage.Writer) error {
	template, err := writer.Recurring.Insert(ctx, r.Create)
	if err != nil {
		return err
	}

	r.Template = template
	return nil
}

type DeleteRecurringTemplate struct {
	UserID uuid.UUID
	ID     uuid.UUID
}

func (r *DeleteRecurringTemplate) Perform(ctx context.Context, writer *storage.Writer) error {
	return found(writer.Recurring.Delete(ctx, r.UserID, r.ID))
}

// ApplyRecurringTemplate locks a template, inserts one transaction per date
// still due up to Today, oldest first, then moves its last applied date to
// Today. The due dates come from the locked row, so a run racing another one
// for the same template writes nothing once the other has committed. A
// template deleted in between applies nothing.
type ApplyRecurringTemplate struct {
	TemplateID uuid.UUID
	Today      time.Time

	Applied int
}

func (r *ApplyRecurringTemplate) Perform(ctx context.Context, writer *storage.Writer) error {
	r.Applied = 0

	template, err := writer.Recurring.Lock(ctx, r.TemplateID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}

	var lastApplied *time.Time
	if date, ok := template.LastAppliedDate.Get(); ok {
		lastApplied = &date
	}
	dates := recurring.DueDates(template.DayOfMonth, lastApplied, r.Today)
	if len(dates) == 0 {
		return nil
	}

	for _, date := range dates {
		_, err := writer.Transactions.Insert(ctx, &sqlconfig.TransactionCreate{
			UserID:          template.UserID,
			CategoryID:      template.CategoryID,
			Type:            template.Type,
			Amount:          template.Amount,
			Note:            template.Note,
			TransactionDate: date,
		})
		if err != nil {
			return err
		}
	}

	if err := writer.Recurring.MarkApplied(ctx, template.ID, r.Today); err != nil {
		return err
	}

	r.Applied = len(dates)
	return nil
}
