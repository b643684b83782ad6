package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/finora-server/internal/ledger"
	"github.com/carson-networks/finora-server/internal/operator/actions"
	"github.com/carson-networks/finora-server/internal/recurring"
	"github.com/carson-networks/finora-server/internal/storage"
	"github.com/carson-networks/finora-server/internal/storage/sqlconfig"
)

const defaultRecurringConcurrency = 4

// RecurringTemplate is a transaction repeated every month.
type RecurringTemplate struct {
	ID              uuid.UUID
	CategoryID      *uuid.UUID
	Type            ledger.TransactionType
	Amount          decimal.Decimal
	Note            string
	DayOfMonth      int
	LastAppliedDate *time.Time
	CreatedAt       time.Time
}

// RecurringInput is a template to create.
type RecurringInput struct {
	CategoryID *uuid.UUID
	Type       ledger.TransactionType
	Amount     decimal.Decimal
	Note       string
	DayOfMonth int
}

// TemplateResult reports how many transactions one template produced. Err is
// set when the template could not be applied; nothing of it was written.
type TemplateResult struct {
	TemplateID uuid.UUID
	Applied    int
	Err        error
}

// RecurringService manages recurring templates and materialises them into
// the ledger.
type RecurringService struct {
	storage     *storage.Storage
	operator    Processor
	logger      *logrus.Logger
	concurrency int
	now         func() time.Time
}

func NewRecurringService(
	store *storage.Storage,
	op Processor,
	logger *logrus.Logger,
	concurrency int,
	now func() time.Time,
) *RecurringService {
	if concurrency <= 0 {
		concurrency = defaultRecurringConcurrency
	}
	return &RecurringService{
		storage:     store,
		operator:    op,
		logger:      logger,
		concurrency: concurrency,
		now:         now,
	}
}

var _ recurring.Runner = (*RecurringService)(nil)

func templateFromStorage(row *sqlconfig.RecurringTemplate) RecurringTemplate {
	t := RecurringTemplate{
		ID:         row.ID,
		Type:       row.Type,
		Amount:     row.Amount,
		Note:       row.Note,
		DayOfMonth: row.DayOfMonth,
		CreatedAt:  row.CreatedAt,
	}
	if id, ok := row.CategoryID.Get(); ok {
		t.CategoryID = &id
	}
	if date, ok := row.LastAppliedDate.Get(); ok {
		t.LastAppliedDate = &date
	}
	return t
}

// CreateTemplate validates and stores a template.
func (s *RecurringService) CreateTemplate(ctx context.Context, userID uuid.UUID, input RecurringInput) (*RecurringTemplate, error) {
	if !input.Type.Valid() {
		return nil, invalid("type", "must be income, expense or saving")
	}
	if err := checkAmount("amount", input.Amount, moneyPlaces); err != nil {
		return nil, err
	}
	if input.DayOfMonth < 1 || input.DayOfMonth > recurring.MaxDayOfMonth {
		return nil, invalid("day_of_month", fmt.Sprintf("must be between 1 and %d", recurring.MaxDayOfMonth))
	}

	create := &sqlconfig.RecurringCreate{
		UserID:     userID,
		Type:       input.Type,
		Amount:     input.Amount,
		Note:       input.Note,
		DayOfMonth: input.DayOfMonth,
	}
	if input.CategoryID != nil {
		if _, err := s.storage.Categories.FindByID(ctx, userID, *input.CategoryID); err != nil {
			return nil, translate(err, "category")
		}
		create.CategoryID = null.From(*input.CategoryID)
	}

	action := &actions.CreateRecurringTemplate{Create: create}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, translate(err, "recurring template")
	}

	t := templateFromStorage(action.Template)
	return &t, nil
}

// ListTemplates returns the user's templates ordered by day of month.
func (s *RecurringService) ListTemplates(ctx context.Context, userID uuid.UUID) ([]RecurringTemplate, error) {
	rows, err := s.storage.Recurring.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	templates := make([]RecurringTemplate, len(rows))
	for i, row := range rows {
		templates[i] = templateFromStorage(row)
	}
	return templates, nil
}

func (s *RecurringService) DeleteTemplate(ctx context.Context, userID, id uuid.UUID) error {
	err := s.operator.Process(ctx, &actions.DeleteRecurringTemplate{UserID: userID, ID: id})
	return translate(err, "recurring template")
}

// ApplyUpToToday materialises every transaction the user's templates owe as
// of today. Templates are applied concurrently and independently: each one
// is written in its own database transaction, and a failure is reported in
// its result without stopping the others. Templates that owe nothing are
// left out of the result.
func (s *RecurringService) ApplyUpToToday(ctx context.Context, userID uuid.UUID) ([]TemplateResult, error) {
	templates, err := s.storage.Recurring.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := ledger.Today(s.now())

	var due []*actions.ApplyRecurringTemplate
	for _, t := range templates {
		var lastApplied *time.Time
		if date, ok := t.LastAppliedDate.Get(); ok {
			lastApplied = &date
		}
		dates := recurring.DueDates(t.DayOfMonth, lastApplied, today)
		if len(dates) == 0 {
			continue
		}
		due = append(due, &actions.ApplyRecurringTemplate{
			TemplateID: t.ID,
			Today:      today,
		})
	}

	results := make([]TemplateResult, len(due))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, action := range due {
		g.Go(func() error {
			results[i] = TemplateResult{TemplateID: action.TemplateID}
			if err := s.operator.Process(gctx, action); err != nil {
				results[i].Err = err
				s.logger.WithError(err).WithFields(logrus.Fields{
					"userID":     userID.String(),
					"templateID": action.TemplateID.String(),
				}).Warn("RecurringService.ApplyUpToToday.template")
				return nil
			}
			results[i].Applied = action.Applied
			return nil
		})
	}
	_ = g.Wait()

	// Templates another run caught up first report nothing.
	applied := results[:0]
	for _, result := range results {
		if result.Err != nil || result.Applied > 0 {
			applied = append(applied, result)
		}
	}
	return applied, nil
}

// ApplyAll applies the templates of every user and returns the number of
// transactions created. Failed templates are joined into the error.
func (s *RecurringService) ApplyAll(ctx context.Context) (int, error) {
	userIDs, err := s.storage.Recurring.ListUserIDs(ctx)
	if err != nil {
		return 0, err
	}

	applied := 0
	var errs []error
	for _, userID := range userIDs {
		if err := ctx.Err(); err != nil {
			return applied, err
		}

		results, err := s.ApplyUpToToday(ctx, userID)
		if err != nil {
			errs = append(errs, fmt.Errorf("user %s: %w", userID, err))
			continue
		}
		for _, r := range results {
			applied += r.Applied
			if r.Err != nil {
				errs = append(errs, fmt.Errorf("template %s: %w", r.TemplateID, r.Err))
			}
		}
	}
	return applied, errors.Join(errs...)
}
