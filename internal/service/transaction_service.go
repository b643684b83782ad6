package service

import (
	"context"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/aarondl/opt/omitnull"
	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finora-server/internal/ledger"
	"github.com/carson-networks/finora-server/internal/operator/actions"
	"github.com/carson-networks/finora-server/internal/storage"
	"github.com/carson-networks/finora-server/internal/storage/sqlconfig"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// ContributionRecorder records a goal contribution for a saving transaction.
type ContributionRecorder interface {
	AddContribution(ctx context.Context, userID uuid.UUID, input ContributionInput) (*Contribution, error)
}

// TransactionService handles transaction business logic.
type TransactionService struct {
	storage       *storage.Storage
	operator      Processor
	contributions ContributionRecorder
	logger        *logrus.Logger
	now           func() time.Time
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(
	store *storage.Storage,
	op Processor,
	contributions ContributionRecorder,
	logger *logrus.Logger,
	now func() time.Time,
) *TransactionService {
	return &TransactionService{
		storage:       store,
		operator:      op,
		contributions: contributions,
		logger:        logger,
		now:           now,
	}
}

// CreateTransaction validates and stores a transaction.
//
// A saving transaction must name a goal and never carries a category. Its
// amount is also recorded as a contribution to that goal and the goal name is
// appended to the note as a saved_to tag. The contribution is best effort: a
// failure is logged and the transaction is stored untagged.
func (s *TransactionService) CreateTransaction(ctx context.Context, userID uuid.UUID, input TransactionInput) (*Transaction, error) {
	if !input.Type.Valid() {
		return nil, invalid("type", "must be income, expense or saving")
	}
	if err := checkAmount("amount", input.Amount, moneyPlaces); err != nil {
		return nil, err
	}

	date := input.Date
	if date.IsZero() {
		date = ledger.Today(s.now())
	}

	create := &sqlconfig.TransactionCreate{
		UserID:          userID,
		Type:            input.Type,
		Amount:          input.Amount,
		Note:            input.Note,
		TransactionDate: date,
	}

	if input.Type == ledger.TransactionTypeSaving {
		if input.GoalID == nil {
			return nil, invalid("goal_id", "is required for saving transactions")
		}
		create.Note = s.recordContribution(ctx, userID, *input.GoalID, input, date)
	} else if input.CategoryID != nil {
		if err := s.checkCategory(ctx, userID, *input.CategoryID); err != nil {
			return nil, err
		}
		create.CategoryID = null.From(*input.CategoryID)
	}

	action := &actions.CreateTransaction{Create: create}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, translate(err, "transaction")
	}

	return s.GetTransaction(ctx, userID, action.CreatedID)
}

// recordContribution returns the note to store for a saving transaction.
func (s *TransactionService) recordContribution(
	ctx context.Context,
	userID, goalID uuid.UUID,
	input TransactionInput,
	date time.Time,
) string {
	contribution, err := s.contributions.AddContribution(ctx, userID, ContributionInput{
		GoalID: goalID,
		Amount: input.Amount,
		Date:   date,
	})
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"userID": userID.String(),
			"goalID": goalID.String(),
		}).Warn("TransactionService.CreateTransaction.contribution")
		return input.Note
	}
	return ledger.TagSavedTo(input.Note, contribution.GoalName)
}

func (s *TransactionService) checkCategory(ctx context.Context, userID, categoryID uuid.UUID) error {
	_, err := s.storage.Categories.FindByID(ctx, userID, categoryID)
	return translate(err, "category")
}

// GetTransaction retrieves a transaction of the user by ID.
func (s *TransactionService) GetTransaction(ctx context.Context, userID, id uuid.UUID) (*Transaction, error) {
	row, err := s.storage.Transactions.FindByID(ctx, userID, id)
	if err != nil {
		return nil, translate(err, "transaction")
	}
	tx := transactionFromStorage(row)
	return &tx, nil
}

// ListTransactions returns a page of the user's transactions inside window,
// newest first.
func (s *TransactionService) ListTransactions(
	ctx context.Context,
	userID uuid.UUID,
	window ledger.Window,
	cursor *TransactionCursor,
) ([]Transaction, *TransactionCursor, error) {
	limit := defaultLimit
	offset := 0
	if cursor != nil {
		if cursor.Limit > 0 {
			limit = min(cursor.Limit, maxLimit)
		}
		offset = cursor.Position
	}

	if window.Empty() {
		return nil, nil, nil
	}
	window = window.Dates()

	filter := &sqlconfig.TransactionFilter{
		UserID: userID,
		Start:  window.Start,
		End:    window.End,
		Limit:  limit,
		Offset: offset,
	}

	rows, err := s.storage.Transactions.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *TransactionCursor
	if len(rows) > limit {
		rows = rows[:limit]
		nextCursor = &TransactionCursor{
			Position: offset + limit,
			Limit:    limit,
		}
	}

	convertedTransactions := make([]Transaction, len(rows))
	for i, row := range rows {
		convertedTransactions[i] = transactionFromStorage(row)
	}

	return convertedTransactions, nextCursor, nil
}

// UpdateTransaction applies patch to a transaction of the user.
func (s *TransactionService) UpdateTransaction(ctx context.Context, userID, id uuid.UUID, patch TransactionPatch) (*Transaction, error) {
	current, err := s.storage.Transactions.FindByID(ctx, userID, id)
	if err != nil {
		return nil, translate(err, "transaction")
	}

	update := &sqlconfig.TransactionUpdate{
		Note:            patch.Note,
		TransactionDate: patch.Date,
		CategoryID:      patch.CategoryID,
	}

	effectiveType := current.Type
	if typ, ok := patch.Type.Get(); ok {
		if !typ.Valid() {
			return nil, invalid("type", "must be income, expense or saving")
		}
		effectiveType = typ
		update.Type = patch.Type
	}
	if amount, ok := patch.Amount.Get(); ok {
		if err := checkAmount("amount", amount, moneyPlaces); err != nil {
			return nil, err
		}
		update.Amount = patch.Amount
	}

	if categoryID, ok := patch.CategoryID.Get(); ok {
		if effectiveType == ledger.TransactionTypeSaving {
			return nil, invalid("category_id", "saving transactions have no category")
		}
		if err := s.checkCategory(ctx, userID, categoryID); err != nil {
			return nil, err
		}
	}
	if effectiveType == ledger.TransactionTypeSaving && current.CategoryID.IsValue() {
		update.CategoryID = omitnull.FromPtr[uuid.UUID](nil)
	}

	action := &actions.UpdateTransaction{UserID: userID, ID: id, Update: update}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, translate(err, "transaction")
	}

	tx := transactionFromStorage(action.Updated)
	return &tx, nil
}

// DeleteTransaction removes a transaction of the user.
func (s *TransactionService) DeleteTransaction(ctx context.Context, userID, id uuid.UUID) error {
	err := s.operator.Process(ctx, &actions.DeleteTransaction{UserID: userID, ID: id})
	return translate(err, "transaction")
}
