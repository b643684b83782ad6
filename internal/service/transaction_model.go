package service

import (
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finora-server/internal/ledger"
	"github.com/carson-networks/finora-server/internal/storage/sqlconfig"
)

// Transaction represents a transaction in the service layer.
type Transaction struct {
	ID           uuid.UUID
	CategoryID   *uuid.UUID
	CategoryName string
	Type         ledger.TransactionType
	Amount       decimal.Decimal
	Note         string
	Date         time.Time
	CreatedAt    time.Time
}

// TransactionInput is a transaction to create. A zero Date means today.
// GoalID is required for saving transactions and ignored otherwise.
type TransactionInput struct {
	CategoryID *uuid.UUID
	GoalID     *uuid.UUID
	Type       ledger.TransactionType
	Amount     decimal.Decimal
	Note       string
	Date       time.Time
}

// TransactionPatch carries the fields to change. Unset fields keep their value
// and a null CategoryID clears the category.
type TransactionPatch struct {
	CategoryID omitnull.Val[uuid.UUID]
	Type       omit.Val[ledger.TransactionType]
	Amount     omit.Val[decimal.Decimal]
	Note       omit.Val[string]
	Date       omit.Val[time.Time]
}

// TransactionCursor identifies a position in a paginated result set.
type TransactionCursor struct {
	Position int
	Limit    int
}

func transactionFromStorage(row *sqlconfig.Transaction) Transaction {
	tx := Transaction{
		ID:           row.ID,
		CategoryName: row.CategoryName,
		Type:         row.Type,
		Amount:       row.Amount,
		Note:         row.Note,
		Date:         row.TransactionDate,
		CreatedAt:    row.CreatedAt,
	}
	if id, ok := row.CategoryID.Get(); ok {
		tx.CategoryID = &id
	}
	return tx
}
