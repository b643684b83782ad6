package sqlconfig

import (
	"context"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finora-server/internal/ledger"
)

// Transaction represents a ledger row joined with the name of its category.
// CategoryName is empty when the row has no category.
type Transaction struct {
	ID              uuid.UUID              `db:"id"`
	UserID          uuid.UUID              `db:"user_id"`
	CategoryID      null.Val[uuid.UUID]    `db:"category_id"`
	CategoryName    string                 `db:"category_name"`
	Type            ledger.TransactionType `db:"transaction_type"`
	Amount          decimal.Decimal        `db:"amount"`
	Note            string                 `db:"note"`
	TransactionDate time.Time              `db:"transaction_date"`
	CreatedAt       time.Time              `db:"created_at"`
}

// TransactionCreate is the input for creating a new transaction.
type TransactionCreate struct {
	UserID          uuid.UUID
	CategoryID      null.Val[uuid.UUID]
	Type            ledger.TransactionType
	Amount          decimal.Decimal
	Note            string
	TransactionDate time.Time
}

// TransactionUpdate carries the fields to change. Unset fields keep their value.
type TransactionUpdate struct {
	CategoryID      omitnull.Val[uuid.UUID]
	Type            omit.Val[ledger.TransactionType]
	Amount          omit.Val[decimal.Decimal]
	Note            omit.Val[string]
	TransactionDate omit.Val[time.Time]
}

// TransactionFilter specifies filters for listing transactions. Start and End
// bound the transaction date inclusively; nil bounds are open.
type TransactionFilter struct {
	UserID uuid.UUID
	Type   *ledger.TransactionType
	Start  *time.Time
	End    *time.Time
	Limit  int
	Offset int
}

// TransactionSum is the total of the ledger rows sharing a date, a type and a
// reporting label. SavedTo is the goal name tagged in the note, or empty.
type TransactionSum struct {
	TransactionDate time.Time              `db:"transaction_date"`
	Type            ledger.TransactionType `db:"transaction_type"`
	CategoryName    string                 `db:"category_name"`
	SavedTo         string                 `db:"saved_to"`
	Amount          decimal.Decimal        `db:"amount"`
}

// ITransactionTable defines the interface for transaction storage operations.
// Lookups of a row owned by another user behave as a miss.
type ITransactionTable interface {
	FindByID(ctx context.Context, userID, id uuid.UUID) (*Transaction, error)
	Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error)
	List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error)
	Sums(ctx context.Context, filter *TransactionFilter) ([]*TransactionSum, error)
	Update(ctx context.Context, userID, id uuid.UUID, update *TransactionUpdate) (bool, error)
	Delete(ctx context.Context, userID, id uuid.UUID) (bool, error)
}
