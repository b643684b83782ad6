package transaction

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finora-server/internal/handlers/v1/apiutil"
	"github.com/carson-networks/finora-server/internal/ledger"
	"github.com/carson-networks/finora-server/internal/service"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID           string `json:"id" doc:"Transaction UUID"`
	CategoryID   string `json:"categoryID,omitempty" doc:"Category UUID, absent when uncategorized"`
	CategoryName string `json:"categoryName,omitempty" doc:"Name of the linked category"`
	Type         string `json:"type" doc:"income, expense or saving"`
	Amount       string `json:"amount" doc:"Decimal amount"`
	Note         string `json:"note" doc:"Free text note"`
	Date         string `json:"date" doc:"Transaction date (YYYY-MM-DD)"`
	CreatedAt    string `json:"createdAt" doc:"RFC3339 creation time"`
}

func fromService(tx *service.Transaction) Transaction {
	out := Transaction{
		ID:           tx.ID.String(),
		CategoryName: tx.CategoryName,
		Type:         string(tx.Type),
		Amount:       tx.Amount.String(),
		Note:         tx.Note,
		Date:         apiutil.FormatDate(tx.Date),
		CreatedAt:    tx.CreatedAt.Format(time.RFC3339),
	}
	if tx.CategoryID != nil {
		out.CategoryID = tx.CategoryID.String()
	}
	return out
}

// TransactionOutput is the Huma output carrying a single transaction.
type TransactionOutput struct {
	Body Transaction
}

type transactionCreator interface {
	CreateTransaction(ctx context.Context, userID uuid.UUID, input service.TransactionInput) (*service.Transaction, error)
}

type transactionGetter interface {
	GetTransaction(ctx context.Context, userID, id uuid.UUID) (*service.Transaction, error)
}

type transactionLister interface {
	ListTransactions(ctx context.Context, userID uuid.UUID, window ledger.Window, cursor *service.TransactionCursor) ([]service.Transaction, *service.TransactionCursor, error)
}

type transactionUpdater interface {
	UpdateTransaction(ctx context.Context, userID, id uuid.UUID, patch service.TransactionPatch) (*service.Transaction, error)
}

type transactionDeleter interface {
	DeleteTransaction(ctx context.Context, userID, id uuid.UUID) error
}
