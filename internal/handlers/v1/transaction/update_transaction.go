package transaction

import (
	"context"
	"net/http"

	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finora-server/internal/handlers/v1/apiutil"
	"github.com/carson-networks/finora-server/internal/ledger"
	"github.com/carson-networks/finora-server/internal/service"
)

// UpdateTransactionBody lists the fields to change. Absent fields keep their
// value.
type UpdateTransactionBody struct {
	Type          *string `json:"type,omitempty" enum:"income,expense,saving" doc:"Transaction type"`
	Amount        *string `json:"amount,omitempty" doc:"Non-negative decimal amount"`
	CategoryID    *string `json:"categoryID,omitempty" format:"uuid" doc:"Category UUID"`
	ClearCategory bool    `json:"clearCategory,omitempty" doc:"Remove the category link"`
	Note          *string `json:"note,omitempty" maxLength:"500" doc:"Free text note"`
	Date          *string `json:"date,omitempty" format:"date" doc:"Transaction date (YYYY-MM-DD)"`
}

type UpdateTransactionInput struct {
	apiutil.UserHeader
	apiutil.IDPath
	Body UpdateTransactionBody
}

// UpdateTransactionHandler handles PATCH /v1/transaction/{id}.
type UpdateTransactionHandler struct {
	TransactionService transactionUpdater
}

func NewUpdateTransactionHandler(svc transactionUpdater) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{TransactionService: svc}
}

func (h *UpdateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPatch,
		Path:        "/v1/transaction/{id}",
		Summary:     "Update transaction",
		Description: "Changes the given fields of a transaction.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func parseUpdateTransactionBody(body *UpdateTransactionBody) (service.TransactionPatch, error) {
	var patch service.TransactionPatch

	if body.Type != nil {
		patch.Type = omit.From(ledger.TransactionType(*body.Type))
	}
	if body.Amount != nil {
		amount, err := apiutil.ParseAmount("amount", *body.Amount)
		if err != nil {
			return patch, err
		}
		patch.Amount = omit.From(amount)
	}
	switch {
	case body.ClearCategory:
		patch.CategoryID = omitnull.FromPtr[uuid.UUID](nil)
	case body.CategoryID != nil:
		id, err := apiutil.ParseID("categoryID", *body.CategoryID)
		if err != nil {
			return patch, err
		}
		patch.CategoryID = omitnull.From(id)
	}
	if body.Note != nil {
		patch.Note = omit.From(*body.Note)
	}
	if body.Date != nil {
		date, err := apiutil.ParseDate("date", *body.Date)
		if err != nil {
			return patch, err
		}
		patch.Date = omit.From(date)
	}
	return patch, nil
}

func (h *UpdateTransactionHandler) handle(ctx context.Context, input *UpdateTransactionInput) (*TransactionOutput, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}
	id, err := input.Parse()
	if err != nil {
		return nil, err
	}
	patch, err := parseUpdateTransactionBody(&input.Body)
	if err != nil {
		return nil, err
	}

	tx, err := h.TransactionService.UpdateTransaction(ctx, userID, id, patch)
	if err != nil {
		return nil, apiutil.Error(err, "failed to update transaction")
	}
	return &TransactionOutput{Body: fromService(tx)}, nil
}
