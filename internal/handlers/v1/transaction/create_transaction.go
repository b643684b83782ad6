package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finora-server/internal/handlers/v1/apiutil"
	"github.com/carson-networks/finora-server/internal/ledger"
	"github.com/carson-networks/finora-server/internal/logging"
	"github.com/carson-networks/finora-server/internal/service"
)

// CreateTransactionBody is the request body for creating a transaction.
type CreateTransactionBody struct {
	Type       string `json:"type" required:"true" enum:"income,expense,saving" doc:"Transaction type"`
	Amount     string `json:"amount" required:"true" minLength:"1" doc:"Non-negative decimal amount"`
	CategoryID string `json:"categoryID,omitempty" format:"uuid" doc:"Category UUID, ignored for saving transactions"`
	GoalID     string `json:"goalID,omitempty" format:"uuid" doc:"Savings goal UUID, required for saving transactions"`
	Note       string `json:"note,omitempty" maxLength:"500" doc:"Free text note"`
	Date       string `json:"date,omitempty" format:"date" doc:"Transaction date (YYYY-MM-DD), defaults to today"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	apiutil.UserHeader
	Body CreateTransactionBody
}

// CreateTransactionHandler handles POST /v1/transaction.
type CreateTransactionHandler struct {
	TransactionService transactionCreator
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(svc transactionCreator) *CreateTransactionHandler {
	return &CreateTransactionHandler{TransactionService: svc}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-transaction",
		Method:        http.MethodPost,
		Path:          "/v1/transaction",
		Summary:       "Create transaction",
		Description:   "Creates a transaction. Saving transactions are also recorded as a contribution to their goal.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

// parseCreateTransactionInput parses and validates the API input into a service input.
func parseCreateTransactionInput(input *CreateTransactionInput) (service.TransactionInput, error) {
	var err error
	parsed := service.TransactionInput{
		Type: ledger.TransactionType(input.Body.Type),
		Note: input.Body.Note,
	}

	if parsed.Amount, err = apiutil.ParseAmount("amount", input.Body.Amount); err != nil {
		return service.TransactionInput{}, err
	}
	if parsed.CategoryID, err = apiutil.ParseOptionalID("categoryID", input.Body.CategoryID); err != nil {
		return service.TransactionInput{}, err
	}
	if parsed.GoalID, err = apiutil.ParseOptionalID("goalID", input.Body.GoalID); err != nil {
		return service.TransactionInput{}, err
	}
	if parsed.Date, err = apiutil.ParseOptionalDate("date", input.Body.Date); err != nil {
		return service.TransactionInput{}, err
	}
	return parsed, nil
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*TransactionOutput, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}
	parsed, err := parseCreateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	stopTimer := logging.Time(ctx, "createTransactionMs")
	tx, err := h.TransactionService.CreateTransaction(ctx, userID, parsed)
	stopTimer()
	if err != nil {
		return nil, apiutil.Error(err, "failed to create transaction")
	}

	logging.Data(ctx, "transactionID", tx.ID.String())
	return &TransactionOutput{Body: fromService(tx)}, nil
}

