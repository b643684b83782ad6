package budget

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finora-server/internal/aggregate"
	"github.com/carson-networks/finora-server/internal/handlers/v1/apiutil"
	"github.com/carson-networks/finora-server/internal/service"
)

type budgetService interface {
	SetBudget(ctx context.Context, userID uuid.UUID, month string, limit decimal.Decimal) (*service.Budget, error)
	GetBudgetProgress(ctx context.Context, userID uuid.UUID, month string) (*aggregate.BudgetProgress, error)
}

type MonthPath struct {
	Month string `path:"month" pattern:"^[0-9]{4}-[0-9]{2}$" doc:"Calendar month (YYYY-MM)"`
}

type SetBudgetInput struct {
	apiutil.UserHeader
	MonthPath
	Body struct {
		LimitAmount string `json:"limitAmount" minLength:"1" doc:"Non-negative decimal spending limit"`
	}
}

type BudgetOutput struct {
	Body struct {
		Month       string `json:"month"`
		LimitAmount string `json:"limitAmount"`
	}
}

type BudgetProgressInput struct {
	apiutil.UserHeader
	MonthPath
}

type BudgetProgressOutput struct {
	Body struct {
		Month       string `json:"month"`
		LimitAmount string `json:"limitAmount" doc:"Budget limit, 0 when no budget is set"`
		Spent       string `json:"spent" doc:"Sum of the month's expenses"`
	}
}

// Handler serves /v1/budget.
type Handler struct {
	BudgetService budgetService
}

func NewHandler(svc budgetService) *Handler {
	return &Handler{BudgetService: svc}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "set-budget",
		Method:      http.MethodPut,
		Path:        "/v1/budget/{month}",
		Summary:     "Set monthly budget",
		Description: "Sets the spending limit of a month, replacing any previous limit.",
		Tags:        []string{"Budgets"},
	}, h.set)

	huma.Register(api, huma.Operation{
		OperationID: "get-budget-progress",
		Method:      http.MethodGet,
		Path:        "/v1/budget/{month}/progress",
		Summary:     "Budget progress",
		Tags:        []string{"Budgets"},
	}, h.progress)
}

func (h *Handler) set(ctx context.Context, input *SetBudgetInput) (*BudgetOutput, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}
	limit, err := apiutil.ParseAmount("limitAmount", input.Body.LimitAmount)
	if err != nil {
		return nil, err
	}

	budget, err := h.BudgetService.SetBudget(ctx, userID, input.Month, limit)
	if err != nil {
		return nil, apiutil.Error(err, "failed to set budget")
	}

	out := &BudgetOutput{}
	out.Body.Month = budget.Month
	out.Body.LimitAmount = budget.LimitAmount.String()
	return out, nil
}

func (h *Handler) progress(ctx context.Context, input *BudgetProgressInput) (*BudgetProgressOutput, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}

	progress, err := h.BudgetService.GetBudgetProgress(ctx, userID, input.Month)
	if err != nil {
		return nil, apiutil.Error(err, "failed to compute budget progress")
	}

	out := &BudgetProgressOutput{}
	out.Body.Month = progress.Month
	out.Body.LimitAmount = progress.LimitAmount.String()
	out.Body.Spent = progress.Spent.String()
	return out, nil
}
