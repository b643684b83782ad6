package stats

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finora-server/internal/handlers/v1/apiutil"
	"github.com/carson-networks/finora-server/internal/logging"
)

type TotalsOutput struct {
	Body Totals
}

type MonthlySeriesOutput struct {
	Body struct {
		Months []MonthlyPoint `json:"months" doc:"Months with at least one transaction, ascending"`
	}
}

type CategoryBreakdownOutput struct {
	Body struct {
		Categories []CategoryTotal `json:"categories" doc:"Totals per display category, largest first"`
	}
}

type SummaryOutput struct {
	Body struct {
		Totals            Totals          `json:"totals"`
		Months            []MonthlyPoint  `json:"months"`
		ExpenseByCategory []CategoryTotal `json:"expenseByCategory"`
		SavingByCategory  []CategoryTotal `json:"savingByCategory"`
	}
}

// Handler serves the read-only /v1/stats endpoints.
type Handler struct {
	StatsService statsReader
}

func NewHandler(svc statsReader) *Handler {
	return &Handler{StatsService: svc}
}

// Register registers every stats endpoint with the Huma API.
func (h *Handler) Register(api huma.API) {
	tags := []string{"Stats"}

	huma.Register(api, huma.Operation{
		OperationID: "get-totals",
		Method:      http.MethodGet,
		Path:        "/v1/stats/totals",
		Summary:     "Totals by type",
		Tags:        tags,
	}, h.totals)

	huma.Register(api, huma.Operation{
		OperationID: "get-monthly-series",
		Method:      http.MethodGet,
		Path:        "/v1/stats/monthly",
		Summary:     "Monthly series",
		Description: "Per-month sums by type. Months without transactions are omitted.",
		Tags:        tags,
	}, h.monthly)

	huma.Register(api, huma.Operation{
		OperationID: "get-expense-by-category",
		Method:      http.MethodGet,
		Path:        "/v1/stats/expense-by-category",
		Summary:     "Expenses by category",
		Tags:        tags,
	}, h.expenseByCategory)

	huma.Register(api, huma.Operation{
		OperationID: "get-saving-by-category",
		Method:      http.MethodGet,
		Path:        "/v1/stats/saving-by-category",
		Summary:     "Savings by category",
		Description: "Saving transactions tagged to a goal are reported under the goal name.",
		Tags:        tags,
	}, h.savingByCategory)

	huma.Register(api, huma.Operation{
		OperationID: "get-stats-summary",
		Method:      http.MethodGet,
		Path:        "/v1/stats/summary",
		Summary:     "All aggregates",
		Tags:        tags,
	}, h.summary)
}

func (h *Handler) totals(ctx context.Context, input *StatsInput) (*TotalsOutput, error) {
	userID, window, err := input.parse()
	if err != nil {
		return nil, err
	}

	totals, err := h.StatsService.GetTotals(ctx, userID, window)
	if err != nil {
		return nil, apiutil.Error(err, "failed to compute totals")
	}
	return &TotalsOutput{Body: totalsFrom(totals)}, nil
}

func (h *Handler) monthly(ctx context.Context, input *StatsInput) (*MonthlySeriesOutput, error) {
	userID, window, err := input.parse()
	if err != nil {
		return nil, err
	}

	series, err := h.StatsService.GetMonthlySeries(ctx, userID, window)
	if err != nil {
		return nil, apiutil.Error(err, "failed to compute monthly series")
	}

	out := &MonthlySeriesOutput{}
	out.Body.Months = seriesFrom(series)
	return out, nil
}

func (h *Handler) expenseByCategory(ctx context.Context, input *StatsInput) (*CategoryBreakdownOutput, error) {
	userID, window, err := input.parse()
	if err != nil {
		return nil, err
	}

	rows, err := h.StatsService.GetExpenseByCategory(ctx, userID, window)
	if err != nil {
		return nil, apiutil.Error(err, "failed to compute expense breakdown")
	}

	out := &CategoryBreakdownOutput{}
	out.Body.Categories = categoriesFrom(rows)
	return out, nil
}

func (h *Handler) savingByCategory(ctx context.Context, input *StatsInput) (*CategoryBreakdownOutput, error) {
	userID, window, err := input.parse()
	if err != nil {
		return nil, err
	}

	rows, err := h.StatsService.GetSavingByCategory(ctx, userID, window)
	if err != nil {
		return nil, apiutil.Error(err, "failed to compute saving breakdown")
	}

	out := &CategoryBreakdownOutput{}
	out.Body.Categories = categoriesFrom(rows)
	return out, nil
}

func (h *Handler) summary(ctx context.Context, input *StatsInput) (*SummaryOutput, error) {
	userID, window, err := input.parse()
	if err != nil {
		return nil, err
	}

	stopTimer := logging.Time(ctx, "statsSummaryMs")
	summary, err := h.StatsService.GetSummary(ctx, userID, window)
	stopTimer()
	if err != nil {
		return nil, apiutil.Error(err, "failed to compute summary")
	}

	out := &SummaryOutput{}
	out.Body.Totals = totalsFrom(summary.Totals)
	out.Body.Months = seriesFrom(summary.Monthly)
	out.Body.ExpenseByCategory = categoriesFrom(summary.ExpenseByCategory)
	out.Body.SavingByCategory = categoriesFrom(summary.SavingByCategory)
	return out, nil
}
