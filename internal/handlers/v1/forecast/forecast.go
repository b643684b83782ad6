package forecast

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finora-server/internal/forecast"
	"github.com/carson-networks/finora-server/internal/handlers/v1/apiutil"
	"github.com/carson-networks/finora-server/internal/handlers/v1/goal"
	"github.com/carson-networks/finora-server/internal/service"
)

type forecastService interface {
	GetExpenseForecast(ctx context.Context, userID uuid.UUID) (*service.ExpenseForecast, error)
	GetSavingsForecast(ctx context.Context, userID uuid.UUID) ([]service.GoalForecast, error)
}

type MonthlyAmount struct {
	Month  string `json:"month" doc:"Calendar month (YYYY-MM)"`
	Amount string `json:"amount"`
}

func monthly(series []forecast.MonthlyAmount) []MonthlyAmount {
	out := make([]MonthlyAmount, len(series))
	for i, p := range series {
		out[i] = MonthlyAmount{Month: p.Month, Amount: p.Amount.String()}
	}
	return out
}

type ForecastInput struct {
	apiutil.UserHeader
}

type ExpenseForecastOutput struct {
	Body struct {
		Monthly    []MonthlyAmount `json:"monthly" doc:"Monthly expense totals, oldest first"`
		NextMonth  *string         `json:"nextMonth" doc:"Projected expense of next month, null without enough history"`
		GrowthRate *string         `json:"growthRate" doc:"Average month-over-month growth as a percentage"`
		Message    string          `json:"message,omitempty"`
	}
}

// GoalForecast is a goal's progress and completion forecast.
type GoalForecast struct {
	Goal                    goal.Goal       `json:"goal"`
	NotEnoughData           bool            `json:"notEnoughData"`
	AvgMonthly              string          `json:"avgMonthly" doc:"Average monthly contribution"`
	MonthsNeeded            *string         `json:"monthsNeeded" doc:"Months left at the average pace, null when the pace is zero"`
	EstimatedCompletionDate *string         `json:"estimatedCompletionDate" doc:"Projected completion (YYYY-MM-DD)"`
	Status                  string          `json:"status" enum:"on_track,slightly_behind,behind,unknown"`
	RequiredPerMonth        string          `json:"requiredPerMonth" doc:"Monthly amount needed to meet the deadline"`
	CompletionProbability   string          `json:"completionProbability" doc:"Likelihood of meeting the deadline, 0 to 100"`
	Monthly                 []MonthlyAmount `json:"monthly" doc:"Monthly contribution totals, oldest first"`
}

func goalForecast(f *service.GoalForecast) GoalForecast {
	out := GoalForecast{
		Goal:                  goal.FromProgress(&f.Goal),
		NotEnoughData:         f.Forecast.NotEnoughData,
		AvgMonthly:            f.Forecast.AvgMonthly.String(),
		Status:                string(f.Forecast.Status),
		RequiredPerMonth:      f.Forecast.RequiredPerMonth.String(),
		CompletionProbability: f.Forecast.CompletionProbability.String(),
		Monthly:               monthly(f.Forecast.Series),
	}
	if f.Forecast.MonthsNeeded != nil {
		months := f.Forecast.MonthsNeeded.String()
		out.MonthsNeeded = &months
	}
	if f.Forecast.EstimatedCompletionDate != nil {
		date := apiutil.FormatDate(*f.Forecast.EstimatedCompletionDate)
		out.EstimatedCompletionDate = &date
	}
	return out
}

type SavingsForecastOutput struct {
	Body struct {
		Goals []GoalForecast `json:"goals"`
	}
}

// Handler serves /v1/forecast.
type Handler struct {
	ForecastService forecastService
}

func NewHandler(svc forecastService) *Handler {
	return &Handler{ForecastService: svc}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-expense-forecast",
		Method:      http.MethodGet,
		Path:        "/v1/forecast/expense",
		Summary:     "Forecast next month's expense",
		Tags:        []string{"Forecast"},
	}, h.expense)

	huma.Register(api, huma.Operation{
		OperationID: "get-savings-forecast",
		Method:      http.MethodGet,
		Path:        "/v1/forecast/savings",
		Summary:     "Forecast goal completion",
		Tags:        []string{"Forecast"},
	}, h.savings)
}

func (h *Handler) expense(ctx context.Context, input *ForecastInput) (*ExpenseForecastOutput, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}

	projection, err := h.ForecastService.GetExpenseForecast(ctx, userID)
	if err != nil {
		return nil, apiutil.Error(err, "failed to forecast expenses")
	}

	out := &ExpenseForecastOutput{}
	out.Body.Monthly = monthly(projection.Monthly)
	out.Body.Message = projection.Message
	if projection.NextMonth != nil {
		next := projection.NextMonth.String()
		out.Body.NextMonth = &next
	}
	if projection.GrowthRate != nil {
		rate := projection.GrowthRate.String()
		out.Body.GrowthRate = &rate
	}
	return out, nil
}

func (h *Handler) savings(ctx context.Context, input *ForecastInput) (*SavingsForecastOutput, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}

	forecasts, err := h.ForecastService.GetSavingsForecast(ctx, userID)
	if err != nil {
		return nil, apiutil.Error(err, "failed to forecast savings")
	}

	out := &SavingsForecastOutput{}
	out.Body.Goals = make([]GoalForecast, len(forecasts))
	for i := range forecasts {
		out.Body.Goals[i] = goalForecast(&forecasts[i])
	}
	return out, nil
}
