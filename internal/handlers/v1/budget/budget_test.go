package budget

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finora-server/internal/aggregate"
	"github.com/carson-networks/finora-server/internal/service"
)

type mockBudgetService struct {
	mock.Mock
}

func (m *mockBudgetService) SetBudget(ctx context.Context, userID uuid.UUID, month string, limit decimal.Decimal) (*service.Budget, error) {
	args := m.Called(ctx, userID, month, limit)
	b, _ := args.Get(0).(*service.Budget)
	return b, args.Error(1)
}

func (m *mockBudgetService) GetBudgetProgress(ctx context.Context, userID uuid.UUID, month string) (*aggregate.BudgetProgress, error) {
	args := m.Called(ctx, userID, month)
	p, _ := args.Get(0).(*aggregate.BudgetProgress)
	return p, args.Error(1)
}

func newTestAPI(t *testing.T, svc budgetService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewHandler(svc).Register(api)
	return api
}

func TestHTTP_SetBudget(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())

	svc := new(mockBudgetService)
	svc.On("SetBudget", mock.Anything, userID, "2024-02", mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.RequireFromString("450.00"))
	})).Return(&service.Budget{Month: "2024-02", LimitAmount: decimal.RequireFromString("450")}, nil)

	resp := newTestAPI(t, svc).Put("/v1/budget/2024-02", "X-User-ID: "+userID.String(), map[string]any{"limitAmount": "450.00"})

	assert.Equal(t, http.StatusOK, resp.Code)
	svc.AssertExpectations(t)
}

func TestHTTP_SetBudget_ValidationError(t *testing.T) {
	svc := new(mockBudgetService)
	svc.On("SetBudget", mock.Anything, mock.Anything, "2024-02", mock.Anything).
		Return(nil, &service.ValidationError{Field: "limit_amount", Reason: "must not be negative"})

	resp := newTestAPI(t, svc).Put("/v1/budget/2024-02", "X-User-ID: "+uuid.Must(uuid.NewV4()).String(), map[string]any{"limitAmount": "-1"})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHTTP_SetBudget_MalformedMonth(t *testing.T) {
	svc := new(mockBudgetService)

	resp := newTestAPI(t, svc).Put("/v1/budget/Feb-2024", "X-User-ID: "+uuid.Must(uuid.NewV4()).String(), map[string]any{"limitAmount": "1"})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	svc.AssertNotCalled(t, "SetBudget")
}

func TestHTTP_BudgetProgress(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())

	svc := new(mockBudgetService)
	svc.On("GetBudgetProgress", mock.Anything, userID, "2024-02").Return(&aggregate.BudgetProgress{
		Month:       "2024-02",
		LimitAmount: decimal.RequireFromString("300"),
		Spent:       decimal.RequireFromString("100"),
	}, nil)

	resp := newTestAPI(t, svc).Get("/v1/budget/2024-02/progress", "X-User-ID: "+userID.String())

	assert.Equal(t, http.StatusOK, resp.Code)
	var body struct {
		Month       string `json:"month"`
		LimitAmount string `json:"limitAmount"`
		Spent       string `json:"spent"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "300", body.LimitAmount)
	assert.Equal(t, "100", body.Spent)
}
