package savings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finora-server/internal/service"
)

type mockSavingsService struct {
	mock.Mock
}

func (m *mockSavingsService) TakeSnapshot(ctx context.Context, userID uuid.UUID) (*service.Snapshot, error) {
	args := m.Called(ctx, userID)
	s, _ := args.Get(0).(*service.Snapshot)
	return s, args.Error(1)
}

func (m *mockSavingsService) History(ctx context.Context, userID uuid.UUID) ([]service.Snapshot, error) {
	args := m.Called(ctx, userID)
	s, _ := args.Get(0).([]service.Snapshot)
	return s, args.Error(1)
}

func newTestAPI(t *testing.T, svc savingsService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewHandler(svc).Register(api)
	return api
}

func TestHTTP_TakeSnapshot(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())

	svc := new(mockSavingsService)
	svc.On("TakeSnapshot", mock.Anything, userID).Return(&service.Snapshot{
		ID:           uuid.Must(uuid.NewV4()),
		TotalIncome:  decimal.RequireFromString("3000"),
		TotalExpense: decimal.RequireFromString("1200.50"),
		TotalSavings: decimal.RequireFromString("400"),
		Date:         time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	}, nil)

	resp := newTestAPI(t, svc).Post("/v1/savings/snapshot", "X-User-ID: "+userID.String())

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "1200.5", body.TotalExpense)
	assert.Equal(t, "2024-03-15", body.Date)
}

func TestHTTP_History(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())

	svc := new(mockSavingsService)
	svc.On("History", mock.Anything, userID).Return([]service.Snapshot{
		{ID: uuid.Must(uuid.NewV4()), Date: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{ID: uuid.Must(uuid.NewV4()), Date: time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)},
	}, nil)

	resp := newTestAPI(t, svc).Get("/v1/savings/history", "X-User-ID: "+userID.String())

	assert.Equal(t, http.StatusOK, resp.Code)
	var body struct {
		Snapshots []Snapshot `json:"snapshots"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Snapshots, 2)
	assert.Equal(t, "2024-03-15", body.Snapshots[0].Date)
}

func TestHTTP_History_StoreError(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())

	svc := new(mockSavingsService)
	svc.On("History", mock.Anything, userID).Return(nil, errors.New("boom"))

	resp := newTestAPI(t, svc).Get("/v1/savings/history", "X-User-ID: "+userID.String())

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}
