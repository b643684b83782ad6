package portfolio

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

	"github.com/carson-networks/finora-server/internal/service"
	"github.com/carson-networks/finora-server/internal/storage/sqlconfig"
)

type mockPortfolioService struct {
	mock.Mock
}

func (m *mockPortfolioService) GetPortfolio(ctx context.Context, userID uuid.UUID) (*service.Portfolio, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).(*service.Portfolio)
	return p, args.Error(1)
}

func (m *mockPortfolioService) CreateAsset(ctx context.Context, userID uuid.UUID, input service.AssetInput) (*service.Asset, error) {
	args := m.Called(ctx, userID, input)
	a, _ := args.Get(0).(*service.Asset)
	return a, args.Error(1)
}

func (m *mockPortfolioService) UpdateAsset(ctx context.Context, userID, id uuid.UUID, patch service.AssetPatch) (*service.Asset, error) {
	args := m.Called(ctx, userID, id, patch)
	a, _ := args.Get(0).(*service.Asset)
	return a, args.Error(1)
}

func (m *mockPortfolioService) DeleteAsset(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func newTestAPI(t *testing.T, svc portfolioService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewHandler(svc).Register(api)
	return api
}

func TestHTTP_GetPortfolio(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())

	svc := new(mockPortfolioService)
	svc.On("GetPortfolio", mock.Anything, userID).Return(&service.Portfolio{
		Assets: []service.Asset{{
			ID:           uuid.Must(uuid.NewV4()),
			Name:         "ACME",
			Type:         sqlconfig.AssetTypeStock,
			Quantity:     decimal.RequireFromString("10"),
			BuyPrice:     decimal.RequireFromString("5"),
			CurrentPrice: decimal.RequireFromString("7"),
		}},
		PortfolioValue: decimal.RequireFromString("70"),
		Invested:       decimal.RequireFromString("50"),
		UnrealizedGain: decimal.RequireFromString("20"),
	}, nil)

	resp := newTestAPI(t, svc).Get("/v1/portfolio", "X-User-ID: "+userID.String())

	assert.Equal(t, http.StatusOK, resp.Code)
	var body struct {
		Assets         []Asset `json:"assets"`
		UnrealizedGain string  `json:"unrealizedGain"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Assets, 1)
	assert.Equal(t, "70", body.Assets[0].Value)
	assert.Equal(t, "20", body.UnrealizedGain)
}

func TestHTTP_CreateAsset(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())

	svc := new(mockPortfolioService)
	svc.On("CreateAsset", mock.Anything, userID, mock.MatchedBy(func(in service.AssetInput) bool {
		return in.Type == sqlconfig.AssetTypeCrypto && in.Quantity.Equal(decimal.RequireFromString("0.5"))
	})).Return(&service.Asset{
		ID:           uuid.Must(uuid.NewV4()),
		Name:         "BTC",
		Type:         sqlconfig.AssetTypeCrypto,
		Quantity:     decimal.RequireFromString("0.5"),
		CurrentPrice: decimal.RequireFromString("60000"),
	}, nil)

	resp := newTestAPI(t, svc).Post("/v1/portfolio/asset", "X-User-ID: "+userID.String(), CreateAssetBody{
		Name:         "BTC",
		Type:         "crypto",
		Quantity:     "0.5",
		BuyPrice:     "40000",
		CurrentPrice: "60000",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body Asset
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "30000", body.Value)
}

func TestHTTP_CreateAsset_UnknownType(t *testing.T) {
	svc := new(mockPortfolioService)

	resp := newTestAPI(t, svc).Post("/v1/portfolio/asset", "X-User-ID: "+uuid.Must(uuid.NewV4()).String(), CreateAssetBody{
		Name:         "House",
		Type:         "real_estate",
		Quantity:     "1",
		BuyPrice:     "1",
		CurrentPrice: "1",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	svc.AssertNotCalled(t, "CreateAsset")
}

func TestHTTP_UpdateAsset_PriceOnly(t *testing.T) {
	userID, id := uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4())
	price := "8"

	svc := new(mockPortfolioService)
	svc.On("UpdateAsset", mock.Anything, userID, id, mock.MatchedBy(func(p service.AssetPatch) bool {
		return p.Name.IsUnset() && p.Quantity.IsUnset() && p.CurrentPrice.GetOrZero().Equal(decimal.RequireFromString("8"))
	})).Return(&service.Asset{ID: id, Name: "ACME", Type: sqlconfig.AssetTypeStock}, nil)

	resp := newTestAPI(t, svc).Patch("/v1/portfolio/asset/"+id.String(), "X-User-ID: "+userID.String(), UpdateAssetBody{CurrentPrice: &price})

	assert.Equal(t, http.StatusOK, resp.Code)
	svc.AssertExpectations(t)
}

func TestHTTP_DeleteAsset(t *testing.T) {
	userID, id := uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4())

	svc := new(mockPortfolioService)
	svc.On("DeleteAsset", mock.Anything, userID, id).Return(nil)

	resp := newTestAPI(t, svc).Delete("/v1/portfolio/asset/"+id.String(), "X-User-ID: "+userID.String())

	assert.Equal(t, http.StatusNoContent, resp.Code)
}
