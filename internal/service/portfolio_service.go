package service

import (
	"context"
	"strings"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finora-server/internal/operator/actions"
	"github.com/carson-networks/finora-server/internal/storage"
	"github.com/carson-networks/finora-server/internal/storage/sqlconfig"
)

// Asset is a portfolio holding.
type Asset struct {
	ID           uuid.UUID
	Name         string
	Type         sqlconfig.AssetType
	Quantity     decimal.Decimal
	BuyPrice     decimal.Decimal
	CurrentPrice decimal.Decimal
	UpdatedAt    time.Time
}

// Value is the holding at its current price.
func (a Asset) Value() decimal.Decimal {
	return a.Quantity.Mul(a.CurrentPrice)
}

// Invested is the holding at its buy price.
func (a Asset) Invested() decimal.Decimal {
	return a.Quantity.Mul(a.BuyPrice)
}

type AssetInput struct {
	Name         string
	Type         sqlconfig.AssetType
	Quantity     decimal.Decimal
	BuyPrice     decimal.Decimal
	CurrentPrice decimal.Decimal
}

type AssetPatch struct {
	Name         omit.Val[string]
	Type         omit.Val[sqlconfig.AssetType]
	Quantity     omit.Val[decimal.Decimal]
	BuyPrice     omit.Val[decimal.Decimal]
	CurrentPrice omit.Val[decimal.Decimal]
}

// Portfolio is every asset of a user with the totals across them.
type Portfolio struct {
	Assets         []Asset
	PortfolioValue decimal.Decimal
	Invested       decimal.Decimal
	UnrealizedGain decimal.Decimal
}

// PortfolioService manages portfolio assets.
type PortfolioService struct {
	storage  *storage.Storage
	operator Processor
}

func NewPortfolioService(store *storage.Storage, op Processor) *PortfolioService {
	return &PortfolioService{storage: store, operator: op}
}

func assetFromStorage(row *sqlconfig.Asset) Asset {
	return Asset{
		ID:           row.ID,
		Name:         row.Name,
		Type:         row.Type,
		Quantity:     row.Quantity,
		BuyPrice:     row.BuyPrice,
		CurrentPrice: row.CurrentPrice,
		UpdatedAt:    row.UpdatedAt,
	}
}

func checkAssetAmount(field string, v omit.Val[decimal.Decimal]) error {
	if d, ok := v.Get(); ok {
		return checkAmount(field, d, assetPlaces)
	}
	return nil
}

// GetPortfolio lists the user's assets with the portfolio totals.
func (s *PortfolioService) GetPortfolio(ctx context.Context, userID uuid.UUID) (*Portfolio, error) {
	rows, err := s.storage.Assets.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	portfolio := &Portfolio{Assets: make([]Asset, len(rows))}
	for i, row := range rows {
		asset := assetFromStorage(row)
		portfolio.Assets[i] = asset
		portfolio.PortfolioValue = portfolio.PortfolioValue.Add(asset.Value())
		portfolio.Invested = portfolio.Invested.Add(asset.Invested())
	}
	portfolio.UnrealizedGain = portfolio.PortfolioValue.Sub(portfolio.Invested)
	return portfolio, nil
}

func (s *PortfolioService) CreateAsset(ctx context.Context, userID uuid.UUID, input AssetInput) (*Asset, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, invalid("asset_name", "must not be empty")
	}
	if !input.Type.Valid() {
		return nil, invalid("type", "must be stock, mutual_fund, crypto or other")
	}
	for _, field := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"quantity", input.Quantity},
		{"buy_price", input.BuyPrice},
		{"current_price", input.CurrentPrice},
	} {
		if err := checkAmount(field.name, field.value, assetPlaces); err != nil {
			return nil, err
		}
	}

	action := &actions.CreateAsset{Create: &sqlconfig.AssetCreate{
		UserID:       userID,
		Name:         name,
		Type:         input.Type,
		Quantity:     input.Quantity,
		BuyPrice:     input.BuyPrice,
		CurrentPrice: input.CurrentPrice,
	}}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, translate(err, "asset")
	}

	asset := assetFromStorage(action.Asset)
	return &asset, nil
}

func (s *PortfolioService) UpdateAsset(ctx context.Context, userID, id uuid.UUID, patch AssetPatch) (*Asset, error) {
	update := &sqlconfig.AssetUpdate{
		Type:         patch.Type,
		Quantity:     patch.Quantity,
		BuyPrice:     patch.BuyPrice,
		CurrentPrice: patch.CurrentPrice,
	}
	if name, ok := patch.Name.Get(); ok {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, invalid("asset_name", "must not be empty")
		}
		update.Name.Set(name)
	}
	if typ, ok := patch.Type.Get(); ok && !typ.Valid() {
		return nil, invalid("type", "must be stock, mutual_fund, crypto or other")
	}
	if err := checkAssetAmount("quantity", patch.Quantity); err != nil {
		return nil, err
	}
	if err := checkAssetAmount("buy_price", patch.BuyPrice); err != nil {
		return nil, err
	}
	if err := checkAssetAmount("current_price", patch.CurrentPrice); err != nil {
		return nil, err
	}

	action := &actions.UpdateAsset{UserID: userID, ID: id, Update: update}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, translate(err, "asset")
	}

	asset := assetFromStorage(action.Asset)
	return &asset, nil
}

func (s *PortfolioService) DeleteAsset(ctx context.Context, userID, id uuid.UUID) error {
	err := s.operator.Process(ctx, &actions.DeleteAsset{UserID: userID, ID: id})
	return translate(err, "asset")
}
