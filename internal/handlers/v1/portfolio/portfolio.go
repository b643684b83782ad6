package portfolio

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finora-server/internal/service"
)

type portfolioService interface {
	GetPortfolio(ctx context.Context, userID uuid.UUID) (*service.Portfolio, error)
	CreateAsset(ctx context.Context, userID uuid.UUID, input service.AssetInput) (*service.Asset, error)
	UpdateAsset(ctx context.Context, userID, id uuid.UUID, patch service.AssetPatch) (*service.Asset, error)
	DeleteAsset(ctx context.Context, userID, id uuid.UUID) error
}

// Asset is the API response model for a portfolio holding.
type Asset struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Type         string `json:"type" enum:"stock,mutual_fund,crypto,other"`
	Quantity     string `json:"quantity"`
	BuyPrice     string `json:"buyPrice"`
	CurrentPrice string `json:"currentPrice"`
	Value        string `json:"value" doc:"Quantity at the current price"`
	UpdatedAt    string `json:"updatedAt"`
}

func fromService(a *service.Asset) Asset {
	return Asset{
		ID:           a.ID.String(),
		Name:         a.Name,
		Type:         string(a.Type),
		Quantity:     a.Quantity.String(),
		BuyPrice:     a.BuyPrice.String(),
		CurrentPrice: a.CurrentPrice.String(),
		Value:        a.Value().String(),
		UpdatedAt:    a.UpdatedAt.Format(time.RFC3339),
	}
}

type AssetOutput struct {
	Body Asset
}
