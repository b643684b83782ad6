package portfolio

import (
	"context"
	"net/http"

	"github.com/aarondl/opt/omit"
	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finora-server/internal/handlers/v1/apiutil"
	"github.com/carson-networks/finora-server/internal/service"
	"github.com/carson-networks/finora-server/internal/storage/sqlconfig"
)

type GetPortfolioInput struct {
	apiutil.UserHeader
}

type PortfolioOutput struct {
	Body struct {
		Assets         []Asset `json:"assets"`
		PortfolioValue string  `json:"portfolioValue"`
		Invested       string  `json:"invested"`
		UnrealizedGain string  `json:"unrealizedGain"`
	}
}

type CreateAssetBody struct {
	Name         string `json:"name" minLength:"1" maxLength:"100"`
	Type         string `json:"type" enum:"stock,mutual_fund,crypto,other"`
	Quantity     string `json:"quantity" minLength:"1"`
	BuyPrice     string `json:"buyPrice" minLength:"1"`
	CurrentPrice string `json:"currentPrice" minLength:"1"`
}

type CreateAssetInput struct {
	apiutil.UserHeader
	Body CreateAssetBody
}

type UpdateAssetBody struct {
	Name         *string `json:"name,omitempty" maxLength:"100"`
	Type         *string `json:"type,omitempty" enum:"stock,mutual_fund,crypto,other"`
	Quantity     *string `json:"quantity,omitempty"`
	BuyPrice     *string `json:"buyPrice,omitempty"`
	CurrentPrice *string `json:"currentPrice,omitempty"`
}

type UpdateAssetInput struct {
	apiutil.UserHeader
	apiutil.IDPath
	Body UpdateAssetBody
}

type DeleteAssetInput struct {
	apiutil.UserHeader
	apiutil.IDPath
}

// Handler serves /v1/portfolio.
type Handler struct {
	PortfolioService portfolioService
}

func NewHandler(svc portfolioService) *Handler {
	return &Handler{PortfolioService: svc}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-portfolio",
		Method:      http.MethodGet,
		Path:        "/v1/portfolio",
		Summary:     "Portfolio summary",
		Tags:        []string{"Portfolio"},
	}, h.get)

	huma.Register(api, huma.Operation{
		OperationID:   "create-asset",
		Method:        http.MethodPost,
		Path:          "/v1/portfolio/asset",
		Summary:       "Add asset",
		Tags:          []string{"Portfolio"},
		DefaultStatus: http.StatusCreated,
	}, h.create)

	huma.Register(api, huma.Operation{
		OperationID: "update-asset",
		Method:      http.MethodPatch,
		Path:        "/v1/portfolio/asset/{id}",
		Summary:     "Update asset",
		Tags:        []string{"Portfolio"},
	}, h.update)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-asset",
		Method:        http.MethodDelete,
		Path:          "/v1/portfolio/asset/{id}",
		Summary:       "Delete asset",
		Tags:          []string{"Portfolio"},
		DefaultStatus: http.StatusNoContent,
	}, h.delete)
}

func (h *Handler) get(ctx context.Context, input *GetPortfolioInput) (*PortfolioOutput, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}

	portfolio, err := h.PortfolioService.GetPortfolio(ctx, userID)
	if err != nil {
		return nil, apiutil.Error(err, "failed to load portfolio")
	}

	out := &PortfolioOutput{}
	out.Body.Assets = make([]Asset, len(portfolio.Assets))
	for i := range portfolio.Assets {
		out.Body.Assets[i] = fromService(&portfolio.Assets[i])
	}
	out.Body.PortfolioValue = portfolio.PortfolioValue.String()
	out.Body.Invested = portfolio.Invested.String()
	out.Body.UnrealizedGain = portfolio.UnrealizedGain.String()
	return out, nil
}

func (h *Handler) create(ctx context.Context, input *CreateAssetInput) (*AssetOutput, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}
	asset := service.AssetInput{
		Name: input.Body.Name,
		Type: sqlconfig.AssetType(input.Body.Type),
	}
	if asset.Quantity, err = apiutil.ParseAmount("quantity", input.Body.Quantity); err != nil {
		return nil, err
	}
	if asset.BuyPrice, err = apiutil.ParseAmount("buyPrice", input.Body.BuyPrice); err != nil {
		return nil, err
	}
	if asset.CurrentPrice, err = apiutil.ParseAmount("currentPrice", input.Body.CurrentPrice); err != nil {
		return nil, err
	}

	created, err := h.PortfolioService.CreateAsset(ctx, userID, asset)
	if err != nil {
		return nil, apiutil.Error(err, "failed to create asset")
	}
	return &AssetOutput{Body: fromService(created)}, nil
}

func optionalAmount(field string, raw *string) (omit.Val[decimal.Decimal], error) {
	if raw == nil {
		return omit.Val[decimal.Decimal]{}, nil
	}
	amount, err := apiutil.ParseAmount(field, *raw)
	if err != nil {
		return omit.Val[decimal.Decimal]{}, err
	}
	return omit.From(amount), nil
}

func parseUpdateAssetBody(body *UpdateAssetBody) (service.AssetPatch, error) {
	var patch service.AssetPatch
	if body.Name != nil {
		patch.Name = omit.From(*body.Name)
	}
	if body.Type != nil {
		patch.Type = omit.From(sqlconfig.AssetType(*body.Type))
	}
	var err error
	if patch.Quantity, err = optionalAmount("quantity", body.Quantity); err != nil {
		return patch, err
	}
	if patch.BuyPrice, err = optionalAmount("buyPrice", body.BuyPrice); err != nil {
		return patch, err
	}
	if patch.CurrentPrice, err = optionalAmount("currentPrice", body.CurrentPrice); err != nil {
		return patch, err
	}
	return patch, nil
}

func (h *Handler) update(ctx context.Context, input *UpdateAssetInput) (*AssetOutput, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}
	id, err := input.Parse()
	if err != nil {
		return nil, err
	}
	patch, err := parseUpdateAssetBody(&input.Body)
	if err != nil {
		return nil, err
	}

	asset, err := h.PortfolioService.UpdateAsset(ctx, userID, id, patch)
	if err != nil {
		return nil, apiutil.Error(err, "failed to update asset")
	}
	return &AssetOutput{Body: fromService(asset)}, nil
}

func (h *Handler) delete(ctx context.Context, input *DeleteAssetInput) (*struct{}, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}
	id, err := input.Parse()
	if err != nil {
		return nil, err
	}

	if err := h.PortfolioService.DeleteAsset(ctx, userID, id); err != nil {
		return nil, apiutil.Error(err, "failed to delete asset")
	}
	return nil, nil
}
