package savings

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finora-server/internal/handlers/v1/apiutil"
	"github.com/carson-networks/finora-server/internal/service"
)

type savingsService interface {
	TakeSnapshot(ctx context.Context, userID uuid.UUID) (*service.Snapshot, error)
	History(ctx context.Context, userID uuid.UUID) ([]service.Snapshot, error)
}

type Snapshot struct {
	ID           string `json:"id"`
	TotalIncome  string `json:"totalIncome"`
	TotalExpense string `json:"totalExpense"`
	TotalSavings string `json:"totalSavings"`
	Date         string `json:"date" doc:"Snapshot date (YYYY-MM-DD)"`
}

func fromService(s *service.Snapshot) Snapshot {
	return Snapshot{
		ID:           s.ID.String(),
		TotalIncome:  s.TotalIncome.String(),
		TotalExpense: s.TotalExpense.String(),
		TotalSavings: s.TotalSavings.String(),
		Date:         apiutil.FormatDate(s.Date),
	}
}

type SavingsInput struct {
	apiutil.UserHeader
}

type SnapshotOutput struct {
	Body Snapshot
}

type HistoryOutput struct {
	Body struct {
		Snapshots []Snapshot `json:"snapshots" doc:"Latest snapshots, newest first"`
	}
}

// Handler serves /v1/savings.
type Handler struct {
	SavingsService savingsService
}

func NewHandler(svc savingsService) *Handler {
	return &Handler{SavingsService: svc}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "take-savings-snapshot",
		Method:        http.MethodPost,
		Path:          "/v1/savings/snapshot",
		Summary:       "Record savings snapshot",
		Tags:          []string{"Savings"},
		DefaultStatus: http.StatusCreated,
	}, h.snapshot)

	huma.Register(api, huma.Operation{
		OperationID: "get-savings-history",
		Method:      http.MethodGet,
		Path:        "/v1/savings/history",
		Summary:     "Savings history",
		Tags:        []string{"Savings"},
	}, h.history)
}

func (h *Handler) snapshot(ctx context.Context, input *SavingsInput) (*SnapshotOutput, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}

	snapshot, err := h.SavingsService.TakeSnapshot(ctx, userID)
	if err != nil {
		return nil, apiutil.Error(err, "failed to record snapshot")
	}
	return &SnapshotOutput{Body: fromService(snapshot)}, nil
}

func (h *Handler) history(ctx context.Context, input *SavingsInput) (*HistoryOutput, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}

	snapshots, err := h.SavingsService.History(ctx, userID)
	if err != nil {
		return nil, apiutil.Error(err, "failed to load savings history")
	}

	out := &HistoryOutput{}
	out.Body.Snapshots = make([]Snapshot, len(snapshots))
	for i := range snapshots {
		out.Body.Snapshots[i] = fromService(&snapshots[i])
	}
	return out, nil
}
