package goal

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finora-server/internal/handlers/v1/apiutil"
	"github.com/carson-networks/finora-server/internal/logging"
)

type GoalProgressInput struct {
	apiutil.UserHeader
}

type GoalProgressOutput struct {
	Body struct {
		Goals []Goal `json:"goals" doc:"Goals with their progress, newest first"`
	}
}

// GoalProgressHandler handles GET /v1/goal.
type GoalProgressHandler struct {
	GoalService goalService
}

func NewGoalProgressHandler(svc goalService) *GoalProgressHandler {
	return &GoalProgressHandler{GoalService: svc}
}

func (h *GoalProgressHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-goal-progress",
		Method:      http.MethodGet,
		Path:        "/v1/goal",
		Summary:     "List goals with progress",
		Tags:        []string{"Goals"},
	}, h.handle)
}

func (h *GoalProgressHandler) handle(ctx context.Context, input *GoalProgressInput) (*GoalProgressOutput, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}

	progress, err := h.GoalService.GetGoalProgress(ctx, userID)
	if err != nil {
		return nil, apiutil.Error(err, "failed to compute goal progress")
	}
	logging.Data(ctx, "goalCount", len(progress))

	out := &GoalProgressOutput{}
	out.Body.Goals = make([]Goal, len(progress))
	for i := range progress {
		out.Body.Goals[i] = FromProgress(&progress[i])
	}
	return out, nil
}
