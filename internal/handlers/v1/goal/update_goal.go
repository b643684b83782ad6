package goal

import (
	"context"
	"net/http"

	"github.com/aarondl/opt/omit"
	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finora-server/internal/handlers/v1/apiutil"
	"github.com/carson-networks/finora-server/internal/service"
)

type UpdateGoalBody struct {
	Name         *string `json:"name,omitempty" maxLength:"100"`
	TargetAmount *string `json:"targetAmount,omitempty"`
	TargetDate   *string `json:"targetDate,omitempty" format:"date"`
}

type UpdateGoalInput struct {
	apiutil.UserHeader
	apiutil.IDPath
	Body UpdateGoalBody
}

// UpdateGoalHandler handles PATCH /v1/goal/{id}.
type UpdateGoalHandler struct {
	GoalService goalService
}

func NewUpdateGoalHandler(svc goalService) *UpdateGoalHandler {
	return &UpdateGoalHandler{GoalService: svc}
}

func (h *UpdateGoalHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-goal",
		Method:      http.MethodPatch,
		Path:        "/v1/goal/{id}",
		Summary:     "Update savings goal",
		Description: "Changes the given fields. Absent fields keep their value.",
		Tags:        []string{"Goals"},
	}, h.handle)
}

func parseUpdateGoalBody(body *UpdateGoalBody) (service.GoalPatch, error) {
	var patch service.GoalPatch
	if body.Name != nil {
		patch.Name = omit.From(*body.Name)
	}
	if body.TargetAmount != nil {
		amount, err := apiutil.ParseAmount("targetAmount", *body.TargetAmount)
		if err != nil {
			return patch, err
		}
		patch.TargetAmount = omit.From(amount)
	}
	if body.TargetDate != nil {
		date, err := apiutil.ParseDate("targetDate", *body.TargetDate)
		if err != nil {
			return patch, err
		}
		patch.TargetDate = omit.From(date)
	}
	return patch, nil
}

func (h *UpdateGoalHandler) handle(ctx context.Context, input *UpdateGoalInput) (*GoalOutput, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}
	id, err := input.Parse()
	if err != nil {
		return nil, err
	}
	patch, err := parseUpdateGoalBody(&input.Body)
	if err != nil {
		return nil, err
	}

	goal, err := h.GoalService.UpdateGoal(ctx, userID, id, patch)
	if err != nil {
		return nil, apiutil.Error(err, "failed to update goal")
	}
	return &GoalOutput{Body: fromService(goal)}, nil
}
