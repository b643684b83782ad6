package goal

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finora-server/internal/handlers/v1/apiutil"
	"github.com/carson-networks/finora-server/internal/service"
)

type CreateGoalBody struct {
	Name         string `json:"name,omitempty" maxLength:"100" doc:"Goal name, defaults to Goal"`
	TargetAmount string `json:"targetAmount" minLength:"1" doc:"Non-negative decimal target"`
	TargetDate   string `json:"targetDate" format:"date" doc:"Deadline (YYYY-MM-DD)"`
}

type CreateGoalInput struct {
	apiutil.UserHeader
	Body CreateGoalBody
}

// CreateGoalHandler handles POST /v1/goal.
type CreateGoalHandler struct {
	GoalService goalService
}

func NewCreateGoalHandler(svc goalService) *CreateGoalHandler {
	return &CreateGoalHandler{GoalService: svc}
}

func (h *CreateGoalHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-goal",
		Method:        http.MethodPost,
		Path:          "/v1/goal",
		Summary:       "Create savings goal",
		Tags:          []string{"Goals"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *CreateGoalHandler) handle(ctx context.Context, input *CreateGoalInput) (*GoalOutput, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}
	target, err := apiutil.ParseAmount("targetAmount", input.Body.TargetAmount)
	if err != nil {
		return nil, err
	}
	date, err := apiutil.ParseDate("targetDate", input.Body.TargetDate)
	if err != nil {
		return nil, err
	}

	goal, err := h.GoalService.CreateGoal(ctx, userID, service.GoalInput{
		Name:         input.Body.Name,
		TargetAmount: target,
		TargetDate:   &date,
	})
	if err != nil {
		return nil, apiutil.Error(err, "failed to create goal")
	}
	return &GoalOutput{Body: fromService(goal)}, nil
}
