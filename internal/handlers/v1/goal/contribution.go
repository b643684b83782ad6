package goal

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finora-server/internal/handlers/v1/apiutil"
	"github.com/carson-networks/finora-server/internal/service"
)

type AddContributionInput struct {
	apiutil.UserHeader
	apiutil.IDPath
	Body struct {
		Amount string `json:"amount" minLength:"1" doc:"Non-negative decimal amount"`
		Date   string `json:"date,omitempty" format:"date" doc:"Contribution date (YYYY-MM-DD), defaults to today"`
	}
}

type ContributionOutput struct {
	Body Contribution
}

type ListContributionsInput struct {
	apiutil.UserHeader
	apiutil.IDPath
}

type ListContributionsOutput struct {
	Body struct {
		Contributions []Contribution `json:"contributions" doc:"Contributions, oldest first"`
	}
}

// ContributionHandler handles /v1/goal/{id}/contribution.
type ContributionHandler struct {
	GoalService goalService
}

func NewContributionHandler(svc goalService) *ContributionHandler {
	return &ContributionHandler{GoalService: svc}
}

func (h *ContributionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "add-contribution",
		Method:        http.MethodPost,
		Path:          "/v1/goal/{id}/contribution",
		Summary:       "Add contribution",
		Tags:          []string{"Goals"},
		DefaultStatus: http.StatusCreated,
	}, h.add)

	huma.Register(api, huma.Operation{
		OperationID: "list-contributions",
		Method:      http.MethodGet,
		Path:        "/v1/goal/{id}/contribution",
		Summary:     "List contributions",
		Tags:        []string{"Goals"},
	}, h.list)
}

func (h *ContributionHandler) add(ctx context.Context, input *AddContributionInput) (*ContributionOutput, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}
	goalID, err := input.Parse()
	if err != nil {
		return nil, err
	}
	amount, err := apiutil.ParseAmount("amount", input.Body.Amount)
	if err != nil {
		return nil, err
	}
	date, err := apiutil.ParseOptionalDate("date", input.Body.Date)
	if err != nil {
		return nil, err
	}

	contribution, err := h.GoalService.AddContribution(ctx, userID, service.ContributionInput{
		GoalID: goalID,
		Amount: amount,
		Date:   date,
	})
	if err != nil {
		return nil, apiutil.Error(err, "failed to add contribution")
	}
	return &ContributionOutput{Body: contributionFromService(contribution)}, nil
}

func (h *ContributionHandler) list(ctx context.Context, input *ListContributionsInput) (*ListContributionsOutput, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}
	goalID, err := input.Parse()
	if err != nil {
		return nil, err
	}

	contributions, err := h.GoalService.ListContributions(ctx, userID, goalID)
	if err != nil {
		return nil, apiutil.Error(err, "failed to list contributions")
	}

	out := &ListContributionsOutput{}
	out.Body.Contributions = make([]Contribution, len(contributions))
	for i := range contributions {
		out.Body.Contributions[i] = contributionFromService(&contributions[i])
	}
	return out, nil
}
