package goal

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finora-server/internal/handlers/v1/apiutil"
	"github.com/carson-networks/finora-server/internal/service"
)

// Goal is the API response model for a savings goal.
type Goal struct {
	ID             string `json:"id" doc:"Goal UUID"`
	Name           string `json:"name"`
	TargetAmount   string `json:"targetAmount" doc:"Decimal target"`
	TargetDate     string `json:"targetDate" doc:"Deadline (YYYY-MM-DD)"`
	CurrentSavings string `json:"currentSavings,omitempty" doc:"Sum of contributions"`
	ProgressPct    string `json:"progressPct,omitempty" doc:"Percentage of the target saved, capped at 100"`
}

func fromService(g *service.Goal) Goal {
	return Goal{
		ID:           g.ID.String(),
		Name:         g.Name,
		TargetAmount: g.TargetAmount.String(),
		TargetDate:   apiutil.FormatDate(g.TargetDate),
	}
}

// FromProgress renders a goal with its progress.
func FromProgress(p *service.GoalProgress) Goal {
	g := fromService(&p.Goal)
	g.CurrentSavings = p.CurrentSavings.String()
	g.ProgressPct = p.ProgressPct.StringFixed(2)
	return g
}

// Contribution is the API response model for a goal contribution.
type Contribution struct {
	ID        string `json:"id"`
	GoalID    string `json:"goalID"`
	GoalName  string `json:"goalName"`
	Amount    string `json:"amount"`
	Date      string `json:"date" doc:"Contribution date (YYYY-MM-DD)"`
	CreatedAt string `json:"createdAt"`
}

func contributionFromService(c *service.Contribution) Contribution {
	return Contribution{
		ID:        c.ID.String(),
		GoalID:    c.GoalID.String(),
		GoalName:  c.GoalName,
		Amount:    c.Amount.String(),
		Date:      apiutil.FormatDate(c.Date),
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}

type goalService interface {
	CreateGoal(ctx context.Context, userID uuid.UUID, input service.GoalInput) (*service.Goal, error)
	UpdateGoal(ctx context.Context, userID, id uuid.UUID, patch service.GoalPatch) (*service.Goal, error)
	GetGoalProgress(ctx context.Context, userID uuid.UUID) ([]service.GoalProgress, error)
	AddContribution(ctx context.Context, userID uuid.UUID, input service.ContributionInput) (*service.Contribution, error)
	ListContributions(ctx context.Context, userID, goalID uuid.UUID) ([]service.Contribution, error)
}

type GoalOutput struct {
	Body Goal
}
