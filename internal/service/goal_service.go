package service

import (
	"context"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finora-server/internal/ledger"
	"github.com/carson-networks/finora-server/internal/operator/actions"
	"github.com/carson-networks/finora-server/internal/storage"
	"github.com/carson-networks/finora-server/internal/storage/sqlconfig"
)

// GoalService handles savings goals and their contributions.
type GoalService struct {
	storage  *storage.Storage
	operator Processor
	now      func() time.Time
}

func NewGoalService(store *storage.Storage, op Processor, now func() time.Time) *GoalService {
	return &GoalService{storage: store, operator: op, now: now}
}

var _ ContributionRecorder = (*GoalService)(nil)

// CreateGoal validates and stores a goal.
func (s *GoalService) CreateGoal(ctx context.Context, userID uuid.UUID, input GoalInput) (*Goal, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = defaultGoalName
	}
	if err := checkAmount("target_amount", input.TargetAmount, moneyPlaces); err != nil {
		return nil, err
	}
	if input.TargetDate == nil {
		return nil, invalid("target_date", "is required")
	}

	action := &actions.CreateGoal{Create: &sqlconfig.GoalCreate{
		UserID:       userID,
		Name:         name,
		TargetAmount: input.TargetAmount,
		TargetDate:   ledger.Today(*input.TargetDate),
	}}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, translate(err, "goal")
	}

	goal := goalFromStorage(action.Goal)
	return &goal, nil
}

// UpdateGoal applies patch to a goal of the user.
func (s *GoalService) UpdateGoal(ctx context.Context, userID, id uuid.UUID, patch GoalPatch) (*Goal, error) {
	update := &sqlconfig.GoalUpdate{TargetAmount: patch.TargetAmount}
	if name, ok := patch.Name.Get(); ok {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, invalid("name", "must not be empty")
		}
		update.Name.Set(name)
	}
	if amount, ok := patch.TargetAmount.Get(); ok {
		if err := checkAmount("target_amount", amount, moneyPlaces); err != nil {
			return nil, err
		}
	}
	if date, ok := patch.TargetDate.Get(); ok {
		update.TargetDate.Set(ledger.Today(date))
	}

	action := &actions.UpdateGoal{UserID: userID, ID: id, Update: update}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, translate(err, "goal")
	}

	goal := goalFromStorage(action.Goal)
	return &goal, nil
}

// ListGoals returns the user's goals, newest first.
func (s *GoalService) ListGoals(ctx context.Context, userID uuid.UUID) ([]Goal, error) {
	rows, err := s.storage.Goals.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	goals := make([]Goal, len(rows))
	for i, row := range rows {
		goals[i] = goalFromStorage(row)
	}
	return goals, nil
}

// GetGoalProgress returns every goal of the user with its current savings.
func (s *GoalService) GetGoalProgress(ctx context.Context, userID uuid.UUID) ([]GoalProgress, error) {
	goals, err := s.storage.Goals.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(goals) == 0 {
		return nil, nil
	}

	contributions, err := s.storage.Contributions.List(ctx, &sqlconfig.ContributionFilter{UserID: userID})
	if err != nil {
		return nil, err
	}

	saved := make(map[uuid.UUID]decimal.Decimal, len(goals))
	for _, c := range contributions {
		saved[c.GoalID] = saved[c.GoalID].Add(c.Amount)
	}

	progress := make([]GoalProgress, len(goals))
	for i, row := range goals {
		current := saved[row.ID]
		progress[i] = GoalProgress{
			Goal:           goalFromStorage(row),
			CurrentSavings: current,
			ProgressPct:    progressPct(current, row.TargetAmount),
		}
	}
	return progress, nil
}

// AddContribution appends a contribution to a goal of the user.
func (s *GoalService) AddContribution(ctx context.Context, userID uuid.UUID, input ContributionInput) (*Contribution, error) {
	if err := checkAmount("amount", input.Amount, moneyPlaces); err != nil {
		return nil, err
	}

	date := input.Date
	if date.IsZero() {
		date = s.now()
	}

	action := &actions.RecordContribution{Create: &sqlconfig.ContributionCreate{
		UserID:           userID,
		GoalID:           input.GoalID,
		Amount:           input.Amount,
		ContributionDate: ledger.Today(date),
	}}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, translate(err, "goal")
	}

	return &Contribution{
		ID:        action.Contribution.ID,
		GoalID:    action.Contribution.GoalID,
		GoalName:  action.Goal.Name,
		Amount:    action.Contribution.Amount,
		Date:      action.Contribution.ContributionDate,
		CreatedAt: action.Contribution.CreatedAt,
	}, nil
}

// ListContributions returns the contributions of one goal, oldest first.
func (s *GoalService) ListContributions(ctx context.Context, userID, goalID uuid.UUID) ([]Contribution, error) {
	goal, err := s.storage.Goals.FindByID(ctx, userID, goalID)
	if err != nil {
		return nil, translate(err, "goal")
	}

	rows, err := s.storage.Contributions.List(ctx, &sqlconfig.ContributionFilter{UserID: userID, GoalID: &goalID})
	if err != nil {
		return nil, err
	}

	contributions := make([]Contribution, len(rows))
	for i, row := range rows {
		contributions[i] = Contribution{
			ID:        row.ID,
			GoalID:    row.GoalID,
			GoalName:  goal.Name,
			Amount:    row.Amount,
			Date:      row.ContributionDate,
			CreatedAt: row.CreatedAt,
		}
	}
	return contributions, nil
}
