package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finora-server/internal/storage"
	"github.com/carson-networks/finora-server/internal/storage/sqlconfig"
)

type CreateGoal struct {
	Create *sqlconfig.GoalCreate

	Goal *sqlconfig.Goal
}

func (g *CreateGoal) Perform(ctx context.Context, writer *storage.Writer) error {
	goal, err := writer.Goals.Insert(ctx, g.Create)
	if err != nil {
		return err
	}

	g.Goal = goal
	return nil
}

type UpdateGoal struct {
	UserID uuid.UUID
	ID     uuid.UUID
	Update *sqlconfig.GoalUpdate

	Goal *sqlconfig.Goal
}

func (g *UpdateGoal) Perform(ctx context.Context, writer *storage.Writer) error {
	goal, err := writer.Goals.Update(ctx, g.UserID, g.ID, g.Update)
	if err != nil {
		return err
	}

	g.Goal = goal
	return nil
}

// RecordContribution appends a contribution to a goal owned by the user.
// The goal row is read in the same transaction so a missing or foreign goal
// fails with sql.ErrNoRows before anything is written.
type RecordContribution struct {
	Create *sqlconfig.ContributionCreate

	Goal         *sqlconfig.Goal
	Contribution *sqlconfig.Contribution
}

func (c *RecordContribution) Perform(ctx context.Context, writer *storage.Writer) error {
	goal, err := writer.Goals.FindByID(ctx, c.Create.UserID, c.Create.GoalID)
	if err != nil {
		return err
	}

	contribution, err := writer.Contributions.Insert(ctx, c.Create)
	if err != nil {
		return err
	}

	c.Goal = goal
	c.Contribution = contribution
	return nil
}
