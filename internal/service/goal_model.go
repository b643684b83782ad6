package service

import (
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finora-server/internal/storage/sqlconfig"
)

const defaultGoalName = "Goal"

// Goal is a savings goal.
type Goal struct {
	ID           uuid.UUID
	Name         string
	TargetAmount decimal.Decimal
	TargetDate   time.Time
	CreatedAt    time.Time
}

// GoalInput is a goal to create. An empty Name becomes "Goal".
type GoalInput struct {
	Name         string
	TargetAmount decimal.Decimal
	TargetDate   *time.Time
}

// GoalPatch carries the goal fields to change.
type GoalPatch struct {
	Name         omit.Val[string]
	TargetAmount omit.Val[decimal.Decimal]
	TargetDate   omit.Val[time.Time]
}

// GoalProgress is a goal with its contributions summed.
type GoalProgress struct {
	Goal
	CurrentSavings decimal.Decimal
	ProgressPct    decimal.Decimal
}

// ContributionInput is a payment towards a goal. A zero Date means today.
type ContributionInput struct {
	GoalID uuid.UUID
	Amount decimal.Decimal
	Date   time.Time
}

// Contribution is a recorded payment towards a goal.
type Contribution struct {
	ID        uuid.UUID
	GoalID    uuid.UUID
	GoalName  string
	Amount    decimal.Decimal
	Date      time.Time
	CreatedAt time.Time
}

func goalFromStorage(row *sqlconfig.Goal) Goal {
	return Goal{
		ID:           row.ID,
		Name:         row.Name,
		TargetAmount: row.TargetAmount,
		TargetDate:   row.TargetDate,
		CreatedAt:    row.CreatedAt,
	}
}

var hundred = decimal.NewFromInt(100)

// progressPct is current/target as a percentage capped at 100. A zero target
// reports 0.
func progressPct(current, target decimal.Decimal) decimal.Decimal {
	if !target.IsPositive() {
		return decimal.Zero
	}
	pct := current.Div(target).Mul(hundred)
	if pct.GreaterThan(hundred) {
		pct = hundred
	}
	return pct.Round(2)
}
