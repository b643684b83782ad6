package sqlconfig

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

var goalColumns = []any{"id", "user_id", "name", "target_amount", "target_date", "created_at", "updated_at"}

// Goal represents a savings goal record.
type Goal struct {
	ID           uuid.UUID       `db:"id"`
	UserID       uuid.UUID       `db:"user_id"`
	Name         string          `db:"name"`
	TargetAmount decimal.Decimal `db:"target_amount"`
	TargetDate   time.Time       `db:"target_date"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

// GoalCreate is the input for creating a goal.
type GoalCreate struct {
	UserID       uuid.UUID
	Name         string
	TargetAmount decimal.Decimal
	TargetDate   time.Time
}

// GoalUpdate carries the fields to change. Unset fields keep their value.
type GoalUpdate struct {
	Name         omit.Val[string]
	TargetAmount omit.Val[decimal.Decimal]
	TargetDate   omit.Val[time.Time]
}

type IGoalTable interface {
	FindByID(ctx context.Context, userID, id uuid.UUID) (*Goal, error)
	Insert(ctx context.Context, create *GoalCreate) (*Goal, error)
	List(ctx context.Context, userID uuid.UUID) ([]*Goal, error)
	Update(ctx context.Context, userID, id uuid.UUID, update *GoalUpdate) (*Goal, error)
}

type GoalsTable struct {
	exec bob.Executor
}

var _ IGoalTable = (*GoalsTable)(nil)

func NewGoalsTable(exec bob.Executor) *GoalsTable {
	return &GoalsTable{exec: exec}
}

func (t *GoalsTable) FindByID(ctx context.Context, userID, id uuid.UUID) (*Goal, error) {
	query := psql.Select(
		sm.Columns(goalColumns...),
		sm.From("savings_goals"),
		sm.Where(idIs("", id)),
		sm.Where(ownedBy("", userID)),
	)
	return bob.One(ctx, t.exec, query, scan.StructMapper[*Goal]())
}

func (t *GoalsTable) Insert(ctx context.Context, create *GoalCreate) (*Goal, error) {
	query := psql.Insert(
		im.Into("savings_goals", "user_id", "name", "target_amount", "target_date"),
		im.Values(psql.Arg(create.UserID, create.Name, create.TargetAmount, create.TargetDate)),
		im.Returning(goalColumns...),
	)
	return bob.One(ctx, t.exec, query, scan.StructMapper[*Goal]())
}

// List returns the goals of a user, newest first.
func (t *GoalsTable) List(ctx context.Context, userID uuid.UUID) ([]*Goal, error) {
	query := psql.Select(
		sm.Columns(goalColumns...),
		sm.From("savings_goals"),
		sm.Where(ownedBy("", userID)),
		sm.OrderBy(psql.Quote("created_at")).Desc(),
		sm.OrderBy(psql.Quote("id")).Desc(),
	)
	return bob.All(ctx, t.exec, query, scan.StructMapper[*Goal]())
}

// Update applies the set fields and returns the updated goal, or
// sql.ErrNoRows when the goal does not exist for the user.
func (t *GoalsTable) Update(ctx context.Context, userID, id uuid.UUID, update *GoalUpdate) (*Goal, error) {
	mods := []bob.Mod[*dialect.UpdateQuery]{
		um.Table("savings_goals"),
		um.SetCol("updated_at").To(psql.Raw("NOW()")),
		um.Where(idIs("", id)),
		um.Where(ownedBy("", userID)),
		um.Returning(goalColumns...),
	}
	if v, ok := update.Name.Get(); ok {
		mods = append(mods, um.SetCol("name").ToArg(v))
	}
	if v, ok := update.TargetAmount.Get(); ok {
		mods = append(mods, um.SetCol("target_amount").ToArg(v))
	}
	if v, ok := update.TargetDate.Get(); ok {
		mods = append(mods, um.SetCol("target_date").ToArg(v))
	}
	return bob.One(ctx, t.exec, psql.Update(mods...), scan.StructMapper[*Goal]())
}
