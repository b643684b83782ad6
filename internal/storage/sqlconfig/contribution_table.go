package sqlconfig

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

var contributionColumns = []any{"id", "user_id", "goal_id", "amount", "contribution_date", "created_at"}

// Contribution is an append-only payment towards a goal.
type Contribution struct {
	ID               uuid.UUID       `db:"id"`
	UserID           uuid.UUID       `db:"user_id"`
	GoalID           uuid.UUID       `db:"goal_id"`
	Amount           decimal.Decimal `db:"amount"`
	ContributionDate time.Time       `db:"contribution_date"`
	CreatedAt        time.Time       `db:"created_at"`
}

type ContributionCreate struct {
	UserID           uuid.UUID
	GoalID           uuid.UUID
	Amount           decimal.Decimal
	ContributionDate time.Time
}

// ContributionFilter selects contributions of a user, optionally of one goal.
type ContributionFilter struct {
	UserID uuid.UUID
	GoalID *uuid.UUID
}

type IContributionTable interface {
	Insert(ctx context.Context, create *ContributionCreate) (*Contribution, error)
	List(ctx context.Context, filter *ContributionFilter) ([]*Contribution, error)
}

type ContributionsTable struct {
	exec bob.Executor
}

var _ IContributionTable = (*ContributionsTable)(nil)

func NewContributionsTable(exec bob.Executor) *ContributionsTable {
	return &ContributionsTable{exec: exec}
}

func (t *ContributionsTable) Insert(ctx context.Context, create *ContributionCreate) (*Contribution, error) {
	query := psql.Insert(
		im.Into("goal_contributions", "user_id", "goal_id", "amount", "contribution_date"),
		im.Values(psql.Arg(create.UserID, create.GoalID, create.Amount, create.ContributionDate)),
		im.Returning(contributionColumns...),
	)
	return bob.One(ctx, t.exec, query, scan.StructMapper[*Contribution]())
}

// List returns contributions ordered by date ascending.
func (t *ContributionsTable) List(ctx context.Context, filter *ContributionFilter) ([]*Contribution, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(contributionColumns...),
		sm.From("goal_contributions"),
		sm.Where(ownedBy("", filter.UserID)),
	}
	if filter.GoalID != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("goal_id").EQ(psql.Arg(*filter.GoalID))))
	}
	queryMods = append(queryMods,
		sm.OrderBy(psql.Quote("contribution_date")).Asc(),
		sm.OrderBy(psql.Quote("created_at")).Asc(),
	)
	return bob.All(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[*Contribution]())
}
