package sqlconfig

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

var categoryColumns = []any{"id", "user_id", "name", "created_at"}

// Category represents a category record. Names are unique per user.
type Category struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

// ICategoryTable defines the interface for category storage operations.
type ICategoryTable interface {
	FindByID(ctx context.Context, userID, id uuid.UUID) (*Category, error)
	List(ctx context.Context, userID uuid.UUID) ([]*Category, error)
	Upsert(ctx context.Context, userID uuid.UUID, name string) (*Category, error)
	Delete(ctx context.Context, userID, id uuid.UUID) (bool, error)
}

// CategoriesTable provides access to the categories table.
type CategoriesTable struct {
	exec bob.Executor
}

var _ ICategoryTable = (*CategoriesTable)(nil)

func NewCategoriesTable(exec bob.Executor) *CategoriesTable {
	return &CategoriesTable{exec: exec}
}

// FindByID retrieves a category by primary key.
func (t *CategoriesTable) FindByID(ctx context.Context, userID, id uuid.UUID) (*Category, error) {
	query := psql.Select(
		sm.Columns(categoryColumns...),
		sm.From("categories"),
		sm.Where(idIs("", id)),
		sm.Where(ownedBy("", userID)),
	)
	return bob.One(ctx, t.exec, query, scan.StructMapper[*Category]())
}

// List returns the categories of a user ordered by name.
func (t *CategoriesTable) List(ctx context.Context, userID uuid.UUID) ([]*Category, error) {
	query := psql.Select(
		sm.Columns(categoryColumns...),
		sm.From("categories"),
		sm.Where(ownedBy("", userID)),
		sm.OrderBy(psql.Quote("name")).Asc(),
	)
	return bob.All(ctx, t.exec, query, scan.StructMapper[*Category]())
}

// Upsert creates the category or returns the existing one with the same name.
func (t *CategoriesTable) Upsert(ctx context.Context, userID uuid.UUID, name string) (*Category, error) {
	query := psql.Insert(
		im.Into("categories", "user_id", "name"),
		im.Values(psql.Arg(userID, name)),
		im.OnConflict("user_id", "name").DoUpdate(im.SetExcluded("name")),
		im.Returning(categoryColumns...),
	)
	return bob.One(ctx, t.exec, query, scan.StructMapper[*Category]())
}

// Delete removes a category. Transactions referencing it keep their rows with
// the category cleared by the foreign key.
func (t *CategoriesTable) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	query := psql.Delete(
		dm.From("categories"),
		dm.Where(idIs("", id)),
		dm.Where(ownedBy("", userID)),
	)
	res, err := bob.Exec(ctx, t.exec, query)
	if err != nil {
		return false, err
	}
	return affected(res)
}
