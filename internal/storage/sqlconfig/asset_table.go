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
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

var assetColumns = []any{
	"id", "user_id", "asset_name", "asset_type", "quantity", "buy_price", "current_price",
	"created_at", "updated_at",
}

// Asset represents a portfolio holding. Prices are entered by the user.
type Asset struct {
	ID           uuid.UUID       `db:"id"`
	UserID       uuid.UUID       `db:"user_id"`
	Name         string          `db:"asset_name"`
	Type         AssetType       `db:"asset_type"`
	Quantity     decimal.Decimal `db:"quantity"`
	BuyPrice     decimal.Decimal `db:"buy_price"`
	CurrentPrice decimal.Decimal `db:"current_price"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

type AssetCreate struct {
	UserID       uuid.UUID
	Name         string
	Type         AssetType
	Quantity     decimal.Decimal
	BuyPrice     decimal.Decimal
	CurrentPrice decimal.Decimal
}

// AssetUpdate carries the fields to change. Unset fields keep their value.
type AssetUpdate struct {
	Name         omit.Val[string]
	Type         omit.Val[AssetType]
	Quantity     omit.Val[decimal.Decimal]
	BuyPrice     omit.Val[decimal.Decimal]
	CurrentPrice omit.Val[decimal.Decimal]
}

type IAssetTable interface {
	Insert(ctx context.Context, create *AssetCreate) (*Asset, error)
	List(ctx context.Context, userID uuid.UUID) ([]*Asset, error)
	Update(ctx context.Context, userID, id uuid.UUID, update *AssetUpdate) (*Asset, error)
	Delete(ctx context.Context, userID, id uuid.UUID) (bool, error)
}

type AssetsTable struct {
	exec bob.Executor
}

var _ IAssetTable = (*AssetsTable)(nil)

func NewAssetsTable(exec bob.Executor) *AssetsTable {
	return &AssetsTable{exec: exec}
}

func (t *AssetsTable) Insert(ctx context.Context, create *AssetCreate) (*Asset, error) {
	query := psql.Insert(
		im.Into("assets", "user_id", "asset_name", "asset_type", "quantity", "buy_price", "current_price"),
		im.Values(psql.Arg(
			create.UserID,
			create.Name,
			create.Type,
			create.Quantity,
			create.BuyPrice,
			create.CurrentPrice,
		)),
		im.Returning(assetColumns...),
	)
	return bob.One(ctx, t.exec, query, scan.StructMapper[*Asset]())
}

// List returns the assets of a user, newest first.
func (t *AssetsTable) List(ctx context.Context, userID uuid.UUID) ([]*Asset, error) {
	query := psql.Select(
		sm.Columns(assetColumns...),
		sm.From("assets"),
		sm.Where(ownedBy("", userID)),
		sm.OrderBy(psql.Quote("created_at")).Desc(),
		sm.OrderBy(psql.Quote("id")).Desc(),
	)
	return bob.All(ctx, t.exec, query, scan.StructMapper[*Asset]())
}

// Update applies the set fields and returns the updated asset, or
// sql.ErrNoRows when the asset does not exist for the user.
func (t *AssetsTable) Update(ctx context.Context, userID, id uuid.UUID, update *AssetUpdate) (*Asset, error) {
	mods := []bob.Mod[*dialect.UpdateQuery]{
		um.Table("assets"),
		um.SetCol("updated_at").To(psql.Raw("NOW()")),
		um.Where(idIs("", id)),
		um.Where(ownedBy("", userID)),
		um.Returning(assetColumns...),
	}
	if v, ok := update.Name.Get(); ok {
		mods = append(mods, um.SetCol("asset_name").ToArg(v))
	}
	if v, ok := update.Type.Get(); ok {
		mods = append(mods, um.SetCol("asset_type").ToArg(v))
	}
	if v, ok := update.Quantity.Get(); ok {
		mods = append(mods, um.SetCol("quantity").ToArg(v))
	}
	if v, ok := update.BuyPrice.Get(); ok {
		mods = append(mods, um.SetCol("buy_price").ToArg(v))
	}
	if v, ok := update.CurrentPrice.Get(); ok {
		mods = append(mods, um.SetCol("current_price").ToArg(v))
	}
	return bob.One(ctx, t.exec, psql.Update(mods...), scan.StructMapper[*Asset]())
}

func (t *AssetsTable) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	query := psql.Delete(
		dm.From("assets"),
		dm.Where(idIs("", id)),
		dm.Where(ownedBy("", userID)),
	)
	res, err := bob.Exec(ctx, t.exec, query)
	if err != nil {
		return false, err
	}
	return affected(res)
}
