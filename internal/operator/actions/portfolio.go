package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finora-server/internal/storage"
	"github.com/carson-networks/finora-server/internal/storage/sqlconfig"
)

type RecordSnapshot struct {
	Create *sqlconfig.SnapshotCreate

	Snapshot *sqlconfig.SavingsSnapshot
}

func (s *RecordSnapshot) Perform(ctx context.Context, writer *storage.Writer) error {
	snapshot, err := writer.Snapshots.Insert(ctx, s.Create)
	if err != nil {
		return err
	}

	s.Snapshot = snapshot
	return nil
}

type CreateAsset struct {
	Create *sqlconfig.AssetCreate

	Asset *sqlconfig.Asset
}

func (a *CreateAsset) Perform(ctx context.Context, writer *storage.Writer) error {
	asset, err := writer.Assets.Insert(ctx, a.Create)
	if err != nil {
		return err
	}

	a.Asset = asset
	return nil
}

type UpdateAsset struct {
	UserID uuid.UUID
	ID     uuid.UUID
	Update *sqlconfig.AssetUpdate

	Asset *sqlconfig.Asset
}

func (a *UpdateAsset) Perform(ctx context.Context, writer *storage.Writer) error {
	asset, err := writer.Assets.Update(ctx, a.UserID, a.ID, a.Update)
	if err != nil {
		return err
	}

	a.Asset = asset
	return nil
}

type DeleteAsset struct {
	UserID uuid.UUID
	ID     uuid.UUID
}

func (a *DeleteAsset) Perform(ctx context.Context, writer *storage.Writer) error {
	return found(writer.Assets.Delete(ctx, a.UserID, a.ID))
}
