package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finora-server/internal/aggregate"
	"github.com/carson-networks/finora-server/internal/ledger"
	"github.com/carson-networks/finora-server/internal/storage/sqlconfig"
)

// loadEntries reads the per-day ledger totals of a user inside window,
// optionally of a single type, as aggregation entries. Rows are summed by the
// store so the read is bounded by distinct days and labels, not by row count.
// An empty window reads nothing.
func loadEntries(
	ctx context.Context,
	table sqlconfig.ITransactionTable,
	userID uuid.UUID,
	window ledger.Window,
	typ *ledger.TransactionType,
) ([]aggregate.Entry, error) {
	if window.Empty() {
		return nil, nil
	}
	window = window.Dates()

	sums, err := table.Sums(ctx, &sqlconfig.TransactionFilter{
		UserID: userID,
		Type:   typ,
		Start:  window.Start,
		End:    window.End,
	})
	if err != nil {
		return nil, err
	}

	entries := make([]aggregate.Entry, len(sums))
	for i, sum := range sums {
		entries[i] = aggregate.Entry{
			Type:         sum.Type,
			Amount:       sum.Amount,
			Date:         sum.TransactionDate,
			CategoryName: sum.CategoryName,
		}
		if sum.SavedTo != "" {
			entries[i].Note = ledger.SavedToMarker + sum.SavedTo
		}
	}
	return entries, nil
}
