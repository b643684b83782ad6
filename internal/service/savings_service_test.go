package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finora-server/internal/storage/sqlconfig"
)

func TestTakeSnapshot(t *testing.T) {
	svc, mocks := newTestService(t)
	userID := newID()

	mocks.Transactions.On("Sums", mock.Anything, mock.Anything).Return(ledgerRows(), nil)
	mocks.Snapshots.On("Insert", mock.Anything, mock.MatchedBy(func(c *sqlconfig.SnapshotCreate) bool {
		return c.UserID == userID &&
			c.TotalIncome.Equal(dec("1500")) &&
			c.TotalExpense.Equal(dec("300")) &&
			c.TotalSavings.Equal(dec("50")) &&
			c.SnapshotDate.Equal(day(2024, 3, 15))
	})).Return(&sqlconfig.SavingsSnapshot{
		ID:           newID(),
		TotalIncome:  dec("1500"),
		TotalExpense: dec("300"),
		TotalSavings: dec("50"),
		SnapshotDate: day(2024, 3, 15),
	}, nil)

	snapshot, err := svc.Savings.TakeSnapshot(context.Background(), userID)

	require.NoError(t, err)
	assertDecimal(t, "50", snapshot.TotalSavings)
	assert.Equal(t, day(2024, 3, 15), snapshot.Date)
}

func TestHistory_RequestsLatestSixty(t *testing.T) {
	svc, mocks := newTestService(t)
	userID := newID()

	mocks.Snapshots.On("List", mock.Anything, userID, 60).Return([]*sqlconfig.SavingsSnapshot{
		{ID: newID(), SnapshotDate: day(2024, 3, 15)},
		{ID: newID(), SnapshotDate: day(2024, 3, 14)},
	}, nil)

	history, err := svc.Savings.History(context.Background(), userID)

	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, day(2024, 3, 15), history[0].Date)
}
