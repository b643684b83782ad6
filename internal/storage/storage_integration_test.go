//go:build integration

package storage_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
	"github.com/gofrs/uuid/v5"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/carson-networks/finora-server/internal/ledger"
	"github.com/carson-networks/finora-server/internal/storage"
	"github.com/carson-networks/finora-server/internal/storage/sqlconfig"
)

func setupStorage(t *testing.T) *storage.Storage {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("finora"),
		tcpostgres.WithUsername("finora"),
		tcpostgres.WithPassword("finora"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("container.Terminate: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("pgx", connStr)
	require.NoError(t, err)

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	require.NoError(t, err)
	m, err := migrate.NewWithDatabaseInstance("file://../../migrations", "postgres", driver)
	require.NoError(t, err)
	require.NoError(t, m.Up())

	store := storage.New(db)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStorage_LedgerRoundTrip(t *testing.T) {
	store := setupStorage(t)
	ctx := context.Background()
	userID, otherUser := uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4())

	require.NoError(t, store.Ping(ctx))

	category, err := store.Categories.Upsert(ctx, userID, "Food")
	require.NoError(t, err)
	again, err := store.Categories.Upsert(ctx, userID, "Food")
	require.NoError(t, err)
	assert.Equal(t, category.ID, again.ID)

	for _, create := range []*sqlconfig.TransactionCreate{
		{UserID: userID, CategoryID: null.From(category.ID), Type: ledger.TransactionTypeExpense, Amount: decimal.RequireFromString("12.50"), TransactionDate: date(2024, 1, 10)},
		{UserID: userID, Type: ledger.TransactionTypeIncome, Amount: decimal.RequireFromString("3000"), TransactionDate: date(2024, 2, 1)},
		{UserID: otherUser, Type: ledger.TransactionTypeIncome, Amount: decimal.RequireFromString("1"), TransactionDate: date(2024, 2, 1)},
	} {
		_, err := store.Transactions.Insert(ctx, create)
		require.NoError(t, err)
	}

	rows, err := store.Transactions.List(ctx, &sqlconfig.TransactionFilter{UserID: userID})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, ledger.TransactionTypeIncome, rows[0].Type)
	assert.Equal(t, "Food", rows[1].CategoryName)
	assert.True(t, rows[1].Amount.Equal(decimal.RequireFromString("12.5")))

	start := date(2024, 2, 1)
	windowed, err := store.Transactions.List(ctx, &sqlconfig.TransactionFilter{UserID: userID, Start: &start})
	require.NoError(t, err)
	assert.Len(t, windowed, 1)

	// Deleting the category keeps the transaction, uncategorised.
	deleted, err := store.Categories.Delete(ctx, userID, category.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	row, err := store.Transactions.FindByID(ctx, userID, rows[1].ID)
	require.NoError(t, err)
	assert.True(t, row.CategoryID.IsNull())

	_, err = store.Transactions.FindByID(ctx, otherUser, rows[1].ID)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestStorage_WriterRollback(t *testing.T) {
	store := setupStorage(t)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())

	writer, err := store.Write(ctx)
	require.NoError(t, err)
	_, err = writer.Transactions.Insert(ctx, &sqlconfig.TransactionCreate{
		UserID:          userID,
		Type:            ledger.TransactionTypeExpense,
		Amount:          decimal.RequireFromString("5"),
		TransactionDate: date(2024, 3, 1),
	})
	require.NoError(t, err)
	require.NoError(t, writer.Rollback(ctx))

	rows, err := store.Transactions.List(ctx, &sqlconfig.TransactionFilter{UserID: userID})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestStorage_GoalsAndContributions(t *testing.T) {
	store := setupStorage(t)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())

	goal, err := store.Goals.Insert(ctx, &sqlconfig.GoalCreate{
		UserID:       userID,
		Name:         "Car",
		TargetAmount: decimal.RequireFromString("5000"),
		TargetDate:   date(2025, 6, 30),
	})
	require.NoError(t, err)

	updated, err := store.Goals.Update(ctx, userID, goal.ID, &sqlconfig.GoalUpdate{Name: omit.From("New car")})
	require.NoError(t, err)
	assert.Equal(t, "New car", updated.Name)
	assert.True(t, updated.TargetAmount.Equal(goal.TargetAmount))

	_, err = store.Contributions.Insert(ctx, &sqlconfig.ContributionCreate{
		UserID:           userID,
		GoalID:           goal.ID,
		Amount:           decimal.RequireFromString("250"),
		ContributionDate: date(2024, 3, 1),
	})
	require.NoError(t, err)

	contributions, err := store.Contributions.List(ctx, &sqlconfig.ContributionFilter{UserID: userID, GoalID: &goal.ID})
	require.NoError(t, err)
	require.Len(t, contributions, 1)

	_, err = store.Contributions.Insert(ctx, &sqlconfig.ContributionCreate{
		UserID:           userID,
		GoalID:           uuid.Must(uuid.NewV4()),
		Amount:           decimal.RequireFromString("1"),
		ContributionDate: date(2024, 3, 1),
	})
	var pgErr *pgconn.PgError
	require.ErrorAs(t, err, &pgErr)
	assert.Equal(t, "23503", pgErr.Code)
}

func TestStorage_BudgetUpsertAndRecurring(t *testing.T) {
	store := setupStorage(t)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())

	_, err := store.Budgets.Upsert(ctx, userID, "2024-03", decimal.RequireFromString("500"))
	require.NoError(t, err)
	budget, err := store.Budgets.Upsert(ctx, userID, "2024-03", decimal.RequireFromString("750"))
	require.NoError(t, err)
	assert.True(t, budget.LimitAmount.Equal(decimal.RequireFromString("750")))

	_, err = store.Budgets.Find(ctx, userID, "2024-04")
	assert.True(t, errors.Is(err, sql.ErrNoRows))

	template, err := store.Recurring.Insert(ctx, &sqlconfig.RecurringCreate{
		UserID:     userID,
		Type:       ledger.TransactionTypeExpense,
		Amount:     decimal.RequireFromString("1200"),
		Note:       "Rent",
		DayOfMonth: 1,
	})
	require.NoError(t, err)
	assert.True(t, template.LastAppliedDate.IsNull())

	require.NoError(t, store.Recurring.MarkApplied(ctx, template.ID, date(2024, 3, 1)))
	templates, err := store.Recurring.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, templates, 1)
	applied, ok := templates[0].LastAppliedDate.Get()
	require.True(t, ok)
	assert.True(t, applied.Equal(date(2024, 3, 1)))

	users, err := store.Recurring.ListUserIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{userID}, users)
}

func TestStorage_TransactionUpdate(t *testing.T) {
	store := setupStorage(t)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())

	category, err := store.Categories.Upsert(ctx, userID, "Fuel")
	require.NoError(t, err)
	id, err := store.Transactions.Insert(ctx, &sqlconfig.TransactionCreate{
		UserID:          userID,
		CategoryID:      null.From(category.ID),
		Type:            ledger.TransactionTypeExpense,
		Amount:          decimal.RequireFromString("40"),
		Note:            "tank",
		TransactionDate: date(2024, 3, 2),
	})
	require.NoError(t, err)

	// Unset category keeps the stored one.
	ok, err := store.Transactions.Update(ctx, userID, id, &sqlconfig.TransactionUpdate{
		Amount: omit.From(decimal.RequireFromString("42.10")),
	})
	require.NoError(t, err)
	assert.True(t, ok)
	row, err := store.Transactions.FindByID(ctx, userID, id)
	require.NoError(t, err)
	assert.True(t, row.Amount.Equal(decimal.RequireFromString("42.10")))
	assert.Equal(t, category.ID, row.CategoryID.GetOrZero())
	assert.Equal(t, "tank", row.Note)

	ok, err = store.Transactions.Update(ctx, userID, id, &sqlconfig.TransactionUpdate{
		CategoryID: omitnull.FromPtr[uuid.UUID](nil),
	})
	require.NoError(t, err)
	assert.True(t, ok)
	row, err = store.Transactions.FindByID(ctx, userID, id)
	require.NoError(t, err)
	assert.True(t, row.CategoryID.IsNull())
	assert.Empty(t, row.CategoryName)

	ok, err = store.Transactions.Update(ctx, userID, id, &sqlconfig.TransactionUpdate{
		CategoryID: omitnull.From(category.ID),
	})
	require.NoError(t, err)
	assert.True(t, ok)
	row, err = store.Transactions.FindByID(ctx, userID, id)
	require.NoError(t, err)
	assert.Equal(t, "Fuel", row.CategoryName)

	ok, err = store.Transactions.Update(ctx, userID, id, &sqlconfig.TransactionUpdate{})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Transactions.Update(ctx, userID, uuid.Must(uuid.NewV4()), &sqlconfig.TransactionUpdate{
		Note: omit.From("missing"),
	})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = store.Transactions.Update(ctx, uuid.Must(uuid.NewV4()), id, &sqlconfig.TransactionUpdate{
		Note: omit.From("not mine"),
	})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStorage_TransactionSums(t *testing.T) {
	store := setupStorage(t)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())

	food, err := store.Categories.Upsert(ctx, userID, "Food")
	require.NoError(t, err)

	for _, create := range []*sqlconfig.TransactionCreate{
		{UserID: userID, CategoryID: null.From(food.ID), Type: ledger.TransactionTypeExpense, Amount: decimal.RequireFromString("10.25"), TransactionDate: date(2024, 1, 5)},
		{UserID: userID, CategoryID: null.From(food.ID), Type: ledger.TransactionTypeExpense, Amount: decimal.RequireFromString("4.75"), TransactionDate: date(2024, 1, 5)},
		{UserID: userID, Type: ledger.TransactionTypeExpense, Amount: decimal.RequireFromString("3"), TransactionDate: date(2024, 1, 5)},
		{UserID: userID, Type: ledger.TransactionTypeSaving, Amount: decimal.RequireFromString("50"), Note: "payday saved_to:  Car Fund ", TransactionDate: date(2024, 1, 6)},
		{UserID: userID, Type: ledger.TransactionTypeSaving, Amount: decimal.RequireFromString("25"), Note: "saved_to:Car Fund", TransactionDate: date(2024, 1, 6)},
		{UserID: userID, Type: ledger.TransactionTypeIncome, Amount: decimal.RequireFromString("900"), TransactionDate: date(2024, 2, 1)},
	} {
		_, err := store.Transactions.Insert(ctx, create)
		require.NoError(t, err)
	}

	sums, err := store.Transactions.Sums(ctx, &sqlconfig.TransactionFilter{UserID: userID})
	require.NoError(t, err)
	require.Len(t, sums, 4)

	totals := make(map[string]decimal.Decimal)
	for _, sum := range sums {
		key := sum.TransactionDate.Format(time.DateOnly) + "/" + string(sum.Type) + "/" + sum.CategoryName + "/" + sum.SavedTo
		totals[key] = sum.Amount
	}
	assert.True(t, totals["2024-01-05/expense/Food/"].Equal(decimal.RequireFromString("15")))
	assert.True(t, totals["2024-01-05/expense//"].Equal(decimal.RequireFromString("3")))
	assert.True(t, totals["2024-01-06/saving//Car Fund"].Equal(decimal.RequireFromString("75")))
	assert.True(t, totals["2024-02-01/income//"].Equal(decimal.RequireFromString("900")))

	expense := ledger.TransactionTypeExpense
	end := date(2024, 1, 31)
	expenses, err := store.Transactions.Sums(ctx, &sqlconfig.TransactionFilter{UserID: userID, Type: &expense, End: &end})
	require.NoError(t, err)
	assert.Len(t, expenses, 2)

	others, err := store.Transactions.Sums(ctx, &sqlconfig.TransactionFilter{UserID: uuid.Must(uuid.NewV4())})
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestStorage_RecurringLockWaitsForCommit(t *testing.T) {
	store := setupStorage(t)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())

	template, err := store.Recurring.Insert(ctx, &sqlconfig.RecurringCreate{
		UserID:     userID,
		Type:       ledger.TransactionTypeExpense,
		Amount:     decimal.RequireFromString("40"),
		Note:       "gym",
		DayOfMonth: 1,
	})
	require.NoError(t, err)

	first, err := store.Write(ctx)
	require.NoError(t, err)
	locked, err := first.Recurring.Lock(ctx, template.ID)
	require.NoError(t, err)
	assert.True(t, locked.LastAppliedDate.IsNull())

	type lockResult struct {
		template *sqlconfig.RecurringTemplate
		err      error
	}
	second, err := store.Write(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Rollback(context.Background()) })
	done := make(chan lockResult, 1)
	go func() {
		row, err := second.Recurring.Lock(ctx, template.ID)
		done <- lockResult{row, err}
	}()

	select {
	case <-done:
		t.Fatal("second lock returned while the first transaction held the row")
	case <-time.After(300 * time.Millisecond):
	}

	require.NoError(t, first.Recurring.MarkApplied(ctx, template.ID, date(2024, 3, 15)))
	require.NoError(t, first.Commit(ctx))

	select {
	case result := <-done:
		require.NoError(t, result.err)
		applied, ok := result.template.LastAppliedDate.Get()
		require.True(t, ok)
		assert.True(t, applied.Equal(date(2024, 3, 15)))
	case <-time.After(10 * time.Second):
		t.Fatal("second lock never returned")
	}

	_, err = store.Recurring.Lock(ctx, uuid.Must(uuid.NewV4()))
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}
