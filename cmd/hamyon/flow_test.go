package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bekzodm/hamyon/internal/common"
	"github.com/bekzodm/hamyon/internal/model"
	"github.com/bekzodm/hamyon/internal/query"
	"github.com/bekzodm/hamyon/internal/storage"
)

// newTestApp wires the full stack over a throwaway database, the way newApp
// does for real commands.
func newTestApp(t *testing.T) *app {
	t.Helper()
	ctx := context.Background()

	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "hamyon.db"))
	require.NoError(t, err)
	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.EnsureSeeded(ctx))

	cache := query.NewClient(query.Options{})
	t.Cleanup(func() {
		cache.Close()
		_ = store.Close()
	})

	return &app{
		store:   store,
		cache:   cache,
		queries: query.NewQueries(store, cache),
		mutator: query.NewMutator(store, cache),
	}
}

func TestAppFlow(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	// First run leaves the default category set in place.
	categories, err := a.queries.Categories(ctx, nil)
	require.NoError(t, err)
	require.Len(t, categories, 12)

	var food *model.Category
	for i := range categories {
		if categories[i].Name == "Food & Dining" {
			food = &categories[i]
			break
		}
	}
	require.NotNil(t, food)

	// Record an expense against it.
	month := time.Date(2026, time.May, 10, 12, 0, 0, 0, time.UTC)
	txnID, err := a.mutator.AddTransaction(ctx, model.TransactionDraft{
		Type:        model.TypeExpense,
		Amount:      -125000,
		CategoryID:  food.ID,
		Description: "groceries",
		Date:        month,
	})
	require.NoError(t, err)

	// The write shows up through the cached read side.
	txns, err := a.queries.Transactions(ctx, model.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "groceries", txns[0].Description)

	monthly, err := a.queries.MonthlyStats(ctx, month)
	require.NoError(t, err)
	assert.Equal(t, 125000.0, monthly.Expenses)
	assert.Equal(t, -125000.0, monthly.Balance)

	stats, err := a.queries.CategoryStats(ctx, month)
	require.NoError(t, err)
	for _, cs := range stats {
		if cs.ID == food.ID {
			assert.Equal(t, 125000.0, cs.Spent)
			assert.Equal(t, food.Budget-125000.0, cs.Remaining)
		}
	}

	// The category cannot be deleted while referenced.
	err = a.mutator.DeleteCategory(ctx, food.ID)
	require.ErrorIs(t, err, common.ErrConflict)

	// Deleting the transaction unblocks it.
	require.NoError(t, a.mutator.DeleteTransaction(ctx, txnID))
	require.NoError(t, a.mutator.DeleteCategory(ctx, food.ID))

	categories, err = a.queries.Categories(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, categories, 11)

	// And the stats are clean again.
	monthly, err = a.queries.MonthlyStats(ctx, month)
	require.NoError(t, err)
	assert.Zero(t, monthly.Expenses)
}

func TestAppFlow_ResolveCategory(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	// By name.
	id, err := resolveCategory(ctx, a, "Salary")
	require.NoError(t, err)
	assert.Positive(t, id)

	// By numeric id, no lookup.
	id, err = resolveCategory(ctx, a, "7")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	// Unknown name is a user-facing error.
	_, err = resolveCategory(ctx, a, "Nonexistent")
	require.Error(t, err)
	assert.False(t, errors.Is(err, common.ErrNotFound))
}
