package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bekzodm/hamyon/internal/model"
)

// fakeStore serves canned data and records the range it was asked for.
type fakeStore struct {
	err        error
	txns       []model.Transaction
	categories []model.Category
	lastStart  time.Time
	lastEnd    time.Time
}

func (f *fakeStore) GetTransactionsInRange(_ context.Context, start, end time.Time) ([]model.Transaction, error) {
	f.lastStart, f.lastEnd = start, end
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Transaction
	for _, txn := range f.txns {
		if txn.Date.Before(start) || txn.Date.After(end) {
			continue
		}
		out = append(out, txn)
	}
	return out, nil
}

func (f *fakeStore) GetCategories(_ context.Context, typ *model.TransactionType) ([]model.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	if typ == nil {
		return f.categories, nil
	}
	var out []model.Category
	for _, cat := range f.categories {
		if cat.Type == *typ {
			out = append(out, cat)
		}
	}
	return out, nil
}

func expenseTxn(categoryID int64, amount float64, date time.Time) model.Transaction {
	return model.Transaction{Type: model.TypeExpense, Amount: amount, CategoryID: categoryID, Date: date}
}

func incomeTxn(categoryID int64, amount float64, date time.Time) model.Transaction {
	return model.Transaction{Type: model.TypeIncome, Amount: amount, CategoryID: categoryID, Date: date}
}

func TestMonthBounds(t *testing.T) {
	start, end := MonthBounds(time.Date(2026, time.February, 14, 15, 4, 5, 0, time.UTC))

	assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), start)
	assert.True(t, end.Before(time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, end.After(time.Date(2026, time.February, 28, 23, 59, 59, 0, time.UTC)))
}

func TestEngine_MonthlyStats(t *testing.T) {
	month := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	mid := month.AddDate(0, 0, 14)

	store := &fakeStore{
		txns: []model.Transaction{
			incomeTxn(1, 8500000, month),
			expenseTxn(2, -125000, mid),
			expenseTxn(2, -85000, mid),
			// Outside the month, must not count.
			expenseTxn(2, -999999, month.AddDate(0, 1, 0)),
		},
	}
	engine := New(store)

	stats, err := engine.MonthlyStats(context.Background(), mid)
	require.NoError(t, err)

	assert.Equal(t, 8500000.0, stats.Income)
	assert.Equal(t, 210000.0, stats.Expenses)
	assert.Equal(t, stats.Income-stats.Expenses, stats.Balance)

	// Requested range covers exactly the calendar month.
	assert.Equal(t, month, store.lastStart)
	assert.True(t, store.lastEnd.Before(month.AddDate(0, 1, 0)))
}

func TestEngine_MonthlyStats_EmptyMonth(t *testing.T) {
	engine := New(&fakeStore{})

	stats, err := engine.MonthlyStats(context.Background(), time.Now())
	require.NoError(t, err)

	assert.Zero(t, stats.Income)
	assert.Zero(t, stats.Expenses)
	assert.Zero(t, stats.Balance)
}

func TestEngine_MonthlyStats_StoreError(t *testing.T) {
	storeErr := errors.New("disk on fire")
	engine := New(&fakeStore{err: storeErr})

	_, err := engine.MonthlyStats(context.Background(), time.Now())
	assert.ErrorIs(t, err, storeErr)
}

func TestEngine_CategoryStats(t *testing.T) {
	month := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)

	store := &fakeStore{
		categories: []model.Category{
			{ID: 1, Name: "Food", Type: model.TypeExpense, Budget: 1000000},
			{ID: 2, Name: "Transport", Type: model.TypeExpense, Budget: 0},
			{ID: 3, Name: "Salary", Type: model.TypeIncome},
		},
		txns: []model.Transaction{
			expenseTxn(1, -250000, month),
			expenseTxn(1, -250000, month.AddDate(0, 0, 10)),
			expenseTxn(2, -40000, month),
			incomeTxn(3, 8500000, month),
		},
	}
	engine := New(store)

	stats, err := engine.CategoryStats(context.Background(), month)
	require.NoError(t, err)
	require.Len(t, stats, 3)

	byName := make(map[string]model.CategoryStats, len(stats))
	for _, cs := range stats {
		byName[cs.Name] = cs
	}

	food := byName["Food"]
	assert.Equal(t, 500000.0, food.Spent)
	assert.Equal(t, 500000.0, food.Remaining)
	assert.Equal(t, 50.0, food.Percentage)

	// Zero budget never divides.
	transport := byName["Transport"]
	assert.Equal(t, 40000.0, transport.Spent)
	assert.Equal(t, -40000.0, transport.Remaining)
	assert.Zero(t, transport.Percentage)

	// Income categories report activity but no budget tracking.
	salary := byName["Salary"]
	assert.Equal(t, 8500000.0, salary.Spent)
	assert.Zero(t, salary.Remaining)
	assert.Zero(t, salary.Percentage)
}

func TestEngine_CategoryStats_OverBudget(t *testing.T) {
	month := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)

	store := &fakeStore{
		categories: []model.Category{
			{ID: 1, Name: "Food", Type: model.TypeExpense, Budget: 100000},
		},
		txns: []model.Transaction{
			expenseTxn(1, -150000, month),
		},
	}
	engine := New(store)

	stats, err := engine.CategoryStats(context.Background(), month)
	require.NoError(t, err)
	require.Len(t, stats, 1)

	assert.Equal(t, -50000.0, stats[0].Remaining)
	assert.Equal(t, 150.0, stats[0].Percentage)
}
