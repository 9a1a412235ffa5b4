// Package analytics computes derived statistics over stored transactions.
// It is a pure read-side layer: nothing here is persisted, every call
// recomputes from repository data.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/bekzodm/hamyon/internal/model"
)

// Store is the slice of the repository the engine reads from.
type Store interface {
	GetTransactionsInRange(ctx context.Context, start, end time.Time) ([]model.Transaction, error)
	GetCategories(ctx context.Context, typ *model.TransactionType) ([]model.Category, error)
}

// Engine computes monthly and per-category statistics.
type Engine struct {
	store Store
}

// New creates an analytics engine over the given store.
func New(store Store) *Engine {
	return &Engine{store: store}
}

// MonthBounds returns the inclusive [first instant, last instant] of the
// calendar month containing t, in t's location.
func MonthBounds(t time.Time) (start, end time.Time) {
	start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	end = start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

// MonthlyStats sums one month of activity. Income and Expenses are
// magnitudes; Balance is income minus expenses. A month with no
// transactions yields all zeros.
func (e *Engine) MonthlyStats(ctx context.Context, month time.Time) (model.MonthlyStats, error) {
	start, end := MonthBounds(month)

	txns, err := e.store.GetTransactionsInRange(ctx, start, end)
	if err != nil {
		return model.MonthlyStats{}, fmt.Errorf("failed to load transactions for %s: %w",
			month.Format("2006-01"), err)
	}

	var stats model.MonthlyStats
	for i := range txns {
		switch txns[i].Type {
		case model.TypeIncome:
			stats.Income += txns[i].Amount
		case model.TypeExpense:
			stats.Expenses += txns[i].AbsAmount()
		}
	}
	stats.Balance = stats.Income - stats.Expenses

	return stats, nil
}

// CategoryStats reports, for every category, the amount spent in the month
// and how it tracks against the category's budget. Remaining and Percentage
// apply only to expense categories; a zero budget short-circuits the
// percentage to zero rather than dividing.
func (e *Engine) CategoryStats(ctx context.Context, month time.Time) ([]model.CategoryStats, error) {
	start, end := MonthBounds(month)

	txns, err := e.store.GetTransactionsInRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions for %s: %w",
			month.Format("2006-01"), err)
	}

	categories, err := e.store.GetCategories(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	spentByCategory := make(map[int64]float64, len(categories))
	for i := range txns {
		spentByCategory[txns[i].CategoryID] += txns[i].AbsAmount()
	}

	stats := make([]model.CategoryStats, 0, len(categories))
	for _, cat := range categories {
		cs := model.CategoryStats{
			Category: cat,
			Spent:    spentByCategory[cat.ID],
		}
		if cat.Type == model.TypeExpense {
			cs.Remaining = cat.Budget - cs.Spent
			if cat.Budget > 0 {
				cs.Percentage = cs.Spent / cat.Budget * 100
			}
		}
		stats = append(stats, cs)
	}

	return stats, nil
}
