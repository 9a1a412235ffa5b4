package query

import (
	"context"
	"time"

	"github.com/bekzodm/hamyon/internal/analytics"
	"github.com/bekzodm/hamyon/internal/model"
)

// ReadStore is the repository surface the read side consumes.
type ReadStore interface {
	analytics.Store
	GetTransactions(ctx context.Context, filter model.TransactionFilter) ([]model.Transaction, error)
}

// Queries is the cached read surface consumers use instead of talking to the
// repository directly. Every method is a keyed fetch through the cache; pair
// it with Subscribe to refetch when a mutation invalidates the data.
type Queries struct {
	store  ReadStore
	engine *analytics.Engine
	cache  *Client
}

// NewQueries creates the read surface over a repository and cache client.
func NewQueries(store ReadStore, cache *Client) *Queries {
	return &Queries{
		store:  store,
		engine: analytics.New(store),
		cache:  cache,
	}
}

// Transactions returns the transactions matching filter.
func (q *Queries) Transactions(ctx context.Context, filter model.TransactionFilter) ([]model.Transaction, error) {
	return Fetch(ctx, q.cache, TransactionListKey(filter), func(ctx context.Context) ([]model.Transaction, error) {
		return q.store.GetTransactions(ctx, filter)
	})
}

// Categories returns all categories, optionally filtered by type.
func (q *Queries) Categories(ctx context.Context, typ *model.TransactionType) ([]model.Category, error) {
	return Fetch(ctx, q.cache, CategoryListKey(typ), func(ctx context.Context) ([]model.Category, error) {
		return q.store.GetCategories(ctx, typ)
	})
}

// MonthlyStats returns the month's income/expense/balance summary.
func (q *Queries) MonthlyStats(ctx context.Context, month time.Time) (model.MonthlyStats, error) {
	return Fetch(ctx, q.cache, MonthlyStatsKey(month), func(ctx context.Context) (model.MonthlyStats, error) {
		return q.engine.MonthlyStats(ctx, month)
	})
}

// CategoryStats returns the month's per-category budget tracking.
func (q *Queries) CategoryStats(ctx context.Context, month time.Time) ([]model.CategoryStats, error) {
	return Fetch(ctx, q.cache, CategoryStatsKey(month), func(ctx context.Context) ([]model.CategoryStats, error) {
		return q.engine.CategoryStats(ctx, month)
	})
}

// Subscribe registers interest in a key prefix; see Client.Subscribe.
func (q *Queries) Subscribe(prefix Key) *Subscription {
	return q.cache.Subscribe(prefix)
}
