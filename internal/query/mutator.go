package query

import (
	"context"

	"github.com/bekzodm/hamyon/internal/model"
)

// WriteStore is the repository surface the mutation dispatcher drives.
type WriteStore interface {
	AddTransaction(ctx context.Context, draft model.TransactionDraft) (int64, error)
	UpdateTransaction(ctx context.Context, id int64, update model.TransactionUpdate) error
	DeleteTransaction(ctx context.Context, id int64) error
	AddCategory(ctx context.Context, cat model.Category) (int64, error)
	UpdateCategory(ctx context.Context, id int64, update model.CategoryUpdate) error
	DeleteCategory(ctx context.Context, id int64) error
	EnsureSeeded(ctx context.Context) error
	ClearAll(ctx context.Context) error
}

// Mutator dispatches writes to the repository and invalidates the affected
// cache families on success. On failure nothing is invalidated and the error
// propagates unchanged, so readers keep the last-known-good state. There is
// no optimistic state and no retry.
type Mutator struct {
	store WriteStore
	cache *Client
}

// NewMutator creates the write surface over a repository and cache client.
func NewMutator(store WriteStore, cache *Client) *Mutator {
	return &Mutator{store: store, cache: cache}
}

// AddTransaction persists a new transaction and returns its id.
func (m *Mutator) AddTransaction(ctx context.Context, draft model.TransactionDraft) (int64, error) {
	id, err := m.store.AddTransaction(ctx, draft)
	if err != nil {
		return 0, err
	}
	m.invalidateTransactionWrites()
	return id, nil
}

// UpdateTransaction applies a partial update to a transaction.
func (m *Mutator) UpdateTransaction(ctx context.Context, id int64, update model.TransactionUpdate) error {
	if err := m.store.UpdateTransaction(ctx, id, update); err != nil {
		return err
	}
	m.invalidateTransactionWrites()
	return nil
}

// DeleteTransaction removes a transaction.
func (m *Mutator) DeleteTransaction(ctx context.Context, id int64) error {
	if err := m.store.DeleteTransaction(ctx, id); err != nil {
		return err
	}
	m.invalidateTransactionWrites()
	return nil
}

// AddCategory persists a new category and returns its id.
func (m *Mutator) AddCategory(ctx context.Context, cat model.Category) (int64, error) {
	id, err := m.store.AddCategory(ctx, cat)
	if err != nil {
		return 0, err
	}
	m.invalidateCategoryWrites()
	return id, nil
}

// UpdateCategory applies a partial update to a category.
func (m *Mutator) UpdateCategory(ctx context.Context, id int64, update model.CategoryUpdate) error {
	if err := m.store.UpdateCategory(ctx, id, update); err != nil {
		return err
	}
	m.invalidateCategoryWrites()
	return nil
}

// DeleteCategory removes a category with no referencing transactions.
func (m *Mutator) DeleteCategory(ctx context.Context, id int64) error {
	if err := m.store.DeleteCategory(ctx, id); err != nil {
		return err
	}
	m.invalidateCategoryWrites()
	return nil
}

// EnsureSeeded seeds the default categories on first run.
func (m *Mutator) EnsureSeeded(ctx context.Context) error {
	if err := m.store.EnsureSeeded(ctx); err != nil {
		return err
	}
	m.invalidateCategoryWrites()
	return nil
}

// ClearAll wipes every transaction and category.
func (m *Mutator) ClearAll(ctx context.Context) error {
	if err := m.store.ClearAll(ctx); err != nil {
		return err
	}
	m.cache.Invalidate(TransactionsKey)
	m.cache.Invalidate(CategoriesKey)
	return nil
}

// invalidateTransactionWrites drops the transactions family plus the cached
// category stats, which fold transaction spend into budget tracking.
func (m *Mutator) invalidateTransactionWrites() {
	m.cache.Invalidate(TransactionsKey)
	m.cache.Invalidate(CategoryStatsRoot)
}

// invalidateCategoryWrites drops both family roots: category stats embed
// budget and spend together, so transaction reads can depend on them too.
func (m *Mutator) invalidateCategoryWrites() {
	m.cache.Invalidate(CategoriesKey)
	m.cache.Invalidate(TransactionsKey)
}
