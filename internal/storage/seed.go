package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bekzodm/hamyon/internal/model"
)

// DefaultCategories returns the fixed category set inserted on first run:
// eight expense categories with monthly budgets and four income categories.
func DefaultCategories() []model.Category {
	return []model.Category{
		// Expense categories
		{Name: "Food & Dining", Budget: 1500000, Icon: "🍕", Color: "#f97316", Type: model.TypeExpense},
		{Name: "Transportation", Budget: 800000, Icon: "🚗", Color: "#3b82f6", Type: model.TypeExpense},
		{Name: "Shopping", Budget: 1000000, Icon: "🛍️", Color: "#ec4899", Type: model.TypeExpense},
		{Name: "Entertainment", Budget: 500000, Icon: "🎮", Color: "#8b5cf6", Type: model.TypeExpense},
		{Name: "Bills & Utilities", Budget: 1200000, Icon: "💡", Color: "#06b6d4", Type: model.TypeExpense},
		{Name: "Healthcare", Budget: 600000, Icon: "🏥", Color: "#10b981", Type: model.TypeExpense},
		{Name: "Education", Budget: 800000, Icon: "📚", Color: "#6366f1", Type: model.TypeExpense},
		{Name: "Other", Budget: 500000, Icon: "📦", Color: "#6b7280", Type: model.TypeExpense},

		// Income categories
		{Name: "Salary", Budget: 0, Icon: "💰", Color: "#10b981", Type: model.TypeIncome},
		{Name: "Freelance", Budget: 0, Icon: "💼", Color: "#3b82f6", Type: model.TypeIncome},
		{Name: "Investment", Budget: 0, Icon: "📈", Color: "#f59e0b", Type: model.TypeIncome},
		{Name: "Other Income", Budget: 0, Icon: "💵", Color: "#8b5cf6", Type: model.TypeIncome},
	}
}

// EnsureSeeded inserts the default category set if the categories table is
// empty. The count check and the bulk insert run in a single transaction, so
// concurrent callers cannot double-seed. Safe to call on every start; a
// non-empty table is a no-op.
func (s *SQLiteStorage) EnsureSeeded(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}

	if count > 0 {
		slog.Debug("categories already seeded", "count", count)
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO categories (name, budget, icon, color, type)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	defaults := DefaultCategories()
	for _, cat := range defaults {
		if _, err := stmt.ExecContext(ctx, cat.Name, cat.Budget, cat.Icon, cat.Color, string(cat.Type)); err != nil {
			return fmt.Errorf("failed to insert default category %q: %w", cat.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit default categories: %w", err)
	}

	slog.Info("seeded default categories", "count", len(defaults))
	return nil
}

// ClearAll removes every transaction and category in one transaction.
func (s *SQLiteStorage) ClearAll(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Transactions first: they reference categories.
	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("failed to clear transactions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM categories`); err != nil {
		return fmt.Errorf("failed to clear categories: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit clear: %w", err)
	}

	slog.Info("cleared all data")
	return nil
}
