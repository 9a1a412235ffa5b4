package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bekzodm/hamyon/internal/common"
	"github.com/bekzodm/hamyon/internal/model"
)

const categoryColumns = `id, name, budget, icon, color, type`

// AddCategory persists a new category and returns its assigned id.
func (s *SQLiteStorage) AddCategory(ctx context.Context, cat model.Category) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateCategory(&cat); err != nil {
		return 0, err
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (name, budget, icon, color, type)
		VALUES (?, ?, ?, ?, ?)`,
		cat.Name, cat.Budget, cat.Icon, cat.Color, string(cat.Type))
	if err != nil {
		return 0, fmt.Errorf("failed to insert category: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get category ID: %w", err)
	}

	slog.Info("created category", "id", id, "name", cat.Name, "type", cat.Type)
	return id, nil
}

// UpdateCategory merges the supplied fields into an existing category.
func (s *SQLiteStorage) UpdateCategory(ctx context.Context, id int64, update model.CategoryUpdate) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	current, err := getCategoryByID(ctx, tx, id)
	if err != nil {
		return err
	}

	if update.Name != nil {
		current.Name = *update.Name
	}
	if update.Budget != nil {
		current.Budget = *update.Budget
	}
	if update.Icon != nil {
		current.Icon = *update.Icon
	}
	if update.Color != nil {
		current.Color = *update.Color
	}
	if update.Type != nil {
		current.Type = *update.Type
	}

	if err := validateCategory(current); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE categories
		SET name = ?, budget = ?, icon = ?, color = ?, type = ?
		WHERE id = ?`,
		current.Name, current.Budget, current.Icon, current.Color, string(current.Type), id)
	if err != nil {
		return fmt.Errorf("failed to update category %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit category update: %w", err)
	}

	slog.Debug("updated category", "id", id)
	return nil
}

// DeleteCategory removes a category that no transaction references. The
// reference count and the delete run in a single database transaction, so a
// concurrent insert cannot slip between the check and the removal.
func (s *SQLiteStorage) DeleteCategory(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	count, err := countTransactionsByCategory(ctx, tx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("category %d is referenced by %d transaction(s): %w", id, count, common.ErrConflict)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("category %d: %w", id, common.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit category delete: %w", err)
	}

	slog.Info("deleted category", "id", id)
	return nil
}

// GetCategories returns all categories ordered by name, optionally filtered
// by type. A nil type imposes no constraint.
func (s *SQLiteStorage) GetCategories(ctx context.Context, typ *model.TransactionType) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT ` + categoryColumns + ` FROM categories`
	var args []any
	if typ != nil {
		query += ` WHERE type = ?`
		args = append(args, string(*typ))
	}
	query += ` ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []model.Category
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	slog.Debug("retrieved categories", "count", len(categories))
	return categories, nil
}

// GetCategory returns a single category by id.
func (s *SQLiteStorage) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id, "id"); err != nil {
		return nil, err
	}
	return getCategoryByID(ctx, s.db, id)
}

// GetCategoryByName returns a category by its display name, or nil when no
// category carries that name.
func (s *SQLiteStorage) GetCategoryByName(ctx context.Context, name string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	var cat model.Category
	var typ string
	err := s.db.QueryRowContext(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		WHERE name = ?`, name).Scan(
		&cat.ID, &cat.Name, &cat.Budget, &cat.Icon, &cat.Color, &typ)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category %q: %w", name, err)
	}
	cat.Type = model.TransactionType(typ)
	return &cat, nil
}

func getCategoryByID(ctx context.Context, q queryable, id int64) (*model.Category, error) {
	var cat model.Category
	var typ string
	err := q.QueryRowContext(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		WHERE id = ?`, id).Scan(
		&cat.ID, &cat.Name, &cat.Budget, &cat.Icon, &cat.Color, &typ)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("category %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category %d: %w", id, err)
	}
	cat.Type = model.TransactionType(typ)
	return &cat, nil
}

func scanCategory(rows *sql.Rows) (model.Category, error) {
	var cat model.Category
	var typ string
	if err := rows.Scan(&cat.ID, &cat.Name, &cat.Budget, &cat.Icon, &cat.Color, &typ); err != nil {
		return model.Category{}, fmt.Errorf("failed to scan category: %w", err)
	}
	cat.Type = model.TransactionType(typ)
	return cat, nil
}
