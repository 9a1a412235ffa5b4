package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bekzodm/hamyon/internal/common"
	"github.com/bekzodm/hamyon/internal/model"
)

const transactionColumns = `id, type, amount, category_id, description, date, created_at, updated_at`

// AddTransaction persists a new transaction, assigning its id and setting
// CreatedAt and UpdatedAt to the same instant. The referenced category must
// exist; otherwise the write fails with a not-found error.
func (s *SQLiteStorage) AddTransaction(ctx context.Context, draft model.TransactionDraft) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateDraft(&draft); err != nil {
		return 0, err
	}

	now := time.Now()
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (type, amount, category_id, description, date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(draft.Type), draft.Amount, draft.CategoryID, draft.Description, draft.Date, now, now)
	if err != nil {
		if mapped := mapCategoryReference(err, draft.CategoryID); mapped != err {
			return 0, mapped
		}
		return 0, fmt.Errorf("failed to insert transaction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get transaction ID: %w", err)
	}

	slog.Debug("added transaction", "id", id, "type", draft.Type, "amount", draft.Amount)
	return id, nil
}

// UpdateTransaction merges the supplied fields into an existing transaction
// and refreshes UpdatedAt. The read, merge, and write run in one transaction
// so the sign invariant is checked against the final field combination.
func (s *SQLiteStorage) UpdateTransaction(ctx context.Context, id int64, update model.TransactionUpdate) error {
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

	current, err := getTransactionByID(ctx, tx, id)
	if err != nil {
		return err
	}

	if update.Type != nil {
		current.Type = *update.Type
	}
	if update.Amount != nil {
		current.Amount = *update.Amount
	}
	if update.CategoryID != nil {
		current.CategoryID = *update.CategoryID
	}
	if update.Description != nil {
		current.Description = *update.Description
	}
	if update.Date != nil {
		current.Date = *update.Date
	}

	if err := validateAmountSign(current.Type, current.Amount); err != nil {
		return err
	}
	if current.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidTransaction)
	}

	current.UpdatedAt = time.Now()
	_, err = tx.ExecContext(ctx, `
		UPDATE transactions
		SET type = ?, amount = ?, category_id = ?, description = ?, date = ?, updated_at = ?
		WHERE id = ?`,
		string(current.Type), current.Amount, current.CategoryID, current.Description,
		current.Date, current.UpdatedAt, id)
	if err != nil {
		if mapped := mapCategoryReference(err, current.CategoryID); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to update transaction %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction update: %w", err)
	}

	slog.Debug("updated transaction", "id", id)
	return nil
}

// DeleteTransaction removes a transaction unconditionally.
func (s *SQLiteStorage) DeleteTransaction(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("transaction %d: %w", id, common.ErrNotFound)
	}

	slog.Debug("deleted transaction", "id", id)
	return nil
}

// GetTransaction returns a single transaction by id.
func (s *SQLiteStorage) GetTransaction(ctx context.Context, id int64) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id, "id"); err != nil {
		return nil, err
	}
	return getTransactionByID(ctx, s.db, id)
}

func getTransactionByID(ctx context.Context, q queryable, id int64) (*model.Transaction, error) {
	var txn model.Transaction
	var typ string
	err := q.QueryRowContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE id = ?`, id).Scan(
		&txn.ID, &typ, &txn.Amount, &txn.CategoryID, &txn.Description,
		&txn.Date, &txn.CreatedAt, &txn.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("transaction %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction %d: %w", id, err)
	}
	txn.Type = model.TransactionType(typ)
	return &txn, nil
}

// GetTransactions returns transactions matching the filter, newest first.
// Every supplied filter field must match; an empty filter returns everything.
func (s *SQLiteStorage) GetTransactions(ctx context.Context, filter model.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions`
	var conds []string
	var args []any

	if filter.Month != nil {
		start, next := monthRange(*filter.Month)
		conds = append(conds, `date >= ? AND date < ?`)
		args = append(args, start, next)
	}
	if filter.CategoryID != nil {
		conds = append(conds, `category_id = ?`)
		args = append(args, *filter.CategoryID)
	}
	if filter.Type != nil {
		conds = append(conds, `type = ?`)
		args = append(args, string(*filter.Type))
	}

	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, ` AND `)
	}
	query += ` ORDER BY date DESC, id DESC`

	txns, err := queryTransactions(ctx, s.db, query, args...)
	if err != nil {
		return nil, err
	}

	slog.Debug("retrieved transactions", "count", len(txns))
	return txns, nil
}

// GetTransactionsInRange returns transactions with a date inside the
// inclusive [start, end] range, oldest first.
func (s *SQLiteStorage) GetTransactionsInRange(ctx context.Context, start, end time.Time) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: %v after %v", ErrInvalidDateRange, start, end)
	}

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC, id ASC`

	return queryTransactions(ctx, s.db, query, start, end)
}

// CountTransactionsByCategory returns how many transactions reference the
// given category.
func (s *SQLiteStorage) CountTransactionsByCategory(ctx context.Context, categoryID int64) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateID(categoryID, "categoryID"); err != nil {
		return 0, err
	}
	return countTransactionsByCategory(ctx, s.db, categoryID)
}

func countTransactionsByCategory(ctx context.Context, q queryable, categoryID int64) (int, error) {
	var count int
	err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE category_id = ?`, categoryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions for category %d: %w", categoryID, err)
	}
	return count, nil
}

func queryTransactions(ctx context.Context, q queryable, query string, args ...any) ([]model.Transaction, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var txns []model.Transaction
	for rows.Next() {
		var txn model.Transaction
		var typ string
		if err := rows.Scan(&txn.ID, &typ, &txn.Amount, &txn.CategoryID, &txn.Description,
			&txn.Date, &txn.CreatedAt, &txn.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txn.Type = model.TransactionType(typ)
		txns = append(txns, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return txns, nil
}

// monthRange returns the half-open [start of month, start of next month)
// interval containing t, in t's location.
func monthRange(t time.Time) (start, next time.Time) {
	start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}
