// Package storage provides the data persistence layer for the budget tracker.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bekzodm/hamyon/internal/model"
)

// Validation errors.
var (
	ErrNilContext         = errors.New("context cannot be nil")
	ErrEmptyString        = errors.New("string parameter cannot be empty")
	ErrInvalidID          = errors.New("id must be positive")
	ErrInvalidDateRange   = errors.New("start date must be before end date")
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrInvalidCategory    = errors.New("invalid category")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateID ensures a record id is positive.
func validateID(id int64, paramName string) error {
	if id <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidID, paramName)
	}
	return nil
}

// validateAmountSign enforces the sign convention: income amounts are
// positive, expense amounts negative.
func validateAmountSign(typ model.TransactionType, amount float64) error {
	switch typ {
	case model.TypeIncome:
		if amount <= 0 {
			return fmt.Errorf("%w: income amount must be positive, got %v", ErrInvalidTransaction, amount)
		}
	case model.TypeExpense:
		if amount >= 0 {
			return fmt.Errorf("%w: expense amount must be negative, got %v", ErrInvalidTransaction, amount)
		}
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidTransaction, typ)
	}
	return nil
}

// validateDraft validates a new transaction before it is persisted.
func validateDraft(draft *model.TransactionDraft) error {
	if !draft.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidTransaction, draft.Type)
	}
	if draft.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidTransaction)
	}
	if draft.CategoryID <= 0 {
		return fmt.Errorf("%w: missing category", ErrInvalidTransaction)
	}
	return validateAmountSign(draft.Type, draft.Amount)
}

// validateCategory validates a category before it is persisted.
func validateCategory(cat *model.Category) error {
	if strings.TrimSpace(cat.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidCategory)
	}
	if !cat.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidCategory, cat.Type)
	}
	if cat.Budget < 0 {
		return fmt.Errorf("%w: budget cannot be negative", ErrInvalidCategory)
	}
	return nil
}
