// Package model defines the core domain types for the budget tracker.
package model

import (
	"math"
	"time"
)

// TransactionType indicates whether a transaction adds to or subtracts from the balance.
type TransactionType string

const (
	// TypeIncome represents money coming in. Amounts are stored positive.
	TypeIncome TransactionType = "income"
	// TypeExpense represents money going out. Amounts are stored negative.
	TypeExpense TransactionType = "expense"
)

// Valid reports whether the type is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction is a single recorded income or expense entry.
//
// Amount carries the sign convention: income is stored positive, expense
// negative. Date is the economic date chosen by the user and may differ from
// CreatedAt, which the repository sets when the record is first persisted.
type Transaction struct {
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Type        TransactionType
	Description string
	ID          int64
	CategoryID  int64
	Amount      float64
}

// AbsAmount returns the magnitude of the transaction amount.
func (t *Transaction) AbsAmount() float64 {
	return math.Abs(t.Amount)
}

// TransactionDraft holds the caller-supplied fields for a new transaction.
// ID and timestamps are assigned by the repository.
type TransactionDraft struct {
	Date        time.Time
	Type        TransactionType
	Description string
	CategoryID  int64
	Amount      float64
}

// TransactionUpdate is a partial update of a transaction. Nil fields leave
// the stored value unchanged; UpdatedAt is always refreshed by the repository.
type TransactionUpdate struct {
	Type        *TransactionType
	Amount      *float64
	CategoryID  *int64
	Description *string
	Date        *time.Time
}
