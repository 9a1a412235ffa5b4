package model

import "time"

// TransactionFilter narrows a transaction listing. All supplied fields are
// ANDed together; a nil field imposes no constraint.
type TransactionFilter struct {
	// Month restricts results to transactions whose Date falls in the same
	// calendar month and year. Only the month and year components are used.
	Month *time.Time
	// CategoryID restricts results to a single category.
	CategoryID *int64
	// Type restricts results to income or expense entries.
	Type *TransactionType
}

// IsZero reports whether the filter imposes no constraints.
func (f TransactionFilter) IsZero() bool {
	return f.Month == nil && f.CategoryID == nil && f.Type == nil
}
