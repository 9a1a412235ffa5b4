package model

// Category groups transactions for budgeting and reporting.
//
// Budget is a monthly spending ceiling and is meaningful only for expense
// categories; income categories keep it at zero. Icon and Color are
// presentation metadata and are opaque to the core.
type Category struct {
	Name   string
	Icon   string
	Color  string
	Type   TransactionType
	ID     int64
	Budget float64
}

// CategoryUpdate is a partial update of a category. Nil fields leave the
// stored value unchanged.
type CategoryUpdate struct {
	Name   *string
	Budget *float64
	Icon   *string
	Color  *string
	Type   *TransactionType
}
