package model

// MonthlyStats summarizes one calendar month of activity. Income and Expenses
// are both non-negative magnitudes; Balance is income minus expenses.
type MonthlyStats struct {
	Income   float64
	Expenses float64
	Balance  float64
}

// CategoryStats reports spending against a category's budget for one month.
//
// Remaining and Percentage are only computed for expense categories with a
// positive budget; otherwise they are zero.
type CategoryStats struct {
	Category
	Spent      float64
	Remaining  float64
	Percentage float64
}
