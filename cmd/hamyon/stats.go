package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/bekzodm/hamyon/internal/cli"
	"github.com/bekzodm/hamyon/internal/model"

	"github.com/spf13/cobra"
)

func statsCmd() *cobra.Command {
	var monthFlag string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show monthly summary and per-category budget tracking",
		Long: `Display the month's income, expenses, and balance, followed by spending
against each expense category's budget.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			month, err := parseMonth(monthFlag)
			if err != nil {
				return err
			}

			a, cleanup, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			monthly, err := a.queries.MonthlyStats(ctx, month)
			if err != nil {
				return fmt.Errorf("failed to compute monthly stats: %w", err)
			}

			fmt.Println(cli.FormatTitle(month.Format("January 2006")))
			fmt.Printf("  Income:   %s\n", cli.IncomeStyle.Render(formatMoney(monthly.Income)))
			fmt.Printf("  Expenses: %s\n", cli.ExpenseStyle.Render(formatMoney(monthly.Expenses)))
			fmt.Printf("  Balance:  %s\n\n", cli.FormatAmount(monthly.Balance, formatMoney(monthly.Balance)))

			stats, err := a.queries.CategoryStats(ctx, month)
			if err != nil {
				return fmt.Errorf("failed to compute category stats: %w", err)
			}

			fmt.Println(cli.HeaderStyle.Render(cli.ChartIcon + " Budgets"))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("Category"),
				cli.HeaderStyle.Render("Spent"),
				cli.HeaderStyle.Render("Budget"),
				cli.HeaderStyle.Render("Remaining"),
				cli.HeaderStyle.Render("Used"))

			for _, cs := range stats {
				if cs.Type != model.TypeExpense {
					continue
				}

				used := fmt.Sprintf("%.0f%%", cs.Percentage)
				if cs.Percentage > 100 {
					used = cli.ErrorStyle.Render(used)
				} else if cs.Percentage > 80 {
					used = cli.WarningStyle.Render(used)
				}

				fmt.Fprintf(w, "%s %s\t%s\t%s\t%s\t%s\n",
					cs.Icon, cs.Name,
					formatMoney(cs.Spent),
					formatMoney(cs.Budget),
					cli.FormatAmount(cs.Remaining, formatMoney(cs.Remaining)),
					used)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&monthFlag, "month", "m", "", "calendar month YYYY-MM (default: current month)")

	return cmd
}
