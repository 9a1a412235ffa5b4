package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/bekzodm/hamyon/internal/cli"
	"github.com/bekzodm/hamyon/internal/model"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func seedCmd() *cobra.Command {
	var (
		demo   bool
		months int
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the database",
		Long: `Ensure the default category set exists. With --demo, also generate
sample transactions over the past months for trying out the application.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			// newApp already runs EnsureSeeded.
			a, cleanup, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if !demo {
				fmt.Println(cli.FormatSuccess("Default categories are in place"))
				return nil
			}

			if months < 1 {
				return fmt.Errorf("--months must be at least 1, got %d", months)
			}

			count, err := seedDemoData(cmd, a, months)
			if err != nil {
				return fmt.Errorf("failed to generate demo data: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Generated %d demo transactions across %d month(s)", count, months)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&demo, "demo", false, "generate sample transactions")
	cmd.Flags().IntVar(&months, "months", 3, "how many past months of demo data to generate")

	return cmd
}

// seedDemoData writes a salary entry plus a spread of random expenses for
// each month, mirroring a typical usage pattern.
func seedDemoData(cmd *cobra.Command, a *app, months int) (int, error) {
	ctx := cmd.Context()

	expense, income := model.TypeExpense, model.TypeIncome
	expenseCats, err := a.queries.Categories(ctx, &expense)
	if err != nil {
		return 0, err
	}
	incomeCats, err := a.queries.Categories(ctx, &income)
	if err != nil {
		return 0, err
	}
	if len(expenseCats) == 0 || len(incomeCats) == 0 {
		return 0, fmt.Errorf("no categories available to seed against")
	}

	var salary *model.Category
	for i := range incomeCats {
		if incomeCats[i].Name == "Salary" {
			salary = &incomeCats[i]
			break
		}
	}
	if salary == nil {
		salary = &incomeCats[0]
	}

	const expensesPerMonth = 18
	total := months * (expensesPerMonth + 1)
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Seeding demo data"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	now := time.Now()
	written := 0
	for m := 0; m < months; m++ {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local).AddDate(0, -m, 0)

		// Salary lands on the first of the month.
		if _, err := a.mutator.AddTransaction(ctx, model.TransactionDraft{
			Type:        model.TypeIncome,
			Amount:      8500000,
			CategoryID:  salary.ID,
			Description: "Monthly salary",
			Date:        monthStart,
		}); err != nil {
			return written, err
		}
		written++
		_ = bar.Add(1)

		for i := 0; i < expensesPerMonth; i++ {
			cat := expenseCats[rand.Intn(len(expenseCats))]
			day := rand.Intn(28) + 1
			// Random spend between 2% and 20% of the category budget, with a
			// floor for budget-less categories.
			magnitude := cat.Budget * (0.02 + rand.Float64()*0.18)
			if magnitude < 10000 {
				magnitude = float64(10000 + rand.Intn(90000))
			}

			if _, err := a.mutator.AddTransaction(ctx, model.TransactionDraft{
				Type:        model.TypeExpense,
				Amount:      -magnitude,
				CategoryID:  cat.ID,
				Description: "",
				Date:        monthStart.AddDate(0, 0, day-1),
			}); err != nil {
				return written, err
			}
			written++
			_ = bar.Add(1)
		}
	}

	return written, nil
}
