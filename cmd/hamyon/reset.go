package main

import (
	"fmt"
	"os"

	"github.com/bekzodm/hamyon/internal/cli"
	"github.com/bekzodm/hamyon/internal/model"

	"github.com/spf13/cobra"
)

func resetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all transactions and categories",
		Long: `Reset wipes every transaction and category in one atomic operation.

This is destructive and irreversible. The default category set is recreated
on the next run.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, cleanup, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			txns, err := a.queries.Transactions(ctx, model.TransactionFilter{})
			if err != nil {
				return fmt.Errorf("failed to count transactions: %w", err)
			}

			if !force {
				fmt.Fprintf(os.Stdout, "This will delete %d transaction(s) and all categories.\n", len(txns))
				fmt.Fprintf(os.Stdout, "Are you sure you want to continue? [y/N]: ")

				var response string
				if _, err := fmt.Scanln(&response); err != nil {
					response = ""
				}
				if response != "y" && response != "Y" {
					fmt.Fprintf(os.Stdout, "Reset canceled.\n")
					return nil
				}
			}

			if err := a.mutator.ClearAll(ctx); err != nil {
				return fmt.Errorf("failed to clear data: %w", err)
			}

			fmt.Println(cli.FormatSuccess("All data cleared"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}
