package main

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/bekzodm/hamyon/internal/cli"
	"github.com/bekzodm/hamyon/internal/model"

	"github.com/spf13/cobra"
)

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Record and manage transactions",
		Long:  `Add, list, update, and delete income and expense transactions.`,
	}

	cmd.AddCommand(addTxCmd())
	cmd.AddCommand(listTxCmd())
	cmd.AddCommand(updateTxCmd())
	cmd.AddCommand(deleteTxCmd())

	return cmd
}

func addTxCmd() *cobra.Command {
	var (
		txType      string
		category    string
		description string
		dateFlag    string
	)

	cmd := &cobra.Command{
		Use:   "add <amount>",
		Short: "Add a transaction",
		Long: `Record a new transaction. The amount is a positive magnitude; the sign
is derived from the type (income stays positive, expense is stored negative).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := strconv.ParseFloat(args[0], 64)
			if err != nil || amount <= 0 {
				return fmt.Errorf("amount must be a positive number, got %q", args[0])
			}

			typ := model.TransactionType(txType)
			if !typ.Valid() {
				return fmt.Errorf("type must be %q or %q", model.TypeIncome, model.TypeExpense)
			}
			if typ == model.TypeExpense {
				amount = -amount
			}

			date := time.Now()
			if dateFlag != "" {
				date, err = time.ParseInLocation("2006-01-02", dateFlag, time.Local)
				if err != nil {
					return fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", dateFlag, err)
				}
			}

			a, cleanup, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			categoryID, err := resolveCategory(ctx, a, category)
			if err != nil {
				return err
			}

			id, err := a.mutator.AddTransaction(ctx, model.TransactionDraft{
				Type:        typ,
				Amount:      amount,
				CategoryID:  categoryID,
				Description: description,
				Date:        date,
			})
			if err != nil {
				return fmt.Errorf("failed to add transaction: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %s %s (#%d)",
				txType, formatMoney(math.Abs(amount)), id)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&txType, "type", "t", "expense", "transaction type (income, expense)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category id or name (required)")
	cmd.Flags().StringVarP(&description, "desc", "d", "", "free-form description")
	cmd.Flags().StringVar(&dateFlag, "date", "", "economic date YYYY-MM-DD (default: today)")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func listTxCmd() *cobra.Command {
	var (
		monthFlag    string
		categoryFlag string
		typeFlag     string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		Long: `List transactions, newest first. Filters combine: supplying --month,
--category, and --type together returns only rows matching all three.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, cleanup, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var filter model.TransactionFilter
			if monthFlag != "" {
				month, err := parseMonth(monthFlag)
				if err != nil {
					return err
				}
				filter.Month = &month
			}
			if categoryFlag != "" {
				id, err := resolveCategory(ctx, a, categoryFlag)
				if err != nil {
					return err
				}
				filter.CategoryID = &id
			}
			if typeFlag != "" {
				typ := model.TransactionType(typeFlag)
				if !typ.Valid() {
					return fmt.Errorf("type must be %q or %q", model.TypeIncome, model.TypeExpense)
				}
				filter.Type = &typ
			}

			txns, err := a.queries.Transactions(ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to list transactions: %w", err)
			}

			if len(txns) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No transactions found."))
				return nil
			}

			categories, err := a.queries.Categories(ctx, nil)
			if err != nil {
				return fmt.Errorf("failed to load categories: %w", err)
			}
			names := make(map[int64]string, len(categories))
			for _, cat := range categories {
				names[cat.ID] = cat.Name
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Date"),
				cli.HeaderStyle.Render("Category"),
				cli.HeaderStyle.Render("Amount"),
				cli.HeaderStyle.Render("Description"))

			for _, txn := range txns {
				name := names[txn.CategoryID]
				if name == "" {
					name = fmt.Sprintf("#%d", txn.CategoryID)
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
					txn.ID,
					txn.Date.Format("2006-01-02"),
					name,
					cli.FormatAmount(txn.Amount, formatMoney(txn.Amount)),
					txn.Description)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&monthFlag, "month", "m", "", "calendar month YYYY-MM")
	cmd.Flags().StringVarP(&categoryFlag, "category", "c", "", "category id or name")
	cmd.Flags().StringVarP(&typeFlag, "type", "t", "", "transaction type (income, expense)")

	return cmd
}

func updateTxCmd() *cobra.Command {
	var (
		amountFlag   string
		categoryFlag string
		descFlag     string
		dateFlag     string
		typeFlag     string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of a transaction",
		Long: `Rewrite any subset of a transaction's fields. Omitted flags leave the
stored value unchanged; the record's updated timestamp is always refreshed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid transaction id %q", args[0])
			}

			a, cleanup, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var update model.TransactionUpdate

			if typeFlag != "" {
				typ := model.TransactionType(typeFlag)
				if !typ.Valid() {
					return fmt.Errorf("type must be %q or %q", model.TypeIncome, model.TypeExpense)
				}
				update.Type = &typ
			}
			if amountFlag != "" {
				amount, err := strconv.ParseFloat(amountFlag, 64)
				if err != nil {
					return fmt.Errorf("invalid amount %q", amountFlag)
				}
				update.Amount = &amount
			}
			if categoryFlag != "" {
				categoryID, err := resolveCategory(ctx, a, categoryFlag)
				if err != nil {
					return err
				}
				update.CategoryID = &categoryID
			}
			if cmd.Flags().Changed("desc") {
				update.Description = &descFlag
			}
			if dateFlag != "" {
				date, err := time.ParseInLocation("2006-01-02", dateFlag, time.Local)
				if err != nil {
					return fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", dateFlag, err)
				}
				update.Date = &date
			}

			if err := a.mutator.UpdateTransaction(ctx, id, update); err != nil {
				return fmt.Errorf("failed to update transaction: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated transaction #%d", id)))
			return nil
		},
	}

	cmd.Flags().StringVar(&amountFlag, "amount", "", "signed amount (income positive, expense negative)")
	cmd.Flags().StringVarP(&categoryFlag, "category", "c", "", "category id or name")
	cmd.Flags().StringVarP(&descFlag, "desc", "d", "", "free-form description")
	cmd.Flags().StringVar(&dateFlag, "date", "", "economic date YYYY-MM-DD")
	cmd.Flags().StringVarP(&typeFlag, "type", "t", "", "transaction type (income, expense)")

	return cmd
}

func deleteTxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64)
			if err != nil {
				return fmt.Errorf("invalid transaction id %q", args[0])
			}

			a, cleanup, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := a.mutator.DeleteTransaction(ctx, id); err != nil {
				return fmt.Errorf("failed to delete transaction: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted transaction #%d", id)))
			return nil
		},
	}
}
