package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/bekzodm/hamyon/internal/cli"
	"github.com/bekzodm/hamyon/internal/common"
	"github.com/bekzodm/hamyon/internal/model"

	"github.com/spf13/cobra"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage income and expense categories",
		Long:  `List, add, update, and delete the categories transactions are recorded against.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(updateCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	var typeFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, cleanup, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var typ *model.TransactionType
			if typeFlag != "" {
				t := model.TransactionType(typeFlag)
				if !t.Valid() {
					return fmt.Errorf("type must be %q or %q", model.TypeIncome, model.TypeExpense)
				}
				typ = &t
			}

			categories, err := a.queries.Categories(ctx, typ)
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}

			if len(categories) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No categories found."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Name"),
				cli.HeaderStyle.Render("Type"),
				cli.HeaderStyle.Render("Budget"),
				cli.HeaderStyle.Render("Icon"))

			for _, cat := range categories {
				budget := cli.SubtleStyle.Render("—")
				if cat.Type == model.TypeExpense {
					budget = formatMoney(cat.Budget)
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
					cat.ID, cat.Name, cat.Type, budget, cat.Icon)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&typeFlag, "type", "t", "", "filter by type (income, expense)")

	return cmd
}

func addCategoryCmd() *cobra.Command {
	var (
		typeFlag string
		budget   float64
		icon     string
		color    string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			typ := model.TransactionType(typeFlag)
			if !typ.Valid() {
				return fmt.Errorf("type must be %q or %q", model.TypeIncome, model.TypeExpense)
			}

			a, cleanup, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := a.mutator.AddCategory(ctx, model.Category{
				Name:   args[0],
				Type:   typ,
				Budget: budget,
				Icon:   icon,
				Color:  color,
			})
			if err != nil {
				return fmt.Errorf("failed to add category: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created category %q (#%d)", args[0], id)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeFlag, "type", "t", "expense", "category type (income, expense)")
	cmd.Flags().Float64VarP(&budget, "budget", "b", 0, "monthly budget ceiling (expense categories)")
	cmd.Flags().StringVar(&icon, "icon", "", "display icon")
	cmd.Flags().StringVar(&color, "color", "", "display color")

	return cmd
}

func updateCategoryCmd() *cobra.Command {
	var (
		nameFlag   string
		budgetFlag float64
		iconFlag   string
		colorFlag  string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid category id %q", args[0])
			}

			a, cleanup, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var update model.CategoryUpdate
			if cmd.Flags().Changed("name") {
				update.Name = &nameFlag
			}
			if cmd.Flags().Changed("budget") {
				update.Budget = &budgetFlag
			}
			if cmd.Flags().Changed("icon") {
				update.Icon = &iconFlag
			}
			if cmd.Flags().Changed("color") {
				update.Color = &colorFlag
			}

			if err := a.mutator.UpdateCategory(ctx, id, update); err != nil {
				return fmt.Errorf("failed to update category: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated category #%d", id)))
			return nil
		},
	}

	cmd.Flags().StringVar(&nameFlag, "name", "", "display name")
	cmd.Flags().Float64VarP(&budgetFlag, "budget", "b", 0, "monthly budget ceiling")
	cmd.Flags().StringVar(&iconFlag, "icon", "", "display icon")
	cmd.Flags().StringVar(&colorFlag, "color", "", "display color")

	return cmd
}

func deleteCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Long: `Delete a category that no transaction references. The command refuses
to delete a category with recorded transactions; delete or recategorize them
first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid category id %q", args[0])
			}

			a, cleanup, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := a.mutator.DeleteCategory(ctx, id); err != nil {
				if errors.Is(err, common.ErrConflict) {
					return common.NewUserError(
						"category still has transactions; delete or move them first", err)
				}
				return fmt.Errorf("failed to delete category: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted category #%d", id)))
			return nil
		},
	}
}
