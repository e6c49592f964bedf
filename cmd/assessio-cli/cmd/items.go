package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"assessio/internal/application/commands"
	"assessio/internal/domain"
)

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "Manage the assessment item catalog",
	Long: `List, add, remove, reorder and search the items clients are scored on.

Items are addressed by ID or by the 1-based position shown in "items list".

Examples:
  assessio-cli items list
  assessio-cli items add 生活 食事 "食事を自分でとれる"
  assessio-cli items bulk --category 生活 < items.txt
  assessio-cli items move 12 1`,
}

var itemsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the catalog with current scores",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewListItemsCommand(GetWorkspace()).Execute(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, e := range result.Entries {
			score := "-"
			if e.Score > 0 {
				score = strconv.Itoa(e.Score)
			}
			fmt.Fprintf(out, "%3d  %s  [%s] %s\n", e.Position+1, score, e.Item.Category, e.Item.Name)
		}
		return nil
	},
}

var itemsAddCmd = &cobra.Command{
	Use:   "add <category> <name> <description>",
	Short: "Add an item to the end of the catalog",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewAddItemCommand(GetWorkspace(), args[0], args[1], args[2]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var (
	bulkCategory string
	bulkPreview  bool
)

var itemsBulkCmd = &cobra.Command{
	Use:   "bulk [file]",
	Short: "Add many items, one per line",
	Long: `Add items from a file, or from stdin when no file is given.

Each line is one of:
  category,name,description
  name,description        (uses --category)
  name｜description        (uses --category)
  name<TAB>description    (uses --category)

Duplicates of existing items, and of earlier lines, are skipped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := cmd.InOrStdin()
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}
		data, err := io.ReadAll(in)
		if err != nil {
			return err
		}

		result, err := commands.NewBulkAddCommand(GetWorkspace(), string(data), bulkCategory, !bulkPreview).Execute(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, result.Message)
		if result.Details != "" {
			fmt.Fprintln(out)
			fmt.Fprintln(out, result.Details)
		}
		return nil
	},
}

var itemsRemoveCmd = &cobra.Command{
	Use:   "remove <item>",
	Short: "Remove an item and its score and note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws := GetWorkspace()
		_, pos, err := commands.ResolveItem(ws.Catalog(), args[0])
		if err != nil {
			return err
		}
		result, err := commands.NewRemoveItemCommand(ws, pos).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var itemsMoveCmd = &cobra.Command{
	Use:   "move <item> <position>",
	Short: "Move an item to a 1-based position",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws := GetWorkspace()
		_, from, err := commands.ResolveItem(ws.Catalog(), args[0])
		if err != nil {
			return err
		}
		to, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid position %q", args[1])
		}
		result, err := commands.NewMoveItemCommand(ws, from, to-1).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var itemsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Fuzzy search items by name, category or description",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := commands.NewSearchItemsCommand(GetWorkspace(), args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(results) == 0 {
			fmt.Fprintln(out, "No results found")
			return nil
		}
		for _, r := range results {
			fmt.Fprintf(out, "%3d  [%s] %s - %s\n", r.Position+1, r.Item.Category, r.Item.Name, r.Item.Description)
		}
		return nil
	},
}

var criteriaCmd = &cobra.Command{
	Use:   "criteria",
	Short: "Show the 1-5 scoring scale",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, c := range domain.Criteria() {
			fmt.Fprintf(out, "%d %s: %s\n", c.Score, c.Label, c.Description)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(itemsCmd)
	rootCmd.AddCommand(criteriaCmd)
	itemsCmd.AddCommand(itemsListCmd)
	itemsCmd.AddCommand(itemsAddCmd)
	itemsCmd.AddCommand(itemsBulkCmd)
	itemsCmd.AddCommand(itemsRemoveCmd)
	itemsCmd.AddCommand(itemsMoveCmd)
	itemsCmd.AddCommand(itemsSearchCmd)

	itemsBulkCmd.Flags().StringVarP(&bulkCategory, "category", "c", "", "category for lines that do not name one")
	itemsBulkCmd.Flags().BoolVar(&bulkPreview, "preview", false, "only report what would be added")
}
