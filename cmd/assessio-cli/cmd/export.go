package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"assessio/internal/adapters/csvexport"
	"assessio/internal/adapters/tui/views"
	"assessio/internal/application/commands"
	"assessio/internal/domain"
)

var exportDir string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the scored items as CSV",
	Long: `Write the scored items of the current assessment as UTF-8 CSV with a
BOM, sorted by category then item name. With --out the file is saved
under its standard name in that directory, otherwise it goes to stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws := GetWorkspace()
		result, err := commands.NewExportCommand(ws).Execute(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if exportDir == "" {
			return csvexport.Write(out, result.Export)
		}
		path, err := csvexport.SaveFile(exportDir, result.Export, ws.Clock().Now())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Exported %d rows to %s\n", len(result.Export.Rows), path)
		return nil
	},
}

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show scores grouped by category",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewResultsCommand(GetWorkspace()).Execute(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Scored %d of %d items, average %.2f\n", result.Scored, result.Total, result.Average)
		for _, g := range result.Groups {
			fmt.Fprintf(out, "\n%s\n", g.Category)
			for _, e := range g.Entries {
				fmt.Fprintf(out, "  %-20s %s %d %s\n", e.Item.Name, views.RenderBar(e.Score), e.Score, e.Criterion.Label)
				if e.Note != "" {
					fmt.Fprintf(out, "  %-20s %s\n", "", domain.NormalizeNote(e.Note))
				}
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(resultsCmd)

	exportCmd.Flags().StringVarP(&exportDir, "out", "o", "", "directory to save the CSV file in")
}
