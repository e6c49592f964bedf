package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"assessio/internal/application/commands"
)

var recordsClient string

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the current assessment to the client's history",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewSaveAssessmentCommand(GetWorkspace()).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Browse a client's saved assessments",
	Long: `List, load and delete saved assessments. The client defaults to the
client of the current assessment.

Examples:
  assessio-cli records list --client T.Y
  assessio-cli records load 1775035800000`,
}

var recordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved assessments, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewListRecordsCommand(GetWorkspace(), recordsClient).Execute(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, result.Message)
		for _, s := range result.Records {
			info := s.Record.BasicInfo
			marker := ""
			if s.Loaded {
				marker = "  *"
			}
			fmt.Fprintf(out, "%d  %s  %s ~ %s  %s  %s%s\n",
				s.Record.ID, info.EntryDate, info.PeriodStart, info.PeriodEnd, info.EvaluatorName, s.AverageText(), marker)
		}
		return nil
	},
}

var recordsLoadCmd = &cobra.Command{
	Use:   "load <id>",
	Short: "Load a saved assessment into the current session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseRecordID(args[0])
		if err != nil {
			return err
		}
		result, err := commands.NewLoadRecordCommand(GetWorkspace(), recordsClient, id).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var recordsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved assessment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseRecordID(args[0])
		if err != nil {
			return err
		}
		result, err := commands.NewDeleteRecordCommand(GetWorkspace(), recordsClient, id).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func parseRecordID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid record id %q", s)
	}
	return id, nil
}

func init() {
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(recordsCmd)
	recordsCmd.AddCommand(recordsListCmd)
	recordsCmd.AddCommand(recordsLoadCmd)
	recordsCmd.AddCommand(recordsDeleteCmd)

	recordsCmd.PersistentFlags().StringVar(&recordsClient, "client", "", "client name (defaults to the current assessment)")
}
