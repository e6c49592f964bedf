package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"assessio/internal/adapters/editor"
	"assessio/internal/application/commands"
)

var clearScore bool

var scoreCmd = &cobra.Command{
	Use:   "score <item> [1-5]",
	Short: "Score an item in the current assessment",
	Long: `Score an item from 1 (very difficult) to 5 (very good), or clear its
score with --clear. See "assessio-cli criteria" for the scale.

Examples:
  assessio-cli score 3 4
  assessio-cli score 3 --clear`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws := GetWorkspace()
		item, _, err := commands.ResolveItem(ws.Catalog(), args[0])
		if err != nil {
			return err
		}

		if clearScore {
			result, err := commands.NewClearScoreCommand(ws, item.ID).Execute(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		}

		if len(args) != 2 {
			return fmt.Errorf("score is required unless --clear is set")
		}
		score, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid score %q", args[1])
		}
		result, err := commands.NewSetScoreCommand(ws, item.ID, score).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var editNote bool

var noteCmd = &cobra.Command{
	Use:   "note <item> [text]",
	Short: "Set the note of an item",
	Long: `Set the free-text note of an item. Without text the note is removed,
unless --edit opens it in $EDITOR.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws := GetWorkspace()
		item, _, err := commands.ResolveItem(ws.Catalog(), args[0])
		if err != nil {
			return err
		}

		var text string
		switch {
		case editNote:
			text, err = editor.NewOpener().Edit(ws.Session().Note(item.ID))
			if err != nil {
				return err
			}
		case len(args) == 2:
			text = args[1]
		}

		result, err := commands.NewSetNoteCommand(ws, item.ID, text).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var infoFlags = []struct {
	name  string
	usage string
}{
	{"client", "client name or initials"},
	{"management-number", "management number"},
	{"evaluator", "evaluator name"},
	{"entry-date", "entry date, YYYY-MM-DD"},
	{"period-start", "period start, YYYY-MM-DD"},
	{"period-end", "period end, YYYY-MM-DD"},
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show or set the client and period of the current assessment",
	Long: `Without flags, print the basic info of the current assessment.
With flags, update only the fields given.

Example:
  assessio-cli info --client T.Y --evaluator Sato --entry-date 2026-04-01`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws := GetWorkspace()
		info := ws.Session().BasicInfo
		fields := map[string]*string{
			"client":            &info.ClientName,
			"management-number": &info.ManagementNumber,
			"evaluator":         &info.EvaluatorName,
			"entry-date":        &info.EntryDate,
			"period-start":      &info.PeriodStart,
			"period-end":        &info.PeriodEnd,
		}

		changed := false
		for _, f := range infoFlags {
			if !cmd.Flags().Changed(f.name) {
				continue
			}
			v, _ := cmd.Flags().GetString(f.name)
			*fields[f.name] = v
			changed = true
		}

		out := cmd.OutOrStdout()
		if changed {
			result, err := commands.NewSetBasicInfoCommand(ws, info).Execute(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(out, result.Message)
			info = ws.Session().BasicInfo
		}

		for _, f := range infoFlags {
			label := strings.ReplaceAll(f.name, "-", " ")
			fmt.Fprintf(out, "%-18s %s\n", label+":", *fields[f.name])
		}
		return nil
	},
}

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Discard the current assessment and start over",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewNewAssessmentCommand(GetWorkspace()).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(newCmd)

	scoreCmd.Flags().BoolVar(&clearScore, "clear", false, "remove the score instead of setting it")
	noteCmd.Flags().BoolVarP(&editNote, "edit", "e", false, "edit the note in $EDITOR")
	for _, f := range infoFlags {
		infoCmd.Flags().String(f.name, "", f.usage)
	}
}
