package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"assessio/internal/application"
	"assessio/internal/bootstrap"
)

var (
	logLevel string
	current  *bootstrap.Runtime
)

var rootCmd = &cobra.Command{
	Use:   "assessio-cli",
	Short: "CLI for skills assessments",
	Long: `assessio-cli scores clients against a catalog of assessment items.

It shares storage with the assessio TUI: the item catalog, the assessment
in progress and each client's saved history. Configure it with ASSESSIO_*
environment variables or a YAML file named by ASSESSIO_CONFIG.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		if logLevel != "" {
			os.Setenv("ASSESSIO_LOG_LEVEL", logLevel)
		}
		rt, err := bootstrap.Load(cmd.Context(), os.Stderr)
		if err != nil {
			return err
		}
		current = rt
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if current == nil {
			return nil
		}
		err := current.Close()
		current = nil
		return err
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}

// GetWorkspace returns the initialized workspace
func GetWorkspace() *application.Workspace {
	return current.Workspace
}
