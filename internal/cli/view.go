package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sprite-ai/eslint-teamcity/internal/analysis"
	"github.com/sprite-ai/eslint-teamcity/internal/tui"
)

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view [results.json]",
		Short: "Browse lint results interactively",
		Long: `Open an interactive TUI listing every file with findings, with
highlighted source context around the selected finding.

Examples:
  eslint-teamcity view results.json
  eslint-teamcity view --changed main...HEAD results.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runView,
	}
}

func runView(cmd *cobra.Command, args []string) error {
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}

	diags, err := loadResults(cmd, args, log)
	if err != nil {
		return err
	}

	results := analysis.New(diags)
	if results.FileCount() == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No problems found.")
		return nil
	}

	return tui.Run(diags)
}
