// ABOUTME: CLI command for searching calibrations.
// ABOUTME: Case-insensitive substring match across every field.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:     "search <term>",
	Aliases: []string{"find"},
	Short:   "Search for calibrations",
	Long: `Search every field of every calibration, including camera details,
for a case-insensitive substring.

EXAMPLES:

  calibctl search imx477       # Camera model
  calibctl search parking      # Scene description
  calibctl search 202501       # IDs and dates from January 2025`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		term := args[0]

		results, err := repo.Search(term)
		if err != nil {
			return fmt.Errorf("failed to search calibrations: %w", err)
		}

		if len(results) == 0 {
			fmt.Fprintf(out, "No calibrations found matching '%s'.\n", term)
			return nil
		}

		fmt.Fprintf(out, "Found %d match(es) for '%s':\n", len(results), term)
		for _, c := range results {
			printCalibration(out, c)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
